package accessCode

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/samborkent/uuidv7"
)

// GenerateCode builds the opaque code mailed to a scorer. It binds the match
// id to the match's scorer secret so the redeem endpoint can verify it.
func GenerateCode(matchID, secret string) string {
	code := fmt.Sprintf("%s|%s", matchID, secret)
	return base64.StdEncoding.EncodeToString([]byte(code))
}

// NewSecret mints the per-match scorer secret stored on the match document.
func NewSecret() string {
	return uuidv7.New().String()
}

func Decode(code string) (matchID, secret string, err error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	res := strings.Split(string(decodedBytes), "|")
	if len(res) != 2 {
		return "", "", fmt.Errorf("not correct format")
	}
	return res[0], res[1], nil
}
