package accessCode

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateCode(t *testing.T) {
	encodedCode := GenerateCode("match-42", NewSecret())
	assert.NotEmpty(t, encodedCode, "Encoded code should not be empty")
}

func TestDecode(t *testing.T) {
	matchID := "match-42"
	secret := NewSecret()
	encodedCode := GenerateCode(matchID, secret)

	decodedMatchID, decodedSecret, err := Decode(encodedCode)

	assert.Nil(t, err, "Should not have an error during decoding")
	assert.Equal(t, matchID, decodedMatchID, "Decoded match id should match the original")
	assert.Equal(t, secret, decodedSecret, "Decoded secret should match the original")
}

func TestDecode_ErrorHandling(t *testing.T) {
	_, _, err := Decode("this is not a base64 string")
	assert.NotNil(t, err, "Expected an error for incorrect base64 string")
}
