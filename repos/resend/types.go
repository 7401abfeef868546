package resend

// AccessRequest is the payload for mailing a scorer access code.
type AccessRequest struct {
	MatchID string `json:"matchID"`
	Email   string `json:"email"`
}
