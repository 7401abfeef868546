package cricket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCricket(t *testing.T) {
	cases := map[string]bool{
		"Cricket":       true,
		"cricket":       true,
		"Box Cricket":   true,
		"Cricket 20-20": true,
		"Gully Cricket": true,
		"Football":      false,
		"Basketball":    false,
		"":              false,
	}

	for sport, want := range cases {
		assert.Equal(t, want, IsCricket(sport), "sport %q", sport)
	}
}

func TestValidateScore(t *testing.T) {
	assert.NoError(t, ValidateScore(0, 0, 0))
	assert.NoError(t, ValidateScore(150, 6, 0))
	assert.NoError(t, ValidateScore(300, 10, 5))

	assert.ErrorIs(t, ValidateScore(-1, 0, 0), ErrInvalidScore, "negative runs")
	assert.ErrorIs(t, ValidateScore(10, 11, 0), ErrInvalidScore, "too many wickets")
	assert.ErrorIs(t, ValidateScore(10, 0, 6), ErrInvalidScore, "too many balls in the over")
}

func TestDeriveWinner(t *testing.T) {
	assert.Equal(t, "team1", DeriveWinner(151, 120))
	assert.Equal(t, "team2", DeriveWinner(99, 100))
	assert.Equal(t, "draw", DeriveWinner(88, 88))
	assert.Equal(t, "draw", DeriveWinner(0, 0))
}

func TestTarget(t *testing.T) {
	assert.Equal(t, 151, Target(150))
	assert.Equal(t, 1, Target(0))
}

func TestRequiredRunRate(t *testing.T) {
	assert.Equal(t, 7.55, RequiredRunRate(151, 20))
	assert.Equal(t, 5.0, RequiredRunRate(100, 20))
	assert.Equal(t, 10.06, RequiredRunRate(101, 0), "zero overs falls back to the default limit")
	assert.Equal(t, 6.73, RequiredRunRate(101, 15))
}
