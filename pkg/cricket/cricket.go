package cricket

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxWickets is the most wickets a side can lose in an innings.
	MaxWickets = 10

	// MaxBallsPerOver is the highest ball count within an over the scorer
	// accepts. Carried over from the legacy scorer; a conventional over has
	// 6 balls, so a future correction is a one-line change here.
	MaxBallsPerOver = 5

	// DefaultTotalOvers applies when a match has no explicit over limit.
	DefaultTotalOvers = 20
)

// ErrInvalidScore marks any cricket score that violates the scoring bounds.
var ErrInvalidScore = errors.New("invalid cricket score")

// IsCricket reports whether a free-text sport name refers to cricket.
// The portal never stored a typed sport, so cricket-ness is a
// case-insensitive substring match ("Box Cricket", "Cricket 20-20", ...).
func IsCricket(sport string) bool {
	return strings.Contains(strings.ToLower(sport), "cricket")
}

// ValidateScore checks one team's scorecard against the scoring bounds.
func ValidateScore(runs, wickets, balls int) error {
	if runs < 0 {
		return fmt.Errorf("%w: runs cannot be negative", ErrInvalidScore)
	}
	if wickets > MaxWickets {
		return fmt.Errorf("%w: wickets cannot exceed %d", ErrInvalidScore, MaxWickets)
	}
	if balls > MaxBallsPerOver {
		return fmt.Errorf("%w: balls cannot exceed %d", ErrInvalidScore, MaxBallsPerOver)
	}
	return nil
}

// DeriveWinner compares two final scores and returns "team1", "team2" or
// "draw". Callers pass runs for cricket matches and raw scores otherwise.
func DeriveWinner(score1, score2 int) string {
	switch {
	case score1 > score2:
		return "team1"
	case score2 > score1:
		return "team2"
	default:
		return "draw"
	}
}

// Target is the score the chasing team needs to win.
func Target(firstInningsRuns int) int {
	return firstInningsRuns + 1
}

// RequiredRunRate returns the runs per over the chasing team must average,
// rounded to two decimals. The rounding goes through a formatted string so
// the stored value matches what the scoreboard displays.
func RequiredRunRate(target, totalOvers int) float64 {
	if totalOvers <= 0 {
		totalOvers = DefaultTotalOvers
	}
	rate, err := strconv.ParseFloat(fmt.Sprintf("%.2f", float64(target)/float64(totalOvers)), 64)
	if err != nil {
		return 0
	}
	return rate
}
