package matches

import (
	"testing"

	"cloud.google.com/go/firestore"
	"github.com/stretchr/testify/assert"
	"github.com/xorcare/pointer"

	"github.com/campusarena/sports-portal/pkg/cricket"
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
)

func cricketMatch() *matchrepo.Match {
	return &matchrepo.Match{
		ID:     "m1",
		Title:  "Inter-hostel final",
		Sport:  "Gully Cricket",
		Status: matchrepo.StatusLive,
		Team1:  matchrepo.Team{Name: "Hostel A"},
		Team2:  matchrepo.Team{Name: "Hostel B"},
		MatchConfig: matchrepo.MatchConfig{
			CricketConfig: &matchrepo.CricketConfig{
				CurrentInnings: 1,
				TotalOvers:     20,
			},
		},
	}
}

func footballMatch() *matchrepo.Match {
	return &matchrepo.Match{
		ID:     "m2",
		Title:  "Campus derby",
		Sport:  "Football",
		Status: matchrepo.StatusUpcoming,
		Team1:  matchrepo.Team{Name: "North FC", Score: 1},
		Team2:  matchrepo.Team{Name: "South FC", Score: 1},
	}
}

func updateValue(t *testing.T, updates []firestore.Update, path string) interface{} {
	t.Helper()
	for _, u := range updates {
		if u.Path == path {
			return u.Value
		}
	}
	t.Fatalf("no update for path %q", path)
	return nil
}

func hasUpdate(updates []firestore.Update, path string) bool {
	for _, u := range updates {
		if u.Path == path {
			return true
		}
	}
	return false
}

func TestApplyLiveScoreCricket(t *testing.T) {
	match := cricketMatch()
	req := LiveScoreRequest{
		Team1Cricket: &matchrepo.CricketScore{Runs: 150, Wickets: 6, Overs: 20, Balls: 0},
		Status:       matchrepo.StatusLive,
		Notes:        "end of first innings",
	}

	entry, updates, err := applyLiveScore(match, req, "user-1", 1000)
	assert.NoError(t, err)

	assert.Equal(t, matchrepo.UpdateTypeCricketEvent, entry.UpdateType)
	assert.Equal(t, 150, entry.Team1Score)
	assert.Equal(t, 0, entry.Team2Score)
	assert.Equal(t, "user-1", entry.UpdatedBy)
	assert.NotEmpty(t, entry.ID)
	if assert.NotNil(t, entry.CricketUpdate) {
		assert.Equal(t, "team1", entry.CricketUpdate.Team, "innings 1 snapshots team1")
		assert.Equal(t, 150, entry.CricketUpdate.Score.Runs)
	}

	assert.Equal(t, 150, updateValue(t, updates, "team1.score"))
	assert.Equal(t, matchrepo.StatusLive, updateValue(t, updates, "status"))
	assert.Equal(t, int64(1000), updateValue(t, updates, "lastUpdated"))
	assert.True(t, hasUpdate(updates, "liveUpdates"))
	assert.False(t, hasUpdate(updates, "result"), "no result before completion")
	assert.False(t, hasUpdate(updates, "matchConfig.cricketConfig"), "config untouched unless supplied")
}

func TestApplyLiveScoreCricketSecondInningsSnapshot(t *testing.T) {
	match := cricketMatch()
	match.MatchConfig.CricketConfig.CurrentInnings = 2
	req := LiveScoreRequest{
		Team2Cricket: &matchrepo.CricketScore{Runs: 42, Wickets: 1, Overs: 4, Balls: 2},
	}

	entry, _, err := applyLiveScore(match, req, "user-1", 1000)
	assert.NoError(t, err)
	if assert.NotNil(t, entry.CricketUpdate) {
		assert.Equal(t, "team2", entry.CricketUpdate.Team)
		assert.Equal(t, 42, entry.CricketUpdate.Score.Runs)
	}
}

func TestApplyLiveScoreCricketValidation(t *testing.T) {
	cases := []matchrepo.CricketScore{
		{Runs: -1},
		{Runs: 10, Wickets: 11},
		{Runs: 10, Wickets: 2, Balls: 6},
	}

	for _, score := range cases {
		match := cricketMatch()
		score := score
		_, updates, err := applyLiveScore(match, LiveScoreRequest{Team1Cricket: &score}, "user-1", 1000)
		assert.ErrorIs(t, err, cricket.ErrInvalidScore, "score %+v", score)
		assert.Nil(t, updates, "no writes on rejected payload")
	}
}

func TestApplyLiveScoreGeneric(t *testing.T) {
	match := footballMatch()
	req := LiveScoreRequest{
		Team1Score: pointer.Int(2),
		Team2Score: pointer.Int(1),
		Status:     matchrepo.StatusLive,
	}

	entry, updates, err := applyLiveScore(match, req, "user-2", 2000)
	assert.NoError(t, err)
	assert.Equal(t, matchrepo.UpdateTypeScore, entry.UpdateType)
	assert.Nil(t, entry.CricketUpdate)
	assert.Equal(t, 2, updateValue(t, updates, "team1.score"))
	assert.Equal(t, 1, updateValue(t, updates, "team2.score"))
}

func TestApplyLiveScoreGenericNegative(t *testing.T) {
	match := footballMatch()
	_, updates, err := applyLiveScore(match, LiveScoreRequest{Team1Score: pointer.Int(-1)}, "user-2", 2000)
	assert.ErrorIs(t, err, ErrNegativeScore)
	assert.Nil(t, updates)
}

func TestApplyLiveScoreDerivesWinnerOnCompletion(t *testing.T) {
	cases := []struct {
		team1, team2 int
		winner       string
	}{
		{3, 1, "team1"},
		{0, 2, "team2"},
		{2, 2, "draw"},
	}

	for _, c := range cases {
		match := footballMatch()
		req := LiveScoreRequest{
			Team1Score: pointer.Int(c.team1),
			Team2Score: pointer.Int(c.team2),
			Status:     matchrepo.StatusCompleted,
		}
		_, updates, err := applyLiveScore(match, req, "user-2", 2000)
		assert.NoError(t, err)
		result := updateValue(t, updates, "result").(matchrepo.Result)
		assert.Equal(t, c.winner, result.Winner, "scores %d-%d", c.team1, c.team2)
	}
}

func TestApplyLiveScoreExplicitWinnerWins(t *testing.T) {
	match := footballMatch()
	req := LiveScoreRequest{
		Team1Score: pointer.Int(5),
		Team2Score: pointer.Int(0),
		Status:     matchrepo.StatusCompleted,
		Winner:     "team2",
	}
	_, updates, err := applyLiveScore(match, req, "user-2", 2000)
	assert.NoError(t, err)
	result := updateValue(t, updates, "result").(matchrepo.Result)
	assert.Equal(t, "team2", result.Winner)
}

func TestApplyLiveScoreCompletionByRunsForCricket(t *testing.T) {
	match := cricketMatch()
	req := LiveScoreRequest{
		Team1Cricket: &matchrepo.CricketScore{Runs: 150, Wickets: 6},
		Team2Cricket: &matchrepo.CricketScore{Runs: 151, Wickets: 4},
		Status:       matchrepo.StatusCompleted,
	}
	_, updates, err := applyLiveScore(match, req, "user-1", 1000)
	assert.NoError(t, err)
	result := updateValue(t, updates, "result").(matchrepo.Result)
	assert.Equal(t, "team2", result.Winner)
}

func TestApplyStatusChange(t *testing.T) {
	match := footballMatch()
	entry, updates, err := applyStatusChange(match, matchrepo.StatusLive, "user-3", 3000)
	assert.NoError(t, err)

	assert.Equal(t, matchrepo.UpdateTypeStatusChange, entry.UpdateType)
	assert.Equal(t, "Status changed from upcoming to live", entry.Notes)
	assert.Equal(t, 1, entry.Team1Score, "carries the pre-change score")
	assert.Equal(t, 1, entry.Team2Score)
	assert.Equal(t, matchrepo.StatusLive, updateValue(t, updates, "status"))
	assert.True(t, hasUpdate(updates, "liveUpdates"))
}

func TestApplyTossBat(t *testing.T) {
	match := cricketMatch()
	entry, updates, err := applyToss(match, TossRequest{TossWinner: "team1", Decision: "bat"}, "user-1", 4000)
	assert.NoError(t, err)

	assert.Equal(t, matchrepo.UpdateTypeCricketEvent, entry.UpdateType)
	assert.Equal(t, matchrepo.CricketEventToss, entry.CricketUpdate.EventType)
	assert.Contains(t, entry.Notes, "Hostel A")

	assert.Equal(t, true, updateValue(t, updates, "matchConfig.cricketConfig.toss.completed"))
	assert.Equal(t, "team1", updateValue(t, updates, "matchConfig.cricketConfig.innings.first.battingTeam"))
	assert.Equal(t, "team2", updateValue(t, updates, "matchConfig.cricketConfig.innings.second.battingTeam"))
	assert.Equal(t, "team1", updateValue(t, updates, "matchConfig.cricketConfig.currentBattingTeam"))
	assert.Equal(t, matchrepo.PhaseTossCompleted, updateValue(t, updates, "matchConfig.cricketConfig.matchPhase"))
}

func TestApplyTossBowlFlipsBattingOrder(t *testing.T) {
	match := cricketMatch()
	_, updates, err := applyToss(match, TossRequest{TossWinner: "team1", Decision: "bowl"}, "user-1", 4000)
	assert.NoError(t, err)
	assert.Equal(t, "team2", updateValue(t, updates, "matchConfig.cricketConfig.innings.first.battingTeam"))
	assert.Equal(t, "team2", updateValue(t, updates, "matchConfig.cricketConfig.currentBattingTeam"))
}

func TestApplyTossGuards(t *testing.T) {
	done := cricketMatch()
	done.MatchConfig.CricketConfig.Toss.Completed = true
	_, _, err := applyToss(done, TossRequest{TossWinner: "team1", Decision: "bat"}, "user-1", 4000)
	assert.ErrorIs(t, err, ErrTossAlreadyRecorded)

	_, _, err = applyToss(footballMatch(), TossRequest{TossWinner: "team1", Decision: "bat"}, "user-1", 4000)
	assert.ErrorIs(t, err, ErrNotCricket)
}

func TestApplySwitchInnings(t *testing.T) {
	match := cricketMatch()
	match.Team1.CricketScore = matchrepo.CricketScore{Runs: 150, Wickets: 6, Overs: 20}
	match.MatchConfig.CricketConfig.Toss = matchrepo.Toss{Completed: true, WonBy: "team1", Decision: "bat"}
	match.MatchConfig.CricketConfig.Innings.First.BattingTeam = "team1"
	match.MatchConfig.CricketConfig.Innings.Second.BattingTeam = "team2"

	entry, updates, summary, err := applySwitchInnings(match, "user-1", 5000)
	assert.NoError(t, err)

	assert.Equal(t, 151, summary.Target)
	assert.Equal(t, 7.55, summary.RequiredRunRate)
	assert.Equal(t, matchrepo.CricketEventInningsBreak, entry.CricketUpdate.EventType)

	assert.Equal(t, 2, updateValue(t, updates, "matchConfig.cricketConfig.currentInnings"))
	assert.Equal(t, true, updateValue(t, updates, "matchConfig.cricketConfig.innings.first.completed"))
	assert.Equal(t, 151, updateValue(t, updates, "matchConfig.cricketConfig.innings.first.target"))
	assert.Equal(t, 151, updateValue(t, updates, "matchConfig.cricketConfig.innings.second.chasing"))
	assert.Equal(t, 7.55, updateValue(t, updates, "matchConfig.cricketConfig.innings.second.requiredRunRate"))
	assert.Equal(t, "team2", updateValue(t, updates, "matchConfig.cricketConfig.currentBattingTeam"))
	assert.Equal(t, matchrepo.PhaseSecondInnings, updateValue(t, updates, "matchConfig.cricketConfig.matchPhase"))
}

func TestApplySwitchInningsGuards(t *testing.T) {
	noConfig := cricketMatch()
	noConfig.MatchConfig.CricketConfig = nil
	_, _, _, err := applySwitchInnings(noConfig, "user-1", 5000)
	assert.ErrorIs(t, err, ErrMissingCricketConfig)

	noToss := cricketMatch()
	_, _, _, err = applySwitchInnings(noToss, "user-1", 5000)
	assert.ErrorIs(t, err, ErrTossNotRecorded)

	second := cricketMatch()
	second.MatchConfig.CricketConfig.Toss.Completed = true
	second.MatchConfig.CricketConfig.CurrentInnings = 2
	_, _, _, err = applySwitchInnings(second, "user-1", 5000)
	assert.ErrorIs(t, err, ErrInningsAlreadySwitched)

	_, _, _, err = applySwitchInnings(footballMatch(), "user-1", 5000)
	assert.ErrorIs(t, err, ErrNotCricket)
}

func TestSortedLiveUpdates(t *testing.T) {
	updates := []matchrepo.LiveUpdate{
		{ID: "a", Timestamp: 100},
		{ID: "c", Timestamp: 300},
		{ID: "b", Timestamp: 200},
	}

	sorted := sortedLiveUpdates(updates)
	assert.Equal(t, "c", sorted[0].ID)
	assert.Equal(t, "b", sorted[1].ID)
	assert.Equal(t, "a", sorted[2].ID)
	assert.Equal(t, "a", updates[0].ID, "input slice is left alone")
}

// Full cricket flow: toss, first-innings scoring, innings break.
func TestCricketScenario(t *testing.T) {
	match := cricketMatch()

	_, updates, err := applyToss(match, TossRequest{TossWinner: "team1", Decision: "bat"}, "head-1", 1000)
	assert.NoError(t, err)
	match.MatchConfig.CricketConfig.Toss = matchrepo.Toss{Completed: true, WonBy: "team1", Decision: "bat"}
	match.MatchConfig.CricketConfig.Innings.First.BattingTeam = updateValue(t, updates, "matchConfig.cricketConfig.innings.first.battingTeam").(string)
	match.MatchConfig.CricketConfig.Innings.Second.BattingTeam = updateValue(t, updates, "matchConfig.cricketConfig.innings.second.battingTeam").(string)
	match.MatchConfig.CricketConfig.CurrentBattingTeam = "team1"
	match.MatchConfig.CricketConfig.MatchPhase = matchrepo.PhaseTossCompleted

	req := LiveScoreRequest{
		Team1Cricket: &matchrepo.CricketScore{Runs: 150, Wickets: 6, Overs: 20, Balls: 0},
		Status:       matchrepo.StatusLive,
	}
	_, updates, err = applyLiveScore(match, req, "head-1", 2000)
	assert.NoError(t, err)
	match.Team1.CricketScore = updateValue(t, updates, "team1.cricketScore").(matchrepo.CricketScore)
	match.Status = matchrepo.StatusLive

	_, _, summary, err := applySwitchInnings(match, "head-1", 3000)
	assert.NoError(t, err)
	assert.Equal(t, 151, summary.Target)
	assert.Equal(t, 7.55, summary.RequiredRunRate)
}
