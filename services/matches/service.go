package matches

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	auth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/samborkent/uuidv7"

	"github.com/campusarena/sports-portal/pkg/accessCode"
	"github.com/campusarena/sports-portal/pkg/cricket"
	timehelper "github.com/campusarena/sports-portal/pkg/timeHelper"
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
	resend "github.com/campusarena/sports-portal/repos/resend"
)

// Precondition and validation failures surfaced as 400s.
var (
	ErrInvalidStatus          = errors.New("invalid match status")
	ErrInvalidTossRequest     = errors.New("invalid toss winner or decision")
	ErrNotCricket             = errors.New("not a cricket match")
	ErrTossAlreadyRecorded    = errors.New("toss already recorded")
	ErrTossNotRecorded        = errors.New("toss has not been recorded")
	ErrInningsAlreadySwitched = errors.New("innings already switched")
	ErrMissingCricketConfig   = errors.New("match has no cricket configuration")
	ErrNegativeScore          = errors.New("score cannot be negative")
)

type MatchesService struct {
	firestoreClient *firestore.Client
	firebaseApp     *firebase.App
	matchRepo       *matchrepo.Service
	resendService   *resend.Service
}

func NewMatchesService(firestoreClient *firestore.Client, firebaseApp *firebase.App, matchRepo *matchrepo.Service, resendService *resend.Service) *MatchesService {
	return &MatchesService{
		firestoreClient: firestoreClient,
		firebaseApp:     firebaseApp,
		matchRepo:       matchRepo,
		resendService:   resendService,
	}
}

func (s *MatchesService) CreateMatch(c *gin.Context, req CreateMatchRequest) (*matchrepo.Match, error) {
	token := c.MustGet("token").(*auth.Token)
	now := timehelper.NowMillis()

	match := &matchrepo.Match{
		Title:       req.Title,
		Sport:       req.Sport,
		Venue:       req.Venue,
		ScheduledAt: req.ScheduledAt,
		Status:      matchrepo.StatusUpcoming,
		Team1: matchrepo.Team{
			Name:   req.Team1.Name,
			ClubID: req.Team1.ClubID,
		},
		Team2: matchrepo.Team{
			Name:   req.Team2.Name,
			ClubID: req.Team2.ClubID,
		},
		ScorerSecret:  accessCode.NewSecret(),
		CreatedBy:     token.UID,
		LastUpdatedBy: token.UID,
		CreatedAt:     now,
		LastUpdated:   now,
	}

	if cricket.IsCricket(req.Sport) {
		totalOvers := req.TotalOvers
		if totalOvers <= 0 {
			totalOvers = cricket.DefaultTotalOvers
		}
		match.MatchConfig.CricketConfig = &matchrepo.CricketConfig{
			CurrentInnings: 1,
			TotalOvers:     totalOvers,
		}
	}

	if _, err := s.matchRepo.Create(c, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *MatchesService) GetMatch(c *gin.Context, matchID string) (*matchrepo.Match, error) {
	return s.matchRepo.Get(c, matchID)
}

// UpdateLiveScore applies one score/status transition and appends the
// matching live-update entry in the same write.
func (s *MatchesService) UpdateLiveScore(c *gin.Context, matchID string, req LiveScoreRequest) (*matchrepo.Match, error) {
	token := c.MustGet("token").(*auth.Token)
	now := timehelper.NowMillis()

	updated, err := s.matchRepo.Transition(c, matchID, func(m *matchrepo.Match) ([]firestore.Update, error) {
		_, updates, err := applyLiveScore(m, req, token.UID, now)
		return updates, err
	})
	if err != nil {
		return nil, err
	}

	if updated.Status == matchrepo.StatusCompleted && updated.Result != nil {
		go s.notifyResult(updated)
	}
	return updated, nil
}

// UpdateStatus is the generic status transition. Any of the four statuses
// may follow any other; only enum membership is checked.
func (s *MatchesService) UpdateStatus(c *gin.Context, matchID, newStatus string) (*matchrepo.Match, error) {
	if !matchrepo.ValidStatus(newStatus) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, newStatus)
	}

	token := c.MustGet("token").(*auth.Token)
	now := timehelper.NowMillis()

	return s.matchRepo.Transition(c, matchID, func(m *matchrepo.Match) ([]firestore.Update, error) {
		_, updates, err := applyStatusChange(m, newStatus, token.UID, now)
		return updates, err
	})
}

// RecordToss is the one-time cricket toss transition.
func (s *MatchesService) RecordToss(c *gin.Context, matchID string, req TossRequest) (*matchrepo.Match, error) {
	if req.TossWinner != "team1" && req.TossWinner != "team2" {
		return nil, fmt.Errorf("%w: tossWinner %q", ErrInvalidTossRequest, req.TossWinner)
	}
	if req.Decision != "bat" && req.Decision != "bowl" {
		return nil, fmt.Errorf("%w: decision %q", ErrInvalidTossRequest, req.Decision)
	}

	token := c.MustGet("token").(*auth.Token)
	now := timehelper.NowMillis()

	return s.matchRepo.Transition(c, matchID, func(m *matchrepo.Match) ([]firestore.Update, error) {
		_, updates, err := applyToss(m, req, token.UID, now)
		return updates, err
	})
}

// SwitchInnings closes the first innings and opens the chase.
func (s *MatchesService) SwitchInnings(c *gin.Context, matchID string) (*matchrepo.Match, InningsSwitchSummary, error) {
	token := c.MustGet("token").(*auth.Token)
	now := timehelper.NowMillis()

	var summary InningsSwitchSummary
	updated, err := s.matchRepo.Transition(c, matchID, func(m *matchrepo.Match) ([]firestore.Update, error) {
		_, updates, sum, err := applySwitchInnings(m, token.UID, now)
		summary = sum
		return updates, err
	})
	if err != nil {
		return nil, InningsSwitchSummary{}, err
	}
	return updated, summary, nil
}

// LiveUpdatesHistory returns the append-only log, newest entry first.
func (s *MatchesService) LiveUpdatesHistory(c *gin.Context, matchID string) (*LiveUpdatesResponse, error) {
	match, err := s.matchRepo.Get(c, matchID)
	if err != nil {
		return nil, err
	}

	return &LiveUpdatesResponse{
		Title:       match.Title,
		Team1:       match.Team1.Name,
		Team2:       match.Team2.Name,
		LiveUpdates: sortedLiveUpdates(match.LiveUpdates),
	}, nil
}

func (s *MatchesService) notifyResult(match *matchrepo.Match) {
	ctx := context.Background()
	for _, clubID := range []string{match.Team1.ClubID, match.Team2.ClubID} {
		if clubID == "" {
			continue
		}
		doc, err := s.firestoreClient.Collection("Clubs").Doc(clubID).Get(ctx)
		if err != nil {
			log.Printf("Failed to get club %s for result notice: %v\n", clubID, err)
			continue
		}
		email, _ := doc.Data()["contactEmail"].(string)
		s.resendService.SendResultNotice(ctx, match, email)
	}
}

// --- transition cores ---
//
// Each apply function inspects the loaded document, validates, and returns
// the entry plus the full update set, including the log append. Nothing is
// written when an error comes back.

func applyLiveScore(match *matchrepo.Match, req LiveScoreRequest, userID string, now int64) (matchrepo.LiveUpdate, []firestore.Update, error) {
	entry := matchrepo.LiveUpdate{
		ID:        uuidv7.New().String(),
		UpdatedBy: userID,
		Notes:     req.Notes,
		Timestamp: now,
	}

	newStatus := req.Status
	if newStatus == "" {
		newStatus = match.Status
	}
	entry.Status = newStatus

	var updates []firestore.Update
	var score1, score2 int

	if cricket.IsCricket(match.Sport) {
		team1 := match.Team1.CricketScore
		if req.Team1Cricket != nil {
			team1 = *req.Team1Cricket
		}
		team2 := match.Team2.CricketScore
		if req.Team2Cricket != nil {
			team2 = *req.Team2Cricket
		}

		if err := cricket.ValidateScore(team1.Runs, team1.Wickets, team1.Balls); err != nil {
			return entry, nil, fmt.Errorf("team1: %w", err)
		}
		if err := cricket.ValidateScore(team2.Runs, team2.Wickets, team2.Balls); err != nil {
			return entry, nil, fmt.Errorf("team2: %w", err)
		}

		score1, score2 = team1.Runs, team2.Runs
		entry.UpdateType = matchrepo.UpdateTypeCricketEvent
		entry.Team1Score = score1
		entry.Team2Score = score2

		// Snapshot the batting side: innings 1 means team1 bats, anything
		// else team2. This mirrors the scoreboard the portal always showed.
		config := match.MatchConfig.CricketConfig
		if req.CricketConfig != nil {
			config = req.CricketConfig
		}
		currentInnings := 1
		if config != nil && config.CurrentInnings != 0 {
			currentInnings = config.CurrentInnings
		}
		battingTeam, battingScore := "team1", team1
		if currentInnings != 1 {
			battingTeam, battingScore = "team2", team2
		}
		entry.CricketUpdate = &matchrepo.CricketUpdate{
			EventType: matchrepo.CricketEventScore,
			Team:      battingTeam,
			Score:     battingScore,
		}

		updates = append(updates,
			firestore.Update{Path: "team1.score", Value: team1.Runs},
			firestore.Update{Path: "team2.score", Value: team2.Runs},
			firestore.Update{Path: "team1.cricketScore", Value: team1},
			firestore.Update{Path: "team2.cricketScore", Value: team2},
		)
		if req.CricketConfig != nil {
			updates = append(updates, firestore.Update{Path: "matchConfig.cricketConfig", Value: req.CricketConfig})
		}
	} else {
		score1 = match.Team1.Score
		if req.Team1Score != nil {
			score1 = *req.Team1Score
		}
		score2 = match.Team2.Score
		if req.Team2Score != nil {
			score2 = *req.Team2Score
		}
		if score1 < 0 || score2 < 0 {
			return entry, nil, ErrNegativeScore
		}

		entry.UpdateType = matchrepo.UpdateTypeScore
		entry.Team1Score = score1
		entry.Team2Score = score2

		updates = append(updates,
			firestore.Update{Path: "team1.score", Value: score1},
			firestore.Update{Path: "team2.score", Value: score2},
		)
	}

	updates = append(updates, firestore.Update{Path: "status", Value: newStatus})

	if newStatus == matchrepo.StatusCompleted {
		winner := req.Winner
		if winner == "" {
			winner = cricket.DeriveWinner(score1, score2)
		}
		updates = append(updates, firestore.Update{Path: "result", Value: matchrepo.Result{
			Winner: winner,
			Notes:  req.Notes,
		}})
	}

	updates = appendLogAndStamp(updates, entry, userID, now)
	return entry, updates, nil
}

func applyStatusChange(match *matchrepo.Match, newStatus, userID string, now int64) (matchrepo.LiveUpdate, []firestore.Update, error) {
	score1, score2 := currentScores(match)
	entry := matchrepo.LiveUpdate{
		ID:         uuidv7.New().String(),
		UpdatedBy:  userID,
		UpdateType: matchrepo.UpdateTypeStatusChange,
		Team1Score: score1,
		Team2Score: score2,
		Status:     newStatus,
		Notes:      fmt.Sprintf("Status changed from %s to %s", match.Status, newStatus),
		Timestamp:  now,
	}

	updates := []firestore.Update{
		{Path: "status", Value: newStatus},
	}
	updates = appendLogAndStamp(updates, entry, userID, now)
	return entry, updates, nil
}

func applyToss(match *matchrepo.Match, req TossRequest, userID string, now int64) (matchrepo.LiveUpdate, []firestore.Update, error) {
	if !cricket.IsCricket(match.Sport) {
		return matchrepo.LiveUpdate{}, nil, ErrNotCricket
	}

	config := match.MatchConfig.CricketConfig
	if config != nil && config.Toss.Completed {
		return matchrepo.LiveUpdate{}, nil, ErrTossAlreadyRecorded
	}

	battingFirst := req.TossWinner
	if req.Decision == "bowl" {
		battingFirst = otherTeam(req.TossWinner)
	}
	battingSecond := otherTeam(battingFirst)

	score1, score2 := currentScores(match)
	entry := matchrepo.LiveUpdate{
		ID:         uuidv7.New().String(),
		UpdatedBy:  userID,
		UpdateType: matchrepo.UpdateTypeCricketEvent,
		Team1Score: score1,
		Team2Score: score2,
		Status:     match.Status,
		Notes: fmt.Sprintf("%s won the toss and chose to %s. %s will bat first.",
			teamName(match, req.TossWinner), req.Decision, teamName(match, battingFirst)),
		CricketUpdate: &matchrepo.CricketUpdate{
			EventType: matchrepo.CricketEventToss,
			Team:      req.TossWinner,
		},
		Timestamp: now,
	}

	var updates []firestore.Update
	if config == nil {
		// First cricket write on a match created before the scorer was set
		// up: lay down the whole config in one go.
		updates = append(updates, firestore.Update{Path: "matchConfig.cricketConfig", Value: matchrepo.CricketConfig{
			Toss: matchrepo.Toss{
				Completed: true,
				WonBy:     req.TossWinner,
				Decision:  req.Decision,
			},
			Innings: matchrepo.Innings{
				First:  matchrepo.InningsState{BattingTeam: battingFirst},
				Second: matchrepo.InningsState{BattingTeam: battingSecond},
			},
			CurrentInnings:     1,
			CurrentBattingTeam: battingFirst,
			MatchPhase:         matchrepo.PhaseTossCompleted,
			TotalOvers:         cricket.DefaultTotalOvers,
		}})
	} else {
		updates = append(updates,
			firestore.Update{Path: "matchConfig.cricketConfig.toss.completed", Value: true},
			firestore.Update{Path: "matchConfig.cricketConfig.toss.wonBy", Value: req.TossWinner},
			firestore.Update{Path: "matchConfig.cricketConfig.toss.decision", Value: req.Decision},
			firestore.Update{Path: "matchConfig.cricketConfig.innings.first.battingTeam", Value: battingFirst},
			firestore.Update{Path: "matchConfig.cricketConfig.innings.second.battingTeam", Value: battingSecond},
			firestore.Update{Path: "matchConfig.cricketConfig.currentBattingTeam", Value: battingFirst},
			firestore.Update{Path: "matchConfig.cricketConfig.matchPhase", Value: matchrepo.PhaseTossCompleted},
		)
	}

	updates = appendLogAndStamp(updates, entry, userID, now)
	return entry, updates, nil
}

func applySwitchInnings(match *matchrepo.Match, userID string, now int64) (matchrepo.LiveUpdate, []firestore.Update, InningsSwitchSummary, error) {
	if !cricket.IsCricket(match.Sport) {
		return matchrepo.LiveUpdate{}, nil, InningsSwitchSummary{}, ErrNotCricket
	}
	config := match.MatchConfig.CricketConfig
	if config == nil {
		return matchrepo.LiveUpdate{}, nil, InningsSwitchSummary{}, ErrMissingCricketConfig
	}
	if !config.Toss.Completed {
		return matchrepo.LiveUpdate{}, nil, InningsSwitchSummary{}, ErrTossNotRecorded
	}
	if config.CurrentInnings != 1 {
		return matchrepo.LiveUpdate{}, nil, InningsSwitchSummary{}, ErrInningsAlreadySwitched
	}

	battingFirst := config.Innings.First.BattingTeam
	if battingFirst == "" {
		battingFirst = "team1"
	}
	battingSecond := config.Innings.Second.BattingTeam
	if battingSecond == "" {
		battingSecond = otherTeam(battingFirst)
	}

	firstInningsScore := teamCricketScore(match, battingFirst)
	target := cricket.Target(firstInningsScore.Runs)
	requiredRunRate := cricket.RequiredRunRate(target, config.TotalOvers)
	summary := InningsSwitchSummary{
		Target:          target,
		RequiredRunRate: requiredRunRate,
	}

	score1, score2 := currentScores(match)
	entry := matchrepo.LiveUpdate{
		ID:         uuidv7.New().String(),
		UpdatedBy:  userID,
		UpdateType: matchrepo.UpdateTypeCricketEvent,
		Team1Score: score1,
		Team2Score: score2,
		Status:     match.Status,
		Notes: fmt.Sprintf("Innings break: %s finished on %d. %s needs %d at %.2f per over.",
			teamName(match, battingFirst), firstInningsScore.Runs,
			teamName(match, battingSecond), target, requiredRunRate),
		CricketUpdate: &matchrepo.CricketUpdate{
			EventType: matchrepo.CricketEventInningsBreak,
			Team:      battingFirst,
			Score:     firstInningsScore,
		},
		Timestamp: now,
	}

	updates := []firestore.Update{
		{Path: "matchConfig.cricketConfig.currentInnings", Value: 2},
		{Path: "matchConfig.cricketConfig.innings.first.completed", Value: true},
		{Path: "matchConfig.cricketConfig.innings.first.target", Value: target},
		{Path: "matchConfig.cricketConfig.innings.second.chasing", Value: target},
		{Path: "matchConfig.cricketConfig.innings.second.requiredRunRate", Value: requiredRunRate},
		{Path: "matchConfig.cricketConfig.currentBattingTeam", Value: battingSecond},
		{Path: "matchConfig.cricketConfig.matchPhase", Value: matchrepo.PhaseSecondInnings},
	}
	updates = appendLogAndStamp(updates, entry, userID, now)
	return entry, updates, summary, nil
}

func appendLogAndStamp(updates []firestore.Update, entry matchrepo.LiveUpdate, userID string, now int64) []firestore.Update {
	return append(updates,
		firestore.Update{Path: "liveUpdates", Value: firestore.ArrayUnion(entry)},
		firestore.Update{Path: "lastUpdated", Value: now},
		firestore.Update{Path: "lastUpdatedBy", Value: userID},
	)
}

// currentScores picks the comparable score pair for log entries: runs for
// cricket, raw scores otherwise.
func currentScores(match *matchrepo.Match) (int, int) {
	if cricket.IsCricket(match.Sport) {
		return match.Team1.CricketScore.Runs, match.Team2.CricketScore.Runs
	}
	return match.Team1.Score, match.Team2.Score
}

func teamCricketScore(match *matchrepo.Match, team string) matchrepo.CricketScore {
	if team == "team2" {
		return match.Team2.CricketScore
	}
	return match.Team1.CricketScore
}

func teamName(match *matchrepo.Match, team string) string {
	if team == "team2" {
		return match.Team2.Name
	}
	return match.Team1.Name
}

func otherTeam(team string) string {
	if team == "team1" {
		return "team2"
	}
	return "team1"
}

func sortedLiveUpdates(updates []matchrepo.LiveUpdate) []matchrepo.LiveUpdate {
	sorted := make([]matchrepo.LiveUpdate, len(updates))
	copy(sorted, updates)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}
