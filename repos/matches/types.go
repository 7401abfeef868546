package matches

// Match statuses. The portal deliberately does not restrict which status can
// follow which; only membership in this set is validated.
const (
	StatusUpcoming  = "upcoming"
	StatusLive      = "live"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Live-update entry kinds.
const (
	UpdateTypeScore        = "score_update"
	UpdateTypeCricketEvent = "cricket_event"
	UpdateTypeStatusChange = "status_change"
)

// Cricket event markers embedded in cricket_event entries.
const (
	CricketEventScore        = "score"
	CricketEventToss         = "toss"
	CricketEventInningsBreak = "innings_break"
)

// Match phases. Free-text progress markers, not a validated enum.
const (
	PhaseTossCompleted = "toss_completed"
	PhaseSecondInnings = "second_innings"
)

func ValidStatus(status string) bool {
	switch status {
	case StatusUpcoming, StatusLive, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Match struct {
	ID             string       `firestore:"-" json:"id"`
	Title          string       `firestore:"title" json:"title"`
	Sport          string       `firestore:"sport" json:"sport"`
	Venue          string       `firestore:"venue" json:"venue,omitempty"`
	ScheduledAt    string       `firestore:"scheduledAt" json:"scheduledAt,omitempty"`
	Status         string       `firestore:"status" json:"status"`
	Team1          Team         `firestore:"team1" json:"team1"`
	Team2          Team         `firestore:"team2" json:"team2"`
	Result         *Result      `firestore:"result" json:"result,omitempty"`
	MatchConfig    MatchConfig  `firestore:"matchConfig" json:"matchConfig"`
	LiveUpdates    []LiveUpdate `firestore:"liveUpdates" json:"liveUpdates"`
	ScorerSecret   string       `firestore:"scorerSecret" json:"-"`
	AllowedScorers []string     `firestore:"allowedScorers" json:"-"`
	CreatedBy      string       `firestore:"createdBy" json:"createdBy"`
	LastUpdatedBy  string       `firestore:"lastUpdatedBy" json:"lastUpdatedBy"`
	CreatedAt      int64        `firestore:"createdAt" json:"createdAt"`
	LastUpdated    int64        `firestore:"lastUpdated" json:"lastUpdated"`
}

type Team struct {
	Name         string       `firestore:"name" json:"name"`
	ClubID       string       `firestore:"clubId" json:"clubId,omitempty"`
	Score        int          `firestore:"score" json:"score"`
	CricketScore CricketScore `firestore:"cricketScore" json:"cricketScore"`
}

type CricketScore struct {
	Runs    int `firestore:"runs" json:"runs"`
	Wickets int `firestore:"wickets" json:"wickets"`
	Overs   int `firestore:"overs" json:"overs"`
	Balls   int `firestore:"balls" json:"balls"`
	Extras  int `firestore:"extras" json:"extras"`
}

// Result is populated only when a match reaches the completed status.
// Winner is "team1", "team2" or "draw".
type Result struct {
	Winner string `firestore:"winner" json:"winner"`
	Notes  string `firestore:"notes" json:"notes,omitempty"`
}

type MatchConfig struct {
	CricketConfig *CricketConfig `firestore:"cricketConfig" json:"cricketConfig,omitempty"`
}

type CricketConfig struct {
	Toss               Toss    `firestore:"toss" json:"toss"`
	Innings            Innings `firestore:"innings" json:"innings"`
	CurrentInnings     int     `firestore:"currentInnings" json:"currentInnings"`
	CurrentBattingTeam string  `firestore:"currentBattingTeam" json:"currentBattingTeam,omitempty"`
	MatchPhase         string  `firestore:"matchPhase" json:"matchPhase,omitempty"`
	TotalOvers         int     `firestore:"totalOvers" json:"totalOvers"`
}

type Toss struct {
	Completed bool   `firestore:"completed" json:"completed"`
	WonBy     string `firestore:"wonBy" json:"wonBy,omitempty"`
	Decision  string `firestore:"decision" json:"decision,omitempty"`
}

type Innings struct {
	First  InningsState `firestore:"first" json:"first"`
	Second InningsState `firestore:"second" json:"second"`
}

type InningsState struct {
	BattingTeam     string  `firestore:"battingTeam" json:"battingTeam,omitempty"`
	Completed       bool    `firestore:"completed" json:"completed"`
	Target          int     `firestore:"target" json:"target,omitempty"`
	Chasing         int     `firestore:"chasing" json:"chasing,omitempty"`
	RequiredRunRate float64 `firestore:"requiredRunRate" json:"requiredRunRate,omitempty"`
}

// LiveUpdate is one immutable entry of a match's append-only log. Entries
// are only ever added, never rewritten or removed.
type LiveUpdate struct {
	ID            string         `firestore:"id" json:"id"`
	UpdatedBy     string         `firestore:"updatedBy" json:"updatedBy"`
	UpdateType    string         `firestore:"updateType" json:"updateType"`
	Team1Score    int            `firestore:"team1Score" json:"team1Score"`
	Team2Score    int            `firestore:"team2Score" json:"team2Score"`
	Status        string         `firestore:"status" json:"status"`
	Notes         string         `firestore:"notes" json:"notes,omitempty"`
	CricketUpdate *CricketUpdate `firestore:"cricketUpdate" json:"cricketUpdate,omitempty"`
	Timestamp     int64          `firestore:"timestamp" json:"timestamp"`
}

// CricketUpdate snapshots the batting side's scorecard at the moment of the
// entry.
type CricketUpdate struct {
	EventType string       `firestore:"eventType" json:"eventType"`
	Team      string       `firestore:"team" json:"team"`
	Score     CricketScore `firestore:"score" json:"score"`
}
