package matches

import (
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
)

// CreateMatchRequest schedules a new contest. Matches always start in the
// upcoming status.
type CreateMatchRequest struct {
	Title       string      `json:"title" binding:"required"`
	Sport       string      `json:"sport" binding:"required"`
	Venue       string      `json:"venue"`
	ScheduledAt string      `json:"scheduledAt"`
	Team1       TeamRequest `json:"team1" binding:"required"`
	Team2       TeamRequest `json:"team2" binding:"required"`
	TotalOvers  int         `json:"totalOvers"`
}

type TeamRequest struct {
	Name   string `json:"name" binding:"required"`
	ClubID string `json:"clubId"`
}

// LiveScoreRequest carries one score/status transition. Generic sports use
// team1Score/team2Score; cricket matches use the cricket scorecards. Nil
// fields leave the stored value unchanged.
type LiveScoreRequest struct {
	Team1Score    *int                     `json:"team1Score"`
	Team2Score    *int                     `json:"team2Score"`
	Status        string                   `json:"status"`
	Notes         string                   `json:"notes"`
	Winner        string                   `json:"winner"`
	Team1Cricket  *matchrepo.CricketScore  `json:"team1Cricket"`
	Team2Cricket  *matchrepo.CricketScore  `json:"team2Cricket"`
	CricketConfig *matchrepo.CricketConfig `json:"cricketConfig"`
}

type StatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type TossRequest struct {
	TossWinner string `json:"tossWinner"`
	Decision   string `json:"decision"`
}

// SwitchInningsRequest exists for wire compatibility with older scoreboard
// clients. Target is always recomputed from the first innings, never trusted.
type SwitchInningsRequest struct {
	Target int `json:"target"`
}

// InningsSwitchSummary reports the chase the second innings starts with.
type InningsSwitchSummary struct {
	Target          int     `json:"target"`
	RequiredRunRate float64 `json:"requiredRunRate"`
}

// LiveUpdatesResponse is the live-updates history payload, newest first.
type LiveUpdatesResponse struct {
	Title       string                 `json:"title"`
	Team1       string                 `json:"team1"`
	Team2       string                 `json:"team2"`
	LiveUpdates []matchrepo.LiveUpdate `json:"liveUpdates"`
}
