package clubs

import (
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
)

type Club struct {
	ID           string `firestore:"-" json:"id"`
	Name         string `firestore:"name" json:"name"`
	Description  string `firestore:"description" json:"description,omitempty"`
	Sport        string `firestore:"sport" json:"sport,omitempty"`
	ContactEmail string `firestore:"contactEmail" json:"contactEmail,omitempty"`
}

// ClubDetails is a club plus every match either of its teams played.
type ClubDetails struct {
	Club    *Club              `json:"club"`
	Matches []*matchrepo.Match `json:"matches"`
}
