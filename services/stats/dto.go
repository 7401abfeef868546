package stats

// ComplexStats is a snapshot of activity across the whole sports complex.
type ComplexStats struct {
	Date            string `firestore:"date" json:"date"`
	TotalMatches    int    `firestore:"totalMatches" json:"totalMatches"`
	Upcoming        int    `firestore:"upcoming" json:"upcoming"`
	Live            int    `firestore:"live" json:"live"`
	Completed       int    `firestore:"completed" json:"completed"`
	Cancelled       int    `firestore:"cancelled" json:"cancelled"`
	CricketMatches  int    `firestore:"cricketMatches" json:"cricketMatches"`
	TossesRecorded  int    `firestore:"tossesRecorded" json:"tossesRecorded"`
	WithLiveUpdates int    `firestore:"withLiveUpdates" json:"withLiveUpdates"`
	LiveUpdates     int    `firestore:"liveUpdates" json:"liveUpdates"`
	UpdatedAt       int64  `firestore:"updatedAt" json:"updatedAt"`
}
