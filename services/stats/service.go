package stats

import (
	"log"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/campusarena/sports-portal/pkg/cricket"
	timehelper "github.com/campusarena/sports-portal/pkg/timeHelper"
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
)

type StatsService struct {
	firestoreClient *firestore.Client
	matchRepo       *matchrepo.Service
}

func NewStatsService(firestoreClient *firestore.Client, matchRepo *matchrepo.Service) *StatsService {
	return &StatsService{
		firestoreClient: firestoreClient,
		matchRepo:       matchRepo,
	}
}

// GetStats aggregates the current match collection into a stats snapshot.
func (s *StatsService) GetStats(c *gin.Context) (*ComplexStats, error) {
	matches, err := s.matchRepo.All(c)
	if err != nil {
		return nil, err
	}
	return aggregate(matches), nil
}

func aggregate(matches []*matchrepo.Match) *ComplexStats {
	stats := &ComplexStats{
		Date:         timehelper.GetTodaysDateString(),
		TotalMatches: len(matches),
		UpdatedAt:    timehelper.NowMillis(),
	}
	for _, match := range matches {
		switch match.Status {
		case matchrepo.StatusUpcoming:
			stats.Upcoming++
		case matchrepo.StatusLive:
			stats.Live++
		case matchrepo.StatusCompleted:
			stats.Completed++
		case matchrepo.StatusCancelled:
			stats.Cancelled++
		}

		if cricket.IsCricket(match.Sport) {
			stats.CricketMatches++
			cfg := match.MatchConfig.CricketConfig
			if cfg != nil && cfg.Toss.Completed {
				stats.TossesRecorded++
			}
		}

		if len(match.LiveUpdates) > 0 {
			stats.WithLiveUpdates++
			stats.LiveUpdates += len(match.LiveUpdates)
		}
	}
	return stats
}

// UpdateStats recomputes the snapshot and stores it under todays date, so we
// keep one document per day with the latest numbers for that day.
func (s *StatsService) UpdateStats(c *gin.Context) (*ComplexStats, error) {
	stats, err := s.GetStats(c)
	if err != nil {
		return nil, err
	}

	_, err = s.firestoreClient.Collection("Stats").Doc(stats.Date).Set(c, stats)
	if err != nil {
		log.Printf("Failed to persist stats snapshot: %v\n", err)
		return nil, err
	}
	return stats, nil
}
