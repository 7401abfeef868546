package clubs

import (
	"errors"
	"fmt"
	"log"
	"sort"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	matchrepo "github.com/campusarena/sports-portal/repos/matches"
)

var ErrClubNotFound = errors.New("club not found")

type ClubsService struct {
	firestoreClient *firestore.Client
	matchRepo       *matchrepo.Service
}

func NewClubsService(firestoreClient *firestore.Client, matchRepo *matchrepo.Service) *ClubsService {
	return &ClubsService{
		firestoreClient: firestoreClient,
		matchRepo:       matchRepo,
	}
}

func (s *ClubsService) ListClubs(c *gin.Context) ([]*Club, error) {
	iter := s.firestoreClient.Collection("Clubs").Documents(c)
	defer iter.Stop()

	var clubs []*Club
	for {
		doc, err := iter.Next()
		if err != nil {
			if err == iterator.Done {
				break
			}
			log.Printf("Failed to list clubs from Firestore: %v\n", err)
			return nil, err
		}

		club, err := docToClub(doc)
		if err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}

	sort.Slice(clubs, func(i, j int) bool {
		return clubs[i].Name < clubs[j].Name
	})
	return clubs, nil
}

func (s *ClubsService) GetClub(c *gin.Context, clubID string) (*ClubDetails, error) {
	doc, err := s.firestoreClient.Collection("Clubs").Doc(clubID).Get(c)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrClubNotFound
		}
		log.Printf("Failed to get club from Firestore: %v\n", err)
		return nil, err
	}

	club, err := docToClub(doc)
	if err != nil {
		return nil, err
	}

	matches, err := s.matchRepo.ByClub(c, clubID)
	if err != nil {
		return nil, err
	}

	return &ClubDetails{
		Club:    club,
		Matches: matches,
	}, nil
}

func docToClub(doc *firestore.DocumentSnapshot) (*Club, error) {
	var club Club
	if err := doc.DataTo(&club); err != nil {
		// If this fails, we have an inconsistency error as we control both
		// the data written to Firestore and the shape of our Club struct.
		return nil, fmt.Errorf(
			"consistency error. Converting %+v to internal club struct failed: %w",
			doc,
			err,
		)
	}
	club.ID = doc.Ref.ID
	return &club, nil
}
