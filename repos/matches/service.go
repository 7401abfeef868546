package matches

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	"golang.org/x/xerrors"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const collection = "Matches"

// ErrMatchNotFound is returned when a match id resolves to no document.
var ErrMatchNotFound = errors.New("match not found")

// Service persists Match documents in Firestore.
type Service struct {
	Client *firestore.Client
}

func NewService(client *firestore.Client) *Service {
	return &Service{
		Client: client,
	}
}

func (s Service) Get(ctx context.Context, matchID string) (*Match, error) {
	doc, err := s.Client.Collection(collection).Doc(matchID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, ErrMatchNotFound
		}
		log.Printf("Failed to get match from Firestore: %v\n", err)
		return nil, err
	}
	return docToMatch(doc)
}

func (s Service) Create(ctx context.Context, match *Match) (string, error) {
	ref := s.Client.Collection(collection).NewDoc()
	if _, err := ref.Set(ctx, match); err != nil {
		log.Printf("Failed to write match to Firestore: %v\n", err)
		return "", err
	}
	match.ID = ref.ID
	return ref.ID, nil
}

// Transition runs fn against the current document state inside a transaction
// and applies the updates fn returns. A failing fn leaves the document
// untouched; concurrent transitions against the same match retry instead of
// overwriting each other. The committed document is returned.
func (s Service) Transition(ctx context.Context, matchID string, fn func(*Match) ([]firestore.Update, error)) (*Match, error) {
	docRef := s.Client.Collection(collection).Doc(matchID)

	err := s.Client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return ErrMatchNotFound
			}
			return err
		}

		match, err := docToMatch(doc)
		if err != nil {
			return err
		}

		updates, err := fn(match)
		if err != nil {
			return err
		}
		return tx.Update(docRef, updates)
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, matchID)
}

// ByClub returns every match where the club appears on either side.
func (s Service) ByClub(ctx context.Context, clubID string) ([]*Match, error) {
	var result []*Match
	seen := map[string]bool{}

	for _, side := range []string{"team1.clubId", "team2.clubId"} {
		iter := s.Client.Collection(collection).Where(side, "==", clubID).Documents(ctx)
		for {
			doc, err := iter.Next()
			if err == iterator.Done {
				break
			}
			if err != nil {
				iter.Stop()
				log.Printf("Failed to query matches for club %s: %v\n", clubID, err)
				return nil, err
			}
			if seen[doc.Ref.ID] {
				continue
			}
			seen[doc.Ref.ID] = true

			match, err := docToMatch(doc)
			if err != nil {
				iter.Stop()
				return nil, err
			}
			result = append(result, match)
		}
		iter.Stop()
	}

	return result, nil
}

// All streams every match document, for aggregation surfaces.
func (s Service) All(ctx context.Context) ([]*Match, error) {
	docs, err := s.Client.Collection(collection).Documents(ctx).GetAll()
	if err != nil {
		log.Printf("Failed to list matches from Firestore: %v\n", err)
		return nil, err
	}

	var result []*Match
	for _, doc := range docs {
		match, err := docToMatch(doc)
		if err != nil {
			return nil, err
		}
		result = append(result, match)
	}
	return result, nil
}

func docToMatch(doc *firestore.DocumentSnapshot) (*Match, error) {
	var match Match
	if err := doc.DataTo(&match); err != nil {
		// If this fails, we have an inconsistency error as we control both
		// the data written to Firestore and the shape of our Match struct.
		return nil, xerrors.Errorf(
			"consistency error. Converting %+v to internal match struct failed: %w",
			doc,
			err,
		)
	}
	match.ID = doc.Ref.ID
	return &match, nil
}
