package admin

import (
	"context"
	"errors"
	"log"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	auth "firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"

	"github.com/campusarena/sports-portal/pkg/accessCode"
	portalauth "github.com/campusarena/sports-portal/pkg/auth"
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
	resend "github.com/campusarena/sports-portal/repos/resend"
)

var (
	ErrNotMatchOwner     = errors.New("only the match owner can invite scorers")
	ErrInvalidAccessCode = errors.New("not valid access code")
)

type AdminService struct {
	firestoreClient *firestore.Client
	firebaseApp     *firebase.App
	matchRepo       *matchrepo.Service
	resendService   *resend.Service
}

func NewAdminService(firestoreClient *firestore.Client, firebaseApp *firebase.App, matchRepo *matchrepo.Service, resendService *resend.Service) *AdminService {
	return &AdminService{
		firestoreClient: firestoreClient,
		firebaseApp:     firebaseApp,
		matchRepo:       matchRepo,
		resendService:   resendService,
	}
}

// ClaimScorerAccess mails an access code for a match to a scorer.
func (s *AdminService) ClaimScorerAccess(c *gin.Context, request resend.AccessRequest) error {
	token := c.MustGet("token").(*auth.Token)

	match, err := s.matchRepo.Get(c, request.MatchID)
	if err != nil {
		return err
	}

	if match.CreatedBy != token.UID && c.GetString("role") != portalauth.RoleAdmin {
		return ErrNotMatchOwner
	}

	code := accessCode.GenerateCode(match.ID, match.ScorerSecret)
	if err := s.resendService.SendAccessMail(c, request, code); err != nil {
		return err
	}

	go func() {
		if err := s.resendService.GrantScorerAccess(context.Background(), match.ID, token.UID); err != nil {
			log.Printf("Failed to grant scorer access to inviter: %v\n", err)
		}
	}()
	return nil
}

// AddScorerAccess redeems a mailed code for the calling user.
func (s *AdminService) AddScorerAccess(c *gin.Context, matchID, secret string) error {
	token := c.MustGet("token").(*auth.Token)

	match, err := s.matchRepo.Get(c, matchID)
	if err != nil {
		return err
	}

	if secret != match.ScorerSecret {
		return ErrInvalidAccessCode
	}
	return s.resendService.GrantScorerAccess(c, match.ID, token.UID)
}
