package resend

import (
	"context"
	"fmt"
	"log"
	"os"

	"cloud.google.com/go/firestore"
	resend "github.com/resend/resend-go/v2"

	matches "github.com/campusarena/sports-portal/repos/matches"
)

// Service sends portal mail and records scorer access grants.
type Service struct {
	firestoreClient *firestore.Client
	resendClient    *resend.Client
	hostURL         string
}

func NewService(firestoreClient *firestore.Client, hostURL string) *Service {
	resendKey := os.Getenv("RESEND_KEY")
	return &Service{
		firestoreClient: firestoreClient,
		resendClient:    resend.NewClient(resendKey),
		hostURL:         hostURL,
	}
}

// SendAccessMail mails a scorer the link that redeems their access code.
func (s Service) SendAccessMail(ctx context.Context, request AccessRequest, accessCode string) error {
	body := getAccessTemplate(fmt.Sprintf("%s/scorer-access/%s", s.hostURL, accessCode))
	params := &resend.SendEmailRequest{
		From:    "scoring@campusarena.dev",
		To:      []string{request.Email},
		Subject: "Scorer access for your match",
		Html:    body,
	}

	if _, err := s.resendClient.Emails.Send(params); err != nil {
		log.Printf("Failed to send access mail: %v\n", err)
		return err
	}
	return nil
}

// SendResultNotice mails the final result to an address, typically a club
// contact. Failures are logged and swallowed; a lost mail never fails the
// transition that triggered it.
func (s Service) SendResultNotice(ctx context.Context, match *matches.Match, email string) {
	if email == "" || match.Result == nil {
		return
	}

	winner := "The match ended in a draw."
	switch match.Result.Winner {
	case "team1":
		winner = fmt.Sprintf("%s won.", match.Team1.Name)
	case "team2":
		winner = fmt.Sprintf("%s won.", match.Team2.Name)
	}

	params := &resend.SendEmailRequest{
		From:    "scoring@campusarena.dev",
		To:      []string{email},
		Subject: fmt.Sprintf("Final result: %s", match.Title),
		Html: fmt.Sprintf("<p>%s vs %s is completed. %s</p>",
			match.Team1.Name, match.Team2.Name, winner),
	}

	if _, err := s.resendClient.Emails.Send(params); err != nil {
		log.Printf("Failed to send result notice: %v\n", err)
	}
}

// GrantScorerAccess adds a user to the match's allowed scorers.
func (s Service) GrantScorerAccess(ctx context.Context, matchID, userID string) error {
	docRef := s.firestoreClient.Collection("Matches").Doc(matchID)

	// Transaction to keep the grant atomic against concurrent redeems.
	err := grantAccessToDoc(ctx, s, docRef, userID)
	if err != nil {
		log.Printf("Failed to update document: %v", err)
		return err
	}

	return nil
}

func grantAccessToDoc(ctx context.Context, s Service, docRef *firestore.DocumentRef, userID string) error {
	return s.firestoreClient.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(docRef)
		if err != nil {
			return err
		}

		var allowedScorers []string
		if data, err := doc.DataAt("allowedScorers"); err == nil {
			if users, ok := data.([]interface{}); ok {
				for _, user := range users {
					if userStr, ok := user.(string); ok {
						allowedScorers = append(allowedScorers, userStr)
					}
				}
			}
		}

		for _, user := range allowedScorers {
			if user == userID {
				// User already has access, nothing to update.
				return nil
			}
		}

		updatedScorers := append(allowedScorers, userID)
		return tx.Update(docRef, []firestore.Update{
			{Path: "allowedScorers", Value: updatedScorers},
		})
	})
}

func getAccessTemplate(url string) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
    <style>
        body {
            font-family: Arial, sans-serif;
            background-color: #f4f4f4;
            margin: 0;
            padding: 20px;
        }
        .container {
            background-color: #ffffff;
            max-width: 600px;
            margin: 0 auto;
            padding: 20px;
            box-shadow: 0 0 10px rgba(0,0,0,0.1);
        }
        .button {
            display: block;
            width: 200px;
            height: 50px;
            margin: 20px auto;
            background-color: #007BFF;
            color: #ffffff;
            font-size: 16px;
            text-align: center;
            line-height: 50px;
            text-decoration: none;
            border-radius: 5px;
        }
        .button:hover {
            background-color: #0056b3;
        }
    </style>
</head>
<body>
    <div class="container">
        <h2>Hello,</h2>
        <p>You have been invited to score a match. Click the button below to activate your access:</p>
        <a href="%s" class="button">Activate access</a>
        <p>Best regards,<br>Campus Arena</p>
    </div>
</body>
</html>`, url)
}
