package main

import (
	"context"
	"log"
	"os"
	"strings"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"google.golang.org/api/option"

	matchrepo "github.com/campusarena/sports-portal/repos/matches"
	resend "github.com/campusarena/sports-portal/repos/resend"

	auth "github.com/campusarena/sports-portal/pkg/auth"

	admin "github.com/campusarena/sports-portal/services/admin"
	clubs "github.com/campusarena/sports-portal/services/clubs"
	matches "github.com/campusarena/sports-portal/services/matches"
	stats "github.com/campusarena/sports-portal/services/stats"
)

func main() {
	ctx := context.Background()

	projectID := os.Getenv("FIREBASE_PROJECT_ID")
	credentialsJSON := os.Getenv("FIREBASE_CREDENTIALS_JSON")
	port := os.Getenv("PORT")
	allowOrigins := os.Getenv("CORS_HOSTS")
	hostURL := os.Getenv("HOST_URL")

	credentialsOption := option.WithCredentialsJSON([]byte(credentialsJSON))

	firestoreClient, err := firestore.NewClient(ctx, projectID, credentialsOption)
	if err != nil {
		log.Fatalf("Failed to create Firestore client: %v", err)
	}
	defer firestoreClient.Close()

	firebaseApp, err := firebase.NewApp(ctx, nil, credentialsOption)
	if err != nil {
		log.Fatalf("error initializing app: %v\n", err)
	}

	matchRepo := matchrepo.NewService(firestoreClient)
	resendService := resend.NewService(firestoreClient, hostURL)

	adminService := admin.NewAdminService(firestoreClient, firebaseApp, matchRepo, resendService)
	matchesService := matches.NewMatchesService(firestoreClient, firebaseApp, matchRepo, resendService)
	clubsService := clubs.NewClubsService(firestoreClient, matchRepo)
	statsService := stats.NewStatsService(firestoreClient, matchRepo)

	config := cors.DefaultConfig()
	config.AllowOrigins = strings.Split(allowOrigins, ",")
	config.AllowCredentials = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Access-Control-Allow-Origin"}

	router := gin.Default()
	router.Use(cors.New(config))

	adminRouter := router.Group("/admin/v1")
	adminRouter.Use(auth.AuthMiddleware(firebaseApp)) // Apply the middleware here

	matchesRouter := router.Group("/matches/v1")
	matchesRouter.Use(auth.AuthMiddleware(firebaseApp)) // Apply the middleware here

	clubsRouter := router.Group("/clubs/v1")

	statsRouter := router.Group("/stats/v1")

	admin.NewHTTPHandler(admin.HTTPOptions{
		Service: adminService,
		Router:  adminRouter,
	})

	matches.NewHTTPHandler(matches.HTTPOptions{
		Service: matchesService,
		Router:  matchesRouter,
		Scorekeeper: []gin.HandlerFunc{
			auth.RequireRoles(auth.RoleAdmin, auth.RoleStudentHead),
		},
	})

	clubs.NewHTTPHandler(clubs.HTTPOptions{
		Service: clubsService,
		Router:  clubsRouter,
	})

	stats.NewHTTPHandler(stats.HTTPOptions{
		Service: statsService,
		Router:  statsRouter,
		Guard: []gin.HandlerFunc{
			auth.AuthMiddleware(firebaseApp),
			auth.RequireRoles(auth.RoleAdmin),
		},
	})

	log.Fatal(router.Run(":" + port))
}
