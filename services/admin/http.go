package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusarena/sports-portal/pkg/accessCode"
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
	resend "github.com/campusarena/sports-portal/repos/resend"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Admin is the interface for the scorer-access service.
type Admin interface {
	ClaimScorerAccess(c *gin.Context, request resend.AccessRequest) error
	AddScorerAccess(c *gin.Context, matchID, secret string) error
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Admin

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("/claim", h.claimHandler)
	r.GET("/access/:access_code", h.accessHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) claimHandler(c *gin.Context) {
	var request resend.AccessRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		c.Abort()
		return
	}

	if err := s.Service.ClaimScorerAccess(c, request); err != nil {
		switch {
		case errors.Is(err, matchrepo.ErrMatchNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "match not found"})
		case errors.Is(err, ErrNotMatchOwner):
			c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
		default:
			log.Printf("Failed to claim scorer access: %v\n", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		}
		c.Abort()
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"result":  "Access code sent",
		"matchID": request.MatchID,
		"email":   request.Email,
	})
}

func (s *httpHandler) accessHandler(c *gin.Context) {
	code := c.Param("access_code")
	matchID, secret, err := accessCode.Decode(code)
	if err != nil {
		log.Printf("Failed to decode access code: %v\n", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "not valid access code"})
		c.Abort()
		return
	}

	if err := s.Service.AddScorerAccess(c, matchID, secret); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "not valid access code"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"matchID": matchID})
}
