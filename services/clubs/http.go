package clubs

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Clubs is the interface for the club directory service.
type Clubs interface {
	ListClubs(c *gin.Context) ([]*Club, error)
	GetClub(c *gin.Context, clubID string) (*ClubDetails, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Clubs

	// The router instance to configure the HTTP routes.
	Router Router
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("", h.listClubsHandler)
	r.GET("/:club_id", h.getClubHandler)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) listClubsHandler(c *gin.Context) {
	clubs, err := s.Service.ListClubs(c)
	if err != nil {
		log.Printf("Failed to list clubs: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"clubs": clubs})
}

func (s *httpHandler) getClubHandler(c *gin.Context) {
	details, err := s.Service.GetClub(c, c.Param("club_id"))
	if err != nil {
		if errors.Is(err, ErrClubNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "club not found"})
			c.Abort()
			return
		}
		log.Printf("Failed to get club: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, details)
}
