package stats

import (
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

// Stats is the interface for the aggregate stats service.
type Stats interface {
	GetStats(c *gin.Context) (*ComplexStats, error)
	UpdateStats(c *gin.Context) (*ComplexStats, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Stats

	// The router instance to configure the HTTP routes.
	Router Router

	// Guard protects the write-back route; reads stay public.
	Guard []gin.HandlerFunc
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.GET("", h.getStatsHandler)
	r.GET("/update", append(append([]gin.HandlerFunc{}, h.Guard...), h.updateStatsHandler)...)
}

type httpHandler struct {
	HTTPOptions
}

func (s *httpHandler) getStatsHandler(c *gin.Context) {
	stats, err := s.Service.GetStats(c)
	if err != nil {
		log.Printf("Failed to compute stats: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *httpHandler) updateStatsHandler(c *gin.Context) {
	stats, err := s.Service.UpdateStats(c)
	if err != nil {
		log.Printf("Failed to update stats: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "something went wrong"})
		c.Abort()
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": "Stats updated", "stats": stats})
}
