package matches

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusarena/sports-portal/pkg/cricket"
	matchrepo "github.com/campusarena/sports-portal/repos/matches"
)

// Router is the interface for a router.
type Router interface {
	GET(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	POST(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	PUT(relativePath string, handlers ...gin.HandlerFunc) gin.IRoutes
	Use(middleware ...gin.HandlerFunc) gin.IRoutes
	Group(relativePath string, handlers ...gin.HandlerFunc) *gin.RouterGroup
}

// Scoring is the interface for the live-scoring service.
type Scoring interface {
	CreateMatch(c *gin.Context, req CreateMatchRequest) (*matchrepo.Match, error)
	GetMatch(c *gin.Context, matchID string) (*matchrepo.Match, error)
	UpdateLiveScore(c *gin.Context, matchID string, req LiveScoreRequest) (*matchrepo.Match, error)
	UpdateStatus(c *gin.Context, matchID, newStatus string) (*matchrepo.Match, error)
	RecordToss(c *gin.Context, matchID string, req TossRequest) (*matchrepo.Match, error)
	SwitchInnings(c *gin.Context, matchID string) (*matchrepo.Match, InningsSwitchSummary, error)
	LiveUpdatesHistory(c *gin.Context, matchID string) (*LiveUpdatesResponse, error)
}

// HTTPOptions contains all the options needed for the HTTP handler.
type HTTPOptions struct {

	// The service we provide the HTTP transport for.
	Service Scoring

	// The router instance to configure the HTTP routes.
	Router Router

	// Scorekeeper guards the mutating routes (admin / student_head).
	Scorekeeper []gin.HandlerFunc
}

// NewHTTPHandler creates a new HTTP handler.
func NewHTTPHandler(opts HTTPOptions) {
	r := opts.Router
	h := &httpHandler{opts}
	r.POST("", h.chain(h.createMatchHandler)...)
	r.GET("/:match_id", h.getMatchHandler)
	r.PUT("/:match_id/live-score", h.chain(h.liveScoreHandler)...)
	r.PUT("/:match_id/status", h.chain(h.statusHandler)...)
	r.PUT("/:match_id/toss", h.chain(h.tossHandler)...)
	r.PUT("/:match_id/switch-innings", h.chain(h.switchInningsHandler)...)
	r.GET("/:match_id/live-updates", h.chain(h.liveUpdatesHandler)...)
}

type httpHandler struct {
	HTTPOptions
}

func (h *httpHandler) chain(handler gin.HandlerFunc) []gin.HandlerFunc {
	return append(append([]gin.HandlerFunc{}, h.Scorekeeper...), handler)
}

func (h *httpHandler) createMatchHandler(c *gin.Context) {
	var req CreateMatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		c.Abort()
		return
	}

	match, err := h.Service.CreateMatch(c, req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Match created",
		"match":   match,
	})
}

func (h *httpHandler) getMatchHandler(c *gin.Context) {
	match, err := h.Service.GetMatch(c, c.Param("match_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "match": match})
}

func (h *httpHandler) liveScoreHandler(c *gin.Context) {
	var req LiveScoreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		c.Abort()
		return
	}

	match, err := h.Service.UpdateLiveScore(c, c.Param("match_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Score updated",
		"match":   match,
	})
}

func (h *httpHandler) statusHandler(c *gin.Context) {
	var req StatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		c.Abort()
		return
	}

	match, err := h.Service.UpdateStatus(c, c.Param("match_id"), req.Status)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Status updated",
		"match":   match,
	})
}

func (h *httpHandler) tossHandler(c *gin.Context) {
	var req TossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		c.Abort()
		return
	}

	match, err := h.Service.RecordToss(c, c.Param("match_id"), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Toss recorded",
		"match":   match,
	})
}

func (h *httpHandler) switchInningsHandler(c *gin.Context) {
	// The body may carry a legacy target value; it is never trusted.
	var req SwitchInningsRequest
	_ = c.ShouldBindJSON(&req)

	match, summary, err := h.Service.SwitchInnings(c, c.Param("match_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"message":         "Innings switched",
		"match":           match,
		"target":          summary.Target,
		"requiredRunRate": summary.RequiredRunRate,
	})
}

func (h *httpHandler) liveUpdatesHandler(c *gin.Context) {
	history, err := h.Service.LiveUpdatesHistory(c, c.Param("match_id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"title":       history.Title,
		"team1":       history.Team1,
		"team2":       history.Team2,
		"liveUpdates": history.LiveUpdates,
	})
}

// fail converts service errors into the JSON envelope. Validation and
// precondition failures are 400s, a missing match is a 404, everything else
// is a 500 with a generic message.
func (h *httpHandler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, matchrepo.ErrMatchNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "match not found"})
	case isBadRequest(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	default:
		log.Printf("Match operation failed: %v\n", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "something went wrong"})
	}
	c.Abort()
}

func isBadRequest(err error) bool {
	for _, candidate := range []error{
		ErrInvalidStatus,
		ErrInvalidTossRequest,
		ErrNotCricket,
		ErrTossAlreadyRecorded,
		ErrTossNotRecorded,
		ErrInningsAlreadySwitched,
		ErrMissingCricketConfig,
		ErrNegativeScore,
		cricket.ErrInvalidScore,
	} {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}
