package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/triprec/trips-backend-go/internal/models"
	"github.com/triprec/trips-backend-go/internal/trip"
	"github.com/triprec/trips-backend-go/pkg/response"
)

// SessionHandler handles HTTP requests for recording sessions
type SessionHandler struct {
	engine *trip.Engine
}

// NewSessionHandler creates a new session handler
func NewSessionHandler(engine *trip.Engine) *SessionHandler {
	return &SessionHandler{engine: engine}
}

type startRequest struct {
	SessionID   string `json:"sessionId"`
	Destination *struct {
		Lat *float64 `json:"lat"`
		Lng *float64 `json:"lng"`
	} `json:"destination"`
}

type ingestRequest struct {
	Fix   *models.Fix  `json:"fix"`
	Fixes []models.Fix `json:"fixes"`
}

// StartSession handles POST /api/v1/sessions
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req startRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	var dest *models.Destination
	if req.Destination != nil {
		var err error
		dest, err = models.NewDestination(req.Destination.Lat, req.Destination.Lng)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	s, err := h.engine.Start(req.SessionID, dest)
	if err != nil {
		switch {
		case errors.Is(err, trip.ErrSessionActive), errors.Is(err, trip.ErrDuplicateSession), errors.Is(err, trip.ErrNotIdle):
			response.Conflict(c, err.Error())
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{
		"sessionId": s.ID,
		"state":     s.State().String(),
	})
}

// IngestFixes handles POST /api/v1/sessions/:id/fixes.
// The body carries either a single fix or a delivery batch.
func (h *SessionHandler) IngestFixes(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	fixes := req.Fixes
	if req.Fix != nil {
		fixes = append([]models.Fix{*req.Fix}, fixes...)
	}
	if len(fixes) == 0 {
		response.BadRequest(c, "No fixes supplied")
		return
	}

	summary, arrived, err := h.engine.Ingest(c.Request.Context(), c.Param("id"), fixes)
	if err != nil {
		switch {
		case errors.Is(err, trip.ErrSessionNotFound):
			response.NotFound(c, "Session not found")
		case errors.Is(err, trip.ErrNotRecording):
			response.Conflict(c, "Session is not recording")
		default:
			response.InternalError(c, err.Error())
		}
		return
	}

	response.Success(c, gin.H{
		"arrived": arrived,
		"summary": summary,
	})
}

// StopSession handles POST /api/v1/sessions/:id/stop
func (h *SessionHandler) StopSession(c *gin.Context) {
	summary, err := h.engine.Stop(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, trip.ErrSessionNotFound) {
			response.NotFound(c, "Session not found")
			return
		}
		response.InternalError(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"summary": summary,
	})
}

// GetSession handles GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.engine.Session(c.Param("id"))
	if err != nil {
		response.NotFound(c, "Session not found")
		return
	}

	status := gin.H{
		"sessionId":      s.ID,
		"state":          s.State().String(),
		"acceptedPoints": s.AcceptedCount(),
	}
	if reason := s.Reason(); reason != "" {
		status["stopReason"] = reason
	}
	response.Success(c, status)
}
