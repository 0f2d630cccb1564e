package api

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"weatherview.app/internal/core/weather"
	"weatherview.app/pkg/errors"
)

// LookupRequest is the body of POST /api/sessions/:id/lookup
type LookupRequest struct {
	City string `json:"city" binding:"required,city"`
}

// LookupAccepted acknowledges a queued lookup
type LookupAccepted struct {
	SessionID string `json:"sessionId"`
	Seq       uint64 `json:"seq"`
}

// SessionViewParams binds GET /api/sessions/:id query parameters
type SessionViewParams struct {
	Seq  *uint64 `form:"seq"`
	Wait bool    `form:"wait"`
}

// openSession handles POST /api/sessions
func (s *HTTPServerAdapter) openSession(c *gin.Context) {
	view, err := s.dispatcher.Open()
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// submitLookup handles POST /api/sessions/:id/lookup
func (s *HTTPServerAdapter) submitLookup(c *gin.Context) {
	var req LookupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.rejectLookup(c, err)
		return
	}

	sessionID := c.Param("id")
	seq, err := s.dispatcher.Submit(sessionID, weather.Query{City: req.City})
	if err != nil {
		s.handleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, LookupAccepted{SessionID: sessionID, Seq: seq})
}

// getSession handles GET /api/sessions/:id. With wait=true and a seq it
// long-polls until that lookup is rendered, superseded or the wait times out.
func (s *HTTPServerAdapter) getSession(c *gin.Context) {
	var params SessionViewParams
	if err := c.ShouldBindQuery(&params); err != nil {
		s.handleError(c, errors.NewValidationError("invalid session query: "+err.Error()))
		return
	}

	sessionID := c.Param("id")
	if !params.Wait || params.Seq == nil {
		view, err := s.dispatcher.View(sessionID)
		if err != nil {
			s.handleError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), s.config.AwaitTimeout)
	defer cancel()

	view, err := s.dispatcher.Await(ctx, sessionID, *params.Seq)
	if errors.IsCanceledError(err) && c.Request.Context().Err() == nil {
		view, err = s.dispatcher.View(sessionID)
	}
	if err != nil {
		s.handleError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// forgetSession handles DELETE /api/sessions/:id
func (s *HTTPServerAdapter) forgetSession(c *gin.Context) {
	if err := s.dispatcher.Forget(c.Param("id")); err != nil {
		s.handleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
