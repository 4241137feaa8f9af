package handlers

import (
	"github.com/architect/ear-training/internal/audio"
	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/common/middleware"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/services"
	"github.com/architect/ear-training/internal/training/session"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes the training session lifecycle.
type SessionHandler struct {
	manager  *session.Manager
	settings *services.SettingsService
}

func NewSessionHandler(manager *session.Manager, settings *services.SettingsService) *SessionHandler {
	return &SessionHandler{manager: manager, settings: settings}
}

// sessionResponse is a session snapshot plus the playback plan for the
// current question.
type sessionResponse struct {
	session.Snapshot
	Playback []audio.NoteEvent `json:"playback"`
}

func toResponse(snap session.Snapshot) sessionResponse {
	return sessionResponse{
		Snapshot: snap,
		Playback: audio.QuestionPlan(snap.Question, snap.Settings.PlayMode, audio.DefaultDuration(snap.Mode)),
	}
}

// CreateSession starts a new training session
// POST /api/v1/training/sessions
func (h *SessionHandler) CreateSession(c *gin.Context) {
	var req models.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	settings, err := h.settings.Get()
	if err != nil {
		// Settings fall back to defaults when storage is down.
		settings = models.DefaultSettings()
	}

	s, err := h.manager.Create(models.TrainingMode(req.Mode), models.GameMode(req.GameMode), req.Difficulty, settings)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(201, toResponse(s.Snapshot()))
}

// GetSession returns the current session state
// GET /api/v1/training/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, toResponse(s.Snapshot()))
}

// SubmitAnswer scores an answer for the session's current question
// POST /api/v1/training/sessions/:id/answers
func (h *SessionHandler) SubmitAnswer(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var req models.SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	outcome, err := s.SubmitAnswer(req.Answer)
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, outcome)
}

// RestartSession resets the scorecard and deals a fresh question
// POST /api/v1/training/sessions/:id/restart
func (h *SessionHandler) RestartSession(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	if err := s.Restart(); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, toResponse(s.Snapshot()))
}

// UpdateSessionSettings regenerates the question under new settings
// PUT /api/v1/training/sessions/:id/settings
func (h *SessionHandler) UpdateSessionSettings(c *gin.Context) {
	s, err := h.manager.Get(c.Param("id"))
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	var settings models.TrainingSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	if err := s.UpdateSettings(settings); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, toResponse(s.Snapshot()))
}

// DeleteSession tears a session down
// DELETE /api/v1/training/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	if err := h.manager.Delete(c.Param("id")); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(204, nil)
}
