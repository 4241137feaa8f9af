package handlers

import (
	"sort"

	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/common/middleware"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/repository"
	"github.com/architect/ear-training/internal/training/services"
	"github.com/architect/ear-training/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProgressHandler exposes user progress, statistics and settings.
type ProgressHandler struct {
	progress repository.ProgressStore
	unlocks  *services.UnlockService
	stats    *services.StatsService
	settings *services.SettingsService
}

func NewProgressHandler(progress repository.ProgressStore, unlocks *services.UnlockService, stats *services.StatsService, settings *services.SettingsService) *ProgressHandler {
	return &ProgressHandler{progress: progress, unlocks: unlocks, stats: stats, settings: settings}
}

// GetProgress returns progress with unlocks freshly derived from the log
// GET /api/v1/progress
func (h *ProgressHandler) GetProgress(c *gin.Context) {
	progress, err := h.progress.Get()
	if err != nil {
		// Last-known (default) state rather than an error dialog.
		progress = models.DefaultProgress()
	}

	progress = h.unlocks.CheckUnlocks(progress)
	if err := h.progress.Save(progress); err != nil {
		logger.Get().Warn("progress not persisted", zap.Error(err))
	}

	c.JSON(200, progress)
}

// GetAchievements returns the achievement catalog with earned flags
// GET /api/v1/progress/achievements
func (h *ProgressHandler) GetAchievements(c *gin.Context) {
	progress, err := h.progress.Get()
	if err != nil {
		progress = models.DefaultProgress()
	}

	type achievementStatus struct {
		Key         string `json:"key"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Earned      bool   `json:"earned"`
	}
	keys := make([]string, 0, len(services.Achievements))
	for key := range services.Achievements {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	out := make([]achievementStatus, 0, len(keys))
	for _, key := range keys {
		def := services.Achievements[key]
		out = append(out, achievementStatus{
			Key:         key,
			Name:        def.Name,
			Description: def.Description,
			Earned:      progress.HasAchievement(key),
		})
	}

	c.JSON(200, gin.H{"achievements": out})
}

// GetStatistics returns the aggregate statistics view
// GET /api/v1/statistics
func (h *ProgressHandler) GetStatistics(c *gin.Context) {
	data, err := h.stats.Statistics()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, data)
}

// GetSettings returns saved training settings (beginner defaults if unsaved)
// GET /api/v1/settings
func (h *ProgressHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.Get()
	if err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, settings)
}

// UpdateSettings validates and persists training settings
// PUT /api/v1/settings
func (h *ProgressHandler) UpdateSettings(c *gin.Context) {
	var settings models.TrainingSettings
	if err := c.ShouldBindJSON(&settings); err != nil {
		middleware.JSONErrorResponse(c, errors.Validation("invalid request body", err.Error()))
		return
	}

	if err := h.settings.Save(settings); err != nil {
		middleware.JSONErrorResponse(c, err)
		return
	}

	c.JSON(200, settings)
}
