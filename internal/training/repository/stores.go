// Package repository persists the result log, user progress and settings.
// Stores are small interfaces so the service layer can run against durable
// storage, or against memory when storage is unavailable.
package repository

import (
	"math"

	"github.com/architect/ear-training/internal/training/models"
	"gorm.io/gorm"
)

// ResultStore is the append-only, size-bounded history of answered
// questions.
type ResultStore interface {
	// Append stores a result, evicting the oldest entry once the cap is hit.
	Append(result *models.TrainingResult) error
	// All returns every stored result in append order.
	All() ([]models.TrainingResult, error)
	// ByMode returns results for one training mode in append order.
	ByMode(mode models.TrainingMode) ([]models.TrainingResult, error)
	// Recent returns results from the trailing n days.
	Recent(days int) ([]models.TrainingResult, error)
}

// ProgressStore holds the single user-progress record.
type ProgressStore interface {
	// Get returns the stored progress, or the fresh-install default if the
	// record was never written.
	Get() (models.UserProgress, error)
	Save(progress models.UserProgress) error
}

// SettingsStore holds the single training-settings record.
type SettingsStore interface {
	// Get returns the stored settings; found is false if never saved.
	Get() (settings models.TrainingSettings, found bool, err error)
	Save(settings models.TrainingSettings) error
}

// DefaultResultCap bounds the result log to the most recent entries.
const DefaultResultCap = 1000

// Accuracy returns the rounded percent of correct results, 0 for an empty
// slice.
func Accuracy(results []models.TrainingResult) int {
	if len(results) == 0 {
		return 0
	}
	correct := 0
	for _, r := range results {
		if r.Correct {
			correct++
		}
	}
	return int(math.Round(float64(correct) / float64(len(results)) * 100))
}

// Migrate creates the tables backing the stores.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.TrainingResult{},
		&models.ProgressRecord{},
		&models.SettingsRecord{},
	)
}
