package repository

import (
	"time"

	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/training/models"
	"gorm.io/gorm"
)

// GormResultStore persists results through GORM (SQLite or PostgreSQL).
type GormResultStore struct {
	db  *gorm.DB
	cap int
}

// NewGormResultStore wraps a database handle. cap <= 0 uses the default
// 1000-entry bound.
func NewGormResultStore(db *gorm.DB, cap int) *GormResultStore {
	if cap <= 0 {
		cap = DefaultResultCap
	}
	return &GormResultStore{db: db, cap: cap}
}

// Append inserts the result and evicts the oldest rows beyond the cap in
// the same transaction, so no reader observes a partial write.
func (s *GormResultStore) Append(result *models.TrainingResult) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(result).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.TrainingResult{}).Count(&count).Error; err != nil {
			return err
		}
		excess := count - int64(s.cap)
		if excess <= 0 {
			return nil
		}

		var ids []uint
		if err := tx.Model(&models.TrainingResult{}).
			Order("id asc").
			Limit(int(excess)).
			Pluck("id", &ids).Error; err != nil {
			return err
		}
		return tx.Delete(&models.TrainingResult{}, ids).Error
	})
	if err != nil {
		return errors.PersistenceUnavailable(err.Error())
	}
	return nil
}

// All returns every result in append order.
func (s *GormResultStore) All() ([]models.TrainingResult, error) {
	var results []models.TrainingResult
	if err := s.db.Order("id asc").Find(&results).Error; err != nil {
		return nil, errors.PersistenceUnavailable(err.Error())
	}
	return results, nil
}

// ByMode returns results for one training mode in append order.
func (s *GormResultStore) ByMode(mode models.TrainingMode) ([]models.TrainingResult, error) {
	var results []models.TrainingResult
	if err := s.db.Where("mode = ?", mode).Order("id asc").Find(&results).Error; err != nil {
		return nil, errors.PersistenceUnavailable(err.Error())
	}
	return results, nil
}

// Recent returns results whose timestamp falls within the trailing n days.
func (s *GormResultStore) Recent(days int) ([]models.TrainingResult, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	var results []models.TrainingResult
	if err := s.db.Where("timestamp >= ?", cutoff).Order("id asc").Find(&results).Error; err != nil {
		return nil, errors.PersistenceUnavailable(err.Error())
	}
	return results, nil
}
