package repository

import (
	"strings"

	apperrors "github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/training/models"
	"gorm.io/gorm"
)

// The progress and settings records are single rows with a fixed key,
// overwritten wholesale on save.
const singletonID = 1

// GormProgressStore persists the user-progress record through GORM.
type GormProgressStore struct {
	db *gorm.DB
}

func NewGormProgressStore(db *gorm.DB) *GormProgressStore {
	return &GormProgressStore{db: db}
}

func (s *GormProgressStore) Get() (models.UserProgress, error) {
	var record models.ProgressRecord
	err := s.db.First(&record, singletonID).Error
	if err == gorm.ErrRecordNotFound {
		return models.DefaultProgress(), nil
	}
	if err != nil {
		return models.DefaultProgress(), apperrors.PersistenceUnavailable(err.Error())
	}
	return progressFromRecord(record), nil
}

func (s *GormProgressStore) Save(progress models.UserProgress) error {
	record := recordFromProgress(progress)
	record.ID = singletonID
	if err := s.db.Save(&record).Error; err != nil {
		return apperrors.PersistenceUnavailable(err.Error())
	}
	return nil
}

func progressFromRecord(record models.ProgressRecord) models.UserProgress {
	progress := models.UserProgress{
		TotalChallengesCompleted: record.TotalChallengesCompleted,
		UnlockedDifficulties:     splitList(record.UnlockedDifficulties),
		Achievements:             splitList(record.Achievements),
	}
	for _, m := range splitList(record.UnlockedModes) {
		progress.UnlockedModes = append(progress.UnlockedModes, models.TrainingMode(m))
	}
	return progress
}

func recordFromProgress(progress models.UserProgress) models.ProgressRecord {
	modes := make([]string, len(progress.UnlockedModes))
	for i, m := range progress.UnlockedModes {
		modes[i] = string(m)
	}
	return models.ProgressRecord{
		UnlockedModes:            strings.Join(modes, ","),
		UnlockedDifficulties:     strings.Join(progress.UnlockedDifficulties, ","),
		TotalChallengesCompleted: progress.TotalChallengesCompleted,
		Achievements:             strings.Join(progress.Achievements, ","),
	}
}

func splitList(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

// GormSettingsStore persists the training-settings record through GORM.
type GormSettingsStore struct {
	db *gorm.DB
}

func NewGormSettingsStore(db *gorm.DB) *GormSettingsStore {
	return &GormSettingsStore{db: db}
}

func (s *GormSettingsStore) Get() (models.TrainingSettings, bool, error) {
	var record models.SettingsRecord
	err := s.db.First(&record, singletonID).Error
	if err == gorm.ErrRecordNotFound {
		return models.TrainingSettings{}, false, nil
	}
	if err != nil {
		return models.TrainingSettings{}, false, apperrors.PersistenceUnavailable(err.Error())
	}

	return models.TrainingSettings{
		NoteRange:   splitList(record.NoteRange),
		OctaveRange: [2]int{record.OctaveMin, record.OctaveMax},
		PlayMode:    models.PlayMode(record.PlayMode),
		Difficulty:  record.Difficulty,
	}, true, nil
}

func (s *GormSettingsStore) Save(settings models.TrainingSettings) error {
	record := models.SettingsRecord{
		ID:         singletonID,
		NoteRange:  strings.Join(settings.NoteRange, ","),
		OctaveMin:  settings.OctaveRange[0],
		OctaveMax:  settings.OctaveRange[1],
		PlayMode:   string(settings.PlayMode),
		Difficulty: settings.Difficulty,
	}
	if err := s.db.Save(&record).Error; err != nil {
		return apperrors.PersistenceUnavailable(err.Error())
	}
	return nil
}
