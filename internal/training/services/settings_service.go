package services

import (
	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/common/validation"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/repository"
)

// SettingsService reads and writes the persisted training settings.
type SettingsService struct {
	settings repository.SettingsStore
	progress repository.ProgressStore
}

func NewSettingsService(settings repository.SettingsStore, progress repository.ProgressStore) *SettingsService {
	return &SettingsService{settings: settings, progress: progress}
}

// Get returns the saved settings, or the beginner defaults if never saved.
func (s *SettingsService) Get() (models.TrainingSettings, error) {
	settings, found, err := s.settings.Get()
	if err != nil {
		return models.DefaultSettings(), err
	}
	if !found {
		return models.DefaultSettings(), nil
	}
	return settings, nil
}

// Save validates and persists new settings. The difficulty tier must be
// unlocked; the pitch pool must be non-empty and well-formed.
func (s *SettingsService) Save(settings models.TrainingSettings) error {
	if fieldErrs := validation.Validate(settings); len(fieldErrs) > 0 {
		return errors.InvalidConfiguration(fieldErrs[0].Field + ": " + fieldErrs[0].Message)
	}
	for _, n := range settings.NoteRange {
		if theory.NoteIndex(n) < 0 {
			return errors.InvalidConfiguration("unknown pitch class: " + n)
		}
	}
	if settings.OctaveRange[1] < settings.OctaveRange[0] {
		return errors.InvalidConfiguration("octave range is inverted")
	}
	for _, octave := range settings.OctaveRange {
		if err := validation.ValidateIntRange(octave, 0, 8); err != nil {
			return errors.InvalidConfiguration("octave out of range: " + err.Error())
		}
	}

	progress, err := s.progress.Get()
	if err == nil && !progress.HasDifficulty(settings.Difficulty) {
		return errors.Forbidden("difficulty not unlocked yet: " + settings.Difficulty)
	}

	return s.settings.Save(settings)
}
