package repository

import (
	"sync"
	"time"

	"github.com/architect/ear-training/internal/training/models"
)

// MemoryResultStore keeps the result log in memory. It backs unit tests and
// the degraded mode the service falls into when storage is unavailable:
// history is lost at shutdown but training continues.
type MemoryResultStore struct {
	mu      sync.Mutex
	results []models.TrainingResult
	nextID  uint
	cap     int
}

// NewMemoryResultStore returns an empty in-memory log. cap <= 0 uses the
// default 1000-entry bound.
func NewMemoryResultStore(cap int) *MemoryResultStore {
	if cap <= 0 {
		cap = DefaultResultCap
	}
	return &MemoryResultStore{nextID: 1, cap: cap}
}

func (s *MemoryResultStore) Append(result *models.TrainingResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result.ID = s.nextID
	s.nextID++
	s.results = append(s.results, *result)
	if len(s.results) > s.cap {
		s.results = s.results[len(s.results)-s.cap:]
	}
	return nil
}

func (s *MemoryResultStore) All() ([]models.TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.TrainingResult, len(s.results))
	copy(out, s.results)
	return out, nil
}

func (s *MemoryResultStore) ByMode(mode models.TrainingMode) ([]models.TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []models.TrainingResult
	for _, r := range s.results {
		if r.Mode == mode {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *MemoryResultStore) Recent(days int) ([]models.TrainingResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().AddDate(0, 0, -days)
	var out []models.TrainingResult
	for _, r := range s.results {
		if !r.Timestamp.Before(cutoff) {
			out = append(out, r)
		}
	}
	return out, nil
}

// MemoryProgressStore keeps the progress record in memory.
type MemoryProgressStore struct {
	mu       sync.Mutex
	progress models.UserProgress
	saved    bool
}

func NewMemoryProgressStore() *MemoryProgressStore {
	return &MemoryProgressStore{}
}

func (s *MemoryProgressStore) Get() (models.UserProgress, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.saved {
		return models.DefaultProgress(), nil
	}
	return s.progress, nil
}

func (s *MemoryProgressStore) Save(progress models.UserProgress) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.progress = progress
	s.saved = true
	return nil
}

// MemorySettingsStore keeps the settings record in memory.
type MemorySettingsStore struct {
	mu       sync.Mutex
	settings models.TrainingSettings
	saved    bool
}

func NewMemorySettingsStore() *MemorySettingsStore {
	return &MemorySettingsStore{}
}

func (s *MemorySettingsStore) Get() (models.TrainingSettings, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.settings, s.saved, nil
}

func (s *MemorySettingsStore) Save(settings models.TrainingSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings = settings
	s.saved = true
	return nil
}
