// Package services holds the read/write logic above the stores: unlock
// derivation, statistics aggregation and settings handling.
package services

import (
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/repository"
	"github.com/architect/ear-training/pkg/logger"
	"go.uber.org/zap"
)

// modeUnlockRule gates a mode on the correct count of the previous mode in
// the chain. The chain is strictly sequential: a skill tree, not
// independent thresholds.
type modeUnlockRule struct {
	Unlocks  models.TrainingMode
	Requires models.TrainingMode
	Correct  int
}

var modeUnlockRules = []modeUnlockRule{
	{Unlocks: models.ModeInterval, Requires: models.ModeNote, Correct: 20},
	{Unlocks: models.ModeChord, Requires: models.ModeInterval, Correct: 30},
	{Unlocks: models.ModeScale, Requires: models.ModeChord, Correct: 40},
}

// difficultyUnlockRule gates a tier on trailing-7-day accuracy and volume.
type difficultyUnlockRule struct {
	Unlocks     string
	MinAccuracy int
	MinResults  int
}

var difficultyUnlockRules = []difficultyUnlockRule{
	{Unlocks: theory.Elementary, MinAccuracy: 60, MinResults: 20},
	{Unlocks: theory.Intermediate, MinAccuracy: 70, MinResults: 50},
	{Unlocks: theory.Advanced, MinAccuracy: 80, MinResults: 100},
}

// AchievementDef describes one earnable achievement.
type AchievementDef struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Achievements maps achievement keys to their definitions.
var Achievements = map[string]AchievementDef{
	"first_steps":      {Name: "First Steps", Description: "Answer your first question"},
	"century":          {Name: "Century", Description: "Answer 100 questions"},
	"marathon":         {Name: "Marathon", Description: "Answer 1000 questions"},
	"sharp_ear":        {Name: "Sharp Ear", Description: "Reach 90% weekly accuracy over 50 answers"},
	"all_modes":        {Name: "Complete Musician", Description: "Unlock every training mode"},
	"all_difficulties": {Name: "Virtuoso", Description: "Unlock every difficulty tier"},
	"challenge_10":     {Name: "Challenger", Description: "Finish 10 challenge runs"},
}

// UnlockService derives unlock decisions from the result log.
type UnlockService struct {
	results repository.ResultStore
}

func NewUnlockService(results repository.ResultStore) *UnlockService {
	return &UnlockService{results: results}
}

// CheckUnlocks recomputes unlock state from the result log. It only ever
// adds to the progress it is given, so repeated calls are idempotent and
// unlock sets never shrink.
func (s *UnlockService) CheckUnlocks(progress models.UserProgress) models.UserProgress {
	for _, rule := range modeUnlockRules {
		if progress.HasMode(rule.Unlocks) {
			continue
		}
		// Results in a mode the user does not hold yet cannot advance the
		// chain; each link requires the previous one.
		if !progress.HasMode(rule.Requires) {
			continue
		}
		results, err := s.results.ByMode(rule.Requires)
		if err != nil {
			logger.Get().Warn("unlock check skipped, result log unavailable",
				zap.String("mode", string(rule.Unlocks)), zap.Error(err))
			continue
		}
		if correctCount(results) >= rule.Correct {
			progress.UnlockedModes = append(progress.UnlockedModes, rule.Unlocks)
		}
	}

	recent, err := s.results.Recent(7)
	if err != nil {
		logger.Get().Warn("difficulty unlock check skipped, result log unavailable", zap.Error(err))
	} else {
		accuracy := repository.Accuracy(recent)
		for _, rule := range difficultyUnlockRules {
			if progress.HasDifficulty(rule.Unlocks) {
				continue
			}
			if accuracy >= rule.MinAccuracy && len(recent) >= rule.MinResults {
				progress.UnlockedDifficulties = append(progress.UnlockedDifficulties, rule.Unlocks)
			}
		}
	}

	return s.checkAchievements(progress)
}

func (s *UnlockService) checkAchievements(progress models.UserProgress) models.UserProgress {
	award := func(key string) {
		if !progress.HasAchievement(key) {
			progress.Achievements = append(progress.Achievements, key)
		}
	}

	if all, err := s.results.All(); err == nil {
		if len(all) >= 1 {
			award("first_steps")
		}
		if len(all) >= 100 {
			award("century")
		}
		if len(all) >= repository.DefaultResultCap {
			award("marathon")
		}
	}

	if recent, err := s.results.Recent(7); err == nil {
		if len(recent) >= 50 && repository.Accuracy(recent) >= 90 {
			award("sharp_ear")
		}
	}

	if len(progress.UnlockedModes) >= len(models.Modes) {
		award("all_modes")
	}
	if len(progress.UnlockedDifficulties) >= len(theory.DifficultyOrder) {
		award("all_difficulties")
	}
	if progress.TotalChallengesCompleted >= 10 {
		award("challenge_10")
	}

	return progress
}

func correctCount(results []models.TrainingResult) int {
	n := 0
	for _, r := range results {
		if r.Correct {
			n++
		}
	}
	return n
}
