package services

import (
	"testing"
	"time"

	commonerrors "github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedResults(t *testing.T, store repository.ResultStore, mode models.TrainingMode, correct, incorrect int, age time.Duration) {
	t.Helper()
	ts := time.Now().Add(-age)
	for i := 0; i < correct; i++ {
		require.NoError(t, store.Append(&models.TrainingResult{
			Mode: mode, GameMode: models.GameChallenge, Correct: true,
			Answer: "C", UserAnswer: "C", Timestamp: ts, Difficulty: theory.Beginner,
		}))
	}
	for i := 0; i < incorrect; i++ {
		require.NoError(t, store.Append(&models.TrainingResult{
			Mode: mode, GameMode: models.GameChallenge, Correct: false,
			Answer: "C", UserAnswer: "D", Timestamp: ts, Difficulty: theory.Beginner,
		}))
	}
}

func TestCheckUnlocks_ModeChain(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)

	progress := svc.CheckUnlocks(models.DefaultProgress())
	assert.False(t, progress.HasMode(models.ModeInterval))

	// 19 correct note answers are not enough; the 20th tips it.
	seedResults(t, store, models.ModeNote, 19, 5, time.Hour)
	progress = svc.CheckUnlocks(models.DefaultProgress())
	assert.False(t, progress.HasMode(models.ModeInterval))

	seedResults(t, store, models.ModeNote, 1, 0, time.Hour)
	progress = svc.CheckUnlocks(models.DefaultProgress())
	assert.True(t, progress.HasMode(models.ModeInterval))
	assert.False(t, progress.HasMode(models.ModeChord))
}

func TestCheckUnlocks_ChainIsSequential(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)

	// Plenty of correct interval answers, but interval mode itself was
	// never unlocked, so chord mode stays locked too.
	seedResults(t, store, models.ModeInterval, 30, 0, time.Hour)
	progress := svc.CheckUnlocks(models.DefaultProgress())
	assert.False(t, progress.HasMode(models.ModeChord))

	// Once interval is held, the same log unlocks chord.
	unlocked := models.DefaultProgress()
	unlocked.UnlockedModes = append(unlocked.UnlockedModes, models.ModeInterval)
	progress = svc.CheckUnlocks(unlocked)
	assert.True(t, progress.HasMode(models.ModeChord))
}

func TestCheckUnlocks_NeverShrinks(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)

	// Progress claims everything despite an empty log; nothing is revoked.
	progress := models.UserProgress{
		UnlockedModes:        append([]models.TrainingMode{}, models.Modes...),
		UnlockedDifficulties: append([]string{}, theory.DifficultyOrder...),
	}
	after := svc.CheckUnlocks(progress)
	assert.ElementsMatch(t, models.Modes, after.UnlockedModes)
	assert.ElementsMatch(t, theory.DifficultyOrder, after.UnlockedDifficulties)
}

func TestCheckUnlocks_DifficultyTiers(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)

	// 20 recent results at 60% accuracy unlock elementary only.
	seedResults(t, store, models.ModeNote, 12, 8, time.Hour)
	progress := svc.CheckUnlocks(models.DefaultProgress())
	assert.True(t, progress.HasDifficulty(theory.Elementary))
	assert.False(t, progress.HasDifficulty(theory.Intermediate))

	// 50 results at 70% reach intermediate; 100 at 80% reach advanced.
	store = repository.NewMemoryResultStore(0)
	svc = NewUnlockService(store)
	seedResults(t, store, models.ModeNote, 35, 15, time.Hour)
	progress = svc.CheckUnlocks(models.DefaultProgress())
	assert.True(t, progress.HasDifficulty(theory.Intermediate))
	assert.False(t, progress.HasDifficulty(theory.Advanced))

	store = repository.NewMemoryResultStore(0)
	svc = NewUnlockService(store)
	seedResults(t, store, models.ModeNote, 80, 20, time.Hour)
	progress = svc.CheckUnlocks(models.DefaultProgress())
	assert.True(t, progress.HasDifficulty(theory.Advanced))
}

func TestCheckUnlocks_OldResultsDoNotCountForDifficulty(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)

	// Perfect run, but eight days ago: outside the trailing week.
	seedResults(t, store, models.ModeNote, 100, 0, 8*24*time.Hour)
	progress := svc.CheckUnlocks(models.DefaultProgress())
	assert.False(t, progress.HasDifficulty(theory.Elementary))
}

func TestCheckUnlocks_Achievements(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)

	progress := svc.CheckUnlocks(models.DefaultProgress())
	assert.Empty(t, progress.Achievements)

	seedResults(t, store, models.ModeNote, 1, 0, time.Hour)
	progress = svc.CheckUnlocks(models.DefaultProgress())
	assert.True(t, progress.HasAchievement("first_steps"))
	assert.False(t, progress.HasAchievement("century"))

	seedResults(t, store, models.ModeNote, 99, 0, time.Hour)
	progress = svc.CheckUnlocks(models.DefaultProgress())
	assert.True(t, progress.HasAchievement("century"))
	// 100 recent answers at 100% accuracy also earn the weekly-accuracy
	// achievement.
	assert.True(t, progress.HasAchievement("sharp_ear"))

	completed := models.DefaultProgress()
	completed.TotalChallengesCompleted = 10
	progress = svc.CheckUnlocks(completed)
	assert.True(t, progress.HasAchievement("challenge_10"))
}

func TestCheckUnlocks_AchievementsAreIdempotent(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	svc := NewUnlockService(store)
	seedResults(t, store, models.ModeNote, 1, 0, time.Hour)

	progress := svc.CheckUnlocks(models.DefaultProgress())
	progress = svc.CheckUnlocks(progress)
	assert.Equal(t, 1, countOf(progress.Achievements, "first_steps"))
}

func countOf(haystack []string, needle string) int {
	n := 0
	for _, s := range haystack {
		if s == needle {
			n++
		}
	}
	return n
}

func TestStatistics_Empty(t *testing.T) {
	svc := NewStatsService(repository.NewMemoryResultStore(0))

	stats, err := svc.Statistics()
	require.NoError(t, err)
	assert.Equal(t, 0, stats.TotalResults)
	assert.Equal(t, 0, stats.WeeklyAccuracy)
	assert.Equal(t, 0, stats.DailyAverage)
	assert.Len(t, stats.AccuracyTrend, 7)
	assert.Len(t, stats.ModeStats, 4)
	assert.Empty(t, stats.WeakPoints)
}

func TestStatistics_TrendBucketsByCalendarDay(t *testing.T) {
	fixed := time.Date(2025, time.March, 10, 15, 0, 0, 0, time.Local)
	now = func() time.Time { return fixed }
	defer func() { now = time.Now }()

	store := repository.NewMemoryResultStore(0)
	// Two answers yesterday (one correct), three today (all correct).
	yesterday := fixed.AddDate(0, 0, -1)
	for _, r := range []models.TrainingResult{
		{Mode: models.ModeNote, Correct: true, Answer: "C", Timestamp: yesterday},
		{Mode: models.ModeNote, Correct: false, Answer: "C", Timestamp: yesterday},
		{Mode: models.ModeNote, Correct: true, Answer: "D", Timestamp: fixed},
		{Mode: models.ModeNote, Correct: true, Answer: "D", Timestamp: fixed},
		{Mode: models.ModeNote, Correct: true, Answer: "D", Timestamp: fixed},
	} {
		result := r
		require.NoError(t, store.Append(&result))
	}

	stats, err := NewStatsService(store).Statistics()
	require.NoError(t, err)

	trend := stats.AccuracyTrend
	require.Len(t, trend, 7)
	assert.Equal(t, "3/4", trend[0].Date)
	assert.Equal(t, 0, trend[0].Accuracy)
	assert.Equal(t, "3/9", trend[5].Date)
	assert.Equal(t, 50, trend[5].Accuracy)
	assert.Equal(t, "3/10", trend[6].Date)
	assert.Equal(t, 100, trend[6].Accuracy)

	assert.Equal(t, 5, stats.TotalResults)
	assert.Equal(t, 1, stats.DailyAverage) // round(5 / 7)
}

func TestStatistics_ModeStats(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	seedResults(t, store, models.ModeNote, 6, 4, time.Hour)
	seedResults(t, store, models.ModeInterval, 2, 0, time.Hour)

	stats, err := NewStatsService(store).ModeStats()
	require.NoError(t, err)
	require.Len(t, stats, 4)

	assert.Equal(t, models.ModeNote, stats[0].Mode)
	assert.Equal(t, 10, stats[0].Total)
	assert.Equal(t, 6, stats[0].Correct)
	assert.Equal(t, 60, stats[0].Accuracy)

	assert.Equal(t, models.ModeInterval, stats[1].Mode)
	assert.Equal(t, 100, stats[1].Accuracy)

	assert.Equal(t, 0, stats[2].Total)
	assert.Equal(t, 0, stats[2].Accuracy)
}

func TestWeakPoints_ThresholdAndOrder(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	seed := func(answer string, correct, incorrect int) {
		for i := 0; i < correct; i++ {
			require.NoError(t, store.Append(&models.TrainingResult{
				Mode: models.ModeInterval, Correct: true, Answer: answer, Timestamp: time.Now(),
			}))
		}
		for i := 0; i < incorrect; i++ {
			require.NoError(t, store.Append(&models.TrainingResult{
				Mode: models.ModeInterval, Correct: false, Answer: answer, Timestamp: time.Now(),
			}))
		}
	}

	seed("Minor 2nd", 4, 6)   // 40%, weak
	seed("Tritone", 6, 4)     // 60%, weak
	seed("Major 3rd", 8, 2)   // 80%, fine
	seed("Perfect 5th", 7, 3) // 70% is the boundary and not weak

	stats, err := NewStatsService(store).Statistics()
	require.NoError(t, err)

	require.Len(t, stats.WeakPoints, 2)
	assert.Equal(t, "Minor 2nd", stats.WeakPoints[0].Item)
	assert.Equal(t, 40, stats.WeakPoints[0].Accuracy)
	assert.Equal(t, "Tritone", stats.WeakPoints[1].Item)
}

func TestWeakPoints_TopFiveOnly(t *testing.T) {
	store := repository.NewMemoryResultStore(0)
	concepts := []string{"C", "D", "E", "F", "G", "A", "B"}
	for i, concept := range concepts {
		// Accuracies .. 0%, 10%, 20%, ..., all weak; weakest five survive.
		for j := 0; j < 10; j++ {
			require.NoError(t, store.Append(&models.TrainingResult{
				Mode: models.ModeNote, Correct: j < i, Answer: concept, Timestamp: time.Now(),
			}))
		}
	}

	stats, err := NewStatsService(store).Statistics()
	require.NoError(t, err)
	require.Len(t, stats.WeakPoints, 5)
	assert.Equal(t, "C", stats.WeakPoints[0].Item)
	assert.Equal(t, 0, stats.WeakPoints[0].Accuracy)
	assert.Equal(t, "G", stats.WeakPoints[4].Item)
	assert.Equal(t, 40, stats.WeakPoints[4].Accuracy)
}

func TestSettingsService_GetDefaultsWhenUnsaved(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsStore(), repository.NewMemoryProgressStore())

	settings, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, models.DefaultSettings(), settings)
}

func TestSettingsService_SaveRoundTrip(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsStore(), repository.NewMemoryProgressStore())

	settings := models.DefaultSettings()
	settings.NoteRange = []string{"C", "E", "G"}
	settings.PlayMode = models.PlayAscending
	require.NoError(t, svc.Save(settings))

	got, err := svc.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, got)
}

func TestSettingsService_SaveValidation(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsStore(), repository.NewMemoryProgressStore())

	cases := map[string]func(*models.TrainingSettings){
		"empty note range":    func(s *models.TrainingSettings) { s.NoteRange = nil },
		"unknown pitch class": func(s *models.TrainingSettings) { s.NoteRange = []string{"H"} },
		"inverted octaves":    func(s *models.TrainingSettings) { s.OctaveRange = [2]int{5, 3} },
		"octave too high":     func(s *models.TrainingSettings) { s.OctaveRange = [2]int{4, 9} },
		"unknown difficulty":  func(s *models.TrainingSettings) { s.Difficulty = "nightmare" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			settings := models.DefaultSettings()
			mutate(&settings)
			err := svc.Save(settings)
			require.Error(t, err)
			appErr, ok := err.(*commonerrors.AppError)
			require.True(t, ok)
			assert.Equal(t, commonerrors.CodeInvalidConfig, appErr.Code)
		})
	}
}

func TestSettingsService_SaveRejectsLockedDifficulty(t *testing.T) {
	svc := NewSettingsService(repository.NewMemorySettingsStore(), repository.NewMemoryProgressStore())

	settings := models.DefaultSettings()
	settings.Difficulty = theory.Advanced
	err := svc.Save(settings)
	require.Error(t, err)
	appErr, ok := err.(*commonerrors.AppError)
	require.True(t, ok)
	assert.Equal(t, commonerrors.CodeForbidden, appErr.Code)
}
