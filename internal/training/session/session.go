// Package session runs the per-training-mode state machine: question,
// scorecard, game-over and the timed transitions between rounds.
package session

import (
	"math"
	"sync"
	"time"

	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/generator"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/architect/ear-training/internal/training/repository"
	"github.com/architect/ear-training/internal/training/services"
	"github.com/architect/ear-training/pkg/logger"
	"go.uber.org/zap"
)

// baseScore is the challenge-mode score value per mode, multiplied by
// (1 + streak * 0.1) on each correct answer. The scale value continues the
// +5 progression of the first three.
var baseScore = map[models.TrainingMode]float64{
	models.ModeNote:     10,
	models.ModeInterval: 15,
	models.ModeChord:    20,
	models.ModeScale:    25,
}

const (
	// Feedback is shown for a beat before the next challenge question.
	nextQuestionDelay = time.Second
	// Zen mode reveals the answer for longer; single notes need less
	// reading time than interval or chord names.
	zenRevealDelayNote  = 2 * time.Second
	zenRevealDelayOther = 2500 * time.Millisecond
)

func zenRevealDelay(mode models.TrainingMode) time.Duration {
	if mode == models.ModeNote {
		return zenRevealDelayNote
	}
	return zenRevealDelayOther
}

// Deps are the collaborators a session transition touches.
type Deps struct {
	Generator *generator.Generator
	Results   repository.ResultStore
	Progress  repository.ProgressStore
	Unlocks   *services.UnlockService
}

// Session is one user's active training run. All transitions take the
// session lock; pending timers carry a generation number and fall silent
// if the session moved on before they fired.
type Session struct {
	ID       string
	Mode     models.TrainingMode
	GameMode models.GameMode

	mu          sync.Mutex
	settings    models.TrainingSettings
	preset      theory.DifficultyPreset
	question    *models.Question
	challenge   models.ChallengeState
	gameOver    bool
	rating      string
	revealUntil time.Time

	timer    *time.Timer
	timerGen uint64
	closed   bool

	deps Deps
}

// Snapshot is an immutable view of the session for the presentation layer.
type Snapshot struct {
	ID          string                  `json:"id"`
	Mode        models.TrainingMode     `json:"mode"`
	GameMode    models.GameMode         `json:"gameMode"`
	Settings    models.TrainingSettings `json:"settings"`
	Question    *models.Question        `json:"question"`
	Challenge   models.ChallengeState   `json:"challenge"`
	GameOver    bool                    `json:"gameOver"`
	Rating      string                  `json:"rating,omitempty"`
	RevealUntil *time.Time              `json:"revealUntil,omitempty"`
}

// AnswerOutcome is the result of one submitAnswer transition.
type AnswerOutcome struct {
	Correct       bool                  `json:"correct"`
	CorrectAnswer string                `json:"correctAnswer"`
	Challenge     models.ChallengeState `json:"challenge"`
	GameOver      bool                  `json:"gameOver"`
	Rating        string                `json:"rating,omitempty"`
	RevealUntil   *time.Time            `json:"revealUntil,omitempty"`
}

func newSession(id string, mode models.TrainingMode, gameMode models.GameMode, settings models.TrainingSettings, deps Deps) (*Session, error) {
	s := &Session{
		ID:        id,
		Mode:      mode,
		GameMode:  gameMode,
		settings:  settings,
		preset:    theory.PresetFor(settings.Difficulty),
		challenge: models.NewChallengeState(),
		deps:      deps,
	}
	if err := s.generateLocked(); err != nil {
		return nil, err
	}
	return s, nil
}

// Snapshot returns the current state under the session lock.
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Session) snapshotLocked() Snapshot {
	snap := Snapshot{
		ID:        s.ID,
		Mode:      s.Mode,
		GameMode:  s.GameMode,
		Settings:  s.settings,
		Question:  s.question,
		Challenge: s.challenge,
		GameOver:  s.gameOver,
		Rating:    s.rating,
	}
	if !s.revealUntil.IsZero() && time.Now().Before(s.revealUntil) {
		reveal := s.revealUntil
		snap.RevealUntil = &reveal
	}
	return snap
}

// SubmitAnswer scores the user's identification against the current
// question, logs the result, advances the scorecard and arms the timer for
// the next round.
func (s *Session) SubmitAnswer(answer string) (*AnswerOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, errors.NotFound("session")
	}
	if s.gameOver {
		return nil, errors.Conflict("challenge is over; restart to continue")
	}
	if s.question == nil {
		return nil, errors.Conflict("no active question")
	}
	if s.GameMode == models.GameZen && time.Now().Before(s.revealUntil) {
		return nil, errors.Conflict("answer is being revealed")
	}

	question := s.question
	correct := answer == question.Concept

	// Both game modes log every answer.
	result := &models.TrainingResult{
		Mode:       s.Mode,
		GameMode:   s.GameMode,
		Correct:    correct,
		Answer:     question.Concept,
		UserAnswer: answer,
		Timestamp:  time.Now(),
		Difficulty: s.settings.Difficulty,
	}
	if err := s.deps.Results.Append(result); err != nil {
		// History is lost for this answer but training continues.
		logger.Get().Warn("result not persisted", zap.Error(err))
	}

	outcome := &AnswerOutcome{
		Correct:       correct,
		CorrectAnswer: question.Concept,
	}

	if s.GameMode == models.GameChallenge {
		s.challenge.TotalCount++
		if correct {
			s.challenge.CorrectCount++
			s.challenge.Streak++
			if s.challenge.Streak > s.challenge.MaxStreak {
				s.challenge.MaxStreak = s.challenge.Streak
			}
			s.challenge.Score += baseScore[s.Mode] * (1 + float64(s.challenge.Streak)*0.1)
		} else {
			s.challenge.Lives--
			s.challenge.Streak = 0
		}

		if s.challenge.Lives <= 0 {
			s.endChallengeLocked()
			outcome.GameOver = true
			outcome.Rating = s.rating
		} else {
			s.armTimerLocked(nextQuestionDelay)
		}
	} else {
		// Zen mode: reveal the answer, lock answers, then move on.
		s.revealUntil = time.Now().Add(zenRevealDelay(s.Mode))
		reveal := s.revealUntil
		outcome.RevealUntil = &reveal
		s.armTimerLocked(zenRevealDelay(s.Mode))
	}

	s.checkUnlocksLocked()

	outcome.Challenge = s.challenge
	return outcome, nil
}

// Rating computes the letter grade for a finished challenge. Accuracy is
// rounded to a whole percent before comparison, lower bounds inclusive.
func Rating(correctCount, totalCount int) string {
	if totalCount == 0 {
		return "F"
	}
	accuracy := int(math.Round(float64(correctCount) / float64(totalCount) * 100))
	switch {
	case accuracy >= 90:
		return "S"
	case accuracy >= 80:
		return "A"
	case accuracy >= 70:
		return "B"
	case accuracy >= 60:
		return "C"
	case accuracy >= 50:
		return "D"
	default:
		return "F"
	}
}

func (s *Session) endChallengeLocked() {
	s.gameOver = true
	s.rating = Rating(s.challenge.CorrectCount, s.challenge.TotalCount)
	s.cancelTimerLocked()

	progress, err := s.deps.Progress.Get()
	if err != nil {
		logger.Get().Warn("challenge completion not persisted", zap.Error(err))
		return
	}
	progress.TotalChallengesCompleted++
	if err := s.deps.Progress.Save(progress); err != nil {
		logger.Get().Warn("challenge completion not persisted", zap.Error(err))
	}
}

// Restart resets the scorecard and deals a fresh question.
func (s *Session) Restart() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.NotFound("session")
	}
	s.challenge = models.NewChallengeState()
	s.gameOver = false
	s.rating = ""
	s.revealUntil = time.Time{}
	s.cancelTimerLocked()
	return s.generateLocked()
}

// UpdateSettings swaps the pitch pool and difficulty mid-session and deals
// a fresh question under them. The scorecard is untouched; any pending
// next-question timer is canceled. A generation failure leaves the session
// unchanged, still on its previous settings and question.
func (s *Session) UpdateSettings(settings models.TrainingSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return errors.NotFound("session")
	}

	preset := theory.PresetFor(settings.Difficulty)
	question, err := s.deps.Generator.Generate(s.Mode, preset, settings)
	if err != nil {
		return err
	}

	s.cancelTimerLocked()
	s.settings = settings
	s.preset = preset
	s.question = question
	s.revealUntil = time.Time{}
	return nil
}

// Close tears the session down; pending timers become no-ops.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.cancelTimerLocked()
}

func (s *Session) generateLocked() error {
	question, err := s.deps.Generator.Generate(s.Mode, s.preset, s.settings)
	if err != nil {
		return err
	}
	s.question = question
	return nil
}

// armTimerLocked schedules the next question. The generation number makes
// a superseded timer a silent no-op: teardown, restart and settings
// changes all bump it.
func (s *Session) armTimerLocked(d time.Duration) {
	s.cancelTimerLocked()
	gen := s.timerGen
	s.timer = time.AfterFunc(d, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.closed || gen != s.timerGen || s.gameOver {
			return
		}
		s.revealUntil = time.Time{}
		if err := s.generateLocked(); err != nil {
			logger.Get().Error("scheduled question generation failed", zap.Error(err))
		}
	})
}

func (s *Session) cancelTimerLocked() {
	s.timerGen++
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *Session) checkUnlocksLocked() {
	progress, err := s.deps.Progress.Get()
	if err != nil {
		logger.Get().Warn("unlock check skipped", zap.Error(err))
		return
	}
	progress = s.deps.Unlocks.CheckUnlocks(progress)
	if err := s.deps.Progress.Save(progress); err != nil {
		logger.Get().Warn("progress not persisted", zap.Error(err))
	}
}
