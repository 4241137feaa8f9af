package models

import (
	"fmt"
	"time"

	"github.com/architect/ear-training/internal/theory"
)

// TrainingMode identifies what kind of concept a question asks about.
type TrainingMode string

const (
	ModeNote     TrainingMode = "note"
	ModeInterval TrainingMode = "interval"
	ModeChord    TrainingMode = "chord"
	ModeScale    TrainingMode = "scale"
)

// Modes lists all training modes in unlock order.
var Modes = []TrainingMode{ModeNote, ModeInterval, ModeChord, ModeScale}

// IsTrainingMode reports whether the string names a known mode.
func IsTrainingMode(s string) bool {
	for _, m := range Modes {
		if string(m) == s {
			return true
		}
	}
	return false
}

// GameMode selects scored (challenge) or free practice (zen) play.
type GameMode string

const (
	GameChallenge GameMode = "challenge"
	GameZen       GameMode = "zen"
)

// PlayMode controls how multi-note questions are sounded.
type PlayMode string

const (
	PlayHarmonic   PlayMode = "harmonic"
	PlayAscending  PlayMode = "ascending"
	PlayDescending PlayMode = "descending"
)

// Note is a concrete pitch: a pitch class plus an octave.
type Note struct {
	Name   string `json:"name"`
	Octave int    `json:"octave"`
}

func (n Note) String() string {
	return fmt.Sprintf("%s%d", n.Name, n.Octave)
}

// Question is one round's stimulus. Transient; regenerated each round and
// never persisted.
type Question struct {
	Mode    TrainingMode `json:"mode"`
	Concept string       `json:"concept"` // the name the user must identify
	Notes   []Note       `json:"notes"`   // playback order
	Catalog []string     `json:"catalog"` // answer options shown to the user
}

// TrainingSettings is the user-tunable pitch pool and playback preference.
// The difficulty preset governs the catalog of askable concepts; settings
// govern which pitches realize them.
type TrainingSettings struct {
	NoteRange   []string `json:"noteRange" binding:"omitempty,min=1" validate:"required,min=1"`
	OctaveRange [2]int   `json:"octaveRange"`
	PlayMode    PlayMode `json:"playMode" binding:"omitempty,oneof=harmonic ascending descending" validate:"omitempty,oneof=harmonic ascending descending"`
	Difficulty  string   `json:"difficulty" binding:"omitempty,oneof=beginner elementary intermediate advanced" validate:"required,oneof=beginner elementary intermediate advanced"`
}

// DefaultSettings mirrors the beginner preset, the state of a fresh install.
func DefaultSettings() TrainingSettings {
	preset := theory.Presets[theory.Beginner]
	return TrainingSettings{
		NoteRange:   preset.NoteRange,
		OctaveRange: preset.OctaveRange,
		PlayMode:    PlayHarmonic,
		Difficulty:  theory.Beginner,
	}
}

// ChallengeState is the per-session scorecard for challenge mode.
type ChallengeState struct {
	Lives        int     `json:"lives"`
	Streak       int     `json:"streak"`
	MaxStreak    int     `json:"maxStreak"`
	CorrectCount int     `json:"correctCount"`
	TotalCount   int     `json:"totalCount"`
	Score        float64 `json:"score"`
}

// StartingLives is how many wrong answers end a challenge.
const StartingLives = 3

// NewChallengeState returns the scorecard of a fresh challenge.
func NewChallengeState() ChallengeState {
	return ChallengeState{Lives: StartingLives}
}

// TrainingResult is one answered question, the unit of the result log.
type TrainingResult struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	Mode       TrainingMode `gorm:"not null;index" json:"mode"`
	GameMode   GameMode     `gorm:"not null" json:"gameMode"`
	Correct    bool         `gorm:"not null" json:"correct"`
	Answer     string       `gorm:"not null" json:"answer"`
	UserAnswer string       `gorm:"not null" json:"userAnswer"`
	Timestamp  time.Time    `gorm:"not null;index" json:"timestamp"`
	Difficulty string       `gorm:"not null" json:"difficulty"`
}

// UserProgress records what the user has unlocked. Unlocks are additive and
// never revoked.
type UserProgress struct {
	UnlockedModes            []TrainingMode `json:"unlockedModes"`
	UnlockedDifficulties     []string       `json:"unlockedDifficulties"`
	TotalChallengesCompleted int            `json:"totalChallengesCompleted"`
	Achievements             []string       `json:"achievements"`
}

// DefaultProgress is the state of a fresh install: note mode and the
// beginner tier only.
func DefaultProgress() UserProgress {
	return UserProgress{
		UnlockedModes:        []TrainingMode{ModeNote},
		UnlockedDifficulties: []string{theory.Beginner},
		Achievements:         []string{},
	}
}

// HasMode reports whether a training mode is unlocked.
func (p UserProgress) HasMode(mode TrainingMode) bool {
	for _, m := range p.UnlockedModes {
		if m == mode {
			return true
		}
	}
	return false
}

// HasDifficulty reports whether a difficulty tier is unlocked.
func (p UserProgress) HasDifficulty(difficulty string) bool {
	for _, d := range p.UnlockedDifficulties {
		if d == difficulty {
			return true
		}
	}
	return false
}

// HasAchievement reports whether an achievement has been earned.
func (p UserProgress) HasAchievement(key string) bool {
	for _, a := range p.Achievements {
		if a == key {
			return true
		}
	}
	return false
}

// ProgressRecord is the single-row storage shape of UserProgress. Sets are
// kept as comma-separated strings, the same flattening the exercise apps
// use for note sequences.
type ProgressRecord struct {
	ID                       uint      `gorm:"primaryKey" json:"id"`
	UnlockedModes            string    `gorm:"not null" json:"unlocked_modes"`
	UnlockedDifficulties     string    `gorm:"not null" json:"unlocked_difficulties"`
	TotalChallengesCompleted int       `gorm:"default:0" json:"total_challenges_completed"`
	Achievements             string    `json:"achievements"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// SettingsRecord is the single-row storage shape of TrainingSettings.
type SettingsRecord struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	NoteRange  string    `gorm:"not null" json:"note_range"`
	OctaveMin  int       `gorm:"not null" json:"octave_min"`
	OctaveMax  int       `gorm:"not null" json:"octave_max"`
	PlayMode   string    `gorm:"not null" json:"play_mode"`
	Difficulty string    `gorm:"not null" json:"difficulty"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CreateSessionRequest starts a training session.
type CreateSessionRequest struct {
	Mode       string `json:"mode" binding:"required,oneof=note interval chord scale"`
	GameMode   string `json:"gameMode" binding:"required,oneof=challenge zen"`
	Difficulty string `json:"difficulty" binding:"omitempty,oneof=beginner elementary intermediate advanced"`
}

// SubmitAnswerRequest is the user's identification for the current question.
type SubmitAnswerRequest struct {
	Answer string `json:"answer" binding:"required"`
}

// ModeStats is per-mode accuracy over the full result log.
type ModeStats struct {
	Mode     TrainingMode `json:"mode"`
	Total    int          `json:"total"`
	Correct  int          `json:"correct"`
	Accuracy int          `json:"accuracy"`
}

// TrendPoint is one day of the trailing accuracy trend.
type TrendPoint struct {
	Date     string `json:"date"`
	Accuracy int    `json:"accuracy"`
}

// WeakPoint is a concept with below-threshold recent accuracy.
type WeakPoint struct {
	Item     string `json:"item"`
	Accuracy int    `json:"accuracy"`
}

// StatisticsData is the aggregate read model for the statistics view.
type StatisticsData struct {
	TotalResults   int          `json:"totalResults"`
	WeeklyAccuracy int          `json:"weeklyAccuracy"`
	DailyAverage   int          `json:"dailyAverage"` // totalResults/7, a week-average approximation
	AccuracyTrend  []TrendPoint `json:"accuracyTrend"`
	ModeStats      []ModeStats  `json:"modeStats"`
	WeakPoints     []WeakPoint  `json:"weakPoints"`
}
