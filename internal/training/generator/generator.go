// Package generator samples training questions from difficulty-scoped
// pools and realizes them as concrete pitched notes.
package generator

import (
	"math/rand"
	"time"

	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
)

// Generator produces questions. The random source is injected so tests can
// seed it. Every choice is uniform over its pool: no weighting, no repeat
// avoidance.
type Generator struct {
	rng *rand.Rand
}

// New returns a generator seeded from the clock.
func New() *Generator {
	return NewWithSource(rand.NewSource(time.Now().UnixNano()))
}

// NewWithSource returns a generator over the given source.
func NewWithSource(src rand.Source) *Generator {
	return &Generator{rng: rand.New(src)}
}

// Generate samples one question. The preset governs the catalog of askable
// concepts and answer options; the settings govern the pitch pool the
// question is realized from.
func (g *Generator) Generate(mode models.TrainingMode, preset theory.DifficultyPreset, settings models.TrainingSettings) (*models.Question, error) {
	switch mode {
	case models.ModeNote:
		return g.note(preset, settings)
	case models.ModeInterval:
		return g.interval(preset, settings)
	case models.ModeChord:
		return g.chord(preset, settings)
	case models.ModeScale:
		return g.scale(preset, settings)
	default:
		return nil, errors.InvalidConfiguration("unknown training mode: " + string(mode))
	}
}

func (g *Generator) note(preset theory.DifficultyPreset, settings models.TrainingSettings) (*models.Question, error) {
	root, err := g.randomRoot(settings)
	if err != nil {
		return nil, err
	}
	if len(preset.NoteRange) == 0 {
		return nil, errors.InvalidConfiguration("preset has an empty note range")
	}
	return &models.Question{
		Mode:    models.ModeNote,
		Concept: root.Name,
		Notes:   []models.Note{root},
		Catalog: preset.NoteRange,
	}, nil
}

func (g *Generator) interval(preset theory.DifficultyPreset, settings models.TrainingSettings) (*models.Question, error) {
	if len(preset.Intervals) == 0 {
		return nil, errors.InvalidConfiguration("preset has an empty interval catalog")
	}
	name := preset.Intervals[g.rng.Intn(len(preset.Intervals))]
	semitones, ok := theory.Intervals[name]
	if !ok {
		return nil, errors.InvalidConfiguration("preset references unknown interval: " + name)
	}

	base, err := g.randomRoot(settings)
	if err != nil {
		return nil, err
	}
	targetName, targetOctave := theory.Transpose(base.Name, base.Octave, semitones)

	return &models.Question{
		Mode:    models.ModeInterval,
		Concept: name,
		Notes: []models.Note{
			base,
			{Name: targetName, Octave: targetOctave},
		},
		Catalog: preset.Intervals,
	}, nil
}

func (g *Generator) chord(preset theory.DifficultyPreset, settings models.TrainingSettings) (*models.Question, error) {
	if len(preset.Chords) == 0 {
		return nil, errors.InvalidConfiguration("preset has an empty chord catalog")
	}
	name := preset.Chords[g.rng.Intn(len(preset.Chords))]
	offsets, ok := theory.Chords[name]
	if !ok {
		return nil, errors.InvalidConfiguration("preset references unknown chord: " + name)
	}

	notes, err := g.realize(offsets, settings)
	if err != nil {
		return nil, err
	}
	return &models.Question{
		Mode:    models.ModeChord,
		Concept: name,
		Notes:   notes,
		Catalog: preset.Chords,
	}, nil
}

func (g *Generator) scale(preset theory.DifficultyPreset, settings models.TrainingSettings) (*models.Question, error) {
	if len(preset.Scales) == 0 {
		return nil, errors.InvalidConfiguration("preset has an empty scale catalog")
	}
	name := preset.Scales[g.rng.Intn(len(preset.Scales))]
	offsets, ok := theory.Scales[name]
	if !ok {
		return nil, errors.InvalidConfiguration("preset references unknown scale: " + name)
	}

	notes, err := g.realize(offsets, settings)
	if err != nil {
		return nil, err
	}
	return &models.Question{
		Mode:    models.ModeScale,
		Concept: name,
		Notes:   notes,
		Catalog: preset.Scales,
	}, nil
}

// realize turns an offset set into notes rooted at a random pitch, in
// ascending offset order (root first).
func (g *Generator) realize(offsets []int, settings models.TrainingSettings) ([]models.Note, error) {
	root, err := g.randomRoot(settings)
	if err != nil {
		return nil, err
	}
	notes := make([]models.Note, len(offsets))
	for i, offset := range offsets {
		name, octave := theory.Transpose(root.Name, root.Octave, offset)
		notes[i] = models.Note{Name: name, Octave: octave}
	}
	return notes, nil
}

func (g *Generator) randomRoot(settings models.TrainingSettings) (models.Note, error) {
	if len(settings.NoteRange) == 0 {
		return models.Note{}, errors.InvalidConfiguration("settings have an empty note range")
	}
	lo, hi := settings.OctaveRange[0], settings.OctaveRange[1]
	if hi < lo {
		return models.Note{}, errors.InvalidConfiguration("settings octave range is inverted")
	}
	name := settings.NoteRange[g.rng.Intn(len(settings.NoteRange))]
	if theory.NoteIndex(name) < 0 {
		return models.Note{}, errors.InvalidConfiguration("settings reference unknown pitch class: " + name)
	}
	octave := lo + g.rng.Intn(hi-lo+1)
	return models.Note{Name: name, Octave: octave}, nil
}
