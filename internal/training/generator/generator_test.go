package generator

import (
	"math/rand"
	"testing"

	apperrors "github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testGenerator() *Generator {
	return NewWithSource(rand.NewSource(42))
}

func beginnerSettings() models.TrainingSettings {
	return models.DefaultSettings()
}

func TestGenerate_NoteSamplesFromSettingsPool(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Beginner]
	settings := beginnerSettings()

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		q, err := g.Generate(models.ModeNote, preset, settings)
		require.NoError(t, err)
		require.Len(t, q.Notes, 1)
		seen[q.Notes[0].Name] = true
		assert.Equal(t, q.Notes[0].Name, q.Concept)
		assert.Equal(t, 4, q.Notes[0].Octave) // beginner octave range is [4,4]
	}

	// Uniform sampling must reach every pool member over 1000 draws.
	for _, note := range settings.NoteRange {
		assert.True(t, seen[note], "note %q never sampled", note)
	}
}

func TestGenerate_NoteCatalogComesFromPreset(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Beginner]
	settings := beginnerSettings()
	// Settings pool deliberately diverges from the preset catalog.
	settings.NoteRange = []string{"C"}

	q, err := g.Generate(models.ModeNote, preset, settings)
	require.NoError(t, err)
	assert.Equal(t, "C", q.Concept)
	assert.Equal(t, preset.NoteRange, q.Catalog)
}

func TestGenerate_IntervalWrapAndCarry(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Intermediate]
	settings := models.TrainingSettings{
		NoteRange:   theory.Notes,
		OctaveRange: [2]int{2, 6},
		Difficulty:  theory.Intermediate,
	}

	for i := 0; i < 500; i++ {
		q, err := g.Generate(models.ModeInterval, preset, settings)
		require.NoError(t, err)
		require.Len(t, q.Notes, 2)

		base, target := q.Notes[0], q.Notes[1]
		semitones := theory.Intervals[q.Concept]
		baseIdx := theory.NoteIndex(base.Name)

		assert.Equal(t, theory.Notes[(baseIdx+semitones)%12], target.Name)
		assert.Equal(t, base.Octave+(baseIdx+semitones)/12, target.Octave)
	}
}

func TestGenerate_ChordNotesFollowOffsets(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Advanced]
	settings := models.TrainingSettings{
		NoteRange:   theory.Notes,
		OctaveRange: [2]int{1, 7},
		Difficulty:  theory.Advanced,
	}

	for i := 0; i < 500; i++ {
		q, err := g.Generate(models.ModeChord, preset, settings)
		require.NoError(t, err)

		offsets := theory.Chords[q.Concept]
		require.Len(t, q.Notes, len(offsets))

		root := q.Notes[0]
		rootIdx := theory.NoteIndex(root.Name)
		for j, offset := range offsets {
			assert.Equal(t, theory.Notes[(rootIdx+offset)%12], q.Notes[j].Name)
			assert.Equal(t, root.Octave+(rootIdx+offset)/12, q.Notes[j].Octave)
		}
	}
}

func TestGenerate_ScaleProducesOneOctaveRun(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Advanced]
	settings := models.TrainingSettings{
		NoteRange:   theory.Notes,
		OctaveRange: [2]int{3, 5},
		Difficulty:  theory.Advanced,
	}

	q, err := g.Generate(models.ModeScale, preset, settings)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(q.Notes), 5)
	assert.LessOrEqual(t, len(q.Notes), 7)
	assert.Equal(t, theory.Scales[q.Concept][0], 0)
	assert.Contains(t, preset.Scales, q.Concept)
}

func TestGenerate_ConceptSamplingCoversCatalog(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Beginner]
	settings := beginnerSettings()

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		q, err := g.Generate(models.ModeInterval, preset, settings)
		require.NoError(t, err)
		seen[q.Concept] = true
	}
	for _, name := range preset.Intervals {
		assert.True(t, seen[name], "interval %q never asked", name)
	}
}

func TestGenerate_EmptyPoolFails(t *testing.T) {
	g := testGenerator()
	preset := theory.Presets[theory.Beginner]

	_, err := g.Generate(models.ModeNote, preset, models.TrainingSettings{OctaveRange: [2]int{4, 4}})
	require.Error(t, err)
	appErr, ok := err.(*apperrors.AppError)
	require.True(t, ok)
	assert.Equal(t, apperrors.CodeInvalidConfig, appErr.Code)
}

func TestGenerate_EmptyCatalogFails(t *testing.T) {
	g := testGenerator()
	empty := theory.DifficultyPreset{NoteRange: []string{"C"}}
	settings := beginnerSettings()

	for _, mode := range []models.TrainingMode{models.ModeInterval, models.ModeChord, models.ModeScale} {
		_, err := g.Generate(mode, empty, settings)
		require.Error(t, err, mode)
		appErr, ok := err.(*apperrors.AppError)
		require.True(t, ok, mode)
		assert.Equal(t, apperrors.CodeInvalidConfig, appErr.Code, mode)
	}
}

func TestGenerate_UnknownModeFails(t *testing.T) {
	g := testGenerator()
	_, err := g.Generate("melody", theory.Presets[theory.Beginner], beginnerSettings())
	assert.Error(t, err)
}
