package audio

import (
	"testing"

	"github.com/architect/ear-training/internal/training/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var cMajorTriad = []models.Note{
	{Name: "C", Octave: 4},
	{Name: "E", Octave: 4},
	{Name: "G", Octave: 4},
}

func TestPlan_Harmonic(t *testing.T) {
	events := Plan(cMajorTriad, models.PlayHarmonic, 1.5)
	require.Len(t, events, 3)

	for _, e := range events {
		assert.Equal(t, 0, e.OffsetMs)
		assert.Equal(t, 1.5, e.DurationSec)
	}
	assert.Equal(t, cMajorTriad[0], events[0].Note)
	assert.InDelta(t, 261.626, events[0].FrequencyHz, 0.01)
	assert.InDelta(t, 391.995, events[2].FrequencyHz, 0.01)
}

func TestPlan_AscendingStaggersNotes(t *testing.T) {
	events := Plan(cMajorTriad, models.PlayAscending, 1.0)
	require.Len(t, events, 3)

	for i, e := range events {
		assert.Equal(t, i*400, e.OffsetMs)
		assert.InDelta(t, 0.6, e.DurationSec, 1e-9)
	}
	assert.Equal(t, "C", events[0].Note.Name)
	assert.Equal(t, "G", events[2].Note.Name)
}

func TestPlan_DescendingReversesOrder(t *testing.T) {
	events := Plan(cMajorTriad, models.PlayDescending, 1.0)
	require.Len(t, events, 3)

	assert.Equal(t, "G", events[0].Note.Name)
	assert.Equal(t, "E", events[1].Note.Name)
	assert.Equal(t, "C", events[2].Note.Name)
	assert.Equal(t, 400, events[1].OffsetMs)

	// The input slice is not mutated.
	assert.Equal(t, "C", cMajorTriad[0].Name)
}

func TestScalePlan(t *testing.T) {
	scale := []models.Note{
		{Name: "C", Octave: 4},
		{Name: "D", Octave: 4},
		{Name: "E", Octave: 4},
		{Name: "F", Octave: 4},
		{Name: "G", Octave: 4},
		{Name: "A", Octave: 4},
		{Name: "B", Octave: 4},
		{Name: "C", Octave: 5},
	}

	events := ScalePlan(scale, true)
	require.Len(t, events, 8)
	for i, e := range events {
		assert.Equal(t, i*300, e.OffsetMs)
		assert.Equal(t, 0.5, e.DurationSec)
	}
	assert.Equal(t, scale[0], events[0].Note)

	down := ScalePlan(scale, false)
	assert.Equal(t, scale[7], down[0].Note)
	assert.Equal(t, scale[0], down[7].Note)
	assert.Equal(t, 300, down[1].OffsetMs)
}

func TestQuestionPlan(t *testing.T) {
	chord := &models.Question{Mode: models.ModeChord, Notes: cMajorTriad}
	events := QuestionPlan(chord, models.PlayHarmonic, DefaultDuration(models.ModeChord))
	require.Len(t, events, 3)
	assert.Equal(t, 1.5, events[0].DurationSec)

	// Scale questions take the preview stride regardless of duration.
	scale := &models.Question{Mode: models.ModeScale, Notes: cMajorTriad}
	events = QuestionPlan(scale, models.PlayAscending, 9.9)
	assert.Equal(t, 0.5, events[0].DurationSec)
	assert.Equal(t, 300, events[1].OffsetMs)

	// Descending plays the scale top-down.
	events = QuestionPlan(scale, models.PlayDescending, 1.0)
	assert.Equal(t, "G", events[0].Note.Name)

	assert.Nil(t, QuestionPlan(nil, models.PlayHarmonic, 1.0))
}

func TestDefaultDuration(t *testing.T) {
	assert.Equal(t, 1.0, DefaultDuration(models.ModeNote))
	assert.Equal(t, 1.2, DefaultDuration(models.ModeInterval))
	assert.Equal(t, 1.5, DefaultDuration(models.ModeChord))
	assert.Equal(t, 1.0, DefaultDuration(models.ModeScale))
}
