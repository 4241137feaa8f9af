package theory

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate_TablesAreWellFormed(t *testing.T) {
	assert.NoError(t, Validate())
}

func TestNotes_TwelvePitchClasses(t *testing.T) {
	assert.Len(t, Notes, 12)
	assert.Equal(t, 0, NoteIndex("C"))
	assert.Equal(t, 9, NoteIndex("A"))
	assert.Equal(t, 11, NoteIndex("B"))
	assert.Equal(t, -1, NoteIndex("H"))
}

func TestFrequency_EqualTemperament(t *testing.T) {
	assert.InDelta(t, 440.0, Frequency("A", 4), 0.001)
	assert.InDelta(t, 261.626, Frequency("C", 4), 0.01)
	assert.InDelta(t, 880.0, Frequency("A", 5), 0.001)
	assert.InDelta(t, 220.0, Frequency("A", 3), 0.001)
}

func TestTranspose_WrapAndCarry(t *testing.T) {
	// Major 3rd from C4 stays in the octave.
	name, octave := Transpose("C", 4, 4)
	assert.Equal(t, "E", name)
	assert.Equal(t, 4, octave)

	// Perfect 4th from A4 crosses into the next octave.
	name, octave = Transpose("A", 4, 5)
	assert.Equal(t, "D", name)
	assert.Equal(t, 5, octave)

	// One semitone from B wraps to C.
	name, octave = Transpose("B", 3, 1)
	assert.Equal(t, "C", name)
	assert.Equal(t, 4, octave)

	// A full octave keeps the pitch class.
	name, octave = Transpose("G", 2, 12)
	assert.Equal(t, "G", name)
	assert.Equal(t, 3, octave)
}

func TestPresets_AllTiersPresent(t *testing.T) {
	for _, tier := range DifficultyOrder {
		preset, ok := Presets[tier]
		assert.True(t, ok, tier)
		assert.NotEmpty(t, preset.NoteRange, tier)
		assert.NotEmpty(t, preset.Intervals, tier)
		assert.NotEmpty(t, preset.Chords, tier)
		assert.NotEmpty(t, preset.Scales, tier)
		assert.LessOrEqual(t, preset.OctaveRange[0], preset.OctaveRange[1], tier)
	}
}

func TestPresets_CoverageGrowsWithTier(t *testing.T) {
	for i := 1; i < len(DifficultyOrder); i++ {
		lower := Presets[DifficultyOrder[i-1]]
		higher := Presets[DifficultyOrder[i]]
		assert.GreaterOrEqual(t, len(higher.Intervals), len(lower.Intervals))
		assert.GreaterOrEqual(t, len(higher.Chords), len(lower.Chords))
		assert.GreaterOrEqual(t, len(higher.Scales), len(lower.Scales))
		assert.GreaterOrEqual(t,
			higher.OctaveRange[1]-higher.OctaveRange[0],
			lower.OctaveRange[1]-lower.OctaveRange[0])
	}
}

func TestPresets_ReferenceKnownDefinitions(t *testing.T) {
	for tier, preset := range Presets {
		for _, name := range preset.Intervals {
			_, ok := Intervals[name]
			assert.True(t, ok, "%s interval %q", tier, name)
		}
		for _, name := range preset.Chords {
			_, ok := Chords[name]
			assert.True(t, ok, "%s chord %q", tier, name)
		}
		for _, name := range preset.Scales {
			_, ok := Scales[name]
			assert.True(t, ok, "%s scale %q", tier, name)
		}
		for _, note := range preset.NoteRange {
			assert.GreaterOrEqual(t, NoteIndex(note), 0, "%s note %q", tier, note)
		}
	}
}

func TestScales_SpanOneOctave(t *testing.T) {
	for name, offsets := range Scales {
		assert.GreaterOrEqual(t, len(offsets), 5, name)
		assert.LessOrEqual(t, len(offsets), 7, name)
		for _, o := range offsets {
			assert.Less(t, o, 12, name)
		}
	}
}

func TestFrequency_OctaveDoubles(t *testing.T) {
	for _, note := range Notes {
		low := Frequency(note, 3)
		high := Frequency(note, 4)
		assert.InDelta(t, 2.0, high/low, 1e-9, note)
	}
	// Adjacent semitones differ by the twelfth root of two.
	ratio := Frequency("C#", 4) / Frequency("C", 4)
	assert.InDelta(t, math.Pow(2, 1.0/12), ratio, 1e-9)
}
