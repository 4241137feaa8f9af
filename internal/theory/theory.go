// Package theory holds the static musical reference data the trainers
// sample from: pitch classes, interval/chord/scale definitions and the
// difficulty presets that scope them.
package theory

import (
	"fmt"
	"math"
)

// Notes are the 12 pitch classes in semitone order. The slice index of a
// name is its semitone offset within the octave.
var Notes = []string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// Intervals maps interval names to semitone distances.
var Intervals = map[string]int{
	"Unison":      0,
	"Minor 2nd":   1,
	"Major 2nd":   2,
	"Minor 3rd":   3,
	"Major 3rd":   4,
	"Perfect 4th": 5,
	"Tritone":     6,
	"Perfect 5th": 7,
	"Minor 6th":   8,
	"Major 6th":   9,
	"Minor 7th":   10,
	"Major 7th":   11,
	"Octave":      12,
}

// Chords maps chord names to semitone offsets from the root.
var Chords = map[string][]int{
	"Major":               {0, 4, 7},
	"Minor":               {0, 3, 7},
	"Diminished":          {0, 3, 6},
	"Augmented":           {0, 4, 8},
	"Sus2":                {0, 2, 7},
	"Sus4":                {0, 5, 7},
	"Major 7th":           {0, 4, 7, 11},
	"Minor 7th":           {0, 3, 7, 10},
	"Dominant 7th":        {0, 4, 7, 10},
	"Diminished 7th":      {0, 3, 6, 9},
	"Half-Diminished 7th": {0, 3, 6, 10},
	"Major 6th":           {0, 4, 7, 9},
	"Minor 6th":           {0, 3, 7, 9},
}

// Scales maps scale names to semitone offsets spanning one octave.
var Scales = map[string][]int{
	"Major":            {0, 2, 4, 5, 7, 9, 11},
	"Natural Minor":    {0, 2, 3, 5, 7, 8, 10},
	"Harmonic Minor":   {0, 2, 3, 5, 7, 8, 11},
	"Melodic Minor":    {0, 2, 3, 5, 7, 9, 11},
	"Dorian":           {0, 2, 3, 5, 7, 9, 10},
	"Phrygian":         {0, 1, 3, 5, 7, 8, 10},
	"Lydian":           {0, 2, 4, 6, 7, 9, 11},
	"Mixolydian":       {0, 2, 4, 5, 7, 9, 10},
	"Pentatonic Major": {0, 2, 4, 7, 9},
	"Pentatonic Minor": {0, 3, 5, 7, 10},
	"Blues":            {0, 3, 5, 6, 7, 10},
	"Whole Tone":       {0, 2, 4, 6, 8, 10},
}

// NoteIndex returns the semitone index of a pitch class name, or -1 if the
// name is not one of the 12 pitch classes.
func NoteIndex(name string) int {
	for i, n := range Notes {
		if n == name {
			return i
		}
	}
	return -1
}

// Frequency returns the equal-temperament frequency of a note, A4 = 440Hz.
func Frequency(note string, octave int) float64 {
	idx := NoteIndex(note)
	semitones := (octave-4)*12 + idx - 9 // A4 is the reference
	return 440 * math.Pow(2, float64(semitones)/12)
}

// Transpose shifts a pitch class by a semitone count, wrapping the pitch
// class modulo 12 and carrying octave overflow.
func Transpose(note string, octave, semitones int) (string, int) {
	idx := NoteIndex(note)
	return Notes[(idx+semitones)%12], octave + (idx+semitones)/12
}

// Validate checks the structural invariants of the reference tables:
// unique semitone counts per interval name, offset sets starting at 0 with
// unique non-negative members, scale offsets within one octave.
func Validate() error {
	seen := make(map[int]string, len(Intervals))
	for name, semitones := range Intervals {
		if semitones < 0 || semitones > 12 {
			return fmt.Errorf("interval %q: semitones %d out of range", name, semitones)
		}
		if other, dup := seen[semitones]; dup {
			return fmt.Errorf("intervals %q and %q share semitone count %d", name, other, semitones)
		}
		seen[semitones] = name
	}

	for name, offsets := range Chords {
		if err := validateOffsets(offsets, 24); err != nil {
			return fmt.Errorf("chord %q: %w", name, err)
		}
	}
	for name, offsets := range Scales {
		if err := validateOffsets(offsets, 11); err != nil {
			return fmt.Errorf("scale %q: %w", name, err)
		}
	}
	return nil
}

func validateOffsets(offsets []int, max int) error {
	if len(offsets) == 0 {
		return fmt.Errorf("empty offset set")
	}
	if offsets[0] != 0 {
		return fmt.Errorf("first offset must be 0, got %d", offsets[0])
	}
	seen := make(map[int]bool, len(offsets))
	for _, o := range offsets {
		if o < 0 || o > max {
			return fmt.Errorf("offset %d out of range [0,%d]", o, max)
		}
		if seen[o] {
			return fmt.Errorf("duplicate offset %d", o)
		}
		seen[o] = true
	}
	return nil
}
