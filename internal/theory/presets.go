package theory

// Difficulty tiers, ordered easiest to hardest.
const (
	Beginner     = "beginner"
	Elementary   = "elementary"
	Intermediate = "intermediate"
	Advanced     = "advanced"
)

// DifficultyOrder lists the tiers easiest-first.
var DifficultyOrder = []string{Beginner, Elementary, Intermediate, Advanced}

// DifficultyPreset scopes what a tier may ask: the answer-button note
// catalog, the octave range and the interval/chord/scale subsets.
type DifficultyPreset struct {
	NoteRange   []string `json:"noteRange"`
	OctaveRange [2]int   `json:"octaveRange"`
	Intervals   []string `json:"intervals"`
	Chords      []string `json:"chords"`
	Scales      []string `json:"scales"`
}

// Presets maps each difficulty tier to its preset. Each tier covers at
// least everything the previous one does.
var Presets = map[string]DifficultyPreset{
	Beginner: {
		NoteRange:   []string{"C", "D", "E", "F", "G", "A", "B"},
		OctaveRange: [2]int{4, 4},
		Intervals:   []string{"Major 2nd", "Major 3rd", "Perfect 4th", "Perfect 5th"},
		Chords:      []string{"Major", "Minor"},
		Scales:      []string{"Major", "Natural Minor"},
	},
	Elementary: {
		NoteRange:   Notes,
		OctaveRange: [2]int{3, 5},
		Intervals:   []string{"Minor 2nd", "Major 2nd", "Minor 3rd", "Major 3rd", "Perfect 4th", "Perfect 5th", "Octave"},
		Chords:      []string{"Major", "Minor", "Diminished", "Augmented"},
		Scales:      []string{"Major", "Natural Minor", "Harmonic Minor", "Pentatonic Major", "Pentatonic Minor"},
	},
	Intermediate: {
		NoteRange:   Notes,
		OctaveRange: [2]int{2, 6},
		Intervals:   intervalNames(),
		Chords:      []string{"Major", "Minor", "Diminished", "Augmented", "Sus2", "Sus4", "Major 7th", "Minor 7th", "Dominant 7th"},
		Scales:      []string{"Major", "Natural Minor", "Harmonic Minor", "Melodic Minor", "Dorian", "Pentatonic Major", "Pentatonic Minor", "Blues"},
	},
	Advanced: {
		NoteRange:   Notes,
		OctaveRange: [2]int{1, 7},
		Intervals:   intervalNames(),
		Chords:      chordNames(),
		Scales:      scaleNames(),
	},
}

// PresetFor returns the preset for a difficulty tier, defaulting to
// beginner for unknown tiers.
func PresetFor(difficulty string) DifficultyPreset {
	if p, ok := Presets[difficulty]; ok {
		return p
	}
	return Presets[Beginner]
}

// IsDifficulty reports whether the name is a known tier.
func IsDifficulty(name string) bool {
	_, ok := Presets[name]
	return ok
}

// Name lists sorted by semitone/offset span so answer catalogs render in a
// stable pedagogical order rather than map order.
func intervalNames() []string {
	names := make([]string, 0, len(Intervals))
	for s := 0; s <= 12; s++ {
		for name, semitones := range Intervals {
			if semitones == s {
				names = append(names, name)
			}
		}
	}
	return names
}

func chordNames() []string {
	return orderedNames(Chords)
}

func scaleNames() []string {
	return orderedNames(Scales)
}

func orderedNames(defs map[string][]int) []string {
	names := make([]string, 0, len(defs))
	// Triads before sevenths, shorter scales before longer; ties broken by
	// offset values then name for determinism.
	for len(names) < len(defs) {
		var best string
		for name := range defs {
			if contains(names, name) {
				continue
			}
			if best == "" || defLess(defs[name], name, defs[best], best) {
				best = name
			}
		}
		names = append(names, best)
	}
	return names
}

func defLess(a []int, aName string, b []int, bName string) bool {
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return aName < bName
}

func contains(list []string, name string) bool {
	for _, n := range list {
		if n == name {
			return true
		}
	}
	return false
}
