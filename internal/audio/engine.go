// Package audio turns questions into playback plans: timed, pitched events
// a synthesis front-end renders. The core never blocks on sound and holds
// no playback state.
package audio

import (
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
)

const (
	// Melodic notes start this far apart.
	melodicStrideMs = 400
	// Melodic notes sound for this share of the requested duration.
	melodicDurationRatio = 0.6
	// Scale previews run tighter and shorter, independent of the
	// requested duration.
	scaleStrideMs     = 300
	scaleNoteDuration = 0.5
)

// DefaultDuration is the per-mode note duration in seconds: richer
// stimuli ring longer. Scale questions ignore it (see ScalePlan).
func DefaultDuration(mode models.TrainingMode) float64 {
	switch mode {
	case models.ModeInterval:
		return 1.2
	case models.ModeChord:
		return 1.5
	default:
		return 1.0
	}
}

// NoteEvent is one scheduled sound: what pitch, when, and for how long.
type NoteEvent struct {
	Note        models.Note `json:"note"`
	FrequencyHz float64     `json:"frequencyHz"`
	OffsetMs    int         `json:"offsetMs"`
	DurationSec float64     `json:"durationSec"`
}

// Plan schedules a question's notes for playback. Harmonic plays all notes
// at once for the full duration; ascending staggers them by the melodic
// stride at reduced duration; descending does the same over the reversed
// order.
func Plan(notes []models.Note, mode models.PlayMode, durationSec float64) []NoteEvent {
	ordered := notes
	if mode == models.PlayDescending {
		ordered = reverse(notes)
	}

	events := make([]NoteEvent, len(ordered))
	for i, n := range ordered {
		event := NoteEvent{
			Note:        n,
			FrequencyHz: theory.Frequency(n.Name, n.Octave),
		}
		if mode == models.PlayHarmonic {
			event.DurationSec = durationSec
		} else {
			event.OffsetMs = i * melodicStrideMs
			event.DurationSec = durationSec * melodicDurationRatio
		}
		events[i] = event
	}
	return events
}

// ScalePlan schedules a scale preview front-to-back, or back-to-front when
// ascending is false.
func ScalePlan(notes []models.Note, ascending bool) []NoteEvent {
	ordered := notes
	if !ascending {
		ordered = reverse(notes)
	}

	events := make([]NoteEvent, len(ordered))
	for i, n := range ordered {
		events[i] = NoteEvent{
			Note:        n,
			FrequencyHz: theory.Frequency(n.Name, n.Octave),
			OffsetMs:    i * scaleStrideMs,
			DurationSec: scaleNoteDuration,
		}
	}
	return events
}

// QuestionPlan picks the right schedule for a question: scale questions use
// the preview stride, everything else the requested play mode.
func QuestionPlan(q *models.Question, playMode models.PlayMode, durationSec float64) []NoteEvent {
	if q == nil {
		return nil
	}
	if q.Mode == models.ModeScale {
		return ScalePlan(q.Notes, playMode != models.PlayDescending)
	}
	return Plan(q.Notes, playMode, durationSec)
}

func reverse(notes []models.Note) []models.Note {
	out := make([]models.Note, len(notes))
	for i, n := range notes {
		out[len(notes)-1-i] = n
	}
	return out
}
