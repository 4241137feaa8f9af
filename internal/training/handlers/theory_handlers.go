package handlers

import (
	"strconv"

	"github.com/architect/ear-training/internal/audio"
	"github.com/architect/ear-training/internal/common/errors"
	"github.com/architect/ear-training/internal/common/middleware"
	"github.com/architect/ear-training/internal/theory"
	"github.com/architect/ear-training/internal/training/models"
	"github.com/gin-gonic/gin"
)

// TheoryHandler serves the static reference tables the front-end renders
// its catalogs from.
type TheoryHandler struct{}

func NewTheoryHandler() *TheoryHandler {
	return &TheoryHandler{}
}

// GetNotes returns the 12 pitch classes
// GET /api/v1/theory/notes
func (h *TheoryHandler) GetNotes(c *gin.Context) {
	c.JSON(200, gin.H{"notes": theory.Notes})
}

// GetIntervals returns the interval table
// GET /api/v1/theory/intervals
func (h *TheoryHandler) GetIntervals(c *gin.Context) {
	c.JSON(200, gin.H{"intervals": theory.Intervals})
}

// GetChords returns the chord table
// GET /api/v1/theory/chords
func (h *TheoryHandler) GetChords(c *gin.Context) {
	c.JSON(200, gin.H{"chords": theory.Chords})
}

// GetScales returns the scale table
// GET /api/v1/theory/scales
func (h *TheoryHandler) GetScales(c *gin.Context) {
	c.JSON(200, gin.H{"scales": theory.Scales})
}

// GetPresets returns the difficulty presets
// GET /api/v1/theory/presets
func (h *TheoryHandler) GetPresets(c *gin.Context) {
	c.JSON(200, gin.H{"order": theory.DifficultyOrder, "presets": theory.Presets})
}

// GetFrequency resolves one note to its equal-temperament frequency
// GET /api/v1/theory/frequency?note=A&octave=4
func (h *TheoryHandler) GetFrequency(c *gin.Context) {
	note := c.Query("note")
	if theory.NoteIndex(note) < 0 {
		middleware.JSONErrorResponse(c, errors.BadRequest("unknown pitch class: "+note))
		return
	}
	octave, err := strconv.Atoi(c.DefaultQuery("octave", "4"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("octave must be an integer"))
		return
	}

	c.JSON(200, gin.H{
		"note":        models.Note{Name: note, Octave: octave},
		"frequencyHz": theory.Frequency(note, octave),
	})
}

// PreviewScale returns the playback plan for a named scale rooted at a note
// GET /api/v1/theory/scales/:name/preview?root=C&octave=4&direction=ascending
func (h *TheoryHandler) PreviewScale(c *gin.Context) {
	name := c.Param("name")
	offsets, ok := theory.Scales[name]
	if !ok {
		middleware.JSONErrorResponse(c, errors.NotFound("scale"))
		return
	}

	root := c.DefaultQuery("root", "C")
	if theory.NoteIndex(root) < 0 {
		middleware.JSONErrorResponse(c, errors.BadRequest("unknown pitch class: "+root))
		return
	}
	octave, err := strconv.Atoi(c.DefaultQuery("octave", "4"))
	if err != nil {
		middleware.JSONErrorResponse(c, errors.BadRequest("octave must be an integer"))
		return
	}

	notes := make([]models.Note, len(offsets))
	for i, offset := range offsets {
		n, o := theory.Transpose(root, octave, offset)
		notes[i] = models.Note{Name: n, Octave: o}
	}

	ascending := c.DefaultQuery("direction", "ascending") != "descending"
	c.JSON(200, gin.H{
		"scale":    name,
		"notes":    notes,
		"playback": audio.ScalePlan(notes, ascending),
	})
}
