package judge

import (
	"math"

	"github.com/jsphweid/upbeat/model"
	"github.com/jsphweid/upbeat/util"
)

// Nearest judges in against the note closest in time. On a tie the earlier
// note wins. notes must be non-empty and time ordered.
func Nearest(notes []model.PatternNote, in model.DirectionalInput) model.JudgmentResult {
	if len(notes) == 0 {
		panic("judge: empty pattern")
	}
	return verdict(notes[nearestIndex(notes, 0, len(notes), in.TimestampMs)], in)
}

// Window bounds the search for patterns laid out on a regular grid.
type Window struct {
	NotesPerSecond float64
	// slots searched on each side of the estimated note
	Radius int
}

// Windowed only considers notes within Radius slots of the note expected at
// the input time. It reports false when that window holds no notes.
func Windowed(notes []model.PatternNote, in model.DirectionalInput, w Window) (model.JudgmentResult, bool) {
	estimate := int(math.Round(float64(in.TimestampMs) / 1000 * w.NotesPerSecond))
	lo := util.Max(estimate-w.Radius, 0)
	hi := util.Min(estimate+w.Radius+1, len(notes))
	if lo >= hi {
		return model.JudgmentResult{}, false
	}
	return verdict(notes[nearestIndex(notes, lo, hi, in.TimestampMs)], in), true
}

func nearestIndex(notes []model.PatternNote, lo, hi int, ts uint32) int {
	best := lo
	bestDist := util.Abs(int64(ts) - int64(notes[lo].TimeMs))
	for i := lo + 1; i < hi; i++ {
		dist := util.Abs(int64(ts) - int64(notes[i].TimeMs))
		// strictly less keeps the earliest note on ties
		if dist < bestDist {
			best, bestDist = i, dist
		}
	}
	return best
}

func verdict(note model.PatternNote, in model.DirectionalInput) model.JudgmentResult {
	return model.JudgmentResult{
		NoteTimeMs:  note.TimeMs,
		OffsetMs:    int64(in.TimestampMs) - int64(note.TimeMs),
		DirectionOK: in.Direction == note.Direction,
	}
}
