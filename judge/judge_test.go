package judge

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/jsphweid/upbeat/model"
	"github.com/stretchr/testify/assert"
)

var threeNotes = []model.PatternNote{
	{TimeMs: 1000, Pitch: 60, Direction: model.High},
	{TimeMs: 2000, Pitch: 64, Direction: model.High},
	{TimeMs: 3000, Pitch: 55, Direction: model.Low},
}

func TestNearest(t *testing.T) {
	cases := []struct {
		name string
		in   model.DirectionalInput
		want model.JudgmentResult
	}{
		{
			name: "early for a later note",
			in:   model.DirectionalInput{Direction: model.Low, TimestampMs: 2600},
			want: model.JudgmentResult{NoteTimeMs: 3000, OffsetMs: -400, DirectionOK: true},
		},
		{
			name: "just early",
			in:   model.DirectionalInput{Direction: model.High, TimestampMs: 1999},
			want: model.JudgmentResult{NoteTimeMs: 2000, OffsetMs: -1, DirectionOK: true},
		},
		{
			name: "tie goes to the earlier note",
			in:   model.DirectionalInput{Direction: model.Low, TimestampMs: 1500},
			want: model.JudgmentResult{NoteTimeMs: 1000, OffsetMs: 500, DirectionOK: false},
		},
		{
			name: "before the first note",
			in:   model.DirectionalInput{Direction: model.High, TimestampMs: 0},
			want: model.JudgmentResult{NoteTimeMs: 1000, OffsetMs: -1000, DirectionOK: true},
		},
		{
			name: "late after the last note",
			in:   model.DirectionalInput{Direction: model.High, TimestampMs: 3250},
			want: model.JudgmentResult{NoteTimeMs: 3000, OffsetMs: 250, DirectionOK: false},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Nearest(threeNotes, c.in))
		})
	}
}

func TestNearestFromNavDirection(t *testing.T) {
	res := Nearest(threeNotes, model.NewDirectionalInput(model.Left, 2990))
	assert.Equal(t, model.JudgmentResult{NoteTimeMs: 3000, OffsetMs: -10, DirectionOK: true}, res)

	res = Nearest(threeNotes, model.NewDirectionalInput(model.Right, 2990))
	assert.False(t, res.DirectionOK)
}

func TestNearestPanicsOnEmptyPattern(t *testing.T) {
	assert.Panics(t, func() {
		Nearest(nil, model.DirectionalInput{TimestampMs: 10})
	})
}

func grid(n int, stepMs uint32) []model.PatternNote {
	notes := make([]model.PatternNote, n)
	for i := range notes {
		notes[i] = model.PatternNote{TimeMs: uint32(i) * stepMs, Direction: model.Direction(i % 2)}
	}
	return notes
}

func TestWindowedAgreesWithNearest(t *testing.T) {
	// 4 notes per second, 250ms apart
	notes := grid(64, 250)
	w := Window{NotesPerSecond: 4, Radius: 3}

	for ts := uint32(0); ts < 64*250; ts += 37 {
		in := model.DirectionalInput{Direction: model.High, TimestampMs: ts}
		got, ok := Windowed(notes, in, w)
		assert.True(t, ok, "ts=%d", ts)
		assert.Equal(t, Nearest(notes, in), got, "ts=%d", ts)
	}
}

func TestWindowedTieBreak(t *testing.T) {
	notes := grid(8, 250)
	got, ok := Windowed(notes, model.DirectionalInput{TimestampMs: 375}, Window{NotesPerSecond: 4, Radius: 3})
	assert.True(t, ok)
	assert.Equal(t, uint32(250), got.NoteTimeMs)
	assert.Equal(t, int64(125), got.OffsetMs)
}

func TestWindowedDoesNotFallBack(t *testing.T) {
	notes := grid(8, 250)
	w := Window{NotesPerSecond: 4, Radius: 3}

	// estimated slot 40, the pattern ends at slot 7
	_, ok := Windowed(notes, model.DirectionalInput{TimestampMs: 10000}, w)
	assert.False(t, ok)

	// slot 11 still reaches slot 8.. which does not exist either
	_, ok = Windowed(notes, model.DirectionalInput{TimestampMs: 2750}, w)
	assert.False(t, ok)

	// slot 10 reaches back to slot 7
	res, ok := Windowed(notes, model.DirectionalInput{TimestampMs: 2500}, w)
	assert.True(t, ok)
	assert.Equal(t, uint32(1750), res.NoteTimeMs)

	_, ok = Windowed(nil, model.DirectionalInput{TimestampMs: 0}, w)
	assert.False(t, ok)
}

func TestReporter(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	r := Reporter{Out: &buf}
	r.Report(model.JudgmentResult{NoteTimeMs: 3000, OffsetMs: -400, DirectionOK: true})
	r.ReportMiss(model.DirectionalInput{Direction: model.Low, TimestampMs: 10})

	assert.Equal(t, "MATCH true : -400msec (T:  +3000)\nNO MATCH Low at 10msec\n", buf.String())
}
