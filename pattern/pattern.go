package pattern

import (
	"math"
	"sort"

	"github.com/jsphweid/upbeat/midi"
	"github.com/jsphweid/upbeat/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

var ErrEmptyPattern = errors.New("target tracks contain no note-on events")

type Options struct {
	GlobalTrack          int
	TargetTracks         []int
	RequireTimeSignature bool
}

// Pattern is built once per session and never modified afterwards.
type Pattern struct {
	Tempo model.TempoInfo
	Notes []model.PatternNote
}

type noteStart struct {
	absTicks uint64
	pitch    uint8
}

// Extract turns raw SMF bytes into a time ordered, direction labeled pattern.
func Extract(data []byte, opts Options) (*Pattern, error) {
	s, err := midi.Parse(data)
	if err != nil {
		return nil, err
	}
	return FromSMF(s, opts)
}

func FromSMF(s *smf.SMF, opts Options) (*Pattern, error) {
	if len(opts.TargetTracks) == 0 {
		return nil, errors.New("no target tracks configured")
	}

	tempo, err := midi.ResolveTiming(s, midi.TimingOptions{
		GlobalTrack:          opts.GlobalTrack,
		RequireTimeSignature: opts.RequireTimeSignature,
	})
	if err != nil {
		return nil, err
	}

	var starts []noteStart
	for _, idx := range opts.TargetTracks {
		track, err := midi.Track(s, idx)
		if err != nil {
			return nil, errors.Wrap(err, "target track")
		}
		starts = append(starts, collectNoteStarts(track)...)
	}
	if len(starts) == 0 {
		return nil, ErrEmptyPattern
	}

	// tracks were appended one after another, merge them by time
	sort.SliceStable(starts, func(i, j int) bool {
		return starts[i].absTicks < starts[j].absTicks
	})

	return &Pattern{
		Tempo: tempo,
		Notes: label(group(starts), tempo),
	}, nil
}

func collectNoteStarts(track smf.Track) []noteStart {
	var res []noteStart
	var absTicks uint64
	for _, ev := range track {
		absTicks += uint64(ev.Delta)
		var channel, key, velocity uint8
		// a note-on with velocity 0 is a note-off
		if ev.Message.GetNoteOn(&channel, &key, &velocity) && velocity > 0 {
			res = append(res, noteStart{absTicks: absTicks, pitch: key})
		}
	}
	return res
}

// group merges notes starting on the same tick into one note with the
// rounded mean pitch. starts must be sorted by absTicks.
func group(starts []noteStart) []noteStart {
	var res []noteStart
	for i := 0; i < len(starts); {
		j := i
		var sum int
		for j < len(starts) && starts[j].absTicks == starts[i].absTicks {
			sum += int(starts[j].pitch)
			j++
		}
		mean := math.Round(float64(sum) / float64(j-i))
		res = append(res, noteStart{absTicks: starts[i].absTicks, pitch: uint8(mean)})
		i = j
	}
	return res
}

func label(grouped []noteStart, tempo model.TempoInfo) []model.PatternNote {
	notes := make([]model.PatternNote, 0, len(grouped))
	var priorPitch uint8
	priorDirection := model.High
	for _, g := range grouped {
		direction := priorDirection
		if g.pitch > priorPitch {
			direction = model.High
		} else if g.pitch < priorPitch {
			direction = model.Low
		}
		notes = append(notes, model.PatternNote{
			TimeMs:    tickToMs(g.absTicks, tempo),
			Pitch:     g.pitch,
			Direction: direction,
		})
		priorPitch = g.pitch
		priorDirection = direction
	}
	return notes
}

// multiplying before dividing keeps whole beats exact
func tickToMs(absTicks uint64, tempo model.TempoInfo) uint32 {
	return uint32(float64(absTicks) * tempo.MsPerBeat / float64(tempo.TicksPerBeat))
}

// Between returns the notes with fromMs <= TimeMs <= toMs. The result
// shares memory with the pattern and must not be modified.
func (p *Pattern) Between(fromMs, toMs uint32) []model.PatternNote {
	if toMs < fromMs {
		return nil
	}
	lo := sort.Search(len(p.Notes), func(i int) bool { return p.Notes[i].TimeMs >= fromMs })
	hi := sort.Search(len(p.Notes), func(i int) bool { return p.Notes[i].TimeMs > toMs })
	return p.Notes[lo:hi:hi]
}

// MeasureAt returns the index of the measure containing ms.
func (p *Pattern) MeasureAt(ms uint32) (int, bool) {
	measure, ok := p.Tempo.MeasureMs()
	if !ok || measure <= 0 {
		return 0, false
	}
	return int(float64(ms) / measure), true
}

func (p *Pattern) Len() int {
	return len(p.Notes)
}
