package midi

import (
	"math"

	"github.com/jsphweid/upbeat/logger"
	"github.com/jsphweid/upbeat/model"
	"github.com/pkg/errors"
	"gitlab.com/gomidi/midi/v2/smf"
)

const formatParallel = 1

type TimingOptions struct {
	// index of the track holding tempo and meter meta events, usually 0
	GlobalTrack int
	// fail on a missing or conflicting time signature
	RequireTimeSignature bool
}

// ResolveTiming derives TempoInfo from the header and the global track.
// The engine assumes a single tempo; if several are declared the last wins.
func ResolveTiming(s *smf.SMF, opts TimingOptions) (model.TempoInfo, error) {
	var info model.TempoInfo

	if s.Format() != formatParallel {
		return info, errors.Wrapf(ErrNotParallel, "got format %d", s.Format())
	}

	ticks, ok := s.TimeFormat.(smf.MetricTicks)
	if !ok || ticks.Resolution() == 0 {
		return info, errors.Wrapf(ErrNotMetrical, "got %v", s.TimeFormat)
	}

	track, err := Track(s, opts.GlobalTrack)
	if err != nil {
		return info, errors.Wrap(err, "global timing track")
	}

	var usPerBeat uint32
	var numTempos int
	var beatsPerMeasure uint8
	var conflicting bool
	for _, ev := range track {
		var bpm float64
		var num, denom uint8
		switch {
		case ev.Message.GetMetaTempo(&bpm):
			numTempos++
			usPerBeat = microsecondsPerBeat(bpm)
		case ev.Message.GetMetaMeter(&num, &denom):
			if beatsPerMeasure == 0 {
				beatsPerMeasure = num
			} else if beatsPerMeasure != num {
				conflicting = true
			}
		}
	}

	if usPerBeat == 0 {
		return info, ErrMissingTempo
	}
	if numTempos > 1 {
		logger.Log.Warnf("found %d tempo events, using the last one (%d us/beat)", numTempos, usPerBeat)
	}

	if opts.RequireTimeSignature {
		if conflicting {
			return info, ErrConflictingTimeSignature
		}
		if beatsPerMeasure == 0 {
			return info, ErrMissingTimeSignature
		}
	} else if conflicting {
		logger.Log.Warnf("conflicting time signatures, using %d beats per measure", beatsPerMeasure)
	}

	info.TicksPerBeat = ticks.Resolution()
	info.MsPerBeat = float64(usPerBeat) / 1000
	info.MsPerTick = info.MsPerBeat / float64(info.TicksPerBeat)
	info.BeatsPerMeasure = int(beatsPerMeasure)
	return info, nil
}

// gomidi reports tempo as bpm; the file stores whole microseconds per beat.
func microsecondsPerBeat(bpm float64) uint32 {
	if bpm <= 0 || math.IsInf(bpm, 0) || math.IsNaN(bpm) {
		return 0
	}
	return uint32(math.Round(60000000 / bpm))
}
