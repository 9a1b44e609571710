package cmd

import (
	"github.com/jsphweid/upbeat/file"
	"github.com/jsphweid/upbeat/judge"
	"github.com/jsphweid/upbeat/logger"
	"github.com/jsphweid/upbeat/model"
	"github.com/jsphweid/upbeat/pattern"
	"github.com/pkg/errors"
)

func extractOptions() pattern.Options {
	return pattern.Options{
		GlobalTrack:          globalTrack,
		TargetTracks:         targetTracks,
		RequireTimeSignature: requireTimeSignature,
	}
}

// loadChart fails when the chart cannot drive a session; the error names
// the precondition that was not met.
func loadChart(path string) (*pattern.Pattern, error) {
	data, err := file.ReadMidi(path)
	if err != nil {
		return nil, err
	}
	p, err := pattern.Extract(data, extractOptions())
	if err != nil {
		return nil, errors.Wrapf(err, "unusable chart %s", path)
	}
	logger.Log.Debugf("loaded %s: %d notes, %.2fms per beat", path, p.Len(), p.Tempo.MsPerBeat)
	return p, nil
}

// judgeInput picks the windowed judge when a grid rate is configured.
func judgeInput(p *pattern.Pattern, in model.DirectionalInput) (model.JudgmentResult, bool) {
	if notesPerSecond > 0 {
		return judge.Windowed(p.Notes, in, judge.Window{NotesPerSecond: notesPerSecond, Radius: judgeRadius})
	}
	return judge.Nearest(p.Notes, in), true
}
