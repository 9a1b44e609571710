package midi

import "github.com/pkg/errors"

// Each of these means the file cannot drive a session.
var (
	ErrNotParallel              = errors.New("midi file must be in parallel (simultaneous tracks) format")
	ErrNotMetrical              = errors.New("midi timing must be metrical")
	ErrMissingTempo             = errors.New("global timing track must include tempo information")
	ErrMissingTimeSignature     = errors.New("no time signature found")
	ErrConflictingTimeSignature = errors.New("multiple conflicting time signatures found")
	ErrTrackOutOfRange          = errors.New("track index out of range")
)
