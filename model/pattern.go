package model

import "fmt"

// Direction is the melodic direction of a note relative to the one before
// it, and the direction the player is expected to press.
type Direction uint8

const (
	High Direction = iota
	Low
)

func (d Direction) String() string {
	switch d {
	case High:
		return "High"
	case Low:
		return "Low"
	default:
		panic(fmt.Sprintf("unknown direction: %d", uint8(d)))
	}
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(b []byte) error {
	switch string(b) {
	case "High":
		*d = High
	case "Low":
		*d = Low
	default:
		return fmt.Errorf("unknown direction: %q", string(b))
	}
	return nil
}

type PatternNote struct {
	// offset from the start of the music stream
	TimeMs    uint32    `json:"time_ms"`
	Pitch     uint8     `json:"pitch"`
	Direction Direction `json:"direction"`
}

// TempoInfo is resolved once from the global timing track.
type TempoInfo struct {
	MsPerBeat    float64 `json:"ms_per_beat"`
	MsPerTick    float64 `json:"ms_per_tick"`
	TicksPerBeat uint16  `json:"ticks_per_beat"`

	// NOTE: 0 when the file declares no time signature
	BeatsPerMeasure int `json:"beats_per_measure,omitempty"`
}

// MeasureMs returns the length of one measure, if the meter is known.
func (t TempoInfo) MeasureMs() (float64, bool) {
	if t.BeatsPerMeasure <= 0 {
		return 0, false
	}
	return float64(t.BeatsPerMeasure) * t.MsPerBeat, true
}
