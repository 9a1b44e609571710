package model

import (
	"fmt"
	"strings"
)

// NavDirection is the raw arrow the player pressed.
type NavDirection uint8

const (
	Up NavDirection = iota
	Right
	Down
	Left
)

// Direction maps Up/Right to High and Down/Left to Low.
func (n NavDirection) Direction() Direction {
	switch n {
	case Up, Right:
		return High
	case Down, Left:
		return Low
	default:
		panic(fmt.Sprintf("unknown nav direction: %d", uint8(n)))
	}
}

func (n NavDirection) String() string {
	switch n {
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	case Left:
		return "left"
	default:
		return "unknown"
	}
}

// ParseNavDirection accepts full names or their first letter.
func ParseNavDirection(s string) (NavDirection, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "up", "u":
		return Up, true
	case "right", "r":
		return Right, true
	case "down", "d":
		return Down, true
	case "left", "l":
		return Left, true
	}
	return 0, false
}

type DirectionalInput struct {
	Direction   Direction
	TimestampMs uint32
}

func NewDirectionalInput(nav NavDirection, timestampMs uint32) DirectionalInput {
	return DirectionalInput{Direction: nav.Direction(), TimestampMs: timestampMs}
}

type JudgmentResult struct {
	NoteTimeMs uint32 `json:"note_time_ms"`
	// input minus note, positive means the input was late
	OffsetMs    int64 `json:"offset_ms"`
	DirectionOK bool  `json:"direction_ok"`
}
