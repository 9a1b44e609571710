// Package miditest builds small standard midi files in memory for tests.
package miditest

import (
	"bytes"
	"encoding/binary"

	"gitlab.com/gomidi/midi/v2"
)

const (
	FormatSingle   uint16 = 0
	FormatParallel uint16 = 1
	FormatSerial   uint16 = 2
)

// SMPTE25 is a division word for 25fps with 40 subframes, i.e. not metrical.
const SMPTE25 uint16 = 0xE728

type Track struct {
	buf bytes.Buffer
}

func (t *Track) add(delta uint32, msg []byte) *Track {
	t.buf.Write(vlq(delta))
	t.buf.Write(msg)
	return t
}

// Tempo adds a set-tempo meta event.
func (t *Track) Tempo(delta uint32, usPerBeat uint32) *Track {
	return t.add(delta, []byte{0xFF, 0x51, 0x03, byte(usPerBeat >> 16), byte(usPerBeat >> 8), byte(usPerBeat)})
}

// TimeSig adds a time signature meta event, denom is 2^denomPow.
func (t *Track) TimeSig(delta uint32, num, denomPow uint8) *Track {
	return t.add(delta, []byte{0xFF, 0x58, 0x04, num, denomPow, 24, 8})
}

func (t *Track) Name(delta uint32, name string) *Track {
	msg := append([]byte{0xFF, 0x03}, vlq(uint32(len(name)))...)
	return t.add(delta, append(msg, name...))
}

func (t *Track) NoteOn(delta uint32, key, velocity uint8) *Track {
	return t.add(delta, midi.NoteOn(0, key, velocity))
}

func (t *Track) NoteOff(delta uint32, key uint8) *Track {
	return t.add(delta, midi.NoteOff(0, key))
}

func (t *Track) ControlChange(delta uint32, controller, value uint8) *Track {
	return t.add(delta, midi.ControlChange(0, controller, value))
}

// Note adds a note-on followed by its note-off after length ticks.
func (t *Track) Note(delta uint32, key uint8, length uint32) *Track {
	return t.NoteOn(delta, key, 100).NoteOff(length, key)
}

type File struct {
	Format   uint16
	Division uint16
	Tracks   []*Track
}

// New returns a parallel format file with the given ticks per beat.
func New(ticksPerBeat uint16) *File {
	return &File{Format: FormatParallel, Division: ticksPerBeat}
}

// Track appends and returns a new track.
func (f *File) Track() *Track {
	t := &Track{}
	f.Tracks = append(f.Tracks, t)
	return t
}

func (f *File) Bytes() []byte {
	var out bytes.Buffer
	out.WriteString("MThd")
	binary.Write(&out, binary.BigEndian, uint32(6))
	binary.Write(&out, binary.BigEndian, f.Format)
	binary.Write(&out, binary.BigEndian, uint16(len(f.Tracks)))
	binary.Write(&out, binary.BigEndian, f.Division)

	for _, t := range f.Tracks {
		data := append(append([]byte{}, t.buf.Bytes()...), 0x00, 0xFF, 0x2F, 0x00)
		out.WriteString("MTrk")
		binary.Write(&out, binary.BigEndian, uint32(len(data)))
		out.Write(data)
	}
	return out.Bytes()
}

func vlq(v uint32) []byte {
	res := []byte{byte(v & 0x7F)}
	for v >>= 7; v > 0; v >>= 7 {
		res = append([]byte{byte(v&0x7F) | 0x80}, res...)
	}
	return res
}
