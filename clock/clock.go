// Package clock measures playback progress from inside the audio pull path.
//
// Wall clock deltas drift from what was actually heard as soon as the output
// buffers or underruns. A Clock sits between a decoded stream and the
// speaker and advances a shared millisecond counter for every sample the
// speaker pulls, so the counter follows the device rather than the host.
package clock

import (
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/pkg/errors"
)

var ErrNotSeekable = errors.New("wrapped stream is not seekable")

// Elapsed is a millisecond counter written by exactly one Clock and read by
// anyone. Reads never block and never observe a decrease.
type Elapsed struct {
	ms atomic.Uint32
}

func (e *Elapsed) Load() uint32 {
	return e.ms.Load()
}

func (e *Elapsed) Duration() time.Duration {
	return time.Duration(e.Load()) * time.Millisecond
}

// Clock is a pass-through beep.Streamer that counts what is drawn from it.
//
// The budget is kept in thousandths of a sample so that sample rates which
// are not a multiple of 1000 Hz do not drift.
type Clock struct {
	s       beep.Streamer
	format  beep.Format
	budget  int
	elapsed *Elapsed
}

// New wraps s. The returned Elapsed is shared with the Clock and stays valid
// for as long as anyone holds it.
func New(s beep.Streamer, format beep.Format) (*Clock, *Elapsed) {
	e := &Elapsed{}
	c := &Clock{
		s:       s,
		format:  format,
		elapsed: e,
	}
	c.budget = c.samplesPerSecond()
	return c, e
}

// interleaved samples per second, across all channels. Without a sample
// rate every sample counts as one ms.
func (c *Clock) samplesPerSecond() int {
	channels := c.format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	if c.format.SampleRate <= 0 {
		return 1000
	}
	return int(c.format.SampleRate) * channels
}

func (c *Clock) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = c.s.Stream(samples)
	if n <= 0 {
		return n, ok
	}

	channels := c.format.NumChannels
	if channels <= 0 {
		channels = 1
	}
	for i := 0; i < n; i++ {
		c.budget -= channels * 1000
		for c.budget <= 0 {
			c.budget += c.samplesPerSecond()
			c.elapsed.ms.Add(1)
		}
	}
	return n, ok
}

func (c *Clock) Err() error {
	return c.s.Err()
}

func (c *Clock) Format() beep.Format {
	return c.format
}

func (c *Clock) Elapsed() *Elapsed {
	return c.elapsed
}

// Len is the length of the wrapped stream in frames, or -1 if unknown.
func (c *Clock) Len() int {
	if ss, ok := c.s.(beep.StreamSeeker); ok {
		return ss.Len()
	}
	return -1
}

// Position is the current frame of the wrapped stream, or -1 if unknown.
func (c *Clock) Position() int {
	if ss, ok := c.s.(beep.StreamSeeker); ok {
		return ss.Position()
	}
	return -1
}

// Seek moves the wrapped stream. The counter keeps counting what is heard
// and is not rewound.
func (c *Clock) Seek(p int) error {
	if ss, ok := c.s.(beep.StreamSeeker); ok {
		return ss.Seek(p)
	}
	return ErrNotSeekable
}

// Duration is the total duration of the wrapped stream when known.
func (c *Clock) Duration() (time.Duration, bool) {
	n := c.Len()
	if n < 0 {
		return 0, false
	}
	return c.format.SampleRate.D(n), true
}
