package playback

import (
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/jsphweid/upbeat/clock"
)

// Playback plays a silent lead-in followed by the music, each behind its
// own clock. Pattern times are relative to the start of the music.
type Playback struct {
	format  beep.Format
	leadIn  time.Duration
	leadMs  *clock.Elapsed
	musicMs *clock.Elapsed
	music   *clock.Clock
	ctrl    *beep.Ctrl
}

// New starts out paused. leadIn is used exactly as given.
func New(music beep.Streamer, format beep.Format, leadIn time.Duration) *Playback {
	leadClock, leadMs := clock.New(beep.Silence(format.SampleRate.N(leadIn)), format)
	musicClock, musicMs := clock.New(music, format)
	return &Playback{
		format:  format,
		leadIn:  leadIn,
		leadMs:  leadMs,
		musicMs: musicMs,
		music:   musicClock,
		ctrl:    &beep.Ctrl{Streamer: beep.Seq(leadClock, musicClock), Paused: true},
	}
}

// Streamer is what the output sink should play.
func (p *Playback) Streamer() beep.Streamer {
	return p.ctrl
}

func (p *Playback) Format() beep.Format {
	return p.format
}

// Now is how much of the music has been heard, in ms.
func (p *Playback) Now() uint32 {
	return p.musicMs.Load()
}

// Elapsed exposes the music counter for readers that poll it directly.
func (p *Playback) Elapsed() *clock.Elapsed {
	return p.musicMs
}

func (p *Playback) LeadInElapsed() uint32 {
	return p.leadMs.Load()
}

// HighwayMs is the position of the note highway: negative while the
// lead-in is still playing, music time afterwards.
func (p *Playback) HighwayMs() int64 {
	remaining := int64(p.leadIn/time.Millisecond) - int64(p.leadMs.Load())
	if remaining < 0 {
		remaining = 0
	}
	return int64(p.musicMs.Load()) - remaining
}

// MusicDuration is the length of the music, when the decoder knows it.
func (p *Playback) MusicDuration() (time.Duration, bool) {
	return p.music.Duration()
}

// Pause and Resume touch state read by the audio thread; hosts playing
// through beep's speaker must hold speaker.Lock around them.
func (p *Playback) Pause() {
	p.ctrl.Paused = true
}

func (p *Playback) Resume() {
	p.ctrl.Paused = false
}

func (p *Playback) Paused() bool {
	return p.ctrl.Paused
}

func (p *Playback) Err() error {
	return p.ctrl.Err()
}
