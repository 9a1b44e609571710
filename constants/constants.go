package constants

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Defaults for the bundled demo song. Every one can be overridden through
// the environment or command flags.
const (
	DefaultMidiPath     = "resources/music/weeppiko_musix_-_were_fighting_again.mid"
	DefaultAudioPath    = "resources/music/weeppiko_musix_-_were_fighting_again.ogg"
	DefaultGlobalTrack  = 0
	DefaultLeadIn       = 1000 * time.Millisecond
	DefaultPort         = 8080
	DefaultLogLevel     = "INFO"
	DefaultJudgeRadius  = 4
	SpeakerBufferLength = 100 * time.Millisecond
	// how far ahead of the music the highway shows notes
	Lookahead = 2 * time.Second
)

var DefaultTargetTracks = []int{10, 28}

func GetMidiPath() string {
	return envStr("UPBEAT_MIDI_PATH", DefaultMidiPath)
}

func GetAudioPath() string {
	return envStr("UPBEAT_AUDIO_PATH", DefaultAudioPath)
}

func GetTargetTracks() []int {
	if v := os.Getenv("UPBEAT_TARGET_TRACKS"); v != "" {
		if tracks, err := ParseTracks(v); err == nil {
			return tracks
		}
	}
	return append([]int(nil), DefaultTargetTracks...)
}

func GetGlobalTrack() int {
	return envInt("UPBEAT_GLOBAL_TRACK", DefaultGlobalTrack)
}

func GetLeadIn() time.Duration {
	return time.Duration(envInt("UPBEAT_LEAD_IN_MS", int(DefaultLeadIn/time.Millisecond))) * time.Millisecond
}

func GetRequireTimeSignature() bool {
	if v := os.Getenv("UPBEAT_REQUIRE_TIME_SIGNATURE"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return true
}

func GetPort() int {
	return envInt("UPBEAT_PORT", DefaultPort)
}

func GetLogLevel() string {
	return envStr("LOG_LEVEL", DefaultLogLevel)
}

// ParseTracks parses a comma separated list like "10,28".
func ParseTracks(s string) ([]int, error) {
	var res []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil {
			return nil, err
		}
		res = append(res, n)
	}
	return res, nil
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
