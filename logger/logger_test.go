package logger

import (
	"bytes"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestLevelFromString(t *testing.T) {
	cases := map[string]Level{
		"debug":   LevelDebug,
		"INFO":    LevelInfo,
		" warn ":  LevelWarn,
		"warning": LevelWarn,
		"Error":   LevelError,
		"none":    LevelNone,
		"bogus":   LevelInfo,
	}
	for in, want := range cases {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, LevelFromString(in))
		})
	}
}

func TestFiltersBelowLevel(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	lg := New(&buf, LevelWarn)
	lg.Debugf("debug %d", 1)
	lg.Infof("info %d", 2)
	lg.Warnf("warn %d", 3)
	lg.Errorf("error %d", 4)

	assert := assert.New(t)
	out := buf.String()
	assert.NotContains(out, "debug 1")
	assert.NotContains(out, "info 2")
	assert.Contains(out, "[WARN] warn 3")
	assert.Contains(out, "[ERROR] error 4")
}

func TestLevelNoneSilences(t *testing.T) {
	var buf bytes.Buffer
	lg := New(&buf, LevelNone)
	lg.Errorf("nope")
	assert.Empty(t, buf.String())

	lg.SetLevel(LevelDebug)
	assert.Equal(t, LevelDebug, lg.Level())
}

func TestInitSetsProcessLevel(t *testing.T) {
	prev := Log.Level()
	t.Cleanup(func() { Init(prev) })

	Init(LevelDebug)
	assert.Equal(t, LevelDebug, Log.Level())
	Init(LevelFromString("error"))
	assert.Equal(t, LevelError, Log.Level())
}
