package logger

import (
	"io"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
)

type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
	LevelNone
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	case LevelNone:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

// LevelFromString falls back to INFO for anything it does not recognize.
func LevelFromString(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return LevelDebug
	case "INFO":
		return LevelInfo
	case "WARN", "WARNING":
		return LevelWarn
	case "ERROR":
		return LevelError
	case "NONE":
		return LevelNone
	default:
		return LevelInfo
	}
}

var tagColors = map[Level]*color.Color{
	LevelDebug: color.New(color.FgHiBlack),
	LevelInfo:  color.New(color.FgCyan),
	LevelWarn:  color.New(color.FgYellow),
	LevelError: color.New(color.FgRed, color.Bold),
}

type Logger struct {
	l     *log.Logger
	level Level
}

// Log is the process wide logger. cmd re-initializes it from LOG_LEVEL.
var Log = New(os.Stderr, LevelInfo)

func New(out io.Writer, level Level) *Logger {
	return &Logger{
		l:     log.New(out, "", log.Ltime),
		level: level,
	}
}

// Init sets the level of Log. It is meant to be called once at startup.
func Init(level Level) {
	Log.SetLevel(level)
}

func (lg *Logger) log(level Level, format string, v ...any) {
	if lg == nil || level < lg.level {
		return
	}
	tag := tagColors[level].Sprintf("[%s]", level)
	lg.l.Printf(tag+" "+format, v...)
}

func (lg *Logger) Debugf(format string, v ...any) { lg.log(LevelDebug, format, v...) }
func (lg *Logger) Infof(format string, v ...any)  { lg.log(LevelInfo, format, v...) }
func (lg *Logger) Warnf(format string, v ...any)  { lg.log(LevelWarn, format, v...) }
func (lg *Logger) Errorf(format string, v ...any) { lg.log(LevelError, format, v...) }

func (lg *Logger) SetLevel(level Level) {
	lg.level = level
}

func (lg *Logger) Level() Level {
	return lg.level
}
