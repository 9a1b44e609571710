package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/gopxl/beep/v2"
	"github.com/jsphweid/upbeat/judge"
	"github.com/jsphweid/upbeat/midi"
	"github.com/jsphweid/upbeat/midi/miditest"
	"github.com/jsphweid/upbeat/model"
	"github.com/jsphweid/upbeat/playback"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

// notes at 1000, 2000 and 3000ms going up, up, down
func writeChart(t *testing.T, dir string) string {
	t.Helper()
	f := miditest.New(480)
	f.Track().Tempo(0, 500000).TimeSig(0, 4, 2)
	f.Track().Note(960, 60, 480).Note(480, 64, 480).Note(480, 55, 480)

	path := filepath.Join(dir, "chart.mid")
	assert.NoError(t, os.WriteFile(path, f.Bytes(), 0o644))
	return path
}

func useDefaults(t *testing.T) {
	t.Helper()
	targetTracks = []int{1}
	globalTrack = 0
	requireTimeSignature = true
	notesPerSecond = 0
	judgeRadius = 4
	t.Cleanup(func() { served = nil })
}

func TestLoadChart(t *testing.T) {
	useDefaults(t)
	p, err := loadChart(writeChart(t, t.TempDir()))
	assert.NoError(t, err)
	assert.Equal(t, []model.PatternNote{
		{TimeMs: 1000, Pitch: 60, Direction: model.High},
		{TimeMs: 2000, Pitch: 64, Direction: model.High},
		{TimeMs: 3000, Pitch: 55, Direction: model.Low},
	}, p.Notes)
}

func TestLoadChartNamesFailedPrecondition(t *testing.T) {
	useDefaults(t)
	f := miditest.New(480)
	f.Track().TimeSig(0, 4, 2)
	f.Track().Note(0, 60, 480)
	path := filepath.Join(t.TempDir(), "notempo.mid")
	assert.NoError(t, os.WriteFile(path, f.Bytes(), 0o644))

	_, err := loadChart(path)
	assert.True(t, errors.Is(err, midi.ErrMissingTempo))
	assert.Contains(t, err.Error(), "tempo")
	assert.Contains(t, err.Error(), "notempo.mid")
}

func TestInspectDirectory(t *testing.T) {
	useDefaults(t)
	dir := t.TempDir()
	writeChart(t, dir)
	assert.NoError(t, os.WriteFile(filepath.Join(dir, "broken.mid"), []byte("nope"), 0o644))

	assert.NoError(t, inspect(dir, 0))
	assert.Error(t, inspect(filepath.Join(dir, "missing.mid"), 0))
}

func postJudge(body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/judge", strings.NewReader(body))
	w := httptest.NewRecorder()
	Router().ServeHTTP(w, req)
	return w
}

func TestHandleJudge(t *testing.T) {
	useDefaults(t)
	assert.NoError(t, LoadServeChart(writeChart(t, t.TempDir())))

	w := postJudge(`{"direction": "down", "timestamp_ms": 2600}`)
	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)

	var res model.JudgeResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Equal(served.id, res.ChartId)
	assert.Equal(model.JudgmentResult{NoteTimeMs: 3000, OffsetMs: -400, DirectionOK: true}, res.Result)

	w = postJudge(`{"direction": "up", "timestamp_ms": 1100}`)
	assert.Equal(http.StatusOK, w.Code)
	w = postJudge(`{"direction": "left", "timestamp_ms": 1900}`)
	assert.Equal(http.StatusOK, w.Code)
	assert.Equal("2 of 3 inputs matched direction (High=1 Low=2)", served.summary())
}

func TestHandleJudgeBadRequests(t *testing.T) {
	useDefaults(t)
	assert.Equal(t, http.StatusServiceUnavailable, postJudge(`{}`).Code)

	assert.NoError(t, LoadServeChart(writeChart(t, t.TempDir())))
	assert.Equal(t, http.StatusBadRequest, postJudge(`{"direction": "sideways"}`).Code)
	assert.Equal(t, http.StatusBadRequest, postJudge(`not json`).Code)

	notesPerSecond = 2
	w := postJudge(`{"direction": "up", "timestamp_ms": 60000}`)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var body model.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.NotEmpty(t, body.Error)
}

func TestHandlePattern(t *testing.T) {
	useDefaults(t)
	assert.NoError(t, LoadServeChart(writeChart(t, t.TempDir())))

	req := httptest.NewRequest(http.MethodGet, "/pattern", nil)
	w := httptest.NewRecorder()
	Router().ServeHTTP(w, req)

	assert := assert.New(t)
	assert.Equal(http.StatusOK, w.Code)
	assert.Contains(w.Body.String(), `"direction":"Low"`)

	var res model.PatternResponse
	assert.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	assert.Len(res.Notes, 3)
	assert.Equal(4, res.Tempo.BeatsPerMeasure)
	assert.Equal(served.pattern.Notes, res.Notes)
}

func TestHandleLine(t *testing.T) {
	useDefaults(t)
	color.NoColor = true
	p, err := loadChart(writeChart(t, t.TempDir()))
	assert.NoError(t, err)

	format := beep.Format{SampleRate: 1000, NumChannels: 1, Precision: 2}
	pb := playback.New(beep.Silence(-1), format, 0)
	var out bytes.Buffer
	reporter := judge.Reporter{Out: &out}

	// inputs are ignored while paused
	assert.False(t, handleLine("u", p, pb, reporter))
	assert.Empty(t, out.String())

	pb.Resume()
	buf := make([][2]float64, 1990)
	pb.Streamer().Stream(buf)
	assert.Equal(t, uint32(1990), pb.Now())

	assert.False(t, handleLine("r", p, pb, reporter))
	assert.Equal(t, "MATCH true :  -10msec (T:  +2000)\n", out.String())

	assert.False(t, handleLine("x", p, pb, reporter))
	assert.True(t, handleLine("q", p, pb, reporter))
}

func TestReadLines(t *testing.T) {
	lines := readLines(strings.NewReader("u\n\nq\n"), make(chan struct{}))
	var got []string
	timeout := time.After(time.Second)
	for {
		select {
		case l, ok := <-lines:
			if !ok {
				assert.Equal(t, []string{"u", "", "q"}, got)
				return
			}
			got = append(got, l)
		case <-timeout:
			t.Fatal("lines were not delivered")
		}
	}
}

func TestReadLinesStops(t *testing.T) {
	stop := make(chan struct{})
	lines := readLines(strings.NewReader(strings.Repeat("u\n", 100)), stop)
	assert.Equal(t, "u", <-lines)
	close(stop)

	got := 1
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-lines:
			if !ok {
				assert.Less(t, got, 100)
				return
			}
			got++
		case <-timeout:
			t.Fatal("reader did not stop")
		}
	}
}

func TestUpcoming(t *testing.T) {
	useDefaults(t)
	p, err := loadChart(writeChart(t, t.TempDir()))
	assert.NoError(t, err)

	assert := assert.New(t)
	assert.Equal([]uint32{1000, 2000}, noteTimes(upcoming(p, 900)))
	assert.Equal([]uint32{2000, 3000}, noteTimes(upcoming(p, 1500)))
	assert.Empty(upcoming(p, 3001))
}

func noteTimes(notes []model.PatternNote) []uint32 {
	var res []uint32
	for _, n := range notes {
		res = append(res, n.TimeMs)
	}
	return res
}
