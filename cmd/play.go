package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"
	"github.com/jsphweid/upbeat/constants"
	"github.com/jsphweid/upbeat/file"
	"github.com/jsphweid/upbeat/judge"
	"github.com/jsphweid/upbeat/logger"
	"github.com/jsphweid/upbeat/model"
	"github.com/jsphweid/upbeat/pattern"
	"github.com/jsphweid/upbeat/playback"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var leadIn time.Duration

func init() {
	playCmd.Flags().DurationVar(&leadIn, "lead-in", constants.GetLeadIn(), "silence played before the music starts")
	rootCmd.AddCommand(playCmd)
}

var playCmd = &cobra.Command{
	Use:   "play [midi file] [audio file]",
	Short: "Plays a chart in the terminal",
	Long: `Plays the audio and judges inputs read from stdin, one per line:
u/r for high, d/l for low, an empty line toggles pause, q quits.`,
	Args: cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		midiPath, audioPath := constants.GetMidiPath(), constants.GetAudioPath()
		if len(args) > 0 {
			midiPath = args[0]
		}
		if len(args) > 1 {
			audioPath = args[1]
		}
		return play(midiPath, audioPath, os.Stdin, os.Stdout)
	},
}

// readLines stops delivering once stop is closed.
func readLines(r io.Reader, stop <-chan struct{}) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-stop:
				return
			}
		}
	}()
	return lines
}

// upcoming is what the highway shows at music time now.
func upcoming(p *pattern.Pattern, now uint32) []model.PatternNote {
	return p.Between(now, now+uint32(constants.Lookahead/time.Millisecond))
}

func play(midiPath, audioPath string, in io.Reader, out io.Writer) error {
	p, err := loadChart(midiPath)
	if err != nil {
		return err
	}

	music, format, err := file.OpenAudio(audioPath)
	if err != nil {
		return err
	}
	defer music.Close()

	pb := playback.New(music, format, leadIn)
	rate := pb.Format().SampleRate
	if err := speaker.Init(rate, rate.N(constants.SpeakerBufferLength)); err != nil {
		return errors.Wrap(err, "could not open audio output")
	}
	defer speaker.Close()

	done := make(chan struct{})
	speaker.Play(beep.Seq(pb.Streamer(), beep.Callback(func() { close(done) })))

	if d, ok := pb.MusicDuration(); ok {
		logger.Log.Infof("%s: %d notes, %v of music", audioPath, p.Len(), d.Round(time.Second))
	}
	fmt.Fprintln(out, "Paused - press enter")

	reporter := judge.Reporter{Out: out}
	stop := make(chan struct{})
	defer close(stop)
	lines := readLines(in, stop)
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	lastMeasure := -1

	for {
		select {
		case <-done:
			fmt.Fprintf(out, "Finished after %v\n", pb.Elapsed().Duration())
			return pb.Err()
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := handleLine(strings.TrimSpace(line), p, pb, reporter); quit {
				return nil
			}
		case <-ticker.C:
			now := pb.Now()
			measure, ok := p.MeasureAt(now)
			if !ok || measure == lastMeasure || pb.Paused() {
				continue
			}
			lastMeasure = measure
			if logger.Log.Level() <= logger.LevelDebug {
				logger.Log.Debugf("measure %d at %dms (highway %dms), %d notes ahead",
					measure, now, pb.HighwayMs(), len(upcoming(p, now)))
			}
		}
	}
}

// handleLine reports whether the player asked to quit.
func handleLine(line string, p *pattern.Pattern, pb *playback.Playback, reporter judge.Reporter) bool {
	switch line {
	case "q", "quit":
		return true
	case "":
		speaker.Lock()
		if pb.Paused() {
			pb.Resume()
		} else {
			pb.Pause()
		}
		speaker.Unlock()
		return false
	}

	// read the clock before anything else so parsing does not delay the input
	now := pb.Now()
	if pb.Paused() {
		return false
	}
	nav, ok := model.ParseNavDirection(line)
	if !ok {
		logger.Log.Warnf("unknown input %q", line)
		return false
	}
	in := model.NewDirectionalInput(nav, now)
	if res, ok := judgeInput(p, in); ok {
		reporter.Report(res)
	} else {
		reporter.ReportMiss(in)
	}
	return false
}
