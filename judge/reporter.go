package judge

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/jsphweid/upbeat/model"
)

var (
	hit  = color.New(color.FgGreen)
	miss = color.New(color.FgRed)
)

// Reporter prints one line per judgment.
type Reporter struct {
	Out io.Writer
}

func (r Reporter) Report(res model.JudgmentResult) {
	c := hit
	if !res.DirectionOK {
		c = miss
	}
	c.Fprintf(r.Out, "MATCH %-5v: %+4dmsec (T:%+7d)\n", res.DirectionOK, res.OffsetMs, res.NoteTimeMs)
}

func (r Reporter) ReportMiss(in model.DirectionalInput) {
	fmt.Fprintf(r.Out, "NO MATCH %v at %dmsec\n", in.Direction, in.TimestampMs)
}
