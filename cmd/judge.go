package cmd

import (
	"os"
	"strconv"

	"github.com/jsphweid/upbeat/judge"
	"github.com/jsphweid/upbeat/model"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(judgeCmd)
}

var judgeCmd = &cobra.Command{
	Use:   "judge <midi file> <timestampMs> <up|down|left|right>",
	Short: "Judges a single input",
	Long:  `Judges one directional input at the given music time against a chart.`,
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		ts, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			return errors.Wrap(err, "invalid timestamp")
		}
		nav, ok := model.ParseNavDirection(args[2])
		if !ok {
			return errors.Errorf("invalid direction %q", args[2])
		}

		p, err := loadChart(args[0])
		if err != nil {
			return err
		}

		in := model.NewDirectionalInput(nav, uint32(ts))
		reporter := judge.Reporter{Out: os.Stdout}
		if res, ok := judgeInput(p, in); ok {
			reporter.Report(res)
		} else {
			reporter.ReportMiss(in)
		}
		return nil
	},
}
