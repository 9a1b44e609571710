package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jsphweid/upbeat/constants"
	"github.com/jsphweid/upbeat/pattern"
	"github.com/jsphweid/upbeat/util"
	"github.com/spf13/cobra"
)

var showNotes bool

func init() {
	inspectCmd.Flags().BoolVar(&showNotes, "notes", true, "print every pattern note")
	rootCmd.AddCommand(inspectCmd)
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [midi file or dir] [maxNum]",
	Short: "Inspects a chart",
	Long:  `Prints the tempo and the extracted pattern of a chart, or of every chart under a directory.`,
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := constants.GetMidiPath()
		if len(args) > 0 {
			path = args[0]
		}
		var maxNum int
		if len(args) == 2 {
			n, err := strconv.Atoi(args[1])
			if err != nil {
				return err
			}
			maxNum = n
		}
		return inspect(path, maxNum)
	},
}

func inspect(path string, maxNum int) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.IsDir() {
		p, err := loadChart(path)
		if err != nil {
			return err
		}
		printChart(path, p)
		return nil
	}

	paths, err := util.GatherAllMidiPaths(path, maxNum)
	if err != nil {
		return err
	}
	for i, chartPath := range paths {
		fmt.Printf("Inspecting %v of %v charts\n", i+1, len(paths))
		p, err := loadChart(chartPath)
		if err != nil {
			fmt.Printf("Skipping %v because: %v\n", chartPath, err)
			continue
		}
		printChart(chartPath, p)
	}
	return nil
}

func printChart(path string, p *pattern.Pattern) {
	fmt.Printf("chart: %v\n", path)
	fmt.Printf("ms per beat: %.3f\n", p.Tempo.MsPerBeat)
	fmt.Printf("ms per tick: %.5f\n", p.Tempo.MsPerTick)
	if measure, ok := p.Tempo.MeasureMs(); ok {
		fmt.Printf("beats per measure: %v (%.1fms)\n", p.Tempo.BeatsPerMeasure, measure)
	}
	fmt.Printf("notes: %v\n", p.Len())
	if !showNotes {
		return
	}
	for _, n := range p.Notes {
		measure, _ := p.MeasureAt(n.TimeMs)
		fmt.Printf("%8dms  m%-4d pitch %3d  %v\n", n.TimeMs, measure, n.Pitch, n.Direction)
	}
}
