package cmd

import (
	"github.com/jsphweid/upbeat/constants"
	"github.com/jsphweid/upbeat/logger"
	"github.com/spf13/cobra"
)

var (
	targetTracks         []int
	globalTrack          int
	requireTimeSignature bool
	logLevel             string
	notesPerSecond       float64
	judgeRadius          int
)

var rootCmd = &cobra.Command{
	Use:   "upbeat",
	Short: "Rhythm engine for the upbeat prototype",
	Long: `Extracts a note pattern from a midi chart, keeps time with the audio
actually played and judges directional inputs against the pattern.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(logger.LevelFromString(logLevel))
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.IntSliceVar(&targetTracks, "tracks", constants.GetTargetTracks(), "midi tracks the pattern is read from")
	flags.IntVar(&globalTrack, "global-track", constants.GetGlobalTrack(), "midi track holding tempo and time signature")
	flags.BoolVar(&requireTimeSignature, "require-time-signature", constants.GetRequireTimeSignature(), "fail on missing or conflicting time signatures")
	flags.StringVar(&logLevel, "log-level", constants.GetLogLevel(), "DEBUG, INFO, WARN, ERROR or NONE")
	flags.Float64Var(&notesPerSecond, "notes-per-second", 0, "judge within a window around the expected grid slot (0 searches the whole pattern)")
	flags.IntVar(&judgeRadius, "judge-radius", constants.DefaultJudgeRadius, "grid slots searched on each side when --notes-per-second is set")
}

// Root is exposed so embedding hosts and tests can set flags.
func Root() *cobra.Command {
	return rootCmd
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
