package cli

import (
	"github.com/keziah55/subtitools/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	configPath string
	logger     *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "subtitools",
	Short: "Convert and retime subtitle files",
	Long: `Subtitools is a CLI tool for working with subtitle files.

It converts frame-indexed .sub and timed-text .ttml files to SubRip
.srt and shifts the timestamps of existing .srt files.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger = logging.NewLogger(verbose)
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().
		BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().
		StringVar(&configPath, "config", "", "Config file path (default: ~/.config/subtitools/config.toml)")
}
