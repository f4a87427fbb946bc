package cli

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/keziah55/subtitools/internal/config"
	"github.com/keziah55/subtitools/internal/shift"
	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [file]",
	Short: "Shift all timestamps in an SRT file",
	Long: `Shift every timestamp in a SubRip .srt file by a fixed offset.

The offset is the sum of the --hours, --minutes, --seconds and
--milliseconds flags, any of which may be negative. Without --output
the file is rewritten in place.

Examples:
  subtitools shift film.srt --seconds 2
  subtitools shift film.srt -m 1 -s -30 -o retimed.srt
  subtitools shift film.srt --milliseconds -500`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)

	shiftCmd.Flags().
		StringP("output", "o", "", "Output file path (default: rewrite in place)")
	shiftCmd.Flags().
		Int("hours", 0, "Hours to shift by")
	shiftCmd.Flags().
		IntP("minutes", "m", 0, "Minutes to shift by")
	shiftCmd.Flags().
		IntP("seconds", "s", 0, "Seconds to shift by")
	shiftCmd.Flags().
		Int("milliseconds", 0, "Milliseconds to shift by")
	shiftCmd.Flags().
		StringP("encoding", "e", "", "Character encoding of the input file (default: auto-detect)")
}

func runShift(cmd *cobra.Command, args []string) error {
	inPath := args[0]

	outPath, _ := cmd.Flags().GetString("output")
	hours, _ := cmd.Flags().GetInt("hours")
	minutes, _ := cmd.Flags().GetInt("minutes")
	seconds, _ := cmd.Flags().GetInt("seconds")
	millis, _ := cmd.Flags().GetInt("milliseconds")
	encoding, _ := cmd.Flags().GetString("encoding")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if encoding == "" {
		encoding = cfg.Encoding
	}

	offset := composeOffset(hours, minutes, seconds, millis)

	logger.Infow("Shifting timestamps",
		"input", inPath,
		"offset", offset.String(),
	)

	opts := shift.Options{Encoding: encoding}
	if err := shift.Apply(inPath, outPath, offset, opts); err != nil {
		return fmt.Errorf("shift failed: %w", err)
	}

	if outPath == "" {
		outPath = inPath
	}
	absOutput, _ := filepath.Abs(outPath)
	fmt.Printf("Timestamps written to %s\n", absOutput)

	return nil
}

// composeOffset combines the flag values into a single signed duration.
func composeOffset(hours, minutes, seconds, millis int) time.Duration {
	return time.Duration(hours)*time.Hour +
		time.Duration(minutes)*time.Minute +
		time.Duration(seconds)*time.Second +
		time.Duration(millis)*time.Millisecond
}
