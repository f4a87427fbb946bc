package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keziah55/subtitools/internal/config"
	"github.com/keziah55/subtitools/internal/convert"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var convertCmd = &cobra.Command{
	Use:   "convert [in_file] [out_file]",
	Short: "Convert a subtitle file to SRT",
	Long: `Convert a subtitle file to SubRip .srt format.

Supported source formats: frame-indexed .sub and timed-text .ttml.
The format is inferred from the input file extension unless --type is given.

Examples:
  subtitools convert film.ttml film.srt
  subtitools convert film.sub film.srt --fps 23.976
  subtitools convert film.txt film.srt --type sub --quiet`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func init() {
	rootCmd.AddCommand(convertCmd)

	convertCmd.Flags().
		Float64P("fps", "f", 25, "Frame rate of the video, for frame-indexed formats")
	convertCmd.Flags().
		StringP("type", "t", "", "Source format (ttml, sub); overrides extension inference")
	convertCmd.Flags().
		BoolP("quiet", "q", false, "Overwrite the output file without asking")
	convertCmd.Flags().
		StringP("encoding", "e", "", "Character encoding of the input file (default: auto-detect)")
}

func runConvert(cmd *cobra.Command, args []string) error {
	inPath := args[0]
	outPath := args[1]

	fps, _ := cmd.Flags().GetFloat64("fps")
	format, _ := cmd.Flags().GetString("type")
	quiet, _ := cmd.Flags().GetBool("quiet")
	encoding, _ := cmd.Flags().GetString("encoding")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	// flags win over the config file, which wins over built-in defaults
	if !cmd.Flags().Changed("fps") {
		fps = cfg.FPS
	}
	if !cmd.Flags().Changed("quiet") {
		quiet = cfg.Quiet
	}
	if encoding == "" {
		encoding = cfg.Encoding
	}

	if format == "" {
		format = string(convert.InferFormat(inPath))
	}

	logger.Infow("Converting subtitle file",
		"input", inPath,
		"output", outPath,
		"format", format,
		"fps", fps,
	)

	opts := convert.Options{
		FPS:      fps,
		Encoding: encoding,
		Quiet:    quiet,
		Confirm:  promptOverwrite,
	}

	converter, err := convert.New(convert.Format(format), opts)
	if err != nil {
		return err
	}

	if err := converter.Convert(inPath, outPath); err != nil {
		if errors.Is(err, convert.ErrAborted) {
			fmt.Println("Aborting")
			return nil
		}
		return fmt.Errorf("conversion failed: %w", err)
	}

	absOutput, _ := filepath.Abs(outPath)
	fmt.Printf("Subtitles written to %s\n", absOutput)

	return nil
}

// asks the user whether path may be overwritten, defaulting to yes.
// Non-interactive runs never block on the prompt.
func promptOverwrite(path string) bool {
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return true
	}

	fmt.Printf("File '%s' already exists. Overwrite? [Y/n] ", path)

	var reply string
	if _, err := fmt.Scanln(&reply); err != nil {
		reply = ""
	}
	reply = strings.ToLower(strings.TrimSpace(reply))

	return reply == "" || strings.HasPrefix(reply, "y")
}
