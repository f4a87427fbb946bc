package cli

import (
	"fmt"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/keziah55/subtitools/internal/config"
	"github.com/keziah55/subtitools/internal/subtitle"
	"github.com/keziah55/subtitools/internal/textio"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Show timing statistics for an SRT file",
	Long: `Show timing statistics for a SubRip .srt file.

Prints the number of cues, the first start and last stop timestamps,
and the duration spanned between them.

Examples:
  subtitools info film.srt
  subtitools info film.srt --encoding latin-1`,
	Args: cobra.ExactArgs(1),
	RunE: runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().
		StringP("encoding", "e", "", "Character encoding of the file (default: auto-detect)")
}

func runInfo(cmd *cobra.Command, args []string) error {
	path := args[0]

	encoding, _ := cmd.Flags().GetString("encoding")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if encoding == "" {
		encoding = cfg.Encoding
	}

	lines, err := textio.ReadLines(path, encoding, nil, false)
	if err != nil {
		return err
	}

	stats := subtitle.ScanStats(lines)
	if stats.Cues == 0 {
		fmt.Printf("No cues found in %s\n", path)
		return nil
	}

	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Cues", "First start", "Last stop", "Span"})
	tw.AppendRow(table.Row{
		filepath.Base(path),
		stats.Cues,
		stats.First.String(),
		stats.Last.String(),
		stats.Span().String(),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})
	fmt.Println(tw.Render())

	return nil
}
