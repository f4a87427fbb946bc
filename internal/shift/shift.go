package shift

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/keziah55/subtitools/internal/subtitle"
	"github.com/keziah55/subtitools/internal/textio"
)

// Options configures Apply.
type Options struct {
	// Encoding decodes the input file; empty means detect.
	Encoding string
	// Detect overrides charset detection for the input file.
	Detect textio.DetectFunc
}

// Apply shifts every cue timing in the srt file at inPath by offset and
// writes the result to outPath. An empty outPath overwrites the input.
//
// Only lines beginning with a timing range are rewritten; everything else
// passes through unchanged. Timestamps wrap around midnight. A timing
// range that fails to parse aborts the shift before anything is written.
func Apply(inPath, outPath string, offset time.Duration, opts Options) error {
	lines, err := textio.ReadLines(inPath, opts.Encoding, opts.Detect, true)
	if err != nil {
		return err
	}

	for i, line := range lines {
		rawStart, rawStop, ok := subtitle.MatchTimingLine(line)
		if !ok {
			continue
		}
		start, err := subtitle.ParseTimestamp(rawStart)
		if err != nil {
			return err
		}
		stop, err := subtitle.ParseTimestamp(rawStop)
		if err != nil {
			return err
		}
		lines[i] = fmt.Sprintf("%s --> %s", start.Add(offset), stop.Add(offset))
	}

	if outPath == "" {
		outPath = inPath
	}
	if err := os.WriteFile(outPath, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return fmt.Errorf("failed to write srt file: %w", err)
	}
	return nil
}
