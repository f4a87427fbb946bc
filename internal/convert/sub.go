package convert

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/keziah55/subtitools/internal/subtitle"
	"github.com/keziah55/subtitools/internal/textio"
)

// frame indexed cue, e.g. {0}{50}Hello|World
var subLineRE = regexp.MustCompile(`^\{(\d+)\}\{(\d+)\}(.*)`)

// SubExtractor converts .sub files, where each line holds start and stop
// frame numbers instead of times and '|' marks a line break.
type SubExtractor struct {
	// FPS is the frame rate used to turn frame numbers into times.
	FPS float64
}

func (e *SubExtractor) ParseSource(path string, opts Options) ([]string, error) {
	if e.FPS <= 0 {
		return nil, fmt.Errorf("frame rate must be positive, got %v", e.FPS)
	}
	return textio.ReadLines(path, opts.Encoding, opts.Detect, false)
}

func (e *SubExtractor) Extract(line string) (subtitle.Record, error) {
	m := subLineRE.FindStringSubmatch(line)
	if m == nil {
		return subtitle.Record{}, fmt.Errorf("%w: line %q", ErrParse, line)
	}

	start, err := e.frameTime(m[1])
	if err != nil {
		return subtitle.Record{}, err
	}
	stop, err := e.frameTime(m[2])
	if err != nil {
		return subtitle.Record{}, err
	}

	return subtitle.Record{
		Start: start,
		Stop:  stop,
		Text:  strings.ReplaceAll(m[3], "|", "\n"),
	}, nil
}

// frameTime converts a frame count to a timestamp using the extractor's
// frame rate.
func (e *SubExtractor) frameTime(frames string) (subtitle.Timestamp, error) {
	n, err := strconv.Atoi(frames)
	if err != nil {
		return subtitle.Timestamp{}, fmt.Errorf("bad frame number %q: %w", frames, subtitle.ErrFormat)
	}
	return subtitle.FromSeconds(float64(n) / e.FPS), nil
}

func (e *SubExtractor) Postprocess(records []subtitle.Record) []subtitle.Record {
	return records
}
