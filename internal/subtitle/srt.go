package subtitle

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// timing line of an srt block, e.g. "00:01:02,500 --> 00:01:05,000"
var timingRE = regexp.MustCompile(`^(\d\d:\d\d:\d\d,\d\d\d) --> (\d\d:\d\d:\d\d,\d\d\d)`)

// Render builds an srt document from records: 1-based indices in input
// order, a blank line between blocks and a single trailing newline.
func Render(records []Record) string {
	var sb strings.Builder
	for i, rec := range records {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "%d\n%s\n", i+1, rec)
	}
	return sb.String()
}

// MatchTimingLine returns the raw start and stop fields of an srt timing
// line, or false when the line does not begin with a timing range.
// Anything after the range is ignored.
func MatchTimingLine(line string) (start, stop string, ok bool) {
	m := timingRE.FindStringSubmatch(line)
	if m == nil {
		return "", "", false
	}
	return m[1], m[2], true
}

// ParseTimingLine reads the start and stop timestamps from an srt timing
// line.
func ParseTimingLine(line string) (Timestamp, Timestamp, bool) {
	rawStart, rawStop, ok := MatchTimingLine(line)
	if !ok {
		return Timestamp{}, Timestamp{}, false
	}
	start, err := ParseTimestamp(rawStart)
	if err != nil {
		return Timestamp{}, Timestamp{}, false
	}
	stop, err := ParseTimestamp(rawStop)
	if err != nil {
		return Timestamp{}, Timestamp{}, false
	}
	return start, stop, true
}

// Stats summarises the cues of an srt document.
type Stats struct {
	Cues  int
	First Timestamp
	Last  Timestamp
}

// ScanStats collects cue statistics from the lines of an srt file. First
// is the earliest start and Last the latest stop; lines that are not
// timing lines are skipped.
func ScanStats(lines []string) Stats {
	var st Stats
	for _, line := range lines {
		start, stop, ok := ParseTimingLine(line)
		if !ok {
			continue
		}
		if st.Cues == 0 || start.Before(st.First) {
			st.First = start
		}
		if st.Cues == 0 || stop.After(st.Last) {
			st.Last = stop
		}
		st.Cues++
	}
	return st
}

// Span is the time covered from the first cue's start to the last cue's
// stop.
func (s Stats) Span() time.Duration {
	if s.Cues == 0 {
		return 0
	}
	return time.Duration((s.Last.Seconds() - s.First.Seconds()) * float64(time.Second))
}
