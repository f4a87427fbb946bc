package subtitle

import "fmt"

// Record is a single subtitle cue. Text may contain embedded newlines for
// multi line cues.
type Record struct {
	Start Timestamp
	Stop  Timestamp
	Text  string
}

// String renders the cue body as it appears in an srt block, without the
// index line.
func (r Record) String() string {
	return fmt.Sprintf("%s --> %s\n%s", r.Start, r.Stop, r.Text)
}

// SameStart reports whether two records begin at the same time, regardless
// of their stop times or text.
func SameStart(a, b Record) bool {
	return a.Start == b.Start
}
