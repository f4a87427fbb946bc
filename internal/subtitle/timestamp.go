package subtitle

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// reported when a timestamp string cannot be parsed
var ErrFormat = errors.New("expected timestamp format HH:MM:SS,mmm")

// Timestamp is a subtitle time of day with millisecond resolution.
//
// The components are not range checked, so a parsed "00:99:00,000" renders
// back unchanged. All operations return new values.
type Timestamp struct {
	hour   int
	minute int
	second int
	milli  int
}

func NewTimestamp(hour, minute, second, milli int) Timestamp {
	return Timestamp{hour: hour, minute: minute, second: second, milli: milli}
}

// ParseTimestamp reads a timestamp in "HH:MM:SS,mmm" format. A '.'
// millisecond separator is accepted as well. Fractional components are
// truncated.
func ParseTimestamp(s string) (Timestamp, error) {
	parts := splitClock(s, ",")
	if parts == nil {
		parts = splitClock(s, ".")
	}
	if parts == nil {
		return Timestamp{}, fmt.Errorf("could not parse timestamp %q: %w", s, ErrFormat)
	}
	return Timestamp{parts[0], parts[1], parts[2], parts[3]}, nil
}

// splitClock splits s on ':' and sep and returns the four numeric
// components truncated to ints, or nil if s does not have exactly four.
func splitClock(s, sep string) []int {
	fields := strings.Split(strings.ReplaceAll(s, sep, ":"), ":")
	if len(fields) != 4 {
		return nil
	}
	out := make([]int, 4)
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return nil
		}
		out[i] = int(v)
	}
	return out
}

// FromSeconds converts a number of seconds to a Timestamp. Seconds and
// milliseconds are truncated, not rounded.
func FromSeconds(s float64) Timestamp {
	hr, rem := divmod(s, 3600)
	mn, sec := divmod(rem, 60)
	sec, frac := divmod(sec, 1)
	return Timestamp{int(hr), int(mn), int(sec), int(frac * 1000)}
}

// divmod is floored division with remainder, so frac stays in [0, y).
func divmod(x, y float64) (float64, float64) {
	q := math.Floor(x / y)
	return q, x - q*y
}

// Seconds returns the timestamp as a number of seconds.
func (t Timestamp) Seconds() float64 {
	return float64(3600*t.hour+60*t.minute+t.second) + float64(t.milli)/1000
}

func (t Timestamp) String() string {
	return fmt.Sprintf("%02d:%02d:%02d,%03d", t.hour, t.minute, t.second, t.milli)
}

// Add returns the timestamp shifted by d. The result wraps around
// midnight in both directions, like clock arithmetic on a single day.
func (t Timestamp) Add(d time.Duration) Timestamp {
	// anchor to an arbitrary date so the standard library handles carrying
	shifted := time.Date(
		2000, time.January, 1,
		t.hour, t.minute, t.second, t.milli*int(time.Millisecond),
		time.UTC,
	).Add(d)
	return Timestamp{
		hour:   shifted.Hour(),
		minute: shifted.Minute(),
		second: shifted.Second(),
		milli:  shifted.Nanosecond() / int(time.Millisecond),
	}
}

// Before reports whether t is earlier than other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.Seconds() < other.Seconds()
}

// After reports whether t is later than other.
func (t Timestamp) After(other Timestamp) bool {
	return t.Seconds() > other.Seconds()
}
