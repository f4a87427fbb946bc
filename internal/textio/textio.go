package textio

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dimchansky/utfbom"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// DetectFunc guesses the charset of raw file content.
type DetectFunc func(data []byte) string

// Detect is the default DetectFunc. It returns "utf-8" when detection
// fails.
func Detect(data []byte) string {
	result, err := chardet.NewTextDetector().DetectBest(data)
	if err != nil || result.Charset == "" {
		return "utf-8"
	}
	return result.Charset
}

// charset names the detector reports under a different label than the
// encoding index knows
var charsetAliases = map[string]string{
	"GB-18030": "gb18030",
}

// ReadFile returns the content of path decoded to UTF-8, with any byte
// order mark and all carriage returns removed.
//
// An empty encoding means the charset is detected from the raw bytes;
// detect overrides the default detector and may be nil.
func ReadFile(path, encoding string, detect DetectFunc) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	if encoding == "" {
		if detect == nil {
			detect = Detect
		}
		encoding = detect(data)
	}

	text, err := decode(data, encoding)
	if err != nil {
		return "", err
	}
	return strings.ReplaceAll(text, "\r", ""), nil
}

// ReadLines returns the decoded lines of path. Empty lines are dropped
// unless keepEmpty is set.
func ReadLines(path, encoding string, detect DetectFunc, keepEmpty bool) ([]string, error) {
	text, err := ReadFile(path, encoding, detect)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(text, "\n")
	if keepEmpty {
		return lines, nil
	}
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line != "" {
			out = append(out, line)
		}
	}
	return out, nil
}

// decode converts data from the named charset to UTF-8 and strips any
// leading byte order mark.
func decode(data []byte, name string) (string, error) {
	if alias, ok := charsetAliases[name]; ok {
		name = alias
	}
	enc, err := htmlindex.Get(name)
	if err != nil {
		return "", fmt.Errorf("unsupported encoding %q", name)
	}

	r := utfbom.SkipOnly(transform.NewReader(bytes.NewReader(data), enc.NewDecoder()))
	decoded, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", name, err)
	}
	return string(decoded), nil
}
