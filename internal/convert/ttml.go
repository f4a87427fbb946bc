package convert

import (
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/keziah55/subtitools/internal/subtitle"
	"github.com/keziah55/subtitools/internal/textio"
)

// break tags are replaced with newlines before text extraction so they
// survive as line breaks instead of being dropped with the markup
var (
	brTagRE   = regexp.MustCompile(`<br */?>`)
	brCloseRE = regexp.MustCompile(`</br *>`)
)

// paragraph is a timed <p> element of the document body, keeping its raw
// inner markup for later text extraction.
type paragraph struct {
	Begin string `xml:"begin,attr"`
	End   string `xml:"end,attr"`
	Inner string `xml:",innerxml"`
}

// TTMLExtractor converts the timed <p> elements of a .ttml document.
// Spans inside a <p> mark separate speakers, while <br> tags mark line
// breaks within one speaker's text.
type TTMLExtractor struct{}

func (e *TTMLExtractor) ParseSource(path string, opts Options) ([]paragraph, error) {
	content, err := textio.ReadFile(path, opts.Encoding, opts.Detect)
	if err != nil {
		return nil, err
	}
	return parseParagraphs(content)
}

// parseParagraphs collects the <p> elements inside the document body.
func parseParagraphs(content string) ([]paragraph, error) {
	dec := xml.NewDecoder(strings.NewReader(content))

	var paras []paragraph
	inBody := false
	depth := 0
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if !inBody {
				if t.Name.Local == "body" {
					inBody = true
					depth = 1
				}
				continue
			}
			if t.Name.Local == "p" {
				var para paragraph
				// DecodeElement consumes the whole element
				if err := dec.DecodeElement(&para, &t); err != nil {
					return nil, fmt.Errorf("%w: %v", ErrParse, err)
				}
				paras = append(paras, para)
				continue
			}
			depth++
		case xml.EndElement:
			if inBody {
				depth--
				if depth == 0 {
					inBody = false
				}
			}
		}
	}
	return paras, nil
}

func (e *TTMLExtractor) Extract(p paragraph) (subtitle.Record, error) {
	if p.Begin == "" || p.End == "" {
		return subtitle.Record{}, fmt.Errorf(
			"%w: missing 'begin' and 'end' on <p>%s</p>",
			ErrParse,
			p.Inner,
		)
	}

	start, err := parseClock(p.Begin)
	if err != nil {
		return subtitle.Record{}, err
	}
	stop, err := parseClock(p.End)
	if err != nil {
		return subtitle.Record{}, err
	}

	segments, err := textSegments(p.Inner)
	if err != nil {
		return subtitle.Record{}, err
	}
	if len(segments) > 1 {
		// multiple speakers: mark each line
		for i, s := range segments {
			segments[i] = "- " + s
		}
	}

	return subtitle.Record{
		Start: start,
		Stop:  stop,
		Text:  strings.Join(segments, "\n"),
	}, nil
}

// Postprocess folds neighbouring records that begin at the same time into
// one record, joining their text and keeping the latest stop. Equal starts
// separated by another cue are left alone.
func (e *TTMLExtractor) Postprocess(records []subtitle.Record) []subtitle.Record {
	merged := make([]subtitle.Record, 0, len(records))
	for i := 0; i < len(records); {
		j := i + 1
		for j < len(records) && subtitle.SameStart(records[j-1], records[j]) {
			j++
		}
		if j-i == 1 {
			merged = append(merged, records[i])
		} else {
			merged = append(merged, mergeRun(records[i:j]))
		}
		i = j
	}
	return merged
}

// mergeRun combines records sharing a start time.
func mergeRun(run []subtitle.Record) subtitle.Record {
	stop := run[0].Stop.Seconds()
	texts := make([]string, len(run))
	for i, rec := range run {
		if s := rec.Stop.Seconds(); s > stop {
			stop = s
		}
		texts[i] = rec.Text
	}
	return subtitle.Record{
		Start: run[0].Start,
		Stop:  subtitle.FromSeconds(stop),
		Text:  strings.Join(texts, "\n"),
	}
}

// textSegments returns the text nodes of a <p> element's inner markup, one
// per speaker. Break tags become newlines inside a segment rather than
// segment boundaries.
func textSegments(inner string) ([]string, error) {
	inner = brTagRE.ReplaceAllString(inner, "\n")
	inner = brCloseRE.ReplaceAllString(inner, "")

	dec := xml.NewDecoder(strings.NewReader(inner))
	var segments []string
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrParse, err)
		}
		if cd, ok := tok.(xml.CharData); ok {
			if s := strings.TrimSpace(string(cd)); s != "" {
				segments = append(segments, s)
			}
		}
	}
	return segments, nil
}

// parseClock reads ttml clock values, "HH:MM:SS.mmm" or "MM:SS.mmm". The
// hour and fraction are optional and the fraction digits are taken as
// written, so ".04" means 4 milliseconds.
func parseClock(ts string) (subtitle.Timestamp, error) {
	var hr, mn, rest string
	switch parts := strings.Split(ts, ":"); len(parts) {
	case 3:
		hr, mn, rest = parts[0], parts[1], parts[2]
	case 2:
		hr, mn, rest = "0", parts[0], parts[1]
	default:
		return subtitle.Timestamp{}, clockError(ts)
	}

	sec, ms := rest, "0"
	if i := strings.IndexByte(rest, '.'); i >= 0 {
		sec, ms = rest[:i], rest[i+1:]
		if strings.Contains(ms, ".") {
			return subtitle.Timestamp{}, clockError(ts)
		}
	}

	var fields [4]int
	for i, f := range []string{hr, mn, sec, ms} {
		v, err := strconv.Atoi(f)
		if err != nil {
			return subtitle.Timestamp{}, clockError(ts)
		}
		fields[i] = v
	}
	return subtitle.NewTimestamp(fields[0], fields[1], fields[2], fields[3]), nil
}

func clockError(ts string) error {
	return fmt.Errorf("cannot parse clock value %q: %w", ts, subtitle.ErrFormat)
}
