package convert

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/keziah55/subtitools/internal/subtitle"
	"github.com/keziah55/subtitools/internal/textio"
)

var (
	ErrNotFound          = errors.New("no such file")
	ErrNotAFile          = errors.New("not a regular file")
	ErrParse             = errors.New("could not parse subtitle")
	ErrUnsupportedFormat = errors.New("unknown subtitle format")
	ErrAborted           = errors.New("aborted by user")
)

// represents supported source formats
type Format string

const (
	FormatSub  Format = "sub"
	FormatTTML Format = "ttml"
)

// Options configures a Converter.
type Options struct {
	// FPS is the frame rate used by frame indexed formats.
	FPS float64
	// Encoding decodes the source file; empty means detect.
	Encoding string
	// Quiet skips the overwrite confirmation.
	Quiet bool
	// Confirm decides whether an existing output file may be overwritten.
	// When nil the answer is always yes.
	Confirm func(path string) bool
	// Detect overrides charset detection for the source file.
	Detect textio.DetectFunc
}

// Extractor parses one source format into subtitle records. U is the raw
// unit of the format, such as a line of text or a parsed XML element.
type Extractor[U any] interface {
	// ParseSource reads path and returns its raw units in order.
	ParseSource(path string, opts Options) ([]U, error)
	// Extract converts one unit to a record.
	Extract(unit U) (subtitle.Record, error)
	// Postprocess adjusts the extracted records before rendering.
	Postprocess(records []subtitle.Record) []subtitle.Record
}

// Converter converts a subtitle file to srt.
type Converter interface {
	// Convert reads inPath and writes the srt rendering to outPath. An
	// empty outPath overwrites the input without prompting.
	Convert(inPath, outPath string) error
}

// converters maps a format name to its constructor.
var converters = map[Format]func(Options) Converter{
	FormatSub: func(opts Options) Converter {
		return newPipeline[string](&SubExtractor{FPS: opts.FPS}, opts)
	},
	FormatTTML: func(opts Options) Converter {
		return newPipeline[paragraph](&TTMLExtractor{}, opts)
	},
}

// New returns a Converter for the named format.
func New(format Format, opts Options) (Converter, error) {
	ctor, ok := converters[format]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnsupportedFormat, format)
	}
	return ctor(opts), nil
}

// InferFormat guesses the source format from the file extension.
func InferFormat(path string) Format {
	return Format(strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")))
}

// pipeline runs the shared conversion steps over a format specific
// extractor.
type pipeline[U any] struct {
	extractor Extractor[U]
	opts      Options
}

func newPipeline[U any](e Extractor[U], opts Options) Converter {
	return &pipeline[U]{extractor: e, opts: opts}
}

func (p *pipeline[U]) Convert(inPath, outPath string) error {
	if err := checkSource(inPath); err != nil {
		return err
	}

	units, err := p.extractor.ParseSource(inPath, p.opts)
	if err != nil {
		return err
	}

	if outPath == "" {
		outPath = inPath
	} else if !p.opts.Quiet {
		if _, err := os.Stat(outPath); err == nil && !p.confirm(outPath) {
			return ErrAborted
		}
	}

	records := make([]subtitle.Record, len(units))
	for i, unit := range units {
		rec, err := p.extractor.Extract(unit)
		if err != nil {
			return err
		}
		records[i] = rec
	}
	records = p.extractor.Postprocess(records)

	if err := os.WriteFile(outPath, []byte(subtitle.Render(records)), 0644); err != nil {
		return fmt.Errorf("failed to write srt file: %w", err)
	}
	return nil
}

func (p *pipeline[U]) confirm(path string) bool {
	if p.opts.Confirm == nil {
		return true
	}
	return p.opts.Confirm(path)
}

// checkSource verifies that path exists and is a regular file.
func checkSource(path string) error {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%w: %s", ErrNotAFile, path)
	}
	return nil
}
