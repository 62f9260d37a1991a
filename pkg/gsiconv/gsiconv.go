package gsiconv

import (
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/convert"
	"github.com/beetlebugorg/gsiconv/internal/zeiss"
)

// Options configures a conversion. See DefaultOptions.
type Options = convert.Options

// DefaultOptions returns GSI8 output, Zeiss M5, serial processing and a
// duplicate distance of 0.03.
func DefaultOptions() Options {
	return convert.DefaultOptions()
}

// Dialect is a Zeiss REC column layout.
type Dialect = zeiss.Dialect

const (
	DialectR4     = zeiss.DialectR4
	DialectR5     = zeiss.DialectR5
	DialectREC500 = zeiss.DialectREC500
	DialectM5     = zeiss.DialectM5
)

// ParseDialect parses "R4", "R5", "REC500" or "M5", ignoring case.
func ParseDialect(name string) (Dialect, error) {
	return zeiss.ParseDialect(name)
}

// Error types reported by converters.
type (
	ErrUnknownConverter = convert.ErrUnknownConverter
	ErrLineShape        = convert.ErrLineShape
	ErrMissingHeader    = convert.ErrMissingHeader
	ErrUnknownDialect   = zeiss.ErrUnknownDialect
)

// Result is a converted file.
type Result struct {
	// Lines are the output lines without terminators. Blank lines are never
	// included.
	Lines []string

	// Diagnostics are the soft failures met during the conversion, in
	// input order.
	Diagnostics []error
}

// Empty reports whether the conversion produced no output.
func (r Result) Empty() bool {
	return len(r.Lines) == 0
}

// Converter converts one source format into one target format.
//
// Create one with NewConverter. A Converter holds no state between calls
// and may be used from several goroutines.
type Converter interface {
	// Name returns the registered name, e.g. "gsi-koo".
	Name() string

	// Description returns a short human-readable summary.
	Description() string

	// Convert converts already read source lines.
	Convert(lines []string, opts Options) Result

	// ConvertFields converts pre-split CSV records. Converters that do not
	// read CSV see each record joined back with ';'.
	ConvertFields(fields [][]string, opts Options) Result
}

// NewConverter returns the converter registered under name. Names are
// matched case-insensitively.
//
// Example:
//
//	c, err := gsiconv.NewConverter("zeiss-gsi")
//	res := c.Convert(lines, gsiconv.DefaultOptions())
func NewConverter(name string) (Converter, error) {
	c, err := convert.Lookup(name)
	if err != nil {
		return nil, err
	}
	return &converterWrapper{internal: c}, nil
}

// converterWrapper wraps the internal converter and converts types
type converterWrapper struct {
	internal convert.Converter
}

func (c *converterWrapper) Name() string        { return c.internal.Name() }
func (c *converterWrapper) Description() string { return c.internal.Description() }

func (c *converterWrapper) Convert(lines []string, opts Options) Result {
	return convertResult(c.internal.Convert(convert.Input{Lines: lines}, opts))
}

func (c *converterWrapper) ConvertFields(fields [][]string, opts Options) Result {
	return convertResult(c.internal.Convert(convert.Input{Lines: joinFields(fields), Fields: fields}, opts))
}

// Convert runs the converter registered under name. The error is non-nil
// only for an unknown name.
func Convert(name string, lines []string, opts Options) (Result, error) {
	c, err := NewConverter(name)
	if err != nil {
		return Result{}, err
	}
	return c.Convert(lines, opts), nil
}

// ConvertFields is Convert for pre-split CSV records.
func ConvertFields(name string, fields [][]string, opts Options) (Result, error) {
	c, err := NewConverter(name)
	if err != nil {
		return Result{}, err
	}
	return c.ConvertFields(fields, opts), nil
}

// Names returns the registered converter names in ascending order.
func Names() []string {
	return convert.Names()
}

func convertResult(r convert.Result) Result {
	return Result{Lines: r.Lines, Diagnostics: r.Diagnostics}
}

func joinFields(fields [][]string) []string {
	lines := make([]string, len(fields))
	for i, record := range fields {
		lines[i] = strings.Join(record, ";")
	}
	return lines
}
