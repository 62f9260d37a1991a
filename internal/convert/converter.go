// Package convert holds the format converters.
//
// Every converter has the same shape: strip the fixed header lines of its
// source format, parse and encode each remaining line on its own (the map
// stage, optionally on a worker pool), then sort, deduplicate and add
// target headers over the whole output (the reduce stage, always
// sequential). Converters never perform I/O and never fail as a whole:
// problems with single lines are returned as diagnostics and the line is
// skipped or degraded.
package convert

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
)

// Input is the already read source file.
type Input struct {
	// Lines are the source lines without line terminators.
	Lines []string

	// Fields are pre-split CSV records. Converters that read CSV use them
	// in place of Lines when set.
	Fields [][]string
}

// Result is the converted file.
type Result struct {
	// Lines are ready to be written, one per output line. Blank lines are
	// never included.
	Lines []string

	// Diagnostics are the soft failures met on the way, in input order.
	Diagnostics []error
}

// Converter turns one source format into one target format.
type Converter interface {
	Name() string
	Description() string
	Convert(in Input, opts Options) Result
}

type converter struct {
	name        string
	description string
	run         func(s *session, in Input) []string
}

func (c *converter) Name() string        { return c.name }
func (c *converter) Description() string { return c.description }

func (c *converter) Convert(in Input, opts Options) Result {
	s := &session{
		opts: opts,
		log:  opts.logger().With(slog.String("converter", c.name)),
	}
	lines := c.run(s, in)

	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	s.log.Debug("conversion finished",
		slog.Int("input", max(len(in.Lines), len(in.Fields))),
		slog.Int("output", len(out)),
		slog.Int("diagnostics", len(s.diagnostics)))
	return Result{Lines: out, Diagnostics: s.diagnostics}
}

// session is the per-call state of a converter.
type session struct {
	opts        Options
	log         *slog.Logger
	diagnostics []error
}

// report records soft failures and logs them.
func (s *session) report(errs ...error) {
	for _, err := range errs {
		if err == nil {
			continue
		}
		s.diagnostics = append(s.diagnostics, err)
		s.log.Warn("line degraded", slog.Any("err", err))
	}
}

// atLine wraps err with a 1-based input line number.
func atLine(line int, err error) error {
	return fmt.Errorf("line %d: %w", line, err)
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// skipHeader drops the first n lines of a source format with a fixed
// header.
func skipHeader(lines []string, n int) []string {
	if len(lines) <= n {
		return nil
	}
	return lines[n:]
}

var registry = map[string]Converter{}

func register(name, description string, run func(s *session, in Input) []string) {
	if _, dup := registry[name]; dup {
		panic("convert: duplicate converter " + name)
	}
	registry[name] = &converter{name: name, description: description, run: run}
}

func init() {
	register("gsi-gsi", "GSI8/GSI16 to GSI8/GSI16", gsiToGSI)
	register("txt-gsi", "whitespace separated text to GSI", txtToGSI)
	register("csv-gsi", "CSV to GSI", csvToGSI)
	register("csvbs-gsi", "Basel-Stadt CSV to GSI", csvBaselStadtToGSI)
	register("txtbs-gsi", "Basel-Stadt text to GSI", txtBaselStadtToGSI)
	register("caplan-gsi", "Caplan K to GSI", caplanToGSI)
	register("cadwork-gsi", "Cadwork node.dat to GSI", cadworkToGSI)
	register("zeiss-gsi", "Zeiss REC to GSI", zeissToGSI)
	register("toporail-gsi", "Toporail PTS/MEP to GSI", toporailToGSI)
	register("gsi-zeiss", "GSI to Zeiss REC", gsiToZeiss)
	register("gsi-koo", "GSI to LTOP KOO", gsiToKOO)
	register("zeiss-koo", "Zeiss REC to LTOP KOO", zeissToKOO)
	register("txt-koo", "whitespace separated text to LTOP KOO", txtToKOO)
	register("caplan-koo", "Caplan K to LTOP KOO", caplanToKOO)
	register("gsi-mes", "GSI measurements to LTOP MES", gsiToMES)
	register("gsi-txt", "GSI to text columns", gsiToText)
	register("gsi-csv", "GSI to CSV", gsiToCSV)
}

// Lookup returns the converter registered under name.
func Lookup(name string) (Converter, error) {
	c, ok := registry[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, &ErrUnknownConverter{Name: name}
	}
	return c, nil
}

// Names returns the registered converter names in ascending order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
