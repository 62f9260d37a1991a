package convert

import (
	"log/slog"

	"github.com/beetlebugorg/gsiconv/internal/gsi"
	"github.com/beetlebugorg/gsiconv/internal/ltop"
)

// point is the semantic slot set of a coordinate record. Empty slots are
// absent values.
type point struct {
	number     string
	code       string
	attributes []string
	easting    string
	northing   string
	height     string
}

func (p point) empty() bool {
	return p.number == "" && p.easting == "" && p.northing == "" && p.height == ""
}

// gsiLine encodes p. The code and attributes go to WI 71..79 when the
// options ask for a code column.
func (p point) gsiLine(lineNumber int, opts Options) (gsi.Line, []error) {
	lb := gsi.NewLineBuilder(lineNumber)
	lb.Add(gsi.WIPointNumber, p.number)
	if opts.WriteCodeColumn {
		lb.Add(gsi.WIAttribute1, p.code)
		for k, attr := range p.attributes {
			wi := gsi.WIAttribute1 + 1 + k
			if wi > gsi.WIAttribute9 {
				break
			}
			lb.Add(wi, attr)
		}
	}
	lb.Add(gsi.WIEasting, p.easting)
	lb.Add(gsi.WINorthing, p.northing)
	lb.Add(gsi.WIHeight, p.height)
	return lb.Line(), lb.Diagnostics()
}

// record is the map stage output of one input line.
type record struct {
	line   int
	lines  []gsi.Line
	points []point
	diags  []error
}

// gsiOutput renders the records' GSI lines and applies the sort policy.
func (s *session) gsiOutput(records []record) []string {
	var lines []gsi.Line
	for _, r := range records {
		s.report(r.diags...)
		lines = append(lines, r.lines...)
	}
	out := gsi.Assemble(s.opts.GSI16, lines, s.opts.LineEndingWithBlank)
	if s.opts.SortOutput {
		out = gsi.SortByPointNumber(out)
	}
	return out
}

// parsePoints runs parse over items in the map stage. first is the input
// line number of items[0]. With encode set, the points are also encoded to
// GSI there.
func parsePoints[T any](s *session, items []T, first int, encode bool, parse func(line int, item T) record) []record {
	return mapLines(len(items), s.opts, func(i int) record {
		r := parse(first+i, items[i])
		r.line = first + i
		if encode {
			for _, p := range r.points {
				line, errs := p.gsiLine(r.line, s.opts)
				r.lines = append(r.lines, line)
				r.diags = append(r.diags, errs...)
			}
		}
		return r
	})
}

// kooOutput renders the records' points as a KOO file. Zero points are
// dropped when configured, then duplicates are removed or the points
// sorted, and the $$PK header goes in front of a non-empty result.
func (s *session) kooOutput(records []record) []string {
	var candidates []ltop.RyPoint
	for _, r := range records {
		s.report(r.diags...)
		for _, p := range r.points {
			line, errs := ltop.PrepareStringForKOO(ltop.KOOPoint{
				Number:   p.number,
				Easting:  p.easting,
				Northing: p.northing,
				Height:   p.height,
			}, s.opts.EliminateZeroCoordinates)
			for _, err := range errs {
				s.report(atLine(r.line, err))
			}
			if line == "" {
				s.log.Debug("zero point dropped", slog.Int("line", r.line), slog.String("point", p.number))
				continue
			}
			// Non-numeric coordinates were reported above and read as zero.
			ry, _ := ltop.NewRyPoint(p.number, p.easting, p.northing, p.height, line)
			candidates = append(candidates, ry)
		}
	}

	var lines []string
	switch {
	case s.opts.EliminateDuplicates:
		lines = ltop.EliminateDuplicates(candidates, s.opts.duplicateDistance(s.log))
		if dropped := len(candidates) - len(lines); dropped > 0 {
			s.log.Info("duplicates eliminated", slog.Int("count", dropped))
		}
	default:
		if s.opts.SortOutput {
			ltop.SortByNumber(candidates)
		}
		for _, c := range candidates {
			lines = append(lines, c.Line)
		}
	}

	if len(lines) == 0 {
		return nil
	}
	return append([]string{ltop.KOOHeader}, lines...)
}
