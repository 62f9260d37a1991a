package convert

import (
	"fmt"
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/caplan"
)

// noHeight is the height written by TXT exporters for points without one.
const noHeight = "-9999"

// cadworkZeroHeight is how Cadwork writes a missing height.
const cadworkZeroHeight = "0.000000"

// Header lines of the formats that carry one.
const (
	cadworkHeaderLines    = 3
	baselStadtHeaderLines = 1
)

// pointFromTokens maps a tokenized point line by its value count:
//
//	number height
//	number easting northing
//	number easting northing height
//
// With withCode the second token is the point code and is not counted.
func pointFromTokens(tokens []string, withCode bool) (point, string) {
	var p point
	if withCode {
		if len(tokens) < 3 {
			return p, fmt.Sprintf("expected number, code and values, got %d fields", len(tokens))
		}
		p.code = tokens[1]
		tokens = append([]string{tokens[0]}, tokens[2:]...)
	}

	p.number = tokens[0]
	switch len(tokens) {
	case 2:
		p.height = tokens[1]
	case 3:
		p.easting, p.northing = tokens[1], tokens[2]
	case 4:
		p.easting, p.northing = tokens[1], tokens[2]
		if tokens[3] != noHeight {
			p.height = tokens[3]
		}
	default:
		return point{}, fmt.Sprintf("expected 2 to 4 values, got %d", len(tokens))
	}
	return p, ""
}

func parseTextLine(line int, raw string, opts Options) record {
	tokens := strings.Fields(raw)
	if len(tokens) == 0 {
		return record{}
	}
	p, reason := pointFromTokens(tokens, opts.SourceContainsCode)
	if reason != "" {
		return record{diags: []error{&ErrLineShape{Line: line, Reason: reason}}}
	}
	return record{points: []point{p}}
}

func txtToGSI(s *session, in Input) []string {
	records := parsePoints(s, in.Lines, 1, true, func(line int, raw string) record {
		return parseTextLine(line, raw, s.opts)
	})
	return s.gsiOutput(records)
}

func txtToKOO(s *session, in Input) []string {
	records := parsePoints(s, in.Lines, 1, false, func(line int, raw string) record {
		return parseTextLine(line, raw, s.opts)
	})
	return s.kooOutput(records)
}

// csvRows returns the pre-split fields, or splits the lines on ';' when
// present and ',' otherwise.
func csvRows(in Input) [][]string {
	if in.Fields != nil {
		return in.Fields
	}
	rows := make([][]string, len(in.Lines))
	for i, line := range in.Lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sep := ","
		if strings.Contains(line, ";") {
			sep = ";"
		}
		rows[i] = strings.Split(line, sep)
	}
	return rows
}

func trimFields(row []string) ([]string, bool) {
	out := make([]string, len(row))
	empty := true
	for i, f := range row {
		out[i] = strings.TrimSpace(f)
		if out[i] != "" {
			empty = false
		}
	}
	return out, empty
}

func csvToGSI(s *session, in Input) []string {
	records := parsePoints(s, csvRows(in), 1, true, func(line int, row []string) record {
		fields, empty := trimFields(row)
		if empty {
			return record{}
		}
		p, reason := pointFromTokens(fields, s.opts.SourceContainsCode)
		if reason != "" {
			return record{diags: []error{&ErrLineShape{Line: line, Reason: reason}}}
		}
		return record{points: []point{p}}
	})
	return s.gsiOutput(records)
}

// baselStadtPoint maps number, code, easting, northing and an optional
// height.
func baselStadtPoint(line int, fields []string) record {
	if len(fields) < 4 || len(fields) > 5 {
		return record{diags: []error{&ErrLineShape{
			Line:   line,
			Reason: fmt.Sprintf("expected number, code, easting, northing [height], got %d fields", len(fields)),
		}}}
	}
	p := point{number: fields[0], code: fields[1], easting: fields[2], northing: fields[3]}
	if len(fields) == 5 {
		p.height = fields[4]
	}
	return record{points: []point{p}}
}

func csvBaselStadtToGSI(s *session, in Input) []string {
	lines := skipHeader(in.Lines, baselStadtHeaderLines)
	records := parsePoints(s, lines, baselStadtHeaderLines+1, true, func(line int, raw string) record {
		fields, empty := trimFields(strings.Split(raw, ";"))
		if empty {
			return record{}
		}
		return baselStadtPoint(line, fields)
	})
	return s.gsiOutput(records)
}

func txtBaselStadtToGSI(s *session, in Input) []string {
	lines := skipHeader(in.Lines, baselStadtHeaderLines)
	records := parsePoints(s, lines, baselStadtHeaderLines+1, true, func(line int, raw string) record {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return record{}
		}
		return baselStadtPoint(line, fields)
	})
	return s.gsiOutput(records)
}

func cadworkToGSI(s *session, in Input) []string {
	lines := skipHeader(in.Lines, cadworkHeaderLines)
	records := parsePoints(s, lines, cadworkHeaderLines+1, true, func(line int, raw string) record {
		fields := strings.Fields(raw)
		if len(fields) == 0 {
			return record{}
		}
		if len(fields) < 4 {
			return record{diags: []error{&ErrLineShape{
				Line:   line,
				Reason: fmt.Sprintf("expected number, easting, northing, height [code], got %d fields", len(fields)),
			}}}
		}
		p := point{number: fields[0], easting: fields[1], northing: fields[2], height: fields[3]}
		if p.height == cadworkZeroHeight && !s.opts.UseZeroHeights {
			p.height = ""
		}
		if len(fields) > 4 {
			p.code = strings.Join(fields[4:], " ")
		}
		return record{points: []point{p}}
	})
	return s.gsiOutput(records)
}

// parseCaplanLine keeps the coordinates its valency marks as valid. An
// invalid valency is reported and inferred from the columns.
func parseCaplanLine(line int, raw string) record {
	if strings.TrimSpace(raw) == "" {
		return record{}
	}
	var r record
	b, err := caplan.Parse(raw)
	if err != nil {
		r.diags = append(r.diags, atLine(line, err))
	}
	p := point{number: b.Number, code: b.Code, attributes: b.Attributes}
	if b.HasPosition() {
		p.easting, p.northing = b.Easting, b.Northing
	}
	if b.HasHeight() {
		p.height = b.Height
	}
	if !p.empty() {
		r.points = []point{p}
	}
	return r
}

func caplanToGSI(s *session, in Input) []string {
	return s.gsiOutput(parsePoints(s, in.Lines, 1, true, parseCaplanLine))
}

func caplanToKOO(s *session, in Input) []string {
	return s.kooOutput(parsePoints(s, in.Lines, 1, false, parseCaplanLine))
}
