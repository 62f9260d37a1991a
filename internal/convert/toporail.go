package convert

import (
	"fmt"
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/gsi"
)

// Toporail header and directive tokens.
const (
	toporailPoints       = "@PTS"
	toporailMeasurements = "@MEP"
	toporailStation      = "@STA"
)

// toporailHeader returns the index of the first non-blank line and the
// file type it announces, "" if it announces neither.
func toporailHeader(lines []string) (int, string) {
	for i, line := range lines {
		if isBlank(line) {
			continue
		}
		upper := strings.ToUpper(line)
		switch {
		case strings.Contains(upper, toporailPoints):
			return i, toporailPoints
		case strings.Contains(upper, toporailMeasurements):
			return i, toporailMeasurements
		}
		return i, ""
	}
	return -1, ""
}

func splitToporail(line string) []string {
	fields := strings.Split(line, ";")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// toporailToGSI converts a PTS or MEP file, chosen by its header. A file
// without either header converts to nothing.
func toporailToGSI(s *session, in Input) []string {
	header, kind := toporailHeader(in.Lines)
	switch kind {
	case toporailPoints:
		return toporailPointsToGSI(s, in.Lines, header)
	case toporailMeasurements:
		return toporailMeasurementsToGSI(s, in.Lines, header)
	}
	s.report(&ErrMissingHeader{Format: "toporail", Token: toporailPoints + " or " + toporailMeasurements})
	return nil
}

// toporailPointsToGSI reads number;easting;northing;height[;code].
func toporailPointsToGSI(s *session, lines []string, header int) []string {
	records := parsePoints(s, lines, 1, true, func(n int, raw string) record {
		if n-1 <= header || isBlank(raw) || strings.HasPrefix(strings.TrimSpace(raw), "@") {
			return record{}
		}
		fields := splitToporail(raw)
		if len(fields) < 4 || len(fields) > 5 {
			return record{diags: []error{&ErrLineShape{
				Line:   n,
				Reason: fmt.Sprintf("expected number;easting;northing;height[;code], got %d fields", len(fields)),
			}}}
		}
		p := point{number: fields[0], easting: fields[1], northing: fields[2], height: fields[3]}
		if len(fields) == 5 {
			p.code = fields[4]
		}
		return record{points: []point{p}}
	})
	return s.gsiOutput(records)
}

// toporailStationOf returns the station a MEP line belongs to: the second
// field of an @STA line, the first of an observation. ok is false for
// lines that are neither.
func toporailStationOf(raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", false
	}
	fields := splitToporail(trimmed)
	if strings.EqualFold(fields[0], toporailStation) {
		if len(fields) < 2 {
			return "", false
		}
		return fields[1], true
	}
	if strings.HasPrefix(trimmed, "@") || len(fields) < 5 {
		return "", false
	}
	return fields[0], true
}

// toporailMeasurementsToGSI reads @STA;station[;ih] and
// station;target;hz;v;distance[;th] lines. An observation whose station
// differs from the one before it gets a station record of its own.
func toporailMeasurementsToGSI(s *session, lines []string, header int) []string {
	records := mapLines(len(lines), s.opts, func(i int) record {
		n := i + 1
		if i <= header || isBlank(lines[i]) {
			return record{}
		}
		fields := splitToporail(lines[i])
		r := record{line: n}

		if strings.EqualFold(fields[0], toporailStation) {
			if len(fields) < 2 || fields[1] == "" {
				r.diags = append(r.diags, &ErrLineShape{Line: n, Reason: "station directive without station"})
				return r
			}
			lb := gsi.NewLineBuilder(n).Add(gsi.WIPointNumber, fields[1])
			if len(fields) > 2 {
				lb.Add(gsi.WIInstrumentHeight, fields[2])
			}
			r.lines = append(r.lines, lb.Line())
			r.diags = append(r.diags, lb.Diagnostics()...)
			return r
		}
		if strings.HasPrefix(fields[0], "@") {
			return r
		}
		if len(fields) < 5 || len(fields) > 6 {
			r.diags = append(r.diags, &ErrLineShape{
				Line:   n,
				Reason: fmt.Sprintf("expected station;target;hz;v;distance[;th], got %d fields", len(fields)),
			})
			return r
		}

		station := fields[0]
		previous, seen := "", false
		for j := i - 1; j > header; j-- {
			if st, ok := toporailStationOf(lines[j]); ok {
				previous, seen = st, true
				break
			}
		}
		if !seen || previous != station {
			r.lines = append(r.lines, gsi.NewLineBuilder(n).Add(gsi.WIPointNumber, station).Line())
		}

		lb := gsi.NewLineBuilder(n).
			Add(gsi.WIPointNumber, fields[1]).
			Add(gsi.WIHorizontalAngle, fields[2]).
			Add(gsi.WIVerticalAngle, fields[3]).
			Add(gsi.WISlopeDistance, fields[4])
		if len(fields) == 6 {
			lb.Add(gsi.WITargetHeight, fields[5])
		}
		r.lines = append(r.lines, lb.Line())
		r.diags = append(r.diags, lb.Diagnostics()...)
		return r
	})
	return s.gsiOutput(records)
}
