package convert

import (
	"log/slog"
	"strconv"

	"github.com/beetlebugorg/gsiconv/internal/field"
	"github.com/beetlebugorg/gsiconv/internal/gsi"
	"github.com/beetlebugorg/gsiconv/internal/zeiss"
)

// zeissWordIndex maps the Zeiss types with a direct GSI counterpart.
var zeissWordIndex = map[zeiss.TypeID]int{
	zeiss.TypeY:     gsi.WIEasting,
	zeiss.TypeX:     gsi.WINorthing,
	zeiss.TypeZ:     gsi.WIHeight,
	zeiss.TypeYo:    gsi.WIStationEasting,
	zeiss.TypeXo:    gsi.WIStationNorthing,
	zeiss.TypeZo:    gsi.WIStationHeight,
	zeiss.TypeHz:    gsi.WIHorizontalAngle,
	zeiss.TypeV1:    gsi.WIVerticalAngle,
	zeiss.TypeD:     gsi.WISlopeDistance,
	zeiss.TypeE:     gsi.WIHorizontalDistance,
	zeiss.TypeHDiff: gsi.WIHeightDifference,
	zeiss.TypeIh:    gsi.WIInstrumentHeight,
	zeiss.TypeTh:    gsi.WITargetHeight,
}

// fullAngle returns the zenith-to-horizon angle in the unit of a Zeiss
// vertical angle.
func fullAngle(unit string) float64 {
	if unit == zeiss.UnitDegree {
		return 90
	}
	return 100
}

// complement converts between a zenith angle and an elevation angle.
func complement(v float64, unit string) string {
	return strconv.FormatFloat(fullAngle(unit)-v, 'f', 5, 64)
}

func complementAngle(value, unit string) (string, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return "", &field.ErrNotNumeric{Value: value}
	}
	return complement(v, unit), nil
}

// angleUnit returns the Zeiss unit of the angles on a GSI line, taken from
// the horizontal direction when present.
func angleUnit(line gsi.Line) string {
	for _, wi := range []int{gsi.WIHorizontalAngle, gsi.WIVerticalAngle} {
		if b, ok := line.Get(wi); ok {
			if b.Degrees() {
				return zeiss.UnitDegree
			}
			return zeiss.UnitGon
		}
	}
	return zeiss.UnitGon
}

type zeissRecord struct {
	record
	skipped []zeiss.Block
}

// zeissToGSILine maps one decoded REC line. Blocks without a GSI word index
// are returned as skipped; date, time and instrument constants spread over
// several lines are not merged.
func zeissToGSILine(n int, line zeiss.Line, opts Options) zeissRecord {
	var r zeissRecord
	lb := gsi.NewLineBuilder(n)
	mapped := 0

	if opts.WriteCodeColumn {
		lb.Add(gsi.WIAttribute1, line.Code)
	}
	for _, b := range line.Blocks {
		if wi, ok := zeissWordIndex[b.Type]; ok {
			lb.Add(wi, b.Value)
			mapped++
			continue
		}
		switch b.Type {
		case zeiss.TypeV2:
			zenith, err := complementAngle(b.Value, b.Unit)
			if err != nil {
				r.diags = append(r.diags, atLine(n, err))
				continue
			}
			lb.Add(gsi.WIVerticalAngle, zenith)
			mapped++
		case zeiss.TypeKD:
			if opts.WriteCodeColumn && line.Code == "" {
				lb.Add(gsi.WIAttribute1, b.Value)
			}
		default:
			r.skipped = append(r.skipped, b)
		}
	}

	if mapped == 0 {
		return r
	}
	lb.Add(gsi.WIPointNumber, line.Number)
	r.lines = []gsi.Line{lb.Line()}
	r.diags = append(r.diags, lb.Diagnostics()...)
	return r
}

func zeissToGSI(s *session, in Input) []string {
	results := mapLines(len(in.Lines), s.opts, func(i int) zeissRecord {
		n := i + 1
		if isBlank(in.Lines[i]) {
			return zeissRecord{}
		}
		line, err := zeiss.DecodeLine(in.Lines[i])
		if err != nil {
			return zeissRecord{record: record{diags: []error{atLine(n, err)}}}
		}
		r := zeissToGSILine(n, line, s.opts)
		r.line = n
		return r
	})

	records := make([]record, len(results))
	for i, r := range results {
		for _, b := range r.skipped {
			s.log.Debug("block not converted",
				slog.Int("line", i+1),
				slog.String("type", b.Type.Code()),
				slog.String("quantity", b.Type.Quantity().String()),
				slog.String("value", b.Value))
		}
		records[i] = r.record
	}
	return s.gsiOutput(records)
}

func zeissToKOO(s *session, in Input) []string {
	records := parsePoints(s, in.Lines, 1, false, func(n int, raw string) record {
		if isBlank(raw) {
			return record{}
		}
		line, err := zeiss.DecodeLine(raw)
		if err != nil {
			return record{diags: []error{atLine(n, err)}}
		}
		p := point{
			number:   line.Number,
			easting:  line.Value(zeiss.TypeY),
			northing: line.Value(zeiss.TypeX),
			height:   line.Value(zeiss.TypeZ),
		}
		if p.easting == "" && p.northing == "" && p.height == "" {
			return record{}
		}
		return record{points: []point{p}}
	})
	return s.kooOutput(records)
}

// zeissLine formats one output line once its line number is known.
type zeissLine func(lineNumber int) (string, []error)

// gsiToZeissLines plans the REC lines of one GSI record: instrument
// height, coordinates, target height, then the polar observation.
func gsiToZeissLines(d zeiss.Dialect, line gsi.Line, opts Options) ([]zeissLine, []error) {
	var (
		out  []zeissLine
		errs []error
	)
	number := line.PointNumber()
	code := line.Print(gsi.WIAttribute1)
	if code == "" {
		code = line.Print(gsi.WICode)
	}

	if line.Has(gsi.WIInstrumentHeight) {
		ih := line.Print(gsi.WIInstrumentHeight)
		out = append(out, func(n int) (string, []error) {
			return zeiss.FormatInstrumentOrTargetHeightLine(d, number, zeiss.TypeIh, ih, n)
		})
	}

	for _, wis := range [][3]int{
		{gsi.WIEasting, gsi.WINorthing, gsi.WIHeight},
		{gsi.WIStationEasting, gsi.WIStationNorthing, gsi.WIStationHeight},
	} {
		if !line.Has(wis[0]) && !line.Has(wis[1]) && !line.Has(wis[2]) {
			continue
		}
		e, n, h := line.Print(wis[0]), line.Print(wis[1]), line.Print(wis[2])
		out = append(out, func(lineNumber int) (string, []error) {
			return zeiss.FormatCoordinateLine(d, number, code, e, n, h, lineNumber)
		})
		break
	}

	hasObservation := line.Has(gsi.WIHorizontalAngle) || line.Has(gsi.WIVerticalAngle) || line.Has(gsi.WISlopeDistance)
	if !hasObservation {
		return out, errs
	}

	if line.Has(gsi.WITargetHeight) {
		th := line.Print(gsi.WITargetHeight)
		out = append(out, func(n int) (string, []error) {
			return zeiss.FormatInstrumentOrTargetHeightLine(d, number, zeiss.TypeTh, th, n)
		})
	}

	unit := angleUnit(line)
	hz := line.Print(gsi.WIHorizontalAngle)
	v := line.Print(gsi.WIVerticalAngle)
	if vb, ok := line.Get(gsi.WIVerticalAngle); ok && !opts.UseZenithDistance {
		zenith, err := vb.Value()
		if err != nil {
			errs = append(errs, err)
			v = ""
		} else {
			v = complement(zenith, unit)
		}
	}
	dist := line.Print(gsi.WISlopeDistance)
	out = append(out, func(n int) (string, []error) {
		return zeiss.FormatMeasurementLine(d, number, hz, v, dist, unit, opts.UseZenithDistance, n)
	})
	return out, errs
}

func gsiToZeiss(s *session, in Input) []string {
	d := s.opts.Dialect
	if d == zeiss.DialectUnknown {
		s.report(&zeiss.ErrUnknownDialect{Name: d.String()})
		return nil
	}

	decoded := s.decodeGSI(in.Lines)
	type planned struct {
		lines []zeissLine
		errs  []error
	}
	plans := mapLines(len(decoded.Lines), s.opts, func(i int) planned {
		lines, errs := gsiToZeissLines(d, decoded.Lines[i], s.opts)
		return planned{lines: lines, errs: errs}
	})

	var out []string
	for i, p := range plans {
		for _, err := range p.errs {
			s.report(atLine(i+1, err))
		}
		for _, format := range p.lines {
			line, errs := format(len(out) + 1)
			for _, err := range errs {
				s.report(atLine(i+1, err))
			}
			out = append(out, line)
		}
	}
	return out
}
