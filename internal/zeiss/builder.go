package zeiss

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/field"
)

// Decimal places written for each kind of value.
const (
	CoordinatePlaces  = 3
	MeasurementPlaces = 4
)

// Point identifications written by the builder.
const (
	IdentCoordinate  = "KD1"
	IdentMeasurement = "PI1"
	IdentHeight      = "KI1"
)

// Units written by the builder.
const (
	UnitMeter  = "m"
	UnitGon    = "gon"
	UnitDegree = "deg"
)

// FormatCoordinateLine writes a coordinate record. The height block is left
// out entirely when height is empty, so such lines are shorter.
//
// Values that are not numbers are written blank and reported.
func FormatCoordinateLine(d Dialect, number, code, easting, northing, height string, lineNumber int) (string, []error) {
	var errs []error
	blocks := []Block{
		{Type: TypeY, Value: normalize(easting, CoordinatePlaces, &errs), Unit: UnitMeter},
		{Type: TypeX, Value: normalize(northing, CoordinatePlaces, &errs), Unit: UnitMeter},
	}
	if strings.TrimSpace(height) != "" {
		blocks = append(blocks, Block{Type: TypeZ, Value: normalize(height, CoordinatePlaces, &errs), Unit: UnitMeter})
	}
	return build(d, lineNumber, IdentCoordinate, number, code, blocks, errs)
}

// FormatInstrumentOrTargetHeightLine writes a single "ih" or "th" block.
func FormatInstrumentOrTargetHeightLine(d Dialect, number string, t TypeID, value string, lineNumber int) (string, []error) {
	var errs []error
	if t != TypeIh && t != TypeTh {
		return "", []error{fmt.Errorf("height line: %w", &ErrUnknownTypeIdentifier{Code: t.Code()})}
	}
	blocks := []Block{{Type: t, Value: normalize(value, CoordinatePlaces, &errs), Unit: UnitMeter}}
	return build(d, lineNumber, IdentHeight, number, "", blocks, errs)
}

// FormatMeasurementLine writes a polar observation: horizontal direction,
// vertical angle and slope distance. The vertical angle is tagged V1
// (zenith angle) when zenith is set, V2 (from horizon) otherwise. Empty
// angle or distance values leave their block out.
//
// angleUnit labels both angles; an empty unit means UnitGon.
func FormatMeasurementLine(d Dialect, number, hz, v, distance, angleUnit string, zenith bool, lineNumber int) (string, []error) {
	var errs []error
	vType := TypeV2
	if zenith {
		vType = TypeV1
	}
	if angleUnit == "" {
		angleUnit = UnitGon
	}

	var blocks []Block
	for _, b := range []Block{
		{Type: TypeHz, Value: hz, Unit: angleUnit},
		{Type: vType, Value: v, Unit: angleUnit},
		{Type: TypeD, Value: distance, Unit: UnitMeter},
	} {
		if strings.TrimSpace(b.Value) == "" {
			continue
		}
		b.Value = normalize(b.Value, MeasurementPlaces, &errs)
		blocks = append(blocks, b)
	}
	return build(d, lineNumber, IdentMeasurement, number, "", blocks, errs)
}

func normalize(raw string, places int, errs *[]error) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	value, err := field.FillDecimalPlaces(raw, places)
	if err != nil {
		*errs = append(*errs, err)
	}
	return value
}

func build(d Dialect, lineNumber int, ident, number, code string, blocks []Block, errs []error) (string, []error) {
	l, ok := layouts[d]
	if !ok {
		return "", append(errs, &ErrUnknownDialect{Name: d.String()})
	}
	if len(blocks) > maxBlocks {
		blocks = blocks[:maxBlocks]
	}
	return l.render(lineNumber, ident, number, code, blocks), errs
}

// render lays the fields out in the dialect's columns. The line ends right
// after the last block written.
func (l layout) render(lineNumber int, ident, number, code string, blocks []Block) string {
	length := l.blockBase + len(blocks)*l.blockStride
	buf := []byte(strings.Repeat(" ", length))

	put(buf, span{0, len(l.prefix)}, l.prefix, false)
	put(buf, span{l.labelAt, l.labelAt + len(l.label)}, l.label, false)
	for _, at := range l.separators {
		if at < length {
			buf[at] = '|'
		}
	}

	if !l.lineNumber.empty() {
		n := strconv.Itoa(lineNumber)
		if len(n) > l.lineNumber.width() {
			n = n[len(n)-l.lineNumber.width():]
		}
		put(buf, l.lineNumber, n, true)
	}
	put(buf, l.ident, ident, false)
	put(buf, l.number, number, false)
	put(buf, l.code, code, false)

	for k, b := range blocks {
		region := l.block(k)
		put(buf, l.blockType.shift(region.start), b.Type.Code(), false)
		put(buf, l.blockValue.shift(region.start), b.Value, true)
		put(buf, l.blockUnit.shift(region.start), b.Unit, false)
		if l.blockSeparator >= 0 {
			buf[region.start+l.blockSeparator] = '|'
		}
	}
	return string(buf)
}

// put writes value into s, left- or right-aligned. Values wider than the
// span keep their leading characters.
func put(buf []byte, s span, value string, right bool) {
	if s.empty() || value == "" {
		return
	}
	if len(value) > s.width() {
		value = value[:s.width()]
	}
	start := s.start
	if right {
		start = s.end - len(value)
	}
	copy(buf[start:], value)
}
