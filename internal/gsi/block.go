// Package gsi encodes and decodes Leica GSI8/GSI16 lines.
//
// A GSI line is a sequence of blocks separated by a blank. Each block is
// addressed by a two-digit word index (WI) that gives the payload its
// meaning:
//
//	WW IIII S dddddddd          GSI8:  2 + 4 + 1 + 8  = 15 characters
//	WW IIII S dddddddddddddddd  GSI16: 2 + 4 + 1 + 16 = 23 characters
//
// GSI16 lines carry a leading '*'. The last information character holds
// the unit: 0 mm, 6 1/10 mm, 8 1/100 mm for lengths, 2 gon and 3 decimal
// degrees for angles.
package gsi

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/field"
)

// Data widths of the two GSI flavours.
const (
	DataWidth8  = 8
	DataWidth16 = 16

	// RawWidth8 and RawWidth16 are the block widths on a line, including
	// the separating blank.
	RawWidth8  = 16
	RawWidth16 = 24
)

// Information descriptors written by the encoder.
const (
	infoNone       = "...."
	infoCoordinate = "..46"
	infoAngle      = "...2"
	infoDistance   = "..06"
)

// Block is one GSI word: word index, information, sign and data.
//
// Blocks are values: Decode and Encode build them, Render and
// ToPrintFormat read them.
type Block struct {
	WordIndex   int
	Information string
	Sign        string
	Data        string
}

// Decode splits a raw block substring into its components.
//
// The substring is trimmed first; a 15 character block is GSI8, a 23
// character block GSI16. Decode does not check the data width so that
// hand-edited files with short payloads still convert.
func Decode(raw string) (Block, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 7 {
		return Block{}, &ErrMalformedBlock{Raw: raw, Reason: "shorter than word index, information and sign"}
	}

	wi, err := strconv.Atoi(s[0:2])
	if err != nil {
		return Block{}, &ErrMalformedBlock{Raw: raw, Reason: "word index is not numeric"}
	}

	return Block{
		WordIndex:   wi,
		Information: s[2:6],
		Sign:        s[6:7],
		Data:        s[7:],
	}, nil
}

// EncodePointNumber builds the WI 11 block. The information field carries
// the line number; lineNumber <= 0 leaves it as "....".
func EncodePointNumber(number string, lineNumber int) Block {
	info := infoNone
	if lineNumber > 0 {
		info = field.FillWithZerosFromStart(strconv.Itoa(lineNumber), 4)
	}
	return Block{
		WordIndex:   WIPointNumber,
		Information: info,
		Sign:        "+",
		Data:        strings.TrimSpace(number),
	}
}

// Encode builds a block for wi from a human-readable value.
//
// Coordinates (81..89) are written in 1/10 mm, angles (21, 22, 24, 25) in
// 1/100000 gon and distances (31..33) in 1/10 mm, all rounded half-up. A
// value that rounds to zero is written as "0" with a '+' sign.
//
// A non-numeric value for a scaled word index still yields a block carrying
// the input text; the accompanying *ErrEncode is for the caller to log.
func Encode(wi int, value string, lineNumber int) (Block, error) {
	if wi == WIPointNumber {
		return EncodePointNumber(value, lineNumber), nil
	}

	v := strings.TrimSpace(value)
	sign := "+"
	switch {
	case strings.HasPrefix(v, "-"):
		sign = "-"
		v = v[1:]
	case strings.HasPrefix(v, "+"):
		v = v[1:]
	}

	block := Block{WordIndex: wi, Information: infoNone, Sign: sign, Data: v}

	places := 0
	switch {
	case wi == WIAttribute1:
		block.Information = infoCoordinate
		return block, nil
	case wi > 80 && wi < 90:
		block.Information = infoCoordinate
		places = 4
	case KindOf(wi) == KindAngle:
		block.Information = infoAngle
		places = 5
	case KindOf(wi) == KindDistance:
		block.Information = infoDistance
		places = 4
	default:
		return block, nil
	}

	digits, negative, err := field.ScaleDecimal(value, places)
	if err != nil {
		return block, &ErrEncode{WordIndex: wi, Value: value, Err: err}
	}
	block.Data = digits
	block.Sign = "+"
	if negative {
		block.Sign = "-"
	}
	return block, nil
}

// Render serializes the block with an 8 or 16 character data field. Short
// data is left-padded with zeros; long data keeps its rightmost characters.
func (b Block) Render(gsi16 bool) string {
	width := DataWidth8
	if gsi16 {
		width = DataWidth16
	}
	sign := b.Sign
	if sign == "" {
		sign = "+"
	}
	info := b.Information
	if len(info) < 4 {
		info = strings.Repeat(".", 4-len(info)) + info
	}
	info = info[len(info)-4:]
	return fmt.Sprintf("%02d%s%s%s", b.WordIndex, info, sign, field.FillWithZerosFromStart(b.Data, width))
}

// PointNumber returns the data of a WI 11 block without leading zeros.
func (b Block) PointNumber() string {
	return field.TrimLeadingZeros(strings.TrimSpace(b.Data))
}

// unit returns the last information character.
func (b Block) unit() byte {
	if b.Information == "" {
		return '.'
	}
	return b.Information[len(b.Information)-1]
}

// Degrees reports whether an angle block is in decimal degrees rather
// than gon.
func (b Block) Degrees() bool {
	return KindOf(b.WordIndex) == KindAngle && b.unit() == '3'
}

// UnsupportedMarker is the print rendering of a word index outside the table.
const UnsupportedMarker = "unsupported word index"

// ToPrintFormat renders the block for column output: decimal point
// inserted per unit, leading zeros removed and the sign in front.
func (b Block) ToPrintFormat() string {
	switch KindOf(b.WordIndex) {
	case KindPointNumber, KindCode, KindText, KindAttribute:
		return field.TrimLeadingZeros(strings.TrimSpace(b.Data))
	case KindAngle:
		places := 4
		if u := b.unit(); u == '2' || u == '3' {
			places = 5
		}
		return b.signed(field.InsertDecimalPoint(b.Data, places))
	case KindDistance, KindCoordinate:
		places := 3
		switch b.unit() {
		case '6':
			places = 4
		case '8':
			places = 5
		}
		return b.signed(field.InsertDecimalPoint(b.Data, places))
	default:
		return UnsupportedMarker
	}
}

// Value returns the numeric print rendering of the block, or an error when
// the data is not a number.
func (b Block) Value() (float64, error) {
	text := b.ToPrintFormat()
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, fmt.Errorf("word index %02d: %w", b.WordIndex, &field.ErrNotNumeric{Value: b.Data})
	}
	return f, nil
}

func (b Block) signed(s string) string {
	if b.Sign == "-" && strings.Trim(s, "0.") != "" {
		return "-" + s
	}
	return s
}
