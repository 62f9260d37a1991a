// Package field holds the fixed-width formatting helpers shared by every
// line codec: decimal-place normalization, zero and space filling, and the
// exact decimal scaling used when coordinates are written as integer units.
package field

import (
	"math"
	"strconv"
	"strings"
)

// FillDecimalPlaces re-renders raw with exactly places digits after the
// decimal point. The sign is preserved and no grouping separators are used.
//
// A non-numeric raw value yields "" together with an *ErrNotNumeric; callers
// treat that as an empty value and keep going.
func FillDecimalPlaces(raw string, places int) (string, error) {
	f, ok := parseFinite(raw)
	if !ok {
		return "", &ErrNotNumeric{Value: raw}
	}
	if places < 0 {
		places = 0
	}
	return strconv.FormatFloat(f, 'f', places, 64), nil
}

// FillWithZerosFromStart left-pads value with '0' up to width. A value that
// is already longer keeps its rightmost width characters.
func FillWithZerosFromStart(value string, width int) string {
	return fillFromStart(value, width, '0')
}

// FillWithSpacesFromStart right-aligns value in a field of width characters.
// Longer values are returned unchanged.
func FillWithSpacesFromStart(value string, width int) string {
	if len(value) >= width {
		return value
	}
	return strings.Repeat(" ", width-len(value)) + value
}

// FillWithSpacesFromEnd left-aligns value in a field of width characters,
// cutting it to width when it is longer.
func FillWithSpacesFromEnd(value string, width int) string {
	if len(value) >= width {
		return value[:width]
	}
	return value + strings.Repeat(" ", width-len(value))
}

// TrimLeadingZeros strips leading '0' characters, keeping a single "0" for an
// all-zero input.
func TrimLeadingZeros(value string) string {
	trimmed := strings.TrimLeft(value, "0")
	if trimmed == "" && value != "" {
		return "0"
	}
	return trimmed
}

// Blank returns width spaces. LTOP writes these for missing fields so the
// following columns stay aligned.
func Blank(width int) string {
	if width <= 0 {
		return ""
	}
	return strings.Repeat(" ", width)
}

// IsNumeric reports whether raw parses as a finite decimal number.
func IsNumeric(raw string) bool {
	_, ok := parseFinite(raw)
	return ok
}

// parseFinite parses raw, rejecting the NaN and infinity spellings that
// strconv accepts.
func parseFinite(raw string) (float64, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func fillFromStart(value string, width int, pad byte) string {
	if width <= 0 {
		return ""
	}
	if len(value) > width {
		return value[len(value)-width:]
	}
	return strings.Repeat(string(pad), width-len(value)) + value
}
