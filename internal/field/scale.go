package field

import (
	"math"
	"strconv"
	"strings"
)

// ScaleDecimal multiplies raw by 10^places and rounds half-up to an integer.
// It returns the magnitude as a digit string without leading zeros ("0" for
// zero) and whether the rounded value is negative.
//
// Plain decimal input is shifted digit-wise, so 1.00005 scaled by 4 places
// is 10001 and not the 10000 that float multiplication would give.
func ScaleDecimal(raw string, places int) (digits string, negative bool, err error) {
	value := strings.TrimSpace(raw)
	if !IsNumeric(value) {
		return "", false, &ErrNotNumeric{Value: raw}
	}

	if !isPlainDecimal(value) {
		return scaleFloat(value, places)
	}

	switch {
	case strings.HasPrefix(value, "-"):
		negative = true
		value = value[1:]
	case strings.HasPrefix(value, "+"):
		value = value[1:]
	}

	intPart, frac, _ := strings.Cut(value, ".")
	if len(frac) < places+1 {
		frac += strings.Repeat("0", places+1-len(frac))
	}
	kept := []byte(intPart + frac[:places])
	if len(kept) == 0 {
		kept = []byte("0")
	}
	if frac[places] >= '5' {
		kept = increment(kept)
	}

	digits = TrimLeadingZeros(string(kept))
	if digits == "0" {
		negative = false
	}
	return digits, negative, nil
}

// isPlainDecimal accepts an optional sign, digits and at most one '.'.
func isPlainDecimal(value string) bool {
	value = strings.TrimLeft(value, "+-")
	digits, dots := 0, 0
	for i := 0; i < len(value); i++ {
		switch c := value[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	return digits > 0 && dots <= 1
}

// increment adds one to a decimal digit string.
func increment(d []byte) []byte {
	for i := len(d) - 1; i >= 0; i-- {
		if d[i] < '9' {
			d[i]++
			return d
		}
		d[i] = '0'
	}
	return append([]byte{'1'}, d...)
}

func scaleFloat(value string, places int) (string, bool, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return "", false, &ErrNotNumeric{Value: value}
	}
	scaled := f * math.Pow10(places)
	rounded := math.Floor(math.Abs(scaled) + 0.5)
	digits := strconv.FormatFloat(rounded, 'f', 0, 64)
	if digits == "0" {
		return digits, false, nil
	}
	return digits, scaled < 0, nil
}

// InsertDecimalPoint places a '.' places characters from the end of a digit
// string, padding with zeros so at least one digit stays in front of it.
func InsertDecimalPoint(digits string, places int) string {
	digits = TrimLeadingZeros(digits)
	if places <= 0 {
		return digits
	}
	if len(digits) <= places {
		digits = strings.Repeat("0", places-len(digits)+1) + digits
	}
	cut := len(digits) - places
	return digits[:cut] + "." + digits[cut:]
}
