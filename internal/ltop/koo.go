// Package ltop prepares lines of the LTOP adjustment formats: KOO
// coordinate files and MES measurement files.
//
// Both formats are fixed-column. Missing values are written as blanks of
// the field's width so the following columns stay in place.
package ltop

import (
	"fmt"
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/field"
)

// Header lines of the two file types.
const (
	KOOHeader = "$$PK"
	MESHeader = "$$ME"
)

// KOO column widths, in line order.
const (
	kooNumberWidth    = 10
	kooTypeWidth      = 4
	kooGap1Width      = 8
	kooToleranceWidth = 2
	kooGap2Width      = 8
	kooEastingWidth   = 12
	kooNorthingWidth  = 12
	kooGap3Width      = 4
	kooHeightWidth    = 10
	kooGap4Width      = 6
	kooGeoidWidth     = 8
	kooGap5Width      = 6
	kooEtaWidth       = 6
	kooXiWidth        = 6

	// KOOLineWidth is the length of every KOO data line.
	KOOLineWidth = kooNumberWidth + kooTypeWidth + kooGap1Width + kooToleranceWidth + kooGap2Width +
		kooEastingWidth + kooNorthingWidth + kooGap3Width + kooHeightWidth + kooGap4Width +
		kooGeoidWidth + kooGap5Width + kooEtaWidth + kooXiWidth
)

// Decimal places of the KOO numeric fields.
const (
	kooCoordinatePlaces = 4
	kooGeoidPlaces      = 4
	kooDeflectionPlaces = 1
)

// KOOPoint holds the raw text of one KOO record. Empty fields are written
// blank.
type KOOPoint struct {
	Number    string
	Type      string
	Tolerance string
	Easting   string
	Northing  string
	Height    string
	Geoid     string
	Eta       string
	Xi        string
}

// PrepareStringForKOO renders p as a KOO line.
//
// With eliminateZero set, a point whose northing, easting and height are
// all zero yields "" and the caller drops it. Numeric fields that cannot be
// parsed are written blank and reported.
func PrepareStringForKOO(p KOOPoint, eliminateZero bool) (string, []error) {
	var errs []error
	easting := numeric("easting", p.Easting, kooCoordinatePlaces, kooEastingWidth, &errs)
	northing := numeric("northing", p.Northing, kooCoordinatePlaces, kooNorthingWidth, &errs)
	height := numeric("height", p.Height, kooCoordinatePlaces, kooHeightWidth, &errs)

	if eliminateZero && isZeroCoordinate(northing+easting+height) {
		return "", errs
	}

	var sb strings.Builder
	sb.Grow(KOOLineWidth)
	sb.WriteString(field.FillWithSpacesFromEnd(strings.TrimSpace(p.Number), kooNumberWidth))
	sb.WriteString(field.FillWithSpacesFromEnd(strings.TrimSpace(p.Type), kooTypeWidth))
	sb.WriteString(field.Blank(kooGap1Width))
	sb.WriteString(text(p.Tolerance, kooToleranceWidth))
	sb.WriteString(field.Blank(kooGap2Width))
	sb.WriteString(easting)
	sb.WriteString(northing)
	sb.WriteString(field.Blank(kooGap3Width))
	sb.WriteString(height)
	sb.WriteString(field.Blank(kooGap4Width))
	sb.WriteString(numeric("geoid", p.Geoid, kooGeoidPlaces, kooGeoidWidth, &errs))
	sb.WriteString(field.Blank(kooGap5Width))
	sb.WriteString(numeric("eta", p.Eta, kooDeflectionPlaces, kooEtaWidth, &errs))
	sb.WriteString(numeric("xi", p.Xi, kooDeflectionPlaces, kooXiWidth, &errs))
	return sb.String(), errs
}

// isZeroCoordinate reports whether the concatenated coordinate columns,
// with every '.' read as '0', are nothing but zeros.
func isZeroCoordinate(columns string) bool {
	digits := strings.ReplaceAll(strings.ReplaceAll(columns, " ", ""), ".", "0")
	return digits != "" && strings.Trim(digits, "0") == ""
}

// numeric right-aligns raw with places decimals in a field of width,
// falling back to blanks when raw is empty or not a number.
func numeric(name, raw string, places, width int, errs *[]error) string {
	if strings.TrimSpace(raw) == "" {
		return field.Blank(width)
	}
	value, err := field.FillDecimalPlaces(raw, places)
	if err != nil {
		*errs = append(*errs, fmt.Errorf("%s: %w", name, err))
		return field.Blank(width)
	}
	if len(value) > width {
		*errs = append(*errs, fmt.Errorf("%s %q wider than %d columns", name, value, width))
		return field.Blank(width)
	}
	return field.FillWithSpacesFromStart(value, width)
}

func text(raw string, width int) string {
	value := strings.TrimSpace(raw)
	if len(value) > width {
		value = value[:width]
	}
	return field.FillWithSpacesFromStart(value, width)
}
