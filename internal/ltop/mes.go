package ltop

import (
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/field"
)

// ObservationKind is the two letter tag of a MES line.
type ObservationKind string

const (
	KindStation   ObservationKind = "ST"
	KindDirection ObservationKind = "RI"
	KindZenith    ObservationKind = "ZD"
	KindDistance  ObservationKind = "DS"
)

// Places returns the decimals written for the kind's value.
func (k ObservationKind) Places() int {
	switch k {
	case KindDirection, KindZenith:
		return 5
	default:
		return 4
	}
}

const (
	mesTargetWidth       = 10
	mesGapWidth          = 8
	mesValueWidth        = 12
	mesTargetHeightWidth = 10
)

// Observation is one MES record. For a station, Target is the station
// number and Value the instrument height.
type Observation struct {
	Kind         ObservationKind
	Target       string
	Value        string
	TargetHeight string
}

// PrepareStringForMES renders o as a MES line. A value that is not a number
// is written blank and reported.
func PrepareStringForMES(o Observation) (string, []error) {
	var errs []error
	var sb strings.Builder
	sb.WriteString(string(o.Kind))
	sb.WriteString(field.FillWithSpacesFromEnd(strings.TrimSpace(o.Target), mesTargetWidth))
	sb.WriteString(field.Blank(mesGapWidth))
	sb.WriteString(numeric(string(o.Kind), o.Value, o.Kind.Places(), mesValueWidth, &errs))
	sb.WriteString(numeric("target height", o.TargetHeight, kooCoordinatePlaces, mesTargetHeightWidth, &errs))
	return strings.TrimRight(sb.String(), " "), errs
}
