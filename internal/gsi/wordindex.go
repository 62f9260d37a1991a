package gsi

import "sort"

// Kind classifies what a word index carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindPointNumber
	KindAngle
	KindDistance
	KindCode
	KindText
	KindAttribute
	KindCoordinate
)

func (k Kind) String() string {
	switch k {
	case KindPointNumber:
		return "point number"
	case KindAngle:
		return "angle"
	case KindDistance:
		return "distance"
	case KindCode:
		return "code"
	case KindText:
		return "text"
	case KindAttribute:
		return "attribute"
	case KindCoordinate:
		return "coordinate"
	default:
		return "unknown"
	}
}

// Word indices referenced by the converters.
const (
	WIPointNumber        = 11
	WIHorizontalAngle    = 21
	WIVerticalAngle      = 22
	WIHorizontalAngleRef = 24
	WIAngleDifference    = 25
	WISlopeDistance      = 31
	WIHorizontalDistance = 32
	WIHeightDifference   = 33
	WICode               = 41
	WIAttribute1         = 71
	WIAttribute9         = 79
	WIEasting            = 81
	WINorthing           = 82
	WIHeight             = 83
	WIStationEasting     = 84
	WIStationNorthing    = 85
	WIStationHeight      = 86
	WITargetHeight       = 87
	WIInstrumentHeight   = 88
)

// WordIndex describes one entry of the word-index table.
type WordIndex struct {
	Index int
	Kind  Kind
	Name  string
	// PrintWidth is the column width used by the human-readable rendering.
	PrintWidth int
}

// wordIndexTable is the closed set of word indices the codec understands.
var wordIndexTable = map[int]WordIndex{
	11: {11, KindPointNumber, "Point number", 16},
	21: {21, KindAngle, "Horizontal circle reading", 12},
	22: {22, KindAngle, "Vertical angle", 12},
	24: {24, KindAngle, "Horizontal angle reference", 12},
	25: {25, KindAngle, "Horizontal angle difference", 12},
	31: {31, KindDistance, "Slope distance", 12},
	32: {32, KindDistance, "Horizontal distance", 12},
	33: {33, KindDistance, "Height difference", 12},
	41: {41, KindCode, "Code", 8},
	42: {42, KindText, "Information 1", 16},
	43: {43, KindText, "Information 2", 16},
	44: {44, KindText, "Information 3", 16},
	45: {45, KindText, "Information 4", 16},
	46: {46, KindText, "Information 5", 16},
	47: {47, KindText, "Information 6", 16},
	48: {48, KindText, "Information 7", 16},
	49: {49, KindText, "Information 8", 16},
	71: {71, KindAttribute, "Remark 1", 16},
	72: {72, KindAttribute, "Remark 2", 16},
	73: {73, KindAttribute, "Remark 3", 16},
	74: {74, KindAttribute, "Remark 4", 16},
	75: {75, KindAttribute, "Remark 5", 16},
	76: {76, KindAttribute, "Remark 6", 16},
	77: {77, KindAttribute, "Remark 7", 16},
	78: {78, KindAttribute, "Remark 8", 16},
	79: {79, KindAttribute, "Remark 9", 16},
	81: {81, KindCoordinate, "Easting", 14},
	82: {82, KindCoordinate, "Northing", 14},
	83: {83, KindCoordinate, "Height", 12},
	84: {84, KindCoordinate, "Station easting", 14},
	85: {85, KindCoordinate, "Station northing", 14},
	86: {86, KindCoordinate, "Station height", 12},
	87: {87, KindCoordinate, "Target height", 10},
	88: {88, KindCoordinate, "Instrument height", 10},
}

// LookupWordIndex returns the table entry for wi.
func LookupWordIndex(wi int) (WordIndex, bool) {
	entry, ok := wordIndexTable[wi]
	return entry, ok
}

// KindOf returns the kind of wi, KindUnknown when the table has no entry.
func KindOf(wi int) Kind {
	return wordIndexTable[wi].Kind
}

// WordIndexSet collects the word indices seen while decoding a file.
type WordIndexSet map[int]struct{}

// Add records wi.
func (s WordIndexSet) Add(wi int) {
	s[wi] = struct{}{}
}

// Has reports whether wi was seen.
func (s WordIndexSet) Has(wi int) bool {
	_, ok := s[wi]
	return ok
}

// HasAny reports whether any of wis was seen.
func (s WordIndexSet) HasAny(wis ...int) bool {
	for _, wi := range wis {
		if s.Has(wi) {
			return true
		}
	}
	return false
}

// Sorted returns the set in ascending order.
func (s WordIndexSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for wi := range s {
		out = append(out, wi)
	}
	sort.Ints(out)
	return out
}
