package zeiss

import "strings"

// Quantity is the semantic class of a type identifier.
type Quantity int

const (
	QuantityUnknown Quantity = iota
	QuantityAngle
	QuantityDistance
	QuantityCoordinate
	QuantityHeight
	QuantityReading
	QuantityDate
	QuantityTime
	QuantityText
	QuantityConstant
	QuantityAtmosphere
	QuantityStatistic
	QuantityCounter
	QuantityArea
)

func (q Quantity) String() string {
	switch q {
	case QuantityAngle:
		return "angle"
	case QuantityDistance:
		return "distance"
	case QuantityCoordinate:
		return "coordinate"
	case QuantityHeight:
		return "height"
	case QuantityReading:
		return "reading"
	case QuantityDate:
		return "date"
	case QuantityTime:
		return "time"
	case QuantityText:
		return "text"
	case QuantityConstant:
		return "constant"
	case QuantityAtmosphere:
		return "atmosphere"
	case QuantityStatistic:
		return "statistic"
	case QuantityCounter:
		return "counter"
	case QuantityArea:
		return "area"
	default:
		return "unknown"
	}
}

// TypeID is a Zeiss type identifier, the two character mark in front of
// every value block.
type TypeID int

const (
	TypeUnknown TypeID = iota

	// angles
	TypeHz
	TypeHr
	TypeHa
	TypeHd
	TypeV1
	TypeV2
	TypeV3
	TypeV4
	TypeVa
	TypeOm
	TypeAz
	TypeRi
	TypeWi
	TypeDHz
	TypeDV

	// distances
	TypeD
	TypeE
	TypeHDiff
	TypeDb
	TypeDf
	TypeDz
	TypeDs
	TypeDm
	TypeDD
	TypeDE
	TypeDr
	TypeLg

	// coordinates
	TypeY
	TypeX
	TypeZ
	TypeYo
	TypeXo
	TypeZo
	TypeDY
	TypeDX
	TypeDZ
	TypeYs
	TypeXs
	TypeZs
	TypeYn
	TypeXn

	// heights
	TypeIh
	TypeTh
	TypeZb
	TypeZf
	TypeZi
	TypeHm
	TypeHs
	TypeHo
	TypeDh

	// levelling readings
	TypeRb
	TypeRf
	TypeRz
	TypeRm
	TypeSh
	TypeSd
	TypeLr

	// date and time
	TypeDA
	TypeTM
	TypeDT
	TypeYr

	// text
	TypeTI
	TypeTO
	TypeKD
	TypePI
	TypeRk
	TypeCo
	TypeNm

	// instrument constants and corrections
	TypePP
	TypeAC
	TypeSF
	TypeCc
	TypeCi
	TypeRk2
	TypeEr
	TypeTc
	TypeTx

	// atmosphere
	TypeT
	TypeP
	TypeHu

	// statistics
	TypeSx
	TypeSy
	TypeSz
	TypeSs
	TypeMh
	TypeMd
	TypeMa
	TypeN

	// counters
	TypeNr
	TypeLn
	TypeBl
	TypeSt
	TypeSe

	// areas and volumes
	TypeAr
	TypeVo
)

// typeInfo is one row of the type-identifier table.
type typeInfo struct {
	id       TypeID
	code     string
	quantity Quantity
	name     string
}

// typeTable lists every type identifier the decoder accepts. Codes are
// exactly two characters, space padded and case-sensitive.
var typeTable = []typeInfo{
	{TypeHz, "Hz", QuantityAngle, "horizontal direction"},
	{TypeHr, "Hr", QuantityAngle, "horizontal angle"},
	{TypeHa, "Ha", QuantityAngle, "mean horizontal direction"},
	{TypeHd, "Hd", QuantityAngle, "horizontal direction, second face"},
	{TypeV1, "V1", QuantityAngle, "zenith angle"},
	{TypeV2, "V2", QuantityAngle, "vertical angle from horizon"},
	{TypeV3, "V3", QuantityAngle, "vertical angle in percent"},
	{TypeV4, "V4", QuantityAngle, "nadir angle"},
	{TypeVa, "Va", QuantityAngle, "mean zenith angle"},
	{TypeOm, "Om", QuantityAngle, "orientation unknown"},
	{TypeAz, "Az", QuantityAngle, "azimuth"},
	{TypeRi, "Ri", QuantityAngle, "reduced direction"},
	{TypeWi, "Wi", QuantityAngle, "angle"},
	{TypeDHz, "dH", QuantityAngle, "horizontal direction difference"},
	{TypeDV, "dV", QuantityAngle, "vertical angle difference"},

	{TypeD, "D ", QuantityDistance, "slope distance"},
	{TypeE, "E ", QuantityDistance, "horizontal distance"},
	{TypeHDiff, "h ", QuantityDistance, "height difference"},
	{TypeDb, "Db", QuantityDistance, "backsight distance"},
	{TypeDf, "Df", QuantityDistance, "foresight distance"},
	{TypeDz, "Dz", QuantityDistance, "intermediate sight distance"},
	{TypeDs, "Ds", QuantityDistance, "sum of sight distances"},
	{TypeDm, "Dm", QuantityDistance, "mean distance"},
	{TypeDD, "dD", QuantityDistance, "slope distance difference"},
	{TypeDE, "dE", QuantityDistance, "horizontal distance difference"},
	{TypeDr, "Dr", QuantityDistance, "reduced distance"},
	{TypeLg, "Lg", QuantityDistance, "length"},

	{TypeY, "Y ", QuantityCoordinate, "easting"},
	{TypeX, "X ", QuantityCoordinate, "northing"},
	{TypeZ, "Z ", QuantityCoordinate, "height"},
	{TypeYo, "Yo", QuantityCoordinate, "station easting"},
	{TypeXo, "Xo", QuantityCoordinate, "station northing"},
	{TypeZo, "Zo", QuantityCoordinate, "station height"},
	{TypeDY, "dY", QuantityCoordinate, "easting difference"},
	{TypeDX, "dX", QuantityCoordinate, "northing difference"},
	{TypeDZ, "dZ", QuantityCoordinate, "height difference of coordinates"},
	{TypeYs, "Ys", QuantityCoordinate, "set-out easting"},
	{TypeXs, "Xs", QuantityCoordinate, "set-out northing"},
	{TypeZs, "Zs", QuantityCoordinate, "set-out height"},
	{TypeYn, "Yn", QuantityCoordinate, "new easting"},
	{TypeXn, "Xn", QuantityCoordinate, "new northing"},

	{TypeIh, "ih", QuantityHeight, "instrument height"},
	{TypeTh, "th", QuantityHeight, "target height"},
	{TypeZb, "Zb", QuantityHeight, "backsight height"},
	{TypeZf, "Zf", QuantityHeight, "foresight height"},
	{TypeZi, "Zi", QuantityHeight, "intermediate sight height"},
	{TypeHm, "Hm", QuantityHeight, "measured height"},
	{TypeHs, "Hs", QuantityHeight, "set-out height difference"},
	{TypeHo, "Ho", QuantityHeight, "start height"},
	{TypeDh, "dh", QuantityHeight, "levelling height difference"},

	{TypeRb, "Rb", QuantityReading, "backsight reading"},
	{TypeRf, "Rf", QuantityReading, "foresight reading"},
	{TypeRz, "Rz", QuantityReading, "intermediate sight reading"},
	{TypeRm, "Rm", QuantityReading, "mean reading"},
	{TypeSh, "Sh", QuantityReading, "staff height"},
	{TypeSd, "Sd", QuantityReading, "staff difference"},
	{TypeLr, "Lr", QuantityReading, "line reading"},

	{TypeDA, "DA", QuantityDate, "date"},
	{TypeTM, "TM", QuantityTime, "time"},
	{TypeDT, "Dt", QuantityDate, "date and time"},
	{TypeYr, "Yr", QuantityDate, "year"},

	{TypeTI, "TI", QuantityText, "text information"},
	{TypeTO, "TO", QuantityText, "text output"},
	{TypeKD, "KD", QuantityText, "code"},
	{TypePI, "PI", QuantityText, "point information"},
	{TypeRk, "Rk", QuantityText, "remark"},
	{TypeCo, "Co", QuantityText, "comment"},
	{TypeNm, "Nm", QuantityText, "name"},

	{TypePP, "PP", QuantityConstant, "atmospheric ppm"},
	{TypeAC, "AC", QuantityConstant, "addition constant"},
	{TypeSF, "SF", QuantityConstant, "scale factor"},
	{TypeCc, "cc", QuantityConstant, "collimation error"},
	{TypeCi, "ci", QuantityConstant, "vertical index error"},
	{TypeRk2, "k ", QuantityConstant, "refraction coefficient"},
	{TypeEr, "Er", QuantityConstant, "earth radius"},
	{TypeTc, "Tc", QuantityConstant, "tilt compensation"},
	{TypeTx, "Tx", QuantityConstant, "tilt axis error"},

	{TypeT, "T ", QuantityAtmosphere, "temperature"},
	{TypeP, "P ", QuantityAtmosphere, "pressure"},
	{TypeHu, "Hu", QuantityAtmosphere, "humidity"},

	{TypeSx, "sx", QuantityStatistic, "standard deviation northing"},
	{TypeSy, "sy", QuantityStatistic, "standard deviation easting"},
	{TypeSz, "sz", QuantityStatistic, "standard deviation height"},
	{TypeSs, "s ", QuantityStatistic, "standard deviation"},
	{TypeMh, "mh", QuantityStatistic, "mean height error"},
	{TypeMd, "md", QuantityStatistic, "mean distance error"},
	{TypeMa, "ma", QuantityStatistic, "mean angle error"},
	{TypeN, "n ", QuantityStatistic, "number of measurements"},

	{TypeNr, "Nr", QuantityCounter, "number"},
	{TypeLn, "Ln", QuantityCounter, "line number"},
	{TypeBl, "Bl", QuantityCounter, "block number"},
	{TypeSt, "St", QuantityCounter, "station number"},
	{TypeSe, "Se", QuantityCounter, "set number"},

	{TypeAr, "Ar", QuantityArea, "area"},
	{TypeVo, "Vo", QuantityArea, "volume"},
}

var (
	typesByCode = map[string]typeInfo{}
	typesByID   = map[TypeID]typeInfo{}
)

func init() {
	for _, info := range typeTable {
		typesByCode[info.code] = info
		typesByID[info.id] = info
	}
}

// normalizeCode pads a raw type mark cut short at the end of a line to two
// characters. Leading blanks are kept, so " D" does not match "D ".
func normalizeCode(raw string) string {
	code := strings.TrimRight(raw, " ")
	if len(code) == 1 {
		code += " "
	}
	return code
}

// LookupType returns the type identifier for a raw two character mark.
func LookupType(raw string) (TypeID, error) {
	code := normalizeCode(raw)
	info, ok := typesByCode[code]
	if !ok {
		return TypeUnknown, &ErrUnknownTypeIdentifier{Code: raw}
	}
	return info.id, nil
}

// Code returns the two character mark of t.
func (t TypeID) Code() string {
	return typesByID[t].code
}

// Quantity returns the semantic class of t.
func (t TypeID) Quantity() Quantity {
	return typesByID[t].quantity
}

func (t TypeID) String() string {
	if info, ok := typesByID[t]; ok {
		return info.name
	}
	return "unknown"
}
