// Package caplan reads Caplan K coordinate files.
//
// A Caplan K line is fixed-column (1-based, inclusive):
//
//	 1-16  point number
//	   18  valency
//	20-32  easting
//	34-46  northing
//	48-59  height
//	  62-  code|attribute|attribute...
package caplan

import (
	"fmt"
	"strings"
)

// Valency tells which coordinates of a Caplan point are valid.
type Valency int

const (
	ValencyInferred Valency = 0
	ValencyHeight   Valency = 1
	ValencyPosition Valency = 2
	ValencyFull     Valency = 3
)

func (v Valency) String() string {
	switch v {
	case ValencyHeight:
		return "height"
	case ValencyPosition:
		return "position"
	case ValencyFull:
		return "position and height"
	default:
		return "inferred"
	}
}

// Column ranges, 0-based and half-open.
var (
	colNumber   = [2]int{0, 16}
	colValency  = [2]int{17, 18}
	colEasting  = [2]int{19, 32}
	colNorthing = [2]int{33, 46}
	colHeight   = [2]int{47, 59}
	colCode     = 61
)

// ErrInvalidValency indicates a valency column that is neither blank nor 1-3.
type ErrInvalidValency struct {
	Raw string
}

func (e *ErrInvalidValency) Error() string {
	return fmt.Sprintf("invalid Caplan valency %q", e.Raw)
}

// Block is one Caplan K record.
type Block struct {
	Number     string
	Valency    Valency
	Easting    string
	Northing   string
	Height     string
	Code       string
	Attributes []string
}

// Parse splits a Caplan K line into its columns.
//
// A valency that cannot be read is reported, and the block is still
// returned with the valency inferred from the columns that hold values.
func Parse(line string) (Block, error) {
	b := Block{
		Number:   cut(line, colNumber),
		Easting:  cut(line, colEasting),
		Northing: cut(line, colNorthing),
		Height:   cut(line, colHeight),
	}

	if len(line) > colCode {
		parts := strings.Split(line[colCode:], "|")
		b.Code = strings.TrimSpace(parts[0])
		for _, attr := range parts[1:] {
			if attr = strings.TrimSpace(attr); attr != "" {
				b.Attributes = append(b.Attributes, attr)
			}
		}
	}

	var err error
	switch raw := cut(line, colValency); raw {
	case "":
		b.Valency = ValencyInferred
	case "1":
		b.Valency = ValencyHeight
	case "2":
		b.Valency = ValencyPosition
	case "3":
		b.Valency = ValencyFull
	default:
		err = &ErrInvalidValency{Raw: raw}
	}
	if b.Valency == ValencyInferred {
		b.Valency = b.inferValency()
	}
	return b, err
}

func (b Block) inferValency() Valency {
	position := b.Easting != "" && b.Northing != ""
	height := b.Height != ""
	switch {
	case position && height:
		return ValencyFull
	case position:
		return ValencyPosition
	case height:
		return ValencyHeight
	}
	return ValencyInferred
}

// HasPosition reports whether easting and northing are valid.
func (b Block) HasPosition() bool {
	return b.Valency == ValencyPosition || b.Valency == ValencyFull
}

// HasHeight reports whether the height is valid.
func (b Block) HasHeight() bool {
	return b.Valency == ValencyHeight || b.Valency == ValencyFull
}

func cut(line string, col [2]int) string {
	if col[0] >= len(line) {
		return ""
	}
	end := col[1]
	if end > len(line) {
		end = len(line)
	}
	return strings.TrimSpace(line[col[0]:end])
}
