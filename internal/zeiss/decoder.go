package zeiss

import (
	"strconv"
	"strings"
)

// Block is one decoded word block: type identifier, value and unit.
type Block struct {
	Type  TypeID
	Value string
	Unit  string
}

// Line is one decoded REC line.
type Line struct {
	Dialect    Dialect
	LineNumber int
	Ident      string
	Number     string
	Code       string
	Blocks     []Block
}

// Get returns the first block of type t.
func (l Line) Get(t TypeID) (Block, bool) {
	for _, b := range l.Blocks {
		if b.Type == t {
			return b, true
		}
	}
	return Block{}, false
}

// Value returns the value of the first block of type t, "" if absent.
func (l Line) Value(t TypeID) string {
	b, _ := l.Get(t)
	return b.Value
}

// DecodeLine decodes one REC line.
//
// The dialect comes from the leading literal. Word blocks are read only
// when their column span holds more than one non-blank character; REC500
// lines additionally need more than 50 or 66 characters for the second and
// third block. An unknown type identifier rejects the whole line.
func DecodeLine(raw string) (Line, error) {
	s := strings.TrimRight(raw, "\r\n")
	dialect := Classify(s)
	if dialect == DialectUnknown {
		return Line{}, &ErrUndecodedLine{Line: raw, Reason: "no dialect prefix"}
	}
	l := layouts[dialect]

	line := Line{
		Dialect: dialect,
		Ident:   strings.TrimSpace(l.ident.cut(s)),
		Number:  strings.TrimSpace(l.number.cut(s)),
		Code:    strings.TrimSpace(l.code.cut(s)),
	}
	if !l.lineNumber.empty() {
		if n, err := strconv.Atoi(strings.TrimSpace(l.lineNumber.cut(s))); err == nil {
			line.LineNumber = n
		}
	}

	for k := 0; k < maxBlocks; k++ {
		if limit := l.minLength[k]; limit > 0 && len(s) <= limit {
			break
		}
		region := l.block(k)
		if len(strings.TrimSpace(region.cut(s))) <= 1 {
			continue
		}

		rawType := l.blockType.shift(region.start).cut(s)
		t, err := LookupType(rawType)
		if err != nil {
			return Line{}, err
		}
		line.Blocks = append(line.Blocks, Block{
			Type:  t,
			Value: strings.TrimSpace(l.blockValue.shift(region.start).cut(s)),
			Unit:  strings.TrimSpace(l.blockUnit.shift(region.start).cut(s)),
		})
	}

	return line, nil
}
