package gsi

import (
	"fmt"
	"sort"
	"strings"
)

// Line is one GSI record: its blocks in ascending word-index order.
type Line []Block

// Get returns the first block with word index wi.
func (l Line) Get(wi int) (Block, bool) {
	for _, b := range l {
		if b.WordIndex == wi {
			return b, true
		}
	}
	return Block{}, false
}

// Has reports whether the line carries wi.
func (l Line) Has(wi int) bool {
	_, ok := l.Get(wi)
	return ok
}

// PointNumber returns the trimmed WI 11 payload, "" if the line has none.
func (l Line) PointNumber() string {
	if b, ok := l.Get(WIPointNumber); ok {
		return b.PointNumber()
	}
	return ""
}

// Print returns the print rendering of wi, "" if the line has none.
func (l Line) Print(wi int) string {
	if b, ok := l.Get(wi); ok {
		return b.ToPrintFormat()
	}
	return ""
}

// Sort orders the blocks by word index, keeping the order of equal indices.
func (l Line) Sort() {
	sort.SliceStable(l, func(i, j int) bool {
		return l[i].WordIndex < l[j].WordIndex
	})
}

// Render serializes the blocks separated by a single blank, with the '*'
// marker for GSI16. No trailing blank is added.
func (l Line) Render(gsi16 bool) string {
	var sb strings.Builder
	if gsi16 {
		sb.WriteByte('*')
	}
	for i, b := range l {
		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(b.Render(gsi16))
	}
	return sb.String()
}

// LineBuilder accumulates encoded blocks for one output record.
//
// Empty values are skipped so that absent source fields leave no block
// behind. Encoding problems are kept as diagnostics; the block is still
// added with its best-effort data.
type LineBuilder struct {
	lineNumber  int
	line        Line
	diagnostics []error
}

// NewLineBuilder starts a record whose WI 11 information carries lineNumber.
func NewLineBuilder(lineNumber int) *LineBuilder {
	return &LineBuilder{lineNumber: lineNumber}
}

// Add encodes value under wi unless value is blank.
func (lb *LineBuilder) Add(wi int, value string) *LineBuilder {
	if strings.TrimSpace(value) == "" {
		return lb
	}
	b, err := Encode(wi, value, lb.lineNumber)
	if err != nil {
		lb.diagnostics = append(lb.diagnostics, fmt.Errorf("line %d: %w", lb.lineNumber, err))
	}
	lb.line = append(lb.line, b)
	return lb
}

// AddBlock appends an already built block.
func (lb *LineBuilder) AddBlock(b Block) *LineBuilder {
	lb.line = append(lb.line, b)
	return lb
}

// Line returns the record sorted by word index.
func (lb *LineBuilder) Line() Line {
	out := make(Line, len(lb.line))
	copy(out, lb.line)
	out.Sort()
	return out
}

// Diagnostics returns the soft failures seen while adding values.
func (lb *LineBuilder) Diagnostics() []error {
	return lb.diagnostics
}
