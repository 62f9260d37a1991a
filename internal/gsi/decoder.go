package gsi

import (
	"fmt"
	"strings"
)

// Decoded is the result of decoding a whole GSI file.
type Decoded struct {
	// Lines has one entry per input line. Blank or undecodable lines have
	// no blocks and must be skipped by callers.
	Lines []Line

	// GSI16 reports per input line whether it carried the '*' marker.
	GSI16 []bool

	// Found holds every word index observed across all lines.
	Found WordIndexSet

	// Diagnostics collects blocks that could not be decoded or carry an
	// unsupported word index.
	Diagnostics []error
}

// DecodeLine splits one raw GSI8 or GSI16 line into blocks.
//
// A leading '*' selects GSI16 and 24 character slices, otherwise the line
// is cut into 16 character slices. The returned blocks are sorted by word
// index regardless of their order on the line.
//
// Blocks whose word index is not in the word-index table are left out and
// reported as *ErrUnsupportedWordIndex.
func DecodeLine(raw string) (Line, bool, []error) {
	s := strings.TrimRight(raw, "\r\n")
	if strings.TrimSpace(s) == "" {
		return nil, false, nil
	}

	gsi16 := strings.HasPrefix(s, "*")
	width := RawWidth8
	if gsi16 {
		s = s[1:]
		width = RawWidth16
	}

	var (
		line Line
		errs []error
	)
	for start := 0; start < len(s); start += width {
		end := start + width
		if end > len(s) {
			end = len(s)
		}
		chunk := strings.TrimSpace(s[start:end])
		if chunk == "" {
			continue
		}
		b, err := Decode(chunk)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if KindOf(b.WordIndex) == KindUnknown {
			errs = append(errs, &ErrUnsupportedWordIndex{WordIndex: b.WordIndex})
			continue
		}
		line = append(line, b)
	}

	line.Sort()
	return line, gsi16, errs
}

// NewDecoded returns an empty result ready for Add.
func NewDecoded(capacity int) *Decoded {
	return &Decoded{
		Lines: make([]Line, 0, capacity),
		GSI16: make([]bool, 0, capacity),
		Found: WordIndexSet{},
	}
}

// Add appends the DecodeLine result of the next input line. Diagnostics are
// prefixed with the 1-based line number.
func (d *Decoded) Add(line Line, gsi16 bool, errs []error) {
	n := len(d.Lines) + 1
	for _, err := range errs {
		d.Diagnostics = append(d.Diagnostics, fmt.Errorf("line %d: %w", n, err))
	}
	for _, b := range line {
		d.Found.Add(b.WordIndex)
	}
	d.Lines = append(d.Lines, line)
	d.GSI16 = append(d.GSI16, gsi16)
}

// DecodeLines decodes every line of a file and records the word indices
// seen across it.
func DecodeLines(lines []string) *Decoded {
	d := NewDecoded(len(lines))
	for _, raw := range lines {
		d.Add(DecodeLine(raw))
	}
	return d
}

// NonEmpty returns the decoded lines that carry at least one block.
func (d *Decoded) NonEmpty() []Line {
	out := make([]Line, 0, len(d.Lines))
	for _, line := range d.Lines {
		if len(line) > 0 {
			out = append(out, line)
		}
	}
	return out
}
