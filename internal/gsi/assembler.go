package gsi

import (
	"sort"
	"strings"
)

// Assemble renders records into GSI lines. Records without blocks are
// dropped so no empty line is ever written.
func Assemble(gsi16 bool, lines []Line, lineEndingWithBlank bool) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		out = append(out, PrepareLineEnding(line.Render(gsi16), lineEndingWithBlank))
	}
	return out
}

// PrepareLineEnding appends the block separator when the configuration asks
// for lines ending with a blank and the line does not have one yet.
func PrepareLineEnding(line string, withBlank bool) string {
	if withBlank && !strings.HasSuffix(line, " ") {
		return line + " "
	}
	return line
}

// SortKey extracts the point-number sort key of a rendered line.
//
// The offsets assume WI 11 is the first block: line[8:24] for a GSI16 line
// (after the '*'), line[8:16] for GSI8.
func SortKey(line string) string {
	start, end := 8, 16
	if strings.HasPrefix(line, "*") {
		end = 24
	}
	if len(line) <= start {
		return ""
	}
	if end > len(line) {
		end = len(line)
	}
	return line[start:end]
}

// SortByPointNumber sorts rendered lines case-insensitively by SortKey.
// Lines with equal keys keep their relative order.
func SortByPointNumber(lines []string) []string {
	type keyed struct {
		key  string
		line string
	}
	decorated := make([]keyed, len(lines))
	for i, line := range lines {
		decorated[i] = keyed{key: strings.ToLower(SortKey(line)), line: line}
	}

	sort.SliceStable(decorated, func(i, j int) bool {
		return decorated[i].key < decorated[j].key
	})

	out := make([]string, len(decorated))
	for i, d := range decorated {
		out[i] = d.line
	}
	return out
}
