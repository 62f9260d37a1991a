package convert

import (
	"encoding/csv"
	"sort"
	"strings"

	"github.com/beetlebugorg/gsiconv/internal/field"
	"github.com/beetlebugorg/gsiconv/internal/gsi"
)

// csvSeparator is the field separator of gsi-csv output.
const csvSeparator = ';'

type column struct {
	wi    int
	name  string
	width int
}

// printColumns returns one column per word index found in the file, in
// word-index order. The decoder drops unsupported word indices, so every
// found index has a table entry.
func printColumns(found gsi.WordIndexSet) []column {
	var cols []column
	for _, wi := range found.Sorted() {
		entry, ok := gsi.LookupWordIndex(wi)
		if !ok {
			continue
		}
		cols = append(cols, column{wi: wi, name: entry.Name, width: entry.PrintWidth})
	}
	return cols
}

func printRow(line gsi.Line, cols []column) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = line.Print(c.wi)
	}
	return row
}

// gsiToText writes fixed-width columns: the point number left-aligned,
// every other value right-aligned.
func gsiToText(s *session, in Input) []string {
	d := s.decodeGSI(in.Lines)
	cols := printColumns(d.Found)
	lines := d.NonEmpty()

	rows := mapLines(len(lines), s.opts, func(i int) string {
		row := printRow(lines[i], cols)
		var sb strings.Builder
		for k, c := range cols {
			if k > 0 {
				sb.WriteByte(' ')
			}
			if c.wi == gsi.WIPointNumber {
				sb.WriteString(field.FillWithSpacesFromEnd(row[k], c.width))
				continue
			}
			sb.WriteString(field.FillWithSpacesFromStart(row[k], c.width))
		}
		return strings.TrimRight(sb.String(), " ")
	})
	if s.opts.SortOutput {
		sortRowsByNumber(rows, lines)
	}
	return rows
}

// gsiToCSV writes a header row with the column names and one record per
// GSI line.
func gsiToCSV(s *session, in Input) []string {
	d := s.decodeGSI(in.Lines)
	cols := printColumns(d.Found)
	lines := d.NonEmpty()
	if len(lines) == 0 {
		return nil
	}

	header := make([]string, len(cols))
	for i, c := range cols {
		header[i] = c.name
	}
	rows := mapLines(len(lines), s.opts, func(i int) string {
		return csvLine(printRow(lines[i], cols))
	})
	if s.opts.SortOutput {
		sortRowsByNumber(rows, lines)
	}
	return append([]string{csvLine(header)}, rows...)
}

func csvLine(record []string) string {
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = csvSeparator
	// Writes to a strings.Builder cannot fail.
	_ = w.Write(record)
	w.Flush()
	return strings.TrimRight(sb.String(), "\r\n")
}

// sortRowsByNumber orders rendered rows by the point number of the GSI
// line they came from, case-insensitive and stable.
func sortRowsByNumber(rows []string, lines []gsi.Line) {
	order := make([]int, len(rows))
	keys := make([]string, len(rows))
	for i := range rows {
		order[i] = i
		keys[i] = strings.ToLower(lines[i].PointNumber())
	}
	sort.SliceStable(order, func(a, b int) bool {
		return keys[order[a]] < keys[order[b]]
	})
	sorted := make([]string, len(rows))
	for i, k := range order {
		sorted[i] = rows[k]
	}
	copy(rows, sorted)
}
