package main

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// maxLineLength bounds a single input line.
const maxLineLength = 1 << 20

// lookupEncoding maps the --encoding flag to a text encoding. Survey
// instruments and their desktop tools mostly write Windows-1252.
func lookupEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.ReplaceAll(name, "_", "-")) {
	case "", "utf-8", "utf8":
		return unicode.UTF8, nil
	case "windows-1252", "cp1252", "ansi":
		return charmap.Windows1252, nil
	case "iso-8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1, nil
	case "iso-8859-15", "latin9":
		return charmap.ISO8859_15, nil
	case "cp850", "ibm850":
		return charmap.CodePage850, nil
	}
	return nil, fmt.Errorf("unknown encoding %q (want utf-8, windows-1252, iso-8859-1, iso-8859-15 or cp850)", name)
}

// readLines reads path and returns its lines without terminators.
func readLines(path string, enc encoding.Encoding) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(transform.NewReader(f, enc.NewDecoder()))
	sc.Buffer(make([]byte, 0, 64*1024), maxLineLength)
	for sc.Scan() {
		lines = append(lines, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return lines, nil
}

// splitCSV splits lines into records. The separator is ';' when the first
// non-blank line has one and ',' otherwise.
func splitCSV(lines []string) ([][]string, error) {
	sep := ','
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.ContainsRune(line, ';') {
			sep = ';'
		}
		break
	}

	records := make([][]string, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		r := csv.NewReader(strings.NewReader(line))
		r.Comma = sep
		r.FieldsPerRecord = -1
		r.LazyQuotes = true
		record, err := r.Read()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		records[i] = record
	}
	return records, nil
}

// writeLines writes lines to w, each followed by eol.
func writeLines(w io.Writer, lines []string, enc encoding.Encoding, eol string) error {
	tw := transform.NewWriter(w, enc.NewEncoder())
	bw := bufio.NewWriter(tw)
	for _, line := range lines {
		if _, err := bw.WriteString(line); err != nil {
			return err
		}
		if _, err := bw.WriteString(eol); err != nil {
			return err
		}
	}
	if err := bw.Flush(); err != nil {
		return err
	}
	return tw.Close()
}

// writeFile writes lines to path, replacing an existing file.
func writeFile(path string, lines []string, enc encoding.Encoding, eol string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	if err := writeLines(f, lines, enc, eol); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// targetExtensions are the file extensions written per target format.
var targetExtensions = map[string]string{
	"gsi":   ".gsi",
	"zeiss": ".rec",
	"koo":   ".koo",
	"mes":   ".mes",
	"txt":   ".txt",
	"csv":   ".csv",
}

// outputPath derives the output file of input for target. dir overrides
// the directory of input when set.
func outputPath(input, target, dir string) string {
	ext, ok := targetExtensions[target]
	if !ok {
		ext = "." + target
	}
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if dir == "" {
		dir = filepath.Dir(input)
	}
	out := filepath.Join(dir, base+ext)
	if filepath.Clean(out) == filepath.Clean(input) {
		out = filepath.Join(dir, base+".out"+ext)
	}
	return out
}
