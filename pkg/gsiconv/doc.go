// Package gsiconv converts surveying coordinate and measurement files
// between Leica GSI8/GSI16, Zeiss REC (R4, R5, REC500, M5), Caplan K,
// LTOP KOO/MES, Cadwork node.dat, Toporail PTS/MEP and plain CSV/TXT.
//
// The package works on lines, not files. The caller reads the source file,
// splits it into lines without terminators and hands them over together
// with the options; the result is the list of output lines ready to be
// written.
//
// # Basic Usage
//
//	opts := gsiconv.DefaultOptions()
//	opts.GSI16 = true
//	opts.SortOutput = true
//
//	res, err := gsiconv.Convert("txt-gsi", lines, opts)
//	if err != nil {
//	    log.Fatal(err) // unknown converter name
//	}
//	for _, d := range res.Diagnostics {
//	    log.Println("skipped:", d)
//	}
//	os.WriteFile("out.gsi", []byte(strings.Join(res.Lines, "\r\n")), 0o644)
//
// # Converters
//
// Converters are named source-target, e.g. "gsi-koo" or "zeiss-gsi".
// Names lists all of them:
//
//	for _, name := range gsiconv.Names() {
//	    c, _ := gsiconv.NewConverter(name)
//	    fmt.Println(name, c.Description())
//	}
//
// # Soft Failures
//
// A converter never fails as a whole. A malformed line is skipped, a
// malformed value is written as blank or verbatim, and each of these is
// reported in Result.Diagnostics and logged to Options.Logger. An empty
// Result is a valid outcome; whether it counts as failure is up to the
// caller.
//
// # Parallel Processing
//
// With Options.Parallel set, the per-line parse and encode stage runs on
// Options.Workers goroutines. Sorting, duplicate elimination and headers
// are applied afterwards on a single goroutine, so the output is identical
// to the serial run:
//
//	opts.Parallel = true
//	opts.Progress = func(done, total int) {
//	    fmt.Printf("\r%d/%d", done, total)
//	}
package gsiconv
