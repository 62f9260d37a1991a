package convert

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/gsiconv/internal/field"
	"github.com/beetlebugorg/gsiconv/internal/gsi"
	"github.com/beetlebugorg/gsiconv/internal/ltop"
	"github.com/beetlebugorg/gsiconv/internal/zeiss"
)

func convert(t *testing.T, name string, opts Options, lines ...string) Result {
	t.Helper()
	c, err := Lookup(name)
	require.NoError(t, err)
	return c.Convert(Input{Lines: lines}, opts)
}

func TestLookup(t *testing.T) {
	c, err := Lookup(" TXT-GSI ")
	require.NoError(t, err)
	assert.Equal(t, "txt-gsi", c.Name())
	assert.NotEmpty(t, c.Description())

	_, err = Lookup("dxf-gsi")
	var unknown *ErrUnknownConverter
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "dxf-gsi", unknown.Name)
}

func TestNames(t *testing.T) {
	names := Names()
	assert.Len(t, names, 17)
	assert.True(t, sort.StringsAreSorted(names))
	assert.Contains(t, names, "gsi-koo")
	assert.Contains(t, names, "toporail-gsi")
}

func TestTxtToGSIFieldCount(t *testing.T) {
	res := convert(t, "txt-gsi", DefaultOptions(),
		"1001 10.000",
		"1002 10.000 20.000",
		"1003 10.000 20.000 5.000",
		"1004 10.000 20.000 -9999",
		"",
		"1005 1 2 3 4",
	)
	assert.Equal(t, []string{
		"110001+00001001 83..46+00100000",
		"110002+00001002 81..46+00100000 82..46+00200000",
		"110003+00001003 81..46+00100000 82..46+00200000 83..46+00050000",
		"110004+00001004 81..46+00100000 82..46+00200000",
	}, res.Lines)

	require.Len(t, res.Diagnostics, 1)
	var shape *ErrLineShape
	require.True(t, errors.As(res.Diagnostics[0], &shape))
	assert.Equal(t, 6, shape.Line)
}

func TestTxtToGSIWithCode(t *testing.T) {
	opts := DefaultOptions()
	opts.SourceContainsCode = true
	opts.WriteCodeColumn = true
	res := convert(t, "txt-gsi", opts, "1001 FIX 10.0 20.0")
	assert.Equal(t, []string{"110001+00001001 71..46+00000FIX 81..46+00100000 82..46+00200000"}, res.Lines)

	opts.WriteCodeColumn = false
	res = convert(t, "txt-gsi", opts, "1001 FIX 10.0 20.0")
	assert.Equal(t, []string{"110001+00001001 81..46+00100000 82..46+00200000"}, res.Lines)
}

func TestTxtToGSINonNumeric(t *testing.T) {
	res := convert(t, "txt-gsi", DefaultOptions(), "1001 abc 20.0")
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "110001+00001001 81..46+00000abc 82..46+00200000", res.Lines[0])
	assert.Len(t, res.Diagnostics, 1)
}

func TestTxtToGSISortAndLineEnding(t *testing.T) {
	opts := DefaultOptions()
	opts.SortOutput = true
	opts.LineEndingWithBlank = true
	res := convert(t, "txt-gsi", opts, "B 1", "a 2", "A 3")
	assert.Equal(t, []string{
		"110002+0000000a 83..46+00020000 ",
		"110003+0000000A 83..46+00030000 ",
		"110001+0000000B 83..46+00010000 ",
	}, res.Lines)
}

func TestGSIToGSI(t *testing.T) {
	opts := DefaultOptions()
	opts.GSI16 = true
	res := convert(t, "gsi-gsi", opts, "11....+00000001 81..00+00012345 82..00+00067890", "  ")
	assert.Equal(t, []string{"*11....+0000000000000001 81..00+0000000000012345 82..00+0000000000067890"}, res.Lines)
	assert.Empty(t, res.Diagnostics)

	opts.GSI16 = false
	res = convert(t, "gsi-gsi", opts, res.Lines...)
	assert.Equal(t, []string{"11....+00000001 81..00+00012345 82..00+00067890"}, res.Lines)
}

func TestGSIUnsupportedWordIndex(t *testing.T) {
	line := "11....+00000001 81..46+00010000 99..46+00012345"

	res := convert(t, "gsi-gsi", DefaultOptions(), line)
	assert.Equal(t, []string{"11....+00000001 81..46+00010000"}, res.Lines)
	require.Len(t, res.Diagnostics, 1)
	var unsupported *gsi.ErrUnsupportedWordIndex
	require.True(t, errors.As(res.Diagnostics[0], &unsupported))
	assert.Equal(t, 99, unsupported.WordIndex)
	assert.Contains(t, res.Diagnostics[0].Error(), "line 1")

	res = convert(t, "gsi-txt", DefaultOptions(), line)
	require.Len(t, res.Lines, 1)
	assert.NotContains(t, res.Lines[0], gsi.UnsupportedMarker)
	require.Len(t, res.Diagnostics, 1)
	assert.True(t, errors.As(res.Diagnostics[0], &unsupported))
}

func TestGSIToGSISortIsStable(t *testing.T) {
	opts := DefaultOptions()
	opts.SortOutput = true
	res := convert(t, "gsi-gsi", opts,
		"110001+0000000B 83..46+00000001",
		"110002+0000000A 83..46+00000002",
		"110003+0000000A 83..46+00000003",
	)
	assert.Equal(t, []string{
		"110002+0000000A 83..46+00000002",
		"110003+0000000A 83..46+00000003",
		"110001+0000000B 83..46+00000001",
	}, res.Lines)
}

func TestCSVToGSI(t *testing.T) {
	c, err := Lookup("csv-gsi")
	require.NoError(t, err)

	res := c.Convert(Input{Fields: [][]string{
		{"1", "10.0", "20.0", ""},
		{" ", ""},
		{"2", "5.5"},
	}}, DefaultOptions())
	assert.Equal(t, []string{
		"110001+00000001 81..46+00100000 82..46+00200000",
		"110003+00000002 83..46+00055000",
	}, res.Lines)

	res = c.Convert(Input{Lines: []string{"1;10.0;20.0;1.0", "2,1.0"}}, DefaultOptions())
	assert.Equal(t, []string{
		"110001+00000001 81..46+00100000 82..46+00200000 83..46+00010000",
		"110002+00000002 83..46+00010000",
	}, res.Lines)
}

func TestBaselStadtToGSI(t *testing.T) {
	opts := DefaultOptions()
	opts.WriteCodeColumn = true

	res := convert(t, "csvbs-gsi", opts, "Nr;Code;E;N;H", "7;GP;10.0;20.0;3.0", "8;;1.0;2.0")
	assert.Equal(t, []string{
		"110002+00000007 71..46+000000GP 81..46+00100000 82..46+00200000 83..46+00030000",
		"110003+00000008 81..46+00010000 82..46+00020000",
	}, res.Lines)

	res = convert(t, "txtbs-gsi", opts, "Nr Code E N H", "7 GP 10.0 20.0 3.0", "9 x")
	assert.Equal(t, []string{
		"110002+00000007 71..46+000000GP 81..46+00100000 82..46+00200000 83..46+00030000",
	}, res.Lines)
	require.Len(t, res.Diagnostics, 1)
}

func TestCadworkToGSI(t *testing.T) {
	lines := []string{
		"cadwork node file",
		"version 1",
		"nr x y z",
		"1 2600.000000 1200.000000 0.000000",
		"2 2600.000000 1200.000000 0.500000",
	}

	res := convert(t, "cadwork-gsi", DefaultOptions(), lines...)
	assert.Equal(t, []string{
		"110004+00000001 81..46+26000000 82..46+12000000",
		"110005+00000002 81..46+26000000 82..46+12000000 83..46+00005000",
	}, res.Lines)

	opts := DefaultOptions()
	opts.UseZeroHeights = true
	res = convert(t, "cadwork-gsi", opts, lines...)
	assert.Equal(t, "110004+00000001 81..46+26000000 82..46+12000000 83..46+00000000", res.Lines[0])

	res = convert(t, "cadwork-gsi", DefaultOptions(), lines[:3]...)
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Diagnostics)
}

// caplanLine lays out a Caplan K record column by column.
func caplanLine(number, valency, easting, northing, height, tail string) string {
	return fmt.Sprintf("%-16s %1s %13s %13s %12s  %s", number, valency, easting, northing, height, tail)
}

func TestCaplanToGSI(t *testing.T) {
	opts := DefaultOptions()
	opts.WriteCodeColumn = true
	res := convert(t, "caplan-gsi", opts,
		caplanLine("1", "3", "10.0", "20.0", "3.0", "GP|a|b"),
		caplanLine("2", "1", "10.0", "20.0", "3.0", ""),
		caplanLine("3", "x", "10.0", "20.0", "", ""),
	)
	assert.Equal(t, []string{
		"110001+00000001 71..46+000000GP 72....+0000000a 73....+0000000b 81..46+00100000 82..46+00200000 83..46+00030000",
		"110002+00000002 83..46+00030000",
		"110003+00000003 81..46+00100000 82..46+00200000",
	}, res.Lines)
	require.Len(t, res.Diagnostics, 1)
	assert.Contains(t, res.Diagnostics[0].Error(), "line 3")
}

func TestZeissToGSI(t *testing.T) {
	coord, errs := zeiss.FormatCoordinateLine(zeiss.DialectM5, "1001", "", "2600000.123", "1200000.456", "450.1", 1)
	require.Empty(t, errs)
	meas, errs := zeiss.FormatMeasurementLine(zeiss.DialectR5, "2001", "123.4567", "1.2345", "45.1234", zeiss.UnitGon, false, 2)
	require.Empty(t, errs)

	opts := DefaultOptions()
	opts.GSI16 = true
	res := convert(t, "zeiss-gsi", opts, coord, meas, "", "garbage")
	assert.Equal(t, []string{
		"*110001+0000000000001001 81..46+0000026000001230 82..46+0000012000004560 83..46+0000000004501000",
		"*110002+0000000000002001 21...2+0000000012345670 22...2+0000000009876550 31..06+0000000000451234",
	}, res.Lines)

	require.Len(t, res.Diagnostics, 1)
	var undecoded *zeiss.ErrUndecodedLine
	assert.True(t, errors.As(res.Diagnostics[0], &undecoded))
}

func TestZeissToGSILogsSkippedBlocks(t *testing.T) {
	ih, errs := zeiss.FormatInstrumentOrTargetHeightLine(zeiss.DialectR4, "5", zeiss.TypeIh, "1.55", 0)
	require.Empty(t, errs)
	date := ih[:28] + "DA" + ih[30:]

	var buf bytes.Buffer
	opts := DefaultOptions()
	opts.Logger = slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	res := convert(t, "zeiss-gsi", opts, date)
	assert.Empty(t, res.Lines)
	assert.Empty(t, res.Diagnostics)
	assert.Contains(t, buf.String(), "block not converted")
	assert.Contains(t, buf.String(), "type=DA")
	assert.Contains(t, buf.String(), "converter=zeiss-gsi")
}

func TestGSIToZeiss(t *testing.T) {
	opts := DefaultOptions()
	res := convert(t, "gsi-zeiss", opts,
		"110001+00000001 81..00+00012345 82..00+00067890",
		"110002+00000002 21...2+12345678 22...2+09876543 31..06+00451234 87..46+00016000",
	)

	coord, _ := zeiss.FormatCoordinateLine(zeiss.DialectM5, "1", "", "12.345", "67.890", "", 1)
	th, _ := zeiss.FormatInstrumentOrTargetHeightLine(zeiss.DialectM5, "2", zeiss.TypeTh, "1.6000", 2)
	meas, _ := zeiss.FormatMeasurementLine(zeiss.DialectM5, "2", "123.45678", "1.23457", "45.1234", zeiss.UnitGon, false, 3)
	assert.Equal(t, []string{coord, th, meas}, res.Lines)
	assert.Empty(t, res.Diagnostics)

	decoded, err := zeiss.DecodeLine(res.Lines[2])
	require.NoError(t, err)
	assert.Equal(t, "1.2346", decoded.Value(zeiss.TypeV2))

	opts.UseZenithDistance = true
	res = convert(t, "gsi-zeiss", opts, "110002+00000002 22...2+09876543")
	decoded, err = zeiss.DecodeLine(res.Lines[0])
	require.NoError(t, err)
	assert.Equal(t, "98.7654", decoded.Value(zeiss.TypeV1))

	opts.Dialect = zeiss.DialectUnknown
	res = convert(t, "gsi-zeiss", opts, "110001+00000001 81..00+00012345")
	assert.Empty(t, res.Lines)
	require.Len(t, res.Diagnostics, 1)
}

func TestGSIToZeissDegrees(t *testing.T) {
	res := convert(t, "gsi-zeiss", DefaultOptions(), "110001+00000001 21...3+09000000 22...3+08000000")
	require.Len(t, res.Lines, 1)
	assert.Empty(t, res.Diagnostics)

	decoded, err := zeiss.DecodeLine(res.Lines[0])
	require.NoError(t, err)
	require.Len(t, decoded.Blocks, 2)
	assert.Equal(t, zeiss.Block{Type: zeiss.TypeHz, Value: "90.0000", Unit: zeiss.UnitDegree}, decoded.Blocks[0])
	assert.Equal(t, zeiss.Block{Type: zeiss.TypeV2, Value: "10.0000", Unit: zeiss.UnitDegree}, decoded.Blocks[1])

	// Gon readings keep the 100 gon complement.
	res = convert(t, "gsi-zeiss", DefaultOptions(), "110001+00000001 21...2+09000000 22...2+08000000")
	require.Len(t, res.Lines, 1)
	decoded, err = zeiss.DecodeLine(res.Lines[0])
	require.NoError(t, err)
	assert.Equal(t, zeiss.Block{Type: zeiss.TypeV2, Value: "20.0000", Unit: zeiss.UnitGon}, decoded.Blocks[1])
}

func TestTxtToKOO(t *testing.T) {
	opts := DefaultOptions()
	res := convert(t, "txt-koo", opts, "P2 10.0 20.0 3.0", "P1 1.0 2.0")

	p2, _ := ltop.PrepareStringForKOO(ltop.KOOPoint{Number: "P2", Easting: "10.0", Northing: "20.0", Height: "3.0"}, false)
	p1, _ := ltop.PrepareStringForKOO(ltop.KOOPoint{Number: "P1", Easting: "1.0", Northing: "2.0"}, false)
	assert.Equal(t, []string{ltop.KOOHeader, p2, p1}, res.Lines)

	opts.SortOutput = true
	res = convert(t, "txt-koo", opts, "P2 10.0 20.0 3.0", "P1 1.0 2.0")
	assert.Equal(t, []string{ltop.KOOHeader, p1, p2}, res.Lines)
}

func TestTxtToKOODuplicatesAndZeros(t *testing.T) {
	opts := DefaultOptions()
	opts.EliminateDuplicates = true
	opts.EliminateZeroCoordinates = true

	res := convert(t, "txt-koo", opts,
		"P1 0 0 0.001",
		"p1 0 0 0.021",
		"P1 0 0 0.051",
		"Z 0 0 0",
	)
	require.Len(t, res.Lines, 3)
	assert.Equal(t, ltop.KOOHeader, res.Lines[0])
	assert.Contains(t, res.Lines[1], "0.0010")
	assert.Contains(t, res.Lines[2], "0.0510")

	opts.DuplicateDistance = "0.1"
	res = convert(t, "txt-koo", opts, "P1 0 0 0.001", "P1 0 0 0.051")
	assert.Len(t, res.Lines, 2)
}

func TestKOOEmptyHasNoHeader(t *testing.T) {
	opts := DefaultOptions()
	opts.EliminateZeroCoordinates = true
	res := convert(t, "txt-koo", opts, "Z 0 0 0", "")
	assert.Empty(t, res.Lines)
}

func TestTxtToKOONaNAndInfinity(t *testing.T) {
	res := convert(t, "txt-koo", DefaultOptions(), "P1 NaN Inf 1.0")

	require.Len(t, res.Lines, 2)
	line := res.Lines[1]
	assert.NotContains(t, line, "NaN")
	assert.NotContains(t, line, "Inf")
	assert.Equal(t, strings.Repeat(" ", 24), line[32:56])
	assert.Contains(t, line, "1.0000")

	require.Len(t, res.Diagnostics, 2)
	for _, d := range res.Diagnostics {
		var nn *field.ErrNotNumeric
		assert.True(t, errors.As(d, &nn), "diagnostic %v", d)
	}
}

func TestGSIToKOO(t *testing.T) {
	res := convert(t, "gsi-koo", DefaultOptions(),
		"110001+000000P1 81..46+00100000 82..46+00200000 83..46+00030000",
		"110002+000000P2 21...2+10000000",
	)
	want, _ := ltop.PrepareStringForKOO(ltop.KOOPoint{Number: "P1", Easting: "10", Northing: "20", Height: "3"}, false)
	assert.Equal(t, []string{ltop.KOOHeader, want}, res.Lines)

	res = convert(t, "gsi-koo", DefaultOptions(), "110001+000000S1 84..46+00100000 85..46+00200000")
	want, _ = ltop.PrepareStringForKOO(ltop.KOOPoint{Number: "S1", Easting: "10", Northing: "20"}, false)
	assert.Equal(t, []string{ltop.KOOHeader, want}, res.Lines)

	res = convert(t, "gsi-koo", DefaultOptions(), "110002+000000P2 21...2+10000000")
	assert.Empty(t, res.Lines)
}

func TestZeissAndCaplanToKOO(t *testing.T) {
	coord, _ := zeiss.FormatCoordinateLine(zeiss.DialectR4, "9", "", "10", "20", "3", 0)
	res := convert(t, "zeiss-koo", DefaultOptions(), coord)
	want, _ := ltop.PrepareStringForKOO(ltop.KOOPoint{Number: "9", Easting: "10", Northing: "20", Height: "3"}, false)
	assert.Equal(t, []string{ltop.KOOHeader, want}, res.Lines)

	res = convert(t, "caplan-koo", DefaultOptions(), caplanLine("9", "2", "10", "20", "3", ""))
	want, _ = ltop.PrepareStringForKOO(ltop.KOOPoint{Number: "9", Easting: "10", Northing: "20"}, false)
	assert.Equal(t, []string{ltop.KOOHeader, want}, res.Lines)
}

func TestGSIToMES(t *testing.T) {
	res := convert(t, "gsi-mes", DefaultOptions(),
		"110001+000000S1 88..46+00015500",
		"110002+000000P1 21...2+12345678 22...2+09876543 31..06+00451234 87..46+00016000",
	)

	line := func(o ltop.Observation) string {
		s, errs := ltop.PrepareStringForMES(o)
		require.Empty(t, errs)
		return s
	}
	assert.Equal(t, []string{
		ltop.MESHeader,
		line(ltop.Observation{Kind: ltop.KindStation, Target: "S1", Value: "1.5500"}),
		line(ltop.Observation{Kind: ltop.KindDirection, Target: "P1", Value: "123.45678", TargetHeight: "1.6000"}),
		line(ltop.Observation{Kind: ltop.KindZenith, Target: "P1", Value: "98.76543", TargetHeight: "1.6000"}),
		line(ltop.Observation{Kind: ltop.KindDistance, Target: "P1", Value: "45.1234", TargetHeight: "1.6000"}),
	}, res.Lines)
	assert.True(t, strings.HasPrefix(res.Lines[2], "RIP1"))

	res = convert(t, "gsi-mes", DefaultOptions(), "110001+000000P1 81..46+00100000")
	assert.Empty(t, res.Lines)
}

func TestGSIToPrint(t *testing.T) {
	lines := []string{
		"110001+0000000B 81..00+00012345 82..00+00067890",
		"110002+0000000A 81..00+00000001",
	}
	opts := DefaultOptions()
	opts.SortOutput = true

	res := convert(t, "gsi-csv", opts, lines...)
	assert.Equal(t, []string{
		"Point number;Easting;Northing",
		"A;0.001;",
		"B;12.345;67.890",
	}, res.Lines)

	res = convert(t, "gsi-txt", opts, lines...)
	require.Len(t, res.Lines, 2)
	assert.Equal(t, "A"+strings.Repeat(" ", 15)+" "+strings.Repeat(" ", 9)+"0.001", res.Lines[0])
	assert.Equal(t, "B"+strings.Repeat(" ", 15)+" "+strings.Repeat(" ", 8)+"12.345"+" "+strings.Repeat(" ", 8)+"67.890", res.Lines[1])
}

func TestToporailPoints(t *testing.T) {
	res := convert(t, "toporail-gsi", DefaultOptions(), "@PTS", "P1;10.0;20.0;5.0", "@END", "P2;1")
	assert.Equal(t, []string{"110002+000000P1 81..46+00100000 82..46+00200000 83..46+00050000"}, res.Lines)
	require.Len(t, res.Diagnostics, 1)
}

func TestToporailMeasurements(t *testing.T) {
	res := convert(t, "toporail-gsi", DefaultOptions(),
		"@MEP",
		"@STA;S1;1.55",
		"S1;P1;100;100;10",
		"S2;P2;50;100;10;1.6",
	)
	assert.Equal(t, []string{
		"110002+000000S1 88..46+00015500",
		"110003+000000P1 21...2+10000000 22...2+10000000 31..06+00100000",
		"110004+000000S2",
		"110004+000000P2 21...2+05000000 22...2+10000000 31..06+00100000 87..46+00016000",
	}, res.Lines)
	assert.Empty(t, res.Diagnostics)
}

func TestToporailMissingHeader(t *testing.T) {
	res := convert(t, "toporail-gsi", DefaultOptions(), "", "P1;10.0;20.0;5.0")
	assert.Empty(t, res.Lines)
	require.Len(t, res.Diagnostics, 1)
	var missing *ErrMissingHeader
	assert.True(t, errors.As(res.Diagnostics[0], &missing))
}

func TestParallelMatchesSerial(t *testing.T) {
	var lines []string
	for i := 0; i < 250; i++ {
		lines = append(lines, fmt.Sprintf("P%03d %d.%03d %d.5 %d", 250-i, i, i, i*2, i%7))
	}
	lines = append(lines, "broken line with too many tokens here")

	serialOpts := DefaultOptions()
	serialOpts.SortOutput = true
	parallelOpts := serialOpts
	parallelOpts.Parallel = true
	parallelOpts.Workers = 8

	var calls int
	parallelOpts.Progress = func(done, total int) {
		calls++
		assert.Equal(t, len(lines), total)
	}

	for _, name := range []string{"txt-gsi", "txt-koo"} {
		calls = 0
		serial := convert(t, name, serialOpts, lines...)
		parallel := convert(t, name, parallelOpts, lines...)
		assert.Equal(t, serial.Lines, parallel.Lines, name)
		assert.Equal(t, len(serial.Diagnostics), len(parallel.Diagnostics), name)
		assert.Equal(t, len(lines), calls, name)
	}
}

func TestMapLinesKeepsOrder(t *testing.T) {
	opts := Options{Parallel: true, Workers: 3}
	got := mapLines(100, opts, func(i int) int { return i * i })
	for i, v := range got {
		assert.Equal(t, i*i, v)
	}
	assert.Empty(t, mapLines(0, opts, func(i int) int { return i }))
}

func BenchmarkTxtToGSI(b *testing.B) {
	lines := make([]string, 5000)
	for i := range lines {
		lines[i] = fmt.Sprintf("%d 2600000.%03d 1200000.%03d 450.%d", i, i%1000, (i*7)%1000, i%10)
	}
	c, _ := Lookup("txt-gsi")
	opts := DefaultOptions()
	opts.Parallel = true
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		c.Convert(Input{Lines: lines}, opts)
	}
}
