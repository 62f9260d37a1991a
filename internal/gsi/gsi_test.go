package gsi

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetlebugorg/gsiconv/internal/field"
)

func TestEncodeCoordinate(t *testing.T) {
	b, err := Encode(WIEasting, "1.2345", 0)
	require.NoError(t, err)
	assert.Equal(t, Block{WordIndex: 81, Information: "..46", Sign: "+", Data: "12345"}, b)
	assert.Equal(t, "81..46+00012345", b.Render(false))
	assert.Equal(t, "81..46+0000000000012345", b.Render(true))
	assert.Equal(t, "1.2345", b.ToPrintFormat())
}

func TestEncodeNegativeAndZero(t *testing.T) {
	b, err := Encode(WINorthing, "-5.5", 0)
	require.NoError(t, err)
	assert.Equal(t, "-", b.Sign)
	assert.Equal(t, "55000", b.Data)
	assert.Equal(t, "-5.5000", b.ToPrintFormat())

	zero, err := Encode(WIHeight, "-0.0000", 0)
	require.NoError(t, err)
	assert.Equal(t, "0", zero.Data)
	assert.Equal(t, "+", zero.Sign)
	assert.Equal(t, "83..46+00000000", zero.Render(false))
}

func TestEncodeNonNumericFallsBack(t *testing.T) {
	b, err := Encode(WIEasting, "abc", 3)
	require.Error(t, err)

	var encErr *ErrEncode
	require.True(t, errors.As(err, &encErr))
	assert.Equal(t, 81, encErr.WordIndex)

	var nn *field.ErrNotNumeric
	assert.True(t, errors.As(err, &nn))

	// The block is still produced from the input text.
	assert.Equal(t, "abc", b.Data)
	assert.Equal(t, "..46", b.Information)
}

func TestEncodePointNumber(t *testing.T) {
	b := EncodePointNumber(" 1 ", 1)
	assert.Equal(t, "110001+00000001", b.Render(false))
	assert.Equal(t, "110001+0000000000000001", b.Render(true))

	noLine := EncodePointNumber("A17", 0)
	assert.Equal(t, "11....+00000A17", noLine.Render(false))

	// The information field keeps the rightmost four digits.
	assert.Equal(t, "2345", EncodePointNumber("1", 12345).Information)
}

func TestEncodeAttributeAndPlain(t *testing.T) {
	attr, err := Encode(WIAttribute1, "FIX", 0)
	require.NoError(t, err)
	assert.Equal(t, "71..46+00000FIX", attr.Render(false))

	code, err := Encode(WICode, "-12", 0)
	require.NoError(t, err)
	assert.Equal(t, "41....-00000012", code.Render(false))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		wi    int
		value string
	}{
		{11, "1001"},
		{11, "1"},
		{21, "123.45678"},
		{31, "12.3456"},
		{41, "ABC"},
		{81, "260.1234"},
	}

	for _, tt := range tests {
		encoded, err := Encode(tt.wi, tt.value, 7)
		require.NoError(t, err)

		for _, gsi16 := range []bool{false, true} {
			decoded, err := Decode(encoded.Render(gsi16))
			require.NoError(t, err)
			assert.Equal(t, encoded.WordIndex, decoded.WordIndex, "wi=%d", tt.wi)
			assert.Equal(t, encoded.Information, decoded.Information, "wi=%d", tt.wi)
			assert.Equal(t, encoded.Sign, decoded.Sign, "wi=%d", tt.wi)
			assert.Equal(t, encoded.ToPrintFormat(), decoded.ToPrintFormat(), "wi=%d gsi16=%v", tt.wi, gsi16)
		}
	}

	decoded, err := Decode(EncodePointNumber("1", 0).Render(true))
	require.NoError(t, err)
	assert.Equal(t, "1", decoded.PointNumber())
}

func TestRenderWidth(t *testing.T) {
	for _, wi := range []int{11, 21, 31, 41, 71, 81, 88} {
		b, _ := Encode(wi, "12.5", 1)
		assert.Len(t, b.Render(false), 15, "wi=%d", wi)
		assert.Len(t, b.Render(true), 23, "wi=%d", wi)
	}

	// A 16 character payload keeps its rightmost 8 characters in GSI8.
	long := Block{WordIndex: 81, Information: "..46", Sign: "+", Data: "1234567890123456"}
	assert.Equal(t, "81..46+90123456", long.Render(false))
}

func TestDecodeMalformed(t *testing.T) {
	_, err := Decode("81..4")
	var mb *ErrMalformedBlock
	require.True(t, errors.As(err, &mb))

	_, err = Decode("X1..46+00012345")
	require.True(t, errors.As(err, &mb))
}

func TestToPrintFormat(t *testing.T) {
	tests := []struct {
		block Block
		want  string
	}{
		{Block{11, "....", "+", "00001001"}, "1001"},
		{Block{21, "...2", "+", "12345678"}, "123.45678"},
		{Block{22, "...4", "+", "00900000"}, "90.0000"},
		{Block{31, "..00", "+", "00012345"}, "12.345"},
		{Block{32, "..06", "+", "00012345"}, "1.2345"},
		{Block{33, "..08", "-", "00012345"}, "-0.12345"},
		{Block{81, "..46", "+", "00012345"}, "1.2345"},
		{Block{83, "..46", "-", "00000000"}, "0.0000"},
		{Block{41, "....", "+", "00000ABC"}, "ABC"},
		{Block{99, "....", "+", "00000001"}, UnsupportedMarker},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.block.ToPrintFormat(), "block %+v", tt.block)
	}
}

func TestBlockValue(t *testing.T) {
	v, err := Block{81, "..46", "-", "00012345"}.Value()
	require.NoError(t, err)
	assert.InDelta(t, -1.2345, v, 1e-9)

	_, err = Block{81, "..46", "+", "0000ABCD"}.Value()
	assert.Error(t, err)
}

func TestDecodeLine(t *testing.T) {
	line, gsi16, errs := DecodeLine("11....+00000001 81..00+00012345 82..00+00067890")
	require.Empty(t, errs)
	assert.False(t, gsi16)
	require.Len(t, line, 3)
	assert.Equal(t, "1", line.PointNumber())
	assert.Equal(t, "12.345", line.Print(81))

	// End to end: the same record written as GSI16.
	assert.Equal(t,
		"*11....+0000000000000001 81..00+0000000000012345 82..00+0000000000067890",
		line.Render(true))
}

func TestDecodeLineSortsByWordIndex(t *testing.T) {
	line, _, errs := DecodeLine("83..46+00010000 82..46+00020000 11....+00000007")
	require.Empty(t, errs)
	require.Len(t, line, 3)
	assert.Equal(t, []int{11, 82, 83}, []int{line[0].WordIndex, line[1].WordIndex, line[2].WordIndex})
}

func TestDecodeLineGSI16(t *testing.T) {
	line, gsi16, errs := DecodeLine("*110001+0000000000000042 81..46+0000000000012345 \r\n")
	require.Empty(t, errs)
	assert.True(t, gsi16)
	require.Len(t, line, 2)
	assert.Equal(t, "42", line.PointNumber())
	assert.Equal(t, "0000000000012345", line[1].Data)
}

func TestDecodeLineBlankAndBroken(t *testing.T) {
	line, _, errs := DecodeLine("   ")
	assert.Empty(t, line)
	assert.Empty(t, errs)

	line, _, errs = DecodeLine("11....+00000001 XY")
	assert.Len(t, line, 1)
	assert.Len(t, errs, 1)
}

func TestDecodeLineDropsUnsupportedWordIndex(t *testing.T) {
	line, _, errs := DecodeLine("11....+00000001 99..46+00012345 81..46+00010000")
	require.Len(t, line, 2)
	assert.False(t, line.Has(99))
	assert.True(t, line.Has(WIEasting))

	require.Len(t, errs, 1)
	var unsupported *ErrUnsupportedWordIndex
	require.True(t, errors.As(errs[0], &unsupported))
	assert.Equal(t, 99, unsupported.WordIndex)

	d := DecodeLines([]string{"11....+00000001 99..46+00012345"})
	assert.False(t, d.Found.Has(99))
	require.Len(t, d.Diagnostics, 1)
	assert.True(t, errors.As(d.Diagnostics[0], &unsupported))
}

func TestMillimetreCoordinateRoundTrip(t *testing.T) {
	// Unit '0' is millimetres: 12345 reads as 12.345 m.
	line, gsi16, errs := DecodeLine("11....+00000001 81..00+00012345 82..00+00067890")
	require.Empty(t, errs)
	assert.False(t, gsi16)
	assert.Equal(t, "1", line.PointNumber())
	assert.Equal(t, "12.345", line.Print(WIEasting))
	assert.Equal(t, "67.890", line.Print(WINorthing))
	assert.Equal(t, "*11....+0000000000000001 81..00+0000000000012345 82..00+0000000000067890", line.Render(true))
}

func TestDecodeLinesTracksWordIndices(t *testing.T) {
	d := DecodeLines([]string{
		"11....+00000001 81..46+00012345 82..46+00067890",
		"",
		"11....+00000002 84..46+00012345 85..46+00067890 86..46+00001000",
	})
	require.Len(t, d.Lines, 3)
	assert.Empty(t, d.Lines[1])
	assert.Len(t, d.NonEmpty(), 2)
	assert.Equal(t, []int{11, 81, 82, 84, 85, 86}, d.Found.Sorted())
	assert.True(t, d.Found.HasAny(83, 86))
	assert.False(t, d.Found.Has(83))
}

func TestAssemble(t *testing.T) {
	lines := []Line{
		{EncodePointNumber("1", 1)},
		{},
		{EncodePointNumber("2", 2)},
	}

	out := Assemble(false, lines, false)
	assert.Equal(t, []string{"110001+00000001", "110002+00000002"}, out)

	out = Assemble(true, lines, true)
	assert.Equal(t, []string{"*110001+0000000000000001 ", "*110002+0000000000000002 "}, out)
}

func TestPrepareLineEnding(t *testing.T) {
	assert.Equal(t, "abc ", PrepareLineEnding("abc", true))
	assert.Equal(t, "abc ", PrepareLineEnding("abc ", true))
	assert.Equal(t, "abc", PrepareLineEnding("abc", false))
}

func TestSortByPointNumberIsStable(t *testing.T) {
	lines := []string{
		"11....+0000000B 81..46+00000001",
		"11....+0000000A 81..46+00000002",
		"11....+0000000A 81..46+00000003",
	}

	sorted := SortByPointNumber(lines)
	assert.Equal(t, []string{lines[1], lines[2], lines[0]}, sorted)
}

func TestSortByPointNumberGSI16AndCase(t *testing.T) {
	lines := []string{
		"*11....+000000000000000b",
		"*11....+000000000000000A",
		"*11....+000000000000000a",
	}

	sorted := SortByPointNumber(lines)
	assert.Equal(t, []string{lines[1], lines[2], lines[0]}, sorted)
	assert.Equal(t, "000000000000000b", SortKey(lines[0]))
	assert.Equal(t, "", SortKey("short"))
}

func TestLineBuilder(t *testing.T) {
	lb := NewLineBuilder(4)
	lb.Add(WIHeight, "10.000").Add(WIEasting, "").Add(WIPointNumber, "1001").Add(WINorthing, "n/a")

	line := lb.Line()
	require.Len(t, line, 3)
	assert.Equal(t, 11, line[0].WordIndex)
	assert.Equal(t, "0004", line[0].Information)
	assert.Equal(t, 82, line[1].WordIndex)
	assert.Equal(t, 83, line[2].WordIndex)
	assert.Len(t, lb.Diagnostics(), 1)
}

func BenchmarkDecodeLine(b *testing.B) {
	raw := "*110001+0000000000001001 81..46+0000026000001234 82..46+0000012000005678 83..46+0000000004561234"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _, _ = DecodeLine(raw)
	}
}
