package caplan

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// line lays out a Caplan K record column by column.
func line(number, valency, easting, northing, height, tail string) string {
	pad := func(s string, w int) string {
		for len(s) < w {
			s += " "
		}
		return s
	}
	lead := func(s string, w int) string {
		for len(s) < w {
			s = " " + s
		}
		return s
	}
	return pad(number, 16) + " " + pad(valency, 1) + " " + lead(easting, 13) + " " +
		lead(northing, 13) + " " + lead(height, 12) + "  " + tail
}

func TestParseFull(t *testing.T) {
	raw := line("1001", "3", "2600000.123", "1200000.456", "450.789", "FP|steel|painted")
	require.Equal(t, 61, len(raw)-len("FP|steel|painted"))

	b, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "1001", b.Number)
	assert.Equal(t, ValencyFull, b.Valency)
	assert.Equal(t, "2600000.123", b.Easting)
	assert.Equal(t, "1200000.456", b.Northing)
	assert.Equal(t, "450.789", b.Height)
	assert.Equal(t, "FP", b.Code)
	assert.Equal(t, []string{"steel", "painted"}, b.Attributes)
	assert.True(t, b.HasPosition())
	assert.True(t, b.HasHeight())
}

func TestParseValency(t *testing.T) {
	b, err := Parse(line("H1", "1", "2600000.123", "1200000.456", "450.789", ""))
	require.NoError(t, err)
	assert.False(t, b.HasPosition())
	assert.True(t, b.HasHeight())

	b, err = Parse(line("P1", "2", "2600000.123", "1200000.456", "450.789", ""))
	require.NoError(t, err)
	assert.True(t, b.HasPosition())
	assert.False(t, b.HasHeight())
}

func TestParseInferredValency(t *testing.T) {
	b, err := Parse(line("P2", "", "2600000.123", "1200000.456", "", ""))
	require.NoError(t, err)
	assert.Equal(t, ValencyPosition, b.Valency)
	assert.Empty(t, b.Code)
	assert.Nil(t, b.Attributes)
}

func TestParseInvalidValency(t *testing.T) {
	b, err := Parse(line("P3", "x", "1.0", "2.0", "3.0", ""))
	var iv *ErrInvalidValency
	require.True(t, errors.As(err, &iv))
	assert.Equal(t, "x", iv.Raw)
	assert.Equal(t, ValencyFull, b.Valency)
}

func TestParseShortLine(t *testing.T) {
	b, err := Parse("42")
	require.NoError(t, err)
	assert.Equal(t, "42", b.Number)
	assert.Equal(t, ValencyInferred, b.Valency)
	assert.False(t, b.HasPosition())
}
