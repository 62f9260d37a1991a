package convert

import (
	"log/slog"
	"runtime"

	"github.com/beetlebugorg/gsiconv/internal/ltop"
	"github.com/beetlebugorg/gsiconv/internal/zeiss"
)

// Options selects the output flavour and the policies applied by a
// converter. All fields are read once per call and never modified.
type Options struct {
	// GSI16 writes 16 character data fields instead of 8.
	GSI16 bool

	// EliminateDuplicates drops KOO points closer than DuplicateDistance to
	// an earlier point with the same number.
	EliminateDuplicates bool

	// SortOutput sorts the output by point number, case-insensitive and
	// stable.
	SortOutput bool

	// UseZeroHeights keeps Cadwork heights of exactly 0.000000, which are
	// otherwise read as "no height".
	UseZeroHeights bool

	// WriteCodeColumn writes point codes (and Caplan attributes) to the
	// WI 71.. remark blocks.
	WriteCodeColumn bool

	// SourceContainsCode tells the TXT and CSV readers that the second
	// column is a point code.
	SourceContainsCode bool

	// Dialect is the Zeiss REC dialect written by gsi-zeiss.
	Dialect zeiss.Dialect

	// UseZenithDistance writes vertical angles as zenith distances (V1)
	// instead of elevation angles (V2).
	UseZenithDistance bool

	// LineEndingWithBlank appends a blank to every GSI line.
	LineEndingWithBlank bool

	// EliminateZeroCoordinates drops KOO points whose coordinates are all
	// zero.
	EliminateZeroCoordinates bool

	// DuplicateDistance is the duplicate threshold as entered by the user.
	// It is parsed at call time; unusable input falls back to 0.03.
	DuplicateDistance string

	// Parallel runs the per-line stage on a worker pool. The output is the
	// same as the serial run.
	Parallel bool

	// Workers is the pool size; 0 means runtime.NumCPU().
	Workers int

	// Progress is called after each input line of the per-line stage.
	Progress func(done, total int)

	// Logger receives soft failures at Warn and known gaps at Debug. Nil
	// discards them.
	Logger *slog.Logger
}

// DefaultOptions returns GSI8 output, Zeiss M5, serial processing and the
// default duplicate distance.
func DefaultOptions() Options {
	return Options{
		Dialect:           zeiss.DialectM5,
		DuplicateDistance: "0.03",
		Workers:           runtime.NumCPU(),
	}
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return o.Logger
}

// duplicateDistance parses DuplicateDistance, logging the fallback.
func (o Options) duplicateDistance(log *slog.Logger) float64 {
	d, err := ltop.ParseDuplicateDistance(o.DuplicateDistance)
	if err != nil {
		log.Warn("using default duplicate distance",
			slog.Float64("distance", d),
			slog.Any("err", err))
	}
	return d
}
