package main

import (
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

func convertAndReport(name string, lines []string) {
	opts := gsiconv.DefaultOptions()
	// Soft failures are also logged as they happen
	opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	res, err := gsiconv.Convert(name, lines, opts)
	if err != nil {
		var unknown *gsiconv.ErrUnknownConverter
		if errors.As(err, &unknown) {
			log.Printf("No converter %q, available: %v", unknown.Name, gsiconv.Names())
			return
		}
		log.Fatal(err)
	}

	for _, d := range res.Diagnostics {
		var shape *gsiconv.ErrLineShape
		var header *gsiconv.ErrMissingHeader
		switch {
		case errors.As(d, &shape):
			fmt.Printf("  line %d skipped: %s\n", shape.Line, shape.Reason)
		case errors.As(d, &header):
			fmt.Printf("  not a %s file\n", header.Format)
		default:
			fmt.Printf("  %v\n", d)
		}
	}

	// An empty result is not an error for the library
	if res.Empty() {
		fmt.Printf("%s: nothing converted\n", name)
		return
	}
	fmt.Printf("%s: %d lines\n", name, len(res.Lines))
}

func main() {
	convertAndReport("txt-gsi", []string{
		"1001 2600000.000 1200000.000 450.000",
		"1002 too many values in this line",
		"1003 2600010.000 abc",
	})

	convertAndReport("toporail-gsi", []string{"P1;1.0;2.0;3.0"})

	convertAndReport("dxf-gsi", nil)
}
