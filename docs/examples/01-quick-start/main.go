package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

func main() {
	// Read the source file
	data, err := os.ReadFile("points.txt")
	if err != nil {
		log.Fatal(err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	// Convert to GSI16, sorted by point number
	opts := gsiconv.DefaultOptions()
	opts.GSI16 = true
	opts.SortOutput = true

	res, err := gsiconv.Convert("txt-gsi", lines, opts)
	if err != nil {
		log.Fatal(err)
	}

	// Write the result
	if err := os.WriteFile("points.gsi", []byte(strings.Join(res.Lines, "\r\n")+"\r\n"), 0o644); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Lines written: %d\n", len(res.Lines))
	fmt.Printf("Problems: %d\n", len(res.Diagnostics))
}
