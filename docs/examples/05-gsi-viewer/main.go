package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

func main() {
	path := flag.String("gsi", "", "Path to GSI file")
	sorted := flag.Bool("sort", false, "Sort by point number")
	flag.Parse()

	if *path == "" {
		log.Fatal("Please provide -gsi path")
	}

	data, err := os.ReadFile(*path)
	if err != nil {
		log.Fatal(err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	opts := gsiconv.DefaultOptions()
	opts.SortOutput = *sorted

	// Column view with decimal points and units applied
	res, err := gsiconv.Convert("gsi-txt", lines, opts)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("=== %s ===\n", *path)
	for _, line := range res.Lines {
		fmt.Println(line)
	}

	fmt.Printf("\n=== Summary ===\n")
	fmt.Printf("Records: %d\n", len(res.Lines))
	fmt.Printf("Problems: %d\n", len(res.Diagnostics))
	for _, d := range res.Diagnostics {
		fmt.Printf("  %v\n", d)
	}
}
