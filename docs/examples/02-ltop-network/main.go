package main

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

type FileInfo struct {
	Path   string
	Points int
	Issues int
}

// Merge the coordinates of several GSI files into one lines list
func collect(paths []string) ([]string, []FileInfo) {
	var lines []string
	infos := make([]FileInfo, 0, len(paths))

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			log.Printf("Failed to read %s: %v\n", path, err)
			continue
		}
		fileLines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

		// Convert per file to count points and problems
		res, err := gsiconv.Convert("gsi-gsi", fileLines, gsiconv.DefaultOptions())
		if err != nil {
			log.Fatal(err)
		}
		infos = append(infos, FileInfo{Path: path, Points: len(res.Lines), Issues: len(res.Diagnostics)})
		lines = append(lines, fileLines...)
	}

	return lines, infos
}

func main() {
	// Several field books measured the same control points
	paths := []string{"day1.gsi", "day2.gsi"}

	lines, infos := collect(paths)
	for _, info := range infos {
		fmt.Printf("%s: %d points, %d issues\n", info.Path, info.Points, info.Issues)
	}

	// Points with the same number within 3 cm are written once
	opts := gsiconv.DefaultOptions()
	opts.EliminateDuplicates = true
	opts.DuplicateDistance = "0.03"
	opts.EliminateZeroCoordinates = true

	res, err := gsiconv.Convert("gsi-koo", lines, opts)
	if err != nil {
		log.Fatal(err)
	}
	if res.Empty() {
		log.Fatal("no coordinates found")
	}

	if err := os.WriteFile("network.koo", []byte(strings.Join(res.Lines, "\r\n")+"\r\n"), 0o644); err != nil {
		log.Fatal(err)
	}
	// The first line is the $$PK header
	fmt.Printf("\nKOO points written: %d\n", len(res.Lines)-1)
}
