package main

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

// Convert on the calling goroutine
func convertSerial(lines []string) gsiconv.Result {
	res, err := gsiconv.Convert("zeiss-gsi", lines, gsiconv.DefaultOptions())
	if err != nil {
		log.Fatal(err)
	}
	return res
}

// Parse lines on a worker pool; sorting stays sequential
func convertParallel(lines []string) gsiconv.Result {
	opts := gsiconv.DefaultOptions()
	opts.Parallel = true
	opts.Workers = 8
	opts.Progress = func(done, total int) {
		if done%10000 == 0 || done == total {
			fmt.Printf("\r  %d/%d lines", done, total)
		}
	}

	res, err := gsiconv.Convert("zeiss-gsi", lines, opts)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println()
	return res
}

func main() {
	data, err := os.ReadFile("tunnel.rec")
	if err != nil {
		log.Fatal(err)
	}
	lines := strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n")

	fmt.Println("=== Serial ===")
	start := time.Now()
	serial := convertSerial(lines)
	fmt.Printf("Lines: %d in %v\n", len(serial.Lines), time.Since(start))

	fmt.Println("\n=== Parallel ===")
	start = time.Now()
	parallel := convertParallel(lines)
	fmt.Printf("Lines: %d in %v\n", len(parallel.Lines), time.Since(start))
}
