// Command gsiconv converts surveying files between GSI, Zeiss REC, LTOP,
// Caplan, Cadwork, Toporail and plain text formats.
//
//	gsiconv list
//	gsiconv convert --from txt --to gsi --gsi16 points.txt
//	gsiconv convert --from gsi --to koo --dedup -o net.koo field.gsi
//	gsiconv config > gsiconv.yaml
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
