package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gsiconv/internal/config"
	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

// errNoOutput is returned when no input produced a single line.
var errNoOutput = errors.New("conversion produced no output")

type convertFlags struct {
	from, to   string
	output     string
	configPath string
	encoding   string
	lf         bool

	gsi16        bool
	sort         bool
	dedup        bool
	distance     string
	zeroCoords   bool
	zeroHeights  bool
	writeCode    bool
	sourceCode   bool
	dialect      string
	zenith       bool
	blankLineEnd bool
	parallel     bool
	workers      int
}

func newConvertCmd(root *rootFlags) *cobra.Command {
	var flags convertFlags
	cmd := &cobra.Command{
		Use:   "convert --from <format> --to <format> [flags] input...",
		Short: "Convert one or more files",
		Long: `Convert one or more files.

Each input is written next to itself with the extension of the target
format, or to the file given with -o. Use -o - to write to stdout.
Run "gsiconv list" for the supported format pairs.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := root.logger(cmd.ErrOrStderr())
			opts, err := flags.options(cmd)
			if err != nil {
				return err
			}
			opts.Logger = log
			return runConvert(cmd, &flags, opts, args, log)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.from, "from", "", "source format (gsi, txt, csv, csvbs, txtbs, caplan, cadwork, zeiss, toporail)")
	f.StringVar(&flags.to, "to", "", "target format (gsi, zeiss, koo, mes, txt, csv)")
	f.StringVarP(&flags.output, "output", "o", "", "output file, directory for several inputs, or - for stdout")
	f.StringVar(&flags.configPath, "config", "", "YAML file with conversion preferences")
	f.StringVar(&flags.encoding, "encoding", "windows-1252", "character set of input and output files")
	f.BoolVar(&flags.lf, "lf", false, "end lines with LF instead of CRLF")

	f.BoolVar(&flags.gsi16, "gsi16", false, "write GSI16 instead of GSI8")
	f.BoolVar(&flags.sort, "sort", false, "sort output by point number")
	f.BoolVar(&flags.dedup, "dedup", false, "drop duplicate KOO points")
	f.StringVar(&flags.distance, "duplicate-distance", "", "duplicate threshold in metres (default 0.03)")
	f.BoolVar(&flags.zeroCoords, "drop-zero", false, "drop KOO points whose coordinates are all zero")
	f.BoolVar(&flags.zeroHeights, "zero-heights", false, "keep Cadwork heights of 0.000000")
	f.BoolVar(&flags.writeCode, "write-code", false, "write point codes to WI 71")
	f.BoolVar(&flags.sourceCode, "source-code", false, "second TXT/CSV column is a point code")
	f.StringVar(&flags.dialect, "dialect", "", "Zeiss REC dialect written by --to zeiss (R4, R5, REC500, M5)")
	f.BoolVar(&flags.zenith, "zenith", false, "write Zeiss vertical angles as zenith distances")
	f.BoolVar(&flags.blankLineEnd, "blank-line-end", false, "end every GSI line with a blank")
	f.BoolVar(&flags.parallel, "parallel", false, "parse lines on a worker pool")
	f.IntVar(&flags.workers, "workers", 0, "worker pool size (default: number of CPUs)")

	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

// options layers the defaults, the config file and the flags set on the
// command line, in that order.
func (f *convertFlags) options(cmd *cobra.Command) (gsiconv.Options, error) {
	opts := gsiconv.DefaultOptions()
	if f.configPath != "" {
		c, err := config.Load(f.configPath)
		if err != nil {
			return opts, err
		}
		if err := c.Apply(&opts); err != nil {
			return opts, err
		}
	}

	changed := cmd.Flags().Changed
	setBool := func(name string, dst *bool, v bool) {
		if changed(name) {
			*dst = v
		}
	}
	setBool("gsi16", &opts.GSI16, f.gsi16)
	setBool("sort", &opts.SortOutput, f.sort)
	setBool("dedup", &opts.EliminateDuplicates, f.dedup)
	setBool("drop-zero", &opts.EliminateZeroCoordinates, f.zeroCoords)
	setBool("zero-heights", &opts.UseZeroHeights, f.zeroHeights)
	setBool("write-code", &opts.WriteCodeColumn, f.writeCode)
	setBool("source-code", &opts.SourceContainsCode, f.sourceCode)
	setBool("zenith", &opts.UseZenithDistance, f.zenith)
	setBool("blank-line-end", &opts.LineEndingWithBlank, f.blankLineEnd)
	setBool("parallel", &opts.Parallel, f.parallel)

	if changed("duplicate-distance") {
		opts.DuplicateDistance = f.distance
	}
	if changed("workers") {
		if f.workers < 0 {
			return opts, fmt.Errorf("--workers %d is negative", f.workers)
		}
		opts.Workers = f.workers
	}
	if changed("dialect") {
		d, err := gsiconv.ParseDialect(f.dialect)
		if err != nil {
			return opts, err
		}
		opts.Dialect = d
	}
	return opts, nil
}

func runConvert(cmd *cobra.Command, f *convertFlags, opts gsiconv.Options, inputs []string, log *slog.Logger) error {
	name := strings.ToLower(f.from) + "-" + strings.ToLower(f.to)
	c, err := gsiconv.NewConverter(name)
	if err != nil {
		return fmt.Errorf("%w; run \"gsiconv list\"", err)
	}
	enc, err := lookupEncoding(f.encoding)
	if err != nil {
		return err
	}
	eol := "\r\n"
	if f.lf {
		eol = "\n"
	}

	dir := ""
	if len(inputs) > 1 && f.output != "" {
		if f.output == "-" {
			return errors.New("-o - takes a single input")
		}
		if err := os.MkdirAll(f.output, 0o755); err != nil {
			return err
		}
		dir = f.output
	}

	written := 0
	for _, input := range inputs {
		lines, err := readLines(input, enc)
		if err != nil {
			return err
		}

		var res gsiconv.Result
		if strings.EqualFold(f.from, "csv") {
			records, err := splitCSV(lines)
			if err != nil {
				return fmt.Errorf("%s: %w", input, err)
			}
			res = c.ConvertFields(records, opts)
		} else {
			res = c.Convert(lines, opts)
		}

		if res.Empty() {
			log.Error("nothing converted", slog.String("file", input), slog.Int("diagnostics", len(res.Diagnostics)))
			continue
		}

		switch {
		case f.output == "-":
			err = writeLines(cmd.OutOrStdout(), res.Lines, enc, eol)
		case f.output != "" && dir == "":
			err = writeFile(f.output, res.Lines, enc, eol)
		default:
			out := outputPath(input, strings.ToLower(f.to), dir)
			err = writeFile(out, res.Lines, enc, eol)
			if err == nil {
				log.Info("written", slog.String("file", out), slog.Int("lines", len(res.Lines)))
			}
		}
		if err != nil {
			return err
		}
		written++
		if len(res.Diagnostics) > 0 {
			log.Warn("converted with problems",
				slog.String("file", input),
				slog.Int("lines", len(res.Lines)),
				slog.Int("diagnostics", len(res.Diagnostics)))
		}
	}

	if written == 0 {
		return errNoOutput
	}
	return nil
}
