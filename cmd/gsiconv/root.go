package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/beetlebugorg/gsiconv/internal/config"
	"github.com/beetlebugorg/gsiconv/pkg/gsiconv"
)

type rootFlags struct {
	verbose bool
	quiet   bool
}

func newRootCmd() *cobra.Command {
	var flags rootFlags
	cmd := &cobra.Command{
		Use:          "gsiconv",
		Short:        "Convert surveying coordinate and measurement files",
		SilenceUsage: true,
	}
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "log skipped blocks and other details")
	cmd.PersistentFlags().BoolVarP(&flags.quiet, "quiet", "q", false, "log errors only")

	cmd.AddCommand(
		newConvertCmd(&flags),
		newListCmd(),
		newConfigCmd(),
	)
	return cmd
}

// logger writes to stderr; soft failures show up at the default level.
func (f *rootFlags) logger(w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case f.verbose:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available conversions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			for _, name := range gsiconv.Names() {
				c, err := gsiconv.NewConverter(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%-14s %s\n", name, c.Description())
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := config.Default().Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
}
