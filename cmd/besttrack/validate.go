package main

import (
	"fmt"
	"io"

	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file|->",
	Short: "Parse a best-track file and check every storm for consistency",
	Long: `Parse a best-track file and check that each storm has a name, a non-empty
track in strictly increasing time order, a matching observation count and
coordinates within range. Exits non-zero when any check fails.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readInput(args[0], cmd.InOrStdin(), maxBytes)
		if err != nil {
			return err
		}
		return runValidate(cmd.OutOrStdout(), string(data))
	},
}

func runValidate(w io.Writer, text string) error {
	storms := domain.ParseBestTrack(text)
	format, _ := domain.DetectTextFormat(text)

	observations := 0
	for _, s := range storms {
		observations += s.ObservationCount
	}
	fmt.Fprintf(w, "format: %s\nstorms: %d\nobservations: %d\n",
		domain.FormatName(format), len(storms), observations)

	violations := domain.ValidateStorms(storms)
	for _, v := range violations {
		fmt.Fprintf(w, "FAIL %s\n", v)
	}
	if len(violations) > 0 {
		return fmt.Errorf("%d validation failures", len(violations))
	}
	fmt.Fprintln(w, "PASS")
	return nil
}
