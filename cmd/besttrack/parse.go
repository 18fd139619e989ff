package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/couchcryptid/storm-data-besttrack/internal/adapter/geojson"
	"github.com/couchcryptid/storm-data-besttrack/internal/config"
	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	"github.com/spf13/cobra"
)

var (
	outputFormat string
	summaryOnly  bool
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a best-track file and print its storms",
	Long: `Parse a best-track file in either archive or operational format and print
the normalised storms as a JSON array (default) or a GeoJSON FeatureCollection.
Use "-" to read from stdin.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.ValidateOutputFormat(outputFormat); err != nil {
			return err
		}
		data, err := readInput(args[0], cmd.InOrStdin(), maxBytes)
		if err != nil {
			return err
		}
		storms := domain.ParseBestTrack(string(data))
		if summaryOnly {
			return writeSummary(cmd.OutOrStdout(), storms)
		}
		return writeStorms(cmd.OutOrStdout(), storms, outputFormat)
	},
}

func init() {
	parseCmd.Flags().StringVarP(&outputFormat, "format", "f", config.OutputJSON, "Output encoding: json or geojson.")
	parseCmd.Flags().BoolVarP(&summaryOnly, "summary", "s", false, "Print one line per storm instead of the full track.")
}

func writeStorms(w io.Writer, storms []domain.Storm, format string) error {
	if format == config.OutputGeoJSON {
		data, err := geojson.StormsFeatureCollection(storms).MarshalJSON()
		if err != nil {
			return fmt.Errorf("encode geojson: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(storms)
}

// writeSummary prints id, name, fix count, time span and peak wind for each
// storm.
func writeSummary(w io.Writer, storms []domain.Storm) error {
	for _, s := range storms {
		_, err := fmt.Fprintf(w, "%s\t%-10s\t%3d fixes\t%s .. %s\tpeak %d kt\n",
			s.ID, s.Name, s.ObservationCount,
			s.Start().Format(time.DateTime), s.End().Format(time.DateTime),
			s.PeakWind())
		if err != nil {
			return err
		}
	}
	return nil
}
