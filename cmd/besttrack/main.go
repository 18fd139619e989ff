// Command besttrack parses tropical cyclone best-track files from the command
// line and seeds the service's source topic.
//
// Usage:
//
//	besttrack parse hurdat2-atl-2023.txt
//	besttrack parse --format geojson bal092011.dat.gz > irene.geojson
//	besttrack parse --summary -
//	besttrack validate hurdat2-atl-2023.txt
//	besttrack publish --env .env bal092011.dat
package main

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/couchcryptid/storm-data-besttrack/internal/pipeline"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	envFile  string
	logLevel string
	maxBytes int64

	rootCmd = &cobra.Command{
		Use:   "besttrack",
		Short: "Parse and publish tropical cyclone best-track files.",
		Long: `besttrack reads archive (HURDAT2 style) and operational (ATCF b-deck) best-track
files, normalises them into storms with sorted, de-duplicated tracks and
prints them as JSON or GeoJSON. Files may be gzip-compressed.`,
		SilenceUsage: true,
	}
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "The env file to read.")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log", "warn", "Log level: debug, info, warn or error.")
	rootCmd.PersistentFlags().Int64Var(&maxBytes, "max-bytes", 64<<20, "Maximum decompressed input size in bytes.")

	rootCmd.AddCommand(parseCmd, validateCmd, publishCmd)
}

func initConfig() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: parseLogLevel(logLevel)}))
	slog.SetDefault(logger)

	if err := godotenv.Load(envFile); err != nil {
		slog.Debug("failed to load env file", "file", envFile, "error", err.Error())
	}
}

func parseLogLevel(level string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelWarn
	}
	return l
}

// readInput reads a best-track file, or stdin for "-", transparently
// gunzipping compressed input.
func readInput(path string, stdin io.Reader, limit int64) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(filepath.Clean(path))
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if pipeline.IsGzip(data) {
		return pipeline.GunzipLimited(bytes.NewReader(data), limit)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: %s is %d bytes", pipeline.ErrPayloadTooLarge, path, len(data))
	}
	return data, nil
}
