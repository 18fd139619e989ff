package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	kafkaadapter "github.com/couchcryptid/storm-data-besttrack/internal/adapter/kafka"
	"github.com/couchcryptid/storm-data-besttrack/internal/config"
	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	"github.com/spf13/cobra"
)

var publishTimeout time.Duration

var publishCmd = &cobra.Command{
	Use:   "publish <file>...",
	Short: "Publish best-track files to the source topic",
	Long: `Publish each file unchanged, compressed or not, as one message on
KAFKA_SOURCE_TOPIC keyed by its base name. Broker settings come from the
environment and the --env file.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		events, err := sourceEvents(args)
		if err != nil {
			return err
		}

		// The writer targets the sink topic; point it at the source instead.
		publishCfg := *cfg
		publishCfg.KafkaSinkTopic = cfg.KafkaSourceTopic
		writer := kafkaadapter.NewWriter(&publishCfg, slog.Default())
		defer writer.Close()

		ctx, cancel := context.WithTimeout(cmd.Context(), publishTimeout)
		defer cancel()
		if err := writer.LoadBatch(ctx, events); err != nil {
			return fmt.Errorf("publish to %s: %w", cfg.KafkaSourceTopic, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "published %d file(s) to %s\n", len(events), cfg.KafkaSourceTopic)
		return nil
	},
}

func init() {
	publishCmd.Flags().DurationVar(&publishTimeout, "timeout", 30*time.Second, "Maximum time to wait for the brokers.")
}

// sourceEvents wraps each file as a raw payload keyed by file name.
func sourceEvents(paths []string) ([]domain.OutputEvent, error) {
	events := make([]domain.OutputEvent, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", path, err)
		}
		name := filepath.Base(path)
		events = append(events, domain.OutputEvent{
			Key:     []byte(name),
			Value:   data,
			Headers: map[string]string{"filename": name},
		})
	}
	return events, nil
}
