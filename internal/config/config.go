package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	sharedcfg "github.com/couchcryptid/storm-data-shared/config"
)

// Output encodings for normalized storms.
const (
	OutputJSON    = "json"
	OutputGeoJSON = "geojson"
)

const defaultMaxInputBytes = 64 << 20

// Config holds all service settings, populated from environment variables.
type Config struct {
	KafkaBrokers     []string
	KafkaSourceTopic string
	KafkaSinkTopic   string
	KafkaGroupID     string
	HTTPAddr         string
	LogLevel         string
	LogFormat        string
	ShutdownTimeout  time.Duration

	BatchSize          int
	BatchFlushInterval time.Duration

	// OutputFormat selects how each storm is encoded on the sink topic.
	OutputFormat string
	// MaxInputBytes caps a single payload after decompression.
	MaxInputBytes int64
}

// Load reads configuration from environment variables, applying defaults where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := sharedcfg.ParseShutdownTimeout()
	if err != nil {
		return nil, err
	}

	batchSize, err := sharedcfg.ParseBatchSize()
	if err != nil {
		return nil, err
	}

	flushInterval, err := sharedcfg.ParseBatchFlushInterval()
	if err != nil {
		return nil, err
	}

	maxInputBytes, err := parseMaxInputBytes()
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		KafkaBrokers:       sharedcfg.ParseBrokers(sharedcfg.EnvOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaSourceTopic:   sharedcfg.EnvOrDefault("KAFKA_SOURCE_TOPIC", "raw-best-track"),
		KafkaSinkTopic:     sharedcfg.EnvOrDefault("KAFKA_SINK_TOPIC", "normalized-storms"),
		KafkaGroupID:       sharedcfg.EnvOrDefault("KAFKA_GROUP_ID", "storm-data-besttrack"),
		HTTPAddr:           sharedcfg.EnvOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:           sharedcfg.EnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:          sharedcfg.EnvOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout:    shutdownTimeout,
		BatchSize:          batchSize,
		BatchFlushInterval: flushInterval,

		OutputFormat:  strings.ToLower(sharedcfg.EnvOrDefault("OUTPUT_FORMAT", OutputJSON)),
		MaxInputBytes: maxInputBytes,
	}

	if len(cfg.KafkaBrokers) == 0 {
		return nil, errors.New("KAFKA_BROKERS is required")
	}
	if cfg.KafkaSourceTopic == "" {
		return nil, errors.New("KAFKA_SOURCE_TOPIC is required")
	}
	if cfg.KafkaSinkTopic == "" {
		return nil, errors.New("KAFKA_SINK_TOPIC is required")
	}
	if err := ValidateOutputFormat(cfg.OutputFormat); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ValidateOutputFormat rejects encodings other than json and geojson.
func ValidateOutputFormat(format string) error {
	switch format {
	case OutputJSON, OutputGeoJSON:
		return nil
	default:
		return fmt.Errorf("invalid OUTPUT_FORMAT %q: want %s or %s", format, OutputJSON, OutputGeoJSON)
	}
}

func parseMaxInputBytes() (int64, error) {
	s := os.Getenv("MAX_INPUT_BYTES")
	if s == "" {
		return defaultMaxInputBytes, nil
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || n <= 0 {
		return 0, errors.New("invalid MAX_INPUT_BYTES")
	}
	return n, nil
}
