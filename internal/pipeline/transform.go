package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/couchcryptid/storm-data-besttrack/internal/adapter/geojson"
	"github.com/couchcryptid/storm-data-besttrack/internal/config"
	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	"github.com/couchcryptid/storm-data-besttrack/internal/observability"
	"github.com/jonboulle/clockwork"
	"github.com/klauspost/compress/gzip"
)

var (
	// ErrEmptyPayload is returned for a message with no value, such as a
	// compaction tombstone.
	ErrEmptyPayload = errors.New("empty payload")
	// ErrPayloadTooLarge is returned when a payload exceeds MaxInputBytes
	// after decompression.
	ErrPayloadTooLarge = errors.New("payload too large")
)

var gzipMagic = []byte{0x1f, 0x8b}

// Output event headers.
const (
	HeaderStormID      = "storm_id"
	HeaderFormat       = "format"
	HeaderSourceFormat = "source_format"
	HeaderSourceKey    = "source_key"
	HeaderProcessedAt  = "processed_at"
)

// BestTrackTransformer implements Transformer by parsing a best-track file
// and encoding each storm as its own output event.
type BestTrackTransformer struct {
	format   string
	maxBytes int64
	clock    clockwork.Clock
	metrics  *observability.Metrics
	logger   *slog.Logger
}

// TransformerOption customizes a BestTrackTransformer.
type TransformerOption func(*BestTrackTransformer)

// WithClock overrides the clock used to stamp processed_at.
func WithClock(c clockwork.Clock) TransformerOption {
	return func(t *BestTrackTransformer) {
		t.clock = c
	}
}

// NewTransformer creates a BestTrackTransformer for the configured output
// format and size limit.
func NewTransformer(cfg *config.Config, metrics *observability.Metrics, logger *slog.Logger, opts ...TransformerOption) *BestTrackTransformer {
	t := &BestTrackTransformer{
		format:   cfg.OutputFormat,
		maxBytes: cfg.MaxInputBytes,
		clock:    clockwork.NewRealClock(),
		metrics:  metrics,
		logger:   logger,
	}
	if t.format == "" {
		t.format = config.OutputJSON
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Transform decodes the payload, parses it and returns one event per storm in
// the order storms first appear. A payload with no storms yields no events and
// no error.
func (t *BestTrackTransformer) Transform(_ context.Context, raw domain.RawEvent) ([]domain.OutputEvent, error) {
	storms, sourceFormat, err := t.parse(raw.Value)
	if err != nil {
		return nil, err
	}
	formatName := domain.FormatName(sourceFormat)

	if len(storms) == 0 {
		t.logger.Debug("payload contained no storms", "key", string(raw.Key), "offset", raw.Offset)
		return nil, nil
	}

	processedAt := t.clock.Now().UTC().Format(time.RFC3339)
	out := make([]domain.OutputEvent, 0, len(storms))
	observations := 0
	for _, storm := range storms {
		value, err := t.encode(storm)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.OutputEvent{
			Key:   []byte(storm.ID),
			Value: value,
			Headers: map[string]string{
				HeaderStormID:      storm.ID,
				HeaderFormat:       t.format,
				HeaderSourceFormat: formatName,
				HeaderSourceKey:    string(raw.Key),
				HeaderProcessedAt:  processedAt,
			},
		})
		observations += storm.ObservationCount
	}

	t.metrics.StormsEmitted.Add(float64(len(storms)))
	t.metrics.ObservationsEmitted.Add(float64(observations))
	t.logger.Debug("payload parsed",
		"key", string(raw.Key),
		"source_format", formatName,
		"storms", len(storms),
		"observations", observations,
	)
	return out, nil
}

// ParsePayload decodes and parses a single best-track payload without
// encoding it. It shares the size limit and metrics of Transform.
func (t *BestTrackTransformer) ParsePayload(_ context.Context, payload []byte) ([]domain.Storm, error) {
	storms, _, err := t.parse(payload)
	return storms, err
}

func (t *BestTrackTransformer) parse(payload []byte) ([]domain.Storm, domain.Format, error) {
	text, err := t.decode(payload)
	if err != nil {
		return nil, domain.FormatArchive, err
	}

	start := t.clock.Now()
	storms := domain.ParseBestTrack(text)
	t.metrics.ParseDuration.Observe(t.clock.Since(start).Seconds())

	format, _ := domain.DetectTextFormat(text)
	t.metrics.PayloadsParsed.WithLabelValues(domain.FormatName(format)).Inc()
	if len(storms) == 0 {
		t.metrics.EmptyPayloads.Inc()
	}
	return storms, format, nil
}

// decode returns the payload text, gunzipping it when it carries the gzip
// magic number.
func (t *BestTrackTransformer) decode(value []byte) (string, error) {
	if len(value) == 0 {
		return "", ErrEmptyPayload
	}

	if !IsGzip(value) {
		if t.maxBytes > 0 && int64(len(value)) > t.maxBytes {
			return "", fmt.Errorf("%w: %d bytes", ErrPayloadTooLarge, len(value))
		}
		return string(value), nil
	}

	t.metrics.CompressedPayloads.Inc()
	data, err := GunzipLimited(bytes.NewReader(value), t.maxBytes)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func (t *BestTrackTransformer) encode(storm domain.Storm) ([]byte, error) {
	if t.format == config.OutputGeoJSON {
		return geojson.EncodeStorm(storm)
	}
	data, err := json.Marshal(storm)
	if err != nil {
		return nil, fmt.Errorf("encode storm %s: %w", storm.ID, err)
	}
	return data, nil
}

// IsGzip reports whether data starts with the gzip magic number.
func IsGzip(data []byte) bool {
	return bytes.HasPrefix(data, gzipMagic)
}

// GunzipLimited gunzips r, failing with ErrPayloadTooLarge once more than
// limit bytes are produced. A limit of zero or less disables the check.
func GunzipLimited(r io.Reader, limit int64) ([]byte, error) {
	zr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("open gzip payload: %w", err)
	}
	defer zr.Close()

	var src io.Reader = zr
	if limit > 0 {
		src = io.LimitReader(zr, limit+1)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("decompress payload: %w", err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return nil, fmt.Errorf("%w: more than %d bytes decompressed", ErrPayloadTooLarge, limit)
	}
	return data, nil
}
