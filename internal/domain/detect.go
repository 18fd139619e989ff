package domain

import (
	"regexp"
	"strings"
)

// Format identifies the grammar of a best-track text blob.
type Format int

const (
	// FormatArchive is the header/data-row archive format (HURDAT2 style).
	FormatArchive Format = iota
	// FormatOperational is the flat comma-delimited ATCF b-deck format.
	FormatOperational
)

// operationalRowRe matches the basin code and cyclone number that open every
// operational row, e.g. "AL, 09," or "EP,3,". Anchored so commas later in an
// archive line cannot trigger it.
var operationalRowRe = regexp.MustCompile(`^[A-Za-z]{2},\s*\d{1,2}\s*,`)

// DetectFormat inspects the first meaningful line of input and returns the
// grammar that applies to the whole blob.
func DetectFormat(firstLine string) Format {
	if operationalRowRe.MatchString(strings.TrimSpace(firstLine)) {
		return FormatOperational
	}
	return FormatArchive
}

// DetectTextFormat detects the format of a whole blob from its first
// non-blank line. It reports false when the blob has no content.
func DetectTextFormat(text string) (Format, bool) {
	for len(text) > 0 {
		var line string
		line, text, _ = strings.Cut(text, "\n")
		for _, part := range strings.Split(line, "\r") {
			if part = strings.TrimSpace(part); part != "" {
				return DetectFormat(part), true
			}
		}
	}
	return FormatArchive, false
}

// FormatName returns a short label for logs and metrics.
func FormatName(f Format) string {
	switch f {
	case FormatOperational:
		return "operational"
	default:
		return "archive"
	}
}

// splitLines normalises CRLF and bare CR line endings, trims every line and
// drops the empty ones.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// splitFields splits a row on commas and trims each field.
func splitFields(line string) []string {
	fields := strings.Split(line, ",")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

// field returns fields[i], or "" when the row is too short.
func field(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}
