package domain

import (
	"strconv"
	"strings"
	"time"
)

// ParseCoordinate converts a best-track latitude or longitude to signed
// decimal degrees (north and east positive).
//
// A trailing hemisphere letter marks the compact form: "221N" is 22.1°N and
// "75.5W" is -75.5. Without a suffix the text is read as a plain signed
// float. Empty or unparseable input yields 0.
func ParseCoordinate(text string) float64 {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0
	}

	hemisphere := strings.ToUpper(text[len(text)-1:])
	switch hemisphere {
	case "N", "S", "E", "W":
	default:
		return parseFloatOrZero(text)
	}

	prefix := strings.TrimSpace(text[:len(text)-1])
	v := parseFloatOrZero(prefix)
	if !strings.Contains(prefix, ".") {
		v /= 10
	}
	if v < 0 {
		v = -v
	}
	if hemisphere == "S" || hemisphere == "W" {
		return -v
	}
	return v
}

// ParseDateTime combines a YYYYMMDD date with an optional HHMM time into a UTC
// instant and a YYYY-MM-DD display date. The time defaults to 0000 when it is
// absent or malformed.
//
// A date shorter than 8 characters, or one that is not a calendar date,
// returns the zero time and the input unchanged. Callers skip such rows.
func ParseDateTime(date, hhmm string) (time.Time, string) {
	date = strings.TrimSpace(date)
	if len(date) < 8 {
		return time.Time{}, date
	}

	hhmm = normalizeHHMM(hhmm)
	ts, err := time.Parse("200601021504", date[:8]+hhmm)
	if err != nil {
		return time.Time{}, date
	}
	return ts.UTC(), ts.Format(time.DateOnly)
}

// normalizeHHMM returns a valid four-digit HHMM or "0000".
func normalizeHHMM(hhmm string) string {
	hhmm = strings.TrimSpace(hhmm)
	if len(hhmm) != 4 {
		return "0000"
	}
	hour, errH := strconv.Atoi(hhmm[:2])
	mins, errM := strconv.Atoi(hhmm[2:])
	if errH != nil || errM != nil || hour < 0 || hour > 23 || mins < 0 || mins > 59 {
		return "0000"
	}
	return hhmm
}

// parseFloatOrZero parses a string as float64, returning 0 on failure.
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// parseIntOrZero parses a whole-number field, tolerating a decimal form
// ("75.0"). Failures yield 0.
func parseIntOrZero(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if v, err := strconv.Atoi(s); err == nil {
		return v
	}
	return int(parseFloatOrZero(s))
}

// parseNonNegative is parseIntOrZero clamped at zero. The -999 missing-value
// sentinel used by both formats therefore normalises to 0.
func parseNonNegative(s string) int {
	v := parseIntOrZero(s)
	if v < 0 {
		return 0
	}
	return v
}
