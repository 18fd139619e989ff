package domain

import (
	"slices"
	"time"
)

// ParseBestTrack detects the format of a best-track text blob and parses it
// into storms, in the order each storm first appears in the input.
//
// It never fails on textual input: malformed rows are skipped, and empty or
// whitespace-only input yields an empty result. Every returned Storm has a
// non-empty track sorted by timestamp with at most one fix per timestamp.
// The result is owned by the caller; no state is retained between calls.
func ParseBestTrack(text string) []Storm {
	lines := splitLines(text)
	if len(lines) == 0 {
		return []Storm{}
	}

	switch DetectFormat(lines[0]) {
	case FormatOperational:
		return parseOperational(lines)
	default:
		return parseArchive(lines)
	}
}

// sortTrack orders observations by timestamp; ties keep input order.
func sortTrack(track []Observation) {
	slices.SortStableFunc(track, func(a, b Observation) int {
		return a.Timestamp.Compare(b.Timestamp)
	})
}

// trackBuilder accumulates storms keyed by id while remembering the order in
// which ids were first opened. Within a storm, the first fix for a timestamp
// wins and later duplicates are dropped.
type trackBuilder struct {
	order  []string
	storms map[string]*Storm
	seen   map[string]map[time.Time]struct{}
}

func newTrackBuilder() *trackBuilder {
	return &trackBuilder{
		storms: make(map[string]*Storm),
		seen:   make(map[string]map[time.Time]struct{}),
	}
}

func (b *trackBuilder) has(id string) bool {
	_, ok := b.storms[id]
	return ok
}

func (b *trackBuilder) open(id, name string, year int) {
	b.order = append(b.order, id)
	b.storms[id] = &Storm{ID: id, Name: name, Year: year}
	b.seen[id] = make(map[time.Time]struct{})
}

func (b *trackBuilder) add(id string, obs Observation) {
	s, ok := b.storms[id]
	if !ok {
		return
	}
	if _, dup := b.seen[id][obs.Timestamp]; dup {
		return
	}
	b.seen[id][obs.Timestamp] = struct{}{}
	s.Track = append(s.Track, obs)
}

// finish sorts every track, sets the observation count and drops storms
// without fixes.
func (b *trackBuilder) finish() []Storm {
	out := make([]Storm, 0, len(b.order))
	for _, id := range b.order {
		s := b.storms[id]
		if len(s.Track) == 0 {
			continue
		}
		sortTrack(s.Track)
		s.ObservationCount = len(s.Track)
		out = append(out, *s)
	}
	return out
}
