package domain

import "fmt"

// Violation describes one broken invariant on a parsed storm.
type Violation struct {
	StormID string
	Index   int // observation index, -1 for storm-level problems
	Message string
}

func (v Violation) String() string {
	if v.Index < 0 {
		return fmt.Sprintf("%s: %s", v.StormID, v.Message)
	}
	return fmt.Sprintf("%s[%d]: %s", v.StormID, v.Index, v.Message)
}

// ValidateStorms checks the guarantees ParseBestTrack makes about its output
// together with physical bounds on each fix. A nil result means every storm
// is well formed.
func ValidateStorms(storms []Storm) []Violation {
	var out []Violation
	seenIDs := make(map[string]struct{}, len(storms))

	for _, s := range storms {
		if _, dup := seenIDs[s.ID]; dup {
			out = append(out, Violation{s.ID, -1, "duplicate storm id"})
		}
		seenIDs[s.ID] = struct{}{}

		if len(s.Track) == 0 {
			out = append(out, Violation{s.ID, -1, "empty track"})
		}
		if s.ObservationCount != len(s.Track) {
			out = append(out, Violation{s.ID, -1,
				fmt.Sprintf("observation_count %d does not match track length %d", s.ObservationCount, len(s.Track))})
		}
		if s.Name == "" {
			out = append(out, Violation{s.ID, -1, "missing name"})
		}

		for i, obs := range s.Track {
			if i > 0 && !s.Track[i-1].Timestamp.Before(obs.Timestamp) {
				out = append(out, Violation{s.ID, i, "timestamp not after previous fix"})
			}
			if obs.Latitude < -90 || obs.Latitude > 90 {
				out = append(out, Violation{s.ID, i, fmt.Sprintf("latitude %.1f out of range", obs.Latitude)})
			}
			if obs.Longitude < -180 || obs.Longitude > 180 {
				out = append(out, Violation{s.ID, i, fmt.Sprintf("longitude %.1f out of range", obs.Longitude)})
			}
			if obs.MaxSustainedWind < 0 || obs.MinCentralPressure < 0 {
				out = append(out, Violation{s.ID, i, "negative wind or pressure"})
			}
		}
	}
	return out
}
