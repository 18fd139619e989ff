package domain

import "time"

// RecordFlag marks an observation as a notable lifecycle event.
type RecordFlag string

const (
	FlagNone            RecordFlag = ""
	FlagLandfall        RecordFlag = "landfall"
	FlagPeakIntensity   RecordFlag = "peak_intensity"
	FlagMinimumPressure RecordFlag = "minimum_pressure"
	FlagRapidChange     RecordFlag = "rapid_change"
	FlagClosestApproach RecordFlag = "closest_approach"
	FlagGenesis         RecordFlag = "genesis"
	FlagStatusChange    RecordFlag = "status_change"
	FlagTrackDetail     RecordFlag = "track_detail"
)

// QuadrantRadii holds the extent of a wind threshold per compass quadrant, in
// nautical miles.
type QuadrantRadii struct {
	NE int `json:"ne"`
	SE int `json:"se"`
	SW int `json:"sw"`
	NW int `json:"nw"`
}

func (q QuadrantRadii) any() bool {
	return q.NE > 0 || q.SE > 0 || q.SW > 0 || q.NW > 0
}

// WindRadii groups the quadrant extents for the 34, 50 and 64 kt thresholds.
type WindRadii struct {
	KT34 QuadrantRadii `json:"kt34"`
	KT50 QuadrantRadii `json:"kt50"`
	KT64 QuadrantRadii `json:"kt64"`
}

// HasData reports whether any quadrant of any threshold is positive.
func (w WindRadii) HasData() bool {
	return w.KT34.any() || w.KT50.any() || w.KT64.any()
}

// threshold returns the slot for a wind code of 34, 50 or 64, or nil.
func (w *WindRadii) threshold(code int) *QuadrantRadii {
	switch code {
	case 34:
		return &w.KT34
	case 50:
		return &w.KT50
	case 64:
		return &w.KT64
	default:
		return nil
	}
}

// Observation is a single synoptic fix of a storm.
type Observation struct {
	Date               string     `json:"date"` // YYYY-MM-DD, UTC
	Time               string     `json:"time"` // HH:MM, UTC
	Timestamp          time.Time  `json:"timestamp"`
	RecordFlag         RecordFlag `json:"record_flag,omitempty"`
	Status             string     `json:"status"`
	Latitude           float64    `json:"latitude"`
	Longitude          float64    `json:"longitude"`
	RawLatitude        string     `json:"raw_latitude"`
	RawLongitude       string     `json:"raw_longitude"`
	MaxSustainedWind   int        `json:"max_sustained_wind"`   // knots
	MinCentralPressure int        `json:"min_central_pressure"` // millibars, 0 = unknown
	WindRadii          *WindRadii `json:"wind_radii,omitempty"`
	RadiusOfMaxWind    *int       `json:"radius_of_max_wind,omitempty"` // nautical miles
}

// Storm is one cyclone lifecycle. ID combines basin, cyclone number and
// season year, e.g. "AL092011".
type Storm struct {
	ID               string        `json:"id"`
	Name             string        `json:"name"`
	Year             int           `json:"year"`
	ObservationCount int           `json:"observation_count"`
	Track            []Observation `json:"track"`
}

// Start returns the timestamp of the first fix, or zero time for an empty track.
func (s Storm) Start() time.Time {
	if len(s.Track) == 0 {
		return time.Time{}
	}
	return s.Track[0].Timestamp
}

// End returns the timestamp of the last fix, or zero time for an empty track.
func (s Storm) End() time.Time {
	if len(s.Track) == 0 {
		return time.Time{}
	}
	return s.Track[len(s.Track)-1].Timestamp
}

// PeakWind returns the highest sustained wind in the track.
func (s Storm) PeakWind() int {
	peak := 0
	for _, obs := range s.Track {
		if obs.MaxSustainedWind > peak {
			peak = obs.MaxSustainedWind
		}
	}
	return peak
}
