// Package geojson renders parsed storms as GeoJSON feature collections.
package geojson

import (
	"fmt"
	"time"

	"github.com/couchcryptid/storm-data-besttrack/internal/domain"
	gj "github.com/paulmach/go.geojson"
)

// Feature kinds, exposed as the "kind" property so consumers can filter the
// track line from the individual fixes.
const (
	KindTrack       = "track"
	KindObservation = "observation"
)

// StormFeatureCollection builds one LineString feature for the storm track,
// when the track has at least two fixes, followed by one Point feature per
// observation in track order. Coordinates are [lon, lat].
func StormFeatureCollection(storm domain.Storm) *gj.FeatureCollection {
	fc := gj.NewFeatureCollection()

	if len(storm.Track) >= 2 {
		line := make([][]float64, 0, len(storm.Track))
		for _, obs := range storm.Track {
			line = append(line, position(obs))
		}
		f := gj.NewLineStringFeature(line)
		f.ID = storm.ID
		f.SetProperty("kind", KindTrack)
		f.SetProperty("id", storm.ID)
		f.SetProperty("name", storm.Name)
		f.SetProperty("year", storm.Year)
		f.SetProperty("observation_count", storm.ObservationCount)
		f.SetProperty("peak_wind", storm.PeakWind())
		f.SetProperty("start", storm.Start().Format(time.RFC3339))
		f.SetProperty("end", storm.End().Format(time.RFC3339))
		fc.AddFeature(f)
	}

	for i, obs := range storm.Track {
		f := gj.NewPointFeature(position(obs))
		f.ID = fmt.Sprintf("%s-%d", storm.ID, i)
		f.SetProperty("kind", KindObservation)
		f.SetProperty("storm_id", storm.ID)
		f.SetProperty("timestamp", obs.Timestamp.Format(time.RFC3339))
		f.SetProperty("status", obs.Status)
		f.SetProperty("wind", obs.MaxSustainedWind)
		f.SetProperty("pressure", obs.MinCentralPressure)
		if obs.RecordFlag != domain.FlagNone {
			f.SetProperty("record_flag", string(obs.RecordFlag))
		}
		if obs.WindRadii != nil {
			f.SetProperty("wind_radii", obs.WindRadii)
		}
		if obs.RadiusOfMaxWind != nil {
			f.SetProperty("radius_of_max_wind", *obs.RadiusOfMaxWind)
		}
		fc.AddFeature(f)
	}

	return fc
}

// StormsFeatureCollection merges the feature collections of several storms,
// preserving storm order.
func StormsFeatureCollection(storms []domain.Storm) *gj.FeatureCollection {
	fc := gj.NewFeatureCollection()
	for _, storm := range storms {
		fc.Features = append(fc.Features, StormFeatureCollection(storm).Features...)
	}
	return fc
}

// EncodeStorm marshals the storm's feature collection.
func EncodeStorm(storm domain.Storm) ([]byte, error) {
	data, err := StormFeatureCollection(storm).MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("encode storm %s as geojson: %w", storm.ID, err)
	}
	return data, nil
}

func position(obs domain.Observation) []float64 {
	return []float64{obs.Longitude, obs.Latitude}
}
