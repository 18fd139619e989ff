package domain

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	ireneArchive = "AL092011,IRENE,2\n" +
		"20110827,1200,L,HU,34.4N,76.5W,75,952\n" +
		"20110828,0000,,HU,35.1N,77.0W,70,958"

	ireneRadiiRow = "20110827, 1200, L, HU, 34.7N,  76.6W,  75,  952,  200,  180,  110,  150,  110,   90,   60,   90,   50,   45,   20,   30,   30"
	missingRadii  = "18510625, 0000,  , HU, 28.0N,  94.8W,  80, -999, -999, -999, -999, -999, -999, -999, -999, -999, -999, -999, -999, -999, -999"
)

func TestParseArchive_Irene(t *testing.T) {
	storms := ParseBestTrack(ireneArchive)

	require.Len(t, storms, 1)
	s := storms[0]
	assert.Equal(t, "AL092011", s.ID)
	assert.Equal(t, "IRENE", s.Name)
	assert.Equal(t, 2011, s.Year)
	assert.Equal(t, 2, s.ObservationCount)
	require.Len(t, s.Track, 2)

	first := s.Track[0]
	assert.Equal(t, FlagLandfall, first.RecordFlag)
	assert.Equal(t, 75, first.MaxSustainedWind)
	assert.Equal(t, 952, first.MinCentralPressure)
	assert.Equal(t, "HU", first.Status)
	assert.Equal(t, "2011-08-27", first.Date)
	assert.Equal(t, "12:00", first.Time)
	assert.Equal(t, time.Date(2011, 8, 27, 12, 0, 0, 0, time.UTC), first.Timestamp)
	assert.InDelta(t, 34.4, first.Latitude, 1e-9)
	assert.InDelta(t, -76.5, first.Longitude, 1e-9)
	assert.Equal(t, "34.4N", first.RawLatitude)
	assert.Equal(t, "76.5W", first.RawLongitude)
	assert.Nil(t, first.WindRadii)
	assert.Nil(t, first.RadiusOfMaxWind)

	second := s.Track[1]
	assert.Equal(t, FlagNone, second.RecordFlag)
	assert.Equal(t, 70, second.MaxSustainedWind)
	assert.Equal(t, 958, second.MinCentralPressure)
}

func TestParseArchive_Radii(t *testing.T) {
	t.Run("populated when any value positive", func(t *testing.T) {
		storms := ParseBestTrack("AL092011, IRENE, 1,\n" + ireneRadiiRow)
		require.Len(t, storms, 1)
		obs := storms[0].Track[0]

		require.NotNil(t, obs.WindRadii)
		assert.Equal(t, QuadrantRadii{NE: 200, SE: 180, SW: 110, NW: 150}, obs.WindRadii.KT34)
		assert.Equal(t, QuadrantRadii{NE: 110, SE: 90, SW: 60, NW: 90}, obs.WindRadii.KT50)
		assert.Equal(t, QuadrantRadii{NE: 50, SE: 45, SW: 20, NW: 30}, obs.WindRadii.KT64)
		require.NotNil(t, obs.RadiusOfMaxWind)
		assert.Equal(t, 30, *obs.RadiusOfMaxWind)
	})

	t.Run("absent when all values missing", func(t *testing.T) {
		storms := ParseBestTrack("AL011851, UNNAMED, 1,\n" + missingRadii)
		require.Len(t, storms, 1)
		obs := storms[0].Track[0]

		assert.Nil(t, obs.WindRadii)
		assert.Nil(t, obs.RadiusOfMaxWind)
		assert.Equal(t, 0, obs.MinCentralPressure)
		assert.Equal(t, 80, obs.MaxSustainedWind)
	})

	t.Run("absent when all zero", func(t *testing.T) {
		row := "20200101, 0000, , TS, 10.0N, 50.0W, 40, 1005" + strings.Repeat(", 0", 12)
		storms := ParseBestTrack("AL012020, ARTHUR, 1,\n" + row)
		require.Len(t, storms, 1)
		assert.Nil(t, storms[0].Track[0].WindRadii)
	})

	t.Run("ignored below twenty fields", func(t *testing.T) {
		row := "20200101, 0000, , TS, 10.0N, 50.0W, 40, 1005, 100, 100, 100"
		storms := ParseBestTrack("AL012020, ARTHUR, 1,\n" + row)
		require.Len(t, storms, 1)
		assert.Nil(t, storms[0].Track[0].WindRadii)
	})
}

func TestParseArchive_SkipsMalformedRows(t *testing.T) {
	input := strings.Join([]string{
		"AL052019, DORIAN, 6,",
		"20190901, 1200, , HU, 26.5N, 76.5W, 160, 914",
		", 1800, , HU, 26.6N, 77.0W, 155, 911",       // no date
		"20190902, 0000, , HU, , 77.2W, 155, 913",    // no latitude
		"20190902, 0600, , HU, 26.7N, , 145, 916",    // no longitude
		"2019090, 1200, , HU, 26.8N, 78.3W, 135, 924", // short date
		"20190903, 0000, , HU, 27.0N, 78.4W, 110, 944",
		"garbage",
	}, "\n")

	storms := ParseBestTrack(input)
	require.Len(t, storms, 1)
	assert.Equal(t, 2, storms[0].ObservationCount)
	assert.Equal(t, "2019-09-01", storms[0].Track[0].Date)
	assert.Equal(t, "2019-09-03", storms[0].Track[1].Date)
}

func TestParseArchive_HeaderHandling(t *testing.T) {
	t.Run("blank name becomes UNNAMED", func(t *testing.T) {
		storms := ParseBestTrack("AL011851, , 1,\n18510625, 0000, , HU, 28.0N, 94.8W, 80, -999")
		require.Len(t, storms, 1)
		assert.Equal(t, "UNNAMED", storms[0].Name)
		assert.Equal(t, 1851, storms[0].Year)
	})

	t.Run("header without rows is dropped", func(t *testing.T) {
		input := "AL012020, ARTHUR, 0,\nAL022020, BERTHA, 1,\n20200527, 1200, , TS, 32.5N, 79.4W, 45, 1005"
		storms := ParseBestTrack(input)
		require.Len(t, storms, 1)
		assert.Equal(t, "AL022020", storms[0].ID)
	})

	t.Run("repeated header does not duplicate storm", func(t *testing.T) {
		input := strings.Join([]string{
			"AL182004, OTTO, 2,",
			"20041230, 0000, , SS, 30.0N, 48.0W, 40, 1000",
			"AL192004, PETER, 1,",
			"20041231, 0000, , TS, 20.0N, 40.0W, 35, 1005",
			"AL182004, OTTO, 2,",
			"20041230, 0000, , SS, 31.0N, 49.0W, 45, 995",
			"20041231, 0000, , TD, 32.0N, 50.0W, 30, 1008",
		}, "\n")

		storms := ParseBestTrack(input)
		require.Len(t, storms, 2)
		assert.Equal(t, "AL182004", storms[0].ID)
		assert.Equal(t, "AL192004", storms[1].ID)

		otto := storms[0]
		require.Equal(t, 2, otto.ObservationCount)
		// First fix for a timestamp wins.
		assert.InDelta(t, 30.0, otto.Track[0].Latitude, 1e-9)
		assert.Equal(t, "TD", otto.Track[1].Status)
	})

	t.Run("lowercase id is recognised and upper-cased", func(t *testing.T) {
		input := "al092011, IRENE, 1,\n20110827, 1200, L, HU, 34.7N, 76.6W, 75, 952\nAL092011, IRENE, 1,\n20110828, 0000, , HU, 35.1N, 77.0W, 70, 958"
		storms := ParseBestTrack(input)
		require.Len(t, storms, 1)
		assert.Equal(t, "AL092011", storms[0].ID)
		assert.Equal(t, 2011, storms[0].Year)
		assert.Equal(t, 2, storms[0].ObservationCount)
	})

	t.Run("data before any header is ignored", func(t *testing.T) {
		input := "20200527, 1200, , TS, 32.5N, 79.4W, 45, 1005\nAL022020, BERTHA, 1,\n20200528, 0000, , TS, 33.5N, 80.4W, 40, 1006"
		storms := ParseBestTrack(input)
		require.Len(t, storms, 1)
		assert.Equal(t, 1, storms[0].ObservationCount)
	})
}

func TestParseArchive_SortsTrack(t *testing.T) {
	input := strings.Join([]string{
		"AL142018, MICHAEL, 3,",
		"20181010, 1800, L, HU, 30.0N, 85.5W, 140, 919",
		"20181010, 0000, , HU, 27.1N, 86.3W, 110, 945",
		"20181010, 1200, I, HU, 29.4N, 85.9W, 135, 920",
	}, "\n")

	storms := ParseBestTrack(input)
	require.Len(t, storms, 1)
	track := storms[0].Track
	require.Len(t, track, 3)
	assert.Equal(t, "00:00", track[0].Time)
	assert.Equal(t, "12:00", track[1].Time)
	assert.Equal(t, FlagPeakIntensity, track[1].RecordFlag)
	assert.Equal(t, "18:00", track[2].Time)
	assert.Equal(t, FlagLandfall, track[2].RecordFlag)
}

func TestParseRecordFlag(t *testing.T) {
	tests := []struct {
		code     string
		expected RecordFlag
	}{
		{"L", FlagLandfall},
		{"l", FlagLandfall},
		{"W", FlagPeakIntensity},
		{"I", FlagPeakIntensity},
		{"P", FlagMinimumPressure},
		{"R", FlagRapidChange},
		{"C", FlagClosestApproach},
		{"G", FlagGenesis},
		{"S", FlagStatusChange},
		{"T", FlagTrackDetail},
		{"", FlagNone},
		{" ", FlagNone},
		{"X", RecordFlag("x")},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseRecordFlag(tt.code))
		})
	}
}
