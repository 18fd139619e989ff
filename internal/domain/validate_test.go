package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStorms_ParsedOutputIsClean(t *testing.T) {
	storms := ParseBestTrack(ireneArchive)
	require.NotEmpty(t, storms)
	assert.Empty(t, ValidateStorms(storms))

	storms = ParseBestTrack(bdeck(ireneRow("2011082100"), ireneRow("2011082106")))
	assert.Empty(t, ValidateStorms(storms))
}

func TestValidateStorms_Violations(t *testing.T) {
	t0 := time.Date(2011, 8, 27, 12, 0, 0, 0, time.UTC)
	storms := []Storm{
		{
			ID: "AL092011", Name: "IRENE", ObservationCount: 3,
			Track: []Observation{
				{Timestamp: t0, Latitude: 34.7, Longitude: -76.6},
				{Timestamp: t0, Latitude: 95, Longitude: -76.6},
			},
		},
		{ID: "AL092011", Name: "", ObservationCount: 0},
	}

	violations := ValidateStorms(storms)

	var messages []string
	for _, v := range violations {
		messages = append(messages, v.String())
	}
	assert.ElementsMatch(t, []string{
		"AL092011: observation_count 3 does not match track length 2",
		"AL092011[1]: timestamp not after previous fix",
		"AL092011[1]: latitude 95.0 out of range",
		"AL092011: duplicate storm id",
		"AL092011: empty track",
		"AL092011: missing name",
	}, messages)
}
