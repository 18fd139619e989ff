package domain

import (
	"regexp"
	"strconv"
	"strings"
)

// Archive (HURDAT2-style) column layout.
//
// Header:   BASINNNYYYY, NAME, COUNT
// Data row: YYYYMMDD, HHMM, FLAG, STATUS, LAT, LON, WIND, PRESSURE,
//
//	34kt NE,SE,SW,NW, 50kt NE,SE,SW,NW, 64kt NE,SE,SW,NW, RMW
const (
	archiveHeaderID   = 0
	archiveHeaderName = 1

	// archiveHeaderMaxFields separates a header (3-4 fields) from a data row
	// (always at least 10).
	archiveHeaderMaxFields = 10
	archiveYearOffset      = 4

	archiveDate     = 0
	archiveTime     = 1
	archiveFlag     = 2
	archiveStatus   = 3
	archiveLat      = 4
	archiveLon      = 5
	archiveWind     = 6
	archivePressure = 7

	archiveMinDataFields = 4
	archiveRadii34       = 8
	archiveRadii50       = 12
	archiveRadii64       = 16
	archiveMinRadiiCols  = 20
	archiveRMW           = 20
)

// archiveHeaderIDRe matches a storm id such as "AL092011".
var archiveHeaderIDRe = regexp.MustCompile(`^[A-Za-z]{2}\d{6}$`)

// archiveFlags maps single-letter record identifiers to RecordFlag values.
var archiveFlags = map[string]RecordFlag{
	"L": FlagLandfall,
	"W": FlagPeakIntensity,
	"I": FlagPeakIntensity,
	"P": FlagMinimumPressure,
	"R": FlagRapidChange,
	"C": FlagClosestApproach,
	"G": FlagGenesis,
	"S": FlagStatusChange,
	"T": FlagTrackDetail,
}

// parseArchive builds one Storm per distinct header id. The first header for
// an id creates the storm; a repeated header only moves the cursor back to it.
func parseArchive(lines []string) []Storm {
	b := newTrackBuilder()
	cursor := ""

	for _, line := range lines {
		fields := splitFields(line)

		if isArchiveHeader(fields) {
			id := strings.ToUpper(fields[archiveHeaderID])
			cursor = id
			if !b.has(id) {
				name := field(fields, archiveHeaderName)
				if name == "" {
					name = "UNNAMED"
				}
				year, _ := strconv.Atoi(id[archiveYearOffset : archiveYearOffset+4])
				b.open(id, name, year)
			}
			continue
		}

		if cursor == "" || len(fields) < archiveMinDataFields {
			continue
		}
		obs, ok := archiveObservation(fields)
		if !ok {
			continue
		}
		b.add(cursor, obs)
	}

	return b.finish()
}

func isArchiveHeader(fields []string) bool {
	return len(fields) < archiveHeaderMaxFields &&
		archiveHeaderIDRe.MatchString(field(fields, archiveHeaderID))
}

// archiveObservation extracts one fix from a data row. It reports false when
// the row lacks a date, a coordinate, or a parseable timestamp.
func archiveObservation(fields []string) (Observation, bool) {
	date := field(fields, archiveDate)
	rawLat := field(fields, archiveLat)
	rawLon := field(fields, archiveLon)
	if date == "" || rawLat == "" || rawLon == "" {
		return Observation{}, false
	}

	ts, display := ParseDateTime(date, field(fields, archiveTime))
	if ts.IsZero() {
		return Observation{}, false
	}

	obs := Observation{
		Date:               display,
		Time:               ts.Format("15:04"),
		Timestamp:          ts,
		RecordFlag:         parseRecordFlag(field(fields, archiveFlag)),
		Status:             field(fields, archiveStatus),
		Latitude:           ParseCoordinate(rawLat),
		Longitude:          ParseCoordinate(rawLon),
		RawLatitude:        rawLat,
		RawLongitude:       rawLon,
		MaxSustainedWind:   parseNonNegative(field(fields, archiveWind)),
		MinCentralPressure: parseNonNegative(field(fields, archivePressure)),
	}

	if len(fields) >= archiveMinRadiiCols {
		radii := WindRadii{
			KT34: archiveQuadrants(fields, archiveRadii34),
			KT50: archiveQuadrants(fields, archiveRadii50),
			KT64: archiveQuadrants(fields, archiveRadii64),
		}
		// All-zero radii stay absent; consumers key off presence.
		if radii.HasData() {
			obs.WindRadii = &radii
		}
		if rmw := parseNonNegative(field(fields, archiveRMW)); rmw > 0 {
			obs.RadiusOfMaxWind = &rmw
		}
	}

	return obs, true
}

func archiveQuadrants(fields []string, start int) QuadrantRadii {
	return QuadrantRadii{
		NE: parseNonNegative(field(fields, start)),
		SE: parseNonNegative(field(fields, start+1)),
		SW: parseNonNegative(field(fields, start+2)),
		NW: parseNonNegative(field(fields, start+3)),
	}
}

// parseRecordFlag maps a record identifier to a RecordFlag. Unknown non-empty
// codes are kept lower-cased.
func parseRecordFlag(code string) RecordFlag {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return FlagNone
	}
	if flag, ok := archiveFlags[code]; ok {
		return flag
	}
	return RecordFlag(strings.ToLower(code))
}
