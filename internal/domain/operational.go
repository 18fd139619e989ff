package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Operational (ATCF b-deck) column layout. Offsets are positional contracts;
// the format has no header row.
const (
	opBasin        = 0
	opNumber       = 1
	opDateTime     = 2
	opLat          = 6
	opLon          = 7
	opWind         = 8
	opPressure     = 9
	opStatus       = 10
	opWindCode     = 11
	opQuadrantCode = 12
	opRadiusNE     = 13
	opRadiusSE     = 14
	opRadiusSW     = 15
	opRadiusNW     = 16
	opRMW          = 19
	opNameSecond   = 26
	opNamePrimary  = 27

	opMinFields     = 2
	opDateTimeWidth = 10

	// fullCircle marks a threshold given as a single radius for all quadrants.
	fullCircle = "AAA"
)

// opGroup collects the rows of one basin+number key in input order.
type opGroup struct {
	key    string
	number string
	rows   [][]string
}

// parseOperational groups rows by basin and cyclone number, resolves each
// group's season year and name, then merges rows that share a timestamp into
// a single observation.
func parseOperational(lines []string) []Storm {
	var order []string
	groups := make(map[string]*opGroup)

	for _, line := range lines {
		fields := splitFields(line)
		if len(fields) < opMinFields {
			continue
		}
		basin := strings.ToUpper(fields[opBasin])
		number := padNumber(fields[opNumber])
		if basin == "" || number == "" {
			continue
		}

		key := basin + number
		g, ok := groups[key]
		if !ok {
			g = &opGroup{key: key, number: number}
			groups[key] = g
			order = append(order, key)
		}
		g.rows = append(g.rows, fields)
	}

	storms := make([]Storm, 0, len(order))
	for _, key := range order {
		if s, ok := groups[key].build(); ok {
			storms = append(storms, s)
		}
	}
	return storms
}

// build runs identity resolution and observation merging for one group. It
// reports false when the group has no valid date or no usable fix.
func (g *opGroup) build() (Storm, bool) {
	year, ok := g.seasonYear()
	if !ok {
		return Storm{}, false
	}

	var order []time.Time
	fixes := make(map[time.Time]*Observation)

	for _, fields := range g.rows {
		ts, display, ok := opTimestamp(field(fields, opDateTime))
		if !ok {
			continue
		}

		obs, exists := fixes[ts]
		if !exists {
			rawLat := field(fields, opLat)
			rawLon := field(fields, opLon)
			if rawLat == "" || rawLon == "" {
				continue
			}
			obs = &Observation{
				Date:               display,
				Time:               ts.Format("15:04"),
				Timestamp:          ts,
				Status:             field(fields, opStatus),
				Latitude:           ParseCoordinate(rawLat),
				Longitude:          ParseCoordinate(rawLon),
				RawLatitude:        rawLat,
				RawLongitude:       rawLon,
				MaxSustainedWind:   parseNonNegative(field(fields, opWind)),
				MinCentralPressure: parseNonNegative(field(fields, opPressure)),
				WindRadii:          &WindRadii{},
			}
			fixes[ts] = obs
			order = append(order, ts)
		}
		mergeStructure(obs, fields)
	}

	if len(order) == 0 {
		return Storm{}, false
	}

	track := make([]Observation, 0, len(order))
	for _, ts := range order {
		track = append(track, *fixes[ts])
	}
	sortTrack(track)

	name := g.resolveName()
	if name == "" {
		name = placeholderName(g.number)
	}

	return Storm{
		ID:               g.key + strconv.Itoa(year),
		Name:             name,
		Year:             year,
		ObservationCount: len(track),
		Track:            track,
	}, true
}

// seasonYear returns the year of the first row carrying a well-formed
// YYYYMMDDHH date.
func (g *opGroup) seasonYear() (int, bool) {
	for _, fields := range g.rows {
		if ts, _, ok := opTimestamp(field(fields, opDateTime)); ok {
			return ts.Year(), true
		}
	}
	return 0, false
}

// resolveName scans the primary name column for a real name, falling back to
// the secondary column only when the primary never yields one. Later real
// names replace earlier ones; placeholders never replace anything.
func (g *opGroup) resolveName() string {
	if name := g.scanName(opNamePrimary); name != "" {
		return name
	}
	return g.scanName(opNameSecond)
}

func (g *opGroup) scanName(col int) string {
	name := ""
	for _, fields := range g.rows {
		candidate := strings.ToUpper(field(fields, col))
		if candidate == "" || isNumeric(candidate) || IsGenericPlaceholder(candidate) {
			continue
		}
		name = candidate
	}
	return name
}

// mergeStructure folds a row's wind-threshold radii and radius of maximum
// wind into obs. Only positive values are written, so radii contributed by
// an earlier row for the same timestamp survive.
func mergeStructure(obs *Observation, fields []string) {
	if obs.WindRadii == nil {
		obs.WindRadii = &WindRadii{}
	}

	if slot := obs.WindRadii.threshold(parseIntOrZero(field(fields, opWindCode))); slot != nil {
		q := QuadrantRadii{
			NE: parseNonNegative(field(fields, opRadiusNE)),
			SE: parseNonNegative(field(fields, opRadiusSE)),
			SW: parseNonNegative(field(fields, opRadiusSW)),
			NW: parseNonNegative(field(fields, opRadiusNW)),
		}
		if strings.EqualFold(field(fields, opQuadrantCode), fullCircle) {
			q = QuadrantRadii{NE: q.NE, SE: q.NE, SW: q.NE, NW: q.NE}
		}
		mergeQuadrants(slot, q)
	}

	if rmw := parseNonNegative(field(fields, opRMW)); rmw > 0 {
		obs.RadiusOfMaxWind = &rmw
	}
}

func mergeQuadrants(dst *QuadrantRadii, src QuadrantRadii) {
	if src.NE > 0 {
		dst.NE = src.NE
	}
	if src.SE > 0 {
		dst.SE = src.SE
	}
	if src.SW > 0 {
		dst.SW = src.SW
	}
	if src.NW > 0 {
		dst.NW = src.NW
	}
}

// opTimestamp parses a YYYYMMDDHH field into a UTC instant. Unlike the
// archive time column, an out-of-range hour rejects the row.
func opTimestamp(dt string) (time.Time, string, bool) {
	if !isDigits(dt, opDateTimeWidth) {
		return time.Time{}, "", false
	}
	ts, err := time.Parse("2006010215", dt)
	if err != nil {
		return time.Time{}, "", false
	}
	return ts.UTC(), ts.Format(time.DateOnly), true
}

// padNumber zero-pads a numeric cyclone number to two digits. Non-numeric
// values are returned upper-cased.
func padNumber(s string) string {
	s = strings.TrimSpace(s)
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return strings.ToUpper(s)
	}
	return fmt.Sprintf("%02d", n)
}

func isDigits(s string, width int) bool {
	if len(s) != width {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isNumeric(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
