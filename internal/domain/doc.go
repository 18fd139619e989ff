// Package domain models tropical cyclone best-track data and normalises the
// text formats it is published in.
//
// # Data Sources
//
// Best tracks arrive as plain text files in one of two grammars. The format
// is detected once per file from its first non-empty line; see [DetectFormat].
//
// Archive format (HURDAT2 style), a header followed by data rows:
//
//	AL092011,              IRENE,     39,
//	20110827, 1200, L, HU, 34.7N,  76.6W,  75,  952,  200,  180, ...
//
//	Header: storm id (basin + number + year), name, row count.
//	Data:   date, time, record flag, status, lat, lon, wind (kt), pressure (mb),
//	        optional 34/50/64 kt radii (NE, SE, SW, NW) and radius of max wind.
//
// Operational format (ATCF b-deck), one flat row per fix and wind threshold:
//
//	AL, 09, 2011082100,   , BEST,   0, 150N,  598W,  45, 1006, TS,  34, NEQ,  105, 0, 0, 45, ...
//
//	Several rows share a timestamp, one per wind threshold (34, 50, 64 kt),
//	and are merged into a single observation. The season year and storm name
//	are resolved once per basin+number group.
//
// # Conventions
//
// Coordinates:
//
//	"34.7N"  decimal degrees with hemisphere suffix
//	"150N"   tenths of a degree when the suffix has no decimal point (15.0°N)
//	South and west are negative.
//
// Unknown values:
//
//	-999 is the source sentinel for a missing value. Pressure and radii
//	normalise it to 0. Unparseable numbers are 0.
//
// Names:
//
//	Sources fill the name column with placeholders (INVEST, NINE, TC, ...)
//	until a storm is named. [IsGenericPlaceholder] filters these; a storm
//	that never receives a real name is called "STORM <nn>".
//
// # Purity
//
// [ParseBestTrack] is a pure function of its input. It keeps no state
// between calls and is safe for concurrent use.
package domain
