package domain

import (
	"regexp"
	"strings"
)

var (
	// genericNames are tokens sources use in the name column before a storm
	// is named, including the cardinal numbers ONE through TWENTY.
	genericNames = map[string]struct{}{
		"UNNAMED": {}, "TC": {}, "TWO": {}, "LOW": {}, "BEST": {}, "NONAME": {},
		"ONE": {}, "THREE": {}, "FOUR": {}, "FIVE": {}, "SIX": {}, "SEVEN": {},
		"EIGHT": {}, "NINE": {}, "TEN": {}, "ELEVEN": {}, "TWELVE": {},
		"THIRTEEN": {}, "FOURTEEN": {}, "FIFTEEN": {}, "SIXTEEN": {},
		"SEVENTEEN": {}, "EIGHTEEN": {}, "NINETEEN": {}, "TWENTY": {},
	}

	genericPrefixes = []string{"INVEST", "GENESIS", "SUBTROP"}

	// numberedStormRe matches "STORM 09", "STORM9" and similar.
	numberedStormRe = regexp.MustCompile(`^STORM\s*\d+$`)
)

// IsGenericPlaceholder reports whether name is a placeholder rather than a
// real storm name. A generic candidate never replaces a storm's name.
func IsGenericPlaceholder(name string) bool {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return true
	}
	if _, ok := genericNames[name]; ok {
		return true
	}
	for _, prefix := range genericPrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return numberedStormRe.MatchString(name)
}

// placeholderName is the deterministic name given to a storm whose source
// never carried a real one.
func placeholderName(number string) string {
	return "STORM " + number
}
