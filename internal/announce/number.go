package announce

import (
	"strconv"
	"strings"
)

// NumberParts is a station number split for speech.
type NumberParts struct {
	Symbol string
	Number string
}

// ParseStationNumber splits a raw code on "-". "K-01" -> K / 01,
// "K-01-2" -> K / 1-2, "12" -> "" / 12. ok is false for an empty code.
func ParseStationNumber(code string) (NumberParts, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return NumberParts{}, false
	}
	seg := strings.Split(code, "-")
	switch len(seg) {
	case 1:
		return NumberParts{Number: seg[0]}, true
	case 2:
		return NumberParts{Symbol: seg[0], Number: seg[1]}, true
	default:
		major := seg[1]
		if n, err := strconv.Atoi(major); err == nil {
			major = strconv.Itoa(n)
		}
		return NumberParts{Symbol: seg[0], Number: major + "-" + strings.Join(seg[2:], "-")}, true
	}
}

// NumberPhrase renders a code for English speech. A bare number gets the
// "Station Number" prefix unless suppressed. An empty code renders as "".
func NumberPhrase(code string, prefix bool) string {
	p, ok := ParseStationNumber(code)
	if !ok || p.Number == "" {
		return ""
	}
	if p.Symbol == "" {
		if prefix {
			return "Station Number " + p.Number
		}
		return p.Number
	}
	return p.Symbol + " " + p.Number
}
