package schedule

import "strings"

// DayOrder is the canonical weekday order used when concatenating
// per-day event buckets.
var DayOrder = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

var dayNames = map[string]string{
	"MO": "Monday",
	"TU": "Tuesday",
	"WE": "Wednesday",
	"TH": "Thursday",
	"FR": "Friday",
	"SA": "Saturday",
	"SU": "Sunday",
}

// twoLetterCodes are matched greedily before the single-letter scan so
// "Tu" is never misread as a stray lone letter. TU/TH/SA/SU come first
// because T and S alone are ambiguous.
var twoLetterCodes = []string{"TU", "TH", "SA", "SU", "MO", "WE", "FR"}

// ParseDays converts a compact day-code string ("MoWeFr", "TuTh",
// "MWF") into full weekday names in discovery order. Empty input or the
// literal "TBA" yields nil. Each weekday appears at most once.
func ParseDays(raw string) []string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "" || s == "TBA" {
		return nil
	}

	var codes []string
	seen := make(map[string]bool, 7)

	for _, code := range twoLetterCodes {
		if strings.Contains(s, code) {
			codes = append(codes, code)
			seen[code] = true
			// Remove the match so the single-letter scan below
			// cannot double-count it.
			s = strings.Replace(s, code, "", 1)
		}
	}

	for i := 0; i < len(s); i++ {
		var code string
		switch s[i] {
		case 'M':
			code = "MO"
		case 'W':
			code = "WE"
		case 'F':
			code = "FR"
		default:
			continue
		}
		if !seen[code] {
			codes = append(codes, code)
			seen[code] = true
		}
	}

	names := make([]string, 0, len(codes))
	for _, code := range codes {
		if name, ok := dayNames[code]; ok {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

// DayCode maps a full weekday name back to its two-letter code, used by
// the calendar exporter for RRULE BYDAY values.
func DayCode(name string) (string, bool) {
	for code, full := range dayNames {
		if full == name {
			return code, true
		}
	}
	return "", false
}
