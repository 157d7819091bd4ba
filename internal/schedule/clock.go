// Package schedule implements the pure scheduling engine: meeting-time
// parsing, event expansion, pairwise conflict detection, greedy column
// layout and snapshot aggregation. Every function is a side-effect-free
// transformation of its input, so the package is safe to call from any
// goroutine as long as callers do not share mutable input slices.
package schedule

import (
	"strconv"
	"strings"
)

// ParseClock converts a loosely formatted clock string to minutes since
// midnight. Accepted forms: "10:10", "10:10 AM", "2:30PM", "1430"
// (HHMM) and bare hour counts like "14". Empty or unrecognised input
// yields 0, which doubles as the "no real time" sentinel; callers must
// not treat a 0 from blank input as a midnight meeting.
func ParseClock(raw string) int {
	s := strings.ToUpper(strings.TrimSpace(raw))

	isPM := strings.Contains(s, "PM")
	isAM := strings.Contains(s, "AM")
	s = strings.ReplaceAll(s, "AM", "")
	s = strings.ReplaceAll(s, "PM", "")
	s = strings.TrimSpace(s)

	if before, after, found := strings.Cut(s, ":"); found {
		hour := leadingInt(strings.TrimSpace(before))
		minute := leadingInt(strings.TrimSpace(after))

		if isPM && hour != 12 {
			hour += 12
		} else if isAM && hour == 12 {
			hour = 0
		}
		return hour*60 + minute
	}

	if s != "" && isDigits(s) {
		if len(s) == 4 {
			hour, _ := strconv.Atoi(s[:2])
			minute, _ := strconv.Atoi(s[2:])
			return hour*60 + minute
		}
		hour, _ := strconv.Atoi(s)
		return hour * 60
	}

	return 0
}

// leadingInt parses the leading digit run of s, ignoring any trailing
// suffix ("30pm" -> 30). Non-numeric input yields 0.
func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0
	}
	return n
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
