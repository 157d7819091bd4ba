package schedule

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseClock(t *testing.T) {
	cases := []struct {
		in   string
		want int
	}{
		{"10:10 AM", 610},
		{"1:00 PM", 780},
		{"9:30", 570},
		{"14:30", 870},
		{"2:30PM", 870},
		{"12:00 AM", 0},
		{"12:00 PM", 720},
		{"12:30 am", 30},
		{"1010", 610},
		{"0905", 545},
		{"9", 540},
		{"  8:05 pm ", 1205},
		{"", 0},
		{"TBA", 0},
		{"noon", 0},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, ParseClock(tc.in), "input %q", tc.in)
	}
}

func TestParseClockLenientMinuteToken(t *testing.T) {
	// Minute is the leading digit run after the colon; trailing
	// garbage is discarded and unparsable tokens default to 0.
	assert.Equal(t, 630, ParseClock("10:30xyz"))
	assert.Equal(t, 600, ParseClock("10:xx"))
	assert.Equal(t, 30, ParseClock(":30")) // empty hour token -> 0
}
