package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationHours(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  float64
	}{
		{"ColonFormat", "1:45", 1.75},
		{"LetterHourMinute", "2h30", 2.5},
		{"HourAndMinuteTokens", "2h 30m", 2.5},
		{"HoursOnly", "3h", 3},
		{"MinutesOnly", "90m", 1.5},
		{"MinutesWord", "90 minutes", 1.5},
		{"BareNumberAsHours", "4", 4},
		{"BareNumberWithMinWord", "45 min", 0.75},
		{"DecimalHours", "1.5h", 1.5},
		{"CommaDecimalSeparator", "1,5h", 1.5},
		{"UppercaseH", "2H15", 2.25},
		{"ZeroMinutes", "2h00", 2},
		{"Empty", "", 0},
		{"Whitespace", "   ", 0},
		{"Garbage", "all afternoon", 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, ParseDurationHours(tc.input), 1e-9)
		})
	}
}

func TestParseDurationHoursNeverNegative(t *testing.T) {
	// Numbers are matched unsigned, so a leading minus is ignored rather
	// than producing a negative duration.
	assert.GreaterOrEqual(t, ParseDurationHours("-2h"), 0.0)
	assert.GreaterOrEqual(t, ParseDurationHours("-90m"), 0.0)
}
