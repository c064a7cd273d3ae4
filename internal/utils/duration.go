package utils

import (
	"regexp"
	"strconv"
	"strings"
)

// Event durations are stored as free text entered by organizations
// ("2h30", "1:45", "90m", "1.5 hours"). ParseDurationHours converts them
// into fractional hours for statistics.

var (
	// "H:MM" or "HhMM" — hours, separator, one or two minute digits.
	hourMinutePattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[:hH]\s*(\d{1,2})\b`)
	hoursPattern      = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[hH]`)
	minutesPattern    = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*[mM]`)
	numberPattern     = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ParseDurationHours returns the duration expressed in fractional hours.
// Unparseable, empty or nil-ish input yields 0; the result is never negative.
// Commas are accepted as decimal separators.
func ParseDurationHours(raw string) float64 {
	s := strings.TrimSpace(strings.ReplaceAll(raw, ",", "."))
	if s == "" {
		return 0
	}

	if m := hourMinutePattern.FindStringSubmatch(s); m != nil {
		return clampNonNegative(parseNumber(m[1]) + parseNumber(m[2])/60)
	}

	total := 0.0
	matched := false
	if m := hoursPattern.FindStringSubmatch(s); m != nil {
		total += parseNumber(m[1])
		matched = true
	}
	if m := minutesPattern.FindStringSubmatch(s); m != nil {
		total += parseNumber(m[1]) / 60
		matched = true
	}
	if matched {
		return clampNonNegative(total)
	}

	// Fall back to the first bare number; "min" anywhere means minutes.
	if m := numberPattern.FindString(s); m != "" {
		n := parseNumber(m)
		if strings.Contains(strings.ToLower(s), "min") {
			return clampNonNegative(n / 60)
		}
		return clampNonNegative(n)
	}

	return 0
}

func parseNumber(s string) float64 {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return n
}

func clampNonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
