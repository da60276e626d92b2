package session

import (
	"regexp"
	"strconv"
	"strings"
)

var integerPattern = regexp.MustCompile(`^[0-9]+$`)

// CoerceResult describes how a numeric input was interpreted.
type CoerceResult int

const (
	// CoerceAccepted means the input was a valid integer within the ceiling.
	CoerceAccepted CoerceResult = iota
	// CoerceFallback means the input was non-numeric or non-positive and
	// was replaced with the fallback value.
	CoerceFallback
	// CoerceClamped means the input exceeded the ceiling and was clamped.
	CoerceClamped
)

// CoerceMinutes applies the uniform duration validation policy: inputs
// are never rejected. A non-numeric or non-positive input becomes the
// fallback; a value above the ceiling is clamped to the ceiling.
func CoerceMinutes(input string, fallback, ceiling int) (int, CoerceResult) {
	trimmed := strings.TrimSpace(input)

	if !integerPattern.MatchString(trimmed) {
		return fallback, CoerceFallback
	}

	n, err := strconv.Atoi(trimmed)
	if err != nil || n <= 0 {
		return fallback, CoerceFallback
	}

	if n > ceiling {
		return ceiling, CoerceClamped
	}
	return n, CoerceAccepted
}

// SplitSites parses a comma-separated site list, trimming whitespace and
// dropping empty entries. Order is preserved for logging.
func SplitSites(input string) []string {
	var sites []string
	for _, part := range strings.Split(input, ",") {
		site := strings.TrimSpace(part)
		if site == "" {
			continue
		}
		sites = append(sites, site)
	}
	return sites
}
