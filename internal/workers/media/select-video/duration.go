// internal/workers/media/select-video/duration.go
package selectvideo

import (
	"regexp"
	"strconv"
)

var durationPattern = regexp.MustCompile(`PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?`)

// ParseISODuration converts an ISO 8601 duration token like "PT1H30M" to
// total seconds. Missing components default to 0. Empty or unparseable input
// yields 0; this never fails.
func ParseISODuration(duration string) int {
	if duration == "" {
		return 0
	}

	match := durationPattern.FindStringSubmatch(duration)
	if match == nil {
		return 0
	}

	hours := atoiOrZero(match[1])
	minutes := atoiOrZero(match[2])
	seconds := atoiOrZero(match[3])

	return hours*3600 + minutes*60 + seconds
}

func atoiOrZero(s string) int {
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
