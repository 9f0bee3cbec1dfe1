package domain

import (
	"strings"
	"time"
)

// millisecond epochs are disambiguated from second epochs by magnitude
const epochMillisThreshold = 1e12

// ParseTimestamp decodes a raw timestamp value from a decoded JSON record.
// Accepted forms: an ISO-8601 string (a trailing "Z" is treated as "+00:00",
// fractional seconds optional) or a numeric epoch, where values above 1e12
// are interpreted as milliseconds. The second return is false when the value
// cannot be parsed.
func ParseTimestamp(raw any) (float64, bool) {
	switch v := raw.(type) {
	case string:
		return parseISO(v)
	case float64:
		return scaleEpoch(v), true
	case int:
		return scaleEpoch(float64(v)), true
	case int64:
		return scaleEpoch(float64(v)), true
	default:
		return 0, false
	}
}

func scaleEpoch(ts float64) float64 {
	if ts > epochMillisThreshold {
		return ts / 1000.0
	}
	return ts
}

func parseISO(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	if strings.HasSuffix(s, "Z") {
		s = strings.TrimSuffix(s, "Z") + "+00:00"
	}
	for _, layout := range []string{
		"2006-01-02T15:04:05.999999999-07:00",
		"2006-01-02T15:04:05-07:00",
	} {
		if t, err := time.Parse(layout, s); err == nil {
			return float64(t.UnixNano()) / 1e9, true
		}
	}
	// No offset at all: treat as UTC.
	if t, err := time.Parse("2006-01-02T15:04:05.999999999", s); err == nil {
		return float64(t.UnixNano()) / 1e9, true
	}
	return 0, false
}
