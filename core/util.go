package core

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

var (
	timeLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04",
		"2006-01-02",
	}

	errInvalidTime = errors.New("invalid date/time")
)

// CleanString trims all leading and trailing whitespace in `s` and optionally lowers it.
func CleanString(s string, lower ...bool) string {
	s = strings.TrimSpace(s)
	if len(lower) > 0 && lower[0] {
		return strings.ToLower(s)
	}
	return s
}

// ParseTime parses dates ("2006-01-02"), local date-times ("2006-01-02T15:04[:05]") and
// RFC3339 timestamps. Values without a zone are read as UTC; the result is always UTC.
func ParseTime(s string) (time.Time, error) {
	s = CleanString(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errInvalidTime
}
