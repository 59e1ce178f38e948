// Package controller contains the gin HTTP handlers.
package controller

import (
	"fmt"
	"time"
)

// parseDate accepts a plain calendar date or a full RFC 3339 timestamp and
// normalizes the result to UTC.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", value)
}

// parseDateRange parses the from/to pair of a range query.
func parseDateRange(from, to string) (time.Time, time.Time, error) {
	fromTime, err := parseDate(from)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 'from': %w", err)
	}
	toTime, err := parseDate(to)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid 'to': %w", err)
	}
	return fromTime, toTime, nil
}
