package service

import (
	"time"

	"wolves-hub/internal/domain"
	"wolves-hub/pkg/errors"
)

// parseDate parses a YYYY-MM-DD training date
func parseDate(value string) (time.Time, error) {
	day, err := time.Parse(domain.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.NewValidationError("Invalid date", map[string]interface{}{
			"date": "must use the YYYY-MM-DD format",
		})
	}
	return day, nil
}

// today returns the current UTC calendar day
func today(now func() time.Time) time.Time {
	t := now().UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
