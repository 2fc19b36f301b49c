package service

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

const dayFormat = "2006-01-02"

// normalizeID parses and validates an identifier coming from transport.
func normalizeID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%s: %w", field, err)
	}
	return id, nil
}

// parseDay parses a date-only value coming from transport.
func parseDay(raw, field string) (time.Time, error) {
	day, err := time.Parse(dayFormat, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return day, nil
}

func formatDay(day time.Time) string {
	return day.Format(dayFormat)
}
