package usecases

import (
	"strings"
	"time"

	"github.com/volatiletech/null/v8"
	domainerrors "trackify.backend/internal/domain/errors"
)

// parseApplicationDate accepts a calendar date or a full RFC3339 timestamp.
// An empty value yields fallback.
func parseApplicationDate(value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	if t, err := time.Parse(applicationDateLayout, value); err == nil {
		return t.UTC(), nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, domainerrors.ErrInvalidInput
	}
	return t.UTC(), nil
}

// optionalText maps an empty or blank value to null
func optionalText(value string) null.String {
	value = strings.TrimSpace(value)
	if value == "" {
		return null.String{}
	}
	return null.StringFrom(value)
}

func normalizeEmail(email string) string {
	return strings.TrimSpace(email)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			return true
		}
	}
	return false
}
