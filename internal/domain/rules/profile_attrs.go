package rules

import (
	"strconv"
	"strings"
	"time"
)

var birthdateLayouts = []string{
	"2006-01-02",
	"02.01.2006",
	time.RFC3339,
}

// ParseBirthdate accepts the layouts seen in stored birthdate features.
func ParseBirthdate(raw string) (time.Time, bool) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range birthdateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), true
		}
	}
	return time.Time{}, false
}

// AgeAt returns full years elapsed between birthdate and now.
func AgeAt(birthdate, now time.Time) int {
	if birthdate.IsZero() {
		return 0
	}
	now = now.UTC()
	years := now.Year() - birthdate.Year()
	if now.Month() < birthdate.Month() || (now.Month() == birthdate.Month() && now.Day() < birthdate.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// ParseHeightCM reads values like "178 cm". Anything non-numeric yields 0.
func ParseHeightCM(raw string) int {
	value := strings.ToLower(strings.TrimSpace(raw))
	value = strings.TrimSpace(strings.TrimSuffix(value, "cm"))
	value = strings.TrimSpace(strings.TrimSuffix(value, "см"))
	if value == "" {
		return 0
	}
	if n, err := strconv.Atoi(value); err == nil && n > 0 {
		return n
	}
	if f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", "."), 64); err == nil && f > 0 {
		return int(f)
	}
	return 0
}
