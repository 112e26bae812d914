package service

import (
	"regexp"
	"strconv"
	"time"

	"betreport/models"
)

const (
	// DateLayout is the accepted date input, e.g. 2024-01-31
	DateLayout = "2006-01-02"
	// ClockLayout is the accepted time-of-day input, 24-hour and zero-padded
	ClockLayout = "15:04"

	DefaultStartClock = "00:00"
	DefaultEndClock   = "23:59"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):([0-5][0-9])$`)

// ParseClock parses an HH:MM time of day
func ParseClock(field, value string) (hour, minute int, err error) {
	m := clockPattern.FindStringSubmatch(value)
	if m == nil {
		return 0, 0, &InvalidTimeFormatError{Field: field, Value: value}
	}
	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	return hour, minute, nil
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc
func ParseDate(field, value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	d, err := time.ParseInLocation(DateLayout, value, loc)
	if err != nil {
		return time.Time{}, &InvalidTimeFormatError{Field: field, Value: value}
	}
	return d, nil
}

// CombineDateClock builds the instant for a date and an HH:MM clock in loc
func CombineDateClock(dateField, date, clockField, clock string, loc *time.Location) (time.Time, error) {
	day, err := ParseDate(dateField, date, loc)
	if err != nil {
		return time.Time{}, err
	}
	hour, minute, err := ParseClock(clockField, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location()), nil
}

// NewTimeWindow composes a window from user-entered dates and clocks.
// Empty clocks default to 00:00 for the start and 23:59 for the end.
// Start after end is not an error.
func NewTimeWindow(startDate, startClock, endDate, endClock string, loc *time.Location) (models.TimeWindow, error) {
	if startClock == "" {
		startClock = DefaultStartClock
	}
	if endClock == "" {
		endClock = DefaultEndClock
	}

	start, err := CombineDateClock("start date", startDate, "start time", startClock, loc)
	if err != nil {
		return models.TimeWindow{}, err
	}
	end, err := CombineDateClock("end date", endDate, "end time", endClock, loc)
	if err != nil {
		return models.TimeWindow{}, err
	}

	return models.TimeWindow{Start: start, End: end}, nil
}

// FilterWindow returns the records created within w, both ends inclusive, in input order
func FilterWindow(records []models.WagerRecord, w models.TimeWindow) []models.WagerRecord {
	filtered := make([]models.WagerRecord, 0, len(records))
	if w.IsInverted() {
		return filtered
	}
	for _, record := range records {
		if record.InWindow(w) {
			filtered = append(filtered, record)
		}
	}
	return filtered
}
