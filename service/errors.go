package service

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSchema is matched by every *SchemaError
	ErrSchema = errors.New("ledger is missing required columns")
	// ErrInvalidTimeFormat is matched by every *InvalidTimeFormatError
	ErrInvalidTimeFormat = errors.New("invalid time format")
	// ErrEmptyResult is informational: the window matched no wagers
	ErrEmptyResult = errors.New("no wagers found for the selected period")
	// ErrLedgerTooLarge is returned when a ledger exceeds the configured row limit
	ErrLedgerTooLarge = errors.New("ledger has too many rows")
)

// SchemaError reports the required columns absent from a ledger header
type SchemaError struct {
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("%s: %s", ErrSchema.Error(), strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Is(target error) bool {
	return target == ErrSchema
}

// InvalidTimeFormatError reports a date or time-of-day input that could not be parsed
type InvalidTimeFormatError struct {
	Field string
	Value string
}

func (e *InvalidTimeFormatError) Error() string {
	return fmt.Sprintf("%s: %s %q (expected %s)", ErrInvalidTimeFormat.Error(), e.Field, e.Value, expectedFormat(e.Field))
}

func (e *InvalidTimeFormatError) Is(target error) bool {
	return target == ErrInvalidTimeFormat
}

func expectedFormat(field string) string {
	if strings.HasSuffix(field, "date") {
		return "YYYY-MM-DD"
	}
	return "HH:MM"
}
