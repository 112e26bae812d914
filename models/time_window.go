package models

import "time"

// TimeWindow is an inclusive instant range. Start after End is allowed and matches nothing.
type TimeWindow struct {
	Start time.Time
	End   time.Time
}

// IsInverted reports whether the window can never match a record
func (w TimeWindow) IsInverted() bool {
	return w.Start.After(w.End)
}
