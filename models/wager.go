package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// WagerRecord is a single bet line taken from an uploaded ledger
type WagerRecord struct {
	Row       int             `json:"row"` // 1-based data row in the source file
	GameName  string          `json:"game_name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	Client    string          `json:"client"`
}

// InWindow reports whether the record was created inside the window, both ends inclusive
func (r WagerRecord) InWindow(w TimeWindow) bool {
	return !r.CreatedAt.Before(w.Start) && !r.CreatedAt.After(w.End)
}

// IngestStats counts what happened to the raw rows while building a ledger
type IngestStats struct {
	Rows              int
	Kept              int
	DroppedTimestamps int
	RepairedAmounts   int
}
