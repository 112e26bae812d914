package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// AggregateRow is the per-game rollup of a filtered set of wagers
type AggregateRow struct {
	GameName    string
	RoundCount  int
	TotalAmount decimal.Decimal
	FirstBet    time.Time
	LastBet     time.Time
}

// Summary holds the three headline totals of a report
type Summary struct {
	TotalOverall     decimal.Decimal
	TotalEligible    decimal.Decimal
	TotalNonEligible decimal.Decimal
}
