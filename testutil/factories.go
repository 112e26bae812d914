package testutil

import (
	"strings"
	"time"

	"betreport/models"

	"github.com/shopspring/decimal"
)

// TestTimeLayout is the timestamp layout accepted by the factories
const TestTimeLayout = "2006-01-02 15:04"

// MustTime parses a "2006-01-02 15:04" timestamp in UTC, panicking on bad input
func MustTime(value string) time.Time {
	t, err := time.ParseInLocation(TestTimeLayout, value, time.UTC)
	if err != nil {
		panic(err)
	}
	return t
}

// CreateTestRecord creates a wager record with the given values
func CreateTestRecord(game string, amount float64, createdAt string, client string) models.WagerRecord {
	return models.WagerRecord{
		GameName:  game,
		Amount:    decimal.NewFromFloat(amount),
		CreatedAt: MustTime(createdAt),
		Client:    client,
	}
}

// CreateTestWindow creates a window from two "2006-01-02 15:04" timestamps
func CreateTestWindow(start, end string) models.TimeWindow {
	return models.TimeWindow{Start: MustTime(start), End: MustTime(end)}
}

// LedgerCSV builds ledger text with the standard header followed by the given rows.
// Each row is Game Name, Bet, Creation Date, Client.
func LedgerCSV(rows ...[]string) string {
	var b strings.Builder
	b.WriteString("Game Name,Bet,Creation Date,Client\n")
	for _, row := range rows {
		b.WriteString(strings.Join(row, ","))
		b.WriteString("\n")
	}
	return b.String()
}

// ScenarioLedgerCSV is the two-row ledger used across report tests
func ScenarioLedgerCSV() string {
	return LedgerCSV(
		[]string{"Fortune Tiger", "10", "2024-01-01 10:00", "A"},
		[]string{"Roulette", "20", "2024-01-01 11:00", "A"},
	)
}
