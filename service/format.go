package service

import (
	"fmt"
	"strings"
	"time"

	"betreport/models"

	"github.com/shopspring/decimal"
)

// BetTimeLayout is how bet timestamps are shown in tables
const BetTimeLayout = "02/01/2006 15:04"

// FormatCurrency formats an amount as R$ with two decimals and thousand separators
func FormatCurrency(amount decimal.Decimal) string {
	str := amount.Abs().StringFixed(2)
	intPart, fracPart, _ := strings.Cut(str, ".")

	// Add commas for thousands
	var result strings.Builder
	if amount.IsNegative() && !amount.Round(2).IsZero() {
		result.WriteString("-")
	}
	result.WriteString("R$ ")
	n := len(intPart)
	for i, digit := range intPart {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	result.WriteString(".")
	result.WriteString(fracPart)

	return result.String()
}

// FormatBetTime formats a bet timestamp as dd/mm/yyyy HH:MM
func FormatBetTime(t time.Time) string {
	return t.Format(BetTimeLayout)
}

// FormatWindow formats a window for headers and captions
func FormatWindow(w models.TimeWindow) string {
	return fmt.Sprintf("%s → %s", FormatBetTime(w.Start), FormatBetTime(w.End))
}

const maxGameColumnWidth = 28

// RenderTable renders aggregate rows as a fixed-width text table
func RenderTable(rows []models.AggregateRow) string {
	if len(rows) == 0 {
		return "No games in this period.\n"
	}

	gameWidth := len("Game")
	totals := make([]string, len(rows))
	totalWidth := len("Total")
	for i, row := range rows {
		if w := len([]rune(row.GameName)); w > gameWidth {
			gameWidth = w
		}
		totals[i] = FormatCurrency(row.TotalAmount)
		if len(totals[i]) > totalWidth {
			totalWidth = len(totals[i])
		}
	}
	if gameWidth > maxGameColumnWidth {
		gameWidth = maxGameColumnWidth
	}

	var table strings.Builder
	table.WriteString(fmt.Sprintf("%-*s %6s %*s  %-16s  %-16s\n",
		gameWidth, "Game", "Rounds", totalWidth, "Total", "First Bet", "Last Bet"))
	table.WriteString(strings.Repeat("-", gameWidth+1+6+1+totalWidth+2+16+2+16) + "\n")

	for i, row := range rows {
		table.WriteString(fmt.Sprintf("%-*s %6d %*s  %-16s  %-16s\n",
			gameWidth, TruncateName(row.GameName, gameWidth),
			row.RoundCount,
			totalWidth, totals[i],
			FormatBetTime(row.FirstBet),
			FormatBetTime(row.LastBet)))
	}

	return table.String()
}

// TruncateName shortens a name to max runes, marking the cut with "..."
func TruncateName(name string, max int) string {
	runes := []rune(name)
	if len(runes) <= max {
		return name
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
