package service

import (
	"sort"

	"betreport/models"

	"github.com/shopspring/decimal"
)

// Classify splits records into eligible and non-eligible sets, keeping input order
func Classify(records []models.WagerRecord, list *EligibilityList) (eligible, nonEligible []models.WagerRecord) {
	eligible = make([]models.WagerRecord, 0, len(records))
	nonEligible = make([]models.WagerRecord, 0, len(records))
	for _, record := range records {
		if list.Contains(record.GameName) {
			eligible = append(eligible, record)
		} else {
			nonEligible = append(nonEligible, record)
		}
	}
	return eligible, nonEligible
}

// SumAmounts totals the bet amounts. Empty input sums to zero.
func SumAmounts(records []models.WagerRecord) decimal.Decimal {
	total := decimal.Zero
	for _, record := range records {
		total = total.Add(record.Amount)
	}
	return total
}

// AggregateByGame rolls records up per game name, ordered by total descending.
// Equal totals are ordered by game name.
func AggregateByGame(records []models.WagerRecord) []models.AggregateRow {
	byGame := make(map[string]*models.AggregateRow)
	order := make([]string, 0)

	for _, record := range records {
		row, ok := byGame[record.GameName]
		if !ok {
			row = &models.AggregateRow{
				GameName:    record.GameName,
				TotalAmount: decimal.Zero,
				FirstBet:    record.CreatedAt,
				LastBet:     record.CreatedAt,
			}
			byGame[record.GameName] = row
			order = append(order, record.GameName)
		}

		row.RoundCount++
		row.TotalAmount = row.TotalAmount.Add(record.Amount)
		if record.CreatedAt.Before(row.FirstBet) {
			row.FirstBet = record.CreatedAt
		}
		if record.CreatedAt.After(row.LastBet) {
			row.LastBet = record.CreatedAt
		}
	}

	rows := make([]models.AggregateRow, 0, len(order))
	for _, name := range order {
		rows = append(rows, *byGame[name])
	}

	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].TotalAmount.Cmp(rows[j].TotalAmount); c != 0 {
			return c > 0
		}
		return rows[i].GameName < rows[j].GameName
	})

	return rows
}

// Summarize computes the headline totals of an already classified set
func Summarize(eligible, nonEligible []models.WagerRecord) models.Summary {
	totalEligible := SumAmounts(eligible)
	totalNonEligible := SumAmounts(nonEligible)
	return models.Summary{
		TotalOverall:     totalEligible.Add(totalNonEligible),
		TotalEligible:    totalEligible,
		TotalNonEligible: totalNonEligible,
	}
}

// DistinctClients lists client IDs in the order they first appear
func DistinctClients(records []models.WagerRecord) []string {
	seen := make(map[string]struct{})
	clients := make([]string, 0)
	for _, record := range records {
		if _, ok := seen[record.Client]; ok {
			continue
		}
		seen[record.Client] = struct{}{}
		clients = append(clients, record.Client)
	}
	return clients
}
