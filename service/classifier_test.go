package service

import (
	"testing"

	"betreport/models"
	"betreport/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEligibilityList_ExactMatchOnly(t *testing.T) {
	list := DefaultEligibilityList()

	assert.True(t, list.Contains("Fortune Tiger"))
	assert.True(t, list.Contains("Gates Of Olympus Xmas 1000"))
	assert.False(t, list.Contains("fortune tiger"))
	assert.False(t, list.Contains("Fortune Tiger "))
	assert.False(t, list.Contains(" Fortune Tiger"))
	assert.False(t, list.Contains("Fortune  Tiger"))
	assert.False(t, list.Contains("Roulette"))
	assert.False(t, list.Contains(""))
}

func TestEligibilityList_Default(t *testing.T) {
	list := DefaultEligibilityList()

	assert.Equal(t, len(DefaultEligibleGames), list.Len())
	names := list.Names()
	assert.IsIncreasing(t, names)
	assert.Contains(t, names, "Big Bass Christmas Bash")
}

func TestClassify_PartitionIsComplete(t *testing.T) {
	records := []models.WagerRecord{
		testutil.CreateTestRecord("Fortune Tiger", 10, "2024-01-01 10:00", "A"),
		testutil.CreateTestRecord("Roulette", 20, "2024-01-01 11:00", "A"),
		testutil.CreateTestRecord("fortune tiger", 3, "2024-01-01 12:00", "A"),
		testutil.CreateTestRecord("Mahjong Ways", 7, "2024-01-01 13:00", "B"),
	}

	eligible, nonEligible := Classify(records, DefaultEligibilityList())

	require.Len(t, eligible, 2)
	require.Len(t, nonEligible, 2)
	assert.Equal(t, "Fortune Tiger", eligible[0].GameName)
	assert.Equal(t, "Mahjong Ways", eligible[1].GameName)
	assert.Equal(t, "Roulette", nonEligible[0].GameName)
	assert.Equal(t, "fortune tiger", nonEligible[1].GameName)

	// Union reconstructs the input, intersection is empty
	seen := make(map[string]int)
	for _, r := range append(append([]models.WagerRecord{}, eligible...), nonEligible...) {
		seen[r.GameName+"@"+r.CreatedAt.String()]++
	}
	assert.Len(t, seen, len(records))
	for key, count := range seen {
		assert.Equal(t, 1, count, key)
	}
}

func TestClassify_CustomList(t *testing.T) {
	records := []models.WagerRecord{
		testutil.CreateTestRecord("Roulette", 20, "2024-01-01 11:00", "A"),
	}

	eligible, nonEligible := Classify(records, NewEligibilityList([]string{"Roulette"}))

	assert.Len(t, eligible, 1)
	assert.Empty(t, nonEligible)
}

func TestSumAmounts(t *testing.T) {
	assert.True(t, SumAmounts(nil).IsZero())

	records := []models.WagerRecord{
		testutil.CreateTestRecord("A", 0.1, "2024-01-01 10:00", "A"),
		testutil.CreateTestRecord("A", 0.2, "2024-01-01 10:01", "A"),
		testutil.CreateTestRecord("B", -0.05, "2024-01-01 10:02", "A"),
	}
	assert.Equal(t, "0.25", SumAmounts(records).String())
}

func TestSummarize_SumConservation(t *testing.T) {
	records := []models.WagerRecord{
		testutil.CreateTestRecord("Fortune Tiger", 10.5, "2024-01-01 10:00", "A"),
		testutil.CreateTestRecord("Roulette", 20.25, "2024-01-01 11:00", "A"),
		testutil.CreateTestRecord("Sweet Bonanza", 1.1, "2024-01-01 12:00", "A"),
		testutil.CreateTestRecord("Crash", -2, "2024-01-01 13:00", "A"),
	}

	eligible, nonEligible := Classify(records, DefaultEligibilityList())
	summary := Summarize(eligible, nonEligible)

	assert.Equal(t, "11.60", summary.TotalEligible.StringFixed(2))
	assert.Equal(t, "18.25", summary.TotalNonEligible.StringFixed(2))
	assert.True(t, summary.TotalOverall.Equal(summary.TotalEligible.Add(summary.TotalNonEligible)))
	assert.True(t, summary.TotalOverall.Equal(SumAmounts(records)))
}

func TestAggregateByGame(t *testing.T) {
	records := []models.WagerRecord{
		testutil.CreateTestRecord("Fortune Tiger", 10, "2024-01-01 12:00", "A"),
		testutil.CreateTestRecord("Mahjong Ways", 50, "2024-01-01 09:00", "A"),
		testutil.CreateTestRecord("Fortune Tiger", 5, "2024-01-01 08:00", "A"),
		testutil.CreateTestRecord("Fortune Tiger", 1, "2024-01-01 15:30", "A"),
	}

	rows := AggregateByGame(records)

	require.Len(t, rows, 2)
	assert.Equal(t, "Mahjong Ways", rows[0].GameName)
	assert.Equal(t, 1, rows[0].RoundCount)
	assert.Equal(t, "50.00", rows[0].TotalAmount.StringFixed(2))

	assert.Equal(t, "Fortune Tiger", rows[1].GameName)
	assert.Equal(t, 3, rows[1].RoundCount)
	assert.Equal(t, "16.00", rows[1].TotalAmount.StringFixed(2))
	assert.True(t, rows[1].FirstBet.Equal(testutil.MustTime("2024-01-01 08:00")))
	assert.True(t, rows[1].LastBet.Equal(testutil.MustTime("2024-01-01 15:30")))
}

func TestAggregateByGame_TiesOrderedByName(t *testing.T) {
	records := []models.WagerRecord{
		testutil.CreateTestRecord("Wild Ape", 10, "2024-01-01 10:00", "A"),
		testutil.CreateTestRecord("Cash Mania", 10, "2024-01-01 10:01", "A"),
		testutil.CreateTestRecord("Lucky Neko", 30, "2024-01-01 10:02", "A"),
		testutil.CreateTestRecord("Dragon Hatch", 10, "2024-01-01 10:03", "A"),
	}

	rows := AggregateByGame(records)

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = row.GameName
	}
	assert.Equal(t, []string{"Lucky Neko", "Cash Mania", "Dragon Hatch", "Wild Ape"}, names)
}

func TestAggregateByGame_Empty(t *testing.T) {
	rows := AggregateByGame(nil)

	assert.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestAggregateByGame_CountsAndSumsMatchInput(t *testing.T) {
	records := windowRecords()
	records = append(records, testutil.CreateTestRecord("Roulette", 2.5, "2024-01-03 10:00", "C"))

	rows := AggregateByGame(records)

	total := 0
	sum := SumAmounts(nil)
	for _, row := range rows {
		total += row.RoundCount
		sum = sum.Add(row.TotalAmount)
	}
	assert.Equal(t, len(records), total)
	assert.True(t, sum.Equal(SumAmounts(records)))
}

func TestDistinctClients_FirstSeenOrder(t *testing.T) {
	records := []models.WagerRecord{
		testutil.CreateTestRecord("A", 1, "2024-01-01 10:00", "zeta"),
		testutil.CreateTestRecord("A", 1, "2024-01-01 10:01", "alpha"),
		testutil.CreateTestRecord("A", 1, "2024-01-01 10:02", "zeta"),
	}

	assert.Equal(t, []string{"zeta", "alpha"}, DistinctClients(records))
	assert.Empty(t, DistinctClients(nil))
}
