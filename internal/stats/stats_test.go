package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertracker/internal/hand"
)

func sampleRecords() []hand.Record {
	return []hand.Record{
		{Timestamp: "2025-01-02 10:00:00", Position: hand.BTN, HoleCards: "AhKd", Action: hand.Raise, Result: hand.Won, ProfitLoss: 25.5},
		{Timestamp: "2025-01-02 10:05:00", Position: hand.BB, HoleCards: "7c2d", Action: hand.Fold, Result: hand.Lost, ProfitLoss: -1.0, Notes: "blind"},
		{Timestamp: "2025-01-02 10:10:00", Position: hand.BTN, HoleCards: "QsQc", Action: hand.AllIn, Result: hand.Lost, ProfitLoss: -40.0},
		{Timestamp: "2025-01-02 10:15:00", Position: hand.CO, HoleCards: "JhTh", Action: hand.Call, Result: hand.Chopped, ProfitLoss: 0.0},
	}
}

func TestTotalsOnEmptyInput(t *testing.T) {
	assert.Equal(t, 0, TotalHands(nil))
	assert.Equal(t, 0.0, TotalProfit(nil))
	assert.Equal(t, 0, WonCount(nil))
	assert.Equal(t, 0.0, WinRate(nil))
	assert.Empty(t, ProfitByPosition(nil))
	assert.Empty(t, CountByPosition(nil))
	assert.Empty(t, RecentN(nil, 10))
}

func TestTotalProfitIncludesLosses(t *testing.T) {
	records := sampleRecords()
	assert.InDelta(t, -15.5, TotalProfit(records), 1e-9)
	assert.Equal(t, 4, TotalHands(records))
}

func TestWinRate(t *testing.T) {
	records := sampleRecords()
	assert.InDelta(t, 25.0, WinRate(records), 1e-9)

	allWon := []hand.Record{
		{Position: hand.SB, Result: hand.Won},
		{Position: hand.MP, Result: hand.Won},
	}
	assert.Equal(t, 100.0, WinRate(allWon))
}

func TestProfitByPositionSortedDescending(t *testing.T) {
	entries := ProfitByPosition(sampleRecords())
	require.Len(t, entries, 3)

	assert.Equal(t, hand.CO, entries[0].Position)
	assert.InDelta(t, 0.0, entries[0].Profit, 1e-9)
	assert.Equal(t, hand.BB, entries[1].Position)
	assert.InDelta(t, -1.0, entries[1].Profit, 1e-9)
	assert.Equal(t, hand.BTN, entries[2].Position)
	assert.InDelta(t, -14.5, entries[2].Profit, 1e-9)

	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Profit, entries[i].Profit)
	}
}

func TestBreakdownsSumToTotals(t *testing.T) {
	records := sampleRecords()

	var profitSum float64
	for _, e := range ProfitByPosition(records) {
		profitSum += e.Profit
	}
	assert.InDelta(t, TotalProfit(records), profitSum, 1e-9)

	var countSum int
	for _, e := range CountByPosition(records) {
		countSum += e.Count
	}
	assert.Equal(t, TotalHands(records), countSum)
}

func TestCountByPositionSortedDescending(t *testing.T) {
	entries := CountByPosition(sampleRecords())
	require.Len(t, entries, 3)
	assert.Equal(t, hand.BTN, entries[0].Position)
	assert.Equal(t, 2, entries[0].Count)
	for i := 1; i < len(entries); i++ {
		assert.GreaterOrEqual(t, entries[i-1].Count, entries[i].Count)
	}
}

func TestFilterBy(t *testing.T) {
	records := sampleRecords()

	filtered := FilterBy(records, []hand.Position{hand.BTN}, []hand.Result{hand.Won})
	require.Len(t, filtered, 1)
	assert.Equal(t, "AhKd", filtered[0].HoleCards)

	// Empty sets exclude rather than pass everything through.
	assert.Empty(t, FilterBy(records, nil, []hand.Result{hand.Won}))
	assert.Empty(t, FilterBy(records, []hand.Position{hand.BTN}, nil))

	unfiltered := FilterBy(records, DistinctPositions(records), DistinctResults(records))
	assert.Equal(t, records, unfiltered)
}

func TestDistinctValues(t *testing.T) {
	records := sampleRecords()
	assert.Equal(t, []hand.Position{hand.CO, hand.BTN, hand.BB}, DistinctPositions(records))
	assert.Equal(t, []hand.Result{hand.Won, hand.Lost, hand.Chopped}, DistinctResults(records))
}

func TestRecentN(t *testing.T) {
	records := sampleRecords()

	recent := RecentN(records, 2)
	require.Len(t, recent, 2)
	assert.Equal(t, "QsQc", recent[0].HoleCards)
	assert.Equal(t, "JhTh", recent[1].HoleCards)

	assert.Len(t, RecentN(records, 10), 4)
	assert.Empty(t, RecentN(records, 0))
}

func TestSortByTimestampDesc(t *testing.T) {
	records := sampleRecords()
	sorted := SortByTimestampDesc(records)
	require.Len(t, sorted, 4)
	assert.Equal(t, "JhTh", sorted[0].HoleCards)
	assert.Equal(t, "AhKd", sorted[3].HoleCards)

	// Input order is untouched.
	assert.Equal(t, "AhKd", records[0].HoleCards)
}
