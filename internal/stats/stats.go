// Package stats derives summary statistics from a loaded record set. All
// functions are pure: no mutation, no I/O, and an empty input always yields
// zero values rather than an error.
package stats

import (
	"slices"
	"sort"

	"github.com/lox/pokertracker/internal/hand"
)

// PositionProfit is one entry of a profit-by-position breakdown.
type PositionProfit struct {
	Position hand.Position `json:"position"`
	Profit   float64       `json:"profit"`
}

// PositionCount is one entry of a count-by-position breakdown.
type PositionCount struct {
	Position hand.Position `json:"position"`
	Count    int           `json:"count"`
}

// TotalHands returns the number of records.
func TotalHands(records []hand.Record) int {
	return len(records)
}

// TotalProfit returns the sum of profit/loss across all records.
func TotalProfit(records []hand.Record) float64 {
	var total float64
	for _, rec := range records {
		total += rec.ProfitLoss
	}
	return total
}

// WonCount returns the number of hands with result Won.
func WonCount(records []hand.Record) int {
	var won int
	for _, rec := range records {
		if rec.Result == hand.Won {
			won++
		}
	}
	return won
}

// WinRate returns won hands as a percentage of all hands, 0 for no hands.
func WinRate(records []hand.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	return float64(WonCount(records)) / float64(len(records)) * 100
}

// ProfitByPosition sums profit/loss per position, sorted by profit
// descending. Only positions present in the records appear.
func ProfitByPosition(records []hand.Record) []PositionProfit {
	sums := make(map[hand.Position]float64)
	for _, rec := range records {
		sums[rec.Position] += rec.ProfitLoss
	}

	entries := make([]PositionProfit, 0, len(sums))
	for _, pos := range positionsInOrder(sums) {
		entries = append(entries, PositionProfit{Position: pos, Profit: sums[pos]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Profit > entries[j].Profit
	})
	return entries
}

// CountByPosition counts hands per position, sorted by count descending.
func CountByPosition(records []hand.Record) []PositionCount {
	counts := make(map[hand.Position]int)
	for _, rec := range records {
		counts[rec.Position]++
	}

	entries := make([]PositionCount, 0, len(counts))
	for _, pos := range positionsInOrderInt(counts) {
		entries = append(entries, PositionCount{Position: pos, Count: counts[pos]})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Count > entries[j].Count
	})
	return entries
}

// FilterBy returns records whose position and result both appear in the
// given sets. An empty set excludes everything; callers wanting "no filter"
// pass DistinctPositions/DistinctResults of the same records.
func FilterBy(records []hand.Record, positions []hand.Position, results []hand.Result) []hand.Record {
	filtered := make([]hand.Record, 0, len(records))
	for _, rec := range records {
		if slices.Contains(positions, rec.Position) && slices.Contains(results, rec.Result) {
			filtered = append(filtered, rec)
		}
	}
	return filtered
}

// DistinctPositions returns the positions present in the records, in table
// order for the known positions and appearance order for anything else.
func DistinctPositions(records []hand.Record) []hand.Position {
	seen := make(map[hand.Position]bool)
	var distinct []hand.Position
	for _, pos := range hand.Positions() {
		for _, rec := range records {
			if rec.Position == pos && !seen[pos] {
				seen[pos] = true
				distinct = append(distinct, pos)
			}
		}
	}
	for _, rec := range records {
		if !seen[rec.Position] {
			seen[rec.Position] = true
			distinct = append(distinct, rec.Position)
		}
	}
	return distinct
}

// DistinctResults returns the results present in the records.
func DistinctResults(records []hand.Record) []hand.Result {
	seen := make(map[hand.Result]bool)
	var distinct []hand.Result
	for _, res := range hand.Results() {
		for _, rec := range records {
			if rec.Result == res && !seen[res] {
				seen[res] = true
				distinct = append(distinct, res)
			}
		}
	}
	for _, rec := range records {
		if !seen[rec.Result] {
			seen[rec.Result] = true
			distinct = append(distinct, rec.Result)
		}
	}
	return distinct
}

// RecentN returns the last n records in insertion order. The caller may
// sort the subset for display afterwards.
func RecentN(records []hand.Record, n int) []hand.Record {
	if n <= 0 {
		return nil
	}
	if n >= len(records) {
		n = len(records)
	}
	return slices.Clone(records[len(records)-n:])
}

// SortByTimestampDesc returns a copy sorted newest first. The sort is
// stable so records sharing a timestamp keep insertion order.
func SortByTimestampDesc(records []hand.Record) []hand.Record {
	sorted := slices.Clone(records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Timestamp > sorted[j].Timestamp
	})
	return sorted
}

// positionsInOrder yields map keys in canonical table order so ties in the
// value sort stay deterministic.
func positionsInOrder(m map[hand.Position]float64) []hand.Position {
	ordered := make([]hand.Position, 0, len(m))
	for _, pos := range hand.Positions() {
		if _, ok := m[pos]; ok {
			ordered = append(ordered, pos)
		}
	}
	for pos := range m {
		if !slices.Contains(ordered, pos) {
			ordered = append(ordered, pos)
		}
	}
	return ordered
}

func positionsInOrderInt(m map[hand.Position]int) []hand.Position {
	ordered := make([]hand.Position, 0, len(m))
	for _, pos := range hand.Positions() {
		if _, ok := m[pos]; ok {
			ordered = append(ordered, pos)
		}
	}
	for pos := range m {
		if !slices.Contains(ordered, pos) {
			ordered = append(ordered, pos)
		}
	}
	return ordered
}
