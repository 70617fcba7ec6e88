package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/pokertracker/cmd/pokertracker/shared"
	"github.com/lox/pokertracker/internal/hand"
	"github.com/lox/pokertracker/internal/stats"
	"github.com/lox/pokertracker/internal/store"
	"github.com/lox/pokertracker/internal/tui"
)

// HistoryCmd prints logged hands, newest first.
type HistoryCmd struct {
	File  string `kong:"default='poker_hands.csv',help='Hand log file'"`
	Debug bool   `kong:"help='Enable debug logging'"`

	Limit     int      `kong:"default='0',help='Only the most recent N hands (0 = all)'"`
	Positions []string `kong:"help='Only these positions'"`
	Results   []string `kong:"help='Only these results'"`
}

func (c *HistoryCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	st := store.New(store.Config{Path: c.File}, logger)
	records, err := st.LoadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No hands logged yet. Run `pokertracker log` to get started.")
		return nil
	}

	positions := stats.DistinctPositions(records)
	if len(c.Positions) > 0 {
		positions = positions[:0]
		for _, p := range c.Positions {
			pos, err := hand.ParsePosition(p)
			if err != nil {
				return err
			}
			positions = append(positions, pos)
		}
	}
	results := stats.DistinctResults(records)
	if len(c.Results) > 0 {
		results = results[:0]
		for _, r := range c.Results {
			res, err := hand.ParseResult(r)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}

	filtered := stats.FilterBy(records, positions, results)
	if c.Limit > 0 {
		filtered = stats.RecentN(filtered, c.Limit)
	}
	filtered = stats.SortByTimestampDesc(filtered)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TIME\tPOSITION\tCARDS\tACTION\tRESULT\tP/L\tNOTES")
	for _, rec := range filtered {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			rec.Timestamp, rec.Position, rec.HoleCards, rec.Action, rec.Result,
			tui.Money(rec.ProfitLoss), rec.Notes)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Printf("\n%d of %d hands\n", len(filtered), len(records))
	return nil
}
