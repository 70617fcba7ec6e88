package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/lox/pokertracker/cmd/pokertracker/shared"
	"github.com/lox/pokertracker/internal/stats"
	"github.com/lox/pokertracker/internal/store"
	"github.com/lox/pokertracker/internal/tui"
)

// StatsCmd prints aggregate statistics for the whole log.
type StatsCmd struct {
	File  string `kong:"default='poker_hands.csv',help='Hand log file'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *StatsCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	st := store.New(store.Config{Path: c.File}, logger)
	records, err := st.LoadAll()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No hands logged yet. Log some hands to see your stats!")
		return nil
	}

	fmt.Println(tui.HeaderStyle.Render("Statistics"))
	fmt.Println()
	fmt.Printf("%s %d\n", tui.LabelStyle.Render("Total hands:"), stats.TotalHands(records))
	fmt.Printf("%s %s\n", tui.LabelStyle.Render("Total P/L:  "), tui.Money(stats.TotalProfit(records)))
	fmt.Printf("%s %d\n", tui.LabelStyle.Render("Hands won:  "), stats.WonCount(records))
	fmt.Printf("%s %.1f%%\n", tui.LabelStyle.Render("Win rate:   "), stats.WinRate(records))

	fmt.Println()
	fmt.Println(tui.LabelStyle.Render("Profit by position"))
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, entry := range stats.ProfitByPosition(records) {
		fmt.Fprintf(w, "%s\t%s\n", entry.Position, tui.Money(entry.Profit))
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(tui.LabelStyle.Render("Hands by position"))
	w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, entry := range stats.CountByPosition(records) {
		fmt.Fprintf(w, "%s\t%d\n", entry.Position, entry.Count)
	}
	return w.Flush()
}
