package main

import (
	"fmt"
	"io"
	"os"

	"github.com/lox/pokertracker/cmd/pokertracker/shared"
	"github.com/lox/pokertracker/internal/hand"
	"github.com/lox/pokertracker/internal/stats"
	"github.com/lox/pokertracker/internal/store"
)

// ExportCmd writes the (optionally filtered) log as CSV or TOML.
type ExportCmd struct {
	File  string `kong:"default='poker_hands.csv',help='Hand log file'"`
	Debug bool   `kong:"help='Enable debug logging'"`

	Output    string   `kong:"default='-',help='Output file, - for stdout'"`
	Format    string   `kong:"default='csv',enum='csv,toml',help='Export format'"`
	Positions []string `kong:"help='Only these positions'"`
	Results   []string `kong:"help='Only these results'"`
}

func (c *ExportCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	st := store.New(store.Config{Path: c.File}, logger)
	records, err := st.LoadAll()
	if err != nil {
		return err
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

	var out io.Writer = os.Stdout
	if c.Output != "-" {
		f, err := os.Create(c.Output)
		if err != nil {
			return fmt.Errorf("create %s: %w", c.Output, err)
		}
		defer f.Close()
		out = f
	}

	switch c.Format {
	case "toml":
		return store.WriteTOML(out, filtered)
	default:
		return store.WriteCSV(out, filtered)
	}
}
