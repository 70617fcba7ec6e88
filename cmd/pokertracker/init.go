package main

import (
	"github.com/lox/pokertracker/cmd/pokertracker/shared"
	"github.com/lox/pokertracker/internal/store"
)

// InitCmd creates the hand log with only the header row.
type InitCmd struct {
	File  string `kong:"default='poker_hands.csv',help='Hand log file'"`
	Debug bool   `kong:"help='Enable debug logging'"`
}

func (c *InitCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)
	st := store.New(store.Config{Path: c.File}, logger)
	return st.Initialize()
}
