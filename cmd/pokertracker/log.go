package main

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokertracker/cmd/pokertracker/shared"
	"github.com/lox/pokertracker/internal/hand"
	"github.com/lox/pokertracker/internal/store"
	"github.com/lox/pokertracker/internal/tui"
)

// LogCmd appends a hand to the log. Without field flags it starts the
// interactive wizard.
type LogCmd struct {
	File  string `kong:"default='poker_hands.csv',help='Hand log file'"`
	Debug bool   `kong:"help='Enable debug logging'"`

	Position string  `kong:"help='Position: UTG, UTG+1, MP, CO, BTN, SB or BB'"`
	Cards    string  `kong:"help='Hole cards, e.g. AhKd'"`
	Action   string  `kong:"help='Action: Fold, Call, Raise or All-in'"`
	Result   string  `kong:"help='Result: Won, Lost or Chopped'"`
	Profit   float64 `kong:"help='Profit/loss, negative for losses'"`
	Notes    string  `kong:"help='Optional notes'"`
}

func (c *LogCmd) Run() error {
	logger := shared.SetupLogger(c.Debug)

	st := store.New(store.Config{Path: c.File}, logger)
	if err := st.Initialize(); err != nil {
		return err
	}

	var rec hand.Record
	if c.Position == "" && c.Cards == "" && c.Action == "" && c.Result == "" {
		wizard, err := tea.NewProgram(tui.NewLogModel()).Run()
		if err != nil {
			return err
		}
		model, ok := wizard.(tui.LogModel)
		if !ok || model.Cancelled() {
			return nil
		}
		rec, ok = model.Record()
		if !ok {
			return nil
		}
	} else {
		var err error
		rec, err = c.recordFromFlags()
		if err != nil {
			return err
		}
	}

	// Required-field validation happens at this boundary; the store never
	// sees an invalid submission.
	if err := rec.Validate(); err != nil {
		if errors.Is(err, hand.ErrHoleCardsRequired) {
			return errors.New("hole cards are required, pass --cards")
		}
		return err
	}

	stamped, err := st.Append(rec)
	if err != nil {
		return err
	}

	fmt.Printf("%s %s %s %s %s %s\n",
		tui.SuccessStyle.Render("Hand logged:"),
		stamped.Position, stamped.HoleCards, stamped.Action, stamped.Result,
		tui.Money(stamped.ProfitLoss))
	return nil
}

func (c *LogCmd) recordFromFlags() (hand.Record, error) {
	position, err := hand.ParsePosition(c.Position)
	if err != nil {
		return hand.Record{}, err
	}
	action, err := hand.ParseAction(c.Action)
	if err != nil {
		return hand.Record{}, err
	}
	result, err := hand.ParseResult(c.Result)
	if err != nil {
		return hand.Record{}, err
	}
	return hand.Record{
		Position:   position,
		HoleCards:  c.Cards,
		Action:     action,
		Result:     result,
		ProfitLoss: c.Profit,
		Notes:      c.Notes,
	}, nil
}
