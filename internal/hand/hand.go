// Package hand defines the logged hand record and its enumerated fields.
package hand

import (
	"errors"
	"fmt"
	"strings"
)

// TimestampLayout is the format used for record timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// ErrHoleCardsRequired is returned when a hand is submitted without hole cards.
var ErrHoleCardsRequired = errors.New("hand: hole cards are required")

// Position is the seat relative to the blinds.
type Position string

const (
	UTG      Position = "UTG"
	UTGPlus1 Position = "UTG+1"
	MP       Position = "MP"
	CO       Position = "CO"
	BTN      Position = "BTN"
	SB       Position = "SB"
	BB       Position = "BB"
)

// Positions returns all positions in table order.
func Positions() []Position {
	return []Position{UTG, UTGPlus1, MP, CO, BTN, SB, BB}
}

// ParsePosition validates user input against the known positions.
func ParsePosition(s string) (Position, error) {
	p := Position(strings.TrimSpace(s))
	for _, known := range Positions() {
		if p == known {
			return p, nil
		}
	}
	return "", fmt.Errorf("hand: unknown position %q", s)
}

// Action is what the player did with the hand.
type Action string

const (
	Fold  Action = "Fold"
	Call  Action = "Call"
	Raise Action = "Raise"
	AllIn Action = "All-in"
)

// Actions returns all actions in display order.
func Actions() []Action {
	return []Action{Fold, Call, Raise, AllIn}
}

// ParseAction validates user input against the known actions.
func ParseAction(s string) (Action, error) {
	a := Action(strings.TrimSpace(s))
	for _, known := range Actions() {
		if a == known {
			return a, nil
		}
	}
	return "", fmt.Errorf("hand: unknown action %q", s)
}

// Result is the outcome of the hand.
type Result string

const (
	Won     Result = "Won"
	Lost    Result = "Lost"
	Chopped Result = "Chopped"
)

// Results returns all results in display order.
func Results() []Result {
	return []Result{Won, Lost, Chopped}
}

// ParseResult validates user input against the known results.
func ParseResult(s string) (Result, error) {
	r := Result(strings.TrimSpace(s))
	for _, known := range Results() {
		if r == known {
			return r, nil
		}
	}
	return "", fmt.Errorf("hand: unknown result %q", s)
}

// Record is one logged poker hand. Records are immutable once appended;
// the store assigns Timestamp at append time.
type Record struct {
	Timestamp  string   `json:"timestamp" toml:"timestamp"`
	Position   Position `json:"position" toml:"position"`
	HoleCards  string   `json:"hole_cards" toml:"hole_cards"`
	Action     Action   `json:"action" toml:"action"`
	Result     Result   `json:"result" toml:"result"`
	ProfitLoss float64  `json:"profit_loss" toml:"profit_loss"`
	Notes      string   `json:"notes" toml:"notes"`
}

// Validate enforces the submission invariants. Enum fields are constrained
// by the input surface (forms, CLI flags, schema) and are not re-checked on
// records loaded from disk.
func (r Record) Validate() error {
	if strings.TrimSpace(r.HoleCards) == "" {
		return ErrHoleCardsRequired
	}
	return nil
}
