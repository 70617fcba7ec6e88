// Package tui provides the interactive terminal wizard for logging a hand.
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/lox/pokertracker/internal/hand"
)

// step is the current position in the wizard.
type step int

const (
	stepPosition step = iota
	stepCards
	stepAction
	stepResult
	stepProfit
	stepNotes
	stepConfirm
)

// LogModel walks the user through the fields of a hand record.
type LogModel struct {
	step step

	positions []hand.Position
	actions   []hand.Action
	results   []hand.Result
	posIdx    int
	actIdx    int
	resIdx    int

	cards  textinput.Model
	profit textinput.Model
	notes  textinput.Model

	errMsg    string
	done      bool
	cancelled bool
}

// NewLogModel creates the wizard with empty inputs.
func NewLogModel() LogModel {
	cards := textinput.New()
	cards.Placeholder = "e.g., AhKd"
	cards.CharLimit = 16
	cards.Focus()

	profit := textinput.New()
	profit.Placeholder = "0.0"
	profit.CharLimit = 16

	notes := textinput.New()
	notes.Placeholder = "Any observations about the hand..."
	notes.CharLimit = 200

	return LogModel{
		positions: hand.Positions(),
		actions:   hand.Actions(),
		results:   hand.Results(),
		cards:     cards,
		profit:    profit,
		notes:     notes,
	}
}

// Record returns the assembled record; ok is false when the wizard was
// cancelled or is still in progress.
func (m LogModel) Record() (hand.Record, bool) {
	if !m.done || m.cancelled {
		return hand.Record{}, false
	}
	profit := 0.0
	if raw := strings.TrimSpace(m.profit.Value()); raw != "" {
		profit, _ = strconv.ParseFloat(raw, 64)
	}
	return hand.Record{
		Position:   m.positions[m.posIdx],
		HoleCards:  strings.TrimSpace(m.cards.Value()),
		Action:     m.actions[m.actIdx],
		Result:     m.results[m.resIdx],
		ProfitLoss: profit,
		Notes:      strings.TrimSpace(m.notes.Value()),
	}, true
}

// Cancelled reports whether the user aborted the wizard.
func (m LogModel) Cancelled() bool { return m.cancelled }

func (m LogModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m LogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m.updateInputs(msg)
	}

	switch keyMsg.Type {
	case tea.KeyCtrlC, tea.KeyEsc:
		m.cancelled = true
		return m, tea.Quit

	case tea.KeyLeft:
		m.cycle(-1)
		return m, nil

	case tea.KeyRight:
		m.cycle(1)
		return m, nil

	case tea.KeyEnter:
		return m.advance()
	}

	return m.updateInputs(msg)
}

func (m *LogModel) cycle(delta int) {
	switch m.step {
	case stepPosition:
		m.posIdx = wrap(m.posIdx+delta, len(m.positions))
	case stepAction:
		m.actIdx = wrap(m.actIdx+delta, len(m.actions))
	case stepResult:
		m.resIdx = wrap(m.resIdx+delta, len(m.results))
	}
}

func (m LogModel) advance() (tea.Model, tea.Cmd) {
	m.errMsg = ""
	switch m.step {
	case stepCards:
		if strings.TrimSpace(m.cards.Value()) == "" {
			m.errMsg = "Please enter your hole cards!"
			return m, nil
		}
	case stepProfit:
		if raw := strings.TrimSpace(m.profit.Value()); raw != "" {
			if _, err := strconv.ParseFloat(raw, 64); err != nil {
				m.errMsg = "Profit/loss must be a number"
				return m, nil
			}
		}
	case stepConfirm:
		m.done = true
		return m, tea.Quit
	}

	m.step++
	m.cards.Blur()
	m.profit.Blur()
	m.notes.Blur()
	switch m.step {
	case stepCards:
		m.cards.Focus()
	case stepProfit:
		m.profit.Focus()
	case stepNotes:
		m.notes.Focus()
	}
	return m, nil
}

func (m LogModel) updateInputs(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.step {
	case stepCards:
		m.cards, cmd = m.cards.Update(msg)
	case stepProfit:
		m.profit, cmd = m.profit.Update(msg)
	case stepNotes:
		m.notes, cmd = m.notes.Update(msg)
	}
	return m, cmd
}

func (m LogModel) View() string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Log a New Hand"))
	b.WriteString("\n\n")

	switch m.step {
	case stepPosition:
		b.WriteString(LabelStyle.Render("Position"))
		b.WriteString("\n" + renderChoices(positionStrings(m.positions), m.posIdx))
	case stepCards:
		b.WriteString(LabelStyle.Render("Hole Cards"))
		b.WriteString("\n" + m.cards.View())
	case stepAction:
		b.WriteString(LabelStyle.Render("Your Action"))
		b.WriteString("\n" + renderChoices(actionStrings(m.actions), m.actIdx))
	case stepResult:
		b.WriteString(LabelStyle.Render("Result"))
		b.WriteString("\n" + renderChoices(resultStrings(m.results), m.resIdx))
	case stepProfit:
		b.WriteString(LabelStyle.Render("Profit/Loss ($)"))
		b.WriteString("\n" + m.profit.View())
	case stepNotes:
		b.WriteString(LabelStyle.Render("Notes (optional)"))
		b.WriteString("\n" + m.notes.View())
	case stepConfirm:
		rec, _ := m.confirmPreview()
		b.WriteString(LabelStyle.Render("Log this hand?"))
		b.WriteString("\n\n")
		b.WriteString(fmt.Sprintf("  %s  %s  %s  %s  %s\n",
			rec.Position, rec.HoleCards, rec.Action, rec.Result, Money(rec.ProfitLoss)))
		if rec.Notes != "" {
			b.WriteString("  " + rec.Notes + "\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + ErrorStyle.Render(m.errMsg))
	}

	b.WriteString("\n\n")
	b.WriteString(HelpStyle.Render("enter: next • ←/→: choose • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// confirmPreview assembles the record for display without requiring done.
func (m LogModel) confirmPreview() (hand.Record, bool) {
	preview := m
	preview.done = true
	preview.cancelled = false
	return preview.Record()
}

func renderChoices(choices []string, selected int) string {
	parts := make([]string, len(choices))
	for i, choice := range choices {
		if i == selected {
			parts[i] = SelectedStyle.Render("[" + choice + "]")
		} else {
			parts[i] = " " + choice + " "
		}
	}
	return strings.Join(parts, " ")
}

func positionStrings(positions []hand.Position) []string {
	out := make([]string, len(positions))
	for i, p := range positions {
		out[i] = string(p)
	}
	return out
}

func actionStrings(actions []hand.Action) []string {
	out := make([]string, len(actions))
	for i, a := range actions {
		out[i] = string(a)
	}
	return out
}

func resultStrings(results []hand.Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = string(r)
	}
	return out
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

func formatMoney(amount float64) string {
	if amount < 0 {
		return fmt.Sprintf("-$%.2f", -amount)
	}
	return fmt.Sprintf("$%.2f", amount)
}
