package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertracker/internal/hand"
)

func drive(t *testing.T, model tea.Model, msgs ...tea.Msg) tea.Model {
	t.Helper()
	for _, msg := range msgs {
		model, _ = model.Update(msg)
	}
	return model
}

func keyRight() tea.Msg { return tea.KeyMsg{Type: tea.KeyRight} }
func keyEnter() tea.Msg { return tea.KeyMsg{Type: tea.KeyEnter} }
func keyRunes(s string) tea.Msg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestWizardProducesRecord(t *testing.T) {
	model := drive(t, NewLogModel(),
		keyRight(), keyRight(), keyRight(), keyRight(), // UTG -> BTN
		keyEnter(),
		keyRunes("AhKd"), keyEnter(),
		keyRight(), keyRight(), // Fold -> Raise
		keyEnter(),
		keyEnter(), // Won
		keyRunes("25.5"), keyEnter(),
		keyEnter(), // no notes
		keyEnter(), // confirm
	)

	m, ok := model.(LogModel)
	require.True(t, ok)
	rec, ok := m.Record()
	require.True(t, ok)
	assert.Equal(t, hand.BTN, rec.Position)
	assert.Equal(t, "AhKd", rec.HoleCards)
	assert.Equal(t, hand.Raise, rec.Action)
	assert.Equal(t, hand.Won, rec.Result)
	assert.Equal(t, 25.5, rec.ProfitLoss)
	assert.Empty(t, rec.Notes)
}

func TestWizardRequiresHoleCards(t *testing.T) {
	model := drive(t, NewLogModel(),
		keyEnter(), // position -> cards
		keyEnter(), // empty cards rejected
	)

	m := model.(LogModel)
	assert.Equal(t, stepCards, m.step)
	assert.NotEmpty(t, m.errMsg)
	_, ok := m.Record()
	assert.False(t, ok)
}

func TestWizardCancel(t *testing.T) {
	model := drive(t, NewLogModel(), tea.KeyMsg{Type: tea.KeyEsc})

	m := model.(LogModel)
	assert.True(t, m.Cancelled())
	_, ok := m.Record()
	assert.False(t, ok)
}
