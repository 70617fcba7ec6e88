package hand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePosition(t *testing.T) {
	for _, p := range Positions() {
		parsed, err := ParsePosition(string(p))
		require.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := ParsePosition("HJ")
	assert.Error(t, err)

	parsed, err := ParsePosition("  UTG+1 ")
	require.NoError(t, err)
	assert.Equal(t, UTGPlus1, parsed)
}

func TestParseAction(t *testing.T) {
	parsed, err := ParseAction("All-in")
	require.NoError(t, err)
	assert.Equal(t, AllIn, parsed)

	_, err = ParseAction("Shove")
	assert.Error(t, err)

	// Enum values are case sensitive, matching the stored form values.
	_, err = ParseAction("fold")
	assert.Error(t, err)
}

func TestParseResult(t *testing.T) {
	parsed, err := ParseResult("Chopped")
	require.NoError(t, err)
	assert.Equal(t, Chopped, parsed)

	_, err = ParseResult("Split")
	assert.Error(t, err)
}

func TestRecordValidate(t *testing.T) {
	rec := Record{Position: BTN, HoleCards: "AhKd", Action: Raise, Result: Won}
	require.NoError(t, rec.Validate())

	rec.HoleCards = ""
	assert.ErrorIs(t, rec.Validate(), ErrHoleCardsRequired)

	rec.HoleCards = "   "
	assert.ErrorIs(t, rec.Validate(), ErrHoleCardsRequired)
}
