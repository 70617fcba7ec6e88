package store

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/pokertracker/internal/hand"
)

func newTestStore(t *testing.T) (*Store, *quartz.Mock) {
	t.Helper()
	mock := quartz.NewMock(t)
	st := New(Config{
		Path:  filepath.Join(t.TempDir(), "hands.csv"),
		Clock: mock,
	}, zerolog.Nop())
	return st, mock
}

func sampleRecord() hand.Record {
	return hand.Record{
		Position:   hand.BTN,
		HoleCards:  "AhKd",
		Action:     hand.Raise,
		Result:     hand.Won,
		ProfitLoss: 25.5,
	}
}

func TestInitializeIsIdempotent(t *testing.T) {
	st, _ := newTestStore(t)

	require.NoError(t, st.Initialize())
	first, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, "timestamp,position,hole_cards,action,result,profit_loss,notes\n", string(first))

	require.NoError(t, st.Initialize())
	second, err := os.ReadFile(st.Path())
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestInitializeDoesNotTruncateData(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Initialize())

	_, err := st.Append(sampleRecord())
	require.NoError(t, err)

	require.NoError(t, st.Initialize())

	records, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestAppendRoundTrip(t *testing.T) {
	st, mock := newTestStore(t)
	require.NoError(t, st.Initialize())

	first := sampleRecord()
	stamped, err := st.Append(first)
	require.NoError(t, err)
	assert.Equal(t, mock.Now().Format(hand.TimestampLayout), stamped.Timestamp)

	mock.Advance(time.Minute)

	second := hand.Record{
		Position:   hand.BB,
		HoleCards:  "7c2d",
		Action:     hand.Fold,
		Result:     hand.Lost,
		ProfitLoss: -1.0,
		Notes:      "blind",
	}
	_, err = st.Append(second)
	require.NoError(t, err)

	records, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, hand.BTN, records[0].Position)
	assert.Equal(t, "AhKd", records[0].HoleCards)
	assert.Equal(t, hand.Raise, records[0].Action)
	assert.Equal(t, hand.Won, records[0].Result)
	assert.Equal(t, 25.5, records[0].ProfitLoss)
	assert.Empty(t, records[0].Notes)

	assert.Equal(t, hand.BB, records[1].Position)
	assert.Equal(t, -1.0, records[1].ProfitLoss)
	assert.Equal(t, "blind", records[1].Notes)
	assert.Equal(t, mock.Now().Format(hand.TimestampLayout), records[1].Timestamp)
}

func TestAppendEscapesDelimiters(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Initialize())

	rec := sampleRecord()
	rec.Notes = "raised, then \"snap\" called\nvillain tilted"
	_, err := st.Append(rec)
	require.NoError(t, err)

	records, err := st.LoadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, rec.Notes, records[0].Notes)
}

func TestLoadAllMissingFile(t *testing.T) {
	st, _ := newTestStore(t)

	records, err := st.LoadAll()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestLoadAllColumnMismatch(t *testing.T) {
	st, _ := newTestStore(t)
	data := "timestamp,position,hole_cards,action,result,profit_loss,notes\n" +
		"2025-01-02 03:04:05,BTN,AhKd,Raise,Won\n"
	require.NoError(t, os.WriteFile(st.Path(), []byte(data), 0o644))

	_, err := st.LoadAll()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 2, parseErr.Line)
}

func TestLoadAllMissingHeader(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, os.WriteFile(st.Path(), nil, 0o644))

	_, err := st.LoadAll()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)

	require.NoError(t, os.WriteFile(st.Path(), []byte("date,amount\n"), 0o644))
	_, err = st.LoadAll()
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, 1, parseErr.Line)
}

func TestLoadAllBadProfit(t *testing.T) {
	st, _ := newTestStore(t)
	data := "timestamp,position,hole_cards,action,result,profit_loss,notes\n" +
		"2025-01-02 03:04:05,BTN,AhKd,Raise,Won,lots,\n"
	require.NoError(t, os.WriteFile(st.Path(), []byte(data), 0o644))

	_, err := st.LoadAll()
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
}

func TestWriteCSVRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	require.NoError(t, st.Initialize())
	_, err := st.Append(sampleRecord())
	require.NoError(t, err)

	records, err := st.LoadAll()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, records))

	other := New(Config{Path: filepath.Join(t.TempDir(), "export.csv")}, zerolog.Nop())
	require.NoError(t, os.WriteFile(other.Path(), buf.Bytes(), 0o644))

	reloaded, err := other.LoadAll()
	require.NoError(t, err)
	assert.Equal(t, records, reloaded)
}

func TestWriteTOMLSections(t *testing.T) {
	var buf bytes.Buffer
	records := []hand.Record{sampleRecord(), {Position: hand.BB, HoleCards: "7c2d", Action: hand.Fold, Result: hand.Lost, ProfitLoss: -1}}
	require.NoError(t, WriteTOML(&buf, records))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "[1]\n"))
	assert.Contains(t, out, "[2]")
	assert.Contains(t, out, `hole_cards = "AhKd"`)
}
