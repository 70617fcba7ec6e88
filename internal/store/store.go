// Package store owns the on-disk hand log: a flat CSV file with a fixed
// header, one row per record. It is the sole source of truth; there is no
// in-memory cache between operations.
package store

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/coder/quartz"
	"github.com/rs/zerolog"

	"github.com/lox/pokertracker/internal/fileutil"
	"github.com/lox/pokertracker/internal/hand"
)

// DefaultFile is the backing file used when no path is configured.
const DefaultFile = "poker_hands.csv"

// Header is the fixed CSV column set, in file order.
var Header = []string{"timestamp", "position", "hole_cards", "action", "result", "profit_loss", "notes"}

// ParseError reports a row that could not be decoded into a record. A bad
// row fails the whole load: skipping it would make the aggregate numbers
// disagree with the file the user can open elsewhere.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("store: parse %s line %d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Config configures a Store.
type Config struct {
	// Path is the backing CSV file. Defaults to DefaultFile.
	Path string

	// Clock stamps records at append time. Defaults to the real clock.
	Clock quartz.Clock
}

// Store provides initialize, append and load-all over the backing file.
// Append is a read-modify-write of the entire file; concurrent writers race
// with last-writer-wins semantics, which is accepted for a personal log.
type Store struct {
	path   string
	clock  quartz.Clock
	logger zerolog.Logger
}

// New creates a store for the configured backing file.
func New(cfg Config, logger zerolog.Logger) *Store {
	if cfg.Path == "" {
		cfg.Path = DefaultFile
	}
	if cfg.Clock == nil {
		cfg.Clock = quartz.NewReal()
	}
	return &Store{
		path:   cfg.Path,
		clock:  cfg.Clock,
		logger: logger.With().Str("file", cfg.Path).Logger(),
	}
}

// Path returns the backing file path.
func (s *Store) Path() string { return s.path }

// Initialize creates the backing file with only the header row if it does
// not exist. Calling it again is a no-op and never truncates data.
func (s *Store) Initialize() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("store: stat %s: %w", s.path, err)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(Header); err != nil {
		return fmt.Errorf("store: encode header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("store: encode header: %w", err)
	}

	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("store: initialize %s: %w", s.path, err)
	}
	s.logger.Info().Msg("created hand log")
	return nil
}

// Append stamps the record with the current time, reads the entire file,
// and rewrites it with the record added. The rewrite goes through an atomic
// rename so a crash never leaves a truncated file; the read-modify-write
// race between concurrent writers remains.
func (s *Store) Append(rec hand.Record) (hand.Record, error) {
	records, err := s.LoadAll()
	if err != nil {
		return hand.Record{}, err
	}

	rec.Timestamp = s.clock.Now().Format(hand.TimestampLayout)
	records = append(records, rec)

	if err := s.writeAll(records); err != nil {
		return hand.Record{}, err
	}

	s.logger.Debug().
		Str("position", string(rec.Position)).
		Str("result", string(rec.Result)).
		Float64("profit_loss", rec.ProfitLoss).
		Int("total_hands", len(records)).
		Msg("hand appended")
	return rec, nil
}

// LoadAll returns all records in insertion order, or an empty slice if the
// backing file does not exist.
func (s *Store) LoadAll() ([]hand.Record, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("store: open %s: %w", s.path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // column counts are checked per row below

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, &ParseError{Path: s.path, Line: 1, Err: errors.New("missing header")}
		}
		return nil, &ParseError{Path: s.path, Line: 1, Err: err}
	}
	if !headerMatches(header) {
		return nil, &ParseError{Path: s.path, Line: 1, Err: fmt.Errorf("unexpected header %v", header)}
	}

	var records []hand.Record
	for line := 2; ; line++ {
		row, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Path: s.path, Line: line, Err: err}
		}
		rec, err := decodeRow(row)
		if err != nil {
			return nil, &ParseError{Path: s.path, Line: line, Err: err}
		}
		records = append(records, rec)
	}
	return records, nil
}

func (s *Store) writeAll(records []hand.Record) error {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, records); err != nil {
		return err
	}
	if err := fileutil.WriteFileAtomic(s.path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("store: rewrite %s: %w", s.path, err)
	}
	return nil
}

// WriteCSV streams records in the backing-file layout, header included.
// It is used both for the rewrite path and for user-facing exports.
func WriteCSV(w io.Writer, records []hand.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("store: encode header: %w", err)
	}
	for _, rec := range records {
		if err := cw.Write(encodeRow(rec)); err != nil {
			return fmt.Errorf("store: encode row: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("store: encode csv: %w", err)
	}
	return nil
}

// WriteTOML streams records as numbered TOML sections, the same shape the
// tracker uses for backups.
func WriteTOML(w io.Writer, records []hand.Record) error {
	for i, rec := range records {
		if _, err := fmt.Fprintf(w, "[%d]\n", i+1); err != nil {
			return fmt.Errorf("store: write toml section: %w", err)
		}
		enc := toml.NewEncoder(w)
		enc.Indent = "\t"
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("store: encode toml section %d: %w", i+1, err)
		}
		if i < len(records)-1 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return fmt.Errorf("store: write toml section: %w", err)
			}
		}
	}
	return nil
}

func encodeRow(rec hand.Record) []string {
	return []string{
		rec.Timestamp,
		string(rec.Position),
		rec.HoleCards,
		string(rec.Action),
		string(rec.Result),
		strconv.FormatFloat(rec.ProfitLoss, 'f', -1, 64),
		rec.Notes,
	}
}

func decodeRow(row []string) (hand.Record, error) {
	if len(row) != len(Header) {
		return hand.Record{}, fmt.Errorf("expected %d columns, got %d", len(Header), len(row))
	}
	profit, err := strconv.ParseFloat(row[5], 64)
	if err != nil {
		return hand.Record{}, fmt.Errorf("profit_loss: %w", err)
	}
	// Enum fields are constrained by the input surface, not re-validated here.
	return hand.Record{
		Timestamp:  row[0],
		Position:   hand.Position(row[1]),
		HoleCards:  row[2],
		Action:     hand.Action(row[3]),
		Result:     hand.Result(row[4]),
		ProfitLoss: profit,
		Notes:      row[6],
	}, nil
}

func headerMatches(row []string) bool {
	if len(row) != len(Header) {
		return false
	}
	for i, col := range Header {
		if row[i] != col {
			return false
		}
	}
	return true
}
