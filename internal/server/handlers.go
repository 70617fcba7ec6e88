package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/lox/pokertracker/internal/hand"
	"github.com/lox/pokertracker/internal/stats"
	"github.com/lox/pokertracker/internal/store"
)

const maxBodySize = 64 * 1024

// Summary is the aggregate view rendered on the stats page and returned by
// the JSON API.
type Summary struct {
	TotalHands       int                    `json:"total_hands"`
	TotalProfit      float64                `json:"total_profit"`
	WonCount         int                    `json:"won_count"`
	WinRate          float64                `json:"win_rate"`
	ProfitByPosition []stats.PositionProfit `json:"profit_by_position"`
	CountByPosition  []stats.PositionCount  `json:"count_by_position"`
}

func buildSummary(records []hand.Record) Summary {
	return Summary{
		TotalHands:       stats.TotalHands(records),
		TotalProfit:      stats.TotalProfit(records),
		WonCount:         stats.WonCount(records),
		WinRate:          stats.WinRate(records),
		ProfitByPosition: stats.ProfitByPosition(records),
		CountByPosition:  stats.CountByPosition(records),
	}
}

type dashboardData struct {
	Summary Summary
	Recent  []hand.Record
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	data := dashboardData{
		Summary: buildSummary(records),
		Recent:  stats.SortByTimestampDesc(stats.RecentN(records, s.cfg.RecentHands)),
	}
	s.render(w, "dashboard.html", data)
}

type logFormData struct {
	Positions []hand.Position
	Actions   []hand.Action
	Results   []hand.Result
	Form      hand.Record
	Error     string
	Logged    bool
}

func newLogFormData() logFormData {
	return logFormData{
		Positions: hand.Positions(),
		Actions:   hand.Actions(),
		Results:   hand.Results(),
	}
}

func (s *Server) handleLogForm(w http.ResponseWriter, r *http.Request) {
	data := newLogFormData()
	data.Logged = r.URL.Query().Get("logged") == "1"
	s.render(w, "log.html", data)
}

func (s *Server) handleLogSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	rec, err := recordFromForm(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	// Required-field validation happens here at the boundary; a rejected
	// submission appends nothing.
	if err := rec.Validate(); err != nil {
		data := newLogFormData()
		data.Form = rec
		data.Error = "Please enter your hole cards!"
		w.WriteHeader(http.StatusUnprocessableEntity)
		s.render(w, "log.html", data)
		return
	}

	if _, err := s.store.Append(rec); err != nil {
		s.serveError(w, r, err)
		return
	}
	s.notifyUpdated()

	http.Redirect(w, r, "/log?logged=1", http.StatusSeeOther)
}

type historyData struct {
	Hands     []hand.Record
	Total     int
	Positions []checkedPosition
	Results   []checkedResult
	Query     string
}

type checkedPosition struct {
	Position hand.Position
	Checked  bool
}

type checkedResult struct {
	Result  hand.Result
	Checked bool
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	positions, results := filtersFromQuery(r, records)
	filtered := stats.FilterBy(records, positions, results)

	data := historyData{
		Hands: stats.SortByTimestampDesc(filtered),
		Total: len(records),
		Query: r.URL.RawQuery,
	}
	for _, pos := range stats.DistinctPositions(records) {
		data.Positions = append(data.Positions, checkedPosition{Position: pos, Checked: containsPosition(positions, pos)})
	}
	for _, res := range stats.DistinctResults(records) {
		data.Results = append(data.Results, checkedResult{Result: res, Checked: containsResult(results, res)})
	}
	s.render(w, "history.html", data)
}

func (s *Server) handleHistoryCSV(w http.ResponseWriter, r *http.Request) {
	records, ok := s.loadRecords(w, r)
	if !ok {
		return
	}

	positions, results := filtersFromQuery(r, records)
	filtered := stats.FilterBy(records, positions, results)

	filename := fmt.Sprintf("poker_hands_%s.csv", s.clock.Now().Format("20060102"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := store.WriteCSV(w, filtered); err != nil {
		// Headers are already gone; all we can do is log.
		s.logger.Error().Err(err).Msg("csv export failed")
	}
}

func (s *Server) handleAPIHands(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.LoadAll()
	if err != nil {
		s.jsonError(w, err)
		return
	}
	if records == nil {
		records = []hand.Record{}
	}
	writeJSON(w, http.StatusOK, records)
}

func (s *Server) handleAPIHandsCreate(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSONError(w, "failed to read request body", http.StatusBadRequest)
		return
	}

	if err := s.validator.ValidateHand(body); err != nil {
		writeJSONError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var rec hand.Record
	if err := json.Unmarshal(body, &rec); err != nil {
		writeJSONError(w, "failed to decode hand", http.StatusBadRequest)
		return
	}
	if err := rec.Validate(); err != nil {
		writeJSONError(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	stamped, err := s.store.Append(rec)
	if err != nil {
		s.jsonError(w, err)
		return
	}
	s.notifyUpdated()

	writeJSON(w, http.StatusCreated, stamped)
}

func (s *Server) handleAPIStats(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.LoadAll()
	if err != nil {
		s.jsonError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, buildSummary(records))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// notifyUpdated broadcasts the new hand count to open dashboards. The count
// is re-read so the event reflects what a reload would show.
func (s *Server) notifyUpdated() {
	records, err := s.store.LoadAll()
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to reload after append")
		return
	}
	s.hub.Broadcast(Event{Type: "hands_updated", TotalHands: len(records)})
}

func (s *Server) loadRecords(w http.ResponseWriter, r *http.Request) ([]hand.Record, bool) {
	records, err := s.store.LoadAll()
	if err != nil {
		s.serveError(w, r, err)
		return nil, false
	}
	return records, true
}

func (s *Server) serveError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
	var parseErr *store.ParseError
	if errors.As(err, &parseErr) {
		http.Error(w, "hand log is corrupt: "+parseErr.Error(), http.StatusInternalServerError)
		return
	}
	http.Error(w, "internal error", http.StatusInternalServerError)
}

func (s *Server) jsonError(w http.ResponseWriter, err error) {
	s.logger.Error().Err(err).Msg("request failed")
	writeJSONError(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) render(w http.ResponseWriter, name string, data any) {
	if err := s.templates.ExecuteTemplate(w, name, data); err != nil {
		s.logger.Error().Err(err).Str("template", name).Msg("render failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, msg string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

func recordFromForm(r *http.Request) (hand.Record, error) {
	position, err := hand.ParsePosition(r.FormValue("position"))
	if err != nil {
		return hand.Record{}, err
	}
	action, err := hand.ParseAction(r.FormValue("action"))
	if err != nil {
		return hand.Record{}, err
	}
	result, err := hand.ParseResult(r.FormValue("result"))
	if err != nil {
		return hand.Record{}, err
	}

	profit := 0.0
	if raw := r.FormValue("profit_loss"); raw != "" {
		profit, err = strconv.ParseFloat(raw, 64)
		if err != nil {
			return hand.Record{}, fmt.Errorf("invalid profit/loss: %w", err)
		}
	}

	return hand.Record{
		Position:   position,
		HoleCards:  r.FormValue("hole_cards"),
		Action:     action,
		Result:     result,
		ProfitLoss: profit,
		Notes:      r.FormValue("notes"),
	}, nil
}

// filtersFromQuery parses repeated positions/results params, defaulting to
// all distinct values present (unfiltered). Explicit empty params exclude.
func filtersFromQuery(r *http.Request, records []hand.Record) ([]hand.Position, []hand.Result) {
	query := r.URL.Query()

	positions := stats.DistinctPositions(records)
	if raw, ok := query["positions"]; ok {
		positions = positions[:0]
		for _, p := range raw {
			if p == "" {
				continue
			}
			positions = append(positions, hand.Position(p))
		}
	}

	results := stats.DistinctResults(records)
	if raw, ok := query["results"]; ok {
		results = results[:0]
		for _, res := range raw {
			if res == "" {
				continue
			}
			results = append(results, hand.Result(res))
		}
	}
	return positions, results
}

func containsPosition(positions []hand.Position, p hand.Position) bool {
	for _, pos := range positions {
		if pos == p {
			return true
		}
	}
	return false
}

func containsResult(results []hand.Result, res hand.Result) bool {
	for _, r := range results {
		if r == res {
			return true
		}
	}
	return false
}
