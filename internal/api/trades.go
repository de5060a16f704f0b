package api

import (
	"bytes"
	"net/http"
	"strings"

	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/models"
	"crypto-trade-journal/internal/stats"
	"crypto-trade-journal/internal/store"
)

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var in calc.Inputs
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, s.journal.Preview(in))
}

// tradeFilter reads the listing filters from the query string.
func tradeFilter(r *http.Request) (store.TradeFilter, calc.ValidationErrors) {
	q := r.URL.Query()
	f := store.TradeFilter{
		Session:   models.Session(q.Get("session")),
		Direction: models.Direction(q.Get("direction")),
		Result:    models.Result(q.Get("result")),
		Pair:      strings.TrimSpace(q.Get("pair")),
		From:      q.Get("from"),
		To:        q.Get("to"),
		Limit:     parseLimit(r, 0),
	}

	var errs calc.ValidationErrors
	if f.Session != "" && !f.Session.Valid() {
		errs = append(errs, calc.FieldError{Field: "session", Message: "unknown session"})
	}
	if f.Direction != "" && !f.Direction.Valid() {
		errs = append(errs, calc.FieldError{Field: "direction", Message: "must be Long or Short"})
	}
	if f.From != "" && !validateDate(f.From) {
		errs = append(errs, calc.FieldError{Field: "from", Message: "must be YYYY-MM-DD"})
	}
	if f.To != "" && !validateDate(f.To) {
		errs = append(errs, calc.FieldError{Field: "to", Message: "must be YYYY-MM-DD"})
	}
	return f, errs
}

func (s *Server) handleListTrades(w http.ResponseWriter, r *http.Request) {
	f, errs := tradeFilter(r)
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	trades, err := s.journal.ListTrades(r.Context(), userID(r), f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if trades == nil {
		trades = []models.Trade{}
	}
	writeJSON(w, http.StatusOK, trades)
}

func (s *Server) handleCreateTrade(w http.ResponseWriter, r *http.Request) {
	var in models.Trade
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.journal.CreateTrade(r.Context(), userID(r), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleExportTrades(w http.ResponseWriter, r *http.Request) {
	f, errs := tradeFilter(r)
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	var buf bytes.Buffer
	if err := s.journal.ExportCSV(r.Context(), userID(r), f, &buf); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) handleGetTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	t, err := s.journal.GetTrade(r.Context(), userID(r), id)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleUpdateTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in models.Trade
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	updated, err := s.journal.UpdateTrade(r.Context(), userID(r), id, in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTrade(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.journal.DeleteTrade(r.Context(), userID(r), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	f, errs := tradeFilter(r)
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	summary, err := s.journal.Summary(r.Context(), userID(r), f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleBreakdown(w http.ResponseWriter, r *http.Request) {
	f, errs := tradeFilter(r)
	order, ok := stats.ParseOrder(r.URL.Query().Get("sort"))
	if !ok {
		errs = append(errs, calc.FieldError{Field: "sort", Message: "must be pl, count or key"})
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return
	}

	views, err := s.journal.Breakdown(r.Context(), userID(r), r.PathValue("group"), order, f)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, views)
}
