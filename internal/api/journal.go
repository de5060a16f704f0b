package api

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/models"
	"crypto-trade-journal/internal/store"
)

func validateGoal(g models.Goal) calc.ValidationErrors {
	var errs calc.ValidationErrors
	if strings.TrimSpace(g.Title) == "" {
		errs = append(errs, calc.FieldError{Field: "title", Message: "is required"})
	}
	return errs
}

func validateNote(n models.Note) calc.ValidationErrors {
	var errs calc.ValidationErrors
	if strings.TrimSpace(n.Title) == "" && strings.TrimSpace(n.Content) == "" {
		errs = append(errs, calc.FieldError{Field: "content", Message: "title or content is required"})
	}
	if n.Date != "" && !validateDate(n.Date) {
		errs = append(errs, calc.FieldError{Field: "date", Message: "must be YYYY-MM-DD"})
	}
	return errs
}

// goalFields copies the user-editable fields of a request body onto a fresh goal.
func goalFields(in models.Goal, user string) models.Goal {
	return models.Goal{
		UserID:      user,
		Title:       in.Title,
		Description: in.Description,
		TargetPL:    in.TargetPL,
		Deadline:    in.Deadline,
		Completed:   in.Completed,
	}
}

// noteFields copies the user-editable fields of a request body onto a fresh note.
func noteFields(in models.Note, user string) models.Note {
	return models.Note{
		UserID:  user,
		TradeID: in.TradeID,
		Date:    in.Date,
		Title:   in.Title,
		Content: in.Content,
		Tags:    in.Tags,
		Mood:    in.Mood,
	}
}

// checkNoteTrade rejects a note attached to a trade the caller does not own.
func (s *Server) checkNoteTrade(r *http.Request, n models.Note) (calc.ValidationErrors, error) {
	if n.TradeID == nil {
		return nil, nil
	}
	_, err := s.store.GetTrade(r.Context(), n.UserID, *n.TradeID)
	if errors.Is(err, store.ErrNotFound) {
		return calc.ValidationErrors{{Field: "trade_id", Message: "no such trade"}}, nil
	}
	return nil, err
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.store.ListGoals(r.Context(), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if goals == nil {
		goals = []models.Goal{}
	}
	writeJSON(w, http.StatusOK, goals)
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var in models.Goal
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g := goalFields(in, userID(r))
	if errs := validateGoal(g); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	if err := s.store.CreateGoal(r.Context(), &g); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, g)
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in models.Goal
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	g := goalFields(in, userID(r))
	g.ID = id
	if errs := validateGoal(g); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	if err := s.store.UpdateGoal(r.Context(), &g); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.DeleteGoal(r.Context(), userID(r), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// validNote writes the rejection and returns false when n cannot be saved.
func (s *Server) validNote(w http.ResponseWriter, r *http.Request, n models.Note) bool {
	errs := validateNote(n)
	if len(errs) == 0 {
		tradeErrs, err := s.checkNoteTrade(r, n)
		if err != nil {
			s.writeServiceError(w, r, err)
			return false
		}
		errs = tradeErrs
	}
	if len(errs) > 0 {
		writeValidation(w, errs)
		return false
	}
	return true
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	var tradeID *uint
	if v := r.URL.Query().Get("trade_id"); v != "" {
		n, err := strconv.ParseUint(v, 10, 0)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid trade_id")
			return
		}
		id := uint(n)
		tradeID = &id
	}

	notes, err := s.store.ListNotes(r.Context(), userID(r), tradeID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if notes == nil {
		notes = []models.Note{}
	}
	writeJSON(w, http.StatusOK, notes)
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var in models.Note
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := noteFields(in, userID(r))
	if !s.validNote(w, r, n) {
		return
	}
	if err := s.store.CreateNote(r.Context(), &n); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, n)
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var in models.Note
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	n := noteFields(in, userID(r))
	n.ID = id
	if !s.validNote(w, r, n) {
		return
	}
	if err := s.store.UpdateNote(r.Context(), &n); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.DeleteNote(r.Context(), userID(r), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
