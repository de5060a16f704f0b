package api

import (
	"net/http"
	"strings"

	"crypto-trade-journal/internal/calc"
	"crypto-trade-journal/internal/models"
)

func validateAlert(a models.PriceAlert) calc.ValidationErrors {
	var errs calc.ValidationErrors
	if a.Symbol == "" {
		errs = append(errs, calc.FieldError{Field: "symbol", Message: "is required"})
	}
	if a.Condition != models.ConditionAbove && a.Condition != models.ConditionBelow {
		errs = append(errs, calc.FieldError{Field: "condition", Message: "must be above or below"})
	}
	if a.Price <= 0 {
		errs = append(errs, calc.FieldError{Field: "price", Message: "must be greater than 0"})
	}
	return errs
}

func (s *Server) handleListAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := s.store.ListAlerts(r.Context(), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if alerts == nil {
		alerts = []models.PriceAlert{}
	}
	writeJSON(w, http.StatusOK, alerts)
}

func (s *Server) handleCreateAlert(w http.ResponseWriter, r *http.Request) {
	var in models.PriceAlert
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	// Only the user's own fields are taken from the request.
	a := models.PriceAlert{
		UserID:    userID(r),
		Symbol:    strings.ToUpper(strings.TrimSpace(in.Symbol)),
		Condition: models.AlertCondition(strings.ToLower(string(in.Condition))),
		Price:     in.Price,
		Note:      in.Note,
	}
	if errs := validateAlert(a); len(errs) > 0 {
		writeValidation(w, errs)
		return
	}
	if err := s.store.CreateAlert(r.Context(), &a); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, a)
}

func (s *Server) handleDeleteAlert(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.DeleteAlert(r.Context(), userID(r), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	out, err := s.store.ListNotifications(r.Context(), userID(r), unreadOnly, parseLimit(r, 50))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if out == nil {
		out = []models.Notification{}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleUnreadCount(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.UnreadCount(r.Context(), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"unread": n})
}

func (s *Server) handleMarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.store.MarkRead(r.Context(), userID(r), id); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	n, err := s.store.MarkAllRead(r.Context(), userID(r))
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"updated": n})
}
