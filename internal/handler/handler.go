package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/service"
)

type Handler struct {
	svc *service.Service
	log *logrus.Logger
}

func NewHandler(svc *service.Service, log *logrus.Logger) *Handler {
	return &Handler{svc: svc, log: log}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses: validation 400,
// not found 404, concurrency conflict 409 (retryable), invariant violation
// and everything else 500.
func (h *Handler) writeError(w http.ResponseWriter, err error) {
	switch {
	case apperrors.IsValidation(err):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, apperrors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "not found"})
	case errors.Is(err, apperrors.ErrConcurrencyConflict):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case apperrors.IsInvariant(err):
		h.log.Errorf("Invariant violation: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal inconsistency detected"})
	default:
		h.log.Errorf("Internal error: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return apperrors.NewValidation("invalid request body")
	}
	return nil
}
