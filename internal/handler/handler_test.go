package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
)

func newTestHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(nil, log)
}

func TestWriteErrorMapsTaxonomy(t *testing.T) {
	h := newTestHandler()

	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"validation", apperrors.NewValidation("amount exceeds amount due"), http.StatusBadRequest, "amount exceeds amount due"},
		{"not found", apperrors.ErrNotFound, http.StatusNotFound, "not found"},
		{"conflict", apperrors.ErrConcurrencyConflict, http.StatusConflict, "concurrent settlement in progress, retry"},
		{"invariant", apperrors.NewInvariant("FindOpenPayment", "found 2 open payments"), http.StatusInternalServerError, "internal inconsistency detected"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "internal error"},
	}

	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.writeError(rec, tc.err)

		if rec.Code != tc.wantStatus {
			t.Errorf("%s: status got %d, want %d", tc.name, rec.Code, tc.wantStatus)
		}
		var body errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("%s: invalid JSON body: %v", tc.name, err)
		}
		if body.Error != tc.wantBody {
			t.Errorf("%s: body got %q, want %q", tc.name, body.Error, tc.wantBody)
		}
		if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: content type got %q", tc.name, ct)
		}
	}
}

func TestWriteErrorWrappedValidation(t *testing.T) {
	h := newTestHandler()
	rec := httptest.NewRecorder()

	// Wrapped validation errors still map to 400.
	h.writeError(rec, apperrors.NewValidation("amount must be positive"))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status got %d, want 400", rec.Code)
	}
}

func TestDecodeBodyRejectsGarbage(t *testing.T) {
	req := httptest.NewRequest("POST", "/payments/process", io.NopCloser(errReader{}))
	var v struct{}
	if err := decodeBody(req, &v); !apperrors.IsValidation(err) {
		t.Errorf("expected ValidationError, got %v", err)
	}
}

type errReader struct{}

func (errReader) Read([]byte) (int, error) { return 0, errors.New("read error") }
