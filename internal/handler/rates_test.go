package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/mukizafabrice/Unguka-sub001/internal/config"
	"github.com/mukizafabrice/Unguka-sub001/internal/integrations/rates"
)

func newRatesClient(t *testing.T, status int, feed string) *rates.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(feed))
	}))
	t.Cleanup(srv.Close)
	log := logrus.New()
	log.SetOutput(io.Discard)
	return rates.NewClient(&config.Config{RatesURL: srv.URL}, log)
}

func TestExchangeRateEncodesJSON(t *testing.T) {
	client := newRatesClient(t, http.StatusOK,
		`<rates><rate currency="USD">1450.25</rate></rates>`)
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ExchangeRate(client)(rec, httptest.NewRequest("GET", "/exchange-rate", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status got %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("content type got %q", ct)
	}
	var body exchangeRateResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Currency != "USD" || body.RWFPerUnit != 1450.25 {
		t.Errorf("body: got %+v, want USD at 1450.25", body)
	}
}

func TestExchangeRateFeedFailure(t *testing.T) {
	client := newRatesClient(t, http.StatusInternalServerError, "down")
	h := newTestHandler()

	rec := httptest.NewRecorder()
	h.ExchangeRate(client)(rec, httptest.NewRequest("GET", "/exchange-rate", nil))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status got %d, want 502", rec.Code)
	}
	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON body: %v", err)
	}
	if body.Error != "exchange rate unavailable" {
		t.Errorf("error: got %q", body.Error)
	}
}
