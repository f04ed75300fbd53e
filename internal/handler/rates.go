package handler

import (
	"net/http"

	"github.com/mukizafabrice/Unguka-sub001/internal/integrations/rates"
)

type exchangeRateResponse struct {
	Currency   string  `json:"currency"`
	RWFPerUnit float64 `json:"rwfPerUnit"`
}

// ExchangeRate serves the RWF reference rate for dashboard display. Ledgers
// stay in RWF; the rate is informational only.
func (h *Handler) ExchangeRate(client *rates.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		rate, err := client.GetRate("USD")
		if err != nil {
			h.log.Errorf("Failed to get exchange rate: %v", err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "exchange rate unavailable"})
			return
		}
		writeJSON(w, http.StatusOK, exchangeRateResponse{Currency: "USD", RWFPerUnit: rate})
	}
}
