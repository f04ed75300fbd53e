package handler

import (
	"net/http"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/middleware"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

// PaymentSummary handles GET /payments/summary?userId=&cooperativeId=.
// Members may only view their own summary; the identity resolved by the
// auth middleware overrides whatever the query string says.
func (h *Handler) PaymentSummary(w http.ResponseWriter, r *http.Request) {
	memberID := r.URL.Query().Get("userId")
	cooperativeID := r.URL.Query().Get("cooperativeId")

	callerID, callerCoop, role := middleware.Identity(r.Context())
	if role == models.RoleMember {
		memberID = callerID
		cooperativeID = callerCoop
	}
	if memberID == "" || cooperativeID == "" {
		h.writeError(w, apperrors.NewValidation("userId and cooperativeId are required"))
		return
	}

	summary, err := h.svc.FetchPaymentSummary(r.Context(), memberID, cooperativeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

type processPaymentRequest struct {
	UserID        string `json:"userId"`
	CooperativeID string `json:"cooperativeId"`
	AmountPaid    int64  `json:"amountPaid"`
}

// ProcessPayment handles POST /payments/process. The amount due is
// recomputed server-side; only the amount paid is taken from the client.
func (h *Handler) ProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}

	callerID, callerCoop, role := middleware.Identity(r.Context())
	if role == models.RoleMember {
		req.UserID = callerID
		req.CooperativeID = callerCoop
	}
	if req.UserID == "" || req.CooperativeID == "" {
		h.writeError(w, apperrors.NewValidation("userId and cooperativeId are required"))
		return
	}

	payment, err := h.svc.ProcessPayment(r.Context(), req.UserID, req.CooperativeID, req.AmountPaid)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, payment)
}
