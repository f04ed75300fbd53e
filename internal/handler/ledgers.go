package handler

import (
	"net/http"

	"github.com/mukizafabrice/Unguka-sub001/internal/apperrors"
	"github.com/mukizafabrice/Unguka-sub001/internal/middleware"
	"github.com/mukizafabrice/Unguka-sub001/internal/models"
)

type createFeeRequest struct {
	MemberID      string `json:"memberId"`
	CooperativeID string `json:"cooperativeId"`
	SeasonID      string `json:"seasonId"`
	FeeTypeID     string `json:"feeTypeId"`
	AmountOwed    int64  `json:"amountOwed"`
}

// CreateFee handles POST /fees (manager).
func (h *Handler) CreateFee(w http.ResponseWriter, r *http.Request) {
	var req createFeeRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	fee, err := h.svc.AssignFee(r.Context(), &models.Fee{
		MemberID:      req.MemberID,
		CooperativeID: req.CooperativeID,
		SeasonID:      req.SeasonID,
		FeeTypeID:     req.FeeTypeID,
		AmountOwed:    req.AmountOwed,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, fee)
}

type createLoanRequest struct {
	MemberID      string `json:"memberId"`
	CooperativeID string `json:"cooperativeId"`
	AmountOwed    int64  `json:"amountOwed"`
}

// CreateLoan handles POST /loans (manager).
func (h *Handler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var req createLoanRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	loan, err := h.svc.GrantLoan(r.Context(), &models.Loan{
		MemberID:      req.MemberID,
		CooperativeID: req.CooperativeID,
		AmountOwed:    req.AmountOwed,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, loan)
}

type createProductionRequest struct {
	MemberID      string `json:"memberId"`
	CooperativeID string `json:"cooperativeId"`
	SeasonID      string `json:"seasonId"`
	ProductID     string `json:"productId"`
	Quantity      int64  `json:"quantity"`
	UnitPrice     int64  `json:"unitPrice"`
}

// CreateProduction handles POST /productions (manager).
func (h *Handler) CreateProduction(w http.ResponseWriter, r *http.Request) {
	var req createProductionRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	production, err := h.svc.RecordProduction(r.Context(), &models.Production{
		MemberID:      req.MemberID,
		CooperativeID: req.CooperativeID,
		SeasonID:      req.SeasonID,
		ProductID:     req.ProductID,
		Quantity:      req.Quantity,
		UnitPrice:     req.UnitPrice,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, production)
}

type createFeeTypeRequest struct {
	CooperativeID string `json:"cooperativeId"`
	SeasonID      string `json:"seasonId"`
	Name          string `json:"name"`
	Amount        int64  `json:"amount"`
	AutoApply     bool   `json:"autoApply"`
}

// CreateFeeType handles POST /fee-types (manager).
func (h *Handler) CreateFeeType(w http.ResponseWriter, r *http.Request) {
	var req createFeeTypeRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	ft, err := h.svc.CreateFeeType(r.Context(), &models.FeeType{
		CooperativeID: req.CooperativeID,
		SeasonID:      req.SeasonID,
		Name:          req.Name,
		Amount:        req.Amount,
		AutoApply:     req.AutoApply,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, ft)
}

type createSeasonRequest struct {
	CooperativeID string `json:"cooperativeId"`
	Name          string `json:"name"`
}

// CreateSeason handles POST /seasons (manager).
func (h *Handler) CreateSeason(w http.ResponseWriter, r *http.Request) {
	var req createSeasonRequest
	if err := decodeBody(r, &req); err != nil {
		h.writeError(w, err)
		return
	}
	season, err := h.svc.OpenSeason(r.Context(), &models.Season{
		CooperativeID: req.CooperativeID,
		Name:          req.Name,
	})
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, season)
}

// memberScope resolves the (memberID, cooperativeID) a listing request is
// allowed to see: members always their own, managers whichever member the
// query names.
func (h *Handler) memberScope(r *http.Request) (string, string, error) {
	memberID := r.URL.Query().Get("userId")
	cooperativeID := r.URL.Query().Get("cooperativeId")
	callerID, callerCoop, role := middleware.Identity(r.Context())
	if role == models.RoleMember {
		memberID = callerID
		cooperativeID = callerCoop
	}
	if memberID == "" || cooperativeID == "" {
		return "", "", apperrors.NewValidation("userId and cooperativeId are required")
	}
	return memberID, cooperativeID, nil
}

// ListFees handles GET /fees.
func (h *Handler) ListFees(w http.ResponseWriter, r *http.Request) {
	memberID, cooperativeID, err := h.memberScope(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	fees, err := h.svc.ListFees(r.Context(), memberID, cooperativeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, fees)
}

// ListLoans handles GET /loans.
func (h *Handler) ListLoans(w http.ResponseWriter, r *http.Request) {
	memberID, cooperativeID, err := h.memberScope(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	loans, err := h.svc.ListLoans(r.Context(), memberID, cooperativeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, loans)
}

// ListProductions handles GET /productions.
func (h *Handler) ListProductions(w http.ResponseWriter, r *http.Request) {
	memberID, cooperativeID, err := h.memberScope(r)
	if err != nil {
		h.writeError(w, err)
		return
	}
	productions, err := h.svc.ListProductions(r.Context(), memberID, cooperativeID)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, productions)
}
