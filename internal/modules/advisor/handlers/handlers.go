// Package handlers provides HTTP handlers for contribution recommendations.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rcastro/fundwise/internal/modules/advisor"
	"github.com/rcastro/fundwise/internal/modules/allocation"
	"github.com/rs/zerolog"
)

// Handler handles recommendation HTTP requests
type Handler struct {
	service         *advisor.Service
	defaults        advisor.Config
	minContribution float64
	maxContribution float64
	log             zerolog.Logger
}

// NewHandler creates a new recommendation handler
func NewHandler(
	service *advisor.Service,
	defaults advisor.Config,
	minContribution float64,
	maxContribution float64,
	log zerolog.Logger,
) *Handler {
	return &Handler{
		service:         service,
		defaults:        defaults,
		minContribution: minContribution,
		maxContribution: maxContribution,
		log:             log.With().Str("handler", "advisor").Logger(),
	}
}

// recommendRequest is the POST body for a recommendation run. All config
// fields are optional; omitted fields fall back to the configured defaults.
type recommendRequest struct {
	PortfolioID           string   `json:"portfolio_id"`
	Amount                float64  `json:"amount"`
	WeightImbalance       *float64 `json:"weight_imbalance,omitempty"`
	WeightDiscount        *float64 `json:"weight_discount,omitempty"`
	MaxFundsLimit         *int     `json:"max_funds_limit,omitempty"`
	SequentialAllocation  *bool    `json:"sequential_allocation,omitempty"`
	ImbalanceTolerancePct *float64 `json:"imbalance_tolerance_pct,omitempty"`
}

// HandleRecommend computes a contribution recommendation.
// Contribution bounds are enforced here, at the API boundary; the engine only
// rejects non-positive budgets.
func (h *Handler) HandleRecommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf("invalid request body: %v", err))
		return
	}

	if req.PortfolioID == "" {
		h.writeError(w, http.StatusBadRequest, "portfolio_id is required")
		return
	}
	if req.Amount < h.minContribution || req.Amount > h.maxContribution {
		h.writeError(w, http.StatusBadRequest, fmt.Sprintf(
			"amount %.2f outside allowed range [%.2f, %.2f]",
			req.Amount, h.minContribution, h.maxContribution,
		))
		return
	}

	cfg := h.mergeConfig(req)

	recommendation, err := h.service.Recommend(r.Context(), req.PortfolioID, req.Amount, cfg)
	if err != nil {
		switch {
		case errors.Is(err, advisor.ErrNoTargetModel):
			h.writeError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, advisor.ErrNoWeights),
			errors.Is(err, advisor.ErrInvalidConfig),
			errors.Is(err, allocation.ErrInvalidBudget):
			h.writeError(w, http.StatusBadRequest, err.Error())
		default:
			h.log.Error().Err(err).Str("portfolio", req.PortfolioID).Msg("Recommendation failed")
			h.writeError(w, http.StatusInternalServerError, "failed to generate recommendation")
		}
		return
	}

	h.writeJSON(w, http.StatusOK, recommendation)
}

// mergeConfig overlays request overrides onto the configured defaults
func (h *Handler) mergeConfig(req recommendRequest) advisor.Config {
	cfg := h.defaults
	if req.WeightImbalance != nil {
		cfg.WeightImbalance = *req.WeightImbalance
	}
	if req.WeightDiscount != nil {
		cfg.WeightDiscount = *req.WeightDiscount
	}
	if req.MaxFundsLimit != nil {
		cfg.MaxFundsLimit = *req.MaxFundsLimit
	}
	if req.SequentialAllocation != nil {
		cfg.SequentialAllocation = *req.SequentialAllocation
	}
	if req.ImbalanceTolerancePct != nil {
		cfg.ImbalanceTolerancePct = *req.ImbalanceTolerancePct
	}
	return cfg
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}
