package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rcastro/fundwise/internal/modules/advisor"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPositions struct{ positions []domain.Position }

func (s *stubPositions) GetByPortfolio(_ context.Context, _ string) ([]domain.Position, error) {
	return s.positions, nil
}

type stubTargets struct{ targets []domain.TargetAllocation }

func (s *stubTargets) GetModel(_ context.Context, _ string) ([]domain.TargetAllocation, error) {
	return s.targets, nil
}

type stubPrices struct{ infos map[string]domain.PriceInfo }

func (s *stubPrices) Resolve(fundCode string) (domain.PriceInfo, bool) {
	info, ok := s.infos[fundCode]
	return info, ok
}

func ptr(v float64) *float64 { return &v }

func defaults() advisor.Config {
	return advisor.Config{
		WeightImbalance:       70,
		WeightDiscount:        30,
		SequentialAllocation:  true,
		ImbalanceTolerancePct: 1.0,
	}
}

func testRouter(targets []domain.TargetAllocation, infos map[string]domain.PriceInfo) *chi.Mux {
	service := advisor.NewService(
		&stubPositions{},
		&stubTargets{targets: targets},
		&stubPrices{infos: infos},
		zerolog.Nop(),
	)
	handler := NewHandler(service, defaults(), 100, 100000, zerolog.Nop())

	router := chi.NewRouter()
	router.Route("/api", func(r chi.Router) {
		handler.RegisterRoutes(r)
	})
	return router
}

func postRecommendation(t *testing.T, router *chi.Mux, body map[string]interface{}) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations/", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHandleRecommend_Success(t *testing.T) {
	router := testRouter(
		[]domain.TargetAllocation{{FundCode: "HGLG11", IdealPct: 100}},
		map[string]domain.PriceInfo{
			"HGLG11": {FundCode: "HGLG11", CurrentPrice: 100, CeilingPrice: ptr(120)},
		},
	)

	rec := postRecommendation(t, router, map[string]interface{}{
		"portfolio_id": "p1",
		"amount":       1000,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var out domain.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	require.Len(t, out.Allocations, 1)
	assert.Equal(t, "HGLG11", out.Allocations[0].FundCode)
	assert.Equal(t, int64(10), out.Allocations[0].UnitsToBuy)
	assert.NotEmpty(t, out.ID)
	assert.NotEmpty(t, out.AlgorithmVersion)
}

func TestHandleRecommend_MissingPortfolioID(t *testing.T) {
	router := testRouter(nil, nil)

	rec := postRecommendation(t, router, map[string]interface{}{"amount": 1000})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecommend_AmountOutsideBounds(t *testing.T) {
	router := testRouter(nil, nil)

	for _, amount := range []float64{50, 200000} {
		rec := postRecommendation(t, router, map[string]interface{}{
			"portfolio_id": "p1",
			"amount":       amount,
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code, "amount %.0f must be rejected at the boundary", amount)
	}
}

func TestHandleRecommend_NoTargetModel(t *testing.T) {
	router := testRouter(nil, nil)

	rec := postRecommendation(t, router, map[string]interface{}{
		"portfolio_id": "p1",
		"amount":       1000,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Contains(t, body["error"], "no target model")
}

func TestHandleRecommend_ConfigOverrides(t *testing.T) {
	router := testRouter(
		[]domain.TargetAllocation{{FundCode: "HGLG11", IdealPct: 100}},
		map[string]domain.PriceInfo{
			"HGLG11": {FundCode: "HGLG11", CurrentPrice: 100, CeilingPrice: ptr(120)},
		},
	)

	rec := postRecommendation(t, router, map[string]interface{}{
		"portfolio_id":          "p1",
		"amount":                1000,
		"sequential_allocation": false,
		"weight_imbalance":      50,
		"weight_discount":       50,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var out domain.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, domain.StrategyProportional, out.Configuration.Strategy)
	assert.Equal(t, 50.0, out.Configuration.WeightImbalance)
}

func TestHandleRecommend_InvalidOverrideRejected(t *testing.T) {
	router := testRouter(
		[]domain.TargetAllocation{{FundCode: "HGLG11", IdealPct: 100}},
		nil,
	)

	rec := postRecommendation(t, router, map[string]interface{}{
		"portfolio_id":     "p1",
		"amount":           1000,
		"weight_imbalance": 250,
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleRecommend_MalformedBody(t *testing.T) {
	router := testRouter(nil, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/recommendations/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
