// Package prioritization merges imbalance and discount metrics into a
// scored, classified and ranked fund list.
package prioritization

import (
	"math"
	"sort"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// TieThresholdPP is the priority-imbalance difference, in percentage points,
// under which two BUY_NOW funds are treated as tied and ordered by discount
// instead. The value is a tuning choice, not a hard rule; flagged as a
// candidate for real configuration.
const TieThresholdPP = 0.5

// Engine scores, classifies and ranks funds.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a new prioritization engine.
func NewEngine(log zerolog.Logger) *Engine {
	return &Engine{
		log: log.With().Str("engine", "prioritization").Logger(),
	}
}

// Prioritize merges each imbalance record with its discount record (by fund
// code; an unmatched fund defaults to NO_CEILING), scores every fund with the
// configured weight pair, classifies it, and returns the concatenation
// [BUY_NOW..., WAIT_FOR_DISCOUNT..., DO_NOT_INVEST...].
//
// Weights are expressed 0-100 and conventionally sum to 100; the sum is not
// enforced here.
func (e *Engine) Prioritize(
	imbalances []domain.FundImbalance,
	discounts []domain.FundDiscount,
	weightImbalance float64,
	weightDiscount float64,
) []domain.PrioritizedFund {
	discountByCode := make(map[string]domain.FundDiscount, len(discounts))
	for _, d := range discounts {
		discountByCode[d.FundCode] = d
	}

	var buyNow, waiting, doNotInvest []domain.PrioritizedFund

	for _, imb := range imbalances {
		disc, ok := discountByCode[imb.FundCode]
		if !ok {
			disc = domain.FundDiscount{
				FundCode: imb.FundCode,
				Status:   domain.DiscountStatusNoCeiling,
			}
		}

		fund := domain.PrioritizedFund{
			FundCode:          imb.FundCode,
			Name:              imb.Name,
			SectorTag:         imb.SectorTag,
			CurrentPct:        imb.CurrentPct,
			IdealPct:          imb.IdealPct,
			Imbalance:         imb.Imbalance,
			PriorityImbalance: imb.PriorityImbalance,
			CurrentPrice:      disc.CurrentPrice,
			DiscountPct:       disc.DiscountPct,
			DiscountStatus:    disc.Status,
			Score:             imb.PriorityImbalance*(weightImbalance/100) + disc.PriorityDiscount*(weightDiscount/100),
		}

		fund.Status = classify(imb, disc)
		fund.Justification = justification(fund, imb.InTargetModel)

		switch fund.Status {
		case domain.FundStatusBuyNow:
			buyNow = append(buyNow, fund)
		case domain.FundStatusWaitForDiscount:
			waiting = append(waiting, fund)
		default:
			doNotInvest = append(doNotInvest, fund)
		}
	}

	sortBuyNow(buyNow)
	for i := range buyNow {
		buyNow[i].Rank = i + 1
	}

	// Waiting funds are ordered by how underweight they are; DO_NOT_INVEST
	// keeps insertion order.
	sort.SliceStable(waiting, func(i, j int) bool {
		return waiting[i].PriorityImbalance > waiting[j].PriorityImbalance
	})

	e.log.Debug().
		Int("buy_now", len(buyNow)).
		Int("waiting", len(waiting)).
		Int("do_not_invest", len(doNotInvest)).
		Msg("Prioritized funds")

	result := make([]domain.PrioritizedFund, 0, len(buyNow)+len(waiting)+len(doNotInvest))
	result = append(result, buyNow...)
	result = append(result, waiting...)
	result = append(result, doNotInvest...)
	return result
}

// classify applies the decision rules in strict precedence order; the first
// matching rule wins.
func classify(imb domain.FundImbalance, disc domain.FundDiscount) domain.FundStatus {
	if disc.Status == domain.DiscountStatusNoCeiling {
		return domain.FundStatusDoNotInvest
	}
	if imb.Imbalance <= 0 {
		return domain.FundStatusDoNotInvest
	}
	if disc.DiscountPct != nil && *disc.DiscountPct > 0 {
		return domain.FundStatusBuyNow
	}
	return domain.FundStatusWaitForDiscount
}

// sortBuyNow orders by priority imbalance descending, except that funds whose
// priority imbalances differ by at most TieThresholdPP are treated as tied
// and ordered by discount descending.
func sortBuyNow(funds []domain.PrioritizedFund) {
	sort.SliceStable(funds, func(i, j int) bool {
		diff := funds[i].PriorityImbalance - funds[j].PriorityImbalance
		if math.Abs(diff) <= TieThresholdPP {
			return discountOf(funds[i]) > discountOf(funds[j])
		}
		return diff > 0
	})
}

func discountOf(f domain.PrioritizedFund) float64 {
	if f.DiscountPct == nil {
		return 0
	}
	return *f.DiscountPct
}
