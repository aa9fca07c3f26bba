// Package discount compares fund prices against their configured ceiling
// prices.
package discount

import (
	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// Calculator computes per-fund discount metrics against ceiling prices.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a new discount calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("calculator", "discount").Logger(),
	}
}

// Calculate evaluates every fund code against the price resolver.
// A fund whose price cannot be resolved, or whose ceiling price is absent or
// non-positive, degrades to NO_CEILING with zero priority. One fund's missing
// data never aborts the batch.
func (c *Calculator) Calculate(fundCodes []string, resolver domain.PriceResolver) []domain.FundDiscount {
	records := make([]domain.FundDiscount, 0, len(fundCodes))

	for _, code := range fundCodes {
		info, ok := resolver.Resolve(code)
		if !ok {
			c.log.Debug().Str("fund", code).Msg("Price lookup failed, treating as no ceiling")
			records = append(records, noCeiling(code, 0))
			continue
		}

		if info.CeilingPrice == nil || *info.CeilingPrice <= 0 {
			records = append(records, noCeiling(code, info.CurrentPrice))
			continue
		}

		ceiling := *info.CeilingPrice
		discountPct := (ceiling - info.CurrentPrice) / ceiling * 100

		status := domain.DiscountStatusNotDiscounted
		priority := 0.0
		if discountPct > 0 {
			status = domain.DiscountStatusDiscounted
			priority = discountPct
		}

		records = append(records, domain.FundDiscount{
			FundCode:         code,
			CurrentPrice:     info.CurrentPrice,
			CeilingPrice:     &ceiling,
			DiscountPct:      &discountPct,
			Status:           status,
			PriorityDiscount: priority,
		})
	}

	return records
}

func noCeiling(code string, currentPrice float64) domain.FundDiscount {
	return domain.FundDiscount{
		FundCode:         code,
		CurrentPrice:     currentPrice,
		Status:           domain.DiscountStatusNoCeiling,
		PriorityDiscount: 0,
	}
}
