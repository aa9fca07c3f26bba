// Package imbalance compares current portfolio weights against the
// target-allocation model.
package imbalance

import (
	"math"

	"github.com/rcastro/fundwise/internal/domain"
	"github.com/rs/zerolog"
)

// Calculator computes per-fund weight imbalances.
type Calculator struct {
	log zerolog.Logger
}

// NewCalculator creates a new imbalance calculator.
func NewCalculator(log zerolog.Logger) *Calculator {
	return &Calculator{
		log: log.With().Str("calculator", "imbalance").Logger(),
	}
}

// Calculate returns one FundImbalance per held position plus one synthetic
// record per target-model entry that is not held. The two sets are disjoint
// by fund code, so the union needs no deduplication.
//
// totalValue is the portfolio total to weight against. Pass 0 (or the sum of
// position values) when the caller has no externally-supplied total; weights
// degrade to 0 rather than dividing by zero.
func (c *Calculator) Calculate(
	positions []domain.Position,
	targets []domain.TargetAllocation,
	totalValue float64,
) []domain.FundImbalance {
	targetByCode := make(map[string]domain.TargetAllocation, len(targets))
	for _, t := range targets {
		targetByCode[t.FundCode] = t
	}

	held := make(map[string]bool, len(positions))
	records := make([]domain.FundImbalance, 0, len(positions)+len(targets))

	for _, pos := range positions {
		held[pos.FundCode] = true

		var currentPct float64
		if totalValue > 0 {
			currentPct = pos.CurrentValue / totalValue * 100
		}

		target, inModel := targetByCode[pos.FundCode]

		var idealPct float64
		var sectorTag string
		if inModel {
			idealPct = target.IdealPct
			sectorTag = target.SectorTag
		}

		imb := idealPct - currentPct
		records = append(records, domain.FundImbalance{
			FundCode:          pos.FundCode,
			Name:              pos.Name,
			SectorTag:         sectorTag,
			CurrentPct:        currentPct,
			IdealPct:          idealPct,
			Imbalance:         imb,
			PriorityImbalance: math.Abs(imb),
			InTargetModel:     inModel,
		})
	}

	// Target-model entries with no matching position: fully underweight.
	for _, t := range targets {
		if held[t.FundCode] {
			continue
		}
		records = append(records, domain.FundImbalance{
			FundCode:          t.FundCode,
			Name:              t.FundCode,
			SectorTag:         t.SectorTag,
			CurrentPct:        0,
			IdealPct:          t.IdealPct,
			Imbalance:         t.IdealPct,
			PriorityImbalance: t.IdealPct,
			InTargetModel:     true,
		})
	}

	c.log.Debug().
		Int("positions", len(positions)).
		Int("targets", len(targets)).
		Int("records", len(records)).
		Float64("total_value", totalValue).
		Msg("Calculated fund imbalances")

	return records
}
