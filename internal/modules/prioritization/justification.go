package prioritization

import (
	"fmt"

	"github.com/rcastro/fundwise/internal/domain"
)

// justification renders the human-readable reason for a fund's status.
// Templates are keyed by (status, sign of imbalance, sign of discount) and
// always name the fund, its current vs ideal weight, and the discount or
// premium magnitude when one exists.
//
// "Missing from the target model" and "present but overweight" collapse into
// the same DO_NOT_INVEST status yet keep distinct messages.
func justification(f domain.PrioritizedFund, inTargetModel bool) string {
	switch f.Status {
	case domain.FundStatusBuyNow:
		return fmt.Sprintf(
			"%s is underweight (%.2f%% vs %.2f%% target) and trades %.2f%% below its ceiling price",
			f.FundCode, f.CurrentPct, f.IdealPct, discountOf(f),
		)

	case domain.FundStatusWaitForDiscount:
		premium := -discountOf(f)
		if premium > 0 {
			return fmt.Sprintf(
				"%s is underweight (%.2f%% vs %.2f%% target) but trades %.2f%% above its ceiling price",
				f.FundCode, f.CurrentPct, f.IdealPct, premium,
			)
		}
		return fmt.Sprintf(
			"%s is underweight (%.2f%% vs %.2f%% target) but trades at its ceiling price",
			f.FundCode, f.CurrentPct, f.IdealPct,
		)

	default:
		if f.DiscountStatus == domain.DiscountStatusNoCeiling {
			return fmt.Sprintf(
				"%s has no ceiling price configured (%.2f%% vs %.2f%% target)",
				f.FundCode, f.CurrentPct, f.IdealPct,
			)
		}
		if !inTargetModel {
			return fmt.Sprintf(
				"%s is not part of the target model (holding %.2f%% of the portfolio)",
				f.FundCode, f.CurrentPct,
			)
		}
		if d := discountOf(f); d > 0 {
			return fmt.Sprintf(
				"%s is at or above its target weight (%.2f%% vs %.2f%%) despite a %.2f%% discount",
				f.FundCode, f.CurrentPct, f.IdealPct, d,
			)
		}
		return fmt.Sprintf(
			"%s is at or above its target weight (%.2f%% vs %.2f%%)",
			f.FundCode, f.CurrentPct, f.IdealPct,
		)
	}
}
