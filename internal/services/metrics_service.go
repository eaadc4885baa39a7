package services

import (
	"github.com/shopspring/decimal"

	"github.com/mkamphuis/fundfolio/internal/models"
)

// ComputeTargetAllocations sets each holding's target allocation percentage
// from its target buy amount: targetBuyAmount / Σ targetBuyAmount × 100,
// zero when the sum is zero. Run at ingest time and whenever a target amount
// changes; the value persists across quote refreshes. The input list is not
// mutated.
func ComputeTargetAllocations(holdings []models.Holding) []models.Holding {
	out := models.CloneHoldings(holdings)

	var totalTarget float64
	for _, h := range out {
		totalTarget += h.TargetBuyAmount
	}

	for i := range out {
		if totalTarget > 0 {
			out[i].TargetAllocationPercentage = out[i].TargetBuyAmount / totalTarget * 100
		} else {
			out[i].TargetAllocationPercentage = 0
		}
	}

	return out
}

// ComputeMetrics annotates holdings with current allocation percentages and,
// when a positive new-investment amount is supplied, with the target-driven
// distribution of that amount and the unit quantity it buys under the given
// rounding policy.
//
// The function is pure: deterministic, idempotent, and it never mutates its
// input list. A holding without a current amount contributes nothing to the
// total and reports no allocation of its own.
func ComputeMetrics(holdings []models.Holding, newInvestment float64, policy models.RoundingPolicy) []models.Holding {
	out := models.CloneHoldings(holdings)

	var totalCurrentValue float64
	for _, h := range out {
		if h.CurrentAmount != nil {
			totalCurrentValue += *h.CurrentAmount
		}
	}

	for i := range out {
		h := &out[i]

		h.AllocationPercentage = nil
		if h.CurrentAmount != nil {
			var pct float64
			if totalCurrentValue > 0 {
				pct = *h.CurrentAmount / totalCurrentValue * 100
			}
			h.AllocationPercentage = &pct
		}

		h.NewInvestmentAllocation = nil
		h.QuantityToBuy = nil
		if newInvestment > 0 && h.TargetAllocationPercentage > 0 {
			allocation := newInvestment * h.TargetAllocationPercentage / 100
			h.NewInvestmentAllocation = &allocation

			if h.CurrentPrice != nil && *h.CurrentPrice > 0 && models.ValidRoundingPolicy(policy) {
				qty := RoundQuantity(allocation / *h.CurrentPrice, policy)
				h.QuantityToBuy = &qty
			}
		}
	}

	return out
}

// TotalCurrentValue sums the current amounts of all priced holdings
func TotalCurrentValue(holdings []models.Holding) float64 {
	var total float64
	for _, h := range holdings {
		if h.CurrentAmount != nil {
			total += *h.CurrentAmount
		}
	}
	return total
}

// RoundQuantity converts a fractional unit quantity to a whole number of
// units: up is ceiling, down is floor, nearest rounds half away from zero.
func RoundQuantity(value float64, policy models.RoundingPolicy) float64 {
	d := decimal.NewFromFloat(value)
	switch policy {
	case models.RoundingPolicyUp:
		d = d.Ceil()
	case models.RoundingPolicyDown:
		d = d.Floor()
	case models.RoundingPolicyNearest:
		d = d.Round(0)
	default:
		return value
	}
	f, _ := d.Float64()
	return f
}
