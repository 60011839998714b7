// Package wacc estimates a retailer's weighted average cost of capital, the
// discount rate the ROI engine applies to chain cash flows.
package wacc

import (
	"math"

	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
)

// Input describes the chain's capital structure and market assumptions.
// All rates are fractions.
type Input struct {
	UnleveredBeta     float64 `json:"unleveredBeta"`
	RiskFreeRate      float64 `json:"riskFreeRate"`
	MarketRiskPremium float64 `json:"marketRiskPremium"`
	PreTaxCostOfDebt  float64 `json:"preTaxCostOfDebt"`
	TaxRate           float64 `json:"taxRate"`
	DebtToEquity      float64 `json:"debtToEquity"` // target D/E
}

// Result holds the intermediate rates and the discount rate to use.
type Result struct {
	LeveredBeta  float64      `json:"leveredBeta"`
	CostOfEquity float64      `json:"costOfEquity"`
	CostOfDebt   float64      `json:"costOfDebt"` // after tax
	WeightDebt   float64      `json:"weightDebt"`
	WeightEquity float64      `json:"weightEquity"`
	WACC         float64      `json:"wacc"`
	DiscountRate roi.Fraction `json:"discountRate"` // WACC clamped to [0, 1]
}

// Estimate computes WACC with CAPM and a Hamada re-levered beta.
// Negative leverage is treated as an all-equity structure.
func Estimate(in Input) Result {
	de := math.Max(in.DebtToEquity, 0)

	// 1. Re-lever beta: BetaL = BetaU * (1 + (1-t) * D/E)
	leveredBeta := in.UnleveredBeta * (1 + (1-in.TaxRate)*de)

	// 2. Cost of equity: Ke = Rf + BetaL * ERP
	ke := in.RiskFreeRate + leveredBeta*in.MarketRiskPremium

	// 3. After-tax cost of debt
	kd := in.PreTaxCostOfDebt * (1 - in.TaxRate)

	// 4. Weights from D/E: Wd = x/(1+x), We = 1/(1+x)
	wd := de / (1 + de)
	we := 1 / (1 + de)

	// 5. WACC
	w := ke*we + kd*wd

	return Result{
		LeveredBeta:  leveredBeta,
		CostOfEquity: ke,
		CostOfDebt:   kd,
		WeightDebt:   wd,
		WeightEquity: we,
		WACC:         w,
		DiscountRate: roi.Fraction(math.Min(math.Max(w, 0), 1)),
	}
}
