package wacc

import (
	"math"
	"testing"
)

func TestEstimate(t *testing.T) {
	res := Estimate(Input{
		UnleveredBeta:     0.8,
		RiskFreeRate:      0.04,
		MarketRiskPremium: 0.05,
		PreTaxCostOfDebt:  0.06,
		TaxRate:           0.22,
		DebtToEquity:      0.5,
	})

	leveredBeta := 0.8 * (1 + 0.78*0.5)
	ke := 0.04 + leveredBeta*0.05
	kd := 0.06 * 0.78
	want := ke*(2.0/3.0) + kd*(1.0/3.0)

	if math.Abs(res.LeveredBeta-leveredBeta) > 1e-12 {
		t.Errorf("LeveredBeta = %v, want %v", res.LeveredBeta, leveredBeta)
	}
	if math.Abs(res.WACC-want) > 1e-12 {
		t.Errorf("WACC = %v, want %v", res.WACC, want)
	}
	if math.Abs(float64(res.DiscountRate)-want) > 1e-12 {
		t.Errorf("DiscountRate = %v, want %v", res.DiscountRate, want)
	}
	if math.Abs(res.WeightDebt+res.WeightEquity-1) > 1e-12 {
		t.Errorf("weights do not sum to 1: %v + %v", res.WeightDebt, res.WeightEquity)
	}
}

func TestEstimate_AllEquity(t *testing.T) {
	res := Estimate(Input{UnleveredBeta: 1, RiskFreeRate: 0.03, MarketRiskPremium: 0.06, DebtToEquity: -2})
	if res.WeightDebt != 0 || res.WeightEquity != 1 {
		t.Errorf("negative D/E should be all equity, got %v / %v", res.WeightDebt, res.WeightEquity)
	}
	if math.Abs(res.WACC-0.09) > 1e-12 {
		t.Errorf("WACC = %v, want 0.09", res.WACC)
	}
}

func TestEstimate_DiscountRateClamped(t *testing.T) {
	res := Estimate(Input{UnleveredBeta: 10, RiskFreeRate: 0.5, MarketRiskPremium: 0.2})
	if res.DiscountRate != 1 {
		t.Errorf("DiscountRate = %v, want clamp to 1", res.DiscountRate)
	}
	res = Estimate(Input{RiskFreeRate: -0.02})
	if res.DiscountRate != 0 {
		t.Errorf("DiscountRate = %v, want clamp to 0", res.DiscountRate)
	}
}
