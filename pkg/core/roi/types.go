// Package roi implements the chain ROI valuation engine: per-store value
// drivers, adoption-weighted chain cash flows, discounting and the KPI set
// (NPV, cost NPV, ROI, payback) over a fixed three-year horizon.
//
// Every function in this package is a pure function of its arguments.
// Callers re-run Evaluate on each input change instead of patching results.
package roi

import (
	"encoding/json"
	"fmt"
)

// Horizon is the number of projection years.
const Horizon = 3

// Fraction is a share in [0, 1]: gross margin, discount rate, adoption.
type Fraction float64

// Rate is a driver applied multiplicatively to revenue (sales uplift,
// waste reduction, labor efficiency). May be negative.
type Rate float64

// PercentagePoints is an additive change to a margin. 0.005 means
// "+0.5 pp", not "+0.5 % of the margin".
type PercentagePoints float64

// AdoptionSchedule holds the share of stores live in year 1, 2 and 3.
// Values are independent; the schedule need not be monotonic.
type AdoptionSchedule [Horizon]Fraction

// Year returns the adoption share for year n (1-based).
func (a AdoptionSchedule) Year(n int) Fraction {
	return a[n-1]
}

// InputSet is a complete, already clamped snapshot of the business
// assumptions. Currency amounts are annual and per store.
type InputSet struct {
	StoreCount               int              `json:"storeCount"`
	RevenuePerStore          float64          `json:"revenuePerStore"`
	SubscriptionFeePerStore  float64          `json:"subscriptionFeePerStore"`
	DiscountRate             Fraction         `json:"discountRate"` // WACC
	BaselineGrossMargin      Fraction         `json:"baselineGrossMargin"`
	SalesUpliftRate          Rate             `json:"salesUpliftRate"`
	MarginImprovementPP      PercentagePoints `json:"marginImprovementPP"`
	WasteReductionRate       Rate             `json:"wasteReductionRate"`
	LaborEfficiencyRate      Rate             `json:"laborEfficiencyRate"`
	ComplianceSavingPerStore float64          `json:"complianceSavingPerStore"`
	Adoption                 AdoptionSchedule `json:"adoption"`
}

// PerStoreValueBreakdown itemises the annual value one store realises.
type PerStoreValueBreakdown struct {
	SalesUpliftValue       float64 `json:"salesUpliftValue"`
	MarginImprovementValue float64 `json:"marginImprovementValue"`
	WasteReductionValue    float64 `json:"wasteReductionValue"`
	LaborEfficiencyValue   float64 `json:"laborEfficiencyValue"`
	ComplianceValue        float64 `json:"complianceValue"`
	SubscriptionFee        float64 `json:"subscriptionFee"`
	NetAnnualValuePerStore float64 `json:"netAnnualValuePerStore"`
}

// GrossValue is the sum of the five value drivers before the fee.
func (b PerStoreValueBreakdown) GrossValue() float64 {
	return b.SalesUpliftValue +
		b.MarginImprovementValue +
		b.WasteReductionValue +
		b.LaborEfficiencyValue +
		b.ComplianceValue
}

// ChainCashFlowSeries holds one chain-level amount per projection year.
type ChainCashFlowSeries [Horizon]float64

// Year returns the amount for year n (1-based).
func (s ChainCashFlowSeries) Year(n int) float64 {
	return s[n-1]
}

// Sum adds the three years without discounting.
func (s ChainCashFlowSeries) Sum() float64 {
	return s[0] + s[1] + s[2]
}

// Cumulative returns the running undiscounted totals through each year.
func (s ChainCashFlowSeries) Cumulative() ChainCashFlowSeries {
	var out ChainCashFlowSeries
	running := 0.0
	for i, cf := range s {
		running += cf
		out[i] = running
	}
	return out
}

// NotReached is the JSON/text token for a payback outside the horizon.
const NotReached = "not_reached"

// Payback is the first year whose undiscounted cumulative cash flow is
// non-negative. The zero value means "not reached"; it never reads as 0 years.
type Payback struct {
	years int
}

// PaybackInYear returns a reached payback for year n (1..Horizon).
func PaybackInYear(n int) Payback {
	return Payback{years: n}
}

// PaybackNotReached is the sentinel for "no payback within the horizon".
var PaybackNotReached = Payback{}

// Reached reports whether payback happens inside the horizon.
func (p Payback) Reached() bool {
	return p.years >= 1 && p.years <= Horizon
}

// Years returns the payback year and whether it was reached.
func (p Payback) Years() (int, bool) {
	if !p.Reached() {
		return 0, false
	}
	return p.years, true
}

func (p Payback) String() string {
	if !p.Reached() {
		return NotReached
	}
	return fmt.Sprintf("%d", p.years)
}

// MarshalJSON encodes a reached payback as a number and the sentinel as
// the string "not_reached".
func (p Payback) MarshalJSON() ([]byte, error) {
	if !p.Reached() {
		return json.Marshal(NotReached)
	}
	return json.Marshal(p.years)
}

// UnmarshalJSON accepts either form written by MarshalJSON.
func (p *Payback) UnmarshalJSON(data []byte) error {
	var n int
	if err := json.Unmarshal(data, &n); err == nil {
		if n < 1 || n > Horizon {
			return fmt.Errorf("payback year %d outside 1..%d", n, Horizon)
		}
		*p = PaybackInYear(n)
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("invalid payback value %s: %w", string(data), err)
	}
	if s != NotReached {
		return fmt.Errorf("invalid payback value %q", s)
	}
	*p = PaybackNotReached
	return nil
}

// KPIResult is the aggregated outcome of a three-year evaluation.
type KPIResult struct {
	NPV     float64 `json:"npv"`
	CostNPV float64 `json:"costNpv"`
	ROI     float64 `json:"roi"`
	Payback Payback `json:"paybackYears"`
}

// Result is everything Evaluate derives from one InputSet.
type Result struct {
	Breakdown           PerStoreValueBreakdown `json:"breakdown"`
	CashFlows           ChainCashFlowSeries    `json:"cashFlows"`
	DiscountedCashFlows ChainCashFlowSeries    `json:"discountedCashFlows"`
	CostFlows           ChainCashFlowSeries    `json:"costFlows"`
	DiscountedCostFlows ChainCashFlowSeries    `json:"discountedCostFlows"`
	CumulativeCashFlows ChainCashFlowSeries    `json:"cumulativeCashFlows"`
	NPV                 float64                `json:"npv"`
	CostNPV             float64                `json:"costNpv"`
	ROI                 float64                `json:"roi"`
	Payback             Payback                `json:"paybackYears"`
}

// KPIs returns the KPI subset of the result.
func (r Result) KPIs() KPIResult {
	return KPIResult{
		NPV:     r.NPV,
		CostNPV: r.CostNPV,
		ROI:     r.ROI,
		Payback: r.Payback,
	}
}
