// Package report renders an evaluated scenario for people: markdown, HTML,
// Excel, PDF and plain terminal text. All renderers read the same Report
// and the same row builders so the numbers agree across formats.
package report

import (
	"fmt"
	"time"

	"github.com/finnegil-spec/orbital-roi/pkg/core/inputs"
	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
	"github.com/google/uuid"
)

// Report is one evaluation together with the context needed to present it.
type Report struct {
	ID         string             `json:"id"`
	CreatedAt  time.Time          `json:"createdAt"`
	Scenario   string             `json:"scenario"`
	Currency   Currency           `json:"-"`
	Input      roi.InputSet       `json:"input"`
	Result     roi.Result         `json:"result"`
	Warnings   []inputs.Violation `json:"warnings,omitempty"`
	Commentary string             `json:"commentary,omitempty"`
}

// New evaluates input and wraps the result in a Report.
func New(scenario string, cur Currency, input roi.InputSet) *Report {
	if scenario == "" {
		scenario = "Custom"
	}
	return &Report{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC(),
		Scenario:  scenario,
		Currency:  cur,
		Input:     input,
		Result:    roi.Evaluate(input),
	}
}

// Title is the heading shared by every format.
func (r *Report) Title() string {
	return fmt.Sprintf("Chain ROI: %s", r.Scenario)
}

// pair is a label/value pair in a rendered table.
type pair struct {
	Label string
	Value string
}

// summaryRows are the headline KPIs.
func summaryRows(r *Report) []pair {
	res := r.Result
	return []pair{
		{"ROI (3 years)", Percent(res.ROI)},
		{"Payback (years)", PaybackLabel(res.Payback)},
		{fmt.Sprintf("NPV (WACC %s)", Percent(float64(r.Input.DiscountRate))), r.Currency.Money(res.NPV)},
		{"Subscription cost NPV", r.Currency.Money(res.CostNPV)},
		{"Stores", fmt.Sprintf("%d", r.Input.StoreCount)},
	}
}

// cashFlowRow is one projection year across the flow series.
type cashFlowRow struct {
	Year       int
	Adoption   string
	Net        string
	Discounted string
	Cost       string
	Cumulative string
}

func cashFlowRows(r *Report) []cashFlowRow {
	res := r.Result
	out := make([]cashFlowRow, 0, roi.Horizon)
	for n := 1; n <= roi.Horizon; n++ {
		out = append(out, cashFlowRow{
			Year:       n,
			Adoption:   Percent(float64(r.Input.Adoption.Year(n))),
			Net:        r.Currency.Money(res.CashFlows.Year(n)),
			Discounted: r.Currency.Money(res.DiscountedCashFlows.Year(n)),
			Cost:       r.Currency.Money(res.CostFlows.Year(n)),
			Cumulative: r.Currency.Money(res.CumulativeCashFlows.Year(n)),
		})
	}
	return out
}

// breakdownRows itemise one store's annual value.
func breakdownRows(r *Report) []pair {
	b := r.Result.Breakdown
	m := r.Currency.Money
	return []pair{
		{"Sales uplift (gross profit)", m(b.SalesUpliftValue)},
		{"Gross margin improvement", m(b.MarginImprovementValue)},
		{"Waste reduction", m(b.WasteReductionValue)},
		{"Labor efficiency", m(b.LaborEfficiencyValue)},
		{"Compliance / risk", m(b.ComplianceValue)},
		{"Subscription fee", m(-b.SubscriptionFee)},
		{"Net annual value per store", m(b.NetAnnualValuePerStore)},
	}
}

var formulaNotes = []string{
	"Sales uplift = revenue x (gross margin + margin pp) x uplift rate.",
	"Margin improvement = revenue x margin pp.",
	"Chain cash flow in year n = net value per store x stores x adoption in year n.",
	"NPV discounts each year at WACC with end-of-year timing.",
	"ROI = NPV / discounted subscription cost; 0 when there is no cost.",
	"Payback is the first year the undiscounted cumulative chain cash flow is non-negative.",
}
