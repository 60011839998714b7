package inputs

import "github.com/finnegil-spec/orbital-roi/pkg/core/roi"

// Form is the calculator form as typed by the user. Rates are in percent
// ("10" is 10 %), amounts in currency units, and decimal commas are allowed.
type Form struct {
	Stores          string    `json:"stores"`
	RevenuePerStore string    `json:"revenuePerStore"`
	FeePerStore     string    `json:"feePerStore"`
	WACC            string    `json:"wacc"`
	GrossMargin     string    `json:"grossMargin"`
	SalesUplift     string    `json:"salesUplift"`
	MarginPP        string    `json:"marginPP"`
	WasteReduction  string    `json:"wasteReduction"`
	LaborEfficiency string    `json:"laborEfficiency"`
	Compliance      string    `json:"compliance"`
	Adoption        [3]string `json:"adoption"`
}

// DefaultForm returns the calculator's initial state.
func DefaultForm() Form {
	return Form{
		Stores:          "100",
		RevenuePerStore: "1200000",
		FeePerStore:     "600000",
		WACC:            "10",
		GrossMargin:     "32",
		SalesUplift:     "1,5",
		MarginPP:        "0,5",
		WasteReduction:  "0,5",
		LaborEfficiency: "2",
		Compliance:      "10000",
		Adoption:        [3]string{"20", "70", "100"},
	}
}

// Values parses every field and converts percent fields to fractions.
// No clamping happens here so Check can still see the raw values.
func (f Form) Values() Values {
	pct := func(s string) float64 { return ParseNumber(s) / 100 }

	return Values{
		StoreCount:               ParseNumber(f.Stores),
		RevenuePerStore:          ParseNumber(f.RevenuePerStore),
		SubscriptionFeePerStore:  ParseNumber(f.FeePerStore),
		DiscountRate:             pct(f.WACC),
		BaselineGrossMargin:      pct(f.GrossMargin),
		SalesUpliftRate:          pct(f.SalesUplift),
		MarginImprovementPP:      pct(f.MarginPP),
		WasteReductionRate:       pct(f.WasteReduction),
		LaborEfficiencyRate:      pct(f.LaborEfficiency),
		ComplianceSavingPerStore: ParseNumber(f.Compliance),
		Adoption:                 [3]float64{pct(f.Adoption[0]), pct(f.Adoption[1]), pct(f.Adoption[2])},
	}
}

// InputSet parses and clamps the form into an engine input.
func (f Form) InputSet() roi.InputSet {
	return f.Values().InputSet()
}
