// Package inputs turns raw user input (form text or numeric payloads) into
// a clamped roi.InputSet. The engine itself never validates; everything
// that reaches roi.Evaluate has passed through here.
package inputs

import (
	"fmt"
	"math"

	"github.com/finnegil-spec/orbital-roi/pkg/core/roi"
)

// MaxStores caps the chain size accepted from any caller.
const MaxStores = 1_000_000

// Values is the numeric form of the inputs in engine units: fractions, not
// percent. It is what scenario files and the JSON API carry.
type Values struct {
	StoreCount               float64    `json:"storeCount" yaml:"storeCount" toml:"storeCount"`
	RevenuePerStore          float64    `json:"revenuePerStore" yaml:"revenuePerStore" toml:"revenuePerStore"`
	SubscriptionFeePerStore  float64    `json:"subscriptionFeePerStore" yaml:"subscriptionFeePerStore" toml:"subscriptionFeePerStore"`
	DiscountRate             float64    `json:"discountRate" yaml:"discountRate" toml:"discountRate"`
	BaselineGrossMargin      float64    `json:"baselineGrossMargin" yaml:"baselineGrossMargin" toml:"baselineGrossMargin"`
	SalesUpliftRate          float64    `json:"salesUpliftRate" yaml:"salesUpliftRate" toml:"salesUpliftRate"`
	MarginImprovementPP      float64    `json:"marginImprovementPP" yaml:"marginImprovementPP" toml:"marginImprovementPP"`
	WasteReductionRate       float64    `json:"wasteReductionRate" yaml:"wasteReductionRate" toml:"wasteReductionRate"`
	LaborEfficiencyRate      float64    `json:"laborEfficiencyRate" yaml:"laborEfficiencyRate" toml:"laborEfficiencyRate"`
	ComplianceSavingPerStore float64    `json:"complianceSavingPerStore" yaml:"complianceSavingPerStore" toml:"complianceSavingPerStore"`
	Adoption                 [3]float64 `json:"adoption" yaml:"adoption" toml:"adoption"`
}

// Bound is the accepted range of one input field.
type Bound struct {
	Field string
	Min   float64
	Max   float64
}

// Bounds lists every field in form order with its accepted range.
var Bounds = []Bound{
	{"storeCount", 0, MaxStores},
	{"revenuePerStore", 0, math.Inf(1)},
	{"subscriptionFeePerStore", 0, math.Inf(1)},
	{"discountRate", 0, 1},
	{"baselineGrossMargin", 0, 1},
	{"salesUpliftRate", -1, 1},
	{"marginImprovementPP", -1, 1},
	{"wasteReductionRate", -1, 1},
	{"laborEfficiencyRate", -1, 1},
	{"complianceSavingPerStore", 0, math.Inf(1)},
	{"adoption[1]", 0, 1},
	{"adoption[2]", 0, 1},
	{"adoption[3]", 0, 1},
}

// fields returns the values in the same order as Bounds.
func (v Values) fields() []float64 {
	return []float64{
		v.StoreCount,
		v.RevenuePerStore,
		v.SubscriptionFeePerStore,
		v.DiscountRate,
		v.BaselineGrossMargin,
		v.SalesUpliftRate,
		v.MarginImprovementPP,
		v.WasteReductionRate,
		v.LaborEfficiencyRate,
		v.ComplianceSavingPerStore,
		v.Adoption[0],
		v.Adoption[1],
		v.Adoption[2],
	}
}

// Violation records a field that was outside its range before clamping.
type Violation struct {
	Field   string  `json:"field"`
	Value   float64 `json:"value"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Clamped float64 `json:"clamped"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s=%g outside [%g, %g], using %g", v.Field, v.Value, v.Min, v.Max, v.Clamped)
}

// Check lists every field that InputSet would have to clamp. Non-finite
// values are reported too; they are replaced by 0 before clamping.
func Check(v Values) []Violation {
	var out []Violation
	for i, raw := range v.fields() {
		b := Bounds[i]
		value := raw
		if i == 0 {
			value = math.Floor(finite(raw))
		}
		if math.IsNaN(raw) || math.IsInf(raw, 0) || value < b.Min || value > b.Max {
			out = append(out, Violation{
				Field:   b.Field,
				Value:   raw,
				Min:     b.Min,
				Max:     b.Max,
				Clamped: Clamp(finite(value), b.Min, b.Max),
			})
		}
	}
	return out
}

// InputSet clamps every field into its accepted range and returns the
// engine input. Store count is floored before clamping.
func (v Values) InputSet() roi.InputSet {
	f := v.fields()
	c := make([]float64, len(f))
	for i := range f {
		value := finite(f[i])
		if i == 0 {
			value = math.Floor(value)
		}
		c[i] = Clamp(value, Bounds[i].Min, Bounds[i].Max)
	}

	return roi.InputSet{
		StoreCount:               int(c[0]),
		RevenuePerStore:          c[1],
		SubscriptionFeePerStore:  c[2],
		DiscountRate:             roi.Fraction(c[3]),
		BaselineGrossMargin:      roi.Fraction(c[4]),
		SalesUpliftRate:          roi.Rate(c[5]),
		MarginImprovementPP:      roi.PercentagePoints(c[6]),
		WasteReductionRate:       roi.Rate(c[7]),
		LaborEfficiencyRate:      roi.Rate(c[8]),
		ComplianceSavingPerStore: c[9],
		Adoption:                 roi.AdoptionSchedule{roi.Fraction(c[10]), roi.Fraction(c[11]), roi.Fraction(c[12])},
	}
}

// FromInputSet converts an engine input back to Values.
func FromInputSet(in roi.InputSet) Values {
	return Values{
		StoreCount:               float64(in.StoreCount),
		RevenuePerStore:          in.RevenuePerStore,
		SubscriptionFeePerStore:  in.SubscriptionFeePerStore,
		DiscountRate:             float64(in.DiscountRate),
		BaselineGrossMargin:      float64(in.BaselineGrossMargin),
		SalesUpliftRate:          float64(in.SalesUpliftRate),
		MarginImprovementPP:      float64(in.MarginImprovementPP),
		WasteReductionRate:       float64(in.WasteReductionRate),
		LaborEfficiencyRate:      float64(in.LaborEfficiencyRate),
		ComplianceSavingPerStore: in.ComplianceSavingPerStore,
		Adoption:                 [3]float64{float64(in.Adoption[0]), float64(in.Adoption[1]), float64(in.Adoption[2])},
	}
}
