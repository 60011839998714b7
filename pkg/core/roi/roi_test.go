package roi

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// goldenInput is the reference scenario shipped as the calculator default.
func goldenInput() InputSet {
	return InputSet{
		StoreCount:               100,
		RevenuePerStore:          1_200_000,
		SubscriptionFeePerStore:  600_000,
		DiscountRate:             0.10,
		BaselineGrossMargin:      0.32,
		SalesUpliftRate:          0.015,
		MarginImprovementPP:      0.005,
		WasteReductionRate:       0.005,
		LaborEfficiencyRate:      0.02,
		ComplianceSavingPerStore: 10_000,
		Adoption:                 AdoptionSchedule{0.20, 0.70, 1.00},
	}
}

func approx(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

var paybackComparer = cmp.Comparer(func(a, b Payback) bool { return a == b })

func TestCalculatePerStoreValue_Golden(t *testing.T) {
	b := CalculatePerStoreValue(goldenInput())

	expectedNet := (1_200_000 * (0.32 + 0.005) * 0.015) +
		(1_200_000 * 0.005) +
		(1_200_000 * 0.005) +
		(1_200_000 * 0.02) +
		10_000 - 600_000

	if !approx(b.NetAnnualValuePerStore, expectedNet, 1e-6) {
		t.Errorf("NetAnnualValuePerStore = %f, want %f", b.NetAnnualValuePerStore, expectedNet)
	}
	if !approx(b.NetAnnualValuePerStore, -548_150, 1e-6) {
		t.Errorf("NetAnnualValuePerStore = %f, want -548150", b.NetAnnualValuePerStore)
	}
	if !approx(b.SalesUpliftValue, 5_850, 1e-6) {
		t.Errorf("SalesUpliftValue = %f, want 5850", b.SalesUpliftValue)
	}
	if !approx(b.MarginImprovementValue, 6_000, 1e-9) {
		t.Errorf("MarginImprovementValue = %f, want 6000", b.MarginImprovementValue)
	}
	if !approx(b.WasteReductionValue, 6_000, 1e-9) {
		t.Errorf("WasteReductionValue = %f, want 6000", b.WasteReductionValue)
	}
	if !approx(b.LaborEfficiencyValue, 24_000, 1e-9) {
		t.Errorf("LaborEfficiencyValue = %f, want 24000", b.LaborEfficiencyValue)
	}
	if b.ComplianceValue != 10_000 {
		t.Errorf("ComplianceValue = %f, want 10000", b.ComplianceValue)
	}
}

func TestCalculatePerStoreValue_Additive(t *testing.T) {
	tests := []struct {
		name  string
		input InputSet
	}{
		{"golden", goldenInput()},
		{"decline scenario", InputSet{
			RevenuePerStore:         800_000,
			SubscriptionFeePerStore: 50_000,
			BaselineGrossMargin:     0.25,
			SalesUpliftRate:         -0.04,
			MarginImprovementPP:     -0.01,
			WasteReductionRate:      -0.002,
			LaborEfficiencyRate:     0.01,
		}},
		{"boundary values", InputSet{
			RevenuePerStore:          1,
			SubscriptionFeePerStore:  0,
			BaselineGrossMargin:      1,
			SalesUpliftRate:          1,
			MarginImprovementPP:      1,
			WasteReductionRate:       -1,
			LaborEfficiencyRate:      -1,
			ComplianceSavingPerStore: 0,
		}},
		{"zero everything", InputSet{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := CalculatePerStoreValue(tt.input)
			sum := b.SalesUpliftValue + b.MarginImprovementValue + b.WasteReductionValue +
				b.LaborEfficiencyValue + b.ComplianceValue - tt.input.SubscriptionFeePerStore
			if b.NetAnnualValuePerStore != sum {
				t.Errorf("net %v is not the exact sum of its components %v", b.NetAnnualValuePerStore, sum)
			}
		})
	}
}

func TestCalculatePerStoreValue_NegativeDriversPreserved(t *testing.T) {
	b := CalculatePerStoreValue(InputSet{
		RevenuePerStore:     1_000_000,
		BaselineGrossMargin: 0.30,
		SalesUpliftRate:     -0.10,
		WasteReductionRate:  -0.01,
	})

	if b.SalesUpliftValue >= 0 {
		t.Errorf("SalesUpliftValue should stay negative, got %f", b.SalesUpliftValue)
	}
	if !approx(b.SalesUpliftValue, -30_000, 1e-6) {
		t.Errorf("SalesUpliftValue = %f, want -30000", b.SalesUpliftValue)
	}
	if !approx(b.WasteReductionValue, -10_000, 1e-9) {
		t.Errorf("WasteReductionValue = %f, want -10000", b.WasteReductionValue)
	}
}

func TestBuildChainCashFlows(t *testing.T) {
	cf := BuildChainCashFlows(-548_150, 100, AdoptionSchedule{0.20, 0.70, 1.00})

	want := ChainCashFlowSeries{-548_150 * 100 * 0.20, -548_150 * 100 * 0.70, -548_150 * 100 * 1.00}
	for i := range cf {
		if !approx(cf[i], want[i], 1e-6) {
			t.Errorf("cf%d = %f, want %f", i+1, cf[i], want[i])
		}
	}
}

func TestBuildChainCashFlows_NonMonotonicAdoption(t *testing.T) {
	cf := BuildChainCashFlows(1_000, 10, AdoptionSchedule{1.0, 0.0, 0.5})

	if cf.Year(1) != 10_000 || cf.Year(2) != 0 || cf.Year(3) != 5_000 {
		t.Errorf("unexpected flows for non-monotonic adoption: %v", cf)
	}
}

func TestPresentValue(t *testing.T) {
	tests := []struct {
		name   string
		cf     float64
		rate   Fraction
		year   int
		expect float64
	}{
		{"zero rate year 1", 1_000, 0, 1, 1_000},
		{"zero rate year 3", -123_456.789, 0, 3, -123_456.789},
		{"ten percent year 1", 1_100, 0.10, 1, 1_000},
		{"ten percent year 2", 1_210, 0.10, 2, 1_000},
		{"full rate year 3", 8_000, 1.0, 3, 1_000},
		{"negative flow", -1_331, 0.10, 3, -1_000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := PresentValue(tt.cf, tt.rate, tt.year)
			if !approx(got, tt.expect, 1e-9) {
				t.Errorf("PresentValue(%v, %v, %d) = %v, want %v", tt.cf, tt.rate, tt.year, got, tt.expect)
			}
		})
	}
}

func TestPresentValue_ZeroRateIsExact(t *testing.T) {
	series := ChainCashFlowSeries{-10_963_000.123, 0.1 + 0.2, 54_815_000.5}
	pv := DiscountSeries(series, 0)
	if pv != series {
		t.Errorf("DiscountSeries at r=0 changed the flows: %v vs %v", pv, series)
	}
}

func TestDiscountFactor(t *testing.T) {
	if got := DiscountFactor(0.10, 2); !approx(got, 1/1.21, 1e-12) {
		t.Errorf("DiscountFactor(0.10, 2) = %v, want %v", got, 1/1.21)
	}
	if got := DiscountFactor(0, 3); got != 1 {
		t.Errorf("DiscountFactor(0, 3) = %v, want 1", got)
	}
	if got, want := PresentValue(1_331, 0.10, 3), 1_331*DiscountFactor(0.10, 3); got != want {
		t.Errorf("PresentValue = %v, want cf * DiscountFactor = %v", got, want)
	}
}

func TestCalculateROI(t *testing.T) {
	tests := []struct {
		name    string
		npv     float64
		costNPV float64
		expect  float64
	}{
		{"positive", 50, 100, 0.5},
		{"negative npv", -150, 100, -1.5},
		{"zero cost guard", 1_000, 0, 0},
		{"zero cost negative npv", -1_000, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateROI(tt.npv, tt.costNPV); got != tt.expect {
				t.Errorf("CalculateROI(%v, %v) = %v, want %v", tt.npv, tt.costNPV, got, tt.expect)
			}
		})
	}
}

func TestCalculatePayback(t *testing.T) {
	tests := []struct {
		name      string
		flows     ChainCashFlowSeries
		wantYears int
		reached   bool
	}{
		{"positive year 1", ChainCashFlowSeries{10, 20, 30}, 1, true},
		{"zero flow counts as paid back", ChainCashFlowSeries{0, -5, -5}, 1, true},
		{"year 2", ChainCashFlowSeries{-10, 15, 1}, 2, true},
		{"exactly zero in year 3", ChainCashFlowSeries{-10, -10, 20}, 3, true},
		{"never", ChainCashFlowSeries{-10, 5, 4}, 0, false},
		{"all negative", ChainCashFlowSeries{-1, -2, -3}, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := CalculatePayback(tt.flows)
			years, ok := p.Years()
			if ok != tt.reached || years != tt.wantYears {
				t.Errorf("CalculatePayback(%v) = (%d, %v), want (%d, %v)", tt.flows, years, ok, tt.wantYears, tt.reached)
			}
		})
	}
}

func TestEvaluate_GoldenScenario(t *testing.T) {
	res := Evaluate(goldenInput())

	net := res.Breakdown.NetAnnualValuePerStore
	if !approx(res.CashFlows.Year(1), net*100*0.20, 1e-6) {
		t.Errorf("cf1 = %f, want %f", res.CashFlows.Year(1), net*100*0.20)
	}

	expectedNPV := res.CashFlows[0]/1.1 + res.CashFlows[1]/(1.1*1.1) + res.CashFlows[2]/(1.1*1.1*1.1)
	if !approx(res.NPV, expectedNPV, 1e-4) {
		t.Errorf("NPV = %f, want %f", res.NPV, expectedNPV)
	}

	// Golden values for the default scenario.
	if !approx(res.NPV, -82_860_841.47, 0.01) {
		t.Errorf("NPV = %.4f, want -82860841.47", res.NPV)
	}
	if !approx(res.CostNPV, 90_698_722.76, 0.01) {
		t.Errorf("CostNPV = %.4f, want 90698722.76", res.CostNPV)
	}
	if !approx(res.ROI, -0.913583, 1e-5) {
		t.Errorf("ROI = %.6f, want -0.913583", res.ROI)
	}
	if res.Payback.Reached() {
		t.Errorf("Payback = %v, want %s", res.Payback, NotReached)
	}
}

func TestEvaluate_ZeroDiscountRate(t *testing.T) {
	in := goldenInput()
	in.DiscountRate = 0

	res := Evaluate(in)
	if res.NPV != res.CashFlows.Sum() {
		t.Errorf("NPV at r=0 = %v, want undiscounted sum %v", res.NPV, res.CashFlows.Sum())
	}
}

func TestEvaluate_ZeroStores(t *testing.T) {
	in := goldenInput()
	in.StoreCount = 0

	res := Evaluate(in)
	for i, cf := range res.CashFlows {
		if cf != 0 {
			t.Errorf("cf%d = %v, want 0", i+1, cf)
		}
	}
	if res.NPV != 0 {
		t.Errorf("NPV = %v, want 0", res.NPV)
	}
	if res.ROI != 0 {
		t.Errorf("ROI = %v, want 0 (no cost)", res.ROI)
	}
}

func TestEvaluate_ZeroStoresNoNegativeZero(t *testing.T) {
	in := goldenInput()
	in.StoreCount = 0

	res := Evaluate(in)
	if res.Breakdown.NetAnnualValuePerStore >= 0 {
		t.Fatalf("golden net value should be negative, got %v", res.Breakdown.NetAnnualValuePerStore)
	}
	for i, cf := range res.CashFlows {
		if math.Signbit(cf) {
			t.Errorf("cf%d is -0", i+1)
		}
	}
	if math.Signbit(res.NPV) {
		t.Error("NPV is -0")
	}

	data, err := json.Marshal(struct {
		CashFlows ChainCashFlowSeries `json:"cashFlows"`
		NPV       float64             `json:"npv"`
	}{res.CashFlows, res.NPV})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if got, want := string(data), `{"cashFlows":[0,0,0],"npv":0}`; got != want {
		t.Errorf("JSON = %s, want %s", got, want)
	}
}

func TestEvaluate_KPIsFromDiscountedSeries(t *testing.T) {
	in := goldenInput()
	res := Evaluate(in)

	if res.NPV != res.DiscountedCashFlows.Sum() {
		t.Errorf("NPV = %v, want sum of discounted flows %v", res.NPV, res.DiscountedCashFlows.Sum())
	}
	if res.CostNPV != res.DiscountedCostFlows.Sum() {
		t.Errorf("CostNPV = %v, want sum of discounted cost %v", res.CostNPV, res.DiscountedCostFlows.Sum())
	}

	want := CalculateKPIs(res.CashFlows, res.CostFlows, in.DiscountRate)
	if diff := cmp.Diff(want, res.KPIs(), paybackComparer); diff != "" {
		t.Errorf("Evaluate KPIs differ from CalculateKPIs (-want +got):\n%s", diff)
	}
}

func TestEvaluate_ZeroFee(t *testing.T) {
	in := goldenInput()
	in.SubscriptionFeePerStore = 0

	res := Evaluate(in)
	if res.CostNPV != 0 {
		t.Errorf("CostNPV = %v, want 0", res.CostNPV)
	}
	if res.ROI != 0 {
		t.Errorf("ROI = %v, want 0", res.ROI)
	}
	if res.NPV <= 0 {
		t.Errorf("NPV = %v, want positive benefits without a fee", res.NPV)
	}
	if years, ok := res.Payback.Years(); !ok || years != 1 {
		t.Errorf("Payback = %v, want 1", res.Payback)
	}
}

func TestEvaluate_FullDiscountRate(t *testing.T) {
	in := goldenInput()
	in.DiscountRate = 1

	res := Evaluate(in)
	want := res.CashFlows[0]/2 + res.CashFlows[1]/4 + res.CashFlows[2]/8
	if !approx(res.NPV, want, 1e-6) {
		t.Errorf("NPV at r=1 = %v, want %v", res.NPV, want)
	}
	if math.IsInf(res.ROI, 0) || math.IsNaN(res.ROI) {
		t.Errorf("ROI must stay finite, got %v", res.ROI)
	}
}

func TestEvaluate_NegativeFlowsNeverPayBack(t *testing.T) {
	in := goldenInput()
	in.Adoption = AdoptionSchedule{0.5, 0.5, 0.5}

	res := Evaluate(in)
	if res.Breakdown.NetAnnualValuePerStore >= 0 {
		t.Fatalf("scenario should have negative net value, got %v", res.Breakdown.NetAnnualValuePerStore)
	}
	if res.Payback != PaybackNotReached {
		t.Errorf("Payback = %v, want %s", res.Payback, NotReached)
	}

	data, err := json.Marshal(res.KPIs())
	if err != nil {
		t.Fatalf("marshal KPIs: %v", err)
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal KPIs: %v", err)
	}
	if raw["paybackYears"] != NotReached {
		t.Errorf("paybackYears = %v, want %q", raw["paybackYears"], NotReached)
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	in := goldenInput()

	first := Evaluate(in)
	second := Evaluate(in)

	if diff := cmp.Diff(first, second, paybackComparer); diff != "" {
		t.Errorf("Evaluate is not deterministic (-first +second):\n%s", diff)
	}
	if math.Float64bits(first.NPV) != math.Float64bits(second.NPV) {
		t.Errorf("NPV bits differ: %x vs %x", math.Float64bits(first.NPV), math.Float64bits(second.NPV))
	}
}

func TestEvaluate_FeeScalesWithAdoption(t *testing.T) {
	in := goldenInput()
	res := Evaluate(in)

	wantCost := ChainCashFlowSeries{600_000 * 100 * 0.20, 600_000 * 100 * 0.70, 600_000 * 100 * 1.00}
	for i := range wantCost {
		if !approx(res.CostFlows[i], wantCost[i], 1e-6) {
			t.Errorf("cost flow year %d = %f, want %f", i+1, res.CostFlows[i], wantCost[i])
		}
	}
}

func TestPaybackJSON(t *testing.T) {
	tests := []struct {
		name string
		p    Payback
		want string
	}{
		{"reached", PaybackInYear(2), "2"},
		{"not reached", PaybackNotReached, `"not_reached"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := json.Marshal(tt.p)
			if err != nil {
				t.Fatalf("marshal: %v", err)
			}
			if string(data) != tt.want {
				t.Errorf("json = %s, want %s", data, tt.want)
			}

			var back Payback
			if err := json.Unmarshal(data, &back); err != nil {
				t.Fatalf("unmarshal: %v", err)
			}
			if back != tt.p {
				t.Errorf("round trip = %v, want %v", back, tt.p)
			}
		})
	}

	var p Payback
	if err := json.Unmarshal([]byte("0"), &p); err == nil {
		t.Error("expected error for payback year 0")
	}
	if err := json.Unmarshal([]byte(`"soon"`), &p); err == nil {
		t.Error("expected error for unknown payback token")
	}
}
