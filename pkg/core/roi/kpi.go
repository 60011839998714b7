package roi

// CalculateKPIs aggregates the chain net cash flows and the chain
// subscription cost flows into NPV, cost NPV, ROI and payback.
func CalculateKPIs(cashFlows, costFlows ChainCashFlowSeries, rate Fraction) KPIResult {
	return aggregateKPIs(cashFlows, DiscountSeries(cashFlows, rate), DiscountSeries(costFlows, rate))
}

// aggregateKPIs works from series that are already discounted.
func aggregateKPIs(cashFlows, discounted, discountedCost ChainCashFlowSeries) KPIResult {
	// 1. NPV of net flows
	npv := discounted.Sum()

	// 2. NPV of subscription cost only (ROI denominator)
	costNPV := discountedCost.Sum()

	return KPIResult{
		NPV:     npv,
		CostNPV: costNPV,
		ROI:     CalculateROI(npv, costNPV),
		Payback: CalculatePayback(cashFlows),
	}
}

// CalculateROI returns npv / costNPV. When there is no discounted cost the
// ROI is reported as exactly 0 rather than undefined or infinite.
func CalculateROI(npv, costNPV float64) float64 {
	if costNPV > 0 {
		return npv / costNPV
	}
	return 0
}

// CalculatePayback finds the first year in which the undiscounted
// cumulative chain cash flow is non-negative.
func CalculatePayback(cashFlows ChainCashFlowSeries) Payback {
	for i, cumulative := range cashFlows.Cumulative() {
		if cumulative >= 0 {
			return PaybackInYear(i + 1)
		}
	}
	return PaybackNotReached
}
