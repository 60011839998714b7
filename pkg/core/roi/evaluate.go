package roi

// Evaluate runs the full pipeline for one input snapshot:
// InputSet -> per-store breakdown -> chain flows -> discounting -> KPIs.
// It holds no state; identical inputs give bit-identical results.
func Evaluate(input InputSet) Result {
	// 1. Per-store value
	breakdown := CalculatePerStoreValue(input)

	// 2. Chain flows, benefits and fee both weighted by adoption
	cashFlows := BuildChainCashFlows(breakdown.NetAnnualValuePerStore, input.StoreCount, input.Adoption)
	costFlows := BuildChainCostFlows(input.SubscriptionFeePerStore, input.StoreCount, input.Adoption)

	// 3. Discounting
	discounted := DiscountSeries(cashFlows, input.DiscountRate)
	discountedCost := DiscountSeries(costFlows, input.DiscountRate)

	// 4. KPIs
	kpi := aggregateKPIs(cashFlows, discounted, discountedCost)

	return Result{
		Breakdown:           breakdown,
		CashFlows:           cashFlows,
		DiscountedCashFlows: discounted,
		CostFlows:           costFlows,
		DiscountedCostFlows: discountedCost,
		CumulativeCashFlows: cashFlows.Cumulative(),
		NPV:                 kpi.NPV,
		CostNPV:             kpi.CostNPV,
		ROI:                 kpi.ROI,
		Payback:             kpi.Payback,
	}
}
