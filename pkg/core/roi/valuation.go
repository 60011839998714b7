package roi

// CalculatePerStoreValue converts the business assumptions into the annual
// value one adopted store realises, itemised per driver. Negative drivers
// stay negative so the breakdown always adds up to the net figure.
func CalculatePerStoreValue(input InputSet) PerStoreValueBreakdown {
	revenue := input.RevenuePerStore
	marginPP := float64(input.MarginImprovementPP)

	// 1. Sales uplift is valued at the improved margin
	// SalesUplift = Revenue * (BaselineMargin + MarginPP) * Uplift
	improvedMargin := float64(input.BaselineGrossMargin) + marginPP
	salesUplift := revenue * improvedMargin * float64(input.SalesUpliftRate)

	// 2. Margin improvement applies to the whole revenue base (pp, additive)
	marginImprovement := revenue * marginPP

	// 3. Cost-side drivers are percentages of revenue
	wasteReduction := revenue * float64(input.WasteReductionRate)
	laborEfficiency := revenue * float64(input.LaborEfficiencyRate)

	// 4. Compliance is a flat amount
	compliance := input.ComplianceSavingPerStore

	b := PerStoreValueBreakdown{
		SalesUpliftValue:       salesUplift,
		MarginImprovementValue: marginImprovement,
		WasteReductionValue:    wasteReduction,
		LaborEfficiencyValue:   laborEfficiency,
		ComplianceValue:        compliance,
		SubscriptionFee:        input.SubscriptionFeePerStore,
	}

	// 5. Net = drivers - fee
	b.NetAnnualValuePerStore = b.GrossValue() - input.SubscriptionFeePerStore
	return b
}
