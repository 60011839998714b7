package roi

// BuildChainCashFlows scales the per-store net value to the chain for each
// year: net * stores * adoption[n]. Years are computed independently.
func BuildChainCashFlows(netPerStore float64, storeCount int, adoption AdoptionSchedule) ChainCashFlowSeries {
	return scaleByAdoption(netPerStore, storeCount, adoption)
}

// BuildChainCostFlows scales the subscription fee the same way as the
// benefits, so only adopted stores pay in a given year.
func BuildChainCostFlows(feePerStore float64, storeCount int, adoption AdoptionSchedule) ChainCashFlowSeries {
	return scaleByAdoption(feePerStore, storeCount, adoption)
}

func scaleByAdoption(perStore float64, storeCount int, adoption AdoptionSchedule) ChainCashFlowSeries {
	var series ChainCashFlowSeries
	stores := float64(storeCount)
	for i, share := range adoption {
		series[i] = perStore * stores * float64(share)
		if series[i] == 0 {
			series[i] = 0 // drop -0
		}
	}
	return series
}
