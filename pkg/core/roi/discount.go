package roi

import "math"

// DiscountFactor returns 1 / (1+r)^year. Cash is assumed to arrive at the
// end of each year.
func DiscountFactor(rate Fraction, year int) float64 {
	return 1.0 / math.Pow(1.0+float64(rate), float64(year))
}

// PresentValue discounts a year-n cash flow: cf / (1+r)^n.
// With r = 0 the nominal amount is returned unchanged.
func PresentValue(cf float64, rate Fraction, year int) float64 {
	return cf * DiscountFactor(rate, year)
}

// DiscountSeries discounts every year of a series at a fixed rate.
func DiscountSeries(series ChainCashFlowSeries, rate Fraction) ChainCashFlowSeries {
	var pv ChainCashFlowSeries
	for i, cf := range series {
		pv[i] = PresentValue(cf, rate, i+1)
	}
	return pv
}
