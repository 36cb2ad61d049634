package valuation

import "github.com/hammad983ae/sustaino-sub002/pkg/constants"

// IncomeApproach capitalises net income at a whole-number percentage rate.
// A zero or negative rate yields 0.
func IncomeApproach(netIncome, capitalisationRate float64) float64 {
	if capitalisationRate > 0 {
		return (netIncome / capitalisationRate) * constants.PercentageMultiplier
	}
	return 0
}

// CostApproach is land plus building less depreciation plus adjustments.
func CostApproach(landValue, buildingValue, depreciation, adjustments float64) float64 {
	return landValue + buildingValue - depreciation + adjustments
}

// ComparisonApproach is market evidence plus adjustments.
func ComparisonApproach(marketEvidence, adjustments float64) float64 {
	return marketEvidence + adjustments
}

// CalculateApproaches computes all three value indications.
func CalculateApproaches(in Inputs) Approaches {
	return Approaches{
		Income:     IncomeApproach(in.NetIncome, in.CapitalisationRate),
		Cost:       CostApproach(in.LandValue, in.BuildingValue, in.Depreciation, in.Adjustments),
		Comparison: ComparisonApproach(in.MarketEvidence, in.Adjustments),
	}
}
