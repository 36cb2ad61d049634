package validation

import (
	"fmt"

	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/mathutil"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
)

// ValidateInputs returns warnings for valuation inputs that are accepted by
// the reconciler but are probably data entry mistakes.
func ValidateInputs(name string, in valuation.Inputs) []string {
	var warnings []string

	currency := []struct {
		field string
		value float64
	}{
		{"landValue", in.LandValue},
		{"buildingValue", in.BuildingValue},
		{"depreciation", in.Depreciation},
		{"netIncome", in.NetIncome},
		{"marketEvidence", in.MarketEvidence},
	}
	for _, c := range currency {
		if c.value < 0 {
			warnings = append(warnings, fmt.Sprintf("Valuation '%s' has a negative %s (%.2f)", name, c.field, c.value))
		}
	}

	if in.CapitalisationRate <= 0 && in.NetIncome != 0 {
		warnings = append(warnings, fmt.Sprintf("Valuation '%s' has net income but no capitalisation rate - income approach will be 0", name))
	}

	if in.PropertyType == valuation.PropertyUnset {
		warnings = append(warnings, fmt.Sprintf("Valuation '%s' has no property type - default weights apply", name))
	}

	if in.PrimaryMethod == valuation.MethodUnset {
		warnings = append(warnings, fmt.Sprintf("Valuation '%s' has no primary method - weights are not adjusted", name))
	} else if in.PrimaryMethod == in.SecondaryMethod {
		warnings = append(warnings, fmt.Sprintf("Valuation '%s' uses %s as both primary and secondary method", name, in.PrimaryMethod))
	}

	return warnings
}

// ValidateWeights warns when approach weights are negative or do not sum to 1.
func ValidateWeights(name string, w valuation.Weights) []string {
	var warnings []string

	if w.Income < 0 || w.Cost < 0 || w.Comparison < 0 {
		warnings = append(warnings, fmt.Sprintf("Weights for '%s' contain a negative value (income %.2f, cost %.2f, comparison %.2f)",
			name, w.Income, w.Cost, w.Comparison))
	}

	if !mathutil.WithinTolerance(w.Sum(), 1.0, constants.WeightTolerance) {
		warnings = append(warnings, fmt.Sprintf("Weights for '%s' sum to %.4f, not 1.0", name, w.Sum()))
	}

	return warnings
}

// ValidateSite returns warnings for a site the proposal generator cannot
// assess or can only assess with fallback data.
func ValidateSite(name string, site development.SiteData, tables zoning.Tables) []string {
	var warnings []string

	if site.LandArea <= 0 {
		warnings = append(warnings, fmt.Sprintf("Site '%s' has no positive land area - no proposal can be generated", name))
	}

	if zoning.NormalizeZoning(site.CurrentZoning) == "" {
		warnings = append(warnings, fmt.Sprintf("Site '%s' has no current zoning - the default development type applies", name))
	}

	if !tables.HasState(site.State) {
		warnings = append(warnings, fmt.Sprintf("Site '%s' is in '%s', which has no zoning classification table", name, site.State))
	}

	return warnings
}
