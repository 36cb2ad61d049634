// Package valuation reconciles the income, cost and sales-comparison
// approaches into a single weighted market value with a variance-derived
// confidence rating.
//
// Every function in this package is pure: results depend only on the
// arguments and the weight table a Reconciler was built with.
package valuation

import (
	"fmt"
	"strings"
)

// Method is a valuation approach.
type Method string

const (
	MethodUnset      Method = ""
	MethodIncome     Method = "income"
	MethodCost       Method = "cost"
	MethodComparison Method = "comparison"
)

// ParseMethod converts user input into a Method. Empty input is MethodUnset.
func ParseMethod(value string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "unset", "none":
		return MethodUnset, nil
	case "income", "capitalisation", "capitalization":
		return MethodIncome, nil
	case "cost", "summation":
		return MethodCost, nil
	case "comparison", "sales", "direct-comparison":
		return MethodComparison, nil
	default:
		return MethodUnset, fmt.Errorf("unknown valuation method %q", value)
	}
}

// PropertyType selects the base approach weights.
type PropertyType string

const (
	PropertyUnset        PropertyType = ""
	PropertyCommercial   PropertyType = "commercial"
	PropertyResidential  PropertyType = "residential"
	PropertyAgricultural PropertyType = "agricultural"
	PropertySpecialised  PropertyType = "specialised"
)

// ParsePropertyType converts user input into a PropertyType. Empty input is
// PropertyUnset.
func ParsePropertyType(value string) (PropertyType, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "unset", "none", "default":
		return PropertyUnset, nil
	case "commercial":
		return PropertyCommercial, nil
	case "residential":
		return PropertyResidential, nil
	case "agricultural", "rural":
		return PropertyAgricultural, nil
	case "specialised", "specialized":
		return PropertySpecialised, nil
	default:
		return PropertyUnset, fmt.Errorf("unknown property type %q", value)
	}
}

// Confidence rates how closely the approaches agree.
type Confidence string

const (
	ConfidenceHigh   Confidence = "High"
	ConfidenceMedium Confidence = "Medium"
	ConfidenceLow    Confidence = "Low"
)

// Inputs holds the raw figures entered for a valuation. CapitalisationRate
// is a whole-number percentage: 8 means 8%.
type Inputs struct {
	PrimaryMethod      Method       `json:"primaryMethod" yaml:"primaryMethod"`
	SecondaryMethod    Method       `json:"secondaryMethod" yaml:"secondaryMethod"`
	PropertyType       PropertyType `json:"propertyType" yaml:"propertyType"`
	LandValue          float64      `json:"landValue" yaml:"landValue"`
	BuildingValue      float64      `json:"buildingValue" yaml:"buildingValue"`
	Depreciation       float64      `json:"depreciation" yaml:"depreciation"`
	Adjustments        float64      `json:"adjustments" yaml:"adjustments"`
	NetIncome          float64      `json:"netIncome" yaml:"netIncome"`
	CapitalisationRate float64      `json:"capitalisationRate" yaml:"capitalisationRate"`
	MarketEvidence     float64      `json:"marketEvidence" yaml:"marketEvidence"`
}

// Approaches holds the three value indications.
type Approaches struct {
	Income     float64 `json:"incomeApproach"`
	Cost       float64 `json:"costApproach"`
	Comparison float64 `json:"comparisonApproach"`
}

// Values returns the indications in income, cost, comparison order.
func (a Approaches) Values() []float64 {
	return []float64{a.Income, a.Cost, a.Comparison}
}

// Weights are the per-approach reconciliation weights.
type Weights struct {
	Income     float64 `json:"income" yaml:"income"`
	Cost       float64 `json:"cost" yaml:"cost"`
	Comparison float64 `json:"comparison" yaml:"comparison"`
}

// Sum returns the total of the three weights.
func (w Weights) Sum() float64 {
	return w.Income + w.Cost + w.Comparison
}

// VarianceAnalysis describes the spread between the positive approach values.
type VarianceAnalysis struct {
	HighValue          float64 `json:"highValue"`
	LowValue           float64 `json:"lowValue"`
	Variance           float64 `json:"variance"`
	VariancePercentage float64 `json:"variancePercentage"`
}

// Result is a fully reconciled valuation.
type Result struct {
	IncomeApproach     float64          `json:"incomeApproach"`
	CostApproach       float64          `json:"costApproach"`
	ComparisonApproach float64          `json:"comparisonApproach"`
	WeightedValue      float64          `json:"weightedValue"`
	MethodologyWeights Weights          `json:"methodologyWeights"`
	Confidence         Confidence       `json:"confidence"`
	VarianceAnalysis   VarianceAnalysis `json:"varianceAnalysis"`
}
