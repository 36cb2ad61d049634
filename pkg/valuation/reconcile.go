package valuation

import (
	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
)

// Reconciler combines approach values into a weighted market value. It holds
// no mutable state and is safe for concurrent use.
type Reconciler struct {
	logger  *zap.Logger
	weights WeightTable
}

// NewReconciler creates a reconciler that resolves weights from the given
// table. A nil logger is replaced by a no-op logger and an empty table by
// DefaultWeightTable.
func NewReconciler(logger *zap.Logger, weights WeightTable) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(weights) == 0 {
		weights = DefaultWeightTable()
	}

	// Copy so later changes to the caller's map cannot leak in.
	table := make(WeightTable, len(weights))
	for k, v := range weights {
		table[k] = v
	}
	return &Reconciler{logger: logger, weights: table}
}

// Table returns a copy of the base weight table.
func (r *Reconciler) Table() WeightTable {
	table := make(WeightTable, len(r.weights))
	for k, v := range r.weights {
		table[k] = v
	}
	return table
}

// Weights returns the weights the reconciler would apply to the inputs.
func (r *Reconciler) Weights(in Inputs) Weights {
	return r.weights.Resolve(in.PropertyType, in.PrimaryMethod)
}

// Reconcile computes a complete Result. It never fails: all-zero input gives
// a zero value with Medium confidence.
func (r *Reconciler) Reconcile(in Inputs) Result {
	approaches := CalculateApproaches(in)
	weights := r.Weights(in)

	weighted := approaches.Income*weights.Income +
		approaches.Cost*weights.Cost +
		approaches.Comparison*weights.Comparison

	variance, ok := AnalyzeVariance(approaches.Values()...)
	confidence := ConfidenceMedium
	if ok {
		confidence = ClassifyConfidence(variance.VariancePercentage)
	}

	r.logger.Debug("valuation reconciled",
		zap.String("op", "valuation.Reconcile"),
		zap.String("propertyType", string(in.PropertyType)),
		zap.String("primaryMethod", string(in.PrimaryMethod)),
		zap.Float64("incomeApproach", approaches.Income),
		zap.Float64("costApproach", approaches.Cost),
		zap.Float64("comparisonApproach", approaches.Comparison),
		zap.Float64("weightedValue", weighted),
		zap.Float64("variancePercentage", variance.VariancePercentage),
		zap.String("confidence", string(confidence)),
	)

	return Result{
		IncomeApproach:     approaches.Income,
		CostApproach:       approaches.Cost,
		ComparisonApproach: approaches.Comparison,
		WeightedValue:      weighted,
		MethodologyWeights: weights,
		Confidence:         confidence,
		VarianceAnalysis:   variance,
	}
}

// Reconcile reconciles the inputs against the default weight table.
func Reconcile(in Inputs) Result {
	return NewReconciler(nil, nil).Reconcile(in)
}

// AnalyzeVariance measures the spread of the strictly positive values. When
// fewer than two values are positive the spread is undefined: the analysis
// reports zero variance and ok is false. High and low then hold the single
// positive value, or 0 if there is none.
func AnalyzeVariance(values ...float64) (analysis VarianceAnalysis, ok bool) {
	positive := make([]float64, 0, len(values))
	for _, v := range values {
		if v > 0 {
			positive = append(positive, v)
		}
	}

	switch len(positive) {
	case 0:
		return VarianceAnalysis{}, false
	case 1:
		return VarianceAnalysis{HighValue: positive[0], LowValue: positive[0]}, false
	}

	high := floats.Max(positive)
	low := floats.Min(positive)
	analysis = VarianceAnalysis{
		HighValue: high,
		LowValue:  low,
		Variance:  high - low,
	}
	if low > 0 {
		analysis.VariancePercentage = analysis.Variance / low * constants.PercentageMultiplier
	}
	return analysis, true
}

// ClassifyConfidence maps a variance percentage to a confidence rating.
func ClassifyConfidence(variancePercentage float64) Confidence {
	switch {
	case variancePercentage < constants.HighConfidenceVariance:
		return ConfidenceHigh
	case variancePercentage > constants.LowConfidenceVariance:
		return ConfidenceLow
	default:
		return ConfidenceMedium
	}
}
