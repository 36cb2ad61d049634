package valuation

import (
	"math"
	"sync"
	"testing"

	"github.com/hammad983ae/sustaino-sub002/pkg/mathutil"
	"go.uber.org/zap"
)

func scenarioInputs() Inputs {
	return Inputs{
		PrimaryMethod:      MethodIncome,
		PropertyType:       PropertyCommercial,
		LandValue:          2000000,
		BuildingValue:      1500000,
		Depreciation:       200000,
		Adjustments:        50000,
		NetIncome:          500000,
		CapitalisationRate: 8,
		MarketEvidence:     3000000,
	}
}

func TestReconcileScenario(t *testing.T) {
	result := NewReconciler(zap.NewNop(), nil).Reconcile(scenarioInputs())

	checks := []struct {
		name     string
		got      float64
		expected float64
	}{
		{"incomeApproach", result.IncomeApproach, 6250000},
		{"costApproach", result.CostApproach, 3350000},
		{"comparisonApproach", result.ComparisonApproach, 3050000},
		{"weightedValue", result.WeightedValue, 5625000},
		{"highValue", result.VarianceAnalysis.HighValue, 6250000},
		{"lowValue", result.VarianceAnalysis.LowValue, 3050000},
		{"variance", result.VarianceAnalysis.Variance, 3200000},
		{"variancePercentage", result.VarianceAnalysis.VariancePercentage, 104.918},
	}
	for _, c := range checks {
		if !mathutil.WithinTolerance(c.got, c.expected, 0.01) {
			t.Errorf("%s = %v, expected %v", c.name, c.got, c.expected)
		}
	}

	assertWeights(t, result.MethodologyWeights, Weights{0.80, 0.05, 0.15})
	if result.Confidence != ConfidenceLow {
		t.Errorf("confidence = %s, expected Low", result.Confidence)
	}
}

func TestReconcileZeroInput(t *testing.T) {
	result := Reconcile(Inputs{})

	if result.WeightedValue != 0 {
		t.Errorf("weightedValue = %v, expected 0", result.WeightedValue)
	}
	if result.Confidence != ConfidenceMedium {
		t.Errorf("confidence = %s, expected Medium", result.Confidence)
	}
	if result.VarianceAnalysis != (VarianceAnalysis{}) {
		t.Errorf("expected zero variance analysis, got %+v", result.VarianceAnalysis)
	}
	assertWeights(t, result.MethodologyWeights, Weights{0.50, 0.25, 0.25})
}

func TestReconcileConfidenceBands(t *testing.T) {
	tests := []struct {
		name       string
		inputs     Inputs
		confidence Confidence
	}{
		{
			name: "Close agreement is High",
			inputs: Inputs{
				NetIncome:          80000,
				CapitalisationRate: 8,
				LandValue:          500000,
				BuildingValue:      520000,
				MarketEvidence:     1050000,
			},
			confidence: ConfidenceHigh,
		},
		{
			name: "Moderate spread is Medium",
			inputs: Inputs{
				NetIncome:          80000,
				CapitalisationRate: 8,
				LandValue:          600000,
				BuildingValue:      600000,
			},
			confidence: ConfidenceMedium,
		},
		{
			name: "Wide spread is Low",
			inputs: Inputs{
				LandValue:      1000000,
				MarketEvidence: 2000000,
			},
			confidence: ConfidenceLow,
		},
		{
			name: "Single positive approach is Medium",
			inputs: Inputs{
				MarketEvidence: 750000,
			},
			confidence: ConfidenceMedium,
		},
		{
			name: "Negative approaches are ignored",
			inputs: Inputs{
				LandValue:      100000,
				Depreciation:   500000,
				MarketEvidence: 900000,
			},
			confidence: ConfidenceMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Reconcile(tt.inputs)
			if result.Confidence != tt.confidence {
				t.Errorf("confidence = %s, expected %s (variance %+v)", result.Confidence, tt.confidence, result.VarianceAnalysis)
			}
			if math.IsInf(result.VarianceAnalysis.HighValue, 0) || math.IsInf(result.VarianceAnalysis.LowValue, 0) {
				t.Errorf("variance analysis leaked infinities: %+v", result.VarianceAnalysis)
			}
		})
	}
}

func TestReconcileUsesInjectedWeights(t *testing.T) {
	table := WeightTable{PropertyUnset: {Income: 1, Cost: 1, Comparison: 1}}
	reconciler := NewReconciler(nil, table)

	// Mutating the caller's table after construction has no effect.
	table[PropertyUnset] = Weights{}

	result := reconciler.Reconcile(Inputs{LandValue: 100, MarketEvidence: 200})
	if result.WeightedValue != 300 {
		t.Errorf("weightedValue = %v, expected 300 from unnormalized weights", result.WeightedValue)
	}
}

func TestReconcileIsIdempotent(t *testing.T) {
	reconciler := NewReconciler(nil, nil)
	in := scenarioInputs()

	first := reconciler.Reconcile(in)
	second := reconciler.Reconcile(in)
	if first != second {
		t.Errorf("repeated reconciliation differs: %+v vs %+v", first, second)
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := reconciler.Reconcile(in); got != first {
				t.Errorf("concurrent reconciliation differs: %+v", got)
			}
		}()
	}
	wg.Wait()
}

func TestAnalyzeVariance(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected VarianceAnalysis
		ok       bool
	}{
		{"No values", nil, VarianceAnalysis{}, false},
		{"All zero", []float64{0, 0, 0}, VarianceAnalysis{}, false},
		{"One positive", []float64{0, -5, 400}, VarianceAnalysis{HighValue: 400, LowValue: 400}, false},
		{"Two positive", []float64{100, 0, 150}, VarianceAnalysis{HighValue: 150, LowValue: 100, Variance: 50, VariancePercentage: 50}, true},
		{"Equal values", []float64{200, 200, 200}, VarianceAnalysis{HighValue: 200, LowValue: 200}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := AnalyzeVariance(tt.values...)
			if ok != tt.ok {
				t.Errorf("AnalyzeVariance() ok = %v, expected %v", ok, tt.ok)
			}
			if got != tt.expected {
				t.Errorf("AnalyzeVariance() = %+v, expected %+v", got, tt.expected)
			}
		})
	}
}

func TestClassifyConfidence(t *testing.T) {
	tests := []struct {
		pct      float64
		expected Confidence
	}{
		{0, ConfidenceHigh},
		{9.99, ConfidenceHigh},
		{10, ConfidenceMedium},
		{25, ConfidenceMedium},
		{25.01, ConfidenceLow},
		{104.9, ConfidenceLow},
	}

	for _, tt := range tests {
		if got := ClassifyConfidence(tt.pct); got != tt.expected {
			t.Errorf("ClassifyConfidence(%v) = %s, expected %s", tt.pct, got, tt.expected)
		}
	}
}
