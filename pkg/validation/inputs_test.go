package validation

import (
	"strings"
	"testing"

	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
)

func validInputs() valuation.Inputs {
	return valuation.Inputs{
		PrimaryMethod:      valuation.MethodIncome,
		SecondaryMethod:    valuation.MethodComparison,
		PropertyType:       valuation.PropertyCommercial,
		LandValue:          2000000,
		BuildingValue:      3000000,
		Depreciation:       500000,
		NetIncome:          400000,
		CapitalisationRate: 8,
		MarketEvidence:     4800000,
	}
}

func containsWarning(warnings []string, fragment string) bool {
	for _, w := range warnings {
		if strings.Contains(w, fragment) {
			return true
		}
	}
	return false
}

func TestValidateInputs(t *testing.T) {
	tests := []struct {
		name     string
		modify   func(in *valuation.Inputs)
		expected []string
	}{
		{
			name:     "Clean inputs",
			modify:   func(in *valuation.Inputs) {},
			expected: nil,
		},
		{
			name:     "Negative land value",
			modify:   func(in *valuation.Inputs) { in.LandValue = -1 },
			expected: []string{"negative landValue"},
		},
		{
			name:     "Income without capitalisation rate",
			modify:   func(in *valuation.Inputs) { in.CapitalisationRate = 0 },
			expected: []string{"no capitalisation rate"},
		},
		{
			name:     "Same primary and secondary method",
			modify:   func(in *valuation.Inputs) { in.SecondaryMethod = valuation.MethodIncome },
			expected: []string{"both primary and secondary"},
		},
		{
			name: "Unset property type and method",
			modify: func(in *valuation.Inputs) {
				in.PropertyType = valuation.PropertyUnset
				in.PrimaryMethod = valuation.MethodUnset
			},
			expected: []string{"no property type", "no primary method"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInputs()
			tt.modify(&in)

			warnings := ValidateInputs("test", in)
			if len(warnings) != len(tt.expected) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.expected), len(warnings), warnings)
			}
			for _, fragment := range tt.expected {
				if !containsWarning(warnings, fragment) {
					t.Errorf("expected warning containing %q, got %v", fragment, warnings)
				}
			}
		})
	}
}

func TestValidateWeights(t *testing.T) {
	tests := []struct {
		name          string
		weights       valuation.Weights
		expectedCount int
	}{
		{"Commercial base weights", valuation.Weights{Income: 0.6, Cost: 0.15, Comparison: 0.25}, 0},
		{"Adjusted weights within tolerance", valuation.Weights{Income: 0.7, Cost: 0.1, Comparison: 0.2}, 0},
		{"Weights sum above one", valuation.Weights{Income: 0.8, Cost: 0.2, Comparison: 0.2}, 1},
		{"Negative weight", valuation.Weights{Income: 1.2, Cost: -0.2, Comparison: 0}, 1},
		{"Negative and unbalanced", valuation.Weights{Income: 0.5, Cost: -0.2, Comparison: 0}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateWeights("test", tt.weights)
			if len(warnings) != tt.expectedCount {
				t.Errorf("expected %d warnings, got %d: %v", tt.expectedCount, len(warnings), warnings)
			}
		})
	}
}

func TestValidateSite(t *testing.T) {
	tables := zoning.DefaultTables()

	tests := []struct {
		name     string
		site     development.SiteData
		expected []string
	}{
		{
			name:     "Valid site",
			site:     development.SiteData{LandArea: 20000, CurrentZoning: "R4", State: "NSW"},
			expected: nil,
		},
		{
			name:     "Lower case state",
			site:     development.SiteData{LandArea: 800, CurrentZoning: "GRZ1", State: "vic"},
			expected: nil,
		},
		{
			name:     "No land area",
			site:     development.SiteData{CurrentZoning: "R4", State: "NSW"},
			expected: []string{"no positive land area"},
		},
		{
			name:     "Missing zoning and unknown state",
			site:     development.SiteData{LandArea: 1000, State: "TAS"},
			expected: []string{"no current zoning", "no zoning classification table"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			warnings := ValidateSite("test", tt.site, tables)
			if len(warnings) != len(tt.expected) {
				t.Fatalf("expected %d warnings, got %d: %v", len(tt.expected), len(warnings), warnings)
			}
			for _, fragment := range tt.expected {
				if !containsWarning(warnings, fragment) {
					t.Errorf("expected warning containing %q, got %v", fragment, warnings)
				}
			}
		})
	}
}
