package valuation

import "github.com/hammad983ae/sustaino-sub002/pkg/constants"

// WeightTable maps property types to base weights. The PropertyUnset entry
// is used for any type without its own row.
type WeightTable map[PropertyType]Weights

var fallbackWeights = Weights{Income: 0.50, Cost: 0.25, Comparison: 0.25}

// DefaultWeightTable returns the standard base weights.
func DefaultWeightTable() WeightTable {
	return WeightTable{
		PropertyCommercial:   {Income: 0.60, Cost: 0.15, Comparison: 0.25},
		PropertyResidential:  {Income: 0.20, Cost: 0.20, Comparison: 0.60},
		PropertyAgricultural: {Income: 0.40, Cost: 0.30, Comparison: 0.30},
		PropertySpecialised:  {Income: 0.30, Cost: 0.50, Comparison: 0.20},
		PropertyUnset:        fallbackWeights,
	}
}

// Base returns the unadjusted weights for a property type.
func (t WeightTable) Base(propertyType PropertyType) Weights {
	if w, ok := t[propertyType]; ok {
		return w
	}
	if w, ok := t[PropertyUnset]; ok {
		return w
	}
	return fallbackWeights
}

// Resolve returns the base weights for the property type shifted towards the
// primary method. The result is neither renormalized nor clipped.
func (t WeightTable) Resolve(propertyType PropertyType, primary Method) Weights {
	return AdjustForPrimary(t.Base(propertyType), primary)
}

// AdjustForPrimary adds the primary-method bonus to the primary approach and
// removes the penalty from the other two. Unset or unknown methods leave the
// weights unchanged.
func AdjustForPrimary(w Weights, primary Method) Weights {
	bonus := constants.PrimaryMethodBonus
	penalty := constants.SecondaryMethodPenalty

	switch primary {
	case MethodIncome:
		w.Income += bonus
		w.Cost -= penalty
		w.Comparison -= penalty
	case MethodCost:
		w.Cost += bonus
		w.Income -= penalty
		w.Comparison -= penalty
	case MethodComparison:
		w.Comparison += bonus
		w.Income -= penalty
		w.Cost -= penalty
	}
	return w
}

// ResolveWeights resolves weights against the default table.
func ResolveWeights(propertyType PropertyType, primary Method) Weights {
	return DefaultWeightTable().Resolve(propertyType, primary)
}

// Named returns the table keyed by property type name, with the fallback
// row under "default". The result is accepted back by ParsePropertyType.
func (t WeightTable) Named() map[string]Weights {
	named := make(map[string]Weights, len(t))
	for propertyType, w := range t {
		key := string(propertyType)
		if propertyType == PropertyUnset {
			key = "default"
		}
		named[key] = w
	}
	return named
}
