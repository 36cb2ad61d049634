// Package zoning holds the reference data used to turn a site's zoning code
// into development parameters: per-type parameter bands, per-state zoning
// classifications and per-state zoning upgrade rules.
//
// Tables are plain values. Callers get a fresh copy from DefaultTables or
// load one from YAML and pass it to the engines that need it.
package zoning

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hammad983ae/sustaino-sub002/pkg/mathutil"
)

// DevelopmentType identifies a development-type profile.
type DevelopmentType string

const (
	ResidentialLow    DevelopmentType = "residential-low"
	ResidentialMedium DevelopmentType = "residential-medium"
	ResidentialHigh   DevelopmentType = "residential-high"
	MixedUse          DevelopmentType = "mixed-use"
	Commercial        DevelopmentType = "commercial"
)

// Band is an inclusive numeric range taken from planning controls.
type Band struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

// At returns the point at fraction t of the way from Min to Max.
func (b Band) At(t float64) float64 {
	return mathutil.Interpolate(b.Min, b.Max, t)
}

// Profile describes the typical built form of a development type.
type Profile struct {
	Name          string `yaml:"name" json:"name"`
	TypicalFSR    Band   `yaml:"typicalFSR" json:"typicalFSR"`
	TypicalHeight Band   `yaml:"typicalHeight" json:"typicalHeight"`
	UnitsPerHa    Band   `yaml:"unitsPerHa" json:"unitsPerHa"`
	Description   string `yaml:"description" json:"description"`
}

// Rule maps a zoning code fragment to a development type.
type Rule struct {
	Code string          `yaml:"code" json:"code"`
	Type DevelopmentType `yaml:"type" json:"type"`
}

// UpgradeRule suggests rezoning From -> To for sites larger than MinAreaHa.
type UpgradeRule struct {
	From      string  `yaml:"from" json:"from"`
	To        string  `yaml:"to" json:"to"`
	MinAreaHa float64 `yaml:"minAreaHa" json:"minAreaHa"`
}

// Tables bundles all reference data consumed by the proposal generator.
type Tables struct {
	DefaultType     DevelopmentType             `yaml:"defaultType,omitempty" json:"defaultType"`
	Profiles        map[DevelopmentType]Profile `yaml:"profiles,omitempty" json:"profiles"`
	Classifications map[string][]Rule           `yaml:"classifications,omitempty" json:"classifications"`
	Upgrades        map[string][]UpgradeRule    `yaml:"upgrades,omitempty" json:"upgrades"`
}

// NormalizeState canonicalizes a jurisdiction code (" nsw" -> "NSW").
func NormalizeState(state string) string {
	return strings.ToUpper(strings.TrimSpace(state))
}

// NormalizeZoning canonicalizes a zoning code for substring matching.
func NormalizeZoning(zoning string) string {
	return strings.ToUpper(strings.TrimSpace(zoning))
}

// Classify returns the development type for a zoning code in a state. The
// first rule whose code appears in the zoning string wins; with no match the
// table's DefaultType is returned.
func (t Tables) Classify(state, zoning string) DevelopmentType {
	normalized := NormalizeZoning(zoning)
	if normalized != "" {
		for _, rule := range t.Classifications[NormalizeState(state)] {
			code := NormalizeZoning(rule.Code)
			if code != "" && strings.Contains(normalized, code) {
				return rule.Type
			}
		}
	}
	return t.fallbackType()
}

// Profile looks up the profile for a development type.
func (t Tables) Profile(devType DevelopmentType) (Profile, bool) {
	p, ok := t.Profiles[devType]
	return p, ok
}

// SuggestZoning applies the state's upgrade rules. The current zoning is
// returned unchanged when no rule applies.
func (t Tables) SuggestZoning(state, zoning string, landAreaHa float64) string {
	normalized := NormalizeZoning(zoning)
	if normalized == "" {
		return zoning
	}
	for _, rule := range t.Upgrades[NormalizeState(state)] {
		from := NormalizeZoning(rule.From)
		if from != "" && strings.Contains(normalized, from) && landAreaHa > rule.MinAreaHa {
			return rule.To
		}
	}
	return zoning
}

// HasState reports whether a classification table exists for the state.
func (t Tables) HasState(state string) bool {
	_, ok := t.Classifications[NormalizeState(state)]
	return ok
}

// States lists the jurisdictions with classification tables, sorted.
func (t Tables) States() []string {
	states := make([]string, 0, len(t.Classifications))
	for state := range t.Classifications {
		states = append(states, state)
	}
	sort.Strings(states)
	return states
}

// Types lists the development types with profiles, sorted.
func (t Tables) Types() []DevelopmentType {
	types := make([]DevelopmentType, 0, len(t.Profiles))
	for devType := range t.Profiles {
		types = append(types, devType)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

func (t Tables) fallbackType() DevelopmentType {
	if t.DefaultType != "" {
		return t.DefaultType
	}
	return ResidentialMedium
}

// Validate checks that every referenced development type has a profile and
// that no band is inverted.
func (t Tables) Validate() error {
	if len(t.Profiles) == 0 {
		return fmt.Errorf("zoning tables define no development profiles")
	}
	if _, ok := t.Profiles[t.fallbackType()]; !ok {
		return fmt.Errorf("default development type %q has no profile", t.fallbackType())
	}
	for _, devType := range t.Types() {
		p := t.Profiles[devType]
		for name, band := range map[string]Band{
			"typicalFSR":    p.TypicalFSR,
			"typicalHeight": p.TypicalHeight,
			"unitsPerHa":    p.UnitsPerHa,
		} {
			if band.Min > band.Max {
				return fmt.Errorf("profile %s: %s band is inverted (%.2f > %.2f)", devType, name, band.Min, band.Max)
			}
		}
	}
	for _, state := range t.States() {
		for i, rule := range t.Classifications[state] {
			if strings.TrimSpace(rule.Code) == "" {
				return fmt.Errorf("state %s: classification %d has an empty code", state, i)
			}
			if _, ok := t.Profiles[rule.Type]; !ok {
				return fmt.Errorf("state %s: zoning %s maps to unknown development type %q", state, rule.Code, rule.Type)
			}
		}
	}
	for state, rules := range t.Upgrades {
		for i, rule := range rules {
			if strings.TrimSpace(rule.From) == "" || strings.TrimSpace(rule.To) == "" {
				return fmt.Errorf("state %s: upgrade rule %d needs both from and to", state, i)
			}
		}
	}
	return nil
}

// Merge overlays another table onto a copy of t. Profiles are replaced per
// type; classifications and upgrade rules are replaced per state.
func (t Tables) Merge(overlay Tables) Tables {
	merged := t.Clone()
	if overlay.DefaultType != "" {
		merged.DefaultType = overlay.DefaultType
	}
	for devType, profile := range overlay.Profiles {
		merged.Profiles[devType] = profile
	}
	for state, rules := range overlay.Classifications {
		merged.Classifications[NormalizeState(state)] = append([]Rule(nil), rules...)
	}
	for state, rules := range overlay.Upgrades {
		merged.Upgrades[NormalizeState(state)] = append([]UpgradeRule(nil), rules...)
	}
	return merged
}

// Clone returns a deep copy of the tables.
func (t Tables) Clone() Tables {
	c := Tables{
		DefaultType:     t.DefaultType,
		Profiles:        make(map[DevelopmentType]Profile, len(t.Profiles)),
		Classifications: make(map[string][]Rule, len(t.Classifications)),
		Upgrades:        make(map[string][]UpgradeRule, len(t.Upgrades)),
	}
	for k, v := range t.Profiles {
		c.Profiles[k] = v
	}
	for k, v := range t.Classifications {
		c.Classifications[k] = append([]Rule(nil), v...)
	}
	for k, v := range t.Upgrades {
		c.Upgrades[k] = append([]UpgradeRule(nil), v...)
	}
	return c
}
