package development

import (
	"testing"

	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
)

func TestCalculateCapacityApprovalThresholds(t *testing.T) {
	profile := zoning.Profile{
		TypicalFSR:    zoning.Band{Min: 1, Max: 1},
		TypicalHeight: zoning.Band{Min: 10, Max: 10},
		UnitsPerHa:    zoning.Band{Min: 100, Max: 100},
	}

	tests := []struct {
		name     string
		profile  zoning.Profile
		landArea float64
		hda      bool
		ssda     bool
	}{
		{"Small site", profile, 1000, false, false},
		{"HDA by land area", profile, 5001, true, false},
		{"Land area threshold is exclusive", profile, 5000, false, false},
		{"SSDA by land area", profile, 10001, true, true},
		{
			name: "HDA by units",
			profile: zoning.Profile{
				TypicalFSR:    zoning.Band{Min: 1, Max: 1},
				TypicalHeight: zoning.Band{Min: 10, Max: 10},
				UnitsPerHa:    zoning.Band{Min: 1020, Max: 1020},
			},
			landArea: 500,
			hda:      true,
			ssda:     false,
		},
		{
			name: "SSDA by height",
			profile: zoning.Profile{
				TypicalFSR:    zoning.Band{Min: 1, Max: 1},
				TypicalHeight: zoning.Band{Min: 26, Max: 26},
			},
			landArea: 1000,
			hda:      false,
			ssda:     true,
		},
		{
			name: "SSDA by GFA",
			profile: zoning.Profile{
				TypicalFSR:    zoning.Band{Min: 6, Max: 6},
				TypicalHeight: zoning.Band{Min: 10, Max: 10},
			},
			landArea: 4500,
			hda:      false,
			ssda:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CalculateCapacity(zoning.ResidentialMedium, tt.profile, tt.landArea)
			if c.HDASupport != tt.hda {
				t.Errorf("hdaSupport = %v, expected %v (%+v)", c.HDASupport, tt.hda, c)
			}
			if c.SSDAApproval != tt.ssda {
				t.Errorf("ssdaApproval = %v, expected %v (%+v)", c.SSDAApproval, tt.ssda, c)
			}
		})
	}
}

func TestCalculateCapacityCommercialHasNoUnits(t *testing.T) {
	profile := zoning.Profile{
		TypicalFSR:    zoning.Band{Min: 1, Max: 2},
		TypicalHeight: zoning.Band{Min: 10, Max: 20},
		UnitsPerHa:    zoning.Band{Min: 100, Max: 200},
	}

	c := CalculateCapacity(zoning.Commercial, profile, 10000)
	if c.EstimatedUnits != 0 {
		t.Errorf("estimatedUnits = %d, expected 0 for commercial", c.EstimatedUnits)
	}
	if c.UnitsPerHa != 150 {
		t.Errorf("unitsPerHa = %v, expected 150", c.UnitsPerHa)
	}
}

func TestApplyPatch(t *testing.T) {
	site := SiteData{LandArea: 20000, CurrentZoning: "R4", State: "NSW", Council: "Parramatta"}
	proposal := Proposal{
		ProposedZoning:  "R4",
		DevelopmentType: zoning.ResidentialHigh,
		FloorSpaceRatio: 2.55,
		HeightLimit:     31,
		ProposedGFA:     51000,
		EstimatedUnits:  210,
		HDASupport:      true,
		SSDAApproval:    true,
		Description:     "High density",
		Rationale:       "Because",
		Confidence:      85,
	}

	patch := Apply(proposal)
	updated := site.ApplyPatch(patch)

	if updated.ProposedZoning != "R4" || updated.FloorSpaceRatio != 2.55 || updated.ProposedGFA != 51000 ||
		updated.EstimatedUnits != 210 || !updated.HDASupport || !updated.SSDAApproval ||
		updated.HeightLimit != 31 || updated.DevelopmentDescription != "High density" {
		t.Errorf("patch not applied: %+v", updated)
	}
	if updated.LandArea != 20000 || updated.CurrentZoning != "R4" || updated.Council != "Parramatta" {
		t.Errorf("unpatched fields changed: %+v", updated)
	}
	if site.ProposedGFA != 0 {
		t.Error("ApplyPatch modified the original site")
	}

	fields := patch.Fields()
	if len(fields) != 8 {
		t.Errorf("expected 8 patched fields, got %d", len(fields))
	}
	if fields["estimatedUnits"] != 210 {
		t.Errorf("fields[estimatedUnits] = %v", fields["estimatedUnits"])
	}
}
