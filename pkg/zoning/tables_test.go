package zoning

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name     string
		state    string
		zoning   string
		expected DevelopmentType
	}{
		{"NSW high density", "NSW", "R4", ResidentialHigh},
		{"NSW lowercase with description", "nsw", "r4 high density residential", ResidentialHigh},
		{"NSW general residential", "NSW", "R1", ResidentialLow},
		{"NSW low density", "NSW", "R2 Low Density", ResidentialLow},
		{"NSW medium density", "NSW", "R3", ResidentialMedium},
		{"NSW local centre", "NSW", "B2", MixedUse},
		{"NSW commercial core", "NSW", "B3", Commercial},
		{"NSW unknown code", "NSW", "IN1", ResidentialMedium},
		{"VIC general residential", "VIC", "GRZ1", ResidentialMedium},
		{"VIC commercial 2", "VIC", "C2Z", Commercial},
		{"QLD high density", "QLD", "HDR", ResidentialHigh},
		{"Unknown state", "TAS", "R4", ResidentialMedium},
		{"Empty zoning", "NSW", "", ResidentialMedium},
		{"Whitespace state", " nsw ", "B4", MixedUse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tables.Classify(tt.state, tt.zoning); got != tt.expected {
				t.Errorf("Classify(%q, %q) = %s, expected %s", tt.state, tt.zoning, got, tt.expected)
			}
		})
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	tables := DefaultTables()
	tables.Classifications["NSW"] = []Rule{
		{Code: "R", Type: Commercial},
		{Code: "R4", Type: ResidentialHigh},
	}

	if got := tables.Classify("NSW", "R4"); got != Commercial {
		t.Errorf("expected first matching rule to win, got %s", got)
	}
}

func TestSuggestZoning(t *testing.T) {
	tables := DefaultTables()

	tests := []struct {
		name     string
		state    string
		zoning   string
		areaHa   float64
		expected string
	}{
		{"Large R2 site upgrades", "NSW", "R2", 0.5, "R3"},
		{"Small R2 site retained", "NSW", "R2", 0.1, "R2"},
		{"Threshold is exclusive", "NSW", "R2", 0.2, "R2"},
		{"Other zones retained", "NSW", "R4", 2, "R4"},
		{"Other states retained", "VIC", "R2", 2, "R2"},
		{"Empty zoning retained", "NSW", "", 2, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tables.SuggestZoning(tt.state, tt.zoning, tt.areaHa); got != tt.expected {
				t.Errorf("SuggestZoning(%q, %q, %v) = %q, expected %q", tt.state, tt.zoning, tt.areaHa, got, tt.expected)
			}
		})
	}
}

func TestDefaultTablesValidate(t *testing.T) {
	if err := DefaultTables().Validate(); err != nil {
		t.Fatalf("DefaultTables().Validate() error = %v", err)
	}
}

func TestDefaultTablesAreIndependent(t *testing.T) {
	first := DefaultTables()
	first.Profiles[ResidentialHigh] = Profile{Name: "changed"}
	first.Classifications["NSW"][0].Code = "XX"

	second := DefaultTables()
	if second.Profiles[ResidentialHigh].Name == "changed" {
		t.Error("modifying one DefaultTables value leaked into another")
	}
	if second.Classifications["NSW"][0].Code != "R1" {
		t.Error("modifying classification rules leaked into another DefaultTables value")
	}
}

func TestValidateErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Tables)
		want   string
	}{
		{
			name: "inverted band",
			mutate: func(tb *Tables) {
				p := tb.Profiles[Commercial]
				p.TypicalFSR = Band{Min: 5, Max: 1}
				tb.Profiles[Commercial] = p
			},
			want: "inverted",
		},
		{
			name: "unknown type",
			mutate: func(tb *Tables) {
				tb.Classifications["NSW"] = append(tb.Classifications["NSW"], Rule{Code: "SP1", Type: "special"})
			},
			want: "unknown development type",
		},
		{
			name: "missing default profile",
			mutate: func(tb *Tables) {
				tb.DefaultType = "industrial"
			},
			want: "default development type",
		},
		{
			name: "incomplete upgrade",
			mutate: func(tb *Tables) {
				tb.Upgrades["VIC"] = []UpgradeRule{{From: "NRZ"}}
			},
			want: "needs both from and to",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tables := DefaultTables()
			tt.mutate(&tables)
			err := tables.Validate()
			if err == nil {
				t.Fatal("expected validation error but got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestParseTablesOverlay(t *testing.T) {
	doc := `
profiles:
  residential-high:
    name: Tower Residential
    typicalFSR: {min: 3, max: 6}
    typicalHeight: {min: 40, max: 80}
    unitsPerHa: {min: 150, max: 300}
    description: Towers
classifications:
  tas:
    - code: GR
      type: residential-medium
    - code: IDR
      type: residential-high
`
	tables, err := ParseTables(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseTables() error = %v", err)
	}

	if got := tables.Profiles[ResidentialHigh].TypicalFSR.Max; got != 6 {
		t.Errorf("expected overridden FSR max 6, got %v", got)
	}
	if got := tables.Profiles[Commercial].Name; got != "Commercial" {
		t.Errorf("expected untouched commercial profile, got %q", got)
	}
	if got := tables.Classify("TAS", "IDR"); got != ResidentialHigh {
		t.Errorf("expected TAS table to be added, got %s", got)
	}
	if got := tables.Classify("NSW", "B3"); got != Commercial {
		t.Errorf("expected NSW defaults to survive overlay, got %s", got)
	}
}

func TestParseTablesRejectsInvalid(t *testing.T) {
	doc := `
classifications:
  NSW:
    - code: R4
      type: skyscraper
`
	if _, err := ParseTables(strings.NewReader(doc)); err == nil {
		t.Fatal("expected error for unknown development type")
	}

	if _, err := ParseTables(strings.NewReader("profiles: [")); err == nil {
		t.Fatal("expected error for malformed YAML")
	}
}

func TestLoadTablesRoundTrip(t *testing.T) {
	tables, err := LoadTables("")
	if err != nil {
		t.Fatalf("LoadTables(\"\") error = %v", err)
	}

	data, err := tables.EncodeYAML()
	if err != nil {
		t.Fatalf("EncodeYAML() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "tables.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("failed to write tables: %v", err)
	}

	loaded, err := LoadTables(path)
	if err != nil {
		t.Fatalf("LoadTables() error = %v", err)
	}
	if len(loaded.Profiles) != len(tables.Profiles) {
		t.Errorf("expected %d profiles, got %d", len(tables.Profiles), len(loaded.Profiles))
	}
	if got := loaded.Classify("WA", "R80"); got != ResidentialHigh {
		t.Errorf("expected WA R80 to classify as high density, got %s", got)
	}
}

func TestLoadTablesMissingFile(t *testing.T) {
	if _, err := LoadTables(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing tables file")
	}
}
