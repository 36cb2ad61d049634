package zoning

// DefaultTables returns the built-in reference data. Each call returns a
// new value, so callers may modify the result freely.
func DefaultTables() Tables {
	return Tables{
		DefaultType: ResidentialMedium,
		Profiles: map[DevelopmentType]Profile{
			ResidentialLow: {
				Name:          "Low Density Residential",
				TypicalFSR:    Band{Min: 0.5, Max: 0.8},
				TypicalHeight: Band{Min: 8.5, Max: 9.5},
				UnitsPerHa:    Band{Min: 15, Max: 30},
				Description:   "Detached dwellings, dual occupancies and small-lot housing",
			},
			ResidentialMedium: {
				Name:          "Medium Density Residential",
				TypicalFSR:    Band{Min: 0.8, Max: 1.5},
				TypicalHeight: Band{Min: 9, Max: 15},
				UnitsPerHa:    Band{Min: 30, Max: 80},
				Description:   "Townhouses, terraces, manor houses and low-rise apartments",
			},
			ResidentialHigh: {
				Name:          "High Density Residential",
				TypicalFSR:    Band{Min: 1.5, Max: 3.0},
				TypicalHeight: Band{Min: 25, Max: 35},
				UnitsPerHa:    Band{Min: 60, Max: 150},
				Description:   "Residential flat buildings and mid-rise apartment towers",
			},
			MixedUse: {
				Name:          "Mixed Use",
				TypicalFSR:    Band{Min: 2.0, Max: 4.0},
				TypicalHeight: Band{Min: 20, Max: 40},
				UnitsPerHa:    Band{Min: 80, Max: 200},
				Description:   "Ground floor retail or commercial with apartments above",
			},
			Commercial: {
				Name:          "Commercial",
				TypicalFSR:    Band{Min: 1.5, Max: 5.0},
				TypicalHeight: Band{Min: 15, Max: 45},
				UnitsPerHa:    Band{Min: 0, Max: 0},
				Description:   "Office, retail and business premises",
			},
		},
		Classifications: map[string][]Rule{
			"NSW": {
				{Code: "R1", Type: ResidentialLow},
				{Code: "R2", Type: ResidentialLow},
				{Code: "R3", Type: ResidentialMedium},
				{Code: "R4", Type: ResidentialHigh},
				{Code: "B1", Type: MixedUse},
				{Code: "B2", Type: MixedUse},
				{Code: "B4", Type: MixedUse},
				{Code: "B3", Type: Commercial},
			},
			"VIC": {
				{Code: "NRZ", Type: ResidentialLow},
				{Code: "GRZ", Type: ResidentialMedium},
				{Code: "RGZ", Type: ResidentialHigh},
				{Code: "MUZ", Type: MixedUse},
				{Code: "C1Z", Type: MixedUse},
				{Code: "C2Z", Type: Commercial},
			},
			"QLD": {
				{Code: "LDR", Type: ResidentialLow},
				{Code: "MDR", Type: ResidentialMedium},
				{Code: "HDR", Type: ResidentialHigh},
				{Code: "MU", Type: MixedUse},
				{Code: "PC", Type: Commercial},
			},
			"WA": {
				{Code: "R20", Type: ResidentialLow},
				{Code: "R40", Type: ResidentialMedium},
				{Code: "R80", Type: ResidentialHigh},
				{Code: "MU", Type: MixedUse},
				{Code: "C", Type: Commercial},
			},
			"SA": {
				{Code: "GN", Type: ResidentialLow},
				{Code: "HDN", Type: ResidentialHigh},
				{Code: "UC", Type: MixedUse},
				{Code: "SE", Type: Commercial},
			},
		},
		Upgrades: map[string][]UpgradeRule{
			"NSW": {
				{From: "R2", To: "R3", MinAreaHa: 0.2},
			},
		},
	}
}
