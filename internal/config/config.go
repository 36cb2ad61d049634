// Package config defines the data structures of an assessment job file and
// includes functions for loading, converting and validating it.
package config

import (
	"fmt"
	"io"
	"sort"

	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/validation"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"github.com/spf13/viper"
)

// Configuration holds a complete assessment job.
type Configuration struct {
	Logging    LoggingConfig `yaml:"logging,omitempty"`
	Output     OutputConfig  `yaml:"output,omitempty"`
	Tables     TablesConfig  `yaml:"tables,omitempty"`
	Valuations []Valuation   `yaml:"valuations,omitempty"`
	Sites      []Site        `yaml:"sites,omitempty"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv, json
}

// TablesConfig points at replacement reference data. File is a zoning table
// YAML overlaid on the built-in tables; Weights replaces base approach
// weights per property type.
type TablesConfig struct {
	File    string                       `yaml:"file,omitempty"`
	Weights map[string]valuation.Weights `yaml:"weights,omitempty"`
}

// Valuation is one property to reconcile. Enum fields are kept as strings so
// that aliases ("sales", "rural") are resolved by ToInputs.
type Valuation struct {
	Name               string  `json:"name"`
	PrimaryMethod      string  `json:"primaryMethod"`
	SecondaryMethod    string  `json:"secondaryMethod,omitempty"`
	PropertyType       string  `json:"propertyType"`
	LandValue          float64 `json:"landValue"`
	BuildingValue      float64 `json:"buildingValue"`
	Depreciation       float64 `json:"depreciation"`
	Adjustments        float64 `json:"adjustments"`
	NetIncome          float64 `json:"netIncome"`
	CapitalisationRate float64 `json:"capitalisationRate"`
	MarketEvidence     float64 `json:"marketEvidence"`
}

// Site is one parcel to generate a development proposal for.
// DevelopmentType optionally overrides the classified type.
type Site struct {
	Name            string  `json:"name"`
	LandArea        float64 `json:"landArea"`
	CurrentZoning   string  `json:"currentZoning"`
	State           string  `json:"state"`
	Council         string  `json:"council,omitempty"`
	DevelopmentType string  `json:"developmentType,omitempty"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.SetEnvPrefix(constants.EnvPrefix)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %w", err)
	}

	return decode(v)
}

// LoadConfigurationFromReader loads a YAML-formatted configuration from r.
func LoadConfigurationFromReader(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config, %w", err)
	}

	return decode(v)
}

func decode(v *viper.Viper) (*Configuration, error) {
	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}
	return &configuration, nil
}

// ToInputs converts the valuation into engine inputs.
func (v Valuation) ToInputs() (valuation.Inputs, error) {
	primary, err := valuation.ParseMethod(v.PrimaryMethod)
	if err != nil {
		return valuation.Inputs{}, fmt.Errorf("valuation %s: primary method: %w", v.Name, err)
	}
	secondary, err := valuation.ParseMethod(v.SecondaryMethod)
	if err != nil {
		return valuation.Inputs{}, fmt.Errorf("valuation %s: secondary method: %w", v.Name, err)
	}
	propertyType, err := valuation.ParsePropertyType(v.PropertyType)
	if err != nil {
		return valuation.Inputs{}, fmt.Errorf("valuation %s: %w", v.Name, err)
	}

	return valuation.Inputs{
		PrimaryMethod:      primary,
		SecondaryMethod:    secondary,
		PropertyType:       propertyType,
		LandValue:          v.LandValue,
		BuildingValue:      v.BuildingValue,
		Depreciation:       v.Depreciation,
		Adjustments:        v.Adjustments,
		NetIncome:          v.NetIncome,
		CapitalisationRate: v.CapitalisationRate,
		MarketEvidence:     v.MarketEvidence,
	}, nil
}

// ToSiteData converts the site into generator input.
func (s Site) ToSiteData() development.SiteData {
	return development.SiteData{
		LandArea:      s.LandArea,
		CurrentZoning: s.CurrentZoning,
		State:         s.State,
		Council:       s.Council,
	}
}

// ZoningTables loads the zoning tables named by the job, or the built-in
// tables when none is configured.
func (c *Configuration) ZoningTables() (zoning.Tables, error) {
	return zoning.LoadTables(c.Tables.File)
}

// WeightTable returns the default weight table with any configured rows
// replaced.
func (c *Configuration) WeightTable() (valuation.WeightTable, error) {
	table := valuation.DefaultWeightTable()
	for key, weights := range c.Tables.Weights {
		propertyType, err := valuation.ParsePropertyType(key)
		if err != nil {
			return nil, fmt.Errorf("weights: %w", err)
		}
		table[propertyType] = weights
	}
	return table, nil
}

// ValidateConfiguration performs general validation of the configuration and returns warnings
func (c *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if len(c.Valuations) == 0 && len(c.Sites) == 0 {
		warnings = append(warnings, "Configuration contains no valuations or sites")
	}

	seen := make(map[string]bool)
	for _, v := range c.Valuations {
		if seen["valuation/"+v.Name] {
			warnings = append(warnings, fmt.Sprintf("Valuation name '%s' is used more than once", v.Name))
		}
		seen["valuation/"+v.Name] = true
	}
	for _, s := range c.Sites {
		if seen["site/"+s.Name] {
			warnings = append(warnings, fmt.Sprintf("Site name '%s' is used more than once", s.Name))
		}
		seen["site/"+s.Name] = true
	}

	keys := make([]string, 0, len(c.Tables.Weights))
	for key := range c.Tables.Weights {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		warnings = append(warnings, validation.ValidateWeights(key, c.Tables.Weights[key])...)
	}

	return warnings
}
