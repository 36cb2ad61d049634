// Package constants provides shared constants for the sustaino valuation engines.
package constants

// Valuation constants
const (
	// PercentageMultiplier is used for percentage conversions
	PercentageMultiplier = 100.0

	// WeightTolerance is the tolerance used when checking that approach weights sum to one
	WeightTolerance = 0.0001

	// PrimaryMethodBonus is added to the weight of the primary valuation method
	PrimaryMethodBonus = 0.20

	// SecondaryMethodPenalty is removed from each non-primary method weight
	SecondaryMethodPenalty = 0.10

	// HighConfidenceVariance is the variance percentage below which confidence is High
	HighConfidenceVariance = 10.0

	// LowConfidenceVariance is the variance percentage above which confidence is Low
	LowConfidenceVariance = 25.0
)

// Development capacity constants
const (
	// SquareMetresPerHectare converts site area between sqm and hectares
	SquareMetresPerHectare = 10000.0

	// FSRPercentile is the point within the typical FSR band used for proposals
	FSRPercentile = 0.7

	// HeightPercentile is the point within the typical height band used for proposals
	HeightPercentile = 0.6

	// DensityPercentile is the point within the units-per-hectare band used for proposals
	DensityPercentile = 0.5

	// HDALandAreaThreshold is the site area (sqm) above which HDA support is flagged
	HDALandAreaThreshold = 5000.0

	// HDAUnitThreshold is the dwelling count above which HDA support is flagged
	HDAUnitThreshold = 50

	// SSDALandAreaThreshold is the site area (sqm) above which SSDA approval is flagged
	SSDALandAreaThreshold = 10000.0

	// SSDAGFAThreshold is the gross floor area (sqm) above which SSDA approval is flagged
	SSDAGFAThreshold = 25000.0

	// SSDAUnitThreshold is the dwelling count above which SSDA approval is flagged
	SSDAUnitThreshold = 100

	// SSDAHeightThreshold is the building height (m) above which SSDA approval is flagged
	SSDAHeightThreshold = 25.0

	// ProposalConfidence is the fixed confidence score reported on every proposal
	ProposalConfidence = 85
)

// Output format constants
const (
	// OutputFormatPretty is the human-readable output format
	OutputFormatPretty = "pretty"

	// OutputFormatCSV is the CSV output format
	OutputFormatCSV = "csv"

	// OutputFormatJSON is the JSON output format
	OutputFormatJSON = "json"
)

// Configuration file constants
const (
	// DefaultConfigFile is the default assessment job file name
	DefaultConfigFile = "job.yaml"

	// DefaultServerConfigFile is the default server configuration file name
	DefaultServerConfigFile = "server-config.yaml"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "SUSTAINO"
)

// Server configuration defaults
const (
	// DefaultServerAddress is the default HTTP listen address for the API
	DefaultServerAddress = ":8080"

	// DefaultMaxUploadSizeBytes is the default maximum upload size for YAML jobs (256 KB)
	DefaultMaxUploadSizeBytes int64 = 256 * 1024

	// DefaultDatabaseDriver is the record store driver used when none is configured
	DefaultDatabaseDriver = "sqlite3"
)
