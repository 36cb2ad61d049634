package main

import (
	"fmt"

	"github.com/hammad983ae/sustaino-sub002/internal/assessment"
	"github.com/hammad983ae/sustaino-sub002/internal/config"
	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/output"
	"github.com/hammad983ae/sustaino-sub002/pkg/validation"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// outputFlags are shared by every command that prints a report.
type outputFlags struct {
	format   string
	logLevel string
}

func (f *outputFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.format, "output-format", "", "type of output override: pretty, csv, json")
	cmd.Flags().StringVar(&f.logLevel, "log-level", "", "log level override (debug, info, warn, error)")
}

// resolveFormat picks the CLI override, then the configured format, then pretty.
func (f *outputFlags) resolveFormat(configured string) (string, error) {
	outputFormat := configured
	if f.format != "" {
		outputFormat = f.format
	}
	if outputFormat == "" {
		outputFormat = constants.OutputFormatPretty
	}
	if err := validation.ValidateOutputFormat(outputFormat); err != nil {
		return "", err
	}
	return outputFormat, nil
}

func assessCmd() *cobra.Command {
	var configLocation string
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Reconcile every valuation and propose development for every site in a job file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf, err := config.LoadConfiguration(configLocation)
			if err != nil {
				return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
			}

			logger, err := initializeLogger(conf.Logging, flags.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			outputFormat, err := flags.resolveFormat(conf.Output.Format)
			if err != nil {
				return err
			}

			report, err := assessment.GetAssessments(logger, *conf)
			if err != nil {
				logger.Error("failed to compute assessments",
					zap.String("op", "main.assess"),
					zap.Error(err),
				)
				return err
			}

			for _, warning := range report.Warnings {
				logger.Warn("Configuration warning: "+warning,
					zap.String("op", "main.assess"),
				)
			}

			return output.Write(cmd.OutOrStdout(), outputFormat, report)
		},
	}

	cmd.Flags().StringVar(&configLocation, "config", constants.DefaultConfigFile, "path to assessment job file")
	flags.register(cmd)
	return cmd
}

func reconcileCmd() *cobra.Command {
	var v config.Valuation
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Reconcile a single valuation from command line figures",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := initializeLogger(config.LoggingConfig{Format: "console"}, flags.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			outputFormat, err := flags.resolveFormat("")
			if err != nil {
				return err
			}

			runner, err := assessment.NewRunner(logger, valuation.DefaultWeightTable(), zoning.DefaultTables())
			if err != nil {
				return err
			}
			assessed, err := runner.AssessValuation(v)
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), outputFormat, &assessment.Report{
				Valuations: []assessment.ValuationAssessment{assessed},
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&v.Name, "name", "valuation", "label for the valuation")
	f.StringVar(&v.PrimaryMethod, "primary-method", "", "primary method: income, cost, comparison")
	f.StringVar(&v.SecondaryMethod, "secondary-method", "", "secondary method: income, cost, comparison")
	f.StringVar(&v.PropertyType, "property-type", "", "property type: commercial, residential, agricultural, specialised")
	f.Float64Var(&v.LandValue, "land-value", 0, "land value")
	f.Float64Var(&v.BuildingValue, "building-value", 0, "building replacement value")
	f.Float64Var(&v.Depreciation, "depreciation", 0, "building depreciation")
	f.Float64Var(&v.Adjustments, "adjustments", 0, "adjustments applied to the cost and comparison approaches")
	f.Float64Var(&v.NetIncome, "net-income", 0, "annual net income")
	f.Float64Var(&v.CapitalisationRate, "cap-rate", 0, "capitalisation rate as a whole-number percentage")
	f.Float64Var(&v.MarketEvidence, "market-evidence", 0, "sales comparison evidence")
	flags.register(cmd)
	return cmd
}

func proposeCmd() *cobra.Command {
	var s config.Site
	var tablesFile string
	var flags outputFlags

	cmd := &cobra.Command{
		Use:   "propose",
		Short: "Generate a development proposal for a single site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := initializeLogger(config.LoggingConfig{Format: "console"}, flags.logLevel)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			defer func() {
				_ = logger.Sync()
			}()

			outputFormat, err := flags.resolveFormat("")
			if err != nil {
				return err
			}

			tables, err := zoning.LoadTables(tablesFile)
			if err != nil {
				return err
			}
			runner, err := assessment.NewRunner(logger, valuation.DefaultWeightTable(), tables)
			if err != nil {
				return err
			}
			assessed, err := runner.AssessSite(s)
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), outputFormat, &assessment.Report{
				Sites: []assessment.SiteAssessment{assessed},
			})
		},
	}

	f := cmd.Flags()
	f.StringVar(&s.Name, "name", "site", "label for the site")
	f.Float64Var(&s.LandArea, "land-area", 0, "site area in square metres")
	f.StringVar(&s.CurrentZoning, "zoning", "", "current zoning code, e.g. R2")
	f.StringVar(&s.State, "state", "", "jurisdiction, e.g. NSW")
	f.StringVar(&s.Council, "council", "", "local council")
	f.StringVar(&s.DevelopmentType, "type", "", "development type override")
	f.StringVar(&tablesFile, "tables", "", "zoning table YAML overlaid on the built-in tables")
	flags.register(cmd)
	return cmd
}

// weightsDocument follows the zoning tables in the tables command output.
type weightsDocument struct {
	Weights map[string]valuation.Weights `yaml:"weights"`
}

func tablesCmd() *cobra.Command {
	var tablesFile string
	var configLocation string

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the effective zoning and weight tables as YAML",
		Long: `Print the effective tables as two YAML documents. The first is the
zoning tables in the format accepted by --tables; the second holds the
approach weights per property type.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conf := &config.Configuration{}
			if configLocation != "" {
				var err error
				conf, err = config.LoadConfiguration(configLocation)
				if err != nil {
					return fmt.Errorf("failed to load configuration at %s: %w", configLocation, err)
				}
			}
			if tablesFile != "" {
				conf.Tables.File = tablesFile
			}

			tables, err := conf.ZoningTables()
			if err != nil {
				return err
			}
			weights, err := conf.WeightTable()
			if err != nil {
				return err
			}

			zoningDoc, err := tables.EncodeYAML()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if _, err := out.Write(zoningDoc); err != nil {
				return err
			}
			if _, err := fmt.Fprintln(out, "---"); err != nil {
				return err
			}

			encoder := yaml.NewEncoder(out)
			encoder.SetIndent(2)
			if err := encoder.Encode(weightsDocument{Weights: weights.Named()}); err != nil {
				return fmt.Errorf("failed to encode weights: %w", err)
			}
			return encoder.Close()
		},
	}

	cmd.Flags().StringVar(&tablesFile, "tables", "", "zoning table YAML overlaid on the built-in tables")
	cmd.Flags().StringVar(&configLocation, "config", "", "job file whose tables section is applied")
	return cmd
}
