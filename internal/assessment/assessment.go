// Package assessment defines the results of an assessment job and includes
// functions for running every valuation and site of a job through the
// reconciliation and proposal engines.
package assessment

import (
	"fmt"

	"github.com/hammad983ae/sustaino-sub002/internal/config"
	"github.com/hammad983ae/sustaino-sub002/pkg/development"
	"github.com/hammad983ae/sustaino-sub002/pkg/validation"
	"github.com/hammad983ae/sustaino-sub002/pkg/valuation"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"go.uber.org/zap"
)

// ValuationAssessment is the reconciled outcome of one configured valuation.
type ValuationAssessment struct {
	Name     string           `json:"name"`
	Inputs   valuation.Inputs `json:"inputs"`
	Result   valuation.Result `json:"result"`
	Warnings []string         `json:"warnings,omitempty"`
}

// SiteAssessment is the development proposal for one configured site.
// Proposal is nil when the site could not be assessed; Notes says why.
type SiteAssessment struct {
	Name     string                `json:"name"`
	Site     development.SiteData  `json:"site"`
	Proposal *development.Proposal `json:"proposal,omitempty"`
	Notes    []string              `json:"notes,omitempty"`
	Warnings []string              `json:"warnings,omitempty"`
}

// Report holds all assessments of a job.
type Report struct {
	Valuations []ValuationAssessment `json:"valuations"`
	Sites      []SiteAssessment      `json:"sites"`
	Warnings   []string              `json:"warnings,omitempty"`
}

// Runner assesses valuations and sites against a fixed set of reference
// tables.
type Runner struct {
	logger     *zap.Logger
	reconciler *valuation.Reconciler
	generator  *development.Generator
	tables     zoning.Tables
}

// NewRunner creates a runner from a weight table and zoning tables.
func NewRunner(logger *zap.Logger, weights valuation.WeightTable, tables zoning.Tables) (*Runner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	generator, err := development.NewGenerator(logger, tables)
	if err != nil {
		return nil, err
	}

	return &Runner{
		logger:     logger,
		reconciler: valuation.NewReconciler(logger, weights),
		generator:  generator,
		tables:     generator.Tables(),
	}, nil
}

// GetAssessments loads the reference tables named by the job and assesses
// every valuation and site in it.
func GetAssessments(logger *zap.Logger, conf config.Configuration) (*Report, error) {
	weights, err := conf.WeightTable()
	if err != nil {
		return nil, err
	}
	tables, err := conf.ZoningTables()
	if err != nil {
		return nil, err
	}

	runner, err := NewRunner(logger, weights, tables)
	if err != nil {
		return nil, err
	}
	return runner.Run(conf)
}

// Run assesses every valuation and site in the job. Configuration errors
// such as unknown enum values abort the run; sites that cannot be assessed
// are reported with a note instead.
func (r *Runner) Run(conf config.Configuration) (*Report, error) {
	report := &Report{
		Valuations: make([]ValuationAssessment, 0, len(conf.Valuations)),
		Sites:      make([]SiteAssessment, 0, len(conf.Sites)),
		Warnings:   conf.ValidateConfiguration(),
	}

	for _, v := range conf.Valuations {
		assessed, err := r.AssessValuation(v)
		if err != nil {
			return nil, err
		}
		report.Valuations = append(report.Valuations, assessed)
	}

	for _, s := range conf.Sites {
		assessed, err := r.AssessSite(s)
		if err != nil {
			return nil, err
		}
		report.Sites = append(report.Sites, assessed)
	}

	r.logger.Info("assessment complete",
		zap.String("op", "assessment.Run"),
		zap.Int("valuations", len(report.Valuations)),
		zap.Int("sites", len(report.Sites)),
		zap.Int("warnings", len(report.Warnings)),
	)

	return report, nil
}

// AssessValuation reconciles one configured valuation.
func (r *Runner) AssessValuation(v config.Valuation) (ValuationAssessment, error) {
	in, err := v.ToInputs()
	if err != nil {
		return ValuationAssessment{}, err
	}

	result := r.reconciler.Reconcile(in)
	warnings := validation.ValidateInputs(v.Name, in)
	warnings = append(warnings, validation.ValidateWeights(v.Name, result.MethodologyWeights)...)

	for _, w := range warnings {
		r.logger.Warn(w, zap.String("op", "assessment.AssessValuation"))
	}

	return ValuationAssessment{
		Name:     v.Name,
		Inputs:   in,
		Result:   result,
		Warnings: warnings,
	}, nil
}

// AssessSite generates a proposal for one configured site, switching to the
// configured development type when one is named.
func (r *Runner) AssessSite(s config.Site) (SiteAssessment, error) {
	site := s.ToSiteData()
	assessed := SiteAssessment{
		Name:     s.Name,
		Site:     site,
		Warnings: validation.ValidateSite(s.Name, site, r.tables),
	}

	var override zoning.DevelopmentType
	if s.DevelopmentType != "" {
		override = zoning.DevelopmentType(s.DevelopmentType)
		if _, ok := r.tables.Profile(override); !ok {
			return SiteAssessment{}, fmt.Errorf("site %s: %w: %s", s.Name, development.ErrUnknownDevelopmentType, s.DevelopmentType)
		}
	}

	proposal, err := r.generator.Generate(site)
	if err != nil {
		r.logger.Warn("site not assessed",
			zap.String("op", "assessment.AssessSite"),
			zap.String("site", s.Name),
			zap.Error(err),
		)
		assessed.Notes = append(assessed.Notes, fmt.Sprintf("No proposal generated: %s", err))
		return assessed, nil
	}

	if override != "" && override != proposal.DevelopmentType {
		proposal, err = r.generator.AdjustDevelopmentType(*proposal, override, site)
		if err != nil {
			return SiteAssessment{}, fmt.Errorf("site %s: %w", s.Name, err)
		}
		assessed.Notes = append(assessed.Notes, fmt.Sprintf("Development type set to %s", override))
	}

	if proposal.ProposedZoning != site.CurrentZoning {
		assessed.Notes = append(assessed.Notes, fmt.Sprintf("Rezoning from %s to %s suggested", site.CurrentZoning, proposal.ProposedZoning))
	}

	assessed.Proposal = proposal
	return assessed, nil
}

// Generator returns the proposal generator the runner uses.
func (r *Runner) Generator() *development.Generator {
	return r.generator
}

// Reconciler returns the reconciler the runner uses.
func (r *Runner) Reconciler() *valuation.Reconciler {
	return r.reconciler
}

// Tables returns the zoning tables the runner uses.
func (r *Runner) Tables() zoning.Tables {
	return r.generator.Tables()
}
