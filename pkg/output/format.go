// Package output provides utilities for formatting and displaying assessment results.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hammad983ae/sustaino-sub002/internal/assessment"
	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/format"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Write renders the report in the named output format.
func Write(w io.Writer, outputFormat string, report *assessment.Report) error {
	switch outputFormat {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, report)
	case constants.OutputFormatCSV:
		return CsvFormat(w, report)
	case constants.OutputFormatJSON:
		return JSONFormat(w, report)
	default:
		return fmt.Errorf("unsupported output format %q", outputFormat)
	}
}

// PrettyFormat outputs a human-readable rather than machine-readable report.
func PrettyFormat(w io.Writer, report *assessment.Report) error {
	p := message.NewPrinter(language.English)
	ew := &errWriter{w: w}

	for _, warning := range report.Warnings {
		ew.printf("Warning: %s\n", warning)
	}
	if len(report.Warnings) > 0 {
		ew.printf("\n")
	}

	for i, v := range report.Valuations {
		r := v.Result
		ew.printf("--- Valuation %s ---\n", v.Name)
		ew.printf("Approach   | Value           | Weight\n")
		ew.printf("________   | _____________   | ______\n")
		ew.printf("Income     | %s | %.2f\n", format.Currency(r.IncomeApproach), r.MethodologyWeights.Income)
		ew.printf("Cost       | %s | %.2f\n", format.Currency(r.CostApproach), r.MethodologyWeights.Cost)
		ew.printf("Comparison | %s | %.2f\n", format.Currency(r.ComparisonApproach), r.MethodologyWeights.Comparison)
		ew.printf("Reconciled value: %s\n", format.WholeCurrency(r.WeightedValue))
		ew.printf("Variance: %s (%s) between %s and %s\n",
			format.Currency(r.VarianceAnalysis.Variance), format.Percent(r.VarianceAnalysis.VariancePercentage),
			format.Currency(r.VarianceAnalysis.LowValue), format.Currency(r.VarianceAnalysis.HighValue))
		ew.printf("Confidence: %s\n", r.Confidence)
		for _, warning := range v.Warnings {
			ew.printf("Warning: %s\n", warning)
		}
		if i < len(report.Valuations)-1 || len(report.Sites) > 0 {
			ew.printf("\n")
		}
	}

	for i, s := range report.Sites {
		ew.printf("--- Site %s ---\n", s.Name)
		ew.printf("Land area: %s (%s), zoning %s, %s\n",
			format.Area(s.Site.LandArea), format.Hectares(s.Site.LandArea/constants.SquareMetresPerHectare),
			s.Site.CurrentZoning, s.Site.State)
		if prop := s.Proposal; prop != nil {
			ew.printf("Development type: %s\n", prop.DevelopmentType)
			ew.printf("Proposed zoning: %s\n", prop.ProposedZoning)
			ew.printf("FSR: %s | Height: %s | GFA: %s | Units: %s\n",
				format.Ratio(prop.FloorSpaceRatio), format.Metres(prop.HeightLimit),
				format.Area(prop.ProposedGFA), p.Sprintf("%d", prop.EstimatedUnits))
			ew.printf("HDA support: %s | SSDA approval: %s | Confidence: %d%%\n",
				yesNo(prop.HDASupport), yesNo(prop.SSDAApproval), prop.Confidence)
			ew.printf("%s\n", prop.Description)
		}
		for _, note := range s.Notes {
			ew.printf("Note: %s\n", note)
		}
		for _, warning := range s.Warnings {
			ew.printf("Warning: %s\n", warning)
		}
		if i < len(report.Sites)-1 {
			ew.printf("\n")
		}
	}

	return ew.err
}

// CsvFormat outputs in comma-separated value format: one block of
// valuation rows followed by one block of site rows.
func CsvFormat(w io.Writer, report *assessment.Report) error {
	cw := csv.NewWriter(w)

	if len(report.Valuations) > 0 {
		_ = cw.Write([]string{"valuation", "income", "cost", "comparison", "weighted value",
			"income weight", "cost weight", "comparison weight", "variance", "variance percentage",
			"confidence", "warnings"})
		for _, v := range report.Valuations {
			r := v.Result
			_ = cw.Write([]string{
				v.Name,
				money(r.IncomeApproach),
				money(r.CostApproach),
				money(r.ComparisonApproach),
				money(r.WeightedValue),
				weight(r.MethodologyWeights.Income),
				weight(r.MethodologyWeights.Cost),
				weight(r.MethodologyWeights.Comparison),
				money(r.VarianceAnalysis.Variance),
				money(r.VarianceAnalysis.VariancePercentage),
				string(r.Confidence),
				strings.Join(v.Warnings, "; "),
			})
		}
	}

	if len(report.Sites) > 0 {
		if len(report.Valuations) > 0 {
			_ = cw.Write([]string{})
		}
		_ = cw.Write([]string{"site", "land area", "current zoning", "state", "development type",
			"proposed zoning", "fsr", "height", "gfa", "units", "hda support", "ssda approval",
			"confidence", "notes"})
		for _, s := range report.Sites {
			row := []string{
				s.Name,
				money(s.Site.LandArea),
				s.Site.CurrentZoning,
				s.Site.State,
			}
			if prop := s.Proposal; prop != nil {
				row = append(row,
					string(prop.DevelopmentType),
					prop.ProposedZoning,
					money(prop.FloorSpaceRatio),
					strconv.FormatFloat(prop.HeightLimit, 'f', 1, 64),
					strconv.FormatFloat(prop.ProposedGFA, 'f', 0, 64),
					strconv.Itoa(prop.EstimatedUnits),
					strconv.FormatBool(prop.HDASupport),
					strconv.FormatBool(prop.SSDAApproval),
					strconv.Itoa(prop.Confidence),
				)
			} else {
				row = append(row, "", "", "", "", "", "", "", "", "")
			}
			row = append(row, strings.Join(append(append([]string{}, s.Notes...), s.Warnings...), "; "))
			_ = cw.Write(row)
		}
	}

	cw.Flush()
	return cw.Error()
}

// JSONFormat outputs the report as indented JSON.
func JSONFormat(w io.Writer, report *assessment.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(report)
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func weight(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// errWriter keeps the first write error so that formatting code can write
// unconditionally.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

func (ew *errWriter) printf(layout string, args ...interface{}) {
	ew.write(fmt.Sprintf(layout, args...))
}
