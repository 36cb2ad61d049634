// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/hammad983ae/sustaino-sub002/internal/assessment"
)

// FindValuation finds a valuation assessment by name in the report.
// Returns a pointer to the assessment if found, nil otherwise.
func FindValuation(report *assessment.Report, name string) *assessment.ValuationAssessment {
	if report == nil {
		return nil
	}
	for i := range report.Valuations {
		if report.Valuations[i].Name == name {
			return &report.Valuations[i]
		}
	}
	return nil
}

// FindSite finds a site assessment by name in the report.
// Returns a pointer to the assessment if found, nil otherwise.
func FindSite(report *assessment.Report, name string) *assessment.SiteAssessment {
	if report == nil {
		return nil
	}
	for i := range report.Sites {
		if report.Sites[i].Name == name {
			return &report.Sites[i]
		}
	}
	return nil
}
