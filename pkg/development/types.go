// Package development derives a recommended development yield for a site
// from its zoning, jurisdiction and area: floor space ratio, height, gross
// floor area, dwelling yield and approval pathway flags.
package development

import (
	"errors"

	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
)

var (
	// ErrInvalidLandArea is returned when a site has no positive land area.
	ErrInvalidLandArea = errors.New("land area must be greater than zero")

	// ErrUnknownDevelopmentType is returned for a development type with no profile.
	ErrUnknownDevelopmentType = errors.New("unknown development type")
)

// SiteData is the subset of a site record the generator reads and the
// fields an applied proposal writes back.
type SiteData struct {
	LandArea      float64 `json:"landArea" yaml:"landArea"`
	CurrentZoning string  `json:"currentZoning" yaml:"currentZoning"`
	State         string  `json:"state" yaml:"state"`
	Council       string  `json:"council,omitempty" yaml:"council,omitempty"`

	ProposedZoning         string  `json:"proposedZoning,omitempty" yaml:"proposedZoning,omitempty"`
	FloorSpaceRatio        float64 `json:"floorSpaceRatio,omitempty" yaml:"floorSpaceRatio,omitempty"`
	ProposedGFA            float64 `json:"proposedGFA,omitempty" yaml:"proposedGFA,omitempty"`
	EstimatedUnits         int     `json:"estimatedUnits,omitempty" yaml:"estimatedUnits,omitempty"`
	HDASupport             bool    `json:"hdaSupport,omitempty" yaml:"hdaSupport,omitempty"`
	SSDAApproval           bool    `json:"ssdaApproval,omitempty" yaml:"ssdaApproval,omitempty"`
	HeightLimit            float64 `json:"heightLimit,omitempty" yaml:"heightLimit,omitempty"`
	DevelopmentDescription string  `json:"developmentDescription,omitempty" yaml:"developmentDescription,omitempty"`
}

// Proposal is a recommended development outcome for a site.
type Proposal struct {
	ProposedZoning  string                 `json:"proposedZoning"`
	DevelopmentType zoning.DevelopmentType `json:"developmentType"`
	FloorSpaceRatio float64                `json:"floorSpaceRatio"`
	HeightLimit     float64                `json:"heightLimit"`
	ProposedGFA     float64                `json:"proposedGFA"`
	EstimatedUnits  int                    `json:"estimatedUnits"`
	HDASupport      bool                   `json:"hdaSupport"`
	SSDAApproval    bool                   `json:"ssdaApproval"`
	Description     string                 `json:"description"`
	Rationale       string                 `json:"rationale"`
	Confidence      int                    `json:"confidence"`
}

// SitePatch lists the site fields an applied proposal overwrites.
type SitePatch struct {
	ProposedZoning  string  `json:"proposedZoning"`
	FloorSpaceRatio float64 `json:"floorSpaceRatio"`
	ProposedGFA     float64 `json:"proposedGFA"`
	EstimatedUnits  int     `json:"estimatedUnits"`
	HDASupport      bool    `json:"hdaSupport"`
	SSDAApproval    bool    `json:"ssdaApproval"`
	HeightLimit     float64 `json:"heightLimit"`
	Description     string  `json:"description"`
}

// Apply builds the patch that merges a proposal into a site record. Nothing
// is written until the caller applies the patch.
func Apply(p Proposal) SitePatch {
	return SitePatch{
		ProposedZoning:  p.ProposedZoning,
		FloorSpaceRatio: p.FloorSpaceRatio,
		ProposedGFA:     p.ProposedGFA,
		EstimatedUnits:  p.EstimatedUnits,
		HDASupport:      p.HDASupport,
		SSDAApproval:    p.SSDAApproval,
		HeightLimit:     p.HeightLimit,
		Description:     p.Description,
	}
}

// ApplyPatch returns a copy of the site with the patch merged in.
func (s SiteData) ApplyPatch(patch SitePatch) SiteData {
	s.ProposedZoning = patch.ProposedZoning
	s.FloorSpaceRatio = patch.FloorSpaceRatio
	s.ProposedGFA = patch.ProposedGFA
	s.EstimatedUnits = patch.EstimatedUnits
	s.HDASupport = patch.HDASupport
	s.SSDAApproval = patch.SSDAApproval
	s.HeightLimit = patch.HeightLimit
	s.DevelopmentDescription = patch.Description
	return s
}

// Fields returns the patch as a field-name keyed map, for callers that
// update records through a generic setter.
func (p SitePatch) Fields() map[string]interface{} {
	return map[string]interface{}{
		"proposedZoning":         p.ProposedZoning,
		"floorSpaceRatio":        p.FloorSpaceRatio,
		"proposedGFA":            p.ProposedGFA,
		"estimatedUnits":         p.EstimatedUnits,
		"hdaSupport":             p.HDASupport,
		"ssdaApproval":           p.SSDAApproval,
		"heightLimit":            p.HeightLimit,
		"developmentDescription": p.Description,
	}
}
