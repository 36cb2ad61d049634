package development

import (
	"fmt"
	"strings"

	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/format"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
	"go.uber.org/zap"
)

// Generator produces development proposals from a set of zoning tables. It
// holds no mutable state and is safe for concurrent use.
type Generator struct {
	logger *zap.Logger
	tables zoning.Tables
}

// NewGenerator creates a generator over the given tables. A nil logger is
// replaced by a no-op logger. The tables are validated up front so that
// every classification resolves to a profile.
func NewGenerator(logger *zap.Logger, tables zoning.Tables) (*Generator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := tables.Validate(); err != nil {
		return nil, fmt.Errorf("failed to create proposal generator: %w", err)
	}
	return &Generator{logger: logger, tables: tables.Clone()}, nil
}

// Tables returns the reference data the generator was built with.
func (g *Generator) Tables() zoning.Tables {
	return g.tables.Clone()
}

// Generate derives a proposal for the site. Sites without a positive land
// area are refused with ErrInvalidLandArea.
func (g *Generator) Generate(site SiteData) (*Proposal, error) {
	if site.LandArea <= 0 {
		return nil, ErrInvalidLandArea
	}

	devType := g.tables.Classify(site.State, site.CurrentZoning)
	profile, ok := g.tables.Profile(devType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDevelopmentType, devType)
	}

	landAreaHa := site.LandArea / constants.SquareMetresPerHectare
	capacity := CalculateCapacity(devType, profile, site.LandArea)
	proposedZoning := g.tables.SuggestZoning(site.State, site.CurrentZoning, landAreaHa)

	proposal := &Proposal{
		ProposedZoning:  proposedZoning,
		DevelopmentType: devType,
		Confidence:      constants.ProposalConfidence,
	}
	proposal.setCapacity(capacity)
	proposal.Description = describe(devType, profile, capacity)
	proposal.Rationale = rationale(site, devType, profile, capacity, proposedZoning)

	g.logger.Debug("development proposal generated",
		zap.String("op", "development.Generate"),
		zap.String("state", site.State),
		zap.String("currentZoning", site.CurrentZoning),
		zap.String("proposedZoning", proposedZoning),
		zap.String("developmentType", string(devType)),
		zap.Float64("landArea", site.LandArea),
		zap.Float64("floorSpaceRatio", capacity.FloorSpaceRatio),
		zap.Float64("proposedGFA", capacity.ProposedGFA),
		zap.Int("estimatedUnits", capacity.EstimatedUnits),
		zap.Bool("hdaSupport", capacity.HDASupport),
		zap.Bool("ssdaApproval", capacity.SSDAApproval),
	)

	return proposal, nil
}

// AdjustDevelopmentType re-derives a proposal's yield under a different
// development type. The zoning suggestion and confidence are carried over
// from current; the description and rationale are rebuilt for the new
// figures.
func (g *Generator) AdjustDevelopmentType(current Proposal, newType zoning.DevelopmentType, site SiteData) (*Proposal, error) {
	if site.LandArea <= 0 {
		return nil, ErrInvalidLandArea
	}

	profile, ok := g.tables.Profile(newType)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownDevelopmentType, newType)
	}

	capacity := CalculateCapacity(newType, profile, site.LandArea)

	adjusted := current
	adjusted.DevelopmentType = newType
	adjusted.setCapacity(capacity)
	adjusted.Description = describe(newType, profile, capacity)
	adjusted.Rationale = rationale(site, newType, profile, capacity, current.ProposedZoning)

	g.logger.Debug("development type adjusted",
		zap.String("op", "development.AdjustDevelopmentType"),
		zap.String("from", string(current.DevelopmentType)),
		zap.String("to", string(newType)),
		zap.Float64("proposedGFA", capacity.ProposedGFA),
		zap.Int("estimatedUnits", capacity.EstimatedUnits),
	)

	return &adjusted, nil
}

func (p *Proposal) setCapacity(c Capacity) {
	p.FloorSpaceRatio = c.FloorSpaceRatio
	p.HeightLimit = c.HeightLimit
	p.ProposedGFA = c.ProposedGFA
	p.EstimatedUnits = c.EstimatedUnits
	p.HDASupport = c.HDASupport
	p.SSDAApproval = c.SSDAApproval
}

func describe(devType zoning.DevelopmentType, profile zoning.Profile, c Capacity) string {
	var yield string
	if devType == zoning.Commercial || c.EstimatedUnits == 0 {
		yield = fmt.Sprintf("providing %s of gross floor area", format.Area(c.ProposedGFA))
	} else {
		yield = fmt.Sprintf("of approximately %d dwellings across %s of gross floor area",
			c.EstimatedUnits, format.Area(c.ProposedGFA))
	}

	return fmt.Sprintf("%s development %s at an FSR of %s with a maximum building height of %s. %s.",
		profile.Name, yield, format.Ratio(c.FloorSpaceRatio), format.Metres(c.HeightLimit), profile.Description)
}

func rationale(site SiteData, devType zoning.DevelopmentType, profile zoning.Profile, c Capacity, proposedZoning string) string {
	landAreaHa := site.LandArea / constants.SquareMetresPerHectare

	location := zoning.NormalizeState(site.State)
	if council := strings.TrimSpace(site.Council); council != "" {
		location = council + ", " + location
	}
	if location == "" {
		location = "an unspecified jurisdiction"
	}

	zoningLabel := strings.TrimSpace(site.CurrentZoning)
	if zoningLabel == "" {
		zoningLabel = "no recorded zoning"
	}

	sentences := []string{
		fmt.Sprintf("The %s site (%s) in %s is currently zoned %s, which aligns with %s development (%s).",
			format.Area(site.LandArea), format.Hectares(landAreaHa), location, zoningLabel, profile.Name, devType),
		fmt.Sprintf("Applying the 70th percentile of the typical FSR range (%s to %s) gives %s of gross floor area, and the 60th percentile of the typical height range gives %s.",
			format.Ratio(profile.TypicalFSR.Min), format.Ratio(profile.TypicalFSR.Max), format.Area(c.ProposedGFA), format.Metres(c.HeightLimit)),
	}

	if c.EstimatedUnits > 0 {
		sentences = append(sentences, fmt.Sprintf("A mid-range density of %.0f dwellings per hectare yields about %d dwellings.",
			c.UnitsPerHa, c.EstimatedUnits))
	}
	if proposedZoning != site.CurrentZoning {
		sentences = append(sentences, fmt.Sprintf("Given the site area, rezoning from %s to %s should be pursued.",
			zoningLabel, proposedZoning))
	}
	if c.HDASupport {
		sentences = append(sentences, "The site area or dwelling yield is large enough to seek Housing Delivery Authority support.")
	}
	if c.SSDAApproval {
		sentences = append(sentences, "The proposal exceeds State Significant Development thresholds and is likely to need SSDA assessment.")
	}

	return strings.Join(sentences, " ")
}
