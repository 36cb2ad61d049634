package development

import (
	"math"

	"github.com/hammad983ae/sustaino-sub002/pkg/constants"
	"github.com/hammad983ae/sustaino-sub002/pkg/zoning"
)

// Capacity is the numeric yield of a site under one development profile.
type Capacity struct {
	FloorSpaceRatio float64
	HeightLimit     float64
	ProposedGFA     float64
	UnitsPerHa      float64
	EstimatedUnits  int
	HDASupport      bool
	SSDAApproval    bool
}

// CalculateCapacity applies a profile's parameter bands to a site area in
// square metres.
func CalculateCapacity(devType zoning.DevelopmentType, profile zoning.Profile, landArea float64) Capacity {
	landAreaHa := landArea / constants.SquareMetresPerHectare

	fsr := profile.TypicalFSR.At(constants.FSRPercentile)
	height := profile.TypicalHeight.At(constants.HeightPercentile)
	gfa := math.Round(landArea * fsr)
	unitsPerHa := profile.UnitsPerHa.At(constants.DensityPercentile)

	units := 0
	if devType != zoning.Commercial {
		units = int(math.Round(landAreaHa * unitsPerHa))
	}

	hda := landArea > constants.HDALandAreaThreshold || units > constants.HDAUnitThreshold
	ssda := landArea > constants.SSDALandAreaThreshold ||
		gfa > constants.SSDAGFAThreshold ||
		units > constants.SSDAUnitThreshold ||
		height > constants.SSDAHeightThreshold

	return Capacity{
		FloorSpaceRatio: fsr,
		HeightLimit:     height,
		ProposedGFA:     gfa,
		UnitsPerHa:      unitsPerHa,
		EstimatedUnits:  units,
		HDASupport:      hda,
		SSDAApproval:    ssda,
	}
}
