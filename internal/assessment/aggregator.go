package assessment

import (
	"math"
	"sort"
	"strings"
)

// Default GHG gas-type decomposition. The coarse 85/15 fossil/biogenic split is
// the canonical method for this engine; transport and production legs count as
// 100% fossil. A per-material-category split would be more granular but the
// two must not coexist, so only this one is implemented.
const (
	defaultFossilShare   = 0.85
	defaultBiogenicShare = 0.15
)

// packagingKeywords drive the fallback packaging classification when no
// explicit packaging_category tag is present. Substring match on the material
// name, case-insensitive. A heuristic, not authoritative.
var packagingKeywords = []string{"bottle", "cap", "label"}

// isPackaging classifies a material as packaging by its explicit tag, falling
// back to the keyword heuristic.
func isPackaging(rec MaterialImpactRecord) bool {
	if rec.PackagingCategory != "" {
		return true
	}
	name := strings.ToLower(rec.Name)
	for _, kw := range packagingKeywords {
		if strings.Contains(name, kw) {
			return true
		}
	}
	return false
}

// AggregateProductImpacts sums resolved per-material and per-facility
// contributions into the product-level impact result. Impact values arrive
// pre-multiplied (quantity x factor) and are never multiplied by quantity
// again. functionalUnit is the number of product units the facility
// allocations are scaled to. Pure and deterministic: identical inputs yield
// identical results.
func AggregateProductImpacts(materials []MaterialImpactRecord, allocations []FacilityAllocation, functionalUnit float64) AggregatedImpacts {
	var result AggregatedImpacts

	for _, rec := range materials {
		result.Totals.Add(rec.Impacts)

		climate := rec.Impacts.ClimateChange
		if isPackaging(rec) {
			result.Categories.Packaging += climate
		} else {
			result.Categories.Materials += climate
		}
		result.LifecycleStages.RawMaterials += climate

		// Transport counts toward both the climate total and its own bucket.
		result.Totals.ClimateChange += rec.TransportImpact
		result.Categories.Transport += rec.TransportImpact
		result.LifecycleStages.Distribution += rec.TransportImpact

		result.Totals.ClimateChange += rec.EndOfLifeImpact
		result.Categories.EndOfLife += rec.EndOfLifeImpact
		result.LifecycleStages.EndOfLife += rec.EndOfLifeImpact

		result.Scopes.Scope3 += rec.ClimateContribution()

		result.GHG.FossilCO2 += climate*defaultFossilShare + rec.TransportImpact + rec.EndOfLifeImpact
		result.GHG.BiogenicCO2 += climate * defaultBiogenicShare

		result.MaterialBreakdown = append(result.MaterialBreakdown, MaterialContribution{
			MaterialID: rec.ID,
			Name:       rec.Name,
			Impact:     rec.ClimateContribution(),
		})
	}

	for _, alloc := range allocations {
		allocated := functionalUnit * (alloc.ProductionVolumeSharePct / 100) * alloc.FacilityEmissionsIntensity

		// Scope 1/2 split follows the facility's own recorded ratio; a
		// facility with no recorded scopes is treated as all direct.
		scope1Ratio := 1.0
		if total := alloc.FacilityScope1 + alloc.FacilityScope2; total > 0 {
			scope1Ratio = alloc.FacilityScope1 / total
		}
		scope1 := allocated * scope1Ratio
		scope2 := allocated - scope1

		result.Totals.ClimateChange += allocated
		result.Categories.Production += allocated
		result.LifecycleStages.Production += allocated
		result.Scopes.Scope1 += scope1
		result.Scopes.Scope2 += scope2
		result.GHG.FossilCO2 += allocated

		result.FacilityBreakdown = append(result.FacilityBreakdown, FacilityContribution{
			FacilityID:         alloc.FacilityID,
			Name:               alloc.FacilityName,
			AllocatedEmissions: allocated,
			Scope1:             scope1,
			Scope2:             scope2,
		})
	}

	result.TotalClimateImpact = result.Totals.ClimateChange

	// Percentage shares of the grand total; all zero when the total is zero.
	total := result.TotalClimateImpact
	for i := range result.MaterialBreakdown {
		if total != 0 {
			result.MaterialBreakdown[i].Percentage = result.MaterialBreakdown[i].Impact / total * 100
		}
	}
	for i := range result.FacilityBreakdown {
		if total != 0 {
			result.FacilityBreakdown[i].Percentage = result.FacilityBreakdown[i].AllocatedEmissions / total * 100
		}
	}

	// Rank descending by impact magnitude; ties keep input order.
	sort.SliceStable(result.MaterialBreakdown, func(i, j int) bool {
		return math.Abs(result.MaterialBreakdown[i].Impact) > math.Abs(result.MaterialBreakdown[j].Impact)
	})
	sort.SliceStable(result.FacilityBreakdown, func(i, j int) bool {
		return math.Abs(result.FacilityBreakdown[i].AllocatedEmissions) > math.Abs(result.FacilityBreakdown[j].AllocatedEmissions)
	})

	return result
}
