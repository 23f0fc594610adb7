package assessment

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateProductImpactsTotals(t *testing.T) {
	materials := []MaterialImpactRecord{
		{
			ID:              uuid.New(),
			Name:            "Oat flour",
			Quantity:        0.5,
			Unit:            "kg",
			Impacts:         ImpactValues{ClimateChange: 10, WaterConsumption: 1},
			TransportImpact: 2,
		},
		{
			ID:       uuid.New(),
			Name:     "PET Bottle",
			Quantity: 1,
			Unit:     "unit",
			Impacts:  ImpactValues{ClimateChange: 4},
		},
	}
	allocations := []FacilityAllocation{
		{
			FacilityID:                 uuid.New(),
			FacilityName:               "Rotterdam plant",
			ProductionVolumeSharePct:   50,
			FacilityEmissionsIntensity: 0.002,
			FacilityScope1:             60,
			FacilityScope2:             40,
		},
	}

	got := AggregateProductImpacts(materials, allocations, 1000)

	// Category totals are pre-multiplied values summed as-is, never
	// re-multiplied by quantity.
	assert.InDelta(t, 10.0, got.Categories.Materials, 1e-9)
	assert.InDelta(t, 4.0, got.Categories.Packaging, 1e-9)
	assert.InDelta(t, 2.0, got.Categories.Transport, 1e-9)
	assert.InDelta(t, 1.0, got.Categories.Production, 1e-9, "1000 * 50% * 0.002")
	assert.InDelta(t, 1.0, got.Totals.WaterConsumption, 1e-9)

	// Transport flows into the climate total as well as its own bucket.
	assert.InDelta(t, 17.0, got.TotalClimateImpact, 1e-9)

	// Facility scope split follows the facility's own 60:40 ratio.
	assert.InDelta(t, 0.6, got.Scopes.Scope1, 1e-9)
	assert.InDelta(t, 0.4, got.Scopes.Scope2, 1e-9)
	assert.InDelta(t, 16.0, got.Scopes.Scope3, 1e-9)

	// Lifecycle stages.
	assert.InDelta(t, 14.0, got.LifecycleStages.RawMaterials, 1e-9)
	assert.InDelta(t, 1.0, got.LifecycleStages.Production, 1e-9)
	assert.InDelta(t, 2.0, got.LifecycleStages.Distribution, 1e-9)

	// GHG split: 85/15 over material climate, transport and production fossil.
	assert.InDelta(t, 0.85*14+2+1, got.GHG.FossilCO2, 1e-9)
	assert.InDelta(t, 0.15*14, got.GHG.BiogenicCO2, 1e-9)
}

func TestAggregateProductImpactsBreakdowns(t *testing.T) {
	small := MaterialImpactRecord{ID: uuid.New(), Name: "Cap", Impacts: ImpactValues{ClimateChange: 1}}
	large := MaterialImpactRecord{ID: uuid.New(), Name: "Base", Impacts: ImpactValues{ClimateChange: 9}}

	got := AggregateProductImpacts([]MaterialImpactRecord{small, large}, nil, 0)

	require.Len(t, got.MaterialBreakdown, 2)
	assert.Equal(t, "Base", got.MaterialBreakdown[0].Name, "ranked descending by magnitude")
	assert.InDelta(t, 90.0, got.MaterialBreakdown[0].Percentage, 1e-9)
	assert.InDelta(t, 10.0, got.MaterialBreakdown[1].Percentage, 1e-9)

	var sum float64
	for _, entry := range got.MaterialBreakdown {
		sum += entry.Percentage
	}
	assert.InDelta(t, 100.0, sum, 1e-9)
}

func TestAggregateProductImpactsZeroTotal(t *testing.T) {
	materials := []MaterialImpactRecord{
		{ID: uuid.New(), Name: "Placeholder", Quantity: 2, Unit: "kg"},
	}

	got := AggregateProductImpacts(materials, nil, 0)

	assert.Zero(t, got.TotalClimateImpact)
	require.Len(t, got.MaterialBreakdown, 1)
	assert.Zero(t, got.MaterialBreakdown[0].Percentage, "no NaN when the total is zero")
}

func TestAggregateProductImpactsPackagingHeuristic(t *testing.T) {
	byTag := MaterialImpactRecord{Name: "Sleeve", PackagingCategory: "secondary", Impacts: ImpactValues{ClimateChange: 1}}
	byName := MaterialImpactRecord{Name: "Shrink Label", Impacts: ImpactValues{ClimateChange: 1}}
	rawMat := MaterialImpactRecord{Name: "Sunflower oil", Impacts: ImpactValues{ClimateChange: 1}}

	got := AggregateProductImpacts([]MaterialImpactRecord{byTag, byName, rawMat}, nil, 0)

	assert.InDelta(t, 2.0, got.Categories.Packaging, 1e-9)
	assert.InDelta(t, 1.0, got.Categories.Materials, 1e-9)
}

func TestAggregateProductImpactsEndOfLifeCredit(t *testing.T) {
	rec := MaterialImpactRecord{
		Name:            "Recycled aluminium",
		Impacts:         ImpactValues{ClimateChange: 5},
		EndOfLifeImpact: -2,
	}

	got := AggregateProductImpacts([]MaterialImpactRecord{rec}, nil, 0)

	assert.InDelta(t, 3.0, got.TotalClimateImpact, 1e-9, "avoided-burden credit reduces the total")
	assert.InDelta(t, -2.0, got.Categories.EndOfLife, 1e-9)
	assert.InDelta(t, -2.0, got.LifecycleStages.EndOfLife, 1e-9)
}

func TestAggregateProductImpactsFacilityWithoutScopes(t *testing.T) {
	alloc := FacilityAllocation{
		FacilityName:               "Legacy site",
		ProductionVolumeSharePct:   100,
		FacilityEmissionsIntensity: 0.01,
	}

	got := AggregateProductImpacts(nil, []FacilityAllocation{alloc}, 100)

	// No recorded scope split: treated as all direct emissions.
	assert.InDelta(t, 1.0, got.Scopes.Scope1, 1e-9)
	assert.Zero(t, got.Scopes.Scope2)
}

func TestAggregateProductImpactsIdempotent(t *testing.T) {
	materials := []MaterialImpactRecord{
		{ID: uuid.New(), Name: "Oat flour", Impacts: ImpactValues{ClimateChange: 10}, TransportImpact: 1.5},
		{ID: uuid.New(), Name: "Glass bottle", Impacts: ImpactValues{ClimateChange: 7.2}},
	}
	allocations := []FacilityAllocation{
		{FacilityID: uuid.New(), FacilityName: "Plant A", ProductionVolumeSharePct: 25, FacilityEmissionsIntensity: 0.004, FacilityScope1: 10, FacilityScope2: 30},
	}

	first := AggregateProductImpacts(materials, allocations, 500)
	second := AggregateProductImpacts(materials, allocations, 500)

	assert.True(t, reflect.DeepEqual(first, second), "identical inputs must yield bit-identical results")
}
