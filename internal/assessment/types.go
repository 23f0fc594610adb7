package assessment

import (
	"github.com/google/uuid"
)

// DataSourceTier classifies the provenance of a material's impact values
type DataSourceTier string

const (
	TierPrimaryVerified    DataSourceTier = "primary_verified"
	TierSecondaryModelled  DataSourceTier = "secondary_modelled"
	TierSecondaryEstimated DataSourceTier = "secondary_estimated"
)

// QualityGrade is the coarse supplier-assigned quality grade for a material
type QualityGrade string

const (
	GradeHigh   QualityGrade = "HIGH"
	GradeMedium QualityGrade = "MEDIUM"
	GradeLow    QualityGrade = "LOW"
)

// ConfidenceLevel is the product-level confidence tier
type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "HIGH"
	ConfidenceMedium ConfidenceLevel = "MEDIUM"
	ConfidenceLow    ConfidenceLevel = "LOW"
)

// ImpactValues holds the ReCiPe 2016 midpoint category results for one material,
// already resolved upstream to quantity x factor. Values must never be multiplied
// by quantity again.
type ImpactValues struct {
	ClimateChange              float64 `json:"climate_change"`                // kg CO2-eq
	OzoneDepletion             float64 `json:"ozone_depletion"`               // kg CFC11-eq
	IonisingRadiation          float64 `json:"ionising_radiation"`            // kBq Co60-eq
	PhotochemicalOzoneCreation float64 `json:"photochemical_ozone_creation"`  // kg NOx-eq
	ParticulateMatter          float64 `json:"particulate_matter"`            // kg PM2.5-eq
	HumanToxicityCancer        float64 `json:"human_toxicity_cancer"`         // CTUh
	HumanToxicityNonCancer     float64 `json:"human_toxicity_non_cancer"`     // CTUh
	TerrestrialAcidification   float64 `json:"terrestrial_acidification"`     // kg SO2-eq
	FreshwaterEutrophication   float64 `json:"freshwater_eutrophication"`     // kg P-eq
	MarineEutrophication       float64 `json:"marine_eutrophication"`         // kg N-eq
	TerrestrialEcotoxicity     float64 `json:"terrestrial_ecotoxicity"`       // CTUe
	FreshwaterEcotoxicity      float64 `json:"freshwater_ecotoxicity"`        // CTUe
	MarineEcotoxicity          float64 `json:"marine_ecotoxicity"`            // CTUe
	LandUse                    float64 `json:"land_use"`                      // m2a crop-eq
	WaterConsumption           float64 `json:"water_consumption"`             // m3
	MineralResourceScarcity    float64 `json:"mineral_resource_scarcity"`     // kg Cu-eq
	FossilResourceScarcity     float64 `json:"fossil_resource_scarcity"`      // kg oil-eq
	Biodiversity               float64 `json:"biodiversity"`                  // species.yr
}

// Add accumulates another set of impact values into the receiver.
func (v *ImpactValues) Add(other ImpactValues) {
	v.ClimateChange += other.ClimateChange
	v.OzoneDepletion += other.OzoneDepletion
	v.IonisingRadiation += other.IonisingRadiation
	v.PhotochemicalOzoneCreation += other.PhotochemicalOzoneCreation
	v.ParticulateMatter += other.ParticulateMatter
	v.HumanToxicityCancer += other.HumanToxicityCancer
	v.HumanToxicityNonCancer += other.HumanToxicityNonCancer
	v.TerrestrialAcidification += other.TerrestrialAcidification
	v.FreshwaterEutrophication += other.FreshwaterEutrophication
	v.MarineEutrophication += other.MarineEutrophication
	v.TerrestrialEcotoxicity += other.TerrestrialEcotoxicity
	v.FreshwaterEcotoxicity += other.FreshwaterEcotoxicity
	v.MarineEcotoxicity += other.MarineEcotoxicity
	v.LandUse += other.LandUse
	v.WaterConsumption += other.WaterConsumption
	v.MineralResourceScarcity += other.MineralResourceScarcity
	v.FossilResourceScarcity += other.FossilResourceScarcity
	v.Biodiversity += other.Biodiversity
}

// PedigreeOverride carries explicitly supplied pedigree dimensions. Nil fields are
// derived by the engine (grade defaults plus the temporal/geographic classifier).
type PedigreeOverride struct {
	Reliability   *int `json:"reliability,omitempty"`
	Completeness  *int `json:"completeness,omitempty"`
	Temporal      *int `json:"temporal,omitempty"`
	Geographical  *int `json:"geographical,omitempty"`
	Technological *int `json:"technological,omitempty"`
}

// MaterialImpactRecord is one resolved product input (ingredient, packaging
// component or process flow) as produced by upstream emission-factor resolution.
type MaterialImpactRecord struct {
	ID                 uuid.UUID         `json:"id"`
	Name               string            `json:"name"`
	Quantity           float64           `json:"quantity"`
	Unit               string            `json:"unit"`
	Impacts            ImpactValues      `json:"impacts"`
	TransportImpact    float64           `json:"transport_impact"`     // kg CO2-eq, distribution leg
	EndOfLifeImpact    float64           `json:"end_of_life_impact"`   // kg CO2-eq, may be a negative credit
	DataSourceTier     DataSourceTier    `json:"data_source_tier"`
	QualityGrade       QualityGrade      `json:"quality_grade"`
	UncertaintyPercent *float64          `json:"uncertainty_percent,omitempty"`
	Pedigree           *PedigreeOverride `json:"pedigree,omitempty"`
	DataYear           *int              `json:"data_year,omitempty"`
	DataRegion         string            `json:"data_region,omitempty"`
	PackagingCategory  string            `json:"packaging_category,omitempty"`
}

// ClimateContribution is the material's total contribution to the product
// climate total: the resolved climate impact plus its transport and
// end-of-life terms, which the aggregator folds into the same total.
func (m MaterialImpactRecord) ClimateContribution() float64 {
	return m.Impacts.ClimateChange + m.TransportImpact + m.EndOfLifeImpact
}

// FacilityAllocation attributes a slice of a production facility's emissions to
// the assessed product.
type FacilityAllocation struct {
	FacilityID                 uuid.UUID `json:"facility_id"`
	FacilityName               string    `json:"facility_name"`
	ProductionVolumeSharePct   float64   `json:"production_volume_share_percent"`
	FacilityEmissionsIntensity float64   `json:"facility_emissions_intensity"` // kg CO2-eq per functional unit
	FacilityScope1             float64   `json:"facility_scope1"`
	FacilityScope2             float64   `json:"facility_scope2"`
}

// ScopeTotals holds GHG Protocol scope totals in kg CO2-eq.
type ScopeTotals struct {
	Scope1 float64 `json:"scope1"`
	Scope2 float64 `json:"scope2"`
	Scope3 float64 `json:"scope3"`
}

// CategoryTotals splits the climate total by contribution category.
type CategoryTotals struct {
	Materials  float64 `json:"materials"`
	Packaging  float64 `json:"packaging"`
	Production float64 `json:"production"`
	Transport  float64 `json:"transport"`
	EndOfLife  float64 `json:"end_of_life"`
}

// LifecycleStageTotals splits the climate total by lifecycle stage.
type LifecycleStageTotals struct {
	RawMaterials float64 `json:"raw_materials"`
	Production   float64 `json:"production"`
	Distribution float64 `json:"distribution"`
	Use          float64 `json:"use"`
	EndOfLife    float64 `json:"end_of_life"`
}

// GHGBreakdown decomposes the climate total by gas type.
type GHGBreakdown struct {
	FossilCO2        float64 `json:"fossil_co2"`
	BiogenicCO2      float64 `json:"biogenic_co2"`
	LandUseChangeCO2 float64 `json:"land_use_change_co2"`
	Methane          float64 `json:"methane"`
	NitrousOxide     float64 `json:"nitrous_oxide"`
}

// MaterialContribution is one entry in the ranked per-material breakdown.
type MaterialContribution struct {
	MaterialID uuid.UUID `json:"material_id"`
	Name       string    `json:"name"`
	Impact     float64   `json:"impact"` // kg CO2-eq incl. transport and end-of-life
	Percentage float64   `json:"percentage"`
}

// FacilityContribution is one entry in the ranked per-facility breakdown.
type FacilityContribution struct {
	FacilityID         uuid.UUID `json:"facility_id"`
	Name               string    `json:"name"`
	AllocatedEmissions float64   `json:"allocated_emissions"` // kg CO2-eq
	Scope1             float64   `json:"scope1"`
	Scope2             float64   `json:"scope2"`
	Percentage         float64   `json:"percentage"`
}

// AggregatedImpacts is the full per-product impact result, recomputed wholesale
// whenever any input changes.
type AggregatedImpacts struct {
	Totals             ImpactValues           `json:"totals"`
	TotalClimateImpact float64                `json:"total_climate_impact"` // kg CO2-eq incl. transport, production, end-of-life
	Scopes             ScopeTotals            `json:"scopes"`
	Categories         CategoryTotals         `json:"categories"`
	LifecycleStages    LifecycleStageTotals   `json:"lifecycle_stages"`
	GHG                GHGBreakdown           `json:"ghg_breakdown"`
	MaterialBreakdown  []MaterialContribution `json:"material_breakdown"`
	FacilityBreakdown  []FacilityContribution `json:"facility_breakdown"`
}

// FlagSeverity grades a quality flag.
type FlagSeverity string

const (
	SeverityCritical FlagSeverity = "critical"
	SeverityWarning  FlagSeverity = "warning"
	SeverityInfo     FlagSeverity = "info"
)

// QualityFlag is one human-readable data-quality finding.
type QualityFlag struct {
	Code     string       `json:"code"`
	Severity FlagSeverity `json:"severity"`
	Message  string       `json:"message"`
}

// MaterialDataQuality is the per-material quality record.
type MaterialDataQuality struct {
	MaterialID     uuid.UUID          `json:"material_id"`
	MaterialName   string             `json:"material_name"`
	Impact         float64            `json:"impact"` // signed climate contribution used for weighting
	DataSourceTier DataSourceTier     `json:"data_source_tier"`
	QualityGrade   QualityGrade       `json:"quality_grade"`
	Pedigree       PedigreeMatrix     `json:"pedigree"`
	DQI            int                `json:"dqi"` // 0-100
	Uncertainty    UncertaintyFactors `json:"uncertainty"`
	DataYear       *int               `json:"data_year,omitempty"`
	Temporal       TemporalResult     `json:"temporal"`
	Geographic     GeographicalResult `json:"geographic"`
	Flags          []QualityFlag      `json:"flags"`
}

// TierShare is the provenance breakdown entry for one data-source tier.
type TierShare struct {
	Count          int `json:"count"`
	ImpactSharePct int `json:"impact_share_percent"`
}

// PedigreeAverages is the impact-weighted mean pedigree matrix, one decimal place.
type PedigreeAverages struct {
	Reliability   float64 `json:"reliability"`
	Completeness  float64 `json:"completeness"`
	Temporal      float64 `json:"temporal"`
	Geographical  float64 `json:"geographical"`
	Technological float64 `json:"technological"`
}

// TemporalCoverage summarises the age of the underlying data.
type TemporalCoverage struct {
	OldestYear     *int `json:"oldest_year,omitempty"`
	NewestYear     *int `json:"newest_year,omitempty"`
	AverageAge     int  `json:"average_age_years"`
	StaleCount     int  `json:"stale_count"`
	StaleImpactPct int  `json:"stale_impact_share_percent"`
}

// AggregateDataQuality is the product-level quality verdict.
type AggregateDataQuality struct {
	OverallDQI             int                          `json:"overall_dqi"`
	Confidence             ConfidenceLevel              `json:"confidence"`
	WeightedUncertaintyPct int                          `json:"weighted_uncertainty_percent"`
	TierBreakdown          map[DataSourceTier]TierShare `json:"tier_breakdown"`
	WeightedPedigree       PedigreeAverages             `json:"weighted_pedigree"`
	Temporal               TemporalCoverage             `json:"temporal_coverage"`
	Flags                  []QualityFlag                `json:"flags"`
	ISOCompliant           bool                         `json:"iso_compliant"`
	ComplianceGaps         []string                     `json:"compliance_gaps"`
	Materials              []MaterialDataQuality        `json:"materials"`
}
