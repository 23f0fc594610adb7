package assessment

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func flagCodes(flags []QualityFlag) []string {
	codes := make([]string, 0, len(flags))
	for _, f := range flags {
		codes = append(codes, f.Code)
	}
	return codes
}

func TestAssessMaterialDataQualityHighGrade(t *testing.T) {
	rec := MaterialImpactRecord{
		ID:             uuid.New(),
		Name:           "Organic oat base",
		Quantity:       0.5,
		Unit:           "kg",
		Impacts:        ImpactValues{ClimateChange: 10},
		DataSourceTier: TierPrimaryVerified,
		QualityGrade:   GradeHigh,
		DataYear:       intPtr(2023),
		DataRegion:     "GB",
	}

	got := AssessMaterialDataQuality(rec, "GB", 2024)

	assert.Equal(t, PedigreeMatrix{Reliability: 2, Completeness: 2, Temporal: 1, Geographical: 1, Technological: 2}, got.Pedigree)
	assert.Equal(t, 85, got.DQI)
	assert.True(t, got.Geographic.IsExactMatch)
	assert.False(t, got.Temporal.IsStale)
	assert.Empty(t, got.Flags)
}

func TestAssessMaterialDataQualityDefaultsRegionsToGlobal(t *testing.T) {
	rec := MaterialImpactRecord{
		Name:         "Unknown filler",
		QualityGrade: GradeMedium,
		DataYear:     intPtr(2024),
	}

	// Both regions default to GLO, which is an exact match of itself.
	got := AssessMaterialDataQuality(rec, "", 2024)
	assert.Equal(t, 1, got.Geographic.Score)
	assert.True(t, got.Geographic.IsExactMatch)
}

func TestAssessMaterialDataQualityExplicitPedigreeWins(t *testing.T) {
	rec := MaterialImpactRecord{
		Name:         "Measured resin",
		QualityGrade: GradeLow,
		Pedigree:     &PedigreeOverride{Reliability: intPtr(1)},
		DataYear:     intPtr(2024),
		DataRegion:   "GB",
	}

	got := AssessMaterialDataQuality(rec, "GB", 2024)

	assert.Equal(t, 1, got.Pedigree.Reliability, "explicit score overrides the grade default")
	assert.Equal(t, 4, got.Pedigree.Completeness, "unset dimensions keep the LOW default")
	assert.Equal(t, 4, got.Pedigree.Technological)
}

func TestAssessMaterialDataQualityFlagOrder(t *testing.T) {
	rec := MaterialImpactRecord{
		Name:               "Imported additive",
		QualityGrade:       GradeLow,
		UncertaintyPercent: floatPtr(60),
		DataYear:           nil,
		DataRegion:         "CN",
	}

	got := AssessMaterialDataQuality(rec, "GB", 2024)

	assert.Equal(t,
		[]string{FlagDataVeryStale, FlagGeoMismatch, FlagLowQuality, FlagHighUncertainty},
		flagCodes(got.Flags))
	// Very-stale and stale flags are mutually exclusive.
	assert.NotContains(t, flagCodes(got.Flags), FlagDataStale)
}

func TestAssessAggregateDataQualityEmptyInput(t *testing.T) {
	got := AssessAggregateDataQuality(nil, "GB", 2024)

	assert.Equal(t, 0, got.OverallDQI)
	assert.Equal(t, ConfidenceLow, got.Confidence)
	assert.Equal(t, 100, got.WeightedUncertaintyPct)
	assert.False(t, got.ISOCompliant)
	require.Len(t, got.Flags, 1)
	assert.Equal(t, FlagNoData, got.Flags[0].Code)
	assert.Equal(t, SeverityCritical, got.Flags[0].Severity)
	assert.Equal(t, []string{"No materials added"}, got.ComplianceGaps)
}

// Three-material scenario with hand-computed weighted results (weights 10/17,
// 5/17, 2/17 of the absolute impact total).
func TestAssessAggregateDataQualityEndToEnd(t *testing.T) {
	records := []MaterialImpactRecord{
		{
			Name:           "Oat flour",
			Impacts:        ImpactValues{ClimateChange: 10},
			DataSourceTier: TierPrimaryVerified,
			QualityGrade:   GradeHigh,
			DataYear:       intPtr(2023),
			DataRegion:     "GB",
		},
		{
			Name:           "Cane sugar",
			Impacts:        ImpactValues{ClimateChange: 5},
			DataSourceTier: TierSecondaryModelled,
			QualityGrade:   GradeMedium,
			DataYear:       intPtr(2015),
			DataRegion:     "GLO",
		},
		{
			Name:           "Flavouring",
			Impacts:        ImpactValues{ClimateChange: 2},
			DataSourceTier: TierSecondaryEstimated,
			QualityGrade:   GradeLow,
			DataYear:       nil,
			DataRegion:     "CN",
		},
	}

	got := AssessAggregateDataQuality(records, "GB", 2024)
	require.Len(t, got.Materials, 3)

	// Per-material spot checks.
	assert.Equal(t, 85, got.Materials[0].DQI)
	assert.Equal(t, 3, got.Materials[1].Temporal.Score, "9-year gap scores 3")
	assert.Contains(t, flagCodes(got.Materials[1].Flags), FlagDataStale)
	assert.Equal(t, 5, got.Materials[2].Temporal.Score, "unknown year scores worst")
	assert.Contains(t, flagCodes(got.Materials[2].Flags), FlagGeoMismatch)
	assert.Contains(t, flagCodes(got.Materials[2].Flags), FlagLowQuality)

	// Weighted DQI: (85*10 + 50*5 + 20*2) / 17 = 67.06 -> 67.
	assert.Equal(t, 67, got.OverallDQI)

	// Weighted RSS uncertainty: sqrt((10/17)^2*0.0113 + (5/17)^2*0.0227 +
	// (2/17)^2*0.1006) = 0.0852 -> 9%.
	assert.Equal(t, 9, got.WeightedUncertaintyPct)

	// Provenance: 59% primary, 29% modelled, 12% estimated.
	assert.Equal(t, TierShare{Count: 1, ImpactSharePct: 59}, got.TierBreakdown[TierPrimaryVerified])
	assert.Equal(t, TierShare{Count: 1, ImpactSharePct: 29}, got.TierBreakdown[TierSecondaryModelled])
	assert.Equal(t, TierShare{Count: 1, ImpactSharePct: 12}, got.TierBreakdown[TierSecondaryEstimated])

	// Impact-weighted pedigree means, one decimal.
	assert.Equal(t, PedigreeAverages{
		Reliability:   2.5,
		Completeness:  2.5,
		Temporal:      2.1,
		Geographical:  1.9,
		Technological: 2.5,
	}, got.WeightedPedigree)

	// Temporal coverage over the two known years.
	require.NotNil(t, got.Temporal.OldestYear)
	require.NotNil(t, got.Temporal.NewestYear)
	assert.Equal(t, 2015, *got.Temporal.OldestYear)
	assert.Equal(t, 2023, *got.Temporal.NewestYear)
	assert.Equal(t, 5, got.Temporal.AverageAge)
	assert.Equal(t, 2, got.Temporal.StaleCount)
	assert.Equal(t, 41, got.Temporal.StaleImpactPct)

	// 41% stale share raises the warning and its compliance gap; 12% low-grade
	// share stays under the 30% threshold.
	assert.Equal(t, []string{FlagStaleData, FlagGeoMismatch}, flagCodes(got.Flags))
	require.Len(t, got.ComplianceGaps, 1)
	assert.Contains(t, got.ComplianceGaps[0], "4.2.3.6")

	assert.Equal(t, ConfidenceMedium, got.Confidence)
	assert.False(t, got.ISOCompliant)
}

func TestAssessAggregateDataQualityStaleShareBoundary(t *testing.T) {
	// Exactly 20% stale impact share must not raise the STALE_DATA warning.
	records := []MaterialImpactRecord{
		{
			Name:           "Fresh component",
			Impacts:        ImpactValues{ClimateChange: 8},
			DataSourceTier: TierPrimaryVerified,
			QualityGrade:   GradeMedium,
			DataYear:       intPtr(2023),
			DataRegion:     "GB",
		},
		{
			Name:           "Older component",
			Impacts:        ImpactValues{ClimateChange: 2},
			DataSourceTier: TierPrimaryVerified,
			QualityGrade:   GradeMedium,
			DataYear:       intPtr(2017), // 7-year gap: stale
			DataRegion:     "GB",
		},
	}

	got := AssessAggregateDataQuality(records, "GB", 2024)

	assert.Equal(t, 20, got.Temporal.StaleImpactPct)
	assert.NotContains(t, flagCodes(got.Flags), FlagStaleData)
	assert.True(t, got.ISOCompliant)
	assert.Empty(t, got.ComplianceGaps)
}

func TestAssessAggregateDataQualityConfidenceHigh(t *testing.T) {
	records := []MaterialImpactRecord{
		{
			Name:           "Measured input",
			Impacts:        ImpactValues{ClimateChange: 10},
			DataSourceTier: TierPrimaryVerified,
			QualityGrade:   GradeHigh,
			Pedigree: &PedigreeOverride{
				Reliability:   intPtr(1),
				Completeness:  intPtr(1),
				Technological: intPtr(1),
			},
			DataYear:   intPtr(2024),
			DataRegion: "GB",
		},
	}

	got := AssessAggregateDataQuality(records, "GB", 2024)

	// All-ones pedigree: DQI 100, uncertainty is sigma_b only (10%).
	assert.Equal(t, 100, got.OverallDQI)
	assert.Equal(t, 10, got.WeightedUncertaintyPct)
	assert.Equal(t, ConfidenceHigh, got.Confidence)
	assert.True(t, got.ISOCompliant)
}
