package assessment

import (
	"fmt"
	"math"
)

// Flag codes emitted by the assessors.
const (
	FlagNoData          = "NO_DATA"
	FlagDataStale       = "DATA_STALE"
	FlagDataVeryStale   = "DATA_VERY_STALE"
	FlagGeoMismatch     = "GEO_MISMATCH"
	FlagLowQuality      = "LOW_QUALITY"
	FlagHighUncertainty = "HIGH_UNCERTAINTY"
	FlagStaleData       = "STALE_DATA"
	FlagLowQualityData  = "LOW_QUALITY_DATA"
	FlagLowPrimaryData  = "LOW_PRIMARY_DATA"
)

const materialFlowType = "material_inputs"

// AssessMaterialDataQuality builds the per-material quality record. The final
// pedigree matrix takes explicitly supplied dimensions first; otherwise
// reliability, completeness and technological come from the grade defaults and
// temporal/geographical from the classifier. Total function, always succeeds.
func AssessMaterialDataQuality(rec MaterialImpactRecord, studyRegion string, referenceYear int) MaterialDataQuality {
	dataRegion := rec.DataRegion
	if dataRegion == "" {
		dataRegion = GlobalRegion
	}
	if studyRegion == "" {
		studyRegion = GlobalRegion
	}

	temporal := TemporalScore(rec.DataYear, referenceYear)
	geographic := GeographicalScore(dataRegion, studyRegion)

	gradeScore := gradeDefaultScore(rec.QualityGrade)
	matrix := PedigreeMatrix{
		Reliability:   gradeScore,
		Completeness:  gradeScore,
		Temporal:      temporal.Score,
		Geographical:  geographic.Score,
		Technological: gradeScore,
	}
	if p := rec.Pedigree; p != nil {
		if p.Reliability != nil {
			matrix.Reliability = *p.Reliability
		}
		if p.Completeness != nil {
			matrix.Completeness = *p.Completeness
		}
		if p.Temporal != nil {
			matrix.Temporal = *p.Temporal
		}
		if p.Geographical != nil {
			matrix.Geographical = *p.Geographical
		}
		if p.Technological != nil {
			matrix.Technological = *p.Technological
		}
	}
	matrix = matrix.Clamped()

	var explicitPct float64
	if rec.UncertaintyPercent != nil {
		explicitPct = *rec.UncertaintyPercent
	}
	uncertainty := CalculateUncertainty(matrix, materialFlowType, explicitPct)

	var flags []QualityFlag
	if temporal.IsVeryStale {
		flags = append(flags, QualityFlag{
			Code:     FlagDataVeryStale,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Data for %s is more than 6 years older than the reference year, or its age is unknown", rec.Name),
		})
	} else if temporal.IsStale {
		flags = append(flags, QualityFlag{
			Code:     FlagDataStale,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Data for %s is more than 3 years older than the reference year", rec.Name),
		})
	}
	if geographic.Score >= 4 {
		flags = append(flags, QualityFlag{
			Code:     FlagGeoMismatch,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Data for %s comes from a distinctly different region (%s vs study region %s)", rec.Name, dataRegion, studyRegion),
		})
	}
	if rec.QualityGrade == GradeLow {
		flags = append(flags, QualityFlag{
			Code:     FlagLowQuality,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s uses low-grade source data", rec.Name),
		})
	}
	if uncertainty.TotalGSD > 0.5 {
		flags = append(flags, QualityFlag{
			Code:     FlagHighUncertainty,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%s carries high uncertainty (geometric standard deviation %.2f)", rec.Name, uncertainty.TotalGSD),
		})
	}

	return MaterialDataQuality{
		MaterialID:     rec.ID,
		MaterialName:   rec.Name,
		Impact:         rec.ClimateContribution(),
		DataSourceTier: rec.DataSourceTier,
		QualityGrade:   rec.QualityGrade,
		Pedigree:       matrix,
		DQI:            PedigreeDQI(matrix),
		Uncertainty:    uncertainty,
		DataYear:       rec.DataYear,
		Temporal:       temporal,
		Geographic:     geographic,
		Flags:          flags,
	}
}

// AssessAggregateDataQuality combines per-material quality records into the
// product-level verdict. All impact weights use absolute values so a negative
// end-of-life credit cannot cancel its own weight. An empty material list
// yields the deliberate NO_DATA terminal result rather than an error.
func AssessAggregateDataQuality(records []MaterialImpactRecord, studyRegion string, referenceYear int) AggregateDataQuality {
	if len(records) == 0 {
		return AggregateDataQuality{
			OverallDQI:             0,
			Confidence:             ConfidenceLow,
			WeightedUncertaintyPct: 100,
			TierBreakdown:          map[DataSourceTier]TierShare{},
			Flags: []QualityFlag{{
				Code:     FlagNoData,
				Severity: SeverityCritical,
				Message:  "No material data available for assessment",
			}},
			ISOCompliant:   false,
			ComplianceGaps: []string{"No materials added"},
		}
	}

	materials := make([]MaterialDataQuality, 0, len(records))
	var totalImpact float64
	for _, rec := range records {
		mq := AssessMaterialDataQuality(rec, studyRegion, referenceYear)
		materials = append(materials, mq)
		totalImpact += math.Abs(mq.Impact)
	}

	weight := func(m MaterialDataQuality) float64 {
		if totalImpact == 0 {
			return 0
		}
		return math.Abs(m.Impact) / totalImpact
	}

	// Impact-weighted DQI and pedigree means.
	var weightedDQI float64
	var ped struct{ rel, comp, temp, geo, tech float64 }
	tiers := map[DataSourceTier]*struct {
		count  int
		impact float64
	}{}
	var staleCount int
	var staleImpact, lowQualityImpact float64
	geoMismatch := false

	for _, m := range materials {
		w := weight(m)
		weightedDQI += float64(m.DQI) * w
		ped.rel += float64(m.Pedigree.Reliability) * w
		ped.comp += float64(m.Pedigree.Completeness) * w
		ped.temp += float64(m.Pedigree.Temporal) * w
		ped.geo += float64(m.Pedigree.Geographical) * w
		ped.tech += float64(m.Pedigree.Technological) * w

		entry, ok := tiers[m.DataSourceTier]
		if !ok {
			entry = &struct {
				count  int
				impact float64
			}{}
			tiers[m.DataSourceTier] = entry
		}
		entry.count++
		entry.impact += math.Abs(m.Impact)

		if m.Temporal.IsStale {
			staleCount++
			staleImpact += math.Abs(m.Impact)
		}
		if m.QualityGrade == GradeLow {
			lowQualityImpact += math.Abs(m.Impact)
		}
		if m.Geographic.Score >= 4 {
			geoMismatch = true
		}
	}

	sharePct := func(impact float64) int {
		if totalImpact == 0 {
			return 0
		}
		return int(math.Round(impact / totalImpact * 100))
	}

	tierBreakdown := make(map[DataSourceTier]TierShare, len(tiers))
	for tier, entry := range tiers {
		tierBreakdown[tier] = TierShare{Count: entry.count, ImpactSharePct: sharePct(entry.impact)}
	}

	overallDQI := int(math.Round(weightedDQI))
	weightedUncertainty := PropagateUncertainty(materials, totalImpact)
	staleShare := sharePct(staleImpact)
	lowQualityShare := sharePct(lowQualityImpact)
	primaryShare := 0
	if t, ok := tierBreakdown[TierPrimaryVerified]; ok {
		primaryShare = t.ImpactSharePct
	}

	// Temporal coverage over materials with a known data year.
	coverage := TemporalCoverage{StaleCount: staleCount, StaleImpactPct: staleShare}
	var ageSum, knownYears int
	for _, m := range materials {
		if m.DataYear == nil {
			continue
		}
		year := *m.DataYear
		if coverage.OldestYear == nil || year < *coverage.OldestYear {
			y := year
			coverage.OldestYear = &y
		}
		if coverage.NewestYear == nil || year > *coverage.NewestYear {
			y := year
			coverage.NewestYear = &y
		}
		age := referenceYear - year
		if age < 0 {
			age = -age
		}
		ageSum += age
		knownYears++
	}
	if knownYears > 0 {
		coverage.AverageAge = int(math.Round(float64(ageSum) / float64(knownYears)))
	}

	// Threshold checks are strict inequalities on the rounded shares: exactly
	// 20% stale share does not trigger the warning.
	var flags []QualityFlag
	var gaps []string
	if staleShare > 20 {
		flags = append(flags, QualityFlag{
			Code:     FlagStaleData,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d%% of the impact total relies on stale data (older than 3 years)", staleShare),
		})
		gaps = append(gaps, "Temporal representativeness below ISO 14044 §4.2.3.6 expectations: more than 20% of impact relies on stale data")
	}
	if lowQualityShare > 30 {
		flags = append(flags, QualityFlag{
			Code:     FlagLowQualityData,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("%d%% of the impact total relies on low-grade source data", lowQualityShare),
		})
		gaps = append(gaps, "Data quality requirements of ISO 14044 §4.2.3.6 not met: more than 30% of impact relies on low-grade data")
	}
	if geoMismatch {
		flags = append(flags, QualityFlag{
			Code:     FlagGeoMismatch,
			Severity: SeverityInfo,
			Message:  "One or more materials use data from a distinctly different region",
		})
	}
	if weightedUncertainty > 40 {
		flags = append(flags, QualityFlag{
			Code:     FlagHighUncertainty,
			Severity: SeverityWarning,
			Message:  fmt.Sprintf("Propagated uncertainty of %d%% exceeds the 40%% reporting threshold", weightedUncertainty),
		})
		gaps = append(gaps, "Uncertainty analysis per ISO 14044 §4.5.3.3 indicates results are not sufficiently robust for comparative assertions")
	}
	if primaryShare < 20 {
		flags = append(flags, QualityFlag{
			Code:     FlagLowPrimaryData,
			Severity: SeverityInfo,
			Message:  fmt.Sprintf("Only %d%% of the impact total is backed by primary verified data", primaryShare),
		})
	}

	// Confidence tiers are evaluated in order, HIGH first.
	confidence := ConfidenceLow
	switch {
	case overallDQI >= 80 && weightedUncertainty <= 30 && primaryShare >= 50:
		confidence = ConfidenceHigh
	case overallDQI >= 60 && weightedUncertainty <= 50:
		confidence = ConfidenceMedium
	}

	round1 := func(v float64) float64 { return math.Round(v*10) / 10 }

	return AggregateDataQuality{
		OverallDQI:             overallDQI,
		Confidence:             confidence,
		WeightedUncertaintyPct: weightedUncertainty,
		TierBreakdown:          tierBreakdown,
		WeightedPedigree: PedigreeAverages{
			Reliability:   round1(ped.rel),
			Completeness:  round1(ped.comp),
			Temporal:      round1(ped.temp),
			Geographical:  round1(ped.geo),
			Technological: round1(ped.tech),
		},
		Temporal:       coverage,
		Flags:          flags,
		ISOCompliant:   len(gaps) == 0 && overallDQI >= 60,
		ComplianceGaps: gaps,
		Materials:      materials,
	}
}
