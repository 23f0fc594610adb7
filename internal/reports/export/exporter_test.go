package export

import (
	"bytes"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/xuri/excelize/v2"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

func sampleResult() *assessment.Result {
	oldest, newest := 2020, 2023
	return &assessment.Result{
		ProductID:     uuid.New(),
		ProductName:   "Sparkling Water 1L",
		ReferenceYear: 2025,
		Impacts: assessment.AggregatedImpacts{
			Totals:             assessment.ImpactValues{ClimateChange: 1.2, WaterConsumption: 0.003},
			TotalClimateImpact: 1.2,
			Scopes:             assessment.ScopeTotals{Scope1: 0.1, Scope2: 0.2, Scope3: 0.9},
			MaterialBreakdown: []assessment.MaterialContribution{
				{MaterialID: uuid.New(), Name: "Glass bottle", Impact: 0.9, Percentage: 75},
			},
			FacilityBreakdown: []assessment.FacilityContribution{
				{FacilityID: uuid.New(), Name: "Plant A", AllocatedEmissions: 0.3, Percentage: 25},
			},
		},
		Quality: assessment.AggregateDataQuality{
			OverallDQI:             72,
			Confidence:             assessment.ConfidenceMedium,
			WeightedUncertaintyPct: 18,
			TierBreakdown: map[assessment.DataSourceTier]assessment.TierShare{
				assessment.TierPrimaryVerified:   {Count: 1, ImpactSharePct: 75},
				assessment.TierSecondaryModelled: {Count: 1, ImpactSharePct: 25},
			},
			WeightedPedigree: assessment.PedigreeAverages{
				Reliability: 2.1, Completeness: 2.3, Temporal: 1.8, Geographical: 1.5, Technological: 2.4,
			},
			Temporal: assessment.TemporalCoverage{
				OldestYear: &oldest, NewestYear: &newest, AverageAge: 3, StaleCount: 1, StaleImpactPct: 25,
			},
			Flags: []assessment.QualityFlag{
				{Code: "STALE_DATA", Severity: assessment.SeverityWarning, Message: "25% of the impact total relies on stale data"},
			},
			ComplianceGaps: []string{"Temporal representativeness below expectations"},
		},
	}
}

func TestImpactsWorkbookContainsAllSheets(t *testing.T) {
	service := NewService()
	data, err := service.ImpactsWorkbook(sampleResult())

	assert.NoError(t, err)
	assert.NotEmpty(t, data)

	file, err := excelize.OpenReader(bytes.NewReader(data))
	assert.NoError(t, err)
	defer file.Close()

	sheets := file.GetSheetList()
	assert.Contains(t, sheets, "Impact Categories")
	assert.Contains(t, sheets, "Scopes & Stages")
	assert.Contains(t, sheets, "Contributions")

	label, err := file.GetCellValue("Impact Categories", "A2")
	assert.NoError(t, err)
	assert.Equal(t, "Climate change", label)

	name, err := file.GetCellValue("Contributions", "B2")
	assert.NoError(t, err)
	assert.Equal(t, "Glass bottle", name)
}

func TestStatementPDFRendersDocument(t *testing.T) {
	service := NewService()
	data, err := service.StatementPDF(sampleResult())

	assert.NoError(t, err)
	assert.NotEmpty(t, data)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}
