package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

// categoryRow pairs an impact category label with its value and unit for
// worksheet output. Row order matches the ReCiPe 2016 midpoint convention.
type categoryRow struct {
	Label string
	Value float64
	Unit  string
}

func categoryRows(v assessment.ImpactValues) []categoryRow {
	return []categoryRow{
		{"Climate change", v.ClimateChange, "kg CO2-eq"},
		{"Ozone depletion", v.OzoneDepletion, "kg CFC11-eq"},
		{"Ionising radiation", v.IonisingRadiation, "kBq Co60-eq"},
		{"Photochemical ozone creation", v.PhotochemicalOzoneCreation, "kg NOx-eq"},
		{"Particulate matter", v.ParticulateMatter, "kg PM2.5-eq"},
		{"Human toxicity (cancer)", v.HumanToxicityCancer, "CTUh"},
		{"Human toxicity (non-cancer)", v.HumanToxicityNonCancer, "CTUh"},
		{"Terrestrial acidification", v.TerrestrialAcidification, "kg SO2-eq"},
		{"Freshwater eutrophication", v.FreshwaterEutrophication, "kg P-eq"},
		{"Marine eutrophication", v.MarineEutrophication, "kg N-eq"},
		{"Terrestrial ecotoxicity", v.TerrestrialEcotoxicity, "CTUe"},
		{"Freshwater ecotoxicity", v.FreshwaterEcotoxicity, "CTUe"},
		{"Marine ecotoxicity", v.MarineEcotoxicity, "CTUe"},
		{"Land use", v.LandUse, "m2a crop-eq"},
		{"Water consumption", v.WaterConsumption, "m3"},
		{"Mineral resource scarcity", v.MineralResourceScarcity, "kg Cu-eq"},
		{"Fossil resource scarcity", v.FossilResourceScarcity, "kg oil-eq"},
		{"Biodiversity", v.Biodiversity, "species.yr"},
	}
}

// writeImpactsWorkbook builds the Excel workbook for an assessment result.
func writeImpactsWorkbook(result *assessment.Result) (*excelize.File, error) {
	file := excelize.NewFile()

	headerStyle, err := file.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"2E7D32"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	writeHeader := func(sheet string, columns []string) {
		for i, col := range columns {
			cell, _ := excelize.CoordinatesToCellName(i+1, 1)
			file.SetCellValue(sheet, cell, col)
			file.SetCellStyle(sheet, cell, cell, headerStyle)
		}
	}

	// Impact categories sheet.
	const categoriesSheet = "Impact Categories"
	file.SetSheetName("Sheet1", categoriesSheet)
	writeHeader(categoriesSheet, []string{"Category", "Value", "Unit"})
	for i, row := range categoryRows(result.Impacts.Totals) {
		file.SetCellValue(categoriesSheet, fmt.Sprintf("A%d", i+2), row.Label)
		file.SetCellValue(categoriesSheet, fmt.Sprintf("B%d", i+2), row.Value)
		file.SetCellValue(categoriesSheet, fmt.Sprintf("C%d", i+2), row.Unit)
	}

	// Scopes, categories, stages and GHG decomposition.
	const scopesSheet = "Scopes & Stages"
	if _, err := file.NewSheet(scopesSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	writeHeader(scopesSheet, []string{"Breakdown", "Segment", "kg CO2-eq"})
	scopeRows := [][]interface{}{
		{"Scope", "Scope 1", result.Impacts.Scopes.Scope1},
		{"Scope", "Scope 2", result.Impacts.Scopes.Scope2},
		{"Scope", "Scope 3", result.Impacts.Scopes.Scope3},
		{"Category", "Materials", result.Impacts.Categories.Materials},
		{"Category", "Packaging", result.Impacts.Categories.Packaging},
		{"Category", "Production", result.Impacts.Categories.Production},
		{"Category", "Transport", result.Impacts.Categories.Transport},
		{"Category", "End of life", result.Impacts.Categories.EndOfLife},
		{"Lifecycle stage", "Raw materials", result.Impacts.LifecycleStages.RawMaterials},
		{"Lifecycle stage", "Production", result.Impacts.LifecycleStages.Production},
		{"Lifecycle stage", "Distribution", result.Impacts.LifecycleStages.Distribution},
		{"Lifecycle stage", "Use", result.Impacts.LifecycleStages.Use},
		{"Lifecycle stage", "End of life", result.Impacts.LifecycleStages.EndOfLife},
		{"GHG", "Fossil CO2", result.Impacts.GHG.FossilCO2},
		{"GHG", "Biogenic CO2", result.Impacts.GHG.BiogenicCO2},
		{"GHG", "Land-use change CO2", result.Impacts.GHG.LandUseChangeCO2},
		{"GHG", "Methane", result.Impacts.GHG.Methane},
		{"GHG", "Nitrous oxide", result.Impacts.GHG.NitrousOxide},
	}
	for i, row := range scopeRows {
		for j, val := range row {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			file.SetCellValue(scopesSheet, cell, val)
		}
	}

	// Ranked contributions sheet.
	const contributionsSheet = "Contributions"
	if _, err := file.NewSheet(contributionsSheet); err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	writeHeader(contributionsSheet, []string{"Type", "Name", "kg CO2-eq", "Share %"})
	rowIdx := 2
	for _, entry := range result.Impacts.MaterialBreakdown {
		file.SetCellValue(contributionsSheet, fmt.Sprintf("A%d", rowIdx), "Material")
		file.SetCellValue(contributionsSheet, fmt.Sprintf("B%d", rowIdx), entry.Name)
		file.SetCellValue(contributionsSheet, fmt.Sprintf("C%d", rowIdx), entry.Impact)
		file.SetCellValue(contributionsSheet, fmt.Sprintf("D%d", rowIdx), entry.Percentage)
		rowIdx++
	}
	for _, entry := range result.Impacts.FacilityBreakdown {
		file.SetCellValue(contributionsSheet, fmt.Sprintf("A%d", rowIdx), "Facility")
		file.SetCellValue(contributionsSheet, fmt.Sprintf("B%d", rowIdx), entry.Name)
		file.SetCellValue(contributionsSheet, fmt.Sprintf("C%d", rowIdx), entry.AllocatedEmissions)
		file.SetCellValue(contributionsSheet, fmt.Sprintf("D%d", rowIdx), entry.Percentage)
		rowIdx++
	}

	return file, nil
}

// ImpactsWorkbook renders an assessment result to xlsx bytes.
func (s *Service) ImpactsWorkbook(result *assessment.Result) ([]byte, error) {
	file, err := writeImpactsWorkbook(result)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
