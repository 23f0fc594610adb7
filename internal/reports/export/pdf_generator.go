package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"green-ledger/esg-platform/esg-platform-backend/internal/assessment"
)

// Service renders assessment results into downloadable documents.
type Service struct{}

// NewService creates a new export service
func NewService() *Service {
	return &Service{}
}

// statementPDF wraps gofpdf with the layout helpers the data-quality
// statement needs.
type statementPDF struct {
	pdf *gofpdf.Fpdf
}

const (
	statementFont     = "Arial"
	statementFontSize = 10
	headerGreenR      = 46
	headerGreenG      = 125
	headerGreenB      = 50
)

func newStatementPDF() *statementPDF {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 20, 15)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	return &statementPDF{pdf: pdf}
}

func (p *statementPDF) title(text string) {
	p.pdf.SetFont(statementFont, "B", 16)
	p.pdf.SetTextColor(0, 0, 0)
	p.pdf.CellFormat(0, 10, text, "", 1, "C", false, 0, "")
}

func (p *statementPDF) subtitle(text string) {
	p.pdf.SetFont(statementFont, "", 11)
	p.pdf.SetTextColor(100, 100, 100)
	p.pdf.CellFormat(0, 7, text, "", 1, "C", false, 0, "")
}

func (p *statementPDF) section(text string) {
	p.pdf.Ln(4)
	p.pdf.SetFont(statementFont, "B", 12)
	p.pdf.SetTextColor(headerGreenR, headerGreenG, headerGreenB)
	p.pdf.CellFormat(0, 8, text, "", 1, "L", false, 0, "")
	p.pdf.SetTextColor(0, 0, 0)
}

func (p *statementPDF) keyValue(key, value string) {
	p.pdf.SetFont(statementFont, "B", statementFontSize)
	p.pdf.CellFormat(70, 6, key+":", "", 0, "L", false, 0, "")
	p.pdf.SetFont(statementFont, "", statementFontSize)
	p.pdf.CellFormat(0, 6, value, "", 1, "L", false, 0, "")
}

func (p *statementPDF) line(text string) {
	p.pdf.SetFont(statementFont, "", statementFontSize)
	p.pdf.MultiCell(0, 6, text, "", "L", false)
}

func (p *statementPDF) tableHeader(labels []string, widths []float64) {
	p.pdf.SetFont(statementFont, "B", statementFontSize)
	p.pdf.SetFillColor(headerGreenR, headerGreenG, headerGreenB)
	p.pdf.SetTextColor(255, 255, 255)
	for i, label := range labels {
		p.pdf.CellFormat(widths[i], 7, label, "1", 0, "C", true, 0, "")
	}
	p.pdf.Ln(-1)
	p.pdf.SetTextColor(0, 0, 0)
}

func (p *statementPDF) tableRow(cells []string, widths []float64, shaded bool) {
	p.pdf.SetFont(statementFont, "", statementFontSize)
	if shaded {
		p.pdf.SetFillColor(242, 242, 242)
	} else {
		p.pdf.SetFillColor(255, 255, 255)
	}
	for i, cell := range cells {
		p.pdf.CellFormat(widths[i], 6, cell, "1", 0, "L", true, 0, "")
	}
	p.pdf.Ln(-1)
}

func (p *statementPDF) bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := p.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func tierLabel(tier assessment.DataSourceTier) string {
	switch tier {
	case assessment.TierPrimaryVerified:
		return "Primary verified"
	case assessment.TierSecondaryModelled:
		return "Secondary modelled"
	case assessment.TierSecondaryEstimated:
		return "Secondary estimated"
	default:
		return string(tier)
	}
}

// StatementPDF renders the data-quality statement for an assessment result as
// a PDF document.
func (s *Service) StatementPDF(result *assessment.Result) ([]byte, error) {
	p := newStatementPDF()
	q := result.Quality

	p.title("Data Quality Statement")
	p.subtitle(result.ProductName)
	p.pdf.SetFont(statementFont, "", 9)
	p.pdf.SetTextColor(128, 128, 128)
	p.pdf.CellFormat(0, 6, fmt.Sprintf("Reference year %d  |  Generated %s",
		result.ReferenceYear, time.Now().Format("2006-01-02")), "", 1, "R", false, 0, "")
	p.pdf.SetTextColor(0, 0, 0)

	p.section("Overall Assessment")
	p.keyValue("Data Quality Index", fmt.Sprintf("%d / 100", q.OverallDQI))
	p.keyValue("Confidence", string(q.Confidence))
	p.keyValue("Weighted Uncertainty", fmt.Sprintf("±%d%%", q.WeightedUncertaintyPct))

	p.section("Pedigree Matrix Summary")
	pedigreeWidths := []float64{90, 40}
	p.tableHeader([]string{"Dimension", "Weighted Score"}, pedigreeWidths)
	pedigreeRows := []struct {
		label string
		score float64
	}{
		{"Reliability", q.WeightedPedigree.Reliability},
		{"Completeness", q.WeightedPedigree.Completeness},
		{"Temporal correlation", q.WeightedPedigree.Temporal},
		{"Geographical correlation", q.WeightedPedigree.Geographical},
		{"Technological correlation", q.WeightedPedigree.Technological},
	}
	for i, row := range pedigreeRows {
		p.tableRow([]string{row.label, fmt.Sprintf("%.1f", row.score)}, pedigreeWidths, i%2 == 1)
	}

	p.section("Data Provenance")
	tierWidths := []float64{90, 30, 40}
	p.tableHeader([]string{"Source Tier", "Materials", "Impact Share"}, tierWidths)
	tierOrder := []assessment.DataSourceTier{
		assessment.TierPrimaryVerified,
		assessment.TierSecondaryModelled,
		assessment.TierSecondaryEstimated,
	}
	for i, tier := range tierOrder {
		share := q.TierBreakdown[tier]
		p.tableRow([]string{
			tierLabel(tier),
			fmt.Sprintf("%d", share.Count),
			fmt.Sprintf("%d%%", share.ImpactSharePct),
		}, tierWidths, i%2 == 1)
	}

	p.section("Temporal Coverage")
	if q.Temporal.OldestYear != nil && q.Temporal.NewestYear != nil {
		p.keyValue("Data Years", fmt.Sprintf("%d - %d", *q.Temporal.OldestYear, *q.Temporal.NewestYear))
	} else {
		p.keyValue("Data Years", "not reported")
	}
	p.keyValue("Average Data Age", fmt.Sprintf("%d years", q.Temporal.AverageAge))
	p.keyValue("Stale Data Share", fmt.Sprintf("%d%% of impact (%d materials)",
		q.Temporal.StaleImpactPct, q.Temporal.StaleCount))

	p.section("Quality Flags")
	if len(q.Flags) == 0 {
		p.line("No quality flags raised.")
	}
	for _, flag := range q.Flags {
		p.line(fmt.Sprintf("[%s] %s", flag.Severity, flag.Message))
	}

	p.section("ISO 14044 Compliance")
	if q.ISOCompliant {
		p.line("The assessment meets the ISO 14044 data-quality requirements applied by this platform.")
	} else {
		p.line("The assessment does not yet meet the ISO 14044 data-quality requirements applied by this platform:")
		for _, gap := range q.ComplianceGaps {
			p.line("  - " + gap)
		}
	}

	return p.bytes()
}
