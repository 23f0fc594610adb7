package assessment

import (
	"fmt"
	"strings"
)

// FormatDataQualityStatement renders the aggregate quality verdict as a
// deterministic Markdown document for the report renderer. Pure formatting
// over the aggregate object; identical inputs produce identical output.
func FormatDataQualityStatement(q AggregateDataQuality, productName string, referenceYear int) string {
	var b strings.Builder

	b.WriteString("# Data Quality Statement\n\n")
	fmt.Fprintf(&b, "Product: %s\n\n", productName)
	fmt.Fprintf(&b, "Reference year: %d\n\n", referenceYear)

	b.WriteString("## Overall Assessment\n\n")
	fmt.Fprintf(&b, "- Data Quality Index (DQI): %d/100\n", q.OverallDQI)
	fmt.Fprintf(&b, "- Confidence: %s\n", q.Confidence)
	fmt.Fprintf(&b, "- Propagated uncertainty: ±%d%% (95%% confidence interval, lognormal)\n", q.WeightedUncertaintyPct)
	fmt.Fprintf(&b, "- Materials assessed: %d\n\n", len(q.Materials))

	b.WriteString("## Pedigree Matrix Summary\n\n")
	b.WriteString("Impact-weighted average scores (1 = best, 5 = worst):\n\n")
	b.WriteString("| Dimension | Score |\n")
	b.WriteString("|-----------|-------|\n")
	fmt.Fprintf(&b, "| Reliability | %.1f |\n", q.WeightedPedigree.Reliability)
	fmt.Fprintf(&b, "| Completeness | %.1f |\n", q.WeightedPedigree.Completeness)
	fmt.Fprintf(&b, "| Temporal representativeness | %.1f |\n", q.WeightedPedigree.Temporal)
	fmt.Fprintf(&b, "| Geographical representativeness | %.1f |\n", q.WeightedPedigree.Geographical)
	fmt.Fprintf(&b, "| Technological representativeness | %.1f |\n\n", q.WeightedPedigree.Technological)

	b.WriteString("## Data Provenance\n\n")
	for _, tier := range []DataSourceTier{TierPrimaryVerified, TierSecondaryModelled, TierSecondaryEstimated} {
		share, ok := q.TierBreakdown[tier]
		if !ok {
			continue
		}
		fmt.Fprintf(&b, "- %s: %d material(s), %d%% of impact\n", tierLabel(tier), share.Count, share.ImpactSharePct)
	}
	b.WriteString("\n")

	b.WriteString("## Temporal Coverage\n\n")
	if q.Temporal.OldestYear != nil && q.Temporal.NewestYear != nil {
		fmt.Fprintf(&b, "- Data years: %d–%d\n", *q.Temporal.OldestYear, *q.Temporal.NewestYear)
		fmt.Fprintf(&b, "- Average data age: %d year(s)\n", q.Temporal.AverageAge)
	} else {
		b.WriteString("- Data years: unknown\n")
	}
	fmt.Fprintf(&b, "- Stale materials (>3 years old): %d, covering %d%% of impact\n\n", q.Temporal.StaleCount, q.Temporal.StaleImpactPct)

	b.WriteString("## Quality Flags\n\n")
	if len(q.Flags) == 0 {
		b.WriteString("No quality flags raised.\n\n")
	} else {
		for _, f := range q.Flags {
			fmt.Fprintf(&b, "- [%s] %s: %s\n", strings.ToUpper(string(f.Severity)), f.Code, f.Message)
		}
		b.WriteString("\n")
	}

	b.WriteString("## ISO 14044 Compliance\n\n")
	if q.ISOCompliant {
		b.WriteString("The assessment meets the data quality requirements of ISO 14044.\n")
	} else {
		b.WriteString("The assessment does not yet meet the data quality requirements of ISO 14044:\n\n")
		for _, gap := range q.ComplianceGaps {
			fmt.Fprintf(&b, "- %s\n", gap)
		}
		if len(q.ComplianceGaps) == 0 {
			fmt.Fprintf(&b, "- Overall DQI of %d is below the required minimum of 60\n", q.OverallDQI)
		}
	}

	return b.String()
}

func tierLabel(tier DataSourceTier) string {
	switch tier {
	case TierPrimaryVerified:
		return "Primary verified"
	case TierSecondaryModelled:
		return "Secondary modelled"
	case TierSecondaryEstimated:
		return "Secondary estimated"
	default:
		return string(tier)
	}
}
