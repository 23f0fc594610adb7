package assessment

import "math"

// PedigreeMatrix is the five-dimensional ISO 14044 / Weidema & Wesnaes data
// quality scoring scheme. Each dimension ranges 1 (best) to 5 (worst).
type PedigreeMatrix struct {
	Reliability   int `json:"reliability"`
	Completeness  int `json:"completeness"`
	Temporal      int `json:"temporal"`
	Geographical  int `json:"geographical"`
	Technological int `json:"technological"`
}

// PedigreeCriteria is the descriptive text behind each dimension score,
// surfaced in quality statements and the UI tooltips. Reference data only.
var PedigreeCriteria = map[string][5]string{
	"reliability": {
		"Verified data based on measurements",
		"Verified data partly based on assumptions, or non-verified measured data",
		"Non-verified data partly based on qualified estimates",
		"Qualified estimate (e.g. by industrial expert)",
		"Non-qualified estimate",
	},
	"completeness": {
		"Representative data from all sites, over an adequate period",
		"Representative data from >50% of sites, over an adequate period",
		"Representative data from only some sites, or >50% over a shorter period",
		"Representative data from only one site, or some sites over a shorter period",
		"Representativeness unknown, or data from a small number of sites",
	},
	"temporal": {
		"Less than 3 years difference to the reference year",
		"Less than 6 years difference to the reference year",
		"Less than 10 years difference to the reference year",
		"Less than 15 years difference to the reference year",
		"Age of data unknown, or more than 15 years difference",
	},
	"geographical": {
		"Data from the study area",
		"Average data from a larger area in which the study area is included",
		"Data from an area with similar production conditions",
		"Data from an area with slightly similar production conditions",
		"Data from an unknown or distinctly different area",
	},
	"technological": {
		"Data from the enterprises, processes and materials under study",
		"Data from the same processes and materials, but different enterprises",
		"Data from similar processes and materials",
		"Data on related processes or materials",
		"Data on related processes, but different technology",
	},
}

// pedigreeVarianceTable maps each dimension score to its variance contribution
// (sigma^2 of the underlying lognormal), after Frischknecht et al. The values
// are an external scientific convention and must not be recomputed.
var pedigreeVarianceTable = map[string][5]float64{
	"reliability":   {0.0, 0.0006, 0.002, 0.008, 0.04},
	"completeness":  {0.0, 0.0001, 0.0006, 0.002, 0.008},
	"temporal":      {0.0, 0.0002, 0.002, 0.008, 0.04},
	"geographical":  {0.0, 0.000025, 0.0001, 0.0006, 0.002},
	"technological": {0.0, 0.0006, 0.008, 0.04, 0.12},
}

// basicUncertaintyByFlow maps a flow type to its basic measurement uncertainty
// (sigma_b). Unknown flow types fall back to the named "default" entry.
var basicUncertaintyByFlow = map[string]float64{
	"default":         0.15,
	"material_inputs": 0.10,
	"energy":          0.05,
	"transport":       0.12,
	"water":           0.10,
	"waste":           0.20,
}

// clampDimension forces a pedigree score into the valid 1..5 range. Upstream
// records are validated at the API boundary, so clamping here only guards
// against rows written before validation existed.
func clampDimension(score int) int {
	if score < 1 {
		return 1
	}
	if score > 5 {
		return 5
	}
	return score
}

// Clamped returns a copy of the matrix with every dimension in 1..5.
func (m PedigreeMatrix) Clamped() PedigreeMatrix {
	return PedigreeMatrix{
		Reliability:   clampDimension(m.Reliability),
		Completeness:  clampDimension(m.Completeness),
		Temporal:      clampDimension(m.Temporal),
		Geographical:  clampDimension(m.Geographical),
		Technological: clampDimension(m.Technological),
	}
}

// PedigreeDQI maps a pedigree matrix to a 0-100 data quality index. The
// dimension sum ranges 5 (best) to 25 (worst) and maps linearly onto 100..0.
func PedigreeDQI(m PedigreeMatrix) int {
	m = m.Clamped()
	sum := m.Reliability + m.Completeness + m.Temporal + m.Geographical + m.Technological
	return int(math.Round(100 - float64(sum-5)/20*100))
}

// PedigreeVariance sums the per-dimension variance contributions (sigma_p^2).
func PedigreeVariance(m PedigreeMatrix) float64 {
	m = m.Clamped()
	return pedigreeVarianceTable["reliability"][m.Reliability-1] +
		pedigreeVarianceTable["completeness"][m.Completeness-1] +
		pedigreeVarianceTable["temporal"][m.Temporal-1] +
		pedigreeVarianceTable["geographical"][m.Geographical-1] +
		pedigreeVarianceTable["technological"][m.Technological-1]
}

// gradeDefaultScore maps a supplier quality grade to the default pedigree score
// used for reliability, completeness and technological representativeness when
// no explicit score was supplied.
func gradeDefaultScore(grade QualityGrade) int {
	switch grade {
	case GradeHigh:
		return 2
	case GradeLow:
		return 4
	default:
		return 3
	}
}
