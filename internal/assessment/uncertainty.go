package assessment

import "math"

// UncertaintyFactors expresses a material's uncertainty as a lognormal
// geometric standard deviation with a symmetric-in-log-space 95% interval.
type UncertaintyFactors struct {
	BasicUncertainty    float64 `json:"basic_uncertainty"`    // sigma_b
	PedigreeUncertainty float64 `json:"pedigree_uncertainty"` // sigma_p
	TotalGSD            float64 `json:"total_gsd"`            // sigma_g = sqrt(sigma_b^2 + sigma_p^2)
	CI95Lower           float64 `json:"ci95_lower"`           // multiplier exp(-1.96 * sigma_g)
	CI95Upper           float64 `json:"ci95_upper"`           // multiplier exp(+1.96 * sigma_g)
}

const z95 = 1.96

// CalculateUncertainty derives uncertainty factors from a pedigree matrix and
// flow type. An explicit uncertainty percentage > 0 overrides the pedigree
// path entirely. Unknown flow types fall back to the "default" entry.
func CalculateUncertainty(m PedigreeMatrix, flowType string, explicitPct float64) UncertaintyFactors {
	if explicitPct > 0 {
		gsd := explicitPct / 100
		return UncertaintyFactors{
			BasicUncertainty:    gsd,
			PedigreeUncertainty: 0,
			TotalGSD:            gsd,
			CI95Lower:           math.Exp(-z95 * gsd),
			CI95Upper:           math.Exp(z95 * gsd),
		}
	}

	basic, ok := basicUncertaintyByFlow[flowType]
	if !ok {
		basic = basicUncertaintyByFlow["default"]
	}

	pedigreeVar := PedigreeVariance(m)
	gsd := math.Sqrt(basic*basic + pedigreeVar)

	return UncertaintyFactors{
		BasicUncertainty:    basic,
		PedigreeUncertainty: math.Sqrt(pedigreeVar),
		TotalGSD:            gsd,
		CI95Lower:           math.Exp(-z95 * gsd),
		CI95Upper:           math.Exp(z95 * gsd),
	}
}

// PropagateUncertainty combines per-material uncertainties into a whole-product
// uncertainty percentage via impact-weighted root sum of squares. Material
// uncertainties are assumed independent, a stated simplification of the
// method. Weights use absolute impacts so a negative end-of-life credit
// cannot cancel its own contribution. Returns 0 when totalImpact is 0.
func PropagateUncertainty(materials []MaterialDataQuality, totalImpact float64) int {
	if totalImpact == 0 {
		return 0
	}

	var sum float64
	for _, m := range materials {
		w := math.Abs(m.Impact) / totalImpact
		sum += w * w * m.Uncertainty.TotalGSD * m.Uncertainty.TotalGSD
	}

	return int(math.Round(100 * math.Sqrt(sum)))
}
