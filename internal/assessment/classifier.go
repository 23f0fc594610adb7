package assessment

import "strings"

// TemporalResult is the derived temporal pedigree dimension.
type TemporalResult struct {
	Score       int  `json:"score"`
	IsStale     bool `json:"is_stale"`
	IsVeryStale bool `json:"is_very_stale"`
}

// GeographicalResult is the derived geographical pedigree dimension.
type GeographicalResult struct {
	Score           int  `json:"score"`
	IsExactMatch    bool `json:"is_exact_match"`
	IsRegionalMatch bool `json:"is_regional_match"`
}

// GlobalRegion is the ecoinvent-style token for a global average dataset.
const GlobalRegion = "GLO"

// euCountries are EU/EEA members plus GB, matched against ISO 3166-1 alpha-2
// codes. GB is kept for legacy UK datasets modelled as European averages.
var euCountries = map[string]bool{
	"AT": true, "BE": true, "BG": true, "HR": true, "CY": true, "CZ": true,
	"DK": true, "EE": true, "FI": true, "FR": true, "DE": true, "GR": true,
	"HU": true, "IE": true, "IT": true, "LV": true, "LT": true, "LU": true,
	"MT": true, "NL": true, "PL": true, "PT": true, "RO": true, "SK": true,
	"SI": true, "ES": true, "SE": true, "NO": true, "CH": true, "GB": true,
}

var northAmericaCountries = map[string]bool{
	"US": true, "CA": true, "MX": true,
}

var southEastAsiaCountries = map[string]bool{
	"BN": true, "KH": true, "ID": true, "LA": true, "MY": true,
	"MM": true, "PH": true, "SG": true, "TH": true, "VN": true,
}

// TemporalScore derives the temporal pedigree dimension from the data year.
// A nil data year scores worst. The cut-points are exact: a 3-year gap still
// scores 2 (not stale), a 6-year gap falls to score 3 (stale).
func TemporalScore(dataYear *int, referenceYear int) TemporalResult {
	if dataYear == nil {
		return TemporalResult{Score: 5, IsStale: true, IsVeryStale: true}
	}

	diff := referenceYear - *dataYear
	if diff < 0 {
		diff = -diff
	}

	var score int
	switch {
	case diff < 3:
		score = 1
	case diff < 6:
		score = 2
	case diff < 10:
		score = 3
	case diff < 15:
		score = 4
	default:
		score = 5
	}

	return TemporalResult{
		Score:       score,
		IsStale:     score >= 3,
		IsVeryStale: score >= 4,
	}
}

// GeographicalScore derives the geographical pedigree dimension from the
// dataset region versus the study region. The EU special case is checked
// before the generic same-region check: two different EU countries score 2,
// not 3. A GLO dataset scores 3 without counting as a regional match.
func GeographicalScore(dataRegion, studyRegion string) GeographicalResult {
	data := strings.ToUpper(strings.TrimSpace(dataRegion))
	study := strings.ToUpper(strings.TrimSpace(studyRegion))

	if data == study {
		return GeographicalResult{Score: 1, IsExactMatch: true, IsRegionalMatch: true}
	}

	euToken := (data == "EU" && euCountries[study]) || (study == "EU" && euCountries[data])
	if euToken || (euCountries[data] && euCountries[study]) {
		return GeographicalResult{Score: 2, IsRegionalMatch: true}
	}

	if (northAmericaCountries[data] && northAmericaCountries[study]) ||
		(southEastAsiaCountries[data] && southEastAsiaCountries[study]) {
		return GeographicalResult{Score: 3, IsRegionalMatch: true}
	}

	if data == GlobalRegion || study == GlobalRegion {
		return GeographicalResult{Score: 3}
	}

	return GeographicalResult{Score: 4}
}
