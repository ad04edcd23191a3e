// Package marketdata resolves prices and ESG ratings through an ordered
// chain of sources: live provider, curated table, synthetic generation.
// Resolution never fails outward; callers distinguish data quality by the
// provenance label on each record.
package marketdata

// Provenance labels, in fallback order.
const (
	SourceAlphaVantage = "Alpha Vantage"
	SourceFMP          = "Financial Modeling Prep"
	SourceCurated      = "Demo Data"
	SourceGenerated    = "Generated Demo Data"
)

// Tier names used for metrics labels.
const (
	TierLive      = "live"
	TierCurated   = "curated"
	TierGenerated = "generated"
)

// Quote is a resolved price for a symbol.
type Quote struct {
	Symbol string  `json:"symbol"`
	Price  float64 `json:"price"`
	Source string  `json:"source"`
}

// ESGRecord is a resolved sustainability rating for a symbol.
// Sub-scores and the composite are integers in 0..100; the composite is the
// rounded arithmetic mean of the three sub-scores.
type ESGRecord struct {
	Symbol             string `json:"symbol"`
	ESGScore           int    `json:"esgScore"`
	EnvironmentalScore int    `json:"environmentalScore"`
	SocialScore        int    `json:"socialScore"`
	GovernanceScore    int    `json:"governanceScore"`
	ESGRating          string `json:"esgRating"`
	Source             string `json:"source"`
}
