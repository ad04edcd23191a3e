package marketdata

// Hand-maintained demo data for common symbols, served when the live
// provider is unavailable. Values are static on purpose: they make offline
// demos reproducible.

var curatedPrices = map[string]float64{
	"TSLA":  248.50,
	"AAPL":  178.20,
	"MSFT":  380.45,
	"GOOGL": 139.80,
	"AMZN":  175.30,
	"NVDA":  495.20,
	"META":  485.90,
	"ENPH":  125.40,
	"SEDG":  45.80,
	"NEE":   72.90,
	"RIVN":  12.50,
	"NIO":   5.80,
}

type curatedESG struct {
	esgScore           int
	environmentalScore int
	socialScore        int
	governanceScore    int
	esgRating          string
}

// Skewed toward sustainability-themed tickers, matching the audience of the
// tracker.
var curatedESGData = map[string]curatedESG{
	"TSLA":  {esgScore: 72, environmentalScore: 85, socialScore: 65, governanceScore: 66, esgRating: "B"},
	"ENPH":  {esgScore: 78, environmentalScore: 92, socialScore: 70, governanceScore: 72, esgRating: "A"},
	"NEE":   {esgScore: 81, environmentalScore: 88, socialScore: 76, governanceScore: 79, esgRating: "A"},
	"MSFT":  {esgScore: 86, environmentalScore: 82, socialScore: 88, governanceScore: 88, esgRating: "A+"},
	"AAPL":  {esgScore: 84, environmentalScore: 80, socialScore: 86, governanceScore: 86, esgRating: "A+"},
	"GOOGL": {esgScore: 82, environmentalScore: 78, socialScore: 84, governanceScore: 84, esgRating: "A"},
	"SEDG":  {esgScore: 75, environmentalScore: 90, socialScore: 68, governanceScore: 67, esgRating: "B+"},
	"RIVN":  {esgScore: 68, environmentalScore: 82, socialScore: 60, governanceScore: 62, esgRating: "B"},
	"NIO":   {esgScore: 66, environmentalScore: 80, socialScore: 58, governanceScore: 60, esgRating: "B-"},
	"ICLN":  {esgScore: 83, environmentalScore: 91, socialScore: 78, governanceScore: 80, esgRating: "A"},
	"ESGU":  {esgScore: 85, environmentalScore: 84, socialScore: 86, governanceScore: 85, esgRating: "A+"},
}

// CuratedPrice returns the demo table price for a symbol, if present.
func CuratedPrice(symbol string) (float64, bool) {
	price, ok := curatedPrices[symbol]
	return price, ok
}

// CuratedESG returns the demo table ESG record for a symbol, if present.
func CuratedESG(symbol string) (ESGRecord, bool) {
	data, ok := curatedESGData[symbol]
	if !ok {
		return ESGRecord{}, false
	}
	return ESGRecord{
		Symbol:             symbol,
		ESGScore:           data.esgScore,
		EnvironmentalScore: data.environmentalScore,
		SocialScore:        data.socialScore,
		GovernanceScore:    data.governanceScore,
		ESGRating:          data.esgRating,
		Source:             SourceCurated,
	}, true
}
