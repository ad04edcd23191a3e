// Package portfolio holds the fund store, its mutation rules, and the
// derived financial and sustainability metrics.
package portfolio

import "time"

// RiskTier labels a fund's risk profile.
type RiskTier string

const (
	TierAggressive   RiskTier = "aggressive"
	TierMedium       RiskTier = "medium"
	TierConservative RiskTier = "conservative"
)

// Position is a single equity holding inside a fund.
// Market-data fields are pointers: absent means the resolver has not been
// consulted yet, and valuations fall back to the purchase price.
type Position struct {
	ID                 string     `json:"id"`
	Symbol             string     `json:"symbol"`
	Shares             float64    `json:"shares"`
	PurchasePrice      float64    `json:"purchasePrice"`
	CurrentPrice       *float64   `json:"currentPrice,omitempty"`
	ESGScore           *int       `json:"esgScore,omitempty"`
	EnvironmentalScore *int       `json:"environmentalScore,omitempty"`
	SocialScore        *int       `json:"socialScore,omitempty"`
	GovernanceScore    *int       `json:"governanceScore,omitempty"`
	ESGRating          *string    `json:"esgRating,omitempty"`
	DataSource         *string    `json:"dataSource,omitempty"`
	LastUpdate         *time.Time `json:"lastUpdate,omitempty"`
}

// CostBasis is the cash committed to the position.
func (p Position) CostBasis() float64 {
	return p.Shares * p.PurchasePrice
}

// CurrentValue values the position at the current price, falling back to
// the purchase price when no current price is known.
func (p Position) CurrentValue() float64 {
	if p.CurrentPrice != nil {
		return p.Shares * *p.CurrentPrice
	}
	return p.Shares * p.PurchasePrice
}

// Fund is a risk-tiered collection of positions with cost-basis cash
// accounting: adding a position debits shares x purchase price from Cash,
// removing it credits the same amount back. Position order is insertion
// order.
type Fund struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	RiskTier    RiskTier   `json:"riskTier"`
	InitialCash float64    `json:"initialCash"`
	Cash        float64    `json:"cash"`
	Positions   []Position `json:"positions"`
}

// FundMetrics are the derived aggregates for one fund.
type FundMetrics struct {
	CurrentValue     float64 `json:"currentValue"`
	CostBasis        float64 `json:"costBasis"`
	TotalReturn      float64 `json:"totalReturn"`
	ReturnPercent    float64 `json:"returnPercent"`
	Cash             float64 `json:"cash"`
	WeightedESGScore float64 `json:"weightedESGScore"`
}

// PortfolioMetrics aggregates across all funds.
type PortfolioMetrics struct {
	TotalValue       float64 `json:"totalValue"` // invested value plus cash
	TotalCurrent     float64 `json:"totalCurrent"`
	TotalCost        float64 `json:"totalCost"`
	TotalCash        float64 `json:"totalCash"`
	TotalInitial     float64 `json:"totalInitial"`
	TotalReturn      float64 `json:"totalReturn"`
	ReturnPercent    float64 `json:"returnPercent"`
	WeightedESGScore float64 `json:"weightedESGScore"`
}
