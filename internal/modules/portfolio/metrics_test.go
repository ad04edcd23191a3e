package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func TestComputeFundMetricsEmptyFund(t *testing.T) {
	fund := Fund{ID: "medium", InitialCash: 100000, Cash: 100000}

	m := ComputeFundMetrics(fund)
	assert.Zero(t, m.CostBasis)
	assert.Zero(t, m.CurrentValue)
	assert.Zero(t, m.TotalReturn)
	assert.Zero(t, m.ReturnPercent, "no division by zero on empty funds")
	assert.Zero(t, m.WeightedESGScore)
	assert.Equal(t, 100000.0, m.Cash)
}

func TestComputeFundMetricsGainScenario(t *testing.T) {
	fund := Fund{
		ID:   "aggressive",
		Cash: 99000,
		Positions: []Position{
			{Symbol: "TSLA", Shares: 10, PurchasePrice: 100, CurrentPrice: floatPtr(120)},
		},
	}

	m := ComputeFundMetrics(fund)
	assert.Equal(t, 1000.0, m.CostBasis)
	assert.Equal(t, 1200.0, m.CurrentValue)
	assert.Equal(t, 200.0, m.TotalReturn)
	assert.InDelta(t, 20.0, m.ReturnPercent, 1e-9)
}

func TestComputeFundMetricsFallsBackToPurchasePrice(t *testing.T) {
	fund := Fund{
		Positions: []Position{
			{Symbol: "NEE", Shares: 5, PurchasePrice: 70},
		},
	}

	m := ComputeFundMetrics(fund)
	assert.Equal(t, 350.0, m.CurrentValue, "missing current price values at purchase price")
	assert.Zero(t, m.TotalReturn)
}

func TestWeightedESGSinglePosition(t *testing.T) {
	fund := Fund{
		Positions: []Position{
			{Symbol: "ENPH", Shares: 4, PurchasePrice: 100, CurrentPrice: floatPtr(110), ESGScore: intPtr(80)},
		},
	}

	m := ComputeFundMetrics(fund)
	assert.Equal(t, 80.0, m.WeightedESGScore)
}

func TestWeightedESGValueWeighting(t *testing.T) {
	// 100 value at score 90 and 300 value at score 70:
	// weighted mean = (100*90 + 300*70) / 400 = 75
	fund := Fund{
		Positions: []Position{
			{Symbol: "A", Shares: 1, PurchasePrice: 100, ESGScore: intPtr(90)},
			{Symbol: "B", Shares: 3, PurchasePrice: 100, ESGScore: intPtr(70)},
		},
	}

	m := ComputeFundMetrics(fund)
	assert.InDelta(t, 75.0, m.WeightedESGScore, 1e-9)
}

func TestWeightedESGIgnoresUnscoredPositions(t *testing.T) {
	fund := Fund{
		Positions: []Position{
			{Symbol: "A", Shares: 1, PurchasePrice: 100, ESGScore: intPtr(60)},
			{Symbol: "B", Shares: 9, PurchasePrice: 100}, // no ESG data
		},
	}

	m := ComputeFundMetrics(fund)
	assert.InDelta(t, 60.0, m.WeightedESGScore, 1e-9)
}

func TestComputePortfolioMetrics(t *testing.T) {
	funds := []Fund{
		{
			ID: "aggressive", InitialCash: 100000, Cash: 99000,
			Positions: []Position{
				{Symbol: "TSLA", Shares: 10, PurchasePrice: 100, CurrentPrice: floatPtr(120), ESGScore: intPtr(72)},
			},
		},
		{
			ID: "conservative", InitialCash: 100000, Cash: 99600,
			Positions: []Position{
				{Symbol: "NEE", Shares: 4, PurchasePrice: 100, CurrentPrice: floatPtr(100), ESGScore: intPtr(81)},
			},
		},
	}

	m := ComputePortfolioMetrics(funds)
	assert.Equal(t, 1400.0, m.TotalCost)
	assert.Equal(t, 1600.0, m.TotalCurrent)
	assert.Equal(t, 198600.0, m.TotalCash)
	assert.Equal(t, 200000.0, m.TotalInitial)
	assert.Equal(t, 200.0, m.TotalReturn)
	assert.InDelta(t, 14.2857142857, m.ReturnPercent, 1e-9)
	assert.Equal(t, 200200.0, m.TotalValue)
	// weights: TSLA 1200 @ 72, NEE 400 @ 81 -> (1200*72 + 400*81) / 1600
	assert.InDelta(t, 74.25, m.WeightedESGScore, 1e-9)
}

func TestComputePortfolioMetricsEmpty(t *testing.T) {
	m := ComputePortfolioMetrics(nil)
	assert.Zero(t, m.TotalValue)
	assert.Zero(t, m.ReturnPercent)
	assert.Zero(t, m.WeightedESGScore)
}
