package portfolio

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// ComputeFundMetrics derives the financial and ESG aggregates for one fund.
// Everything is recomputed from the positions on every call; nothing is
// cached. Full float64 precision is kept throughout, display rounding is
// the caller's concern.
func ComputeFundMetrics(fund Fund) FundMetrics {
	costs := make([]float64, len(fund.Positions))
	values := make([]float64, len(fund.Positions))
	for i, pos := range fund.Positions {
		costs[i] = pos.CostBasis()
		values[i] = pos.CurrentValue()
	}

	costBasis := floats.Sum(costs)
	currentValue := floats.Sum(values)
	totalReturn := currentValue - costBasis

	returnPercent := 0.0
	if costBasis > 0 {
		returnPercent = totalReturn / costBasis * 100
	}

	return FundMetrics{
		CurrentValue:     currentValue,
		CostBasis:        costBasis,
		TotalReturn:      totalReturn,
		ReturnPercent:    returnPercent,
		Cash:             fund.Cash,
		WeightedESGScore: weightedESGScore(fund.Positions),
	}
}

// ComputePortfolioMetrics sums fund aggregates and computes the
// portfolio-wide value-weighted ESG score over the union of all positions.
func ComputePortfolioMetrics(funds []Fund) PortfolioMetrics {
	var m PortfolioMetrics
	var allPositions []Position

	for _, fund := range funds {
		fm := ComputeFundMetrics(fund)
		m.TotalCurrent += fm.CurrentValue
		m.TotalCost += fm.CostBasis
		m.TotalCash += fund.Cash
		m.TotalInitial += fund.InitialCash
		allPositions = append(allPositions, fund.Positions...)
	}

	m.TotalReturn = m.TotalCurrent - m.TotalCost
	if m.TotalCost > 0 {
		m.ReturnPercent = m.TotalReturn / m.TotalCost * 100
	}
	m.TotalValue = m.TotalCurrent + m.TotalCash
	m.WeightedESGScore = weightedESGScore(allPositions)

	return m
}

// weightedESGScore is the value-weighted mean of composite ESG scores over
// the positions that have one, weighted by each position's current value.
// Returns 0 when no position carries a score or all weights are zero.
func weightedESGScore(positions []Position) float64 {
	var scores, weights []float64
	for _, pos := range positions {
		if pos.ESGScore == nil {
			continue
		}
		scores = append(scores, float64(*pos.ESGScore))
		weights = append(weights, pos.CurrentValue())
	}

	if len(scores) == 0 || floats.Sum(weights) <= 0 {
		return 0
	}
	return stat.Mean(scores, weights)
}
