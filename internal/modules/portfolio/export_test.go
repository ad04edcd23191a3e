package portfolio

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVScenario(t *testing.T) {
	funds := []Fund{
		{
			Name: "Aggressive Growth Fund",
			Positions: []Position{
				{
					Symbol: "TSLA", Shares: 10, PurchasePrice: 100, CurrentPrice: floatPtr(120),
					ESGScore: intPtr(72), ESGRating: strPtr("B"),
					EnvironmentalScore: intPtr(85), SocialScore: intPtr(65), GovernanceScore: intPtr(66),
				},
			},
		},
		{
			Name: "Balanced Fund",
			Positions: []Position{
				{Symbol: "ZZZZ", Shares: 2, PurchasePrice: 50},
			},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, funds))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	require.Len(t, lines, 3)

	assert.Equal(t,
		"Fund,Symbol,Shares,Purchase Price,Current Price,Cost Basis,Current Value,Return,Return %,ESG Score,ESG Rating,Environmental,Social,Governance",
		lines[0])
	assert.Equal(t,
		"Aggressive Growth Fund,TSLA,10,100.00,120.00,1000.00,1200.00,200.00,20.00%,72,B,85,65,66",
		lines[1])
	// Missing market data: current price falls back to purchase price,
	// ESG columns render as N/A.
	assert.Equal(t,
		"Balanced Fund,ZZZZ,2,50.00,50.00,100.00,100.00,0.00,0.00%,N/A,N/A,N/A,N/A,N/A",
		lines[2])
}

func TestWriteCSVEmptyPortfolio(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, []Fund{{Name: "Balanced Fund"}}))

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	assert.Len(t, lines, 1, "header only")
}

func TestWriteCSVFractionalShares(t *testing.T) {
	funds := []Fund{
		{
			Name: "Balanced Fund",
			Positions: []Position{
				{Symbol: "AAPL", Shares: 2.5, PurchasePrice: 178.20},
			},
		},
	}

	var sb strings.Builder
	require.NoError(t, WriteCSV(&sb, funds))
	assert.Contains(t, sb.String(), "AAPL,2.5,178.20,178.20,445.50,445.50,0.00,0.00%")
}

func strPtr(v string) *string { return &v }
