package portfolio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
)

// csvHeader is the fixed export layout. Monetary columns are formatted to
// two decimals, the return percentage carries a % suffix, and missing ESG
// fields render as a literal N/A.
var csvHeader = []string{
	"Fund", "Symbol", "Shares", "Purchase Price", "Current Price",
	"Cost Basis", "Current Value", "Return", "Return %",
	"ESG Score", "ESG Rating", "Environmental", "Social", "Governance",
}

// WriteCSV serializes the funds' positions as comma-separated text, one row
// per position in display order.
func WriteCSV(w io.Writer, funds []Fund) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, fund := range funds {
		for _, pos := range fund.Positions {
			currentPrice := pos.PurchasePrice
			if pos.CurrentPrice != nil {
				currentPrice = *pos.CurrentPrice
			}

			costBasis := pos.CostBasis()
			currentValue := pos.CurrentValue()
			posReturn := currentValue - costBasis
			returnPercent := 0.0
			if costBasis > 0 {
				returnPercent = posReturn / costBasis * 100
			}

			row := []string{
				fund.Name,
				pos.Symbol,
				strconv.FormatFloat(pos.Shares, 'f', -1, 64),
				money(pos.PurchasePrice),
				money(currentPrice),
				money(costBasis),
				money(currentValue),
				money(posReturn),
				money(returnPercent) + "%",
				intOrNA(pos.ESGScore),
				stringOrNA(pos.ESGRating),
				intOrNA(pos.EnvironmentalScore),
				intOrNA(pos.SocialScore),
				intOrNA(pos.GovernanceScore),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func money(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

func intOrNA(v *int) string {
	if v == nil {
		return "N/A"
	}
	return strconv.Itoa(*v)
}

func stringOrNA(v *string) string {
	if v == nil {
		return "N/A"
	}
	return *v
}
