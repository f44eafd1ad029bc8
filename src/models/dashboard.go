package models

// DashboardData aggregates closed trades whose exit date falls inside
// the requested range.
type DashboardData struct {
	TotalTrades         int `json:"totalTrades"`
	PositiveTradesCount int `json:"positiveTradesCount"`
	NegativeTradesCount int `json:"negativeTradesCount"`

	NetRealisedProfitAndLoss float64 `json:"netRealisedProfitAndLoss"`

	// Distinct symbols in insertion order.
	EntitiesTraded []string `json:"entitiesTraded"`

	WinRate float64 `json:"winRate"`
}

// ComputeWinRate returns positive/total as a percentage, defined as 0
// over an empty collection.
func ComputeWinRate(positiveCount, totalCount int) float64 {
	if totalCount == 0 {
		return 0
	}
	return float64(positiveCount) / float64(totalCount) * 100
}
