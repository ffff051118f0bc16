package domain

// StrategyStats aggregates a strategy's operations. Pips and win rate only
// count operations that carry a liquidation.
type StrategyStats struct {
	TotalOperations     int     `json:"totalOperations"`
	CompletedOperations int     `json:"completedOperations"`
	ProfitOperations    int     `json:"profitOperations"`
	LossOperations      int     `json:"lossOperations"`
	TotalPips           float64 `json:"totalPips"`
	WinRate             float64 `json:"winRate"`
}

// ComputeStrategyStats reduces the operations of one strategy. The reduction
// is pure and order-independent; no operation is counted twice.
func ComputeStrategyStats(operations []Operation) StrategyStats {
	var stats StrategyStats
	stats.TotalOperations = len(operations)

	for _, op := range operations {
		liq := op.Liquidation
		if liq == nil {
			continue
		}
		stats.CompletedOperations++
		stats.TotalPips += liq.BalanceInPips

		switch liq.ProfitOrLoss {
		case TradeResultProfit:
			stats.ProfitOperations++
		case TradeResultLoss:
			stats.LossOperations++
		}
	}

	if stats.CompletedOperations > 0 {
		stats.WinRate = float64(stats.ProfitOperations) / float64(stats.CompletedOperations) * 100
	}

	return stats
}
