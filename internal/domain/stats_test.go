package domain

import "testing"

func TestComputeStrategyStatsEmpty(t *testing.T) {
	stats := ComputeStrategyStats(nil)

	if stats.TotalOperations != 0 || stats.CompletedOperations != 0 {
		t.Fatalf("expected zero counts, got %+v", stats)
	}
	if stats.WinRate != 0 {
		t.Fatalf("expected zero win rate, got %f", stats.WinRate)
	}
}

func TestComputeStrategyStats(t *testing.T) {
	operations := []Operation{
		{Liquidation: &Liquidation{BalanceInPips: 20, ProfitOrLoss: TradeResultProfit}},
		{Liquidation: &Liquidation{BalanceInPips: -10, ProfitOrLoss: TradeResultLoss}},
		{}, // still open
	}

	stats := ComputeStrategyStats(operations)

	if stats.TotalOperations != 3 {
		t.Fatalf("expected 3 operations, got %d", stats.TotalOperations)
	}
	if stats.CompletedOperations != 2 {
		t.Fatalf("expected 2 completed, got %d", stats.CompletedOperations)
	}
	if stats.ProfitOperations != 1 || stats.LossOperations != 1 {
		t.Fatalf("expected 1 profit and 1 loss, got %d and %d", stats.ProfitOperations, stats.LossOperations)
	}
	if stats.TotalPips != 10 {
		t.Fatalf("expected 10 total pips, got %f", stats.TotalPips)
	}
	if stats.WinRate != 50 {
		t.Fatalf("expected 50%% win rate, got %f", stats.WinRate)
	}
}

func TestComputeStrategyStatsBreakEven(t *testing.T) {
	operations := []Operation{
		{Liquidation: &Liquidation{BalanceInPips: 0, ProfitOrLoss: TradeResultBreakEven}},
		{Liquidation: &Liquidation{BalanceInPips: 30, ProfitOrLoss: TradeResultProfit}},
	}

	stats := ComputeStrategyStats(operations)

	if stats.CompletedOperations != 2 {
		t.Fatalf("expected 2 completed, got %d", stats.CompletedOperations)
	}
	// Break-even closes count toward completion but neither profit nor loss.
	if stats.ProfitOperations != 1 || stats.LossOperations != 0 {
		t.Fatalf("unexpected profit/loss split: %d/%d", stats.ProfitOperations, stats.LossOperations)
	}
	if stats.WinRate != 50 {
		t.Fatalf("expected 50%% win rate, got %f", stats.WinRate)
	}
}
