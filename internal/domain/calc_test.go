package domain

import (
	"testing"
	"time"
)

func TestPipsFromPriceDiff(t *testing.T) {
	cases := []struct {
		name   string
		p1, p2 float64
		factor float64
		want   int
	}{
		{"fifty pips", 1.1050, 1.1000, DefaultPipFactor, 50},
		{"order independent", 1.1000, 1.1050, DefaultPipFactor, 50},
		{"rounds half up", 1.10005, 1.1000, DefaultPipFactor, 1},
		{"zero distance", 1.2345, 1.2345, DefaultPipFactor, 0},
		{"factor fallback", 1.1050, 1.1000, 0, 50},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := PipsFromPriceDiff(tc.p1, tc.p2, tc.factor)
			if got != tc.want {
				t.Fatalf("expected %d pips, got %d", tc.want, got)
			}
		})
	}
}

func TestRiskRewardRatio(t *testing.T) {
	cases := []struct {
		name       string
		profitPips float64
		stopPips   float64
		want       string
	}{
		{"whole ratio", 100, 50, "2:1"},
		{"fractional ratio", 75, 50, "1.5:1"},
		{"two decimals", 100, 30, "3.33:1"},
		{"below one", 25, 50, "0.5:1"},
		{"zero stop", 100, 0, NoRatio},
		{"negative stop", 100, -10, NoRatio},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := RiskRewardRatio(tc.profitPips, tc.stopPips)
			if got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestProfitOrLoss(t *testing.T) {
	cases := []struct {
		name    string
		entry   float64
		liq     float64
		buySell BuySell
		want    TradeResult
	}{
		{"buy price rose", 1.1000, 1.1050, BuySellBuy, TradeResultProfit},
		{"buy price fell", 1.1000, 1.0950, BuySellBuy, TradeResultLoss},
		{"sell price fell", 1.1000, 1.0950, BuySellSell, TradeResultProfit},
		{"sell price rose", 1.1000, 1.1050, BuySellSell, TradeResultLoss},
		{"buy unchanged", 1.1000, 1.1000, BuySellBuy, TradeResultBreakEven},
		{"sell unchanged", 1.1000, 1.1000, BuySellSell, TradeResultBreakEven},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ProfitOrLoss(tc.entry, tc.liq, tc.buySell)
			if got != tc.want {
				t.Fatalf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestISOWeekNumber(t *testing.T) {
	cases := []struct {
		name string
		date time.Time
		want int
	}{
		// Jan 1st 2021 was a Friday, so it belongs to week 53 of 2020.
		{"year boundary", time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), 53},
		{"first iso week", time.Date(2021, 1, 4, 0, 0, 0, 0, time.UTC), 1},
		{"mid year", time.Date(2024, 7, 15, 0, 0, 0, 0, time.UTC), 29},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := ISOWeekNumber(tc.date)
			if got != tc.want {
				t.Fatalf("expected week %d, got %d", tc.want, got)
			}
		})
	}
}

func TestDayOfWeek(t *testing.T) {
	date := time.Date(2024, 7, 15, 18, 30, 0, 0, time.UTC)
	if got := DayOfWeek(date); got != "Monday" {
		t.Fatalf("expected Monday, got %s", got)
	}
}

func TestStopDistance(t *testing.T) {
	if d := StopDistance(1.1000, 1.0950, BuySellBuy); d <= 0 {
		t.Fatalf("expected positive protective distance, got %f", d)
	}
	// Stop above the entry on a Buy sits on the wrong side.
	if d := StopDistance(1.1000, 1.1050, BuySellBuy); d >= 0 {
		t.Fatalf("expected negative distance for misplaced stop, got %f", d)
	}
	if d := StopDistance(1.1000, 1.1050, BuySellSell); d <= 0 {
		t.Fatalf("expected positive protective distance for sell, got %f", d)
	}
}

func TestStopSizePipsIgnoresDirection(t *testing.T) {
	right := StopSizePips(1.1000, 1.0950, BuySellBuy)
	wrong := StopSizePips(1.1000, 1.1050, BuySellBuy)
	if right != 50 || wrong != 50 {
		t.Fatalf("expected 50 pips both ways, got %d and %d", right, wrong)
	}
}

func TestSignedProfitPotential(t *testing.T) {
	if p := SignedProfitPotential(1.1000, 1.1100, BuySellBuy); p <= 0 {
		t.Fatalf("expected positive potential for buy above entry, got %f", p)
	}
	if p := SignedProfitPotential(1.1000, 1.0900, BuySellSell); p <= 0 {
		t.Fatalf("expected positive potential for sell below entry, got %f", p)
	}
	if p := SignedProfitPotential(1.1000, 1.0900, BuySellBuy); p >= 0 {
		t.Fatalf("expected negative potential for buy target below entry, got %f", p)
	}
}
