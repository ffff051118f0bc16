package domain

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// DefaultPipFactor converts a price difference on four-decimal pairs
// (e.g. EUR/USD) into pips.
const DefaultPipFactor = 10000

// NoRatio is returned by RiskRewardRatio when no ratio can be computed.
const NoRatio = ""

// DayOfWeek returns the full English weekday name for the calendar date.
// Time-of-day is irrelevant.
func DayOfWeek(date time.Time) string {
	return date.Weekday().String()
}

// ISOWeekNumber returns the ISO-8601 week number (1–53): the week containing
// the date's Thursday determines the week, and week 1 is the week containing
// January 4th of the ISO year.
func ISOWeekNumber(date time.Time) int {
	_, week := date.ISOWeek()
	return week
}

// PipsFromPriceDiff converts the absolute difference between two prices into
// whole pips. A non-positive pipFactor falls back to DefaultPipFactor.
func PipsFromPriceDiff(price1, price2, pipFactor float64) int {
	if pipFactor <= 0 {
		pipFactor = DefaultPipFactor
	}
	return int(math.Round(math.Abs(price1-price2) * pipFactor))
}

// RiskRewardRatio renders profit potential versus stop size as an "N:1"
// string, rounded to two decimals with trailing zeros stripped ("2:1",
// "1.5:1"). Returns NoRatio when stopPips is not positive.
func RiskRewardRatio(profitPips, stopPips float64) string {
	if stopPips <= 0 {
		return NoRatio
	}

	ratio := math.Round(profitPips/stopPips*100) / 100
	s := strconv.FormatFloat(ratio, 'f', 2, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimRight(s, ".")
	return s + ":1"
}

// ProfitOrLoss classifies the liquidation of an operation. Equal prices are
// break-even; a Buy profits when price rose, a Sell when it fell.
func ProfitOrLoss(entryPrice, liquidationPrice float64, buySell BuySell) TradeResult {
	switch {
	case liquidationPrice == entryPrice:
		return TradeResultBreakEven
	case buySell == BuySellBuy:
		if liquidationPrice > entryPrice {
			return TradeResultProfit
		}
		return TradeResultLoss
	default:
		if liquidationPrice < entryPrice {
			return TradeResultProfit
		}
		return TradeResultLoss
	}
}

// SignedProfitPotential returns the price distance from entry to target in
// the favorable direction: positive when the target lies on the profitable
// side of the entry.
func SignedProfitPotential(entryPrice, targetPrice float64, buySell BuySell) float64 {
	if buySell == BuySellSell {
		return entryPrice - targetPrice
	}
	return targetPrice - entryPrice
}

// StopDistance returns the signed price distance from entry to stop: positive
// when the stop is on the protective side of the entry, negative when the
// caller placed it on the wrong side.
func StopDistance(entryPrice, stopPrice float64, buySell BuySell) float64 {
	if buySell == BuySellSell {
		return stopPrice - entryPrice
	}
	return entryPrice - stopPrice
}

// RiskReward renders the record's profit potential against its stop size as
// an "N:1" string. Both sides are pip-denominated; a misplaced target still
// yields its absolute ratio.
func (rm RiskManagement) RiskReward() string {
	return RiskRewardRatio(math.Abs(rm.ProfitPotentialSize), rm.StopSize)
}

// StopSizePips returns the stop distance in whole pips, ignoring direction.
// A stop on the wrong side of the entry still yields its absolute distance;
// detecting the anomaly is left to callers via StopDistance.
func StopSizePips(entryPrice, stopPrice float64, buySell BuySell) int {
	_ = buySell
	return PipsFromPriceDiff(entryPrice, stopPrice, DefaultPipFactor)
}
