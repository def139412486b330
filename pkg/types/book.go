package types

import "github.com/shopspring/decimal"

// Top-of-book helpers over order book rows returned by the bids/asks
// endpoints. Rows are not assumed to be sorted; prices are integer tick
// strings. Rows with unparseable prices are skipped.

// BestBid returns the highest-priced bid row.
func BestBid(bids []OrderBookRow) (OrderBookRow, bool) {
	return extreme(bids, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) })
}

// BestAsk returns the lowest-priced ask row.
func BestAsk(asks []OrderBookRow) (OrderBookRow, bool) {
	return extreme(asks, func(a, b decimal.Decimal) bool { return a.LessThan(b) })
}

// MidPrice returns the tick midpoint between the best bid and best ask.
// The second return is false when either side of the book is empty.
func MidPrice(bids, asks []OrderBookRow) (decimal.Decimal, bool) {
	bid, bidOK := BestBid(bids)
	ask, askOK := BestAsk(asks)
	if !bidOK || !askOK {
		return decimal.Zero, false
	}
	b, err1 := decimal.NewFromString(bid.Price)
	a, err2 := decimal.NewFromString(ask.Price)
	if err1 != nil || err2 != nil {
		return decimal.Zero, false
	}
	return a.Add(b).Div(decimal.NewFromInt(2)), true
}

// SpreadTicks returns bestAsk - bestBid in tick units.
func SpreadTicks(bids, asks []OrderBookRow) (decimal.Decimal, bool) {
	bid, bidOK := BestBid(bids)
	ask, askOK := BestAsk(asks)
	if !bidOK || !askOK {
		return decimal.Zero, false
	}
	b, err1 := decimal.NewFromString(bid.Price)
	a, err2 := decimal.NewFromString(ask.Price)
	if err1 != nil || err2 != nil {
		return decimal.Zero, false
	}
	return a.Sub(b), true
}

func extreme(rows []OrderBookRow, better func(a, b decimal.Decimal) bool) (OrderBookRow, bool) {
	var best OrderBookRow
	var bestPrice decimal.Decimal
	found := false
	for _, row := range rows {
		p, err := decimal.NewFromString(row.Price)
		if err != nil {
			continue
		}
		if !found || better(p, bestPrice) {
			best, bestPrice, found = row, p, true
		}
	}
	return best, found
}
