package types

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBestBidAsk(t *testing.T) {
	t.Parallel()

	bids := []OrderBookRow{
		{Price: "55", TokenAmount: "100"},
		{Price: "60", TokenAmount: "40"},
		{Price: "52", TokenAmount: "10"},
	}
	asks := []OrderBookRow{
		{Price: "70", TokenAmount: "5"},
		{Price: "64", TokenAmount: "25"},
	}

	bid, ok := BestBid(bids)
	if !ok || bid.Price != "60" {
		t.Errorf("BestBid = %+v (ok=%v), want price 60", bid, ok)
	}
	ask, ok := BestAsk(asks)
	if !ok || ask.Price != "64" {
		t.Errorf("BestAsk = %+v (ok=%v), want price 64", ask, ok)
	}
}

func TestBestBidEmpty(t *testing.T) {
	t.Parallel()

	if _, ok := BestBid(nil); ok {
		t.Error("BestBid on empty book reported ok")
	}
	// Unparseable rows are skipped entirely.
	if _, ok := BestBid([]OrderBookRow{{Price: "garbage"}}); ok {
		t.Error("BestBid on unparseable book reported ok")
	}
}

func TestMidPriceAndSpread(t *testing.T) {
	t.Parallel()

	bids := []OrderBookRow{{Price: "60", TokenAmount: "40"}}
	asks := []OrderBookRow{{Price: "64", TokenAmount: "25"}}

	mid, ok := MidPrice(bids, asks)
	if !ok || !mid.Equal(decimal.NewFromInt(62)) {
		t.Errorf("MidPrice = %s (ok=%v), want 62", mid, ok)
	}
	spread, ok := SpreadTicks(bids, asks)
	if !ok || !spread.Equal(decimal.NewFromInt(4)) {
		t.Errorf("SpreadTicks = %s (ok=%v), want 4", spread, ok)
	}

	if _, ok := MidPrice(bids, nil); ok {
		t.Error("MidPrice with empty ask side reported ok")
	}
}
