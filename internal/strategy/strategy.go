package strategy

import (
	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

type Side string

const (
	Buy  Side = "BUY"
	Sell Side = "SELL"
)

// Order is a signed share delta: positive buys, negative sells.
type Order struct {
	Symbol string
	Shares int
}

func (o Order) Side() Side {
	if o.Shares < 0 {
		return Sell
	}
	return Buy
}

// Quantity is the unsigned share count.
func (o Order) Quantity() int {
	if o.Shares < 0 {
		return -o.Shares
	}
	return o.Shares
}

// Strategy turns one cycle's market and account state into orders.
type Strategy interface {
	Decide(market md.Snapshot, account portfolio.Snapshot) ([]Order, error)
}

// Params tunes the momentum strategy. DefaultParams holds the production values.
type Params struct {
	ShortWindow int
	LongWindow  int
	ShortWeight float64
	LongWeight  float64
	BuyCount    int
	SellCount   int
	MaxVolume   int
	// Precision rounds every slope to this many decimal places before ranking
	// and scoring; negative keeps full precision. At 2, any slope within
	// 0.005 of zero scores zero whatever the unit price, so shallow declines
	// in cheap symbols never sell, and a strictly rising series can score 0.
	Precision int32
}

func DefaultParams() Params {
	return Params{
		ShortWindow: 30,
		LongWindow:  100,
		ShortWeight: 0.8,
		LongWeight:  0.2,
		BuyCount:    6,
		SellCount:   15,
		MaxVolume:   3,
		Precision:   2,
	}
}
