package strategy

import (
	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

// Momentum buys the strongest short and long term risers and sells held
// symbols among the strongest decliners.
type Momentum struct {
	aggregator *Aggregator
	normalizer Normalizer
}

func NewMomentum(params Params) *Momentum {
	return &Momentum{
		aggregator: NewAggregator(params),
		normalizer: Normalizer{MaxVolume: params.MaxVolume},
	}
}

// Decide returns buy orders followed by sell orders. A symbol may get both;
// see NetOrders.
func (m *Momentum) Decide(market md.Snapshot, account portfolio.Snapshot) ([]Order, error) {
	signals, err := m.aggregator.Compute(market, account.Held())
	if err != nil {
		return nil, err
	}

	orders := make([]Order, 0, signals.Entrance.Len()+signals.Exit.Len())
	for _, symbol := range signals.Entrance.Symbols() {
		score := signals.Entrance.Get(symbol)
		if score == 0 {
			continue
		}
		if shares := m.normalizer.Entrance(score); shares != 0 {
			orders = append(orders, Order{Symbol: symbol, Shares: shares})
		}
	}
	for _, symbol := range signals.Exit.Symbols() {
		score := signals.Exit.Get(symbol)
		if score == 0 {
			continue
		}
		price, _ := market.Price(symbol)
		if shares := m.normalizer.Exit(score, price); shares != 0 {
			orders = append(orders, Order{Symbol: symbol, Shares: -shares})
		}
	}
	return orders, nil
}

// NetOrders collapses orders for the same symbol into one signed delta,
// keeping first-seen order and dropping deltas that cancel out.
func NetOrders(orders []Order) []Order {
	totals := make(map[string]int, len(orders))
	seen := make([]string, 0, len(orders))
	for _, o := range orders {
		if _, ok := totals[o.Symbol]; !ok {
			seen = append(seen, o.Symbol)
		}
		totals[o.Symbol] += o.Shares
	}
	out := make([]Order, 0, len(seen))
	for _, symbol := range seen {
		if shares := totals[symbol]; shares != 0 {
			out = append(out, Order{Symbol: symbol, Shares: shares})
		}
	}
	return out
}
