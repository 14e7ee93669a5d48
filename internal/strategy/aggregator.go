package strategy

import (
	"cmp"
	"fmt"
	"slices"

	"botcoin/internal/errors"
	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

// Signals holds the blended entrance (buy) and exit (sell) scores of a cycle.
type Signals struct {
	Entrance *Scores
	Exit     *Scores
}

type ranked struct {
	symbol string
	slope  float64
}

// Aggregator ranks symbols by short and long trend and blends the ranked
// slopes into entrance and exit scores.
type Aggregator struct {
	params    Params
	estimator md.Estimator
}

func NewAggregator(params Params) *Aggregator {
	return &Aggregator{
		params:    params,
		estimator: md.Estimator{Precision: params.Precision},
	}
}

// Compute scores every symbol in market. Entrance scores come from the
// steepest risers of each ordering; exit scores from the steepest decliners,
// restricted to held symbols.
func (a *Aggregator) Compute(market md.Snapshot, held portfolio.HeldSet) (Signals, error) {
	short := make([]ranked, 0, len(market.Symbols))
	long := make([]ranked, 0, len(market.Symbols))

	for _, symbol := range market.Symbols {
		series, ok := market.Series[symbol]
		if !ok {
			return Signals{}, errors.Newf(errors.CodeMissingSeries, "no price series for %s", symbol)
		}
		shortSlope, err := a.estimator.Estimate(series.History, a.params.ShortWindow)
		if err != nil {
			return Signals{}, fmt.Errorf("short trend for %s: %w", symbol, err)
		}
		longSlope, err := a.estimator.Estimate(series.History, a.params.LongWindow)
		if err != nil {
			return Signals{}, fmt.Errorf("long trend for %s: %w", symbol, err)
		}
		short = append(short, ranked{symbol: symbol, slope: shortSlope})
		long = append(long, ranked{symbol: symbol, slope: longSlope})
	}

	slices.SortStableFunc(short, byslope)
	slices.SortStableFunc(long, byslope)

	n := len(short)
	entrance := NewScores()
	for i := n - min(a.params.BuyCount, n); i < n; i++ {
		entrance.Add(short[i].symbol, a.params.ShortWeight*short[i].slope)
		entrance.Add(long[i].symbol, a.params.LongWeight*long[i].slope)
	}

	exit := NewScores()
	for i := 0; i < min(a.params.SellCount, n); i++ {
		if held.Contains(short[i].symbol) {
			exit.Add(short[i].symbol, a.params.ShortWeight*short[i].slope)
		}
		if held.Contains(long[i].symbol) {
			exit.Add(long[i].symbol, a.params.LongWeight*long[i].slope)
		}
	}

	return Signals{Entrance: entrance, Exit: exit}, nil
}

// byslope orders by ascending slope. Used with a stable sort, so equal
// slopes keep venue order.
func byslope(a, b ranked) int {
	return cmp.Compare(a.slope, b.slope)
}
