package strategy

import (
	"github.com/shopspring/decimal"

	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

func linearSeries(symbol string, n int, start, step float64) md.Series {
	history := make([]float64, n)
	for i := range history {
		history[i] = start + step*float64(i)
	}
	return md.Series{Symbol: symbol, History: history, Price: history[n-1]}
}

// kinkedSeries moves by longStep for the first 70 points and by shortStep for the last 30.
func kinkedSeries(symbol string, start, longStep, shortStep float64) md.Series {
	history := make([]float64, 100)
	history[0] = start
	for i := 1; i < 100; i++ {
		step := longStep
		if i >= 70 {
			step = shortStep
		}
		history[i] = history[i-1] + step
	}
	return md.Series{Symbol: symbol, History: history, Price: history[99]}
}

func holding(symbols ...string) portfolio.Snapshot {
	snap := portfolio.Snapshot{Cash: decimal.NewFromInt(100000)}
	for _, s := range symbols {
		snap.Holdings = append(snap.Holdings, portfolio.Holding{Symbol: s, MarketValue: decimal.NewFromInt(1000)})
	}
	return snap
}
