package md

// Series is the price history of one symbol as reported by the venue.
type Series struct {
	Symbol  string
	History []float64 // oldest first
	Price   float64
}

// Snapshot is the market state for one cycle. Symbols keeps venue order so
// every computation over the snapshot is deterministic.
type Snapshot struct {
	Symbols []string
	Series  map[string]Series
}

// NewSnapshot builds a snapshot from series in the given order.
func NewSnapshot(series ...Series) Snapshot {
	snap := Snapshot{
		Symbols: make([]string, 0, len(series)),
		Series:  make(map[string]Series, len(series)),
	}
	for _, s := range series {
		if _, ok := snap.Series[s.Symbol]; ok {
			continue
		}
		snap.Symbols = append(snap.Symbols, s.Symbol)
		snap.Series[s.Symbol] = s
	}
	return snap
}

// Price returns the latest quote for symbol.
func (s Snapshot) Price(symbol string) (float64, bool) {
	series, ok := s.Series[symbol]
	if !ok {
		return 0, false
	}
	return series.Price, true
}
