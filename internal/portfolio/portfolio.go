package portfolio

import "github.com/shopspring/decimal"

// minorPerMajor converts venue amounts (cents) into currency units.
var minorPerMajor = decimal.NewFromInt(100)

// Holding is one owned position valued in minor currency units.
type Holding struct {
	Symbol      string
	MarketValue decimal.Decimal
}

// Snapshot is the account state for one cycle. Cash and holding values are
// in minor currency units.
type Snapshot struct {
	Cash     decimal.Decimal
	Holdings []Holding
}

// HeldSet is the set of symbols with an open position.
type HeldSet map[string]struct{}

func (h HeldSet) Contains(symbol string) bool {
	_, ok := h[symbol]
	return ok
}

// Held derives the held set from the holdings.
func (s Snapshot) Held() HeldSet {
	held := make(HeldSet, len(s.Holdings))
	for _, holding := range s.Holdings {
		held[holding.Symbol] = struct{}{}
	}
	return held
}

// Valuation is a portfolio summary in major currency units.
type Valuation struct {
	Cash       decimal.Decimal `json:"cash"`
	Investment decimal.Decimal `json:"investment"`
	Total      decimal.Decimal `json:"total"`
}

// Evaluate sums the holdings and converts the account into major units.
func Evaluate(s Snapshot) Valuation {
	invested := decimal.Zero
	for _, holding := range s.Holdings {
		invested = invested.Add(holding.MarketValue)
	}
	return Valuation{
		Cash:       s.Cash.Div(minorPerMajor),
		Investment: invested.Div(minorPerMajor),
		Total:      s.Cash.Add(invested).Div(minorPerMajor),
	}
}
