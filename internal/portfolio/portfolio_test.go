package portfolio

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestEvaluateConvertsMinorUnits(t *testing.T) {
	snap := Snapshot{
		Cash: decimal.NewFromInt(50000),
		Holdings: []Holding{
			{Symbol: "ABC", MarketValue: decimal.NewFromInt(100000)},
			{Symbol: "XYZ", MarketValue: decimal.NewFromInt(50000)},
		},
	}

	got := Evaluate(snap)

	assert.True(t, got.Cash.Equal(decimal.NewFromInt(500)), "cash=%s", got.Cash)
	assert.True(t, got.Investment.Equal(decimal.NewFromInt(1500)), "investment=%s", got.Investment)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(2000)), "total=%s", got.Total)
}

func TestEvaluateEmptyPortfolio(t *testing.T) {
	got := Evaluate(Snapshot{Cash: decimal.NewFromInt(1234)})

	assert.True(t, got.Cash.Equal(decimal.RequireFromString("12.34")))
	assert.True(t, got.Investment.IsZero())
	assert.True(t, got.Total.Equal(got.Cash))
}

func TestHeldDerivedFromHoldings(t *testing.T) {
	snap := Snapshot{Holdings: []Holding{{Symbol: "ABC"}, {Symbol: "DEF"}}}

	held := snap.Held()

	assert.Len(t, held, 2)
	assert.True(t, held.Contains("ABC"))
	assert.True(t, held.Contains("DEF"))
	assert.False(t, held.Contains("XYZ"))
}
