package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeframe(t *testing.T) {
	tf, err := parseTimeframe("1Hour")
	require.NoError(t, err)
	assert.Equal(t, marketdata.OneHour, tf)

	tf, err = parseTimeframe("")
	require.NoError(t, err)
	assert.Equal(t, marketdata.OneMin, tf)

	_, err = parseTimeframe("5Sec")
	assert.Error(t, err)
}

func TestParseFeed(t *testing.T) {
	assert.Equal(t, marketdata.SIP, parseFeed("sip"))
	assert.Equal(t, marketdata.IEX, parseFeed("iex"))
	assert.Equal(t, marketdata.IEX, parseFeed("unknown"))
}

func TestAlpacaAccountInCents(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/account", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"acct","cash":"500.25"}`)
	})
	mux.HandleFunc("/v2/positions", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[{"symbol":"AAPL","qty":"2","market_value":"300.10"},{"symbol":"MSFT","qty":"1"}]`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := NewAlpacaClient(AlpacaOptions{
		APIKey:    "key",
		APISecret: "secret",
		BaseURL:   srv.URL,
		Symbols:   []string{"AAPL"},
	}, zerolog.Nop())
	require.NoError(t, err)

	snap, err := c.Account(context.Background())
	require.NoError(t, err)

	assert.True(t, snap.Cash.Equal(decimal.NewFromInt(50025)), snap.Cash.String())
	require.Len(t, snap.Holdings, 2)
	assert.Equal(t, "AAPL", snap.Holdings[0].Symbol)
	assert.True(t, snap.Holdings[0].MarketValue.Equal(decimal.NewFromInt(30010)))
	assert.True(t, snap.Holdings[1].MarketValue.IsZero())
}

func TestAlpacaRejectsCanceledContext(t *testing.T) {
	c, err := NewAlpacaClient(AlpacaOptions{Symbols: []string{"AAPL"}}, zerolog.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = c.Symbols(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, c.Buy(ctx, "AAPL", 1), context.Canceled)
}

func newTestAlpaca(t *testing.T, mux *http.ServeMux, symbols ...string) *AlpacaClient {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	c, err := NewAlpacaClient(AlpacaOptions{
		APIKey:    "key",
		APISecret: "secret",
		BaseURL:   srv.URL,
		DataURL:   srv.URL,
		Feed:      "iex",
		Timeframe: "1Min",
		Lookback:  time.Hour,
		Symbols:   symbols,
	}, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestAlpacaSymbolsKeepsTradableInConfiguredOrder(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/assets", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "active", r.URL.Query().Get("status"))
		fmt.Fprint(w, `[
			{"id":"1","symbol":"AAPL","status":"active","tradable":true},
			{"id":"2","symbol":"TSLA","status":"active","tradable":false},
			{"id":"3","symbol":"MSFT","status":"active","tradable":true},
			{"id":"4","symbol":"NVDA","status":"active","tradable":true}
		]`)
	})
	c := newTestAlpaca(t, mux, "MSFT", "DOGE", "TSLA", "AAPL")

	symbols, err := c.Symbols(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"MSFT", "AAPL"}, symbols)
}

const (
	testBars  = `[{"t":"2024-01-02T15:00:00Z","o":10,"h":11,"l":9,"c":10.5,"v":100},{"t":"2024-01-02T15:01:00Z","o":10.5,"h":12,"l":10,"c":11.25,"v":120},{"t":"2024-01-02T15:02:00Z","o":11,"h":12,"l":11,"c":11.75,"v":90}]`
	testTrade = `{"t":"2024-01-02T15:02:30Z","x":"V","p":12.5,"s":100,"c":["@"],"i":1,"z":"C"}`
)

func TestAlpacaPriceHistoryFromBarsAndLatestTrade(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/stocks/bars", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"bars":{"AAPL":%s},"next_page_token":null}`, testBars)
	})
	mux.HandleFunc("/v2/stocks/AAPL/bars", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"symbol":"AAPL","bars":%s,"next_page_token":null}`, testBars)
	})
	mux.HandleFunc("/v2/stocks/trades/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"trades":{"AAPL":%s}}`, testTrade)
	})
	mux.HandleFunc("/v2/stocks/AAPL/trades/latest", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"symbol":"AAPL","trade":%s}`, testTrade)
	})
	c := newTestAlpaca(t, mux, "AAPL")

	series, err := c.PriceHistory(context.Background(), "AAPL")
	require.NoError(t, err)

	assert.Equal(t, "AAPL", series.Symbol)
	assert.Equal(t, []float64{10.5, 11.25, 11.75}, series.History)
	assert.Equal(t, 12.5, series.Price)
}

type orderBody struct {
	Symbol        string          `json:"symbol"`
	Qty           decimal.Decimal `json:"qty"`
	Side          string          `json:"side"`
	Type          string          `json:"type"`
	TimeInForce   string          `json:"time_in_force"`
	ClientOrderID string          `json:"client_order_id"`
}

func TestAlpacaPlacesMarketDayOrders(t *testing.T) {
	var (
		mu     sync.Mutex
		orders []orderBody
	)
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/orders", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		var body orderBody
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&body)) {
			http.Error(w, "bad body", http.StatusBadRequest)
			return
		}
		mu.Lock()
		orders = append(orders, body)
		n := len(orders)
		mu.Unlock()
		fmt.Fprintf(w, `{"id":"ord-%d","client_order_id":%q,"symbol":%q,"status":"accepted"}`, n, body.ClientOrderID, body.Symbol)
	})
	c := newTestAlpaca(t, mux, "AAPL", "MSFT")
	ctx := context.Background()

	require.NoError(t, c.Buy(ctx, "AAPL", 2))
	require.NoError(t, c.Sell(ctx, "MSFT", 3))

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, orders, 2)
	for i, want := range []struct {
		symbol string
		qty    int64
		side   string
	}{{"AAPL", 2, "buy"}, {"MSFT", 3, "sell"}} {
		got := orders[i]
		assert.Equal(t, want.symbol, got.Symbol)
		assert.True(t, got.Qty.Equal(decimal.NewFromInt(want.qty)), got.Qty.String())
		assert.Equal(t, want.side, got.Side)
		assert.Equal(t, "market", got.Type)
		assert.Equal(t, "day", got.TimeInForce)
		assert.True(t, strings.HasPrefix(got.ClientOrderID, "botcoin-"), got.ClientOrderID)
	}
	assert.NotEqual(t, orders[0].ClientOrderID, orders[1].ClientOrderID)
}

func TestAlpacaOrderRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/v2/orders", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"code":40310000,"message":"insufficient buying power"}`)
	})
	c := newTestAlpaca(t, mux, "AAPL")

	err := c.Buy(context.Background(), "AAPL", 1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insufficient buying power")
}
