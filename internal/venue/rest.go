package venue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

// RESTClient talks to the exchange's key-authenticated JSON API. Every
// response carries a success flag; amounts are in cents.
type RESTClient struct {
	baseURL string
	apiKey  string
	client  *http.Client
	log     zerolog.Logger
}

func NewRESTClient(baseURL, apiKey string, timeout time.Duration, log zerolog.Logger) *RESTClient {
	return &RESTClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		client:  &http.Client{Timeout: timeout},
		log:     log.With().Str("component", "venue").Str("venue", "rest").Logger(),
	}
}

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (e *envelope) ok() bool       { return e.Success }
func (e *envelope) reason() string { return e.Message }

type result interface {
	ok() bool
	reason() string
}

type accountResponse struct {
	envelope
	Cash     decimal.Decimal `json:"cash"`
	Holdings []struct {
		Ticker      string          `json:"ticker"`
		MarketValue decimal.Decimal `json:"market_value"`
	} `json:"holdings"`
}

type stockListResponse struct {
	envelope
	Tickers []string `json:"stock_tickers"`
}

type stockResponse struct {
	envelope
	HistoricalPrice []float64 `json:"historical_price"`
	Price           float64   `json:"price"`
}

func (c *RESTClient) Account(ctx context.Context) (portfolio.Snapshot, error) {
	var resp accountResponse
	if err := c.get(ctx, "/api/account", nil, &resp); err != nil {
		c.log.Error().Err(err).Msg("fetch account failed")
		return portfolio.Snapshot{}, err
	}
	snap := portfolio.Snapshot{
		Cash:     resp.Cash,
		Holdings: make([]portfolio.Holding, 0, len(resp.Holdings)),
	}
	for _, h := range resp.Holdings {
		snap.Holdings = append(snap.Holdings, portfolio.Holding{Symbol: h.Ticker, MarketValue: h.MarketValue})
	}
	c.log.Debug().Str("cash", resp.Cash.String()).Int("holdings", len(snap.Holdings)).Msg("account fetched")
	return snap, nil
}

func (c *RESTClient) Symbols(ctx context.Context) ([]string, error) {
	var resp stockListResponse
	if err := c.get(ctx, "/api/stock/list", nil, &resp); err != nil {
		c.log.Error().Err(err).Msg("fetch stock list failed")
		return nil, err
	}
	c.log.Debug().Int("count", len(resp.Tickers)).Msg("stock list fetched")
	return resp.Tickers, nil
}

func (c *RESTClient) PriceHistory(ctx context.Context, symbol string) (md.Series, error) {
	var resp stockResponse
	if err := c.get(ctx, "/api/stock", url.Values{"ticker": {symbol}}, &resp); err != nil {
		c.log.Error().Err(err).Str("symbol", symbol).Msg("fetch price failed")
		return md.Series{}, err
	}
	return md.Series{Symbol: symbol, History: resp.HistoricalPrice, Price: resp.Price}, nil
}

func (c *RESTClient) Buy(ctx context.Context, symbol string, shares int) error {
	return c.order(ctx, "/api/buy", symbol, shares)
}

func (c *RESTClient) Sell(ctx context.Context, symbol string, shares int) error {
	return c.order(ctx, "/api/sell", symbol, shares)
}

func (c *RESTClient) order(ctx context.Context, path, symbol string, shares int) error {
	params := url.Values{"ticker": {symbol}, "shares": {strconv.Itoa(shares)}}
	var resp envelope
	if err := c.get(ctx, path, params, &resp); err != nil {
		c.log.Error().Err(err).Str("path", path).Str("symbol", symbol).Int("shares", shares).Msg("place order failed")
		return err
	}
	c.log.Info().Str("path", path).Str("symbol", symbol).Int("shares", shares).Msg("place order success")
	return nil
}

func (c *RESTClient) get(ctx context.Context, path string, params url.Values, dest result) error {
	if params == nil {
		params = url.Values{}
	}
	params.Set("key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("%s: new request: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("%s: request failed: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%s: unexpected status %d: %s", path, resp.StatusCode, body)
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("%s: decode json: %w", path, err)
	}
	if !dest.ok() {
		return fmt.Errorf("%s: request unsuccessful: %s", path, dest.reason())
	}
	return nil
}
