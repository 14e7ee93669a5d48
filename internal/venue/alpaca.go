package venue

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/alpaca"
	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

var centsPerDollar = decimal.NewFromInt(100)

type AlpacaOptions struct {
	APIKey    string
	APISecret string
	BaseURL   string
	DataURL   string
	Feed      string
	Timeframe string
	Lookback  time.Duration
	Symbols   []string
}

// AlpacaClient adapts the Alpaca trading and market data APIs to Venue.
// Dollar amounts are converted to cents so both venues share one unit.
type AlpacaClient struct {
	trading   *alpaca.Client
	data      *marketdata.Client
	feed      marketdata.Feed
	timeframe marketdata.TimeFrame
	lookback  time.Duration
	universe  []string
	log       zerolog.Logger
	now       func() time.Time
}

func NewAlpacaClient(opts AlpacaOptions, log zerolog.Logger) (*AlpacaClient, error) {
	timeframe, err := parseTimeframe(opts.Timeframe)
	if err != nil {
		return nil, err
	}
	return &AlpacaClient{
		trading: alpaca.NewClient(alpaca.ClientOpts{
			APIKey:    opts.APIKey,
			APISecret: opts.APISecret,
			BaseURL:   opts.BaseURL,
		}),
		data: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    opts.APIKey,
			APISecret: opts.APISecret,
			BaseURL:   opts.DataURL,
		}),
		feed:      parseFeed(opts.Feed),
		timeframe: timeframe,
		lookback:  opts.Lookback,
		universe:  slices.Clone(opts.Symbols),
		log:       log.With().Str("component", "venue").Str("venue", "alpaca").Logger(),
		now:       time.Now,
	}, nil
}

func (c *AlpacaClient) Account(ctx context.Context) (portfolio.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return portfolio.Snapshot{}, err
	}
	acct, err := c.trading.GetAccount()
	if err != nil {
		c.log.Error().Err(err).Msg("fetch account failed")
		return portfolio.Snapshot{}, fmt.Errorf("get account: %w", err)
	}
	positions, err := c.trading.GetPositions()
	if err != nil {
		c.log.Error().Err(err).Msg("fetch positions failed")
		return portfolio.Snapshot{}, fmt.Errorf("get positions: %w", err)
	}

	snap := portfolio.Snapshot{
		Cash:     acct.Cash.Mul(centsPerDollar),
		Holdings: make([]portfolio.Holding, 0, len(positions)),
	}
	for _, pos := range positions {
		value := decimal.Zero
		if pos.MarketValue != nil {
			value = *pos.MarketValue
		}
		snap.Holdings = append(snap.Holdings, portfolio.Holding{
			Symbol:      pos.Symbol,
			MarketValue: value.Mul(centsPerDollar),
		})
	}
	c.log.Debug().Str("cash", acct.Cash.String()).Int("positions", len(positions)).Msg("account fetched")
	return snap, nil
}

// Symbols returns the configured universe restricted to active, tradable
// assets, in configured order.
func (c *AlpacaClient) Symbols(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	assets, err := c.trading.GetAssets(alpaca.GetAssetsRequest{Status: "active"})
	if err != nil {
		c.log.Error().Err(err).Msg("fetch assets failed")
		return nil, fmt.Errorf("get assets: %w", err)
	}
	tradable := make(map[string]struct{}, len(assets))
	for _, a := range assets {
		if a.Tradable {
			tradable[a.Symbol] = struct{}{}
		}
	}

	symbols := make([]string, 0, len(c.universe))
	for _, s := range c.universe {
		if _, ok := tradable[s]; ok {
			symbols = append(symbols, s)
			continue
		}
		c.log.Warn().Str("symbol", s).Msg("symbol not tradable, skipped")
	}
	return symbols, nil
}

func (c *AlpacaClient) PriceHistory(ctx context.Context, symbol string) (md.Series, error) {
	if err := ctx.Err(); err != nil {
		return md.Series{}, err
	}
	bars, err := c.data.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: c.timeframe,
		Start:     c.now().Add(-c.lookback),
		Feed:      c.feed,
	})
	if err != nil {
		c.log.Error().Err(err).Str("symbol", symbol).Msg("fetch bars failed")
		return md.Series{}, fmt.Errorf("get bars: %w", err)
	}
	trade, err := c.data.GetLatestTrade(symbol, marketdata.GetLatestTradeRequest{Feed: c.feed})
	if err != nil {
		c.log.Error().Err(err).Str("symbol", symbol).Msg("fetch latest trade failed")
		return md.Series{}, fmt.Errorf("get latest trade: %w", err)
	}

	history := make([]float64, len(bars))
	for i, bar := range bars {
		history[i] = bar.Close
	}
	c.log.Debug().Str("symbol", symbol).Int("bars", len(bars)).Float64("price", trade.Price).Msg("price history fetched")
	return md.Series{Symbol: symbol, History: history, Price: trade.Price}, nil
}

func (c *AlpacaClient) Buy(ctx context.Context, symbol string, shares int) error {
	return c.placeOrder(ctx, symbol, shares, alpaca.Buy)
}

func (c *AlpacaClient) Sell(ctx context.Context, symbol string, shares int) error {
	return c.placeOrder(ctx, symbol, shares, alpaca.Sell)
}

func (c *AlpacaClient) placeOrder(ctx context.Context, symbol string, shares int, side alpaca.Side) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	qty := decimal.NewFromInt(int64(shares))
	order, err := c.trading.PlaceOrder(alpaca.PlaceOrderRequest{
		Symbol:        symbol,
		Qty:           &qty,
		Side:          side,
		Type:          alpaca.Market,
		TimeInForce:   alpaca.Day,
		ClientOrderID: "botcoin-" + uuid.NewString(),
	})
	if err != nil {
		c.log.Error().Err(err).Str("side", string(side)).Str("symbol", symbol).Int("shares", shares).Msg("place order failed")
		return fmt.Errorf("place %s order: %w", side, err)
	}
	c.log.Info().Str("order_id", order.ID).Str("side", string(side)).Str("symbol", symbol).
		Int("shares", shares).Str("status", string(order.Status)).Msg("place order success")
	return nil
}

func parseFeed(feed string) marketdata.Feed {
	switch feed {
	case "sip":
		return marketdata.SIP
	default:
		return marketdata.IEX
	}
}

func parseTimeframe(tf string) (marketdata.TimeFrame, error) {
	switch tf {
	case "", "1Min":
		return marketdata.OneMin, nil
	case "1Hour":
		return marketdata.OneHour, nil
	case "1Day":
		return marketdata.OneDay, nil
	default:
		return marketdata.TimeFrame{}, fmt.Errorf("unsupported timeframe %q", tf)
	}
}
