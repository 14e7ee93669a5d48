package venue

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"botcoin/internal/errors"
	"botcoin/internal/md"
	"botcoin/internal/portfolio"
)

// Venue is the brokerage the bot reads state from and sends orders to.
type Venue interface {
	Account(ctx context.Context) (portfolio.Snapshot, error)
	Symbols(ctx context.Context) ([]string, error)
	PriceHistory(ctx context.Context, symbol string) (md.Series, error)
	Buy(ctx context.Context, symbol string, shares int) error
	Sell(ctx context.Context, symbol string, shares int) error
}

// FetchSnapshot reads the account, the symbol list and every symbol's price
// history, at most concurrency histories at a time. It returns either a
// complete snapshot or a CodeFetchFailure error, never partial data.
func FetchSnapshot(ctx context.Context, v Venue, concurrency int) (md.Snapshot, portfolio.Snapshot, error) {
	account, err := v.Account(ctx)
	if err != nil {
		return md.Snapshot{}, portfolio.Snapshot{}, errors.Wrap(errors.CodeFetchFailure, "fetch account status", err)
	}

	symbols, err := v.Symbols(ctx)
	if err != nil {
		return md.Snapshot{}, portfolio.Snapshot{}, errors.Wrap(errors.CodeFetchFailure, "fetch symbol list", err)
	}

	series := make([]md.Series, len(symbols))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(concurrency, 1))
	for i, symbol := range symbols {
		i, symbol := i, symbol
		g.Go(func() error {
			s, err := v.PriceHistory(gctx, symbol)
			if err != nil {
				return fmt.Errorf("%s: %w", symbol, err)
			}
			s.Symbol = symbol
			series[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return md.Snapshot{}, portfolio.Snapshot{}, errors.Wrap(errors.CodeFetchFailure, "fetch price history", err)
	}

	return md.NewSnapshot(series...), account, nil
}
