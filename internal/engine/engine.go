package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"botcoin/internal/errors"
	"botcoin/internal/metrics"
	"botcoin/internal/portfolio"
	"botcoin/internal/risk"
	"botcoin/internal/strategy"
	"botcoin/internal/venue"
)

type Options struct {
	DryRun           bool
	MaxVolume        int
	KillSwitch       bool
	NetOrders        bool
	FetchConcurrency int
}

// Report summarizes one cycle.
type Report struct {
	CycleID   string
	Valuation portfolio.Valuation
	Orders    []strategy.Order
	Decisions []Decision
	Submitted int
	Rejected  int
	Failed    int
}

type Engine struct {
	venue     venue.Venue
	strategy  strategy.Strategy
	gate      risk.Gate
	metrics   *metrics.Recorder
	decisions *DecisionLogger
	log       zerolog.Logger
	opts      Options
}

func New(v venue.Venue, strat strategy.Strategy, gate risk.Gate, rec *metrics.Recorder, log zerolog.Logger, opts Options) *Engine {
	return &Engine{
		venue:     v,
		strategy:  strat,
		gate:      gate,
		metrics:   rec,
		decisions: NewDecisionLogger(log),
		log:       log.With().Str("component", "engine").Logger(),
		opts:      opts,
	}
}

// RunCycle fetches a snapshot, decides and submits (or, in dry run, reports)
// the resulting orders. A fetch or decide failure aborts the cycle before any
// order is sent. A failed submission is recorded and the cycle moves on.
func (e *Engine) RunCycle(ctx context.Context) (Report, error) {
	start := time.Now()
	report := Report{CycleID: uuid.NewString()}
	log := e.log.With().Str("cycle_id", report.CycleID).Logger()

	err := e.runCycle(ctx, log, &report)

	result := "ok"
	if err != nil {
		result = "error"
		log.Error().Err(err).Str("code", errors.GetCode(err).String()).Msg("cycle aborted")
	}
	e.metrics.RecordCycle(result, time.Since(start))
	return report, err
}

func (e *Engine) runCycle(ctx context.Context, log zerolog.Logger, report *Report) error {
	market, account, err := venue.FetchSnapshot(ctx, e.venue, e.opts.FetchConcurrency)
	if err != nil {
		return err
	}

	report.Valuation = portfolio.Evaluate(account)
	e.metrics.RecordValuation(report.Valuation)
	e.metrics.RecordSymbols(len(market.Symbols))
	log.Info().
		Str("cash", report.Valuation.Cash.StringFixed(2)).
		Str("investment", report.Valuation.Investment.StringFixed(2)).
		Str("total", report.Valuation.Total.StringFixed(2)).
		Int("symbols", len(market.Symbols)).
		Msg("account status")

	orders, err := e.strategy.Decide(market, account)
	if err != nil {
		return fmt.Errorf("decide: %w", err)
	}
	if e.opts.NetOrders {
		orders = strategy.NetOrders(orders)
	}
	report.Orders = orders

	held := account.Held()
	for _, order := range orders {
		d := e.execute(ctx, log, order, held.Contains(order.Symbol))
		d.CycleID = report.CycleID
		e.decisions.Append(d)
		e.metrics.RecordOrder(string(d.Side), d.Result)
		report.Decisions = append(report.Decisions, d)

		switch d.Result {
		case ResultSubmitted:
			report.Submitted++
		case ResultRejected:
			report.Rejected++
		case ResultFailed:
			report.Failed++
		}
	}

	log.Info().
		Int("orders", len(orders)).
		Int("submitted", report.Submitted).
		Int("rejected", report.Rejected).
		Int("failed", report.Failed).
		Bool("dry_run", e.opts.DryRun).
		Msg("cycle done")
	return nil
}

func (e *Engine) execute(ctx context.Context, log zerolog.Logger, order strategy.Order, held bool) Decision {
	d := Decision{Symbol: order.Symbol, Side: order.Side(), Shares: order.Quantity()}

	approved, err := e.gate.Evaluate(order, risk.RiskContext{
		Held:       held,
		MaxVolume:  e.opts.MaxVolume,
		KillSwitch: e.opts.KillSwitch,
	})
	if err != nil {
		d.Result = ResultRejected
		d.Reason = err.Error()
		var rejected *errors.Error
		if errors.As(err, &rejected) {
			d.Reason = rejected.Message
		}
		return d
	}

	verb := "buying"
	if d.Side == strategy.Sell {
		verb = "selling"
	}
	log.Info().Str("symbol", d.Symbol).Int("shares", d.Shares).Bool("dry_run", e.opts.DryRun).
		Msgf("%s %d share(s) of %s", verb, d.Shares, d.Symbol)

	if e.opts.DryRun {
		d.Result = ResultDryRun
		d.Reason = approved.Reason
		return d
	}

	if err := e.submit(ctx, approved.Order); err != nil {
		err = errors.Wrapf(errors.CodeSubmissionFailure, err, "%s %d %s", d.Side, d.Shares, d.Symbol)
		log.Error().Err(err).Str("symbol", d.Symbol).Msg("order submission failed")
		d.Result = ResultFailed
		d.Reason = err.Error()
		return d
	}
	d.Result = ResultSubmitted
	d.Reason = approved.Reason
	return d
}

func (e *Engine) submit(ctx context.Context, order strategy.Order) error {
	if order.Side() == strategy.Sell {
		return e.venue.Sell(ctx, order.Symbol, order.Quantity())
	}
	return e.venue.Buy(ctx, order.Symbol, order.Quantity())
}
