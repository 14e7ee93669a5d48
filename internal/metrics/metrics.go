package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"botcoin/internal/portfolio"
)

// Recorder records trading cycle metrics on its own registry.
type Recorder struct {
	registry      *prometheus.Registry
	cycles        *prometheus.CounterVec
	cycleDuration prometheus.Histogram
	skipped       prometheus.Counter
	orders        *prometheus.CounterVec
	portfolio     *prometheus.GaugeVec
	scored        prometheus.Gauge
}

// New creates a Recorder with a fresh registry that also carries the Go and
// process collectors.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		cycles: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botcoin_cycles_total",
				Help: "Trading cycles run, by result",
			},
			[]string{"result"},
		),
		cycleDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "botcoin_cycle_duration_seconds",
				Help:    "Duration of trading cycles in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		skipped: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "botcoin_cycles_skipped_total",
				Help: "Ticks skipped because a cycle was still running",
			},
		),
		orders: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "botcoin_orders_total",
				Help: "Orders by side and result",
			},
			[]string{"side", "result"},
		),
		portfolio: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "botcoin_portfolio_value",
				Help: "Last evaluated portfolio value in dollars",
			},
			[]string{"component"},
		),
		scored: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "botcoin_symbols_scored",
				Help: "Symbols in the last market snapshot",
			},
		),
	}
}

func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordCycle records a finished cycle. result is "ok" or "error".
func (r *Recorder) RecordCycle(result string, d time.Duration) {
	r.cycles.WithLabelValues(result).Inc()
	r.cycleDuration.Observe(d.Seconds())
}

func (r *Recorder) RecordSkipped() {
	r.skipped.Inc()
}

// RecordOrder records one order outcome: "submitted", "dry_run", "rejected" or "failed".
func (r *Recorder) RecordOrder(side, result string) {
	r.orders.WithLabelValues(side, result).Inc()
}

func (r *Recorder) RecordValuation(v portfolio.Valuation) {
	r.portfolio.WithLabelValues("cash").Set(v.Cash.InexactFloat64())
	r.portfolio.WithLabelValues("investment").Set(v.Investment.InexactFloat64())
	r.portfolio.WithLabelValues("total").Set(v.Total.InexactFloat64())
}

func (r *Recorder) RecordSymbols(n int) {
	r.scored.Set(float64(n))
}
