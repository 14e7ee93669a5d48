package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v3"

	"botcoin/internal/config"
	"botcoin/internal/engine"
	"botcoin/internal/lock"
	"botcoin/internal/logging"
	"botcoin/internal/metrics"
	"botcoin/internal/risk"
	"botcoin/internal/server"
	"botcoin/internal/strategy"
	"botcoin/internal/venue"
)

func runAction(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"), config.Overrides{
		Mode:  cmd.String("mode"),
		Venue: cmd.String("venue"),
	})
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("logger error: %w", err)
	}

	v, err := newVenue(cfg.Venue, logger)
	if err != nil {
		return fmt.Errorf("venue error: %w", err)
	}

	rec := metrics.New()
	eng := engine.New(
		v,
		strategy.NewMomentum(cfg.Strategy.Params()),
		risk.NewGate(logger),
		rec,
		logger,
		engine.Options{
			DryRun:           cfg.Mode == config.ModeDryRun,
			MaxVolume:        cfg.Strategy.MaxVolume,
			KillSwitch:       cfg.Risk.KillSwitch,
			NetOrders:        cfg.Strategy.NetOrders,
			FetchConcurrency: cfg.Venue.FetchConcurrency,
		},
	)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("mode", string(cfg.Mode)).Str("venue", cfg.Venue.Type).Msg("starting bot")

	if cmd.Bool("once") {
		cctx, cancel := context.WithTimeout(ctx, cfg.Schedule.CycleTimeout)
		defer cancel()
		_, err := eng.RunCycle(cctx)
		return err
	}

	locker, closeLocker := newLocker(cfg.Lock)
	defer closeLocker()

	if cfg.Server.Enabled {
		srv := server.New(server.Config{
			Port:            cfg.Server.Port,
			Greeting:        cfg.Server.Greeting,
			ShutdownTimeout: cfg.Server.ShutdownTimeout,
		}, rec.Registry(), logger)
		srv.Start()
		defer func() {
			if err := srv.Stop(context.Background()); err != nil {
				logger.Error().Err(err).Msg("failed to stop http server")
			}
		}()
	}

	engine.NewScheduler(eng, locker, rec, cfg.Schedule.Interval, cfg.Schedule.CycleTimeout, logger).Run(ctx)

	logger.Info().Msg("bot shutdown complete")
	return nil
}

func newVenue(cfg config.Venue, logger zerolog.Logger) (venue.Venue, error) {
	switch cfg.Type {
	case config.VenueAlpaca:
		return venue.NewAlpacaClient(venue.AlpacaOptions{
			APIKey:    cfg.Alpaca.APIKey,
			APISecret: cfg.Alpaca.APISecret,
			BaseURL:   cfg.Alpaca.BaseURL,
			DataURL:   cfg.Alpaca.DataURL,
			Feed:      cfg.Alpaca.Feed,
			Timeframe: cfg.Alpaca.Timeframe,
			Lookback:  cfg.Alpaca.Lookback,
			Symbols:   cfg.Alpaca.Symbols,
		}, logger)
	default:
		return venue.NewRESTClient(cfg.BaseURL, cfg.APIKey, cfg.Timeout, logger), nil
	}
}

func newLocker(cfg config.Lock) (lock.Locker, func()) {
	if cfg.Backend != config.LockRedis {
		return lock.NewMemory(), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	return lock.NewRedis(client, cfg.Redis.Key, cfg.Redis.TTL), func() { _ = client.Close() }
}

func main() {
	cmd := &cli.Command{
		Name:  "bot",
		Usage: "Run the momentum trading bot",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to the YAML config `FILE`",
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: fmt.Sprintf("Run mode (%s or %s), overrides the config file", config.ModeDryRun, config.ModeTrade),
			},
			&cli.StringFlag{
				Name:  "venue",
				Usage: fmt.Sprintf("Venue (%s or %s), overrides the config file", config.VenueREST, config.VenueAlpaca),
			},
			&cli.BoolFlag{
				Name:  "once",
				Usage: "Run a single cycle and exit",
			},
		},
		Action: runAction,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
