package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"botcoin/internal/lock"
	"botcoin/internal/metrics"
)

type Cycler interface {
	RunCycle(ctx context.Context) (Report, error)
}

// Scheduler runs a cycle immediately and then on every tick. A tick that
// finds the previous cycle still holding the lock is skipped.
type Scheduler struct {
	cycler   Cycler
	locker   lock.Locker
	metrics  *metrics.Recorder
	interval time.Duration
	timeout  time.Duration
	log      zerolog.Logger
	wg       sync.WaitGroup
}

func NewScheduler(cycler Cycler, locker lock.Locker, rec *metrics.Recorder, interval, timeout time.Duration, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cycler:   cycler,
		locker:   locker,
		metrics:  rec,
		interval: interval,
		timeout:  timeout,
		log:      log.With().Str("component", "scheduler").Logger(),
	}
}

// Run blocks until ctx is done and the in-flight cycle, if any, has returned.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.log.Info().Dur("interval", s.interval).Msg("scheduler started")
	s.tick(ctx)
	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			s.log.Info().Msg("scheduler stopped")
			return
		case <-ticker.C:
			s.tick(ctx)
		}
	}
}

func (s *Scheduler) tick(ctx context.Context) {
	ok, err := s.locker.TryLock(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("acquire cycle lock failed")
		return
	}
	if !ok {
		s.metrics.RecordSkipped()
		s.log.Warn().Msg("previous cycle still running, tick skipped")
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer func() {
			if err := s.locker.Unlock(context.WithoutCancel(ctx)); err != nil {
				s.log.Error().Err(err).Msg("release cycle lock failed")
			}
		}()

		cctx, cancel := context.WithTimeout(ctx, s.timeout)
		defer cancel()
		_, _ = s.cycler.RunCycle(cctx)
	}()
}
