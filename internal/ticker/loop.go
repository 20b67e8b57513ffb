// Package ticker runs the host tick loop: every actor mutation, buff sweep
// and subclass refresh happens on the single goroutine of Loop.Run.
package ticker

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/udisondev/rpgcore/internal/config"
	"github.com/udisondev/rpgcore/internal/world"
)

// ErrStopped is returned by Do after Run has returned.
var ErrStopped = errors.New("tick loop stopped")

// SpeedSyncer pushes the live movement speed of an actor to the host.
type SpeedSyncer interface {
	SyncMoveSpeed(a *world.Actor) (float64, bool)
}

// Loop — однопоточный игровой цикл.
type Loop struct {
	reg    *world.Registry
	speeds SpeedSyncer
	cfg    config.TickerConfig

	tasks   chan func()
	stopped chan struct{}
	hooks   []func(now time.Time)

	ticks atomic.Uint64
}

// New creates a tick loop over reg. Register hooks with OnTick before Run.
func New(reg *world.Registry, speeds SpeedSyncer, cfg config.TickerConfig) *Loop {
	return &Loop{
		reg:     reg,
		speeds:  speeds,
		cfg:     cfg,
		tasks:   make(chan func(), 64),
		stopped: make(chan struct{}),
	}
}

// OnTick registers fn to run on every tick. Not safe after Run started.
func (l *Loop) OnTick(fn func(now time.Time)) {
	l.hooks = append(l.hooks, fn)
}

// Ticks returns the number of completed ticks.
func (l *Loop) Ticks() uint64 {
	return l.ticks.Load()
}

// Do runs fn on the loop goroutine and waits for it to finish.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	task := func() {
		defer close(done)
		fn()
	}

	select {
	case l.tasks <- task:
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-l.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drives the loop until ctx is canceled.
func (l *Loop) Run(ctx context.Context) error {
	defer close(l.stopped)

	tick := time.NewTicker(l.cfg.TickRate)
	defer tick.Stop()
	sweep := time.NewTicker(l.cfg.BuffSweep)
	defer sweep.Stop()
	refresh := time.NewTicker(l.cfg.SubclassRefresh)
	defer refresh.Stop()

	slog.Info("tick loop started",
		"tick_rate", l.cfg.TickRate,
		"buff_sweep", l.cfg.BuffSweep,
		"subclass_refresh", l.cfg.SubclassRefresh)

	for {
		select {
		case <-ctx.Done():
			slog.Info("tick loop stopping", "ticks", l.ticks.Load())
			return ctx.Err()

		case task := <-l.tasks:
			task()

		case now := <-tick.C:
			for _, fn := range l.hooks {
				fn(now)
			}
			l.ticks.Add(1)

		case <-sweep.C:
			l.SweepBuffs()

		case <-refresh.C:
			l.RefreshMoveSpeed()
		}
	}
}

// SweepBuffs removes expired buffs from every actor and returns how many expired.
func (l *Loop) SweepBuffs() int {
	total := 0
	l.reg.ForEach(func(a *world.Actor) bool {
		removed := a.Buffs().Sweep()
		if len(removed) > 0 {
			total += len(removed)
			slog.Debug("buffs expired", "actor", a.ID(), "kinds", removed)
		}
		return true
	})
	return total
}

// RefreshMoveSpeed re-pushes movement speed, which drifts with hold time
// under some subclasses. Returns the number of actors whose speed changed.
func (l *Loop) RefreshMoveSpeed() int {
	changed := 0
	l.reg.ForEach(func(a *world.Actor) bool {
		if v, ok := l.speeds.SyncMoveSpeed(a); ok {
			changed++
			slog.Debug("move speed updated", "actor", a.ID(), "speed", v)
		}
		return true
	})
	return changed
}
