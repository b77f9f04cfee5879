package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/jmylchreest/taliesin/internal/config"
	"github.com/jmylchreest/taliesin/internal/keyboard"
	"github.com/jmylchreest/taliesin/internal/notify"
)

// Playback plays a sound file to completion.
type Playback interface {
	Play(ctx context.Context, path string) error
}

// resultBuffer bounds playback failures waiting for the loop.
const resultBuffer = 16

type playbackResult struct {
	id  string
	err error
}

// Option configures a Loop.
type Option func(*Loop)

// WithClock replaces the system clock.
func WithClock(c Clock) Option {
	return func(l *Loop) { l.clock = c }
}

// WithYield replaces the per-iteration yield.
func WithYield(f func()) Option {
	return func(l *Loop) { l.yield = f }
}

// WithIDs replaces the playback id generator.
func WithIDs(f func() string) Option {
	return func(l *Loop) { l.newID = f }
}

// Loop polls the keyboard, drives the Machine and spawns playbacks.
type Loop struct {
	cfg     *config.Config
	machine *Machine
	source  keyboard.Source
	player  Playback
	sink    notify.Sink
	logger  *slog.Logger

	clock Clock
	yield func()
	newID func() string

	last    time.Time
	results chan playbackResult
	wg      sync.WaitGroup
}

// NewLoop creates a loop. A nil sink discards events.
func NewLoop(cfg *config.Config, source keyboard.Source, player Playback, sink notify.Sink, logger *slog.Logger, opts ...Option) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	if sink == nil {
		sink = notify.Multi{}
	}

	l := &Loop{
		cfg:     cfg,
		machine: NewMachine(cfg),
		source:  source,
		player:  player,
		sink:    sink,
		logger:  logger,
		clock:   SystemClock,
		newID:   func() string { return ulid.Make().String() },
		results: make(chan playbackResult, resultBuffer),
	}
	l.yield = l.defaultYield

	for _, opt := range opts {
		opt(l)
	}
	return l
}

// State returns the machine's timer state. Only safe from the loop goroutine
// or after Run has returned.
func (l *Loop) State() State { return l.machine.State() }

// Run polls until ctx is done. It returns nil on cancellation and an error
// only when the keyboard source fails. Playback failures never stop the loop.
func (l *Loop) Run(ctx context.Context) error {
	l.start()
	l.logger.Debug("trigger loop started",
		"keys", l.cfg.Keys.String(),
		"cancel_keys", l.cfg.CancelKeys.String(),
		"delay", l.cfg.Delay,
		"ignore_duration", l.cfg.IgnoreDuration)

	for {
		select {
		case <-ctx.Done():
			l.drainResults()
			return nil
		default:
		}

		if err := l.iterate(ctx); err != nil {
			return err
		}
		l.yield()
	}
}

// Wait blocks until every spawned playback has returned.
func (l *Loop) Wait() {
	l.wg.Wait()
	l.drainResults()
}

func (l *Loop) start() {
	l.last = l.clock.Now()
}

// iterate runs one loop body: report finished playbacks, advance the timer,
// read the keyboard and apply the snapshot.
func (l *Loop) iterate(ctx context.Context) error {
	l.drainResults()

	now := l.clock.Now()
	delta := now.Sub(l.last)
	l.last = now

	for _, ev := range l.machine.Advance(delta) {
		l.dispatch(ctx, ev)
	}

	snapshot, err := l.source.Pressed()
	if err != nil {
		return fmt.Errorf("reading keyboard state: %w", err)
	}

	for _, ev := range l.machine.Observe(snapshot) {
		l.dispatch(ctx, ev)
	}
	return nil
}

func (l *Loop) dispatch(ctx context.Context, ev notify.Event) {
	switch ev.Kind {
	case notify.Played:
		ev.PlaybackID = l.newID()
		l.spawnPlayback(ctx, ev.PlaybackID)
		l.logger.Debug("timer expired, playing sound", "file", ev.File, "playback_id", ev.PlaybackID)
	case notify.TimerStarted:
		l.logger.Debug("timer started", "delay", ev.Delay)
	case notify.TimerCleared:
		l.logger.Debug("timer cleared")
	}
	l.sink.Notify(ev)
}

// spawnPlayback plays the sound on its own goroutine. Failures are handed
// back to the loop through the results channel.
func (l *Loop) spawnPlayback(ctx context.Context, id string) {
	file := l.cfg.File

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()

		err := l.player.Play(ctx, file)
		if err == nil {
			l.logger.Debug("playback finished", "file", file, "playback_id", id)
			return
		}
		if ctx.Err() != nil && errors.Is(err, ctx.Err()) {
			return
		}

		select {
		case l.results <- playbackResult{id: id, err: err}:
		default:
			l.logger.Error("playback failed", "file", file, "playback_id", id, "error", err)
		}
	}()
}

// drainResults reports finished playback failures without blocking.
func (l *Loop) drainResults() {
	for {
		select {
		case res := <-l.results:
			l.logger.Warn("playback failed", "file", l.cfg.File, "playback_id", res.id, "error", res.err)
			l.sink.Notify(notify.Event{
				Kind:       notify.PlaybackFailed,
				File:       l.cfg.File,
				PlaybackID: res.id,
				Err:        res.err,
			})
		default:
			return
		}
	}
}

func (l *Loop) defaultYield() {
	if l.cfg.PollInterval > 0 {
		time.Sleep(l.cfg.PollInterval)
		return
	}
	runtime.Gosched()
}
