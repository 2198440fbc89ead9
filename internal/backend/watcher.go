package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/popmenu/internal/tmux"
)

// FocusSource reports the current tmux focus.
type FocusSource interface {
	Focus() (tmux.Focus, error)
}

// Event conveys a focus sample or the error that replaced it.
type Event struct {
	Focus tmux.Focus
	Err   error
	At    time.Time
}

// Watcher polls a FocusSource at a fixed interval and publishes events.
type Watcher struct {
	source   FocusSource
	interval time.Duration

	ctx    context.Context
	cancel context.CancelFunc

	events chan Event
	wg     sync.WaitGroup

	mu     sync.RWMutex
	latest Event
}

// NewWatcher creates a watcher that samples source every interval.
func NewWatcher(source FocusSource, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		interval: interval,
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 16),
	}

	throttle := newThrottle(interval / 2)
	w.wg.Add(1)
	go w.poll(func(ctx context.Context) (Event, bool) {
		if !throttle.wait(ctx) {
			return Event{}, false
		}
		focus, err := w.source.Focus()
		return Event{Focus: focus, Err: err, At: time.Now()}, true
	})

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of focus events. Events are dropped when nobody
// drains the channel; Latest always holds the newest sample.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Latest returns the most recent sample.
func (w *Watcher) Latest() Event {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.latest
}

// Stop cancels the watcher. The poller exits after its current fetch
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller goroutine has exited and the events channel
// is closed. Call after Stop when a clean shutdown is required.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll(fetch func(context.Context) (Event, bool)) {
	defer w.wg.Done()

	emit := func() bool {
		evt, ok := fetch(w.ctx)
		if !ok {
			return false
		}
		w.mu.Lock()
		w.latest = evt
		w.mu.Unlock()
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
		default:
		}
		return true
	}

	if !emit() {
		return
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			if !emit() {
				return
			}
		}
	}
}
