// Package sensor abstracts the device geolocation source. The device
// is an external collaborator: positions arrive as asynchronous
// callbacks and failures carry a typed reason. Watches are explicit
// handles; callers must stop them or the subscription leaks.
package sensor

import (
	"context"
	"sync"
	"time"
)

// FailureCode classifies a sensor failure
type FailureCode string

const (
	// PermissionDenied means sensor access was refused. Terminal until
	// the user intervenes; watchers must not retry automatically.
	PermissionDenied FailureCode = "permission_denied"
	// PositionUnavailable means the fix could not be acquired. Transient.
	PositionUnavailable FailureCode = "position_unavailable"
	// Timeout means no fix arrived within the bounded wait. Transient.
	Timeout FailureCode = "timeout"
)

// Transient reports whether a watcher should stay subscribed and rely
// on the next callback to recover
func (c FailureCode) Transient() bool {
	return c == PositionUnavailable || c == Timeout
}

// Failure is a typed sensor error
type Failure struct {
	Code    FailureCode
	Message string
}

func (f Failure) Error() string {
	if f.Message == "" {
		return string(f.Code)
	}
	return string(f.Code) + ": " + f.Message
}

// Position is one sensor callback payload
type Position struct {
	Latitude   float64
	Longitude  float64
	CapturedAt time.Time
}

// Options configures a watch
type Options struct {
	// Timeout bounds the wait for the first fix; a Timeout failure is
	// delivered if it elapses, rather than hanging indefinitely.
	Timeout      time.Duration
	HighAccuracy bool
	MaximumAge   time.Duration
}

// Watch is a live sensor subscription. Positions and Failures are
// closed when the watch stops.
type Watch interface {
	Positions() <-chan Position
	Failures() <-chan Failure
	Stop()
}

// Source yields position watches
type Source interface {
	Watch(ctx context.Context, opts Options) (Watch, error)
}

// Feed is a Source fed by an external stream of device frames, such as
// a driver's WebSocket connection. It supports one watch at a time.
type Feed struct {
	mu       sync.Mutex
	watch    *feedWatch
	acquired bool
	watches  int // live watch count, observable by tests
}

// NewFeed creates an empty feed
func NewFeed() *Feed {
	return &Feed{}
}

// Watch starts a watch over the feed. The watch delivers a Timeout
// failure if no position arrives within opts.Timeout, then stays
// subscribed.
func (f *Feed) Watch(ctx context.Context, opts Options) (Watch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watch != nil {
		f.watch.stop()
	}

	w := &feedWatch{
		feed:      f,
		positions: make(chan Position, 16),
		failures:  make(chan Failure, 4),
	}
	f.watch = w
	f.acquired = false
	f.watches++

	if opts.Timeout > 0 {
		w.timer = time.AfterFunc(opts.Timeout, func() {
			f.mu.Lock()
			defer f.mu.Unlock()
			if f.watch != w || f.acquired || w.stopped {
				return
			}
			select {
			case w.failures <- Failure{Code: Timeout, Message: "no position within timeout"}:
			default:
			}
		})
	}

	return w, nil
}

// Push delivers a device position to the active watch, if any
func (f *Feed) Push(pos Position) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watch == nil || f.watch.stopped {
		return
	}
	f.acquired = true
	select {
	case f.watch.positions <- pos:
	default:
		// Watcher is behind; drop the sample. The next one supersedes it.
	}
}

// Fail delivers a device failure to the active watch, if any
func (f *Feed) Fail(failure Failure) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.watch == nil || f.watch.stopped {
		return
	}
	select {
	case f.watch.failures <- failure:
	default:
	}
}

// ActiveWatches returns the number of live watches on the feed
func (f *Feed) ActiveWatches() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.watches
}

type feedWatch struct {
	feed      *Feed
	positions chan Position
	failures  chan Failure
	timer     *time.Timer
	stopped   bool
}

func (w *feedWatch) Positions() <-chan Position { return w.positions }
func (w *feedWatch) Failures() <-chan Failure   { return w.failures }

// Stop cancels the watch and closes its channels. Idempotent.
func (w *feedWatch) Stop() {
	w.feed.mu.Lock()
	defer w.feed.mu.Unlock()
	w.stop()
	if w.feed.watch == w {
		w.feed.watch = nil
	}
}

// stop must be called with the feed mutex held
func (w *feedWatch) stop() {
	if w.stopped {
		return
	}
	w.stopped = true
	w.feed.watches--
	if w.timer != nil {
		w.timer.Stop()
	}
	close(w.positions)
	close(w.failures)
}
