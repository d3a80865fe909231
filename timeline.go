package timeline

import (
	"context"
	"log/slog"
	"slices"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/timeline/core/logger"
)

// Virtual moments exist on every timeline, declared or not.
const (
	MomentLog   = "log"
	MomentError = "error"
)

// Observer is a function registered against a moment. It receives the
// moment's invocation arguments; the owning timeline and dispatch metadata
// travel in ctx (see FromContext). A returned Deferred is awaited.
type Observer func(ctx context.Context, args ...any) (any, error)

// Combinator decides how a moment's observers are invoked and how their
// results are combined. It receives a snapshot of the observer list in
// registration order. Combinators are bound to their instance by closing
// over it.
type Combinator func(ctx context.Context, observers []Observer, args ...any) (any, error)

// Moments is the moment table: moment name to combinator. A nil combinator
// declares the moment with the Broadcast behavior.
type Moments map[string]Combinator

// Timeline is the extensible object. It owns an observer registry and an
// immutable moment table. Types that expose a pluggable lifecycle embed
// *Timeline and keep the *Emitter returned by New to themselves.
type Timeline struct {
	id            string
	name          string
	moments       Moments
	registry      *registry
	logger        *slog.Logger
	recoverPanics bool
	defaultLevel  Level

	on   *Subscriber
	emit *Emitter

	dispatched     atomic.Int64
	failed         atomic.Int64
	escalated      atomic.Int64
	unhandled      atomic.Int64
	lastDispatchAt atomic.Int64
}

// Stats provides dispatch counters for observability and debugging.
type Stats struct {
	Dispatched     int64 // moment invocations that reached a combinator
	Failed         int64 // combinator failures, including in the error moment
	Escalated      int64 // failures converted into error moment dispatches
	Unhandled      int64 // error moment emits with no observers
	LastDispatchAt time.Time
}

// New creates a timeline with the given moment table and returns it together
// with its emitter. The table is copied; changing the caller's map afterwards
// has no effect.
//
// Example:
//
//	type Server struct {
//	    *timeline.Timeline
//	    emit *timeline.Emitter
//	}
//
//	func NewServer() *Server {
//	    s := &Server{}
//	    s.Timeline, s.emit = timeline.New(timeline.Moments{
//	        "started": nil,
//	        "request": timeline.First(),
//	    })
//	    return s
//	}
func New(moments Moments, opts ...Option) (*Timeline, *Emitter) {
	t := &Timeline{
		id:            uuid.NewString(),
		moments:       make(Moments, len(moments)),
		registry:      newRegistry(),
		logger:        logger.Discard(),
		recoverPanics: true,
		defaultLevel:  DefaultLevel,
	}

	for name, combine := range moments {
		t.moments[name] = combine
	}

	for _, opt := range opts {
		opt(t)
	}

	t.on = newSubscriber(t)
	t.emit = newEmitter(t)

	t.logger = t.logger.With(
		logger.Component("timeline"),
		logger.TimelineID(t.id),
	)
	if t.name != "" {
		t.logger = t.logger.With(slog.String("timeline", t.name))
	}

	return t, t.emit
}

// ID returns the instance's unique identifier.
func (t *Timeline) ID() string {
	return t.id
}

// Name returns the name set with WithName or WithConfig, if any.
func (t *Timeline) Name() string {
	return t.name
}

// On returns the subscription accessor. The same value is returned on every call.
func (t *Timeline) On() *Subscriber {
	return t.on
}

// Moments returns the declared moment names in sorted order.
// Virtual moments are included only when the table declares them.
func (t *Timeline) Moments() []string {
	names := make([]string, 0, len(t.moments))
	for name := range t.moments {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Declared reports whether name is in the moment table or is a virtual moment.
func (t *Timeline) Declared(name string) bool {
	if isVirtual(name) {
		return true
	}
	_, ok := t.moments[name]
	return ok
}

// Observers returns a copy of the observers currently registered for name.
func (t *Timeline) Observers(name string) []Observer {
	return t.registry.snapshot(name)
}

// HasObservers reports whether any observer was ever registered for name.
func (t *Timeline) HasObservers(name string) bool {
	return t.registry.has(name)
}

// Stats returns current dispatch counters.
func (t *Timeline) Stats() Stats {
	var last time.Time
	if ns := t.lastDispatchAt.Load(); ns > 0 {
		last = time.Unix(0, ns)
	}

	return Stats{
		Dispatched:     t.dispatched.Load(),
		Failed:         t.failed.Load(),
		Escalated:      t.escalated.Load(),
		Unhandled:      t.unhandled.Load(),
		LastDispatchAt: last,
	}
}

// combinator returns the declared combinator for name, falling back to Broadcast.
func (t *Timeline) combinator(name string) Combinator {
	if combine := t.moments[name]; combine != nil {
		return combine
	}
	return Broadcast
}

// recoversPanics reports whether the timeline dispatching ctx recovers
// panics. Outside a dispatch, recovery is on.
func recoversPanics(ctx context.Context) bool {
	tl := FromContext(ctx)
	return tl == nil || tl.recoverPanics
}

func isVirtual(name string) bool {
	return name == MomentLog || name == MomentError
}
