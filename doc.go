// Package timeline provides an extension-point dispatch core: a type declares
// a fixed set of named moments, consumers attach observers to any moment, and
// the type invokes a moment's combinator over its observers at runtime.
//
// # Core Components
//
// Timeline owns the observer registry and the immutable moment table given to
// New. Types embed *Timeline to expose subscription to their consumers.
//
// Emitter invokes moments. New returns it only to the owning type, which keeps
// it in an unexported field: consumers can subscribe, only the owner can emit.
//
// Subscriber (Timeline.On) hands out one cached registration function per
// moment. Observers are added with one of three behaviors: Add (append),
// Prepend, or Replace (drop every earlier observer of that moment).
//
// Combinator decides how a moment's observers run. Moments without a
// combinator use Broadcast: observers are called one after another in
// registration order, deferred results are awaited before the next call, and
// results are discarded.
//
// # Virtual Moments
//
// Every timeline has a log and an error moment, declared or not. Emitter.Log
// and Emitter.Error are shortcuts for emitting them.
//
// # Error Escalation
//
// When a moment's combinator fails (returns an error or panics), the failure
// is emitted on the error moment and the original Emit returns nil if an
// error observer handled it. When the error moment itself fails, the failure
// is returned to the caller unchanged. Emitting the error moment with no
// observers returns *UnhandledFailureError.
//
// # Basic Usage
//
//	type Server struct {
//		*timeline.Timeline
//		emit *timeline.Emitter
//	}
//
//	func NewServer(log *slog.Logger) *Server {
//		s := &Server{}
//		s.Timeline, s.emit = timeline.New(timeline.Moments{
//			"started": nil, // broadcast
//			"load":    timeline.Sum[int](),
//		}, timeline.WithLogger(log))
//		return s
//	}
//
//	func (s *Server) Start(ctx context.Context) error {
//		_, err := s.emit.Emit(ctx, "started", s.addr)
//		return err
//	}
//
//	// Consumer side
//	srv := NewServer(log)
//	srv.On().Moment("started")(func(ctx context.Context, args ...any) (any, error) {
//		fmt.Println("listening on", args[0])
//		return nil, nil
//	})
//	srv.On().Log(timeline.SlogObserver(log))
//	srv.On().Error(timeline.ErrorLogObserver(log))
//
// # Typed Moments
//
// Hook gives a moment a compile-time checked argument and result type:
//
//	var Load = timeline.NewHook[string, int]("load")
//
//	Load.On(srv.Timeline, func(ctx context.Context, route string) (int, error) {
//		return 1, nil
//	})
//	total, err := Load.Emit(ctx, s.emit, "/health")
//
// # Deferred Results
//
// An observer can return a Deferred (for example *async.Future) instead of a
// plain value. Combinators in this package wait for it to settle before
// calling the next observer, so side effects stay ordered by registration.
//
// # Thread Safety
//
// Registration and dispatch may run on different goroutines. The registry is
// guarded by a mutex and every dispatch works on a snapshot of the observer
// list, so an observer may register further observers while it runs; they
// take effect from the next dispatch.
package timeline
