package timeline_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrymomot/timeline"
	"github.com/dmitrymomot/timeline/core/logger"
)

// Server exposes subscription through the embedded Timeline and keeps
// emission to itself.
type Server struct {
	*timeline.Timeline
	emit *timeline.Emitter
}

func NewServer() *Server {
	s := &Server{}
	s.Timeline, s.emit = timeline.New(timeline.Moments{
		"started": nil,
		"request": timeline.Sum[int](),
	})
	return s
}

func (s *Server) Start(ctx context.Context) error {
	if err := s.emit.Log(ctx, "starting"); err != nil {
		return err
	}
	_, err := s.emit.Emit(ctx, "started", ":8080")
	return err
}

func (s *Server) Handle(ctx context.Context, path string) (int, error) {
	v, err := s.emit.Emit(ctx, "request", path)
	if err != nil || v == nil {
		return 0, err
	}
	return v.(int), nil
}

func Example() {
	ctx := context.Background()
	srv := NewServer()

	_, _ = srv.On().Log(timeline.LogFunc(func(ctx context.Context, message string, level timeline.Level) error {
		fmt.Printf("[%s] %s\n", level, message)
		return nil
	}))
	_, _ = srv.On().Moment("started")(func(ctx context.Context, args ...any) (any, error) {
		fmt.Println("listening on", args[0])
		return nil, nil
	})
	_, _ = srv.On().Moment("request")(func(ctx context.Context, args ...any) (any, error) {
		return 1, nil
	})
	_, _ = srv.On().Moment("request")(func(ctx context.Context, args ...any) (any, error) {
		return 2, nil
	})

	_ = srv.Start(ctx)
	hits, _ := srv.Handle(ctx, "/")
	fmt.Println("request total:", hits)

	// Output:
	// [info] starting
	// listening on :8080
	// request total: 3
}

func Example_escalation() {
	ctx := context.Background()
	tl, emit := timeline.New(timeline.Moments{"save": nil})

	_, _ = tl.On().Moment("save")(func(ctx context.Context, args ...any) (any, error) {
		return nil, errors.New("disk full")
	})

	_, err := emit.Emit(ctx, "save")
	fmt.Println(errors.Is(err, timeline.ErrUnhandledFailure))

	_, _ = tl.On().Error(timeline.ErrorFunc(func(ctx context.Context, err error) error {
		fmt.Printf("%s failed: %v\n", timeline.EscalatedFrom(ctx), err)
		return nil
	}))

	_, err = emit.Emit(ctx, "save")
	fmt.Println(err)

	// Output:
	// true
	// save failed: disk full
	// <nil>
}

func ExampleBehavior() {
	tl, _ := timeline.New(nil)
	on := tl.On().Moment("ready")

	noop := func(ctx context.Context, args ...any) (any, error) { return nil, nil }

	list, _ := on(noop)
	fmt.Println(len(list))
	list, _ = on(noop, timeline.Prepend)
	fmt.Println(len(list))
	list, _ = on(noop, timeline.Replace)
	fmt.Println(len(list))

	// Output:
	// 1
	// 2
	// 1
}

func ExampleSlogObserver() {
	log := logger.New(logger.WithDevelopment("api"))

	tl, emit := timeline.New(nil, timeline.WithLogger(log))
	_, _ = tl.On().Log(timeline.SlogObserver(log))
	_, _ = tl.On().Error(timeline.ErrorLogObserver(log))

	_ = emit.LogAt(context.Background(), timeline.LevelWarning, "cache miss rate high")
}
