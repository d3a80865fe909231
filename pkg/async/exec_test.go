package async_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeline/pkg/async"
)

func TestExec(t *testing.T) {
	t.Parallel()

	type Input struct {
		X int
		Y int
	}

	future := async.Exec(context.Background(), Input{X: 10, Y: 15}, func(ctx context.Context, in Input) error {
		if in.X+in.Y != 25 {
			return errors.New("sum is not 25")
		}
		return nil
	})

	require.NoError(t, future.Await())
	assert.True(t, future.IsComplete())
}

func TestExecErrorPropagation(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("an error occurred in the exec function")
	future := async.Exec(context.Background(), 42, func(ctx context.Context, num int) error {
		return expectedErr
	})

	assert.ErrorIs(t, future.Await(), expectedErr)

	val, err := future.Value()
	assert.Nil(t, val)
	assert.ErrorIs(t, err, expectedErr)
}

func TestExecContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	future := async.Exec(ctx, 42, func(ctx context.Context, num int) error {
		called = true
		return nil
	})

	assert.ErrorIs(t, future.Await(), context.Canceled)
	assert.False(t, called, "function must not run with a canceled context")
}

func TestExecPanicRecovery(t *testing.T) {
	t.Parallel()

	future := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
		panic("boom")
	})

	err := future.Await()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

func TestExecDone(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	future := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
		<-release
		return nil
	})

	assert.False(t, future.IsComplete())
	select {
	case <-future.Done():
		t.Fatal("future settled before release")
	default:
	}

	close(release)

	select {
	case <-future.Done():
	case <-time.After(time.Second):
		t.Fatal("future did not settle")
	}
	assert.True(t, future.IsComplete())
}

func TestExecConcurrentIncrement(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	counter := 0

	futures := make([]*async.ExecFuture, 0, 1000)
	for range 1000 {
		futures = append(futures, async.Exec(context.Background(), 1, func(ctx context.Context, delta int) error {
			mu.Lock()
			defer mu.Unlock()
			counter += delta
			return nil
		}))
	}

	require.NoError(t, async.ExecAll(futures...))
	assert.Equal(t, 1000, counter)
}

func TestExecAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	fast := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
		return nil
	})
	assert.NoError(t, fast.AwaitWithTimeout(time.Second))

	release := make(chan struct{})
	defer close(release)
	slow := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
		<-release
		return nil
	})
	assert.ErrorIs(t, slow.AwaitWithTimeout(20*time.Millisecond), async.ErrTimeout)
}

func TestExecAllWithError(t *testing.T) {
	t.Parallel()

	expectedErr := errors.New("error from future2")
	ok := func(ctx context.Context, _ int) error { return nil }

	err := async.ExecAll(
		async.Exec(context.Background(), 0, ok),
		async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error { return expectedErr }),
		async.Exec(context.Background(), 0, ok),
	)
	assert.ErrorIs(t, err, expectedErr)
}

func TestExecAny(t *testing.T) {
	t.Parallel()

	t.Run("no futures", func(t *testing.T) {
		t.Parallel()
		index, err := async.ExecAny()
		assert.Equal(t, -1, index)
		assert.ErrorIs(t, err, async.ErrNoFutures)
	})

	t.Run("first to finish wins", func(t *testing.T) {
		t.Parallel()

		release := make(chan struct{})
		defer close(release)
		expectedErr := errors.New("error from fast future")

		blocked := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
			<-release
			return nil
		})
		fast := async.Exec(context.Background(), 0, func(ctx context.Context, _ int) error {
			return expectedErr
		})

		index, err := async.ExecAny(blocked, fast)
		assert.Equal(t, 1, index)
		assert.ErrorIs(t, err, expectedErr)
	})
}

func TestNilExecFuture(t *testing.T) {
	t.Parallel()

	var f *async.ExecFuture

	assert.ErrorIs(t, f.Await(), async.ErrNilFuture)
	assert.ErrorIs(t, f.AwaitWithTimeout(time.Millisecond), async.ErrNilFuture)
	assert.True(t, f.IsComplete())

	select {
	case <-f.Done():
	default:
		t.Fatal("nil future should count as settled")
	}

	_, err := f.Value()
	assert.ErrorIs(t, err, async.ErrNilFuture)
	assert.ErrorIs(t, async.ExecAll(f), async.ErrNilFuture)
}
