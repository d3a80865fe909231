package timeline_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/timeline"
)

func TestNew_CopiesMomentTable(t *testing.T) {
	t.Parallel()

	moments := timeline.Moments{"a": nil, "b": timeline.Collect()}
	tl, emit := timeline.New(moments)

	moments["c"] = nil
	moments["b"] = timeline.Sum[int]()

	assert.Equal(t, []string{"a", "b"}, tl.Moments())
	assert.False(t, tl.Declared("c"))

	_, err := tl.On().Moment("b")(returning(5))
	require.NoError(t, err)
	v, err := emit.Emit(context.Background(), "b")
	require.NoError(t, err)
	assert.Equal(t, []any{5}, v, "the combinator captured at construction is used")
}

func TestTimeline_Introspection(t *testing.T) {
	t.Parallel()

	tl, _ := timeline.New(timeline.Moments{"started": nil}, timeline.WithName("api"))

	_, err := uuid.Parse(tl.ID())
	assert.NoError(t, err)
	assert.Equal(t, "api", tl.Name())

	assert.True(t, tl.Declared("started"))
	assert.True(t, tl.Declared(timeline.MomentLog))
	assert.True(t, tl.Declared(timeline.MomentError))
	assert.False(t, tl.Declared("stopped"))

	assert.False(t, tl.HasObservers("started"))
	assert.Empty(t, tl.Observers("started"))

	_, err = tl.On().Moment("started")(returning(nil))
	require.NoError(t, err)
	assert.True(t, tl.HasObservers("started"))
	assert.Len(t, tl.Observers("started"), 1)

	other, _ := timeline.New(nil)
	assert.NotEqual(t, tl.ID(), other.ID())
}

func TestTimeline_AccessorsAreMemoized(t *testing.T) {
	t.Parallel()

	tl, emit := timeline.New(timeline.Moments{"started": nil})

	assert.Same(t, tl.On(), tl.On())
	assert.NotNil(t, tl.On().Moment("started"))
	assert.NotNil(t, tl.On().Moment("undeclared"))
	assert.NotNil(t, emit.Moment("undeclared"))

	// Functions fetched twice for the same name act on the same registry list.
	first, err := tl.On().Moment("undeclared")(returning(nil))
	require.NoError(t, err)
	second, err := tl.On().Moment("undeclared")(returning(nil))
	require.NoError(t, err)
	assert.Len(t, first, 1)
	assert.Len(t, second, 2)
}

func TestTimeline_ObserversIsACopy(t *testing.T) {
	t.Parallel()

	tl, _ := timeline.New(nil)
	_, err := tl.On().Moment("x")(returning(1))
	require.NoError(t, err)

	list := tl.Observers("x")
	list[0] = nil

	assert.NotNil(t, tl.Observers("x")[0])
}
