package engine

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingSource struct {
	err error
}

func (s *failingSource) Count(context.Context) (int, error) {
	return 0, s.err
}

func (s *failingSource) Slice(context.Context, int, int) ([]int, error) {
	return nil, s.err
}

func TestPrimeFetchesInitialWindow(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Options{NominalSize: 50, Capacity: 20}, 100)
	wc := e.Prime()
	require.True(t, wc.Request.Valid())
	require.Equal(t, 0, wc.Request.Start)
	require.Equal(t, 20, wc.Request.Count)

	res := e.Fetch(wc.Request)
	require.NoError(t, res.Err)
	require.Len(t, res.Items, 20)
	require.Equal(t, 100, res.Total)

	require.True(t, e.OnDataResult(res))
	require.Equal(t, 100, e.CurrentWindow().Count)

	item, ok := e.ItemAt(7)
	require.True(t, ok)
	require.Equal(t, 7, item)

	_, ok = e.ItemAt(20)
	require.False(t, ok, "indices outside the loaded range are placeholders")
}

func TestSupersededResultIsDiscarded(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Options{NominalSize: 40, Capacity: 20, Count: 100}, 100)
	rows := make([]float64, 20)
	for i := range rows {
		rows[i] = 40
	}

	// Request A for [0, 20).
	reqA := e.Prime().Request
	resA := e.Fetch(reqA)
	require.NoError(t, resA.Err)

	// Before A's result is applied, a scroll supersedes it with request B
	// for [10, 30).
	wc, ok := e.OnMeasurement(Measurement{
		SpacerGap:    800,
		Container:    800,
		ScrollOffset: 400,
		Rows:         rowsOf(rows...),
	})
	require.True(t, ok)
	reqB := wc.Request
	require.Equal(t, 10, reqB.Start)

	// A completed first, but it is stale: it must not mutate state.
	require.False(t, e.OnDataResult(resA))
	start, count := e.Loaded()
	require.Zero(t, start)
	require.Zero(t, count)

	// A's context is canceled; a late-running fetch of A comes back with a
	// cancellation, which is swallowed, never surfaced.
	require.ErrorIs(t, reqA.ctx.Err(), context.Canceled)
	require.False(t, e.OnDataResult(Result[int]{Request: reqA, Err: context.Canceled}))
	require.NoError(t, e.Err())

	// Only B's result lands.
	resB := e.Fetch(reqB)
	require.NoError(t, resB.Err)
	require.True(t, e.OnDataResult(resB))
	start, count = e.Loaded()
	require.Equal(t, 10, start)
	require.Equal(t, 20, count)
}

func TestAtMostOneResultPerGeneration(t *testing.T) {
	t.Parallel()

	e := newTestEngine(t, Options{NominalSize: 40, Capacity: 10, Count: 50}, 50)
	req := e.Prime().Request
	res := e.Fetch(req)
	require.True(t, e.OnDataResult(res))

	// Re-issuing invalidates everything from earlier generations, even the
	// request that was just applied.
	e.issue()
	require.False(t, e.OnDataResult(res))
}

func TestFetchFailureIsDeferred(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	e, err := New(Options{NominalSize: 40, Capacity: 10}, &failingSource{err: boom})
	require.NoError(t, err)

	req := e.Prime().Request
	res := e.Fetch(req)
	require.ErrorIs(t, res.Err, boom)

	require.False(t, e.OnDataResult(res))

	// The failure is handed to the rendering layer exactly once.
	require.ErrorIs(t, e.Err(), boom)
	require.NoError(t, e.Err())
}

func TestShrinkingTotalClampsOnApply(t *testing.T) {
	t.Parallel()

	src := &sliceSource[int]{items: make([]int, 100)}
	e, err := New(Options{NominalSize: 40, Capacity: 20, Count: 100}, src)
	require.NoError(t, err)
	e.win.ItemsBefore = 80

	// The source shrank to 3 items; applying its next result pulls the
	// window back.
	src.items = src.items[:3]
	req := e.issue()
	res := e.Fetch(req)
	require.True(t, e.OnDataResult(res))

	w := e.CurrentWindow()
	require.Equal(t, 3, w.Count)
	requireWindowInvariant(t, w)
}
