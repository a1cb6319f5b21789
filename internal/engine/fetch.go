package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
)

// Source supplies item data for an index range. Implementations must be
// safe for use from the goroutine running a fetch; the engine itself never
// calls them from more than one fetch at a time that it still cares about.
type Source[T any] interface {
	// Count reports the current collection size.
	Count(ctx context.Context) (int, error)
	// Slice returns the items in [start, start+count), clamped to the
	// collection bounds.
	Slice(ctx context.Context, start, count int) ([]T, error)
}

// Request describes the data slice the engine currently wants. A request is
// superseded, and its context canceled, the moment the window changes
// again; a superseded request's result is discarded on arrival no matter
// when it completes.
type Request struct {
	ID    uuid.UUID
	Start int
	Count int

	gen uint64
	ctx context.Context
}

// Valid reports whether the request was issued by an engine, as opposed to
// being the zero value.
func (r Request) Valid() bool {
	return r.ctx != nil
}

// Result carries the outcome of one fetch back to the engine.
type Result[T any] struct {
	Request Request
	Items   []T
	Total   int
	Err     error
}

// WindowChange tells the rendering layer that the window moved and which
// fetch to run for it.
type WindowChange struct {
	Window  Window
	Request Request
}

// issue supersedes any in-flight request and creates the next one. The
// previous fetch is signaled to stop but not waited for; its late result,
// if any, fails the generation check in OnDataResult.
func (e *Engine[T]) issue() Request {
	if e.cancel != nil {
		e.cancel()
	}
	ctx, cancel := context.WithCancel(context.Background())
	e.cancel = cancel
	e.gen++
	e.dirty = true
	req := Request{
		ID:    uuid.New(),
		Start: e.win.ItemsBefore,
		Count: e.win.Capacity,
		gen:   e.gen,
		ctx:   ctx,
	}
	slog.Debug("issuing data window request", "id", req.ID, "start", req.Start, "count", req.Count)
	return req
}

// Fetch runs the request against the source. It blocks and is meant to be
// called off the reconciliation path, typically inside a tea.Cmd. The
// returned result must be handed to OnDataResult.
func (e *Engine[T]) Fetch(req Request) Result[T] {
	res := Result[T]{Request: req}
	if !req.Valid() {
		res.Err = errors.New("fetch of zero request")
		return res
	}
	total, err := e.src.Count(req.ctx)
	if err != nil {
		res.Err = err
		return res
	}
	items, err := e.src.Slice(req.ctx, req.Start, req.Count)
	if err != nil {
		res.Err = err
		return res
	}
	res.Items = items
	res.Total = total
	return res
}

// OnDataResult applies a fetch result if it is still current. Results from
// superseded requests are dropped, as are cancellation errors; a genuine
// fetch failure is deferred for the rendering layer to pick up via Err.
// Reports whether the result was applied.
func (e *Engine[T]) OnDataResult(res Result[T]) bool {
	if res.Request.gen != e.gen {
		slog.Debug("discarding superseded data result", "id", res.Request.ID)
		return false
	}
	if res.Err != nil {
		if errors.Is(res.Err, context.Canceled) {
			return false
		}
		e.err = res.Err
		return false
	}

	e.items = res.Items
	e.loadedStart = res.Request.Start
	e.dirty = false

	if res.Total != e.win.Count {
		e.win.Count = res.Total
		if e.win.ItemsBefore+e.win.Capacity > e.win.Count {
			e.win.ItemsBefore = max(e.win.Count-e.win.Capacity, 0)
			e.win.Capacity = min(e.win.Capacity, e.win.Count)
		}
		e.led.Clamp(e.win.ItemsBefore, e.win.Trailing(), e.est.Average())
	}
	return true
}

// Err returns and clears the deferred fetch failure, if any. The rendering
// layer is expected to surface it; the engine never retries on its own.
func (e *Engine[T]) Err() error {
	err := e.err
	e.err = nil
	return err
}
