// Package engine decides which contiguous slice of a very large collection
// should currently be rendered, and keeps a running per-item size estimate
// from partial, noisy measurements delivered as rows scroll in and out of
// view. It renders nothing itself and owns no scroll surface: the rendering
// layer feeds it scroll geometry and measured row bounds, and gets back a
// window plus the data request to run for it.
//
// Exact measurement always beats estimation. Rows that were measured and
// then scrolled out stay on the books in a ledger, so the aggregate size
// reported for out-of-window regions never regresses to a guess.
package engine

import (
	"context"
	"errors"
	"log/slog"
)

// Configuration errors. These are fatal at setup: an engine is never
// constructed from an invalid configuration.
var (
	ErrNominalSize = errors.New("engine: nominal item size must be positive")
	ErrNoSource    = errors.New("engine: exactly one data source is required")
)

// Options configures a new engine.
type Options struct {
	// NominalSize is the assumed per-item size until measurements arrive.
	NominalSize float64
	// OverscanBefore and OverscanAfter are extra size budgets rendered
	// beyond the strict visible region to mask scroll latency.
	OverscanBefore float64
	OverscanAfter  float64
	// Capacity is the initial number of rendered slots.
	Capacity int
	// Count is the collection size if known up front; zero is fine for
	// asynchronous sources, the first fetch result fills it in.
	Count int
}

// Measurement is one scroll/resize notification from the display surface:
// the current geometry of the two spacers plus the exact bounds of every
// rendered row between them. Units are caller-defined but must be
// consistent.
type Measurement struct {
	// SpacerBefore is the rendered size of the leading spacer.
	SpacerBefore float64
	// SpacerGap is the distance between the two spacers, i.e. the size of
	// the rendered region.
	SpacerGap float64
	// Container is the size of the scroll container.
	Container float64
	// ScrollOffset is the current scroll distance from the top.
	ScrollOffset float64
	// Rows holds the exact bounds of the currently rendered rows.
	Rows RowBounds
	// BeforeSide tells which boundary's spacer crossed visibility and
	// triggered this notification.
	BeforeSide bool
}

// Engine is the windowing state for one rendered list. It is exclusively
// owned: all mutation happens on reconciliation passes (OnMeasurement,
// OnDataResult) that must never run concurrently for the same instance.
type Engine[T any] struct {
	src Source[T]
	est *Estimator
	led Ledger
	win Window

	overscanBefore float64
	overscanAfter  float64

	dirty bool
	err   error

	gen    uint64
	cancel context.CancelFunc

	items       []T
	loadedStart int
}

// New creates an engine over the given source.
func New[T any](opts Options, src Source[T]) (*Engine[T], error) {
	if opts.NominalSize <= 0 {
		return nil, ErrNominalSize
	}
	if src == nil {
		return nil, ErrNoSource
	}
	return &Engine[T]{
		src:            src,
		est:            NewEstimator(opts.NominalSize),
		overscanBefore: opts.OverscanBefore,
		overscanAfter:  opts.OverscanAfter,
		win: Window{
			Capacity: max(opts.Capacity, 0),
			Count:    max(opts.Count, 0),
		},
	}, nil
}

// CurrentWindow returns the reconciled window.
func (e *Engine[T]) CurrentWindow() Window {
	return e.win
}

// Estimate exposes the current average and minimum row size estimates.
func (e *Engine[T]) Estimate() (average, minimum float64) {
	return e.est.Average(), e.est.Minimum()
}

// Prime issues the fetch for the initial window. Call once before the first
// render.
func (e *Engine[T]) Prime() WindowChange {
	return WindowChange{Window: e.win, Request: e.issue()}
}

// OnMeasurement drives one reconciliation pass. The estimator refines its
// average from the measured rows, each boundary independently computes how
// many items it moves, and the window and ledger are updated and clamped.
// If the window changed, the returned WindowChange carries the request for
// the new range and ok is true; otherwise there is no externally visible
// effect.
func (e *Engine[T]) OnMeasurement(m Measurement) (wc WindowChange, ok bool) {
	e.est.Refine(m.Rows, &e.led)

	deltaTop := m.ScrollOffset - e.overscanBefore - m.SpacerBefore
	deltaBottom := m.ScrollOffset + m.Container + e.overscanAfter - (m.SpacerBefore + m.SpacerGap)

	if !e.adjust(deltaTop, deltaBottom, m.Rows) {
		return WindowChange{}, false
	}
	slog.Debug("window moved",
		"beforeSide", m.BeforeSide,
		"itemsBefore", e.win.ItemsBefore,
		"capacity", e.win.Capacity,
		"count", e.win.Count,
	)
	return WindowChange{Window: e.win, Request: e.issue()}, true
}

// SetCount lets a synchronous source report a changed collection size
// outside a fetch. The window and ledger are re-clamped against it.
func (e *Engine[T]) SetCount(count int) {
	e.win.Count = max(count, 0)
	if e.win.ItemsBefore+e.win.Capacity > e.win.Count {
		e.win.ItemsBefore = max(e.win.Count-e.win.Capacity, 0)
		e.win.Capacity = min(e.win.Capacity, e.win.Count)
	}
	e.led.Clamp(e.win.ItemsBefore, e.win.Trailing(), e.est.Average())
}

// Spacers returns the aggregate size to report for the regions before and
// after the window: exact ledger height where items were measured, average
// estimate for the rest.
func (e *Engine[T]) Spacers() (before, after float64) {
	avg := e.est.Average()
	beforeCount, beforeHeight := e.led.Before()
	afterCount, afterHeight := e.led.After()
	before = beforeHeight + float64(max(e.win.ItemsBefore-beforeCount, 0))*avg
	after = afterHeight + float64(max(e.win.Trailing()-afterCount, 0))*avg
	return before, after
}

// ItemAt returns the loaded item at the given absolute index, if the last
// applied fetch covers it. Indices outside the loaded range render as
// placeholders.
func (e *Engine[T]) ItemAt(index int) (T, bool) {
	var zero T
	i := index - e.loadedStart
	if i < 0 || i >= len(e.items) {
		return zero, false
	}
	return e.items[i], true
}

// Loaded returns the currently loaded range.
func (e *Engine[T]) Loaded() (start, count int) {
	return e.loadedStart, len(e.items)
}
