package engine

// Window is the contiguous index range currently eligible for rendering.
type Window struct {
	// ItemsBefore is the index of the first item eligible for rendering.
	ItemsBefore int
	// Capacity is how many index slots, items or placeholders, are
	// currently rendered.
	Capacity int
	// Count is the total collection size as last reported.
	Count int
}

// Trailing returns the number of items past the end of the window.
func (w Window) Trailing() int {
	return max(w.Count-w.ItemsBefore-w.Capacity, 0)
}

// adjust applies one reconciliation pass: it asks the boundary calculator
// how far each boundary moves, updates the window, feeds the deltas to the
// ledger, and clamps everything against the collection size. It reports
// whether the window changed, which means a re-render and re-fetch are due.
//
// deltaTop is the compression budget of the top boundary (positive drops
// items, negative adds). deltaBottom is the compression budget of the
// bottom boundary, caller-negated per the shrink convention. Overscan is
// already folded into both by the caller.
func (e *Engine[T]) adjust(deltaTop, deltaBottom float64, rows RowBounds) bool {
	avg := e.est.Average()

	measuredBefore, _, unmeasuredBefore := shrinkBoundary(deltaTop, rows, true, avg)

	// The bottom boundary only gets to consume rows the top boundary did
	// not already claim.
	rest := rows[min(measuredBefore, len(rows)):]
	measuredAfter, _, unmeasuredAfter := shrinkBoundary(-deltaBottom, rest, false, avg)

	old := e.win
	win := old
	win.ItemsBefore = old.ItemsBefore + measuredBefore + unmeasuredBefore
	win.Capacity = min(old.Capacity, old.Count-old.ItemsBefore) -
		(measuredBefore + unmeasuredBefore) -
		(measuredAfter + unmeasuredAfter)

	// rest shares its back end with rows, so the suffix sums inside Apply
	// line up with the rows the bottom boundary consumed.
	e.led.Apply(rows, measuredBefore, unmeasuredBefore, measuredAfter, unmeasuredAfter, avg)

	win.ItemsBefore = max(win.ItemsBefore, 0)
	win.Capacity = max(win.Capacity, 0)
	if win.ItemsBefore+win.Capacity > win.Count {
		// The collection shrank under us, or the boundaries overshot the
		// end; pull the window back, never below zero.
		win.ItemsBefore = max(win.Count-win.Capacity, 0)
		win.Capacity = min(win.Capacity, win.Count)
	}
	e.win = win

	e.led.Clamp(win.ItemsBefore, win.Trailing(), avg)

	changed := win.ItemsBefore != old.ItemsBefore || win.Capacity != old.Capacity
	if changed {
		e.dirty = true
	}
	return changed
}
