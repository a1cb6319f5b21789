package engine

import "math"

// bucket aggregates items that were once rendered, got measured, and have
// since scrolled out of the window. count and height are zeroed together:
// one going non-positive while the other stays positive would corrupt
// future averaging.
type bucket struct {
	count  int
	height float64
}

func (b *bucket) add(n int, h float64) {
	b.count += n
	b.height += h
}

func (b *bucket) clampZero() {
	if b.count <= 0 || b.height <= 0 {
		b.count = 0
		b.height = 0
	}
}

// Ledger tracks the aggregate measured height and count of unrendered items
// immediately before and after the window. These aggregates are exact
// knowledge and always take precedence over averageSize*count whenever they
// cover an item.
type Ledger struct {
	before bucket
	after  bucket
}

// Before returns the count and summed height of measured items that have
// scrolled out above the window.
func (l *Ledger) Before() (int, float64) {
	return l.before.count, l.before.height
}

// After returns the count and summed height of measured items that have
// scrolled out below the window.
func (l *Ledger) After() (int, float64) {
	return l.after.count, l.after.height
}

// Apply reconciles one pass of boundary deltas into the buckets. Measured
// deltas are non-negative row counts converted to exact heights via prefix
// sums (front rows feed the before bucket, back rows the after bucket).
// Unmeasured deltas may be negative and are settled at the average size.
//
// When one boundary gains measured items while the opposite boundary loses
// the same count of unmeasured items, that shared count is the same
// physical rows seen from both sides, so it is booked at the just-measured
// height on both buckets instead of the coarser average. This is a
// heuristic under fast bidirectional scroll; the tie-break order
// (before-from-after, then after-from-before) is load-bearing.
func (l *Ledger) Apply(rows RowBounds, measuredBefore, unmeasuredBefore, measuredAfter, unmeasuredAfter int, avg float64) {
	heightBefore := rows.PrefixHeight(measuredBefore)
	heightAfter := rows.SuffixHeight(measuredAfter)

	if measuredBefore > 0 && unmeasuredAfter < 0 {
		n := min(measuredBefore, -unmeasuredAfter)
		h := rows.PrefixHeight(n)
		l.before.add(n, h)
		l.after.add(-n, -h)
		measuredBefore -= n
		heightBefore -= h
		unmeasuredAfter += n
	}
	if measuredAfter > 0 && unmeasuredBefore < 0 {
		n := min(measuredAfter, -unmeasuredBefore)
		h := rows.SuffixHeight(n)
		l.after.add(n, h)
		l.before.add(-n, -h)
		measuredAfter -= n
		heightAfter -= h
		unmeasuredBefore += n
	}

	l.before.add(measuredBefore, heightBefore)
	l.after.add(measuredAfter, heightAfter)

	// Remaining unmeasured deltas settle through a shared pool: a scroll
	// jump larger than the measured window moves items from one side to
	// the other without inventing or destroying height.
	var pool bucket
	if unmeasuredBefore < 0 {
		n := min(-unmeasuredBefore, l.before.count)
		h := math.Min(float64(n)*avg, l.before.height)
		l.before.add(-n, -h)
		pool.add(n, h)
	}
	if unmeasuredAfter < 0 {
		n := min(-unmeasuredAfter, l.after.count)
		h := math.Min(float64(n)*avg, l.after.height)
		l.after.add(-n, -h)
		pool.add(n, h)
	}
	if unmeasuredBefore > 0 {
		n, h := pool.draw(unmeasuredBefore, avg)
		l.before.add(n, h)
	}
	if unmeasuredAfter > 0 {
		n, h := pool.draw(unmeasuredAfter, avg)
		l.after.add(n, h)
	}

	l.before.clampZero()
	l.after.clampZero()
}

// draw removes up to n items from the pool at roughly the average size,
// clamped to what the pool actually holds.
func (b *bucket) draw(n int, avg float64) (int, float64) {
	n = min(n, b.count)
	if n <= 0 {
		return 0, 0
	}
	h := float64(n) * avg
	if n == b.count || h > b.height {
		h = b.height
	}
	b.add(-n, -h)
	return n, h
}

// Clamp caps the buckets at the number of items actually outside the
// window. A capped bucket recomputes its height as count*avg, deliberately
// trading exactness for consistency with the clamped window.
func (l *Ledger) Clamp(maxBefore, maxAfter int, avg float64) {
	if l.before.count > maxBefore {
		l.before.count = max(maxBefore, 0)
		l.before.height = float64(l.before.count) * avg
	}
	if l.after.count > maxAfter {
		l.after.count = max(maxAfter, 0)
		l.after.height = float64(l.after.count) * avg
	}
	l.before.clampZero()
	l.after.clampZero()
}
