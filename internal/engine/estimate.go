package engine

// Estimator maintains the running per-item size estimate. The average is
// weighted over every size ever measured: the two ledger buckets plus the
// rows measured in the current pass. The minimum only ever goes down, and
// is what placeholders should be sized at so they never overshoot a real
// row.
type Estimator struct {
	nominal float64
	average float64 // 0 means no usable estimate yet
	minimum float64
}

// NewEstimator creates an estimator seeded with the caller-supplied nominal
// row size. The nominal size must be positive; it is the fallback whenever
// no measurement-based estimate is available.
func NewEstimator(nominal float64) *Estimator {
	return &Estimator{
		nominal: nominal,
		minimum: nominal,
	}
}

// Refine recomputes the average from the ledger aggregates plus the freshly
// measured rows, and lowers the minimum to any smaller positive row height
// found. A degenerate average (zero samples, or all rows reporting zero
// height) leaves the previous estimate in place.
func (e *Estimator) Refine(rows RowBounds, led *Ledger) {
	beforeCount, beforeHeight := led.Before()
	afterCount, afterHeight := led.After()

	count := beforeCount + afterCount + len(rows)
	if count > 0 {
		avg := (beforeHeight + afterHeight + rows.TotalHeight()) / float64(count)
		if avg > 0 {
			e.average = avg
		}
	}

	for _, b := range rows {
		if h := b.Height(); h > 0 && h < e.minimum {
			e.minimum = h
		}
	}
}

// Average returns the current average row size, falling back to the nominal
// size while no usable estimate exists.
func (e *Estimator) Average() float64 {
	if e.average > 0 {
		return e.average
	}
	return e.nominal
}

// Minimum returns the smallest positive row height observed so far, seeded
// at the nominal size.
func (e *Estimator) Minimum() float64 {
	return e.minimum
}
