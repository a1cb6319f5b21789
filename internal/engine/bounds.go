package engine

import "github.com/vista-tui/vista/internal/slicesext"

// Bound is the measured top/bottom extent of a single rendered row, in
// whatever unit the caller renders in (terminal lines, pixels). Units only
// have to be consistent across one engine instance.
type Bound struct {
	Top    float64
	Bottom float64
}

// Height returns the measured height of the row.
func (b Bound) Height() float64 {
	return b.Bottom - b.Top
}

// RowBounds is the ordered front-to-back sequence of measured extents for
// the rows currently rendered between the two window boundaries. It is
// ephemeral: its effect is folded into the ledger and the estimator during
// a single reconciliation pass and it is not retained afterwards.
type RowBounds []Bound

// Heights returns the per-row heights, front to back.
func (rb RowBounds) Heights() []float64 {
	hs := make([]float64, len(rb))
	for i, b := range rb {
		hs[i] = b.Height()
	}
	return hs
}

// TotalHeight returns the summed height of all rows.
func (rb RowBounds) TotalHeight() float64 {
	return slicesext.PrefixSum(rb.Heights(), len(rb))
}

// PrefixHeight returns the summed height of the first n rows.
func (rb RowBounds) PrefixHeight(n int) float64 {
	return slicesext.PrefixSum(rb.Heights(), n)
}

// SuffixHeight returns the summed height of the last n rows.
func (rb RowBounds) SuffixHeight(n int) float64 {
	return slicesext.SuffixSum(rb.Heights(), n)
}
