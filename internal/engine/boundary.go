package engine

import "math"

// shrinkBoundary computes how many items a window boundary moves when it is
// compressed by up to maxHeight. A negative maxHeight means the boundary is
// expanding: more items become eligible.
//
// The calculation is two-phase. Rows with exact measurements are consumed
// greedily from the given end, stopping just before the cumulative height
// would exceed the budget. Only the leftover budget, if any, is converted
// to items with the average estimate, so estimation error never compounds
// across rows that were actually measured.
//
// The estimated remainder divides toward negative infinity: a negative
// leftover rounds away from zero, so an expanding boundary never
// under-counts. unmeasured may therefore be negative, reclaiming rendered
// but unmeasured placeholder slots.
func shrinkBoundary(maxHeight float64, rows RowBounds, fromFront bool, avg float64) (measured int, measuredHeight float64, unmeasured int) {
	if maxHeight > 0 {
		for measured < len(rows) {
			var h float64
			if fromFront {
				h = rows[measured].Height()
			} else {
				h = rows[len(rows)-1-measured].Height()
			}
			if measuredHeight+h > maxHeight {
				break
			}
			measured++
			measuredHeight += h
		}
	}

	if measured == len(rows) || maxHeight < 0 {
		leftover := maxHeight - measuredHeight
		if avg > 0 {
			unmeasured = int(math.Floor(leftover / avg))
		}
	}
	return measured, measuredHeight, unmeasured
}
