package slicesext

// PrefixSum returns the sum of the first n elements of vals. A negative n
// yields 0; an n past the end sums the whole slice.
func PrefixSum(vals []float64, n int) float64 {
	if n > len(vals) {
		n = len(vals)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += vals[i]
	}
	return sum
}

// SuffixSum returns the sum of the last n elements of vals. A negative n
// yields 0; an n past the end sums the whole slice.
func SuffixSum(vals []float64, n int) float64 {
	if n > len(vals) {
		n = len(vals)
	}
	var sum float64
	for i := len(vals) - n; i < len(vals); i++ {
		if i < 0 {
			continue
		}
		sum += vals[i]
	}
	return sum
}
