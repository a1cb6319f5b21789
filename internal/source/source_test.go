package source

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSliceSource(t *testing.T) {
	t.Parallel()

	src := FromSlice([]int{0, 1, 2, 3, 4})

	n, err := src.Count(t.Context())
	require.NoError(t, err)
	require.Equal(t, 5, n)

	tests := []struct {
		name   string
		start  int
		count  int
		expect []int
	}{
		{
			name:   "middle",
			start:  1,
			count:  3,
			expect: []int{1, 2, 3},
		},
		{
			name:   "clamped past end",
			start:  3,
			count:  10,
			expect: []int{3, 4},
		},
		{
			name:   "start past end",
			start:  9,
			count:  2,
			expect: []int{},
		},
		{
			name:   "negative start",
			start:  -2,
			count:  2,
			expect: []int{0, 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := src.Slice(t.Context(), tt.start, tt.count)
			require.NoError(t, err)
			require.Equal(t, tt.expect, got)
		})
	}
}

func TestGenerateRows(t *testing.T) {
	t.Parallel()

	rows := GenerateRows(20)
	require.Len(t, rows, 20)
	require.Equal(t, int64(1), rows[0].ID)
	require.Equal(t, int64(20), rows[19].ID)

	// Deterministic, and body lengths vary across rows.
	again := GenerateRows(20)
	require.Equal(t, rows, again)
	require.NotEqual(t, len(rows[0].Body), len(rows[5].Body))
}
