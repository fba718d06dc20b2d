package driver

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/chembatch/internal/chem"
)

func TestHistoryGrowsGeometrically(t *testing.T) {
	t.Parallel()

	var sz chem.Sizes
	sz.NumPrimary = 1

	var h History
	for i := 0; i < 9; i++ {
		h.Append(Entry{Time: float64(i), State: chem.NewState(sz), Aux: chem.NewAuxiliaryOutput(sz)})
	}
	require.Equal(t, 9, h.Len())
	require.Equal(t, 16, h.entries.Cap(), "buffer doubles to the next power of two")

	for i := 0; i < 9; i++ {
		require.Equal(t, float64(i), h.At(i).Time, "append order preserved across growth")
	}
}

func TestHistoryRelease(t *testing.T) {
	t.Parallel()

	var sz chem.Sizes
	sz.NumPrimary = 2

	var h History
	h.Append(Entry{Time: 0, State: chem.NewState(sz), Aux: chem.NewAuxiliaryOutput(sz)})
	h.Release()
	require.Equal(t, 0, h.Len())

	// Releasing twice must be harmless.
	h.Release()
}
