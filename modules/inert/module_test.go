package inert

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/registry"
)

func TestInertBackendRoundTrip(t *testing.T) {
	t.Parallel()

	r := registry.New()
	(&Module{}).Register(r)
	table, st := r.Resolve("inert")
	require.False(t, st.Failed())

	var sizes chem.Sizes
	sizes.NumPrimary = 2
	sizes.NumMinerals = 1

	ctx := context.Background()
	meta := chem.NewProblemMetadata(sizes)
	require.False(t, table.Setup(ctx, "", &sizes, meta).Failed())
	require.Equal(t, "component_0", meta.PrimaryNames.At(0))

	cond := chem.NewCondition("seed", 1, 1)
	cond.Aqueous[0] = chem.AqueousConstraint{Species: "component_1", Type: "total", Value: 4.2}
	cond.Minerals[0] = chem.MineralConstraint{Mineral: "calcite", VolumeFraction: 0.1, SpecificSurfaceArea: 100}

	state := chem.NewState(sizes)
	props := chem.NewProperties(sizes)
	aux := chem.NewAuxiliaryData(sizes)
	require.False(t, table.ProcessCondition(ctx, cond, props, state, aux).Failed())
	require.Equal(t, 4.2, state.TotalMobile.At(1))
	require.Equal(t, 0.1, state.MineralVolumeFraction.At(0))

	// Stepping never changes anything.
	require.False(t, table.ReactionStepOperatorSplit(ctx, props, 1.0, state, aux).Failed())
	require.Equal(t, 4.2, state.TotalMobile.At(1))

	out := chem.NewAuxiliaryOutput(sizes)
	require.False(t, table.GetAuxiliaryOutput(ctx, state, aux, out).Failed())
	require.Equal(t, 7.0, out.PH)
}
