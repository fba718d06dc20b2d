// Package inert provides a backend that seeds state from the condition
// and then leaves it untouched on every step. It exists for wiring tests
// and as a conservative-tracer baseline.
package inert

import (
	"context"
	"fmt"

	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the backend's capability table with the registry.
func (m *Module) Register(r *registry.Registry) {
	b := &backend{}
	r.RegisterEngine("inert", &registry.Table{
		Setup:                     b.setup,
		Shutdown:                  func(context.Context) *chem.Status { return chem.OK() },
		ProcessCondition:          b.processCondition,
		ReactionStepOperatorSplit: b.reactionStep,
		GetAuxiliaryOutput:        b.auxiliaryOutput,
		GetFunctionality: func() chem.Functionality {
			return chem.Functionality{OperatorSplitting: true}
		},
	})
}

type backend struct {
	numPrimary int
}

func (b *backend) setup(_ context.Context, _ string, sizes *chem.Sizes, meta *chem.ProblemMetadata) *chem.Status {
	b.numPrimary = sizes.NumPrimary
	for i := 0; i < sizes.NumPrimary; i++ {
		meta.PrimaryNames.Set(i, fmt.Sprintf("component_%d", i))
	}
	return chem.OK()
}

func (b *backend) processCondition(_ context.Context, cond *chem.Condition, _ *chem.Properties, state *chem.State, _ *chem.AuxiliaryData) *chem.Status {
	for i := 0; i < b.numPrimary; i++ {
		if v, ok := cond.AqueousValue(fmt.Sprintf("component_%d", i)); ok {
			state.TotalMobile.Set(i, v)
		}
	}
	// Mineral constraints apply positionally, in declaration order.
	for i, mc := range cond.Minerals {
		if i >= state.MineralVolumeFraction.Len() {
			return chem.Errorf(chem.CodeConditionFailure,
				"condition %q constrains more minerals than the problem has", cond.Name)
		}
		state.MineralVolumeFraction.Set(i, mc.VolumeFraction)
		state.MineralSpecificSurfaceArea.Set(i, mc.SpecificSurfaceArea)
	}
	return chem.OK()
}

func (b *backend) reactionStep(_ context.Context, _ *chem.Properties, _ float64, _ *chem.State, _ *chem.AuxiliaryData) *chem.Status {
	return chem.OK()
}

func (b *backend) auxiliaryOutput(_ context.Context, _ *chem.State, _ *chem.AuxiliaryData, out *chem.AuxiliaryOutput) *chem.Status {
	out.PH = 7.0
	return chem.OK()
}
