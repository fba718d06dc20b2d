// Package decay provides the built-in first-order decay engine backend.
// It treats every primary species as an independently decaying tracer;
// the engine input string names the species and their decay constants,
// e.g. "Tracer=0.693,Cs137=0.023". It is deliberately simple chemistry,
// but it exercises the full capability table and produces analytically
// checkable histories.
package decay

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// backend holds the per-problem state parsed from the engine input.
type backend struct {
	names []string
	rates []float64
}

// Register registers the backend's capability table with the registry.
func (m *Module) Register(r *registry.Registry) {
	b := &backend{}
	r.RegisterEngine("decay", &registry.Table{
		Setup:                     b.setup,
		Shutdown:                  b.shutdown,
		ProcessCondition:          b.processCondition,
		ReactionStepOperatorSplit: b.reactionStep,
		GetAuxiliaryOutput:        b.auxiliaryOutput,
		GetFunctionality:          b.functionality,
	})
}

func (b *backend) setup(_ context.Context, engineInput string, sizes *chem.Sizes, meta *chem.ProblemMetadata) *chem.Status {
	if sizes.NumSorbed != 0 || sizes.NumMinerals != 0 || sizes.NumSurfaceSites != 0 ||
		sizes.NumIonExchangeSites != 0 || sizes.NumGases != 0 {
		return chem.Errorf(chem.CodeSetupFailure,
			"decay engine supports aqueous primary species only")
	}

	names, rates, err := parseRates(engineInput)
	if err != nil {
		return chem.Errorf(chem.CodeSetupFailure, "decay engine input: %v", err)
	}
	if len(names) != sizes.NumPrimary {
		return chem.Errorf(chem.CodeSetupFailure,
			"decay engine input defines %d species but sizing expects %d", len(names), sizes.NumPrimary)
	}

	b.names = names
	b.rates = rates
	for i, n := range names {
		meta.PrimaryNames.Set(i, n)
		meta.PrimaryPositivity.Set(i, 1)
	}
	return chem.OK()
}

// parseRates reads "Name=rate" pairs separated by commas. Order defines
// the primary species order for the whole problem.
func parseRates(input string) ([]string, []float64, error) {
	if strings.TrimSpace(input) == "" {
		return nil, nil, fmt.Errorf("empty rate table")
	}
	var names []string
	var rates []float64
	for _, pair := range strings.Split(input, ",") {
		name, rateStr, ok := strings.Cut(strings.TrimSpace(pair), "=")
		if !ok {
			return nil, nil, fmt.Errorf("malformed pair %q, want Name=rate", pair)
		}
		rate, err := strconv.ParseFloat(strings.TrimSpace(rateStr), 64)
		if err != nil {
			return nil, nil, fmt.Errorf("rate for %q: %w", name, err)
		}
		if rate < 0 {
			return nil, nil, fmt.Errorf("rate for %q must be non-negative", name)
		}
		names = append(names, strings.TrimSpace(name))
		rates = append(rates, rate)
	}
	return names, rates, nil
}

func (b *backend) shutdown(context.Context) *chem.Status {
	b.names = nil
	b.rates = nil
	return chem.OK()
}

func (b *backend) processCondition(_ context.Context, cond *chem.Condition, _ *chem.Properties, state *chem.State, _ *chem.AuxiliaryData) *chem.Status {
	for _, a := range cond.Aqueous {
		if a.Type != "total" && a.Type != "pH" {
			return chem.Errorf(chem.CodeConditionFailure,
				"condition %q: unsupported constraint type %q for species %q", cond.Name, a.Type, a.Species)
		}
	}
	for i, n := range b.names {
		v, ok := cond.AqueousValue(n)
		if !ok {
			state.TotalMobile.Set(i, 0)
			continue
		}
		if b.constraintType(cond, n) == "pH" {
			v = math.Pow(10, -v)
		}
		state.TotalMobile.Set(i, v)
	}
	return chem.OK()
}

func (b *backend) constraintType(cond *chem.Condition, species string) string {
	for _, a := range cond.Aqueous {
		if a.Species == species {
			return a.Type
		}
	}
	return ""
}

func (b *backend) reactionStep(_ context.Context, _ *chem.Properties, dt float64, state *chem.State, _ *chem.AuxiliaryData) *chem.Status {
	if len(b.names) == 0 {
		return chem.Errorf(chem.CodeStepFailure, "decay engine stepped before setup")
	}
	for i, rate := range b.rates {
		state.TotalMobile.Set(i, state.TotalMobile.At(i)*math.Exp(-rate*dt))
	}
	st := chem.OK()
	st.NewtonIterations = 1
	return st
}

func (b *backend) auxiliaryOutput(_ context.Context, state *chem.State, _ *chem.AuxiliaryData, out *chem.AuxiliaryOutput) *chem.Status {
	out.PH = 7.0
	for i, n := range b.names {
		c := state.TotalMobile.At(i)
		out.PrimaryFreeIonConcentration.Set(i, c)
		out.PrimaryActivityCoefficient.Set(i, 1.0)
		if n == "H+" && c > 0 {
			out.PH = -math.Log10(c)
		}
	}
	return chem.OK()
}

func (b *backend) functionality() chem.Functionality {
	return chem.Functionality{
		ThreadSafe:        false,
		OperatorSplitting: true,
		IndexBase:         0,
	}
}
