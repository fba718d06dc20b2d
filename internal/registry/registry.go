package registry

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/vk/chembatch/internal/chem"
)

// Table is the capability table bound to one engine backend. Every
// function communicates failure through its returned *chem.Status; a
// zero-valued Table is unbound and must not be called.
type Table struct {
	// Setup initializes the backend for one problem, reading the engine
	// input and the sizing record and populating the problem metadata.
	Setup func(ctx context.Context, engineInput string, sizes *chem.Sizes, meta *chem.ProblemMetadata) *chem.Status

	// Shutdown releases any backend-internal resources.
	Shutdown func(ctx context.Context) *chem.Status

	// ProcessCondition seeds state and scratch data from a named
	// geochemical condition.
	ProcessCondition func(ctx context.Context, cond *chem.Condition, props *chem.Properties, state *chem.State, aux *chem.AuxiliaryData) *chem.Status

	// ReactionStepOperatorSplit advances state by the fixed increment dt,
	// holding transport fixed.
	ReactionStepOperatorSplit func(ctx context.Context, props *chem.Properties, dt float64, state *chem.State, aux *chem.AuxiliaryData) *chem.Status

	// GetAuxiliaryOutput derives fresh diagnostics from the current state.
	GetAuxiliaryOutput func(ctx context.Context, state *chem.State, aux *chem.AuxiliaryData, out *chem.AuxiliaryOutput) *chem.Status

	// GetFunctionality reports what the backend supports.
	GetFunctionality func() chem.Functionality
}

// Bound reports whether the table has been populated by a successful
// resolution.
func (t *Table) Bound() bool {
	return t.Setup != nil && t.ProcessCondition != nil &&
		t.ReactionStepOperatorSplit != nil && t.GetAuxiliaryOutput != nil
}

// Module is the interface every built-in engine backend implements to
// be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the engine backends compiled into this binary, keyed
// by lower-cased name.
type Registry struct {
	engines map[string]*Table
}

// New creates and initializes an empty Registry instance.
func New() *Registry {
	return &Registry{engines: make(map[string]*Table)}
}

// RegisterEngine registers a backend's capability table under name.
// Registering the same name twice is a programmer error and panics.
func (r *Registry) RegisterEngine(name string, table *Table) {
	key := strings.ToLower(name)
	if _, exists := r.engines[key]; exists {
		panic(fmt.Sprintf("engine backend with name '%s' already registered", name))
	}
	if !table.Bound() {
		panic(fmt.Sprintf("engine backend '%s' registered with an unbound capability table", name))
	}
	slog.Debug("Registering engine backend.", "name", name)
	r.engines[key] = table
}

// Resolve matches name, case-insensitively, against the registered
// backends. On success the returned table is that backend's bound
// functions. On a miss every function in the returned table stays
// unbound and the status carries an invalid-engine error naming the
// available backends. Resolve performs no I/O and has no side effects.
func (r *Registry) Resolve(name string) (*Table, *chem.Status) {
	if table, ok := r.engines[strings.ToLower(name)]; ok {
		return table, chem.OK()
	}
	return &Table{}, chem.Errorf(chem.CodeInvalidEngine,
		"invalid chemistry engine %q: not compiled into this binary (available: %s)",
		name, strings.Join(r.Names(), ", "))
}

// Names returns the registered backend names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
