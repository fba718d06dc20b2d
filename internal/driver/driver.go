// Package driver owns one batch simulation: its records, its phase
// machine and its history. It drives the mutable State through a bounded
// number of operator-split steps against a resolved engine capability
// table, snapshotting every successful step into an append-only history
// buffer.
package driver

import (
	"context"
	"fmt"

	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/ctxlog"
	"github.com/vk/chembatch/internal/registry"
)

// Phase is the driver's lifecycle state.
type Phase int

const (
	Uninitialized Phase = iota
	Initialized
	Stepping
	Finished
	Failed
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case Uninitialized:
		return "uninitialized"
	case Initialized:
		return "initialized"
	case Stepping:
		return "stepping"
	case Finished:
		return "finished"
	case Failed:
		return "failed"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// Params carries the run window and the initial scalar fields seeded
// into State and Properties before the engine processes the condition.
// The name-indexed maps assign per-species coefficients by metadata name
// once engine setup has published the species names.
type Params struct {
	TMin     float64
	TMax     float64
	Dt       float64
	MaxSteps int

	EngineInput string

	Volume          float64
	Saturation      float64
	WaterDensity    float64
	Porosity        float64
	Temperature     float64
	AqueousPressure float64

	IsothermKd  map[string]float64
	FreundlichN map[string]float64
	LangmuirB   map[string]float64
}

// FailureHandler is invoked when an engine call fails. Injecting one
// replaces the default slog report.
type FailureHandler func(stage string, st *chem.Status)

// Option configures a Driver at construction.
type Option func(*Driver)

// WithFailureHandler overrides the default failure reporting.
func WithFailureHandler(h FailureHandler) Option {
	return func(d *Driver) { d.onFailure = h }
}

// Driver owns the mutable simulation state for exactly one cell. It is
// not safe for concurrent use and never shares a record with another
// driver; only the immutable sizing record may be shared read-only.
type Driver struct {
	params Params
	table  *registry.Table
	sizes  chem.Sizes
	cond   *chem.Condition

	state  *chem.State
	props  *chem.Properties
	aux    *chem.AuxiliaryData
	auxOut *chem.AuxiliaryOutput
	meta   *chem.ProblemMetadata

	phase      Phase
	now        float64
	steps      int
	hist       History
	lastStatus *chem.Status
	onFailure  FailureHandler
}

// New constructs a driver around a resolved capability table. Every
// record is allocated here, sized from the (fully populated) sizing
// record; an unpopulated sizing record panics per the allocation
// contract.
func New(table *registry.Table, sizes chem.Sizes, cond *chem.Condition, params Params, opts ...Option) (*Driver, error) {
	if table == nil || !table.Bound() {
		return nil, fmt.Errorf("driver: capability table is unbound")
	}
	if cond == nil {
		return nil, fmt.Errorf("driver: no initial condition")
	}
	d := &Driver{
		params: params,
		table:  table,
		sizes:  sizes,
		cond:   cond.Copy(),
		state:  chem.NewState(sizes),
		props:  chem.NewProperties(sizes),
		aux:    chem.NewAuxiliaryData(sizes),
		auxOut: chem.NewAuxiliaryOutput(sizes),
		meta:   chem.NewProblemMetadata(sizes),
		phase:  Uninitialized,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// fail records the status, transitions to the absorbing Failed phase and
// reports through the injected handler or the context logger.
func (d *Driver) fail(ctx context.Context, stage string, st *chem.Status) {
	d.lastStatus = st
	d.phase = Failed
	if d.onFailure != nil {
		d.onFailure(stage, st)
		return
	}
	ctxlog.FromContext(ctx).Error("Engine call failed.",
		"stage", stage, "code", st.Code, "message", st.Message)
}

// Initialize runs engine setup, seeds Properties and State from the run
// parameters and the initial condition, and records history entry 0 at
// t_min. On any engine failure the driver transitions to Failed with an
// empty history; it never continues with a partially seeded State.
func (d *Driver) Initialize(ctx context.Context) error {
	if d.phase != Uninitialized {
		return fmt.Errorf("driver: initialize called in phase %s", d.phase)
	}
	logger := ctxlog.FromContext(ctx)

	if st := d.table.Setup(ctx, d.params.EngineInput, &d.sizes, d.meta); st.Failed() {
		d.fail(ctx, "setup", st)
		return st.Err()
	}
	if d.table.GetFunctionality != nil {
		fn := d.table.GetFunctionality()
		logger.Debug("Engine functionality reported.",
			"operator_splitting", fn.OperatorSplitting,
			"temperature_dependent", fn.TemperatureDependent,
			"index_base", fn.IndexBase)
	}

	d.props.Volume = d.params.Volume
	d.props.Saturation = d.params.Saturation
	d.state.WaterDensity = d.params.WaterDensity
	d.state.Porosity = d.params.Porosity
	d.state.Temperature = d.params.Temperature
	d.state.AqueousPressure = d.params.AqueousPressure
	if err := d.applyNamedParams(); err != nil {
		d.phase = Failed
		return err
	}

	if st := d.table.ProcessCondition(ctx, d.cond, d.props, d.state, d.aux); st.Failed() {
		d.fail(ctx, "condition processing", st)
		return st.Err()
	}
	if st := d.table.GetAuxiliaryOutput(ctx, d.state, d.aux, d.auxOut); st.Failed() {
		d.fail(ctx, "auxiliary output", st)
		return st.Err()
	}

	d.now = d.params.TMin
	d.hist.Append(Entry{Time: d.now, State: d.state.Copy(), Aux: d.auxOut.Copy()})
	d.phase = Initialized
	logger.Debug("Driver initialized.", "condition", d.cond.Name, "t_min", d.now)
	return nil
}

// applyNamedParams maps the name-indexed configuration coefficients onto
// the property vectors using the metadata published by Setup. An
// unknown species name is a configuration error.
func (d *Driver) applyNamedParams() error {
	assign := func(field string, m map[string]float64, set func(i int, v float64)) error {
		for name, val := range m {
			i := chem.IndexOf(&d.meta.PrimaryNames, name)
			if i < 0 {
				return fmt.Errorf("driver: %s references unknown species %q", field, name)
			}
			set(i, val)
		}
		return nil
	}
	if err := assign("isotherm_kd", d.params.IsothermKd, d.props.IsothermKd.Set); err != nil {
		return err
	}
	if err := assign("freundlich_n", d.params.FreundlichN, d.props.FreundlichN.Set); err != nil {
		return err
	}
	return assign("langmuir_b", d.params.LangmuirB, d.props.LangmuirB.Set)
}

// Step advances the state by one fixed increment dt, harvests fresh
// diagnostics and appends a deep-copied history entry. On engine failure
// the driver transitions to Failed but every previously accumulated
// entry stays retrievable.
func (d *Driver) Step(ctx context.Context) error {
	if d.phase != Initialized && d.phase != Stepping {
		return fmt.Errorf("driver: step called in phase %s", d.phase)
	}
	if st := d.table.ReactionStepOperatorSplit(ctx, d.props, d.params.Dt, d.state, d.aux); st.Failed() {
		d.fail(ctx, "reaction step", st)
		return st.Err()
	}
	if st := d.table.GetAuxiliaryOutput(ctx, d.state, d.aux, d.auxOut); st.Failed() {
		d.fail(ctx, "auxiliary output", st)
		return st.Err()
	}
	d.now += d.params.Dt
	d.steps++
	d.hist.Append(Entry{Time: d.now, State: d.state.Copy(), Aux: d.auxOut.Copy()})
	d.phase = Stepping
	return nil
}

// Finalize shuts the engine down and marks the run finished. A shutdown
// failure is logged but does not discard the completed run.
func (d *Driver) Finalize(ctx context.Context) error {
	if d.phase != Initialized && d.phase != Stepping {
		return fmt.Errorf("driver: finalize called in phase %s", d.phase)
	}
	if d.table.Shutdown != nil {
		if st := d.table.Shutdown(ctx); st.Failed() {
			ctxlog.FromContext(ctx).Warn("Engine shutdown reported failure.",
				"code", st.Code, "message", st.Message)
		}
	}
	d.phase = Finished
	return nil
}

// Run executes Initialize, then steps until the time ceiling or the
// step-count ceiling is reached, whichever comes first, then Finalize.
// The double bound keeps a degenerate dt from looping forever.
func (d *Driver) Run(ctx context.Context) error {
	logger := ctxlog.FromContext(ctx)
	if err := d.Initialize(ctx); err != nil {
		return err
	}
	for d.now < d.params.TMax && d.steps < d.params.MaxSteps {
		if err := d.Step(ctx); err != nil {
			return err
		}
	}
	logger.Info("Run complete.", "steps", d.steps, "final_time", d.now)
	return d.Finalize(ctx)
}

// Phase returns the driver's lifecycle state.
func (d *Driver) Phase() Phase { return d.phase }

// Time returns the current simulation time.
func (d *Driver) Time() float64 { return d.now }

// StepCount returns the number of successful steps taken.
func (d *Driver) StepCount() int { return d.steps }

// History returns the accumulated history buffer. After a Failed
// transition it still holds every entry recorded before the failure.
func (d *Driver) History() *History { return &d.hist }

// LastStatus returns the engine status recorded by the most recent
// failure, or nil when no engine call has failed.
func (d *Driver) LastStatus() *chem.Status { return d.lastStatus }

// Metadata returns the problem metadata published by engine setup.
func (d *Driver) Metadata() *chem.ProblemMetadata { return d.meta }

// Release frees every record the driver owns, including the history.
func (d *Driver) Release() {
	d.state.Release()
	d.props.Release()
	d.aux.Release()
	d.auxOut.Release()
	d.meta.Release()
	d.cond.Release()
	d.hist.Release()
}
