package config

import (
	"fmt"

	"github.com/vk/chembatch/internal/chem"
)

// Documented defaults for every optional numeric field.
const (
	DefaultTMin            = 0.0
	DefaultTMax            = 1.0
	DefaultDt              = 0.1
	DefaultMaxSteps        = 10000
	DefaultVolume          = 1.0
	DefaultSaturation      = 1.0
	DefaultWaterDensity    = 998.2    // kg/m^3 at 20 C
	DefaultPorosity        = 0.25
	DefaultTemperature     = 25.0     // C
	DefaultAqueousPressure = 101325.0 // Pa
	DefaultOutputType      = "csv"
)

// Output selects the sink the flattened history table is written to.
type Output struct {
	Type string // "csv" or "sqlite"
	File string // empty writes csv to stdout
}

// Model is the unified, format-agnostic representation of one batch run:
// the time window, the engine binding, the material scalars, the
// name-indexed species coefficients, the sizing counts and the named
// conditions the run can be seeded from.
type Model struct {
	Description string

	Engine      string
	EngineInput string

	TMin     float64
	TMax     float64
	Dt       float64
	MaxSteps int

	Volume          float64
	Saturation      float64
	WaterDensity    float64
	Porosity        float64
	Temperature     float64
	AqueousPressure float64

	IsothermKd  map[string]float64
	FreundlichN map[string]float64
	LangmuirB   map[string]float64

	Sizes chem.Sizes

	Conditions       []*chem.Condition
	InitialCondition string

	Output Output
}

// Default returns a model populated with the documented defaults and an
// unpopulated sizing record.
func Default() *Model {
	return &Model{
		TMin:            DefaultTMin,
		TMax:            DefaultTMax,
		Dt:              DefaultDt,
		MaxSteps:        DefaultMaxSteps,
		Volume:          DefaultVolume,
		Saturation:      DefaultSaturation,
		WaterDensity:    DefaultWaterDensity,
		Porosity:        DefaultPorosity,
		Temperature:     DefaultTemperature,
		AqueousPressure: DefaultAqueousPressure,
		Sizes:           chem.NewSizes(),
		Output:          Output{Type: DefaultOutputType},
	}
}

// Validate checks the model before any engine interaction. Whether the
// engine name actually resolves is checked separately, at dispatch.
func (m *Model) Validate() error {
	if m.Engine == "" {
		return fmt.Errorf("config: chemistry engine name is required")
	}
	if m.InitialCondition == "" {
		return fmt.Errorf("config: initial condition name is required")
	}
	if _, err := m.Condition(); err != nil {
		return err
	}
	if err := m.Sizes.Check(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if m.TMax < m.TMin {
		return fmt.Errorf("config: t_max (%g) precedes t_min (%g)", m.TMax, m.TMin)
	}
	if m.MaxSteps <= 0 {
		return fmt.Errorf("config: max_steps must be positive, got %d", m.MaxSteps)
	}
	switch m.Output.Type {
	case "csv", "sqlite":
	default:
		return fmt.Errorf("config: unknown output type %q (want csv or sqlite)", m.Output.Type)
	}
	return nil
}

// Condition returns the condition named by InitialCondition.
func (m *Model) Condition() (*chem.Condition, error) {
	for _, c := range m.Conditions {
		if c.Name == m.InitialCondition {
			return c, nil
		}
	}
	return nil, fmt.Errorf("config: initial condition %q is not defined", m.InitialCondition)
}
