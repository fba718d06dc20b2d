package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const fullConfig = `
simulation {
  description       = "tracer decay benchmark"
  engine            = "decay"
  engine_input      = "Tracer=0.693"
  t_min             = 0
  t_max             = 5
  dt                = 1
  max_steps         = 10
  initial_condition = "background"
}

state {
  water_density    = 997.0
  porosity         = 0.3
  temperature      = 15.0
  aqueous_pressure = 201325.0
}

material {
  volume      = 0.5
  saturation  = 0.9
  isotherm_kd = { "Tracer" = 0.8 }
}

sizes {
  primary = 1
}

condition "background" {
  aqueous {
    species = "Tracer"
    type    = "total"
    value   = 1.0e-3
  }
}

output {
  type = "csv"
  file = "out.csv"
}
`

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadFullConfig(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "run.hcl", fullConfig)
	m, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	require.Equal(t, "decay", m.Engine)
	require.Equal(t, "Tracer=0.693", m.EngineInput)
	require.Equal(t, 5.0, m.TMax)
	require.Equal(t, 1.0, m.Dt)
	require.Equal(t, 10, m.MaxSteps)
	require.Equal(t, 997.0, m.WaterDensity)
	require.Equal(t, 0.3, m.Porosity)
	require.Equal(t, 0.5, m.Volume)
	require.Equal(t, map[string]float64{"Tracer": 0.8}, m.IsothermKd)
	require.Equal(t, 1, m.Sizes.NumPrimary)
	require.Equal(t, 0, m.Sizes.NumMinerals, "omitted counts are explicit zeros")
	require.NoError(t, m.Sizes.Check())

	cond, err := m.Condition()
	require.NoError(t, err)
	require.Equal(t, "background", cond.Name)
	require.Len(t, cond.Aqueous, 1)
	require.Equal(t, 1.0e-3, cond.Aqueous[0].Value)

	require.Equal(t, "csv", m.Output.Type)
	require.Equal(t, "out.csv", m.Output.File)
}

func TestLoadAppliesDefaults(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "run.hcl", `
simulation {
  engine            = "inert"
  initial_condition = "empty"
}
sizes {}
condition "empty" {}
`)
	m, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)
	require.Equal(t, 0.1, m.Dt)
	require.Equal(t, 10000, m.MaxSteps)
	require.Equal(t, 998.2, m.WaterDensity)
	require.Equal(t, 101325.0, m.AqueousPressure)
	require.Equal(t, "csv", m.Output.Type)
}

func TestLoadMergesDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a_run.hcl"), []byte(`
simulation {
  engine            = "decay"
  engine_input      = "Tracer=0.1"
  initial_condition = "background"
}
sizes { primary = 1 }
`), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b_conditions.hcl"), []byte(`
condition "background" {
  aqueous {
    species = "Tracer"
    type    = "total"
    value   = 1.0
  }
}
condition "spike" {
  aqueous {
    species = "Tracer"
    type    = "total"
    value   = 10.0
  }
}
`), 0o600))

	m, err := NewLoader().Load(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, m.Conditions, 2)
	require.Equal(t, "decay", m.Engine)
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "broken.hcl", `simulation { engine = `)
	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	require.ErrorContains(t, err, "failed to parse")
}

func TestLoadRejectsBadParamMap(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "run.hcl", `
simulation {
  engine            = "decay"
  initial_condition = "background"
}
material {
  isotherm_kd = "not-a-map"
}
sizes { primary = 1 }
condition "background" {}
`)
	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	require.ErrorContains(t, err, "isotherm_kd")
}

func TestLoadRejectsMissingCondition(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, "run.hcl", `
simulation {
  engine            = "decay"
  initial_condition = "missing"
}
sizes { primary = 1 }
`)
	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	require.ErrorContains(t, err, "not defined")
}

func TestLoadMissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}
