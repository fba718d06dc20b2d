package config

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vk/chembatch/internal/chem"
)

func validModel() *Model {
	m := Default()
	m.Engine = "decay"
	m.InitialCondition = "background"
	m.Conditions = []*chem.Condition{chem.NewCondition("background", 0, 0)}
	m.Sizes = chem.Sizes{NumPrimary: 1}
	return m
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	m := Default()
	require.Equal(t, 0.1, m.Dt)
	require.Equal(t, 10000, m.MaxSteps)
	require.Equal(t, 998.2, m.WaterDensity)
	require.Equal(t, "csv", m.Output.Type)
	require.Error(t, m.Sizes.Check(), "default sizing record starts unpopulated")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	require.NoError(t, validModel().Validate())

	cases := []struct {
		name    string
		mutate  func(*Model)
		wantErr string
	}{
		{"missing engine", func(m *Model) { m.Engine = "" }, "engine name is required"},
		{"missing condition name", func(m *Model) { m.InitialCondition = "" }, "initial condition name"},
		{"undefined condition", func(m *Model) { m.InitialCondition = "nope" }, "not defined"},
		{"unpopulated sizes", func(m *Model) { m.Sizes = chem.NewSizes() }, "sizing record"},
		{"inverted window", func(m *Model) { m.TMax = -1 }, "t_max"},
		{"bad max_steps", func(m *Model) { m.MaxSteps = 0 }, "max_steps"},
		{"bad output type", func(m *Model) { m.Output.Type = "parquet" }, "output type"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			m := validModel()
			tc.mutate(m)
			require.ErrorContains(t, m.Validate(), tc.wantErr)
		})
	}
}
