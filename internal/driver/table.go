package driver

import (
	"fmt"

	"github.com/vk/chembatch/internal/vec"
)

// Layout selects the flattening order of the history table.
type Layout int

const (
	// VariableMajor lays the table out one full time series per variable.
	VariableMajor Layout = iota
	// TimeMajor lays the table out one full variable row per time step.
	TimeMajor
)

// nameOrIndex returns the i-th recorded name, falling back to a
// positional label when setup left the slot empty.
func nameOrIndex(names *vec.Vector[string], i int, prefix string) string {
	if i < names.Len() {
		if n := names.At(i); n != "" {
			return n
		}
	}
	return fmt.Sprintf("%s_%d", prefix, i)
}

// VariableNames returns the ordered names of every recorded variable:
// time, each concentration component, then the scalar diagnostics.
func (d *Driver) VariableNames() []string {
	names := make([]string, 0, 2+d.sizes.Components())
	names = append(names, "time")
	for i := 0; i < d.sizes.NumPrimary; i++ {
		names = append(names, nameOrIndex(&d.meta.PrimaryNames, i, "primary"))
	}
	for i := 0; i < d.sizes.NumSorbed; i++ {
		names = append(names, nameOrIndex(&d.meta.PrimaryNames, i, "sorbed")+"_sorbed")
	}
	for i := 0; i < d.sizes.NumMinerals; i++ {
		names = append(names, nameOrIndex(&d.meta.MineralNames, i, "mineral")+"_vf")
	}
	for i := 0; i < d.sizes.NumSurfaceSites; i++ {
		names = append(names, nameOrIndex(&d.meta.SurfaceSiteNames, i, "site")+"_density")
	}
	for i := 0; i < d.sizes.NumIonExchangeSites; i++ {
		names = append(names, nameOrIndex(&d.meta.IonExchangeNames, i, "exchange")+"_cec")
	}
	for i := 0; i < d.sizes.NumGases; i++ {
		names = append(names, nameOrIndex(&d.meta.GasNames, i, "gas"))
	}
	names = append(names, "pH")
	return names
}

// rowAt flattens one history entry in VariableNames order.
func (d *Driver) rowAt(i int) []float64 {
	e := d.hist.At(i)
	row := make([]float64, 0, 2+d.sizes.Components())
	row = append(row, e.Time)
	row = append(row, e.State.TotalMobile.Data()...)
	row = append(row, e.State.TotalImmobile.Data()...)
	row = append(row, e.State.MineralVolumeFraction.Data()...)
	row = append(row, e.State.SurfaceSiteDensity.Data()...)
	row = append(row, e.State.CationExchangeCapacity.Data()...)
	row = append(row, e.State.GasConcentration.Data()...)
	row = append(row, e.Aux.PH)
	return row
}

// HistoryTable projects the accumulated history into a flattened numeric
// table plus the ordered variable names. It reflects exactly the entries
// recorded up to the call, including a partial history after a failure.
// The flat table's length is always len(names) * History().Len().
func (d *Driver) HistoryTable(layout Layout) ([]string, []float64) {
	names := d.VariableNames()
	numVars := len(names)
	numTimes := d.hist.Len()

	flat := make([]float64, numVars*numTimes)
	for t := 0; t < numTimes; t++ {
		row := d.rowAt(t)
		for v, val := range row {
			switch layout {
			case TimeMajor:
				flat[t*numVars+v] = val
			default:
				flat[v*numTimes+t] = val
			}
		}
	}
	return names, flat
}
