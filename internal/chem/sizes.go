// Package chem defines the composite data records exchanged between the
// batch driver and a chemistry engine: the sizing record that dictates
// every vector length, the thermodynamic state, material properties,
// engine scratch data, derived diagnostics, problem metadata and the
// named conditions used to seed a run.
//
// Every record exclusively owns its vectors. Copying a record always deep
// copies every vector member; no two records ever share storage.
package chem

import "fmt"

// unset marks a Sizes count that has not been populated yet.
const unset = -1

// Sizes holds the component counts that govern the shape of every other
// record for one problem. It is populated once, from configuration, and
// is immutable afterwards; sharing it read-only between drivers is safe.
type Sizes struct {
	NumPrimary           int
	NumSorbed            int
	NumMinerals          int
	NumSurfaceSites      int
	NumIonExchangeSites  int
	NumGases             int
	NumAqueousKinetics   int
	NumMineralKinetics   int
	NumAuxiliaryIntegers int
	NumAuxiliaryDoubles  int
}

// NewSizes returns a sizing record with every count unset. Constructing
// any composite record from it before all counts are assigned panics.
func NewSizes() Sizes {
	return Sizes{
		NumPrimary:           unset,
		NumSorbed:            unset,
		NumMinerals:          unset,
		NumSurfaceSites:      unset,
		NumIonExchangeSites:  unset,
		NumGases:             unset,
		NumAqueousKinetics:   unset,
		NumMineralKinetics:   unset,
		NumAuxiliaryIntegers: unset,
		NumAuxiliaryDoubles:  unset,
	}
}

// Check reports whether every count has been populated with a
// non-negative value.
func (s Sizes) Check() error {
	counts := []struct {
		name string
		n    int
	}{
		{"primary", s.NumPrimary},
		{"sorbed", s.NumSorbed},
		{"minerals", s.NumMinerals},
		{"surface_sites", s.NumSurfaceSites},
		{"ion_exchange_sites", s.NumIonExchangeSites},
		{"gases", s.NumGases},
		{"aqueous_kinetics", s.NumAqueousKinetics},
		{"mineral_kinetics", s.NumMineralKinetics},
		{"auxiliary_integers", s.NumAuxiliaryIntegers},
		{"auxiliary_doubles", s.NumAuxiliaryDoubles},
	}
	for _, c := range counts {
		if c.n < 0 {
			return fmt.Errorf("sizing record: count %q is unset or negative (%d)", c.name, c.n)
		}
	}
	return nil
}

// mustCheck is the fail-fast guard shared by every record constructor.
func (s Sizes) mustCheck() {
	if err := s.Check(); err != nil {
		panic(err)
	}
}

// Components returns the total number of recorded concentration
// components: mobile, immobile, mineral volume fractions, surface site
// densities, ion-exchange capacities and gas concentrations.
func (s Sizes) Components() int {
	return s.NumPrimary + s.NumSorbed + s.NumMinerals +
		s.NumSurfaceSites + s.NumIonExchangeSites + s.NumGases
}
