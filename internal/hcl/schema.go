package hcl

import "github.com/zclconf/go-cty/cty"

// fileSchema is the top-level HCL layout of one run-configuration file.
// Pointer and slice members let a directory of files each contribute a
// subset of the blocks.
type fileSchema struct {
	Simulation *simulationBlock `hcl:"simulation,block"`
	State      *stateBlock      `hcl:"state,block"`
	Material   *materialBlock   `hcl:"material,block"`
	Sizes      *sizesBlock      `hcl:"sizes,block"`
	Conditions []conditionBlock `hcl:"condition,block"`
	Output     *outputBlock     `hcl:"output,block"`
}

type simulationBlock struct {
	Description      *string  `hcl:"description,optional"`
	Engine           string   `hcl:"engine"`
	EngineInput      *string  `hcl:"engine_input,optional"`
	TMin             *float64 `hcl:"t_min,optional"`
	TMax             *float64 `hcl:"t_max,optional"`
	Dt               *float64 `hcl:"dt,optional"`
	MaxSteps         *int     `hcl:"max_steps,optional"`
	InitialCondition string   `hcl:"initial_condition"`
}

type stateBlock struct {
	WaterDensity    *float64 `hcl:"water_density,optional"`
	Porosity        *float64 `hcl:"porosity,optional"`
	Temperature     *float64 `hcl:"temperature,optional"`
	AqueousPressure *float64 `hcl:"aqueous_pressure,optional"`
}

// materialBlock carries the scalar material parameters plus the
// name-indexed per-species coefficient maps, decoded as raw cty values
// so species names stay free-form keys.
type materialBlock struct {
	Volume      *float64   `hcl:"volume,optional"`
	Saturation  *float64   `hcl:"saturation,optional"`
	IsothermKd  *cty.Value `hcl:"isotherm_kd,optional"`
	FreundlichN *cty.Value `hcl:"freundlich_n,optional"`
	LangmuirB   *cty.Value `hcl:"langmuir_b,optional"`
}

// sizesBlock populates the sizing record. A count omitted from the block
// is an explicit zero, not an unset value.
type sizesBlock struct {
	Primary           int `hcl:"primary,optional"`
	Sorbed            int `hcl:"sorbed,optional"`
	Minerals          int `hcl:"minerals,optional"`
	SurfaceSites      int `hcl:"surface_sites,optional"`
	IonExchangeSites  int `hcl:"ion_exchange_sites,optional"`
	Gases             int `hcl:"gases,optional"`
	AqueousKinetics   int `hcl:"aqueous_kinetics,optional"`
	MineralKinetics   int `hcl:"mineral_kinetics,optional"`
	AuxiliaryIntegers int `hcl:"auxiliary_integers,optional"`
	AuxiliaryDoubles  int `hcl:"auxiliary_doubles,optional"`
}

type conditionBlock struct {
	Name     string         `hcl:"name,label"`
	Aqueous  []aqueousBlock `hcl:"aqueous,block"`
	Minerals []mineralBlock `hcl:"mineral,block"`
}

type aqueousBlock struct {
	Species    string  `hcl:"species"`
	Type       string  `hcl:"type"`
	Associated *string `hcl:"associated,optional"`
	Value      float64 `hcl:"value"`
}

type mineralBlock struct {
	Mineral             string   `hcl:"mineral"`
	VolumeFraction      float64  `hcl:"volume_fraction"`
	SpecificSurfaceArea *float64 `hcl:"specific_surface_area,optional"`
}

type outputBlock struct {
	Type *string `hcl:"type,optional"`
	File *string `hcl:"file,optional"`
}
