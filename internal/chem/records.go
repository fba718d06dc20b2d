package chem

import "github.com/vk/chembatch/internal/vec"

// State holds the mutable thermodynamic state of one cell. The engine
// rewrites it once per operator-split step; exactly one driver (or one
// history entry) owns any given State at a time.
type State struct {
	WaterDensity    float64 // kg/m^3
	Porosity        float64 // -
	Temperature     float64 // C
	AqueousPressure float64 // Pa

	TotalMobile                vec.Vector[float64] // NumPrimary
	TotalImmobile              vec.Vector[float64] // NumSorbed
	MineralVolumeFraction      vec.Vector[float64] // NumMinerals
	MineralSpecificSurfaceArea vec.Vector[float64] // NumMinerals
	SurfaceSiteDensity         vec.Vector[float64] // NumSurfaceSites
	CationExchangeCapacity     vec.Vector[float64] // NumIonExchangeSites
	GasConcentration           vec.Vector[float64] // NumGases
}

// NewState allocates a State shaped by the sizing record. Every vector
// is sized from the record directly, never from a sibling member.
func NewState(s Sizes) *State {
	s.mustCheck()
	return &State{
		TotalMobile:                vec.New[float64](s.NumPrimary),
		TotalImmobile:              vec.New[float64](s.NumSorbed),
		MineralVolumeFraction:      vec.New[float64](s.NumMinerals),
		MineralSpecificSurfaceArea: vec.New[float64](s.NumMinerals),
		SurfaceSiteDensity:         vec.New[float64](s.NumSurfaceSites),
		CationExchangeCapacity:     vec.New[float64](s.NumIonExchangeSites),
		GasConcentration:           vec.New[float64](s.NumGases),
	}
}

// Copy returns an independently owned deep copy.
func (st *State) Copy() *State {
	out := *st
	out.TotalMobile = st.TotalMobile.Copy()
	out.TotalImmobile = st.TotalImmobile.Copy()
	out.MineralVolumeFraction = st.MineralVolumeFraction.Copy()
	out.MineralSpecificSurfaceArea = st.MineralSpecificSurfaceArea.Copy()
	out.SurfaceSiteDensity = st.SurfaceSiteDensity.Copy()
	out.CationExchangeCapacity = st.CationExchangeCapacity.Copy()
	out.GasConcentration = st.GasConcentration.Copy()
	return &out
}

// Release frees every vector member and zeroes the record. Safe to call
// repeatedly.
func (st *State) Release() {
	st.TotalMobile.Release()
	st.TotalImmobile.Release()
	st.MineralVolumeFraction.Release()
	st.MineralSpecificSurfaceArea.Release()
	st.SurfaceSiteDensity.Release()
	st.CationExchangeCapacity.Release()
	st.GasConcentration.Release()
	st.WaterDensity, st.Porosity, st.Temperature, st.AqueousPressure = 0, 0, 0, 0
}

// Properties holds the material and problem parameters the engine reads
// but never mutates.
type Properties struct {
	Volume     float64 // m^3
	Saturation float64 // -

	IsothermKd          vec.Vector[float64] // NumPrimary
	FreundlichN         vec.Vector[float64] // NumPrimary
	LangmuirB           vec.Vector[float64] // NumPrimary
	AqueousRateConstant vec.Vector[float64] // NumAqueousKinetics
	MineralRateConstant vec.Vector[float64] // NumMineralKinetics
}

// NewProperties allocates a Properties record shaped by the sizing record.
func NewProperties(s Sizes) *Properties {
	s.mustCheck()
	return &Properties{
		IsothermKd:          vec.New[float64](s.NumPrimary),
		FreundlichN:         vec.New[float64](s.NumPrimary),
		LangmuirB:           vec.New[float64](s.NumPrimary),
		AqueousRateConstant: vec.New[float64](s.NumAqueousKinetics),
		MineralRateConstant: vec.New[float64](s.NumMineralKinetics),
	}
}

// Copy returns an independently owned deep copy.
func (p *Properties) Copy() *Properties {
	out := *p
	out.IsothermKd = p.IsothermKd.Copy()
	out.FreundlichN = p.FreundlichN.Copy()
	out.LangmuirB = p.LangmuirB.Copy()
	out.AqueousRateConstant = p.AqueousRateConstant.Copy()
	out.MineralRateConstant = p.MineralRateConstant.Copy()
	return &out
}

// Release frees every vector member and zeroes the record.
func (p *Properties) Release() {
	p.IsothermKd.Release()
	p.FreundlichN.Release()
	p.LangmuirB.Release()
	p.AqueousRateConstant.Release()
	p.MineralRateConstant.Release()
	p.Volume, p.Saturation = 0, 0
}

// AuxiliaryData is engine-owned scratch storage the driver round-trips
// between steps without interpreting.
type AuxiliaryData struct {
	Ints    vec.Vector[int]     // NumAuxiliaryIntegers
	Doubles vec.Vector[float64] // NumAuxiliaryDoubles
}

// NewAuxiliaryData allocates scratch storage shaped by the sizing record.
func NewAuxiliaryData(s Sizes) *AuxiliaryData {
	s.mustCheck()
	return &AuxiliaryData{
		Ints:    vec.New[int](s.NumAuxiliaryIntegers),
		Doubles: vec.New[float64](s.NumAuxiliaryDoubles),
	}
}

// Copy returns an independently owned deep copy.
func (a *AuxiliaryData) Copy() *AuxiliaryData {
	return &AuxiliaryData{Ints: a.Ints.Copy(), Doubles: a.Doubles.Copy()}
}

// Release frees the scratch storage.
func (a *AuxiliaryData) Release() {
	a.Ints.Release()
	a.Doubles.Release()
}

// AuxiliaryOutput carries the diagnostics an engine derives fresh on
// every step.
type AuxiliaryOutput struct {
	PH float64

	MineralSaturationIndex      vec.Vector[float64] // NumMinerals
	MineralReactionRate         vec.Vector[float64] // NumMineralKinetics
	AqueousKineticRate          vec.Vector[float64] // NumAqueousKinetics
	PrimaryFreeIonConcentration vec.Vector[float64] // NumPrimary
	PrimaryActivityCoefficient  vec.Vector[float64] // NumPrimary
}

// NewAuxiliaryOutput allocates a diagnostics record shaped by the sizing
// record.
func NewAuxiliaryOutput(s Sizes) *AuxiliaryOutput {
	s.mustCheck()
	return &AuxiliaryOutput{
		MineralSaturationIndex:      vec.New[float64](s.NumMinerals),
		MineralReactionRate:         vec.New[float64](s.NumMineralKinetics),
		AqueousKineticRate:          vec.New[float64](s.NumAqueousKinetics),
		PrimaryFreeIonConcentration: vec.New[float64](s.NumPrimary),
		PrimaryActivityCoefficient:  vec.New[float64](s.NumPrimary),
	}
}

// Copy returns an independently owned deep copy.
func (a *AuxiliaryOutput) Copy() *AuxiliaryOutput {
	out := *a
	out.MineralSaturationIndex = a.MineralSaturationIndex.Copy()
	out.MineralReactionRate = a.MineralReactionRate.Copy()
	out.AqueousKineticRate = a.AqueousKineticRate.Copy()
	out.PrimaryFreeIonConcentration = a.PrimaryFreeIonConcentration.Copy()
	out.PrimaryActivityCoefficient = a.PrimaryActivityCoefficient.Copy()
	return &out
}

// Release frees every vector member and zeroes the record.
func (a *AuxiliaryOutput) Release() {
	a.MineralSaturationIndex.Release()
	a.MineralReactionRate.Release()
	a.AqueousKineticRate.Release()
	a.PrimaryFreeIonConcentration.Release()
	a.PrimaryActivityCoefficient.Release()
	a.PH = 0
}

// ProblemMetadata names the problem's components. The engine populates
// it once during setup; it is read-only afterwards.
type ProblemMetadata struct {
	PrimaryNames      vec.Vector[string] // NumPrimary
	MineralNames      vec.Vector[string] // NumMinerals
	SurfaceSiteNames  vec.Vector[string] // NumSurfaceSites
	IonExchangeNames  vec.Vector[string] // NumIonExchangeSites
	GasNames          vec.Vector[string] // NumGases
	PrimaryPositivity vec.Vector[int]    // NumPrimary, nonzero = positivity-constrained
}

// NewProblemMetadata allocates a metadata record shaped by the sizing
// record.
func NewProblemMetadata(s Sizes) *ProblemMetadata {
	s.mustCheck()
	return &ProblemMetadata{
		PrimaryNames:      vec.New[string](s.NumPrimary),
		MineralNames:      vec.New[string](s.NumMinerals),
		SurfaceSiteNames:  vec.New[string](s.NumSurfaceSites),
		IonExchangeNames:  vec.New[string](s.NumIonExchangeSites),
		GasNames:          vec.New[string](s.NumGases),
		PrimaryPositivity: vec.New[int](s.NumPrimary),
	}
}

// Copy returns an independently owned deep copy.
func (m *ProblemMetadata) Copy() *ProblemMetadata {
	return &ProblemMetadata{
		PrimaryNames:      m.PrimaryNames.Copy(),
		MineralNames:      m.MineralNames.Copy(),
		SurfaceSiteNames:  m.SurfaceSiteNames.Copy(),
		IonExchangeNames:  m.IonExchangeNames.Copy(),
		GasNames:          m.GasNames.Copy(),
		PrimaryPositivity: m.PrimaryPositivity.Copy(),
	}
}

// Release frees every vector member.
func (m *ProblemMetadata) Release() {
	m.PrimaryNames.Release()
	m.MineralNames.Release()
	m.SurfaceSiteNames.Release()
	m.IonExchangeNames.Release()
	m.GasNames.Release()
	m.PrimaryPositivity.Release()
}

// IndexOf returns the position of name in names, or -1 when absent.
func IndexOf(names *vec.Vector[string], name string) int {
	for i := 0; i < names.Len(); i++ {
		if names.At(i) == name {
			return i
		}
	}
	return -1
}

// Functionality describes what a compiled-in engine supports. Pure
// scalars; copied by value.
type Functionality struct {
	ThreadSafe           bool
	TemperatureDependent bool
	PressureDependent    bool
	PorosityUpdate       bool
	OperatorSplitting    bool
	IndexBase            int
}
