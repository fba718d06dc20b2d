package chem

// AqueousConstraint fixes one primary species in a geochemical
// condition. Type selects the constraint kind understood by the engine
// (total, free, pH, charge, mineral, gas); AssociatedSpecies names the
// mineral or gas a constraint equilibrates against, where applicable.
type AqueousConstraint struct {
	Species           string
	Type              string
	AssociatedSpecies string
	Value             float64
}

// MineralConstraint fixes one mineral's initial volume fraction and
// specific surface area in a geochemical condition.
type MineralConstraint struct {
	Mineral             string
	VolumeFraction      float64
	SpecificSurfaceArea float64
}

// Condition is a named initial chemical specification. It is consumed
// once, at initialization, to seed the run's State.
type Condition struct {
	Name     string
	Aqueous  []AqueousConstraint
	Minerals []MineralConstraint
}

// NewCondition allocates a condition with room for the given numbers of
// aqueous and mineral constraints.
func NewCondition(name string, numAqueous, numMinerals int) *Condition {
	if numAqueous < 0 || numMinerals < 0 {
		panic("chem: negative constraint count")
	}
	return &Condition{
		Name:     name,
		Aqueous:  make([]AqueousConstraint, numAqueous),
		Minerals: make([]MineralConstraint, numMinerals),
	}
}

// Copy returns an independently owned deep copy, constraint by
// constraint. Zero-length constraint lists stay zero-length.
func (c *Condition) Copy() *Condition {
	out := NewCondition(c.Name, len(c.Aqueous), len(c.Minerals))
	copy(out.Aqueous, c.Aqueous)
	copy(out.Minerals, c.Minerals)
	return out
}

// Release drops both constraint lists and clears the name.
func (c *Condition) Release() {
	c.Name = ""
	c.Aqueous = nil
	c.Minerals = nil
}

// AqueousValue returns the value of the first aqueous constraint on the
// given species, or 0 and false when the condition does not constrain it.
func (c *Condition) AqueousValue(species string) (float64, bool) {
	for _, a := range c.Aqueous {
		if a.Species == species {
			return a.Value, true
		}
	}
	return 0, false
}

// MineralFor returns the constraint on the named mineral, if any.
func (c *Condition) MineralFor(name string) (MineralConstraint, bool) {
	for _, m := range c.Minerals {
		if m.Mineral == name {
			return m, true
		}
	}
	return MineralConstraint{}, false
}
