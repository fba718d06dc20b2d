package driver

import (
	"github.com/vk/chembatch/internal/chem"
	"github.com/vk/chembatch/internal/vec"
)

// Entry is one recorded snapshot: the simulation time, a deep copy of
// the State after the step, and the diagnostics derived for it. Entries
// are never mutated once appended.
type Entry struct {
	Time  float64
	State *chem.State
	Aux   *chem.AuxiliaryOutput
}

// History is the append-only, time-ordered snapshot sequence for one
// run. The backing buffer follows the container growth rules, so
// capacity doubles as steps accumulate.
type History struct {
	entries vec.Vector[Entry]
}

// Append records a snapshot. The entry must already own its records;
// the history takes that ownership.
func (h *History) Append(e Entry) {
	n := h.entries.Len()
	h.entries.Resize(n + 1)
	h.entries.Set(n, e)
}

// Len returns the number of recorded entries.
func (h *History) Len() int { return h.entries.Len() }

// At returns the i-th entry, oldest first.
func (h *History) At(i int) Entry { return h.entries.At(i) }

// Release frees every snapshot and the buffer itself.
func (h *History) Release() {
	for i := 0; i < h.entries.Len(); i++ {
		e := h.entries.At(i)
		e.State.Release()
		e.Aux.Release()
	}
	h.entries.Release()
}
