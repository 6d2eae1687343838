package simulation

import (
	"sort"

	"github.com/gridsim/meritsim/core/model"
)

// MeritOrderStack is the thermal fleet ordered by descending efficiency,
// i.e. ascending marginal cost. Units of equal efficiency keep their
// original relative order; input order is the documented tie-break since it
// carries no other meaning. Built once per run, read-only afterwards.
type MeritOrderStack struct {
	Names        []string
	CapacitiesMW []float64
	Efficiencies []float64
}

// BuildMeritOrder sorts the thermal plants into dispatch priority. The
// caller's slice is left untouched.
func BuildMeritOrder(plants []model.ThermalPlant) MeritOrderStack {
	ordered := make([]model.ThermalPlant, len(plants))
	copy(ordered, plants)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Efficiency > ordered[j].Efficiency
	})

	stack := MeritOrderStack{
		Names:        make([]string, len(ordered)),
		CapacitiesMW: make([]float64, len(ordered)),
		Efficiencies: make([]float64, len(ordered)),
	}
	for i, p := range ordered {
		stack.Names[i] = p.Name
		stack.CapacitiesMW[i] = p.CapacityMW
		stack.Efficiencies[i] = p.Efficiency
	}
	return stack
}

// Len returns the number of units in the stack.
func (s MeritOrderStack) Len() int { return len(s.CapacitiesMW) }

// TotalCapacityMW is the summed capacity of the whole stack.
func (s MeritOrderStack) TotalCapacityMW() float64 {
	var total float64
	for _, c := range s.CapacitiesMW {
		total += c
	}
	return total
}
