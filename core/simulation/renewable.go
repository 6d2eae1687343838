package simulation

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/gridsim/meritsim/core/model"
)

// aggregateClass computes the hourly generation total for one renewable
// class as the load-factor matrix times the capacity vector. Columns are
// matched to plants by name, never by position.
func aggregateClass(class string, plants []model.RenewablePlant, lf model.LoadFactorTable) ([]float64, error) {
	hours := len(lf.Hours)
	if len(plants) == 0 || hours == 0 {
		return make([]float64, hours), nil
	}

	factors := mat.NewDense(hours, len(plants), nil)
	capacities := make([]float64, len(plants))
	for j, p := range plants {
		col, ok := lf.Columns[p.Name]
		if !ok {
			return nil, LookupError{Class: class, Plant: p.Name}
		}
		if len(col) != hours {
			return nil, fmt.Errorf("%s load-factor column %q has %d rows, want %d", class, p.Name, len(col), hours)
		}
		factors.SetCol(j, col)
		capacities[j] = p.CapacityMW
	}

	var out mat.VecDense
	out.MulVec(factors, mat.NewVecDense(len(plants), capacities))

	totals := make([]float64, hours)
	copy(totals, out.RawVector().Data)
	return totals, nil
}
