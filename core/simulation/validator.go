package simulation

import "github.com/gridsim/meritsim/core/model"

// ValidateAlignment verifies that every hourly input carries exactly the
// demand series' hour labels: same length, same values, same order. It must
// run before any aggregation; a silent misalignment would yield plausible
// but wrong results rather than a crash.
func ValidateAlignment(sc model.Scenario) error {
	ref := sc.Demand.Hours()
	checks := []struct {
		input string
		hours []model.Hour
	}{
		{"gas price", sc.GasPrices.Hours()},
		{"wind load factor", sc.WindLoadFactors.Hours},
		{"solar load factor", sc.SolarLoadFactors.Hours},
	}
	for _, c := range checks {
		if !equalHours(ref, c.hours) {
			return AlignmentError{Input: c.input}
		}
	}
	return nil
}

func equalHours(a, b []model.Hour) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
