package simulation

import "fmt"

// AlignmentError reports an hourly input whose hour labels diverge from the
// demand series. All hourly arrays are indexed positionally downstream, so a
// misalignment must abort the run before any computation.
type AlignmentError struct {
	Input string
}

func (e AlignmentError) Error() string {
	return fmt.Sprintf("%s hours do not align with demand hours", e.Input)
}

// LookupError reports a plant listed in a capacity table with no matching
// load-factor column.
type LookupError struct {
	Class string
	Plant string
}

func (e LookupError) Error() string {
	return fmt.Sprintf("no %s load-factor column for plant %q", e.Class, e.Plant)
}
