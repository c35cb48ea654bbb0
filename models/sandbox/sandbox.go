package sandbox

// State carries the what-if overrides for simulation mode: staffing deltas
// per role and demand growth rates per service category. Computations that
// honor it receive it as an explicit parameter and treat it as a read-only
// snapshot for the duration of a single report.
type State struct {
	Active        bool               `json:"active"`
	StaffDeltas   map[string]int     `json:"staff_deltas,omitempty"`   // role -> headcount delta
	ServiceGrowth map[string]float64 `json:"service_growth,omitempty"` // category -> growth rate (0.2 = +20%)
}

// Inactive returns the zero-override state.
func Inactive() State {
	return State{}
}

// GrowthFor returns the growth rate for a service category, 0 when the
// simulation is off or the category has no override.
func (s State) GrowthFor(category string) float64 {
	if !s.Active || s.ServiceGrowth == nil {
		return 0
	}
	return s.ServiceGrowth[category]
}

// DeltaFor returns the headcount delta for a role, 0 when the simulation
// is off or the role has no override.
func (s State) DeltaFor(role string) int {
	if !s.Active || s.StaffDeltas == nil {
		return 0
	}
	return s.StaffDeltas[role]
}
