package domain

// MaxLoginFailures is the consecutive failure count at which login attempts
// stop until the counter is reset externally.
const MaxLoginFailures = 5

type GateState string

const (
	GateActive     GateState = "active"
	GateRestricted GateState = "restricted"
)

// LoginGate returns the gate state for a failure counter value. Restricted is
// sticky: only resetting the counter leaves it.
func LoginGate(failures int) GateState {
	if failures >= MaxLoginFailures {
		return GateRestricted
	}
	return GateActive
}
