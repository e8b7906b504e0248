package model

// State is the lifecycle state of a device.
type State string

const (
	StateAvailable State = "available"
	StateInUse     State = "in-use"
	StateInactive  State = "inactive"
)

// String returns the canonical kebab-case wire form.
func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	switch s {
	case StateAvailable, StateInUse, StateInactive:
		return true
	default:
		return false
	}
}

// StateFromWire looks up a state by its exact canonical spelling. Any other
// input, malformed or empty, yields ok=false rather than an error; rejecting
// unknown spellings is the boundary's job, not the mapping's.
func StateFromWire(s string) (State, bool) {
	state := State(s)
	if !state.IsValid() {
		return "", false
	}

	return state, true
}

func AllStates() []State {
	return []State{StateAvailable, StateInUse, StateInactive}
}
