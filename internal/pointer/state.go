package pointer

// State is the lifecycle of a per-window handler.
type State uint8

const (
	StateUninitialized State = iota
	StateInitialized
	StateTornDown
)

func (s State) String() string {
	switch s {
	case StateInitialized:
		return "initialized"
	case StateTornDown:
		return "torn down"
	default:
		return "uninitialized"
	}
}
