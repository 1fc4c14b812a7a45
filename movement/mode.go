package movement

// Mode is the movement mode the base simulation is currently in.
type Mode uint8

const (
	ModeNone Mode = iota
	ModeWalking
	ModeFalling
	// ModeCustom hands every physics step to the Extension, keyed by the active CustomMode.
	ModeCustom
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeWalking:
		return "walking"
	case ModeFalling:
		return "falling"
	case ModeCustom:
		return "custom"
	default:
		return "unknown"
	}
}

// CustomMode identifies a custom movement mode implemented by an Extension. It is only meaningful
// while the mode is ModeCustom.
type CustomMode uint8
