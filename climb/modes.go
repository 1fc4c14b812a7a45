package climb

import "github.com/oomph-ac/oclimb/movement"

// CustomModeClimbing is the custom movement mode of a climbing agent.
const CustomModeClimbing movement.CustomMode = 1

// Role is the part a component plays in a networked simulation.
type Role uint8

const (
	// RoleAuthority components run requests and climbing physics.
	RoleAuthority Role = iota
	// RoleProxy components relay requests to the authority and only mirror replicated state.
	RoleProxy
)

func (r Role) String() string {
	if r == RoleAuthority {
		return "authority"
	}
	return "proxy"
}

// RequestKind is a climbing request relayed from a proxy to the authority.
type RequestKind uint8

const (
	RequestStart RequestKind = iota
	RequestCancel
)

func (k RequestKind) String() string {
	switch k {
	case RequestStart:
		return "start"
	case RequestCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// Relay carries requests from a proxy to the authority. Implementations must deliver requests
// reliably and in the order they were sent.
type Relay interface {
	Send(kind RequestKind) error
}

// ParseRequestKind returns the request kind with the given name.
func ParseRequestKind(name string) (RequestKind, bool) {
	switch name {
	case "start":
		return RequestStart, true
	case "cancel":
		return RequestCancel, true
	}
	return 0, false
}
