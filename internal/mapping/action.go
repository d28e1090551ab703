package mapping

// ActionKind distinguishes the three output actions the processor emits.
type ActionKind int

const (
	// Click is an atomic press-then-release, respecting already-held keys.
	Click ActionKind = iota
	// Press depresses a host key and keeps it depressed.
	Press
	// Release releases a previously depressed host key.
	Release
)

func (k ActionKind) String() string {
	switch k {
	case Click:
		return "Click"
	case Press:
		return "Press"
	case Release:
		return "Release"
	default:
		return "Unknown"
	}
}

// Action is one output instruction for the Injector. Token is either a
// single host-key token (Press/Release) or a "+"-joined action string
// (Click).
type Action struct {
	Kind  ActionKind
	Token string
}
