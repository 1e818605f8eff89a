package protocol

type State int

const (
	Handshaking State = iota
	Status
	Login
	Play
)

func (s State) String() string {
	switch s {
	case Handshaking:
		return "Handshake"
	case Status:
		return "Status"
	case Login:
		return "Login"
	case Play:
		return "Play"
	}
	return "Unknown"
}

// NextState values announced in the handshake.
const (
	NextStateStatus int32 = 1
	NextStateLogin  int32 = 2
)

// canAdvance reports whether from -> to is a legal transition. Status and
// Login are sibling branches of Handshaking; Status is terminal.
func canAdvance(from, to State) bool {
	switch from {
	case Handshaking:
		return to == Status || to == Login
	case Login:
		return to == Play
	}
	return false
}

func advance(cur *State, next State) error {
	if !canAdvance(*cur, next) {
		return violation(*cur, ErrStateRegression, "%s -> %s", *cur, next)
	}
	*cur = next
	return nil
}
