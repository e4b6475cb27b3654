package enum

import "encoding/json"

// CheckoutState tracks a single checkout attempt
type CheckoutState int

const (
	CheckoutStateIdle        CheckoutState = 0
	CheckoutStateValidating  CheckoutState = 1
	CheckoutStateCommitting  CheckoutState = 2
	CheckoutStateReplicating CheckoutState = 3
	CheckoutStateDone        CheckoutState = 4
	CheckoutStateRejected    CheckoutState = 5
)

func (s CheckoutState) String() string {
	names := [...]string{"Idle", "Validating", "Committing", "Replicating", "Done", "Rejected"}
	if int(s) < 0 || int(s) >= len(names) {
		return "Idle"
	}
	return names[s]
}

func (s CheckoutState) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// CanTransition reports whether next is a legal successor of s
func (s CheckoutState) CanTransition(next CheckoutState) bool {
	switch s {
	case CheckoutStateIdle:
		return next == CheckoutStateValidating || next == CheckoutStateRejected
	case CheckoutStateValidating:
		return next == CheckoutStateCommitting || next == CheckoutStateRejected
	case CheckoutStateCommitting:
		return next == CheckoutStateReplicating
	case CheckoutStateReplicating:
		return next == CheckoutStateDone
	default:
		return false
	}
}
