// Package dialog implements the profile-collection dialogue: per-user
// transient sessions, the step state machine, and the transition engine
// that drives validation and persistence.
package dialog

// Step is one named state in the dialogue's fixed linear sequence.
type Step int

const (
	// StepAwaitingName expects the user's full name.
	StepAwaitingName Step = iota
	// StepAwaitingAge expects the user's age.
	StepAwaitingAge
	// StepAwaitingAddress expects the user's address.
	StepAwaitingAddress
)

func (s Step) String() string {
	switch s {
	case StepAwaitingName:
		return "awaiting_name"
	case StepAwaitingAge:
		return "awaiting_age"
	case StepAwaitingAddress:
		return "awaiting_address"
	default:
		return "unknown"
	}
}
