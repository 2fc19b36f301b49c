package domain

// Status is the lifecycle state of a change request. The machine is
// forward-only: once a request leaves PENDING it never comes back.
type Status string

const (
	StatusPending   Status = "PENDING"
	StatusResolved  Status = "RESOLVED"
	StatusCancelled Status = "CANCELLED"
)

// transitions is the closed transition table. Terminal states have no entry.
var transitions = map[Status][]Status{
	StatusPending: {StatusResolved, StatusCancelled},
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusResolved, StatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

// CanTransitionTo checks the transition table.
func (s Status) CanTransitionTo(next Status) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
