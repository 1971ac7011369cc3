package application

// allowedTransitions is the single source of truth for the status lifecycle.
// REJECTED and HIRED are terminal; self-transitions are never allowed.
var allowedTransitions = map[Status][]Status{
	StatusApplied:     {StatusShortlisted, StatusRejected},
	StatusShortlisted: {StatusHired, StatusRejected},
	StatusRejected:    {},
	StatusHired:       {},
}

// IsValidTransition reports whether an application may move from one status
// to another. Pure; callers must not special-case transitions elsewhere.
func IsValidTransition(from, to Status) bool {
	if from == to {
		return false
	}
	for _, allowed := range allowedTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether no further transition is possible.
func IsTerminal(status Status) bool {
	return len(allowedTransitions[status]) == 0
}
