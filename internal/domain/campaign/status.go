package campaign

import "strings"

type Status string

const (
	StatusDraft     Status = "draft"
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
)

// completed has no outgoing edges
var allowedTransitions = map[Status][]Status{
	StatusDraft:     {StatusActive},
	StatusActive:    {StatusPaused, StatusCompleted},
	StatusPaused:    {StatusActive, StatusCompleted},
	StatusCompleted: {},
}

func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if !st.Valid() {
		return "", ErrInvalidStatus
	}
	return st, nil
}

func (s Status) Valid() bool {
	_, ok := allowedTransitions[s]
	return ok
}

func (s Status) String() string { return string(s) }

func (s Status) IsTerminal() bool { return s == StatusCompleted }

func (s Status) CanTransitionTo(target Status) bool {
	for _, next := range allowedTransitions[s] {
		if next == target {
			return true
		}
	}
	return false
}
