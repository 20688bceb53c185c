package stage

// Status represents the lifecycle state of a Stage.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusValidated  Status = "validated"
	StatusClosed     Status = "closed"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusValidated, StatusClosed:
		return true
	default:
		return false
	}
}

// Terminal reports whether the stage has left the active part of its
// lifecycle. A terminal stage can never be validated again.
func (s Status) Terminal() bool {
	return s == StatusValidated || s == StatusClosed
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
