package task

// Status represents the completion state of a Task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "in_progress"
	StatusDone       Status = "done"
	StatusCanceled   Status = "canceled"
)

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone, StatusCanceled:
		return true
	default:
		return false
	}
}

// Terminal reports whether the task lifecycle is finished.
func (s Status) Terminal() bool {
	return s == StatusDone || s == StatusCanceled
}

// String implements fmt.Stringer.
func (s Status) String() string {
	return string(s)
}
