package review

import "fmt"

// Status is the integer-coded review state persisted in the database.
// The code values are part of the stored schema; do not renumber.
type Status int

const (
	StatusInvalid    Status = 0
	StatusQueue      Status = 50
	StatusPending    Status = 100
	StatusUndo       Status = 150
	StatusApproved   Status = 200
	StatusRejected   Status = 500
	StatusReassigned Status = 800
)

// StatusFromCode maps a persisted code to a Status. Unknown codes are
// rejected at the boundary instead of falling back to StatusInvalid.
func StatusFromCode(code int) (Status, error) {
	switch Status(code) {
	case StatusInvalid, StatusQueue, StatusPending, StatusUndo,
		StatusApproved, StatusRejected, StatusReassigned:
		return Status(code), nil
	}
	return StatusInvalid, fmt.Errorf("review: unknown status code %d", code)
}

func (s Status) String() string {
	switch s {
	case StatusInvalid:
		return "invalid"
	case StatusQueue:
		return "queue"
	case StatusPending:
		return "pending"
	case StatusUndo:
		return "undo"
	case StatusApproved:
		return "approved"
	case StatusRejected:
		return "rejected"
	case StatusReassigned:
		return "reassigned"
	}
	return fmt.Sprintf("status(%d)", int(s))
}

// Terminal reports whether no further decision commands apply.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Decidable reports whether approve/reject may act on an item in this state.
// Reassigned items stay decidable under their new reviewer.
func (s Status) Decidable() bool {
	return s == StatusPending || s == StatusReassigned
}
