package booking

import "fmt"

// Status is the disposition of a booking. Pending and Approved bookings
// hold an availability reservation; Rejected and Cancelled do not.
type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
)

func NewStatus(s string) (Status, error) {
	st := Status(s)
	if !st.IsValid() {
		return "", fmt.Errorf("unknown booking status %q", s)
	}
	return st, nil
}

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further transitions are accepted.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusApproved, StatusRejected, StatusCancelled:
		return true
	case StatusPending:
		return false
	default:
		return false
	}
}

// HoldsReservation reports whether a booking in this status occupies its
// slot in the availability index.
func (s Status) HoldsReservation() bool {
	switch s {
	case StatusPending, StatusApproved:
		return true
	case StatusRejected, StatusCancelled:
		return false
	default:
		return false
	}
}

type StepStatus string

const (
	StepPending  StepStatus = "pending"
	StepApproved StepStatus = "approved"
	StepRejected StepStatus = "rejected"
)

func (s StepStatus) String() string {
	return string(s)
}

func (s StepStatus) IsValid() bool {
	switch s {
	case StepPending, StepApproved, StepRejected:
		return true
	default:
		return false
	}
}

type Decision string

const (
	DecisionApprove Decision = "approve"
	DecisionReject  Decision = "reject"
)

func NewDecision(s string) (Decision, error) {
	d := Decision(s)
	if d != DecisionApprove && d != DecisionReject {
		return "", fmt.Errorf("unknown decision %q", s)
	}
	return d, nil
}

func (d Decision) String() string {
	return string(d)
}

// Purpose is the closed enumeration of what a hall may be booked for.
type Purpose string

const (
	PurposeLecture    Purpose = "lecture"
	PurposeMeeting    Purpose = "meeting"
	PurposeConference Purpose = "conference"
	PurposeWorkshop   Purpose = "workshop"
	PurposeEvent      Purpose = "event"
	PurposeExam       Purpose = "exam"
)

func NewPurpose(s string) (Purpose, error) {
	p := Purpose(s)
	if !p.IsValid() {
		return "", fmt.Errorf("unknown purpose %q", s)
	}
	return p, nil
}

func (p Purpose) String() string {
	return string(p)
}

func (p Purpose) IsValid() bool {
	switch p {
	case PurposeLecture, PurposeMeeting, PurposeConference, PurposeWorkshop, PurposeEvent, PurposeExam:
		return true
	default:
		return false
	}
}
