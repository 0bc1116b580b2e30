package booking

import (
	"time"

	"github.com/google/uuid"
)

// ApprovalStep is one role's gated sign-off. Steps are instantiated from
// the configured chain at booking creation and acted on strictly in
// index order.
type ApprovalStep struct {
	index   int
	role    string
	status  StepStatus
	actedAt *time.Time
	notes   *string
}

func (s ApprovalStep) Index() int         { return s.index }
func (s ApprovalStep) Role() string       { return s.role }
func (s ApprovalStep) Status() StepStatus { return s.status }
func (s ApprovalStep) Notes() *string     { return s.notes }

func (s ApprovalStep) ActedAt() *time.Time {
	if s.actedAt == nil {
		return nil
	}
	t := *s.actedAt
	return &t
}

// ReconstructApprovalStep rebuilds a step from storage.
func ReconstructApprovalStep(index int, role string, status StepStatus, actedAt *time.Time, notes *string) ApprovalStep {
	return ApprovalStep{index: index, role: role, status: status, actedAt: actedAt, notes: notes}
}

// Booking is the aggregate root. Status is derived from the approval
// steps (any rejection vetoes, full approval commits) except for the
// requester-initiated cancelled state. Once terminal it never mutates.
type Booking struct {
	id            uuid.UUID
	resourceID    uuid.UUID
	requesterID   uuid.UUID
	title         string
	description   string
	department    string
	purpose       Purpose
	slot          TimeSlot
	attendeeCount int
	status        Status
	steps         []ApprovalStep
	createdAt     time.Time
	updatedAt     time.Time
}

// NewBooking creates a pending booking with a fresh approval chain at
// step 0. The caller must already hold the availability reservation for
// the slot.
func NewBooking(
	resourceID, requesterID uuid.UUID,
	title, description, department string,
	purpose Purpose,
	slot TimeSlot,
	attendeeCount int,
	chain []string,
	now time.Time,
) *Booking {
	steps := make([]ApprovalStep, len(chain))
	for i, role := range chain {
		steps[i] = ApprovalStep{index: i, role: role, status: StepPending}
	}
	return &Booking{
		id:            uuid.New(),
		resourceID:    resourceID,
		requesterID:   requesterID,
		title:         title,
		description:   description,
		department:    department,
		purpose:       purpose,
		slot:          slot,
		attendeeCount: attendeeCount,
		status:        StatusPending,
		steps:         steps,
		createdAt:     now,
		updatedAt:     now,
	}
}

func ReconstructBooking(
	id, resourceID, requesterID uuid.UUID,
	title, description, department string,
	purpose Purpose,
	slot TimeSlot,
	attendeeCount int,
	status Status,
	steps []ApprovalStep,
	createdAt, updatedAt time.Time,
) *Booking {
	return &Booking{
		id:            id,
		resourceID:    resourceID,
		requesterID:   requesterID,
		title:         title,
		description:   description,
		department:    department,
		purpose:       purpose,
		slot:          slot,
		attendeeCount: attendeeCount,
		status:        status,
		steps:         steps,
		createdAt:     createdAt,
		updatedAt:     updatedAt,
	}
}

func (b *Booking) ID() uuid.UUID          { return b.id }
func (b *Booking) ResourceID() uuid.UUID  { return b.resourceID }
func (b *Booking) RequesterID() uuid.UUID { return b.requesterID }
func (b *Booking) Title() string          { return b.title }
func (b *Booking) Description() string    { return b.description }
func (b *Booking) Department() string     { return b.department }
func (b *Booking) Purpose() Purpose       { return b.purpose }
func (b *Booking) Slot() TimeSlot         { return b.slot }
func (b *Booking) AttendeeCount() int     { return b.attendeeCount }
func (b *Booking) Status() Status         { return b.status }
func (b *Booking) CreatedAt() time.Time   { return b.createdAt }
func (b *Booking) UpdatedAt() time.Time   { return b.updatedAt }

func (b *Booking) Steps() []ApprovalStep {
	out := make([]ApprovalStep, len(b.steps))
	copy(out, b.steps)
	return out
}

// CurrentStepIndex returns the lowest pending step index, or -1 when the
// booking is terminal.
func (b *Booking) CurrentStepIndex() int {
	if b.status.IsTerminal() {
		return -1
	}
	for _, s := range b.steps {
		if s.status == StepPending {
			return s.index
		}
	}
	return -1
}

// Act applies one approver decision at stepIndex. The step must be the
// current pending one and actorRole must hold it. A rejection is a veto:
// the booking terminates immediately. The final approval terminates it
// as approved.
func (b *Booking) Act(stepIndex int, actorRole string, decision Decision, notes *string, now time.Time) error {
	if b.status.IsTerminal() {
		return &InvalidTransitionError{
			BookingID:   b.id,
			Status:      b.status,
			CurrentStep: -1,
			Reason:      "booking already reached a terminal state",
		}
	}
	current := b.CurrentStepIndex()
	if stepIndex != current {
		return &InvalidTransitionError{
			BookingID:   b.id,
			Status:      b.status,
			CurrentStep: current,
			Reason:      "step acted out of order",
		}
	}
	step := &b.steps[current]
	if step.role != actorRole {
		return &RoleMismatchError{
			BookingID:    b.id,
			RequiredRole: step.role,
			ActorRole:    actorRole,
		}
	}

	switch decision {
	case DecisionApprove:
		step.status = StepApproved
	case DecisionReject:
		step.status = StepRejected
	default:
		return &InvalidTransitionError{
			BookingID:   b.id,
			Status:      b.status,
			CurrentStep: current,
			Reason:      "unknown decision",
		}
	}
	step.actedAt = &now
	step.notes = notes

	b.status = b.deriveStatus()
	b.updatedAt = now
	return nil
}

// Cancel is the requester-initiated terminal transition, valid only
// while the booking is still pending.
func (b *Booking) Cancel(byRequesterID uuid.UUID, now time.Time) error {
	if byRequesterID != b.requesterID {
		return &RoleMismatchError{
			BookingID:    b.id,
			RequiredRole: "requester",
			ActorRole:    "other user",
		}
	}
	if b.status != StatusPending {
		return &InvalidTransitionError{
			BookingID:   b.id,
			Status:      b.status,
			CurrentStep: b.CurrentStepIndex(),
			Reason:      "only pending bookings can be cancelled",
		}
	}
	b.status = StatusCancelled
	b.updatedAt = now
	return nil
}

func (b *Booking) deriveStatus() Status {
	if b.status == StatusCancelled {
		return StatusCancelled
	}
	allApproved := true
	for _, s := range b.steps {
		switch s.status {
		case StepRejected:
			return StatusRejected
		case StepPending:
			allApproved = false
		case StepApproved:
		}
	}
	if allApproved {
		return StatusApproved
	}
	return StatusPending
}
