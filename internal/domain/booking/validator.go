package booking

import (
	"strings"

	"github.com/google/uuid"
)

// Request is a raw booking request as received from the transport layer,
// before any policy check has run.
type Request struct {
	ResourceID    uuid.UUID
	RequesterID   uuid.UUID
	Title         string
	Description   string
	Department    string
	Purpose       string
	Date          Date
	Start         MinuteOfDay
	End           MinuteOfDay
	AttendeeCount int
}

// Policy is the booking policy injected from configuration: the
// operating window halls can be booked within and the slot granularity.
type Policy struct {
	WindowOpen     MinuteOfDay
	WindowClose    MinuteOfDay
	GranularityMin int
}

// Validator runs the policy checks in a fixed order and short-circuits
// on the first violation. It never partially applies anything.
type Validator struct {
	policy Policy
}

func NewValidator(policy Policy) *Validator {
	return &Validator{policy: policy}
}

func (v *Validator) Policy() Policy {
	return v.policy
}

// Validate checks req against policy and the resource capacity and, on
// success, returns the validated slot and purpose.
func (v *Validator) Validate(req Request, capacity int) (TimeSlot, Purpose, error) {
	if err := v.checkRequired(req); err != nil {
		return TimeSlot{}, "", err
	}

	if req.Start >= req.End {
		return TimeSlot{}, "", newValidationError("start_time", "must be before end_time")
	}

	if req.Start < v.policy.WindowOpen || req.End > v.policy.WindowClose {
		return TimeSlot{}, "", newValidationError("time_slot",
			"must be within operating window "+v.policy.WindowOpen.String()+"-"+v.policy.WindowClose.String())
	}
	if v.policy.GranularityMin > 0 {
		duration := int(req.End - req.Start)
		if duration%v.policy.GranularityMin != 0 {
			return TimeSlot{}, "", newValidationError("time_slot",
				"duration must be a multiple of the slot granularity")
		}
	}

	if req.AttendeeCount < 1 {
		return TimeSlot{}, "", newValidationError("attendee_count", "must be at least 1")
	}
	if req.AttendeeCount > capacity {
		return TimeSlot{}, "", newValidationError("attendee_count", "exceeds resource capacity")
	}

	purpose, err := NewPurpose(req.Purpose)
	if err != nil {
		return TimeSlot{}, "", newValidationError("purpose", "must be one of lecture, meeting, conference, workshop, event, exam")
	}

	slot, err := NewTimeSlot(req.Date, req.Start, req.End)
	if err != nil {
		return TimeSlot{}, "", newValidationError("start_time", "must be before end_time")
	}
	return slot, purpose, nil
}

func (v *Validator) checkRequired(req Request) error {
	if req.ResourceID == uuid.Nil {
		return newValidationError("resource_id", "required")
	}
	if req.RequesterID == uuid.Nil {
		return newValidationError("requester_id", "required")
	}
	if strings.TrimSpace(req.Title) == "" {
		return newValidationError("title", "required")
	}
	if strings.TrimSpace(req.Department) == "" {
		return newValidationError("department", "required")
	}
	if strings.TrimSpace(req.Purpose) == "" {
		return newValidationError("purpose", "required")
	}
	if req.Date.IsZero() {
		return newValidationError("date", "required")
	}
	return nil
}
