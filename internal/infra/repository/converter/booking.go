// Package converter translates booking aggregates to and from their
// storage representation. Approval steps travel as a JSON document in a
// single column so a workflow transition is one row update.
package converter

import (
	"encoding/json"
	"time"

	"hall-booking/internal/domain/booking"

	"github.com/google/uuid"
)

type StepRecord struct {
	Index   int        `json:"index"`
	Role    string     `json:"role"`
	Status  string     `json:"status"`
	ActedAt *time.Time `json:"acted_at,omitempty"`
	Notes   *string    `json:"notes,omitempty"`
}

// BookingRecord is the flat row shape shared by the write repository and
// the read store.
type BookingRecord struct {
	ID            uuid.UUID
	ResourceID    uuid.UUID
	RequesterID   uuid.UUID
	Title         string
	Description   string
	Department    string
	Purpose       string
	Date          time.Time
	StartMin      int
	EndMin        int
	AttendeeCount int
	Status        string
	Steps         []byte
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func BookingToRecord(b *booking.Booking) (BookingRecord, error) {
	steps := b.Steps()
	records := make([]StepRecord, len(steps))
	for i, s := range steps {
		records[i] = StepRecord{
			Index:   s.Index(),
			Role:    s.Role(),
			Status:  s.Status().String(),
			ActedAt: s.ActedAt(),
			Notes:   s.Notes(),
		}
	}
	raw, err := json.Marshal(records)
	if err != nil {
		return BookingRecord{}, err
	}

	return BookingRecord{
		ID:            b.ID(),
		ResourceID:    b.ResourceID(),
		RequesterID:   b.RequesterID(),
		Title:         b.Title(),
		Description:   b.Description(),
		Department:    b.Department(),
		Purpose:       b.Purpose().String(),
		Date:          b.Slot().Date().Time(),
		StartMin:      b.Slot().Start().Minutes(),
		EndMin:        b.Slot().End().Minutes(),
		AttendeeCount: b.AttendeeCount(),
		Status:        b.Status().String(),
		Steps:         raw,
		CreatedAt:     b.CreatedAt(),
		UpdatedAt:     b.UpdatedAt(),
	}, nil
}

func BookingFromRecord(rec BookingRecord) (*booking.Booking, error) {
	status, err := booking.NewStatus(rec.Status)
	if err != nil {
		return nil, err
	}
	purpose, err := booking.NewPurpose(rec.Purpose)
	if err != nil {
		return nil, err
	}
	slot, err := booking.NewTimeSlot(
		booking.DateOf(rec.Date),
		booking.MinuteOfDay(rec.StartMin),
		booking.MinuteOfDay(rec.EndMin),
	)
	if err != nil {
		return nil, err
	}

	var records []StepRecord
	if err := json.Unmarshal(rec.Steps, &records); err != nil {
		return nil, err
	}
	steps := make([]booking.ApprovalStep, len(records))
	for i, r := range records {
		steps[i] = booking.ReconstructApprovalStep(r.Index, r.Role, booking.StepStatus(r.Status), r.ActedAt, r.Notes)
	}

	return booking.ReconstructBooking(
		rec.ID, rec.ResourceID, rec.RequesterID,
		rec.Title, rec.Description, rec.Department,
		purpose, slot, rec.AttendeeCount,
		status, steps,
		rec.CreatedAt, rec.UpdatedAt,
	), nil
}
