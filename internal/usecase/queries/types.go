package queries

import (
	"time"

	"hall-booking/internal/domain/booking"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID               uuid.UUID          `json:"id"`
	ResourceID       uuid.UUID          `json:"resource_id"`
	ResourceName     string             `json:"resource_name"`
	RequesterID      uuid.UUID          `json:"requester_id"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Department       string             `json:"department"`
	Purpose          string             `json:"purpose"`
	Date             string             `json:"date"`
	StartTime        string             `json:"start_time"`
	EndTime          string             `json:"end_time"`
	AttendeeCount    int                `json:"attendee_count"`
	Status           string             `json:"status"`
	CurrentStepIndex int                `json:"current_step_index"`
	Steps            []ApprovalStepView `json:"approval_steps"`
	CreatedAt        time.Time          `json:"created_at"`
	UpdatedAt        time.Time          `json:"updated_at"`
}

type ApprovalStepView struct {
	StepIndex int        `json:"step_index"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	ActedAt   *time.Time `json:"acted_at,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

type BookingListItem struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	RequesterID  uuid.UUID `json:"requester_id"`
	Title        string    `json:"title"`
	Purpose      string    `json:"purpose"`
	Date         string    `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

type ResourceView struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Capacity  int       `json:"capacity"`
	Location  string    `json:"location"`
	Amenities []string  `json:"amenities"`
	Available bool      `json:"available"`
}

type OccupiedSlotView struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// BookingFilter narrows List results. Nil fields match everything.
type BookingFilter struct {
	RequesterID *uuid.UUID
	ResourceID  *uuid.UUID
	Status      *booking.Status
	From        *booking.Date
	To          *booking.Date
}
