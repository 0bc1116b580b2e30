package request

import (
	"strings"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ResourceID    uuid.UUID `json:"resource_id" binding:"required"`
	Title         string    `json:"title" binding:"required"`
	Description   string    `json:"description,omitempty"`
	Department    string    `json:"department" binding:"required"`
	Purpose       string    `json:"purpose" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	StartTime     string    `json:"start_time" binding:"required"`
	EndTime       string    `json:"end_time" binding:"required"`
	AttendeeCount int       `json:"attendee_count" binding:"required"`
}

func (r CreateBookingRequest) ToInput(requesterID uuid.UUID) (commands.CreateBookingInput, error) {
	date, err := booking.ParseDate(r.Date)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	start, err := booking.ParseMinuteOfDay(r.StartTime)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}
	end, err := booking.ParseMinuteOfDay(r.EndTime)
	if err != nil {
		return commands.CreateBookingInput{}, err
	}

	return commands.CreateBookingInput{
		ResourceID:    r.ResourceID,
		RequesterID:   requesterID,
		Title:         strings.TrimSpace(r.Title),
		Description:   strings.TrimSpace(r.Description),
		Department:    strings.TrimSpace(r.Department),
		Purpose:       strings.TrimSpace(r.Purpose),
		Date:          date,
		Start:         start,
		End:           end,
		AttendeeCount: r.AttendeeCount,
	}, nil
}

type ApprovalActionRequest struct {
	StepIndex int     `json:"step_index"`
	Decision  string  `json:"decision" binding:"required"`
	Notes     *string `json:"notes,omitempty"`
}

func (r ApprovalActionRequest) GetNotes() *string {
	if r.Notes == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.Notes)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
