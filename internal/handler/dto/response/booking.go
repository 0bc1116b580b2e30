package response

import (
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID               uuid.UUID              `json:"id"`
	ResourceID       uuid.UUID              `json:"resourceId"`
	ResourceName     string                 `json:"resourceName,omitempty"`
	RequesterID      uuid.UUID              `json:"requesterId"`
	Title            string                 `json:"title"`
	Description      string                 `json:"description,omitempty"`
	Department       string                 `json:"department"`
	Purpose          string                 `json:"purpose"`
	Date             string                 `json:"date"`
	StartTime        string                 `json:"startTime"`
	EndTime          string                 `json:"endTime"`
	AttendeeCount    int                    `json:"attendeeCount"`
	Status           string                 `json:"status"`
	CurrentStepIndex int                    `json:"currentStepIndex"`
	Steps            []ApprovalStepResponse `json:"approvalSteps"`
	CreatedAt        time.Time              `json:"createdAt"`
	UpdatedAt        time.Time              `json:"updatedAt"`
}

type ApprovalStepResponse struct {
	StepIndex int        `json:"stepIndex"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	ActedAt   *time.Time `json:"actedAt,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
}

type BookingListResponse struct {
	ID           uuid.UUID `json:"id"`
	ResourceID   uuid.UUID `json:"resourceId"`
	ResourceName string    `json:"resourceName"`
	RequesterID  uuid.UUID `json:"requesterId"`
	Title        string    `json:"title"`
	Purpose      string    `json:"purpose"`
	Date         string    `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromBookingView(v *queries.BookingView) *BookingResponse {
	steps := make([]ApprovalStepResponse, len(v.Steps))
	for i, s := range v.Steps {
		steps[i] = ApprovalStepResponse{
			StepIndex: s.StepIndex,
			Role:      s.Role,
			Status:    s.Status,
			ActedAt:   s.ActedAt,
			Notes:     s.Notes,
		}
	}
	return &BookingResponse{
		ID:               v.ID,
		ResourceID:       v.ResourceID,
		ResourceName:     v.ResourceName,
		RequesterID:      v.RequesterID,
		Title:            v.Title,
		Description:      v.Description,
		Department:       v.Department,
		Purpose:          v.Purpose,
		Date:             v.Date,
		StartTime:        v.StartTime,
		EndTime:          v.EndTime,
		AttendeeCount:    v.AttendeeCount,
		Status:           v.Status,
		CurrentStepIndex: v.CurrentStepIndex,
		Steps:            steps,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

func FromBookingListItem(v *queries.BookingListItem) *BookingListResponse {
	return &BookingListResponse{
		ID:           v.ID,
		ResourceID:   v.ResourceID,
		ResourceName: v.ResourceName,
		RequesterID:  v.RequesterID,
		Title:        v.Title,
		Purpose:      v.Purpose,
		Date:         v.Date,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		Status:       v.Status,
		CreatedAt:    v.CreatedAt,
	}
}

// FromBooking renders the write-side aggregate directly. Used for
// command responses where the read store may lag behind the write.
func FromBooking(b *booking.Booking) *BookingResponse {
	domainSteps := b.Steps()
	steps := make([]ApprovalStepResponse, len(domainSteps))
	for i, s := range domainSteps {
		steps[i] = ApprovalStepResponse{
			StepIndex: s.Index(),
			Role:      s.Role(),
			Status:    string(s.Status()),
			ActedAt:   s.ActedAt(),
			Notes:     s.Notes(),
		}
	}
	slot := b.Slot()
	return &BookingResponse{
		ID:               b.ID(),
		ResourceID:       b.ResourceID(),
		RequesterID:      b.RequesterID(),
		Title:            b.Title(),
		Description:      b.Description(),
		Department:       b.Department(),
		Purpose:          string(b.Purpose()),
		Date:             slot.Date().String(),
		StartTime:        slot.Start().String(),
		EndTime:          slot.End().String(),
		AttendeeCount:    b.AttendeeCount(),
		Status:           string(b.Status()),
		CurrentStepIndex: b.CurrentStepIndex(),
		Steps:            steps,
		CreatedAt:        b.CreatedAt(),
		UpdatedAt:        b.UpdatedAt(),
	}
}
