//go:build unit || e2e

package builder

import (
	"time"

	dombooking "hall-booking/internal/domain/booking"
	reqdto "hall-booking/internal/handler/dto/request"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

var DefaultChain = []string{"secretary", "chair", "facility_manager"}

type BookingBuilder struct {
	ResourceID    uuid.UUID
	ResourceName  string
	RequesterID   uuid.UUID
	Title         string
	Description   string
	Department    string
	Purpose       string
	Date          string
	StartTime     string
	EndTime       string
	AttendeeCount int
	Chain         []string
	CreatedAt     time.Time
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ResourceID:    uuid.New(),
		ResourceName:  "Main Auditorium",
		RequesterID:   uuid.New(),
		Title:         "Department Seminar",
		Description:   "Weekly research seminar",
		Department:    "Computer Science",
		Purpose:       "lecture",
		Date:          "2026-10-12",
		StartTime:     "09:00",
		EndTime:       "11:00",
		AttendeeCount: 40,
		Chain:         DefaultChain,
		CreatedAt:     time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) BuildDomain() *dombooking.Booking {
	slot := b.BuildSlot()
	purpose, err := dombooking.NewPurpose(b.Purpose)
	if err != nil {
		panic(err)
	}
	return dombooking.NewBooking(
		b.ResourceID,
		b.RequesterID,
		b.Title,
		b.Description,
		b.Department,
		purpose,
		slot,
		b.AttendeeCount,
		b.Chain,
		b.CreatedAt,
	)
}

func (b *BookingBuilder) BuildSlot() dombooking.TimeSlot {
	date, err := dombooking.ParseDate(b.Date)
	if err != nil {
		panic(err)
	}
	start, err := dombooking.ParseMinuteOfDay(b.StartTime)
	if err != nil {
		panic(err)
	}
	end, err := dombooking.ParseMinuteOfDay(b.EndTime)
	if err != nil {
		panic(err)
	}
	slot, err := dombooking.NewTimeSlot(date, start, end)
	if err != nil {
		panic(err)
	}
	return slot
}

func (b *BookingBuilder) BuildRequest() dombooking.Request {
	date, _ := dombooking.ParseDate(b.Date)
	start, _ := dombooking.ParseMinuteOfDay(b.StartTime)
	end, _ := dombooking.ParseMinuteOfDay(b.EndTime)
	return dombooking.Request{
		ResourceID:    b.ResourceID,
		RequesterID:   b.RequesterID,
		Title:         b.Title,
		Description:   b.Description,
		Department:    b.Department,
		Purpose:       b.Purpose,
		Date:          date,
		Start:         start,
		End:           end,
		AttendeeCount: b.AttendeeCount,
	}
}

func (b *BookingBuilder) BuildCommandInput() commands.CreateBookingInput {
	date, _ := dombooking.ParseDate(b.Date)
	start, _ := dombooking.ParseMinuteOfDay(b.StartTime)
	end, _ := dombooking.ParseMinuteOfDay(b.EndTime)
	return commands.CreateBookingInput{
		ResourceID:    b.ResourceID,
		RequesterID:   b.RequesterID,
		Title:         b.Title,
		Description:   b.Description,
		Department:    b.Department,
		Purpose:       b.Purpose,
		Date:          date,
		Start:         start,
		End:           end,
		AttendeeCount: b.AttendeeCount,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ResourceID:    b.ResourceID,
		Title:         b.Title,
		Description:   b.Description,
		Department:    b.Department,
		Purpose:       b.Purpose,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		AttendeeCount: b.AttendeeCount,
	}
}

func (b *BookingBuilder) BuildView() *queries.BookingView {
	steps := make([]queries.ApprovalStepView, len(b.Chain))
	for i, role := range b.Chain {
		steps[i] = queries.ApprovalStepView{
			StepIndex: i,
			Role:      role,
			Status:    string(dombooking.StepPending),
		}
	}
	return &queries.BookingView{
		ID:               uuid.New(),
		ResourceID:       b.ResourceID,
		ResourceName:     b.ResourceName,
		RequesterID:      b.RequesterID,
		Title:            b.Title,
		Description:      b.Description,
		Department:       b.Department,
		Purpose:          b.Purpose,
		Date:             b.Date,
		StartTime:        b.StartTime,
		EndTime:          b.EndTime,
		AttendeeCount:    b.AttendeeCount,
		Status:           string(dombooking.StatusPending),
		CurrentStepIndex: 0,
		Steps:            steps,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *BookingBuilder) BuildListItem() *queries.BookingListItem {
	return &queries.BookingListItem{
		ID:           uuid.New(),
		ResourceID:   b.ResourceID,
		ResourceName: b.ResourceName,
		RequesterID:  b.RequesterID,
		Title:        b.Title,
		Purpose:      b.Purpose,
		Date:         b.Date,
		StartTime:    b.StartTime,
		EndTime:      b.EndTime,
		Status:       string(dombooking.StatusPending),
		CreatedAt:    b.CreatedAt,
	}
}
