package commands

import (
	"context"
	"log/slog"

	"hall-booking/internal/availability"
	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/resource"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/errs"
	"hall-booking/internal/pkg/keymutex"

	"github.com/google/uuid"
)

var (
	ErrResourceNotFound        = errs.New("resource not found")
	ErrBookingNotFound         = errs.New("booking not found")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

type CreateBookingInput struct {
	ResourceID    uuid.UUID
	RequesterID   uuid.UUID
	Title         string
	Description   string
	Department    string
	Purpose       string
	Date          booking.Date
	Start         booking.MinuteOfDay
	End           booking.MinuteOfDay
	AttendeeCount int
}

type ActInput struct {
	BookingID uuid.UUID
	StepIndex int
	ActorID   uuid.UUID
	ActorRole string
	Decision  string
	Notes     *string
}

// BookingCommands is the write side of the engine: the reservation
// coordinator plus the approval workflow.
type BookingCommands interface {
	CreateBooking(ctx context.Context, in CreateBookingInput) (*booking.Booking, error)
	CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) (*booking.Booking, error)
	ActOnApproval(ctx context.Context, in ActInput) (*booking.Booking, error)
}

type bookingCommandsImpl struct {
	bookings  BookingRepository
	resources ResourceRepository
	index     *availability.Index
	validator *booking.Validator
	chain     []string
	locks     *keymutex.KeyMutex
	clock     clock.Clock
}

func NewBookingCommands(
	bookings BookingRepository,
	resources ResourceRepository,
	index *availability.Index,
	validator *booking.Validator,
	chain []string,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		bookings:  bookings,
		resources: resources,
		index:     index,
		validator: validator,
		chain:     chain,
		locks:     keymutex.New(),
		clock:     clock,
	}
}

// CreateBooking validates the request, atomically reserves the slot in
// the availability index, then persists the pending booking. A failed
// persistence rolls the reservation back, so the index never holds a
// slot for a booking the store does not know.
func (c *bookingCommandsImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (*booking.Booking, error) {
	res, err := c.findResource(ctx, in.ResourceID)
	if err != nil {
		return nil, err
	}
	if !res.Available() {
		return nil, &booking.ValidationError{Field: "resource_id", Constraint: "resource is not open for booking"}
	}

	req := booking.Request{
		ResourceID:    in.ResourceID,
		RequesterID:   in.RequesterID,
		Title:         in.Title,
		Description:   in.Description,
		Department:    in.Department,
		Purpose:       in.Purpose,
		Date:          in.Date,
		Start:         in.Start,
		End:           in.End,
		AttendeeCount: in.AttendeeCount,
	}
	slot, purpose, err := c.validator.Validate(req, res.Capacity())
	if err != nil {
		return nil, err
	}

	if err := c.index.Reserve(in.ResourceID, slot); err != nil {
		return nil, err
	}

	b := booking.NewBooking(
		in.ResourceID, in.RequesterID,
		in.Title, in.Description, in.Department,
		purpose, slot, in.AttendeeCount,
		c.chain, c.clock.Now(),
	)

	if err := c.bookings.Create(ctx, b); err != nil {
		// Compensating release: the reservation must not outlive a
		// failed store write.
		if relErr := c.index.Release(in.ResourceID, slot); relErr != nil {
			slog.Error("failed to roll back reservation after store failure",
				"booking_id", b.ID(), "resource_id", in.ResourceID, "error", relErr)
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return b, nil
}

// ActOnApproval applies one approver decision. Calls for the same
// booking serialize on a per-booking lock so a step cannot be approved
// and rejected concurrently.
func (c *bookingCommandsImpl) ActOnApproval(ctx context.Context, in ActInput) (*booking.Booking, error) {
	decision, err := booking.NewDecision(in.Decision)
	if err != nil {
		return nil, &booking.ValidationError{Field: "decision", Constraint: "must be approve or reject"}
	}

	unlock := c.locks.Lock(in.BookingID)
	defer unlock()

	b, err := c.getBooking(ctx, in.BookingID)
	if err != nil {
		return nil, err
	}

	if err := b.Act(in.StepIndex, in.ActorRole, decision, in.Notes, c.clock.Now()); err != nil {
		return nil, err
	}

	if err := c.bookings.Update(ctx, b); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if b.Status() == booking.StatusRejected {
		c.releaseSlot(b)
	}
	return b, nil
}

// CancelBooking is the requester-initiated terminal transition, guarded
// by the same per-booking lock as ActOnApproval.
func (c *bookingCommandsImpl) CancelBooking(ctx context.Context, bookingID, requesterID uuid.UUID) (*booking.Booking, error) {
	unlock := c.locks.Lock(bookingID)
	defer unlock()

	b, err := c.getBooking(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := b.Cancel(requesterID, c.clock.Now()); err != nil {
		return nil, err
	}

	if err := c.bookings.Update(ctx, b); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	c.releaseSlot(b)
	return b, nil
}

func (c *bookingCommandsImpl) releaseSlot(b *booking.Booking) {
	if err := c.index.Release(b.ResourceID(), b.Slot()); err != nil {
		// Reported, not fatal: the slot is already free.
		slog.Warn("release of terminal booking slot was a no-op",
			"booking_id", b.ID(), "resource_id", b.ResourceID(), "error", err)
	}
}

func (c *bookingCommandsImpl) findResource(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	res, err := c.resources.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return res, nil
}

func (c *bookingCommandsImpl) getBooking(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, err := c.bookings.Get(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrBookingNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return b, nil
}
