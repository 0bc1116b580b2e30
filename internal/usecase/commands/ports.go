package commands

import (
	"context"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/resource"

	"github.com/google/uuid"
)

// BookingRepository is the write-side port for booking aggregates.
type BookingRepository interface {
	Create(ctx context.Context, b *booking.Booking) error
	Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error)
	Update(ctx context.Context, b *booking.Booking) error
	// ListHolding returns all bookings whose status still occupies an
	// availability reservation (pending and approved), for index rebuild
	// at startup.
	ListHolding(ctx context.Context) ([]*booking.Booking, error)
}

// ResourceRepository reads the hall catalog. The engine never writes it.
type ResourceRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error)
}
