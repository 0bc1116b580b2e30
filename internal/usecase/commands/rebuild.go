package commands

import (
	"context"
	"log/slog"

	"hall-booking/internal/availability"
	"hall-booking/internal/pkg/errs"
)

// RebuildIndex reloads the availability index from the booking store at
// startup. Only pending and approved bookings hold reservations. The
// store enforces non-overlap too, so a conflict here means corrupted
// data and aborts the boot.
func RebuildIndex(ctx context.Context, bookings BookingRepository, index *availability.Index) error {
	held, err := bookings.ListHolding(ctx)
	if err != nil {
		return errs.Wrap(err, "failed to load bookings for index rebuild")
	}

	for _, b := range held {
		if err := index.Reserve(b.ResourceID(), b.Slot()); err != nil {
			return errs.Wrap(err, "overlapping bookings found in store during index rebuild")
		}
	}

	slog.Info("availability index rebuilt", "reservations", len(held))
	return nil
}
