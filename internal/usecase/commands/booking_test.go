//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"hall-booking/internal/availability"
	"hall-booking/internal/domain/booking"
	"hall-booking/internal/domain/resource"
	"hall-booking/internal/infra/memstore"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/usecase/commands"
	"hall-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	commands  commands.BookingCommands
	bookings  *memstore.BookingStore
	resources *memstore.ResourceStore
	index     *availability.Index
	clock     *clock.MockClock
	hall      *resource.Resource
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	resources := memstore.NewResourceStore()
	hall, err := resource.NewResource(uuid.New(), "LHC Seminar Hall - 1", 80,
		"LHC Block, Ground Floor", []string{"Projector", "Whiteboard"}, true)
	require.NoError(t, err)
	resources.Put(hall)

	bookings := memstore.NewBookingStore(resources)
	index := availability.NewIndex()
	mockClock := clock.NewMockClock(time.Date(2026, 10, 1, 9, 0, 0, 0, time.UTC))

	open, _ := booking.ParseMinuteOfDay("08:00")
	close, _ := booking.ParseMinuteOfDay("19:00")
	validator := booking.NewValidator(booking.Policy{
		WindowOpen:     open,
		WindowClose:    close,
		GranularityMin: 30,
	})

	return &fixture{
		commands:  commands.NewBookingCommands(bookings, resources, index, validator, builder.DefaultChain, mockClock),
		bookings:  bookings,
		resources: resources,
		index:     index,
		clock:     mockClock,
		hall:      hall,
	}
}

func (f *fixture) input(mutate ...func(*builder.BookingBuilder)) commands.CreateBookingInput {
	b := builder.NewBookingBuilder().With(func(b *builder.BookingBuilder) {
		b.ResourceID = f.hall.ID()
	})
	for _, m := range mutate {
		b.With(m)
	}
	return b.BuildCommandInput()
}

func (f *fixture) occupied(t *testing.T, date string) []booking.TimeSlot {
	t.Helper()
	d, err := booking.ParseDate(date)
	require.NoError(t, err)
	return f.index.Query(f.hall.ID(), d)
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates a pending booking and holds the slot", func(t *testing.T) {
		f := newFixture(t)

		created, err := f.commands.CreateBooking(ctx, f.input())

		require.NoError(t, err)
		assert.Equal(t, booking.StatusPending, created.Status())
		assert.Equal(t, 0, created.CurrentStepIndex())
		assert.Len(t, created.Steps(), 3)
		assert.Equal(t, f.clock.Now(), created.CreatedAt())
		assert.Len(t, f.occupied(t, "2026-10-12"), 1)

		stored, err := f.bookings.Get(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, created.ID(), stored.ID())
	})

	t.Run("unknown resource", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.ResourceID = uuid.New()
		}))

		assert.ErrorIs(t, err, commands.ErrResourceNotFound)
	})

	t.Run("closed resource is not bookable", func(t *testing.T) {
		f := newFixture(t)
		closed, err := resource.NewResource(uuid.New(), "Renovation Hall", 50, "Annex", nil, false)
		require.NoError(t, err)
		f.resources.Put(closed)

		_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.ResourceID = closed.ID()
		}))

		var validationErr *booking.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "resource_id", validationErr.Field)
	})

	t.Run("validation failure reserves nothing", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.AttendeeCount = f.hall.Capacity() + 1
		}))

		var validationErr *booking.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, f.occupied(t, "2026-10-12"))
	})

	t.Run("overlapping request is refused with the blocking interval", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.RequesterID = uuid.New()
			b.StartTime = "10:00"
			b.EndTime = "12:00"
		}))

		var conflict *availability.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "09:00", conflict.Existing.Start().String())
		assert.Len(t, f.occupied(t, "2026-10-12"), 1)
	})

	t.Run("back to back bookings coexist", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.RequesterID = uuid.New()
			b.StartTime = "11:00"
			b.EndTime = "12:30"
		}))

		require.NoError(t, err)
		assert.Len(t, f.occupied(t, "2026-10-12"), 2)
	})
}

func TestActOnApproval(t *testing.T) {
	ctx := context.Background()

	act := func(f *fixture, id uuid.UUID, step int, role, decision string) (*booking.Booking, error) {
		return f.commands.ActOnApproval(ctx, commands.ActInput{
			BookingID: id,
			StepIndex: step,
			ActorID:   uuid.New(),
			ActorRole: role,
			Decision:  decision,
		})
	}

	t.Run("full chain approval keeps the slot held", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = act(f, created.ID(), 0, "secretary", "approve")
		require.NoError(t, err)
		_, err = act(f, created.ID(), 1, "chair", "approve")
		require.NoError(t, err)
		final, err := act(f, created.ID(), 2, "facility_manager", "approve")
		require.NoError(t, err)

		assert.Equal(t, booking.StatusApproved, final.Status())
		assert.Len(t, f.occupied(t, "2026-10-12"), 1)

		stored, err := f.bookings.Get(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StatusApproved, stored.Status())
	})

	t.Run("rejection releases the slot", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		rejected, err := act(f, created.ID(), 0, "secretary", "reject")
		require.NoError(t, err)

		assert.Equal(t, booking.StatusRejected, rejected.Status())
		assert.Empty(t, f.occupied(t, "2026-10-12"))

		// the freed interval is immediately bookable again
		_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.RequesterID = uuid.New()
		}))
		require.NoError(t, err)
	})

	t.Run("wrong role is refused without effect", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = act(f, created.ID(), 0, "chair", "approve")

		var roleErr *booking.RoleMismatchError
		require.ErrorAs(t, err, &roleErr)

		stored, err := f.bookings.Get(ctx, created.ID())
		require.NoError(t, err)
		assert.Equal(t, booking.StepPending, stored.Steps()[0].Status())
	})

	t.Run("acting out of order is refused", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = act(f, created.ID(), 1, "chair", "approve")

		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
	})

	t.Run("invalid decision", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = act(f, created.ID(), 0, "secretary", "maybe")

		var validationErr *booking.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "decision", validationErr.Field)
	})

	t.Run("unknown booking", func(t *testing.T) {
		f := newFixture(t)

		_, err := act(f, uuid.New(), 0, "secretary", "approve")
		assert.ErrorIs(t, err, commands.ErrBookingNotFound)
	})
}

func TestCancelBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("requester cancels and the slot is freed", func(t *testing.T) {
		f := newFixture(t)
		in := f.input()
		created, err := f.commands.CreateBooking(ctx, in)
		require.NoError(t, err)

		cancelled, err := f.commands.CancelBooking(ctx, created.ID(), in.RequesterID)
		require.NoError(t, err)

		assert.Equal(t, booking.StatusCancelled, cancelled.Status())
		assert.Empty(t, f.occupied(t, "2026-10-12"))
	})

	t.Run("someone else cannot cancel", func(t *testing.T) {
		f := newFixture(t)
		created, err := f.commands.CreateBooking(ctx, f.input())
		require.NoError(t, err)

		_, err = f.commands.CancelBooking(ctx, created.ID(), uuid.New())

		var roleErr *booking.RoleMismatchError
		require.ErrorAs(t, err, &roleErr)
		assert.Len(t, f.occupied(t, "2026-10-12"), 1)
	})

	t.Run("approved bookings cannot be cancelled", func(t *testing.T) {
		f := newFixture(t)
		in := f.input()
		created, err := f.commands.CreateBooking(ctx, in)
		require.NoError(t, err)
		for i, role := range builder.DefaultChain {
			_, err = f.commands.ActOnApproval(ctx, commands.ActInput{
				BookingID: created.ID(),
				StepIndex: i,
				ActorID:   uuid.New(),
				ActorRole: role,
				Decision:  "approve",
			})
			require.NoError(t, err)
		}

		_, err = f.commands.CancelBooking(ctx, created.ID(), in.RequesterID)

		var transitionErr *booking.InvalidTransitionError
		require.ErrorAs(t, err, &transitionErr)
		assert.Len(t, f.occupied(t, "2026-10-12"), 1)
	})
}

func TestRebuildIndex(t *testing.T) {
	ctx := context.Background()

	t.Run("restores held slots from the store", func(t *testing.T) {
		f := newFixture(t)
		in := f.input()
		created, err := f.commands.CreateBooking(ctx, in)
		require.NoError(t, err)
		_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
			b.RequesterID = uuid.New()
			b.StartTime = "13:00"
			b.EndTime = "14:00"
		}))
		require.NoError(t, err)
		// cancelled bookings hold nothing after a restart
		_, err = f.commands.CancelBooking(ctx, created.ID(), in.RequesterID)
		require.NoError(t, err)

		fresh := availability.NewIndex()
		require.NoError(t, commands.RebuildIndex(ctx, f.bookings, fresh))

		day, _ := booking.ParseDate("2026-10-12")
		assert.Len(t, fresh.Query(f.hall.ID(), day), 1)
	})

	t.Run("empty store rebuilds to an empty index", func(t *testing.T) {
		f := newFixture(t)
		fresh := availability.NewIndex()
		require.NoError(t, commands.RebuildIndex(ctx, f.bookings, fresh))
	})
}

// Full lifecycle of one hall through a day of competing requests.
func TestBookingLifecycleScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	requester := uuid.New()
	rival := uuid.New()

	// requester takes the morning
	morning, err := f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
		b.RequesterID = requester
		b.StartTime = "09:00"
		b.EndTime = "11:00"
	}))
	require.NoError(t, err)

	// rival cannot take an overlapping window while approval is pending
	_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
		b.RequesterID = rival
		b.StartTime = "10:30"
		b.EndTime = "12:00"
	}))
	var conflict *availability.ConflictError
	require.ErrorAs(t, err, &conflict)

	// rival books the adjacent afternoon window instead
	afternoon, err := f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
		b.RequesterID = rival
		b.StartTime = "11:00"
		b.EndTime = "13:00"
	}))
	require.NoError(t, err)

	// the morning booking clears all three approvers
	for i, role := range builder.DefaultChain {
		f.clock.Add(time.Hour)
		_, err = f.commands.ActOnApproval(ctx, commands.ActInput{
			BookingID: morning.ID(),
			StepIndex: i,
			ActorID:   uuid.New(),
			ActorRole: role,
			Decision:  "approve",
		})
		require.NoError(t, err)
	}

	// the afternoon booking is vetoed at the chair step
	_, err = f.commands.ActOnApproval(ctx, commands.ActInput{
		BookingID: afternoon.ID(),
		StepIndex: 0,
		ActorID:   uuid.New(),
		ActorRole: "secretary",
		Decision:  "approve",
	})
	require.NoError(t, err)
	comment := "clashes with maintenance"
	vetoed, err := f.commands.ActOnApproval(ctx, commands.ActInput{
		BookingID: afternoon.ID(),
		StepIndex: 1,
		ActorID:   uuid.New(),
		ActorRole: "chair",
		Decision:  "reject",
		Notes:     &comment,
	})
	require.NoError(t, err)
	assert.Equal(t, booking.StatusRejected, vetoed.Status())

	// only the approved morning interval remains occupied
	occupied := f.occupied(t, "2026-10-12")
	require.Len(t, occupied, 1)
	assert.Equal(t, "09:00", occupied[0].Start().String())

	// and the freed afternoon window is open to anyone again
	_, err = f.commands.CreateBooking(ctx, f.input(func(b *builder.BookingBuilder) {
		b.RequesterID = requester
		b.StartTime = "11:00"
		b.EndTime = "13:00"
	}))
	require.NoError(t, err)
}
