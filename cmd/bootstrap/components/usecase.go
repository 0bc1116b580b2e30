package components

import (
	"context"

	"hall-booking/internal/availability"
	"hall-booking/internal/domain/booking"
	"hall-booking/internal/pkg/clock"
	"hall-booking/internal/pkg/config"
	"hall-booking/internal/usecase"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseCommandsModule,
	usecaseValidatorsModule,
	fx.Invoke(registerIndexRebuild),
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	availability.NewIndex,
	NewBookingValidator,
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		NewBookingCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewBookingQueries,
		queries.NewResourceQueries,
		queries.NewAvailabilityQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)

func NewBookingValidator(cfg config.Config) (*booking.Validator, error) {
	open, err := booking.ParseMinuteOfDay(cfg.Booking.WindowOpen)
	if err != nil {
		return nil, err
	}
	close, err := booking.ParseMinuteOfDay(cfg.Booking.WindowClose)
	if err != nil {
		return nil, err
	}
	return booking.NewValidator(booking.Policy{
		WindowOpen:     open,
		WindowClose:    close,
		GranularityMin: cfg.Booking.GranularityMin,
	}), nil
}

func NewBookingCommands(
	cfg config.Config,
	bookings commands.BookingRepository,
	resources commands.ResourceRepository,
	index *availability.Index,
	validator *booking.Validator,
	clk clock.Clock,
) commands.BookingCommands {
	return commands.NewBookingCommands(bookings, resources, index, validator, cfg.Booking.ApprovalChain, clk)
}

// registerIndexRebuild reloads held slots into the availability index
// before the server starts accepting requests.
func registerIndexRebuild(lc fx.Lifecycle, bookings commands.BookingRepository, index *availability.Index) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return commands.RebuildIndex(ctx, bookings, index)
		},
	})
}
