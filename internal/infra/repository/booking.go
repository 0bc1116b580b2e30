package repository

import (
	"context"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/infra"
	"hall-booking/internal/infra/repository/converter"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const bookingColumns = `id, resource_id, requester_id, title, description, department, purpose,
	day, start_min, end_min, attendee_count, status, approval_steps, created_at, updated_at`

// BookingRepository is the write side of the booking store. The schema
// carries an exclusion constraint over (resource_id, day, slot range)
// for active bookings as a second line of defense behind the
// availability index.
type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) error {
	rec, err := converter.BookingToRecord(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err, infra.KindDBFailure)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO bookings (`+bookingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		rec.ID, rec.ResourceID, rec.RequesterID, rec.Title, rec.Description,
		rec.Department, rec.Purpose, rec.Date, rec.StartMin, rec.EndMin,
		rec.AttendeeCount, rec.Status, rec.Steps, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create booking", err)
	}
	return nil
}

func (r *BookingRepository) Get(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings WHERE id = $1`, id)

	rec, err := scanBookingRecord(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking", err)
	}

	b, err := converter.BookingFromRecord(rec)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDBFailure)
	}
	return b, nil
}

func (r *BookingRepository) Update(ctx context.Context, b *booking.Booking) error {
	rec, err := converter.BookingToRecord(b)
	if err != nil {
		return infra.WrapRepoErr("failed to encode booking", err, infra.KindDBFailure)
	}

	tag, err := r.pool.Exec(ctx, `
		UPDATE bookings
		SET status = $2, approval_steps = $3, updated_at = $4
		WHERE id = $1`,
		rec.ID, rec.Status, rec.Steps, rec.UpdatedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *BookingRepository) ListHolding(ctx context.Context) ([]*booking.Booking, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+bookingColumns+`
		FROM bookings
		WHERE status IN ($1, $2)
		ORDER BY day, start_min`,
		booking.StatusPending.String(), booking.StatusApproved.String(),
	)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list active bookings", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		rec, err := scanBookingRecord(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking", err)
		}
		b, err := converter.BookingFromRecord(rec)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to decode booking", err, infra.KindDBFailure)
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}
	return out, nil
}

func scanBookingRecord(row pgx.Row) (converter.BookingRecord, error) {
	var rec converter.BookingRecord
	err := row.Scan(
		&rec.ID, &rec.ResourceID, &rec.RequesterID, &rec.Title, &rec.Description,
		&rec.Department, &rec.Purpose, &rec.Date, &rec.StartMin, &rec.EndMin,
		&rec.AttendeeCount, &rec.Status, &rec.Steps, &rec.CreatedAt, &rec.UpdatedAt,
	)
	return rec, err
}
