package readstore

import (
	"context"
	"encoding/json"
	"time"

	"hall-booking/internal/domain/booking"
	"hall-booking/internal/infra"
	"hall-booking/internal/infra/repository/converter"
	"hall-booking/internal/usecase/queries"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// BookingReadStore serves the query side with denormalized views joined
// against the catalog.
type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT b.id, b.resource_id, r.name, b.requester_id, b.title, b.description,
		       b.department, b.purpose, b.day, b.start_min, b.end_min,
		       b.attendee_count, b.status, b.approval_steps, b.created_at, b.updated_at
		FROM bookings b
		JOIN resources r ON r.id = b.resource_id
		WHERE b.id = $1`, id)

	view, err := scanBookingView(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view", err)
	}
	return view, nil
}

func (r *BookingReadStore) List(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingListItem, error) {
	builder := psql.
		Select("b.id", "b.resource_id", "r.name", "b.requester_id", "b.title",
			"b.purpose", "b.day", "b.start_min", "b.end_min", "b.status", "b.created_at").
		From("bookings b").
		Join("resources r ON r.id = b.resource_id").
		OrderBy("b.day", "b.start_min", "b.created_at")

	if filter.RequesterID != nil {
		builder = builder.Where(sq.Eq{"b.requester_id": *filter.RequesterID})
	}
	if filter.ResourceID != nil {
		builder = builder.Where(sq.Eq{"b.resource_id": *filter.ResourceID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"b.status": filter.Status.String()})
	}
	if filter.From != nil {
		builder = builder.Where(sq.GtOrEq{"b.day": filter.From.Time()})
	}
	if filter.To != nil {
		builder = builder.Where(sq.LtOrEq{"b.day": filter.To.Time()})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err, infra.KindDBFailure)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var out []*queries.BookingListItem
	for rows.Next() {
		var (
			item     queries.BookingListItem
			day      time.Time
			startMin int
			endMin   int
		)
		err := rows.Scan(&item.ID, &item.ResourceID, &item.ResourceName, &item.RequesterID,
			&item.Title, &item.Purpose, &day, &startMin, &endMin, &item.Status, &item.CreatedAt)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking list row", err)
		}
		item.Date = booking.DateOf(day).String()
		item.StartTime = booking.MinuteOfDay(startMin).String()
		item.EndTime = booking.MinuteOfDay(endMin).String()
		out = append(out, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate booking list", err)
	}
	return out, nil
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		view     queries.BookingView
		day      time.Time
		startMin int
		endMin   int
		rawSteps []byte
	)
	err := row.Scan(&view.ID, &view.ResourceID, &view.ResourceName, &view.RequesterID,
		&view.Title, &view.Description, &view.Department, &view.Purpose,
		&day, &startMin, &endMin, &view.AttendeeCount, &view.Status, &rawSteps,
		&view.CreatedAt, &view.UpdatedAt)
	if err != nil {
		return nil, err
	}

	view.Date = booking.DateOf(day).String()
	view.StartTime = booking.MinuteOfDay(startMin).String()
	view.EndTime = booking.MinuteOfDay(endMin).String()

	var records []converter.StepRecord
	if err := json.Unmarshal(rawSteps, &records); err != nil {
		return nil, err
	}
	view.Steps = make([]queries.ApprovalStepView, len(records))
	view.CurrentStepIndex = -1
	for i, rec := range records {
		view.Steps[i] = queries.ApprovalStepView{
			StepIndex: rec.Index,
			Role:      rec.Role,
			Status:    rec.Status,
			ActedAt:   rec.ActedAt,
			Notes:     rec.Notes,
		}
		if view.CurrentStepIndex == -1 && view.Status == booking.StatusPending.String() &&
			rec.Status == booking.StepPending.String() {
			view.CurrentStepIndex = rec.Index
		}
	}
	return &view, nil
}
