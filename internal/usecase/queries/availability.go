package queries

import (
	"context"

	"hall-booking/internal/availability"
	"hall-booking/internal/domain/booking"
	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ResourceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context) ([]*ResourceView, error)
}

// AvailabilityQueries exposes the occupied calendar for rendering. The
// answer comes straight from the availability index, never from the
// booking store, so it reflects exactly what Reserve would see.
type AvailabilityQueries interface {
	Occupied(ctx context.Context, resourceID uuid.UUID, from, to booking.Date) ([]OccupiedSlotView, error)
}

type availabilityQueriesImpl struct {
	index     *availability.Index
	resources ResourceReadStore
}

func NewAvailabilityQueries(index *availability.Index, resources ResourceReadStore) AvailabilityQueries {
	return &availabilityQueriesImpl{index: index, resources: resources}
}

func (q *availabilityQueriesImpl) Occupied(ctx context.Context, resourceID uuid.UUID, from, to booking.Date) ([]OccupiedSlotView, error) {
	if _, err := q.resources.FindByID(ctx, resourceID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}

	slots := q.index.QueryRange(resourceID, from, to)
	out := make([]OccupiedSlotView, len(slots))
	for i, s := range slots {
		out[i] = OccupiedSlotView{
			Date:      s.Date().String(),
			StartTime: s.Start().String(),
			EndTime:   s.End().String(),
		}
	}
	return out, nil
}
