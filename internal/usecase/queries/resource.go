package queries

import (
	"context"

	"hall-booking/internal/infra"
	"hall-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

type ResourceQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error)
	List(ctx context.Context) ([]*ResourceView, error)
}

type resourceQueriesImpl struct {
	store ResourceReadStore
}

func NewResourceQueries(store ResourceReadStore) ResourceQueries {
	return &resourceQueriesImpl{store: store}
}

func (q *resourceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ResourceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrResourceNotFound
		}
		return nil, errs.Wrap(err, "failed to find resource")
	}
	return view, nil
}

func (q *resourceQueriesImpl) List(ctx context.Context) ([]*ResourceView, error) {
	views, err := q.store.List(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list resources")
	}
	return views, nil
}
