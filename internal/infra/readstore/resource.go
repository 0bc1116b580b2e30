package readstore

import (
	"context"

	"hall-booking/internal/infra"
	"hall-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ResourceReadStore struct {
	pool *pgxpool.Pool
}

func NewResourceReadStore(pool *pgxpool.Pool) *ResourceReadStore {
	return &ResourceReadStore{pool: pool}
}

func (r *ResourceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ResourceView, error) {
	var view queries.ResourceView
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, capacity, location, amenities, available
		FROM resources WHERE id = $1`, id,
	).Scan(&view.ID, &view.Name, &view.Capacity, &view.Location, &view.Amenities, &view.Available)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource view", err)
	}
	return &view, nil
}

func (r *ResourceReadStore) List(ctx context.Context) ([]*queries.ResourceView, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, capacity, location, amenities, available
		FROM resources ORDER BY name`)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list resources", err)
	}
	defer rows.Close()

	var out []*queries.ResourceView
	for rows.Next() {
		var view queries.ResourceView
		err := rows.Scan(&view.ID, &view.Name, &view.Capacity, &view.Location, &view.Amenities, &view.Available)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan resource row", err)
		}
		out = append(out, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate resources", err)
	}
	return out, nil
}
