package repository

import (
	"context"

	"hall-booking/internal/domain/resource"
	"hall-booking/internal/infra"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ResourceRepository reads the hall catalog for the write side. The
// catalog is maintained elsewhere; the engine only ever selects from it.
type ResourceRepository struct {
	pool *pgxpool.Pool
}

func NewResourceRepository(pool *pgxpool.Pool) *ResourceRepository {
	return &ResourceRepository{pool: pool}
}

func (r *ResourceRepository) FindByID(ctx context.Context, id uuid.UUID) (*resource.Resource, error) {
	var (
		name      string
		capacity  int
		location  string
		amenities []string
		available bool
	)
	err := r.pool.QueryRow(ctx, `
		SELECT name, capacity, location, amenities, available
		FROM resources WHERE id = $1`, id,
	).Scan(&name, &capacity, &location, &amenities, &available)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, infra.WrapRepoErr("resource not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find resource", err)
	}

	res, err := resource.NewResource(id, name, capacity, location, amenities, available)
	if err != nil {
		return nil, infra.WrapRepoErr("invalid resource row", err, infra.KindDBFailure)
	}
	return res, nil
}
