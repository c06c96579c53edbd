package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const locationColumns = `id, created_at, updated_at, address, country_id, phone, created_by`

type LocationRepository struct {
	conn uow.DBTX
}

func NewLocationRepository(conn uow.DBTX) *LocationRepository {
	return &LocationRepository{conn: conn}
}

func (r *LocationRepository) Create(ctx context.Context, args repoargs.CreateLocation) (*domain.Location, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO locations (address, country_id, phone, created_by) VALUES ($1, $2, $3, $4)
		RETURNING `+locationColumns,
		args.Address, args.CountryID, args.Phone, args.CreatedBy,
	)
	location, err := scanLocation(row)
	if err != nil {
		return nil, convertErr(err, "create location %s", args.Address)
	}
	return location, nil
}

func (r *LocationRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+locationColumns+` FROM locations WHERE id = $1`, id)
	location, err := scanLocation(row)
	if err != nil {
		return nil, convertErr(err, "find location %s", id)
	}
	return location, nil
}

func (r *LocationRepository) Update(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateLocation,
) (*domain.Location, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE locations SET
			address = COALESCE($3, address),
			country_id = COALESCE($4, country_id),
			phone = COALESCE($5, phone),
			updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING `+locationColumns,
		id, owner, args.Address, args.CountryID, args.Phone,
	)
	location, err := scanLocation(row)
	if err != nil {
		return nil, convertErr(err, "update location %s", id)
	}
	return location, nil
}

func (r *LocationRepository) List(ctx context.Context, page repoargs.Page) ([]domain.Location, int, error) {
	limit, offset, pageErr := pageParams(page)
	if pageErr != nil {
		return nil, 0, convertErr(pageErr, "list locations")
	}
	count, err := countRows(ctx, r.conn, "locations")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.conn.Query(ctx,
		`SELECT `+locationColumns+` FROM locations ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, convertErr(err, "list locations")
	}
	locations, err := collect(rows, scanLocation)
	if err != nil {
		return nil, 0, convertErr(err, "list locations")
	}
	return locations, count, nil
}

func scanLocation(row pgx.Row) (*domain.Location, error) {
	var l domain.Location
	if err := row.Scan(&l.ID, &l.CreatedAt, &l.UpdatedAt, &l.Address, &l.CountryID, &l.Phone, &l.CreatedBy); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &l, nil
}
