package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const restaurantColumns = `id, created_at, updated_at, name, active, rating, location_id, created_by`

type RestaurantRepository struct {
	conn uow.DBTX
}

func NewRestaurantRepository(conn uow.DBTX) *RestaurantRepository {
	return &RestaurantRepository{conn: conn}
}

// Create не переданные active и rating получают значения по умолчанию из схемы.
func (r *RestaurantRepository) Create(
	ctx context.Context,
	args repoargs.CreateRestaurant,
) (*domain.Restaurant, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO restaurants (name, active, rating, location_id, created_by)
		VALUES ($1, COALESCE($2, true), COALESCE($3, 8), $4, $5)
		RETURNING `+restaurantColumns,
		args.Name, args.Active, args.Rating, args.LocationID, args.CreatedBy,
	)
	restaurant, err := scanRestaurant(row)
	if err != nil {
		return nil, convertErr(err, "create restaurant %s", args.Name)
	}
	return restaurant, nil
}

func (r *RestaurantRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+restaurantColumns+` FROM restaurants WHERE id = $1`, id)
	restaurant, err := scanRestaurant(row)
	if err != nil {
		return nil, convertErr(err, "find restaurant %s", id)
	}
	return restaurant, nil
}

func (r *RestaurantRepository) Update(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateRestaurant,
) (*domain.Restaurant, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE restaurants SET
			name = COALESCE($3, name),
			active = COALESCE($4, active),
			rating = COALESCE($5, rating),
			location_id = COALESCE($6, location_id),
			updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING `+restaurantColumns,
		id, owner, args.Name, args.Active, args.Rating, args.LocationID,
	)
	restaurant, err := scanRestaurant(row)
	if err != nil {
		return nil, convertErr(err, "update restaurant %s", id)
	}
	return restaurant, nil
}

func (r *RestaurantRepository) List(ctx context.Context, page repoargs.Page) ([]domain.Restaurant, int, error) {
	limit, offset, pageErr := pageParams(page)
	if pageErr != nil {
		return nil, 0, convertErr(pageErr, "list restaurants")
	}
	count, err := countRows(ctx, r.conn, "restaurants")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.conn.Query(ctx,
		`SELECT `+restaurantColumns+` FROM restaurants ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, convertErr(err, "list restaurants")
	}
	restaurants, err := collect(rows, scanRestaurant)
	if err != nil {
		return nil, 0, convertErr(err, "list restaurants")
	}
	return restaurants, count, nil
}

func scanRestaurant(row pgx.Row) (*domain.Restaurant, error) {
	var r domain.Restaurant
	if err := row.Scan(
		&r.ID, &r.CreatedAt, &r.UpdatedAt, &r.Name, &r.Active, &r.Rating, &r.LocationID, &r.CreatedBy,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &r, nil
}
