package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	foodColumns = `id, created_at, updated_at, name, active, menu_id, price, created_by`

	// foodChainSelect блюдо с цепочкой меню -> ресторан -> локация -> страна.
	// Отсутствующие звенья заменяются пустой строкой.
	foodChainSelect = `SELECT f.id, f.created_at, f.updated_at, f.name, f.active, f.menu_id, f.price, f.created_by,
			COALESCE(m.name, ''), COALESCE(r.name, ''), COALESCE(l.address, ''), COALESCE(c.name, '')
		FROM foods f
		LEFT JOIN menus m ON m.id = f.menu_id
		LEFT JOIN restaurants r ON r.id = m.restaurant_id
		LEFT JOIN locations l ON l.id = r.location_id
		LEFT JOIN countries c ON c.id = l.country_id`
)

type FoodRepository struct {
	conn uow.DBTX
}

func NewFoodRepository(conn uow.DBTX) *FoodRepository {
	return &FoodRepository{conn: conn}
}

func (r *FoodRepository) Create(ctx context.Context, args repoargs.CreateFood) (*domain.Food, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO foods (name, active, menu_id, price, created_by)
		VALUES ($1, COALESCE($2, true), $3, $4, $5)
		RETURNING `+foodColumns,
		args.Name, args.Active, args.MenuID, args.Price, args.CreatedBy,
	)
	food, err := scanFood(row)
	if err != nil {
		return nil, convertErr(err, "create food %s", args.Name)
	}
	return food, nil
}

func (r *FoodRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+foodColumns+` FROM foods WHERE id = $1`, id)
	food, err := scanFood(row)
	if err != nil {
		return nil, convertErr(err, "find food %s", id)
	}
	return food, nil
}

func (r *FoodRepository) Update(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateFood,
) (*domain.Food, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE foods SET
			name = COALESCE($3, name),
			active = COALESCE($4, active),
			menu_id = COALESCE($5, menu_id),
			price = COALESCE($6, price),
			updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING `+foodColumns,
		id, owner, args.Name, args.Active, args.MenuID, args.Price,
	)
	food, err := scanFood(row)
	if err != nil {
		return nil, convertErr(err, "update food %s", id)
	}
	return food, nil
}

// FindChainByIDs одним запросом находит блюда по списку идентификаторов. Отсутствующие идентификаторы
// пропускаются, порядок результата не определен.
func (r *FoodRepository) FindChainByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.FoodChain, error) {
	if len(ids) == 0 {
		return []domain.FoodChain{}, nil
	}
	rows, err := r.conn.Query(ctx, foodChainSelect+` WHERE f.id = ANY($1::uuid[])`, idStrings(ids))
	if err != nil {
		return nil, convertErr(err, "find foods by ids")
	}
	foods, err := collect(rows, scanFoodChain)
	if err != nil {
		return nil, convertErr(err, "find foods by ids")
	}
	return foods, nil
}

// List Возвращает страницу блюд вместе с цепочкой каталога.
func (r *FoodRepository) List(ctx context.Context, page repoargs.Page) ([]domain.FoodChain, int, error) {
	limit, offset, pageErr := pageParams(page)
	if pageErr != nil {
		return nil, 0, convertErr(pageErr, "list foods")
	}
	count, err := countRows(ctx, r.conn, "foods")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.conn.Query(ctx,
		foodChainSelect+` ORDER BY f.created_at DESC, f.id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, convertErr(err, "list foods")
	}
	foods, err := collect(rows, scanFoodChain)
	if err != nil {
		return nil, 0, convertErr(err, "list foods")
	}
	return foods, count, nil
}

func scanFood(row pgx.Row) (*domain.Food, error) {
	var f domain.Food
	if err := row.Scan(
		&f.ID, &f.CreatedAt, &f.UpdatedAt, &f.Name, &f.Active, &f.MenuID, &f.Price, &f.CreatedBy,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &f, nil
}

func scanFoodChain(row pgx.Row) (*domain.FoodChain, error) {
	var f domain.FoodChain
	if err := row.Scan(
		&f.ID, &f.CreatedAt, &f.UpdatedAt, &f.Name, &f.Active, &f.MenuID, &f.Price, &f.CreatedBy,
		&f.MenuName, &f.RestaurantName, &f.RestaurantAddress, &f.CountryName,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &f, nil
}
