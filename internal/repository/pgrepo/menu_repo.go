package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const menuColumns = `id, created_at, updated_at, name, active, restaurant_id, created_by`

type MenuRepository struct {
	conn uow.DBTX
}

func NewMenuRepository(conn uow.DBTX) *MenuRepository {
	return &MenuRepository{conn: conn}
}

func (r *MenuRepository) Create(ctx context.Context, args repoargs.CreateMenu) (*domain.Menu, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO menus (name, active, restaurant_id, created_by)
		VALUES ($1, COALESCE($2, true), $3, $4)
		RETURNING `+menuColumns,
		args.Name, args.Active, args.RestaurantID, args.CreatedBy,
	)
	menu, err := scanMenu(row)
	if err != nil {
		return nil, convertErr(err, "create menu %s", args.Name)
	}
	return menu, nil
}

func (r *MenuRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+menuColumns+` FROM menus WHERE id = $1`, id)
	menu, err := scanMenu(row)
	if err != nil {
		return nil, convertErr(err, "find menu %s", id)
	}
	return menu, nil
}

func (r *MenuRepository) Update(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateMenu,
) (*domain.Menu, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE menus SET
			name = COALESCE($3, name),
			active = COALESCE($4, active),
			restaurant_id = COALESCE($5, restaurant_id),
			updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING `+menuColumns,
		id, owner, args.Name, args.Active, args.RestaurantID,
	)
	menu, err := scanMenu(row)
	if err != nil {
		return nil, convertErr(err, "update menu %s", id)
	}
	return menu, nil
}

func (r *MenuRepository) List(ctx context.Context, page repoargs.Page) ([]domain.Menu, int, error) {
	limit, offset, pageErr := pageParams(page)
	if pageErr != nil {
		return nil, 0, convertErr(pageErr, "list menus")
	}
	count, err := countRows(ctx, r.conn, "menus")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.conn.Query(ctx,
		`SELECT `+menuColumns+` FROM menus ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, convertErr(err, "list menus")
	}
	menus, err := collect(rows, scanMenu)
	if err != nil {
		return nil, 0, convertErr(err, "list menus")
	}
	return menus, count, nil
}

func scanMenu(row pgx.Row) (*domain.Menu, error) {
	var m domain.Menu
	if err := row.Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt, &m.Name, &m.Active, &m.RestaurantID, &m.CreatedBy); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &m, nil
}
