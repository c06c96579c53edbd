package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const countryColumns = `id, created_at, updated_at, name, code, emoji, created_by`

type CountryRepository struct {
	conn uow.DBTX
}

func NewCountryRepository(conn uow.DBTX) *CountryRepository {
	return &CountryRepository{conn: conn}
}

func (r *CountryRepository) Create(ctx context.Context, args repoargs.CreateCountry) (*domain.Country, error) {
	row := r.conn.QueryRow(ctx,
		`INSERT INTO countries (name, code, emoji, created_by) VALUES ($1, $2, $3, $4) RETURNING `+countryColumns,
		args.Name, args.Code, args.Emoji, args.CreatedBy,
	)
	country, err := scanCountry(row)
	if err != nil {
		return nil, convertErr(err, "create country %s", args.Name)
	}
	return country, nil
}

func (r *CountryRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Country, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+countryColumns+` FROM countries WHERE id = $1`, id)
	country, err := scanCountry(row)
	if err != nil {
		return nil, convertErr(err, "find country %s", id)
	}
	return country, nil
}

// Update обновляет только переданные поля и только если owner создатель записи.
func (r *CountryRepository) Update(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateCountry,
) (*domain.Country, error) {
	row := r.conn.QueryRow(ctx,
		`UPDATE countries SET
			name = COALESCE($3, name),
			code = COALESCE($4, code),
			emoji = COALESCE($5, emoji),
			updated_at = now()
		WHERE id = $1 AND created_by = $2
		RETURNING `+countryColumns,
		id, owner, args.Name, args.Code, args.Emoji,
	)
	country, err := scanCountry(row)
	if err != nil {
		return nil, convertErr(err, "update country %s", id)
	}
	return country, nil
}

func (r *CountryRepository) List(ctx context.Context, page repoargs.Page) ([]domain.Country, int, error) {
	limit, offset, pageErr := pageParams(page)
	if pageErr != nil {
		return nil, 0, convertErr(pageErr, "list countries")
	}
	count, err := countRows(ctx, r.conn, "countries")
	if err != nil {
		return nil, 0, err
	}
	rows, err := r.conn.Query(ctx,
		`SELECT `+countryColumns+` FROM countries ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, 0, convertErr(err, "list countries")
	}
	countries, err := collect(rows, scanCountry)
	if err != nil {
		return nil, 0, convertErr(err, "list countries")
	}
	return countries, count, nil
}

func scanCountry(row pgx.Row) (*domain.Country, error) {
	var c domain.Country
	if err := row.Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt, &c.Name, &c.Code, &c.Emoji, &c.CreatedBy); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &c, nil
}
