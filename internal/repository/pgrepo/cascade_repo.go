package pgrepo

import (
	"context"
	"errors"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
)

var errUnknownKind = errors.New("unknown catalog kind")

type catalogTable struct {
	table string
	// parentColumn колонка ссылки на родителя на уровень выше.
	parentColumn string
}

var catalogTables = map[domain.CatalogKind]catalogTable{
	domain.CatalogCountry:    {table: "countries"},
	domain.CatalogLocation:   {table: "locations", parentColumn: "country_id"},
	domain.CatalogRestaurant: {table: "restaurants", parentColumn: "location_id"},
	domain.CatalogMenu:       {table: "menus", parentColumn: "restaurant_id"},
	domain.CatalogFood:       {table: "foods", parentColumn: "menu_id"},
}

// CascadeRepository операции удаления по иерархии каталога. Схема не содержит ON DELETE CASCADE,
// поэтому дочерние записи удаляются явно в той же транзакции.
type CascadeRepository struct {
	conn uow.DBTX
}

func NewCascadeRepository(conn uow.DBTX) *CascadeRepository {
	return &CascadeRepository{conn: conn}
}

// OwnedBy проверяет что запись kind с идентификатором id существует и создана owner.
func (r *CascadeRepository) OwnedBy(ctx context.Context, kind domain.CatalogKind, id, owner uuid.UUID) (bool, error) {
	t, ok := catalogTables[kind]
	if !ok {
		return false, convertErr(errUnknownKind, "owned by %s", kind)
	}
	var owned bool
	if err := r.conn.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM `+t.table+` WHERE id = $1 AND created_by = $2)`,
		id, owner,
	).Scan(&owned); err != nil {
		return false, convertErr(err, "owned by %s %s", kind, id)
	}
	return owned, nil
}

// ChildIDs возвращает идентификаторы записей kind, ссылающихся на parentIDs. Строки блокируются
// до конца транзакции.
func (r *CascadeRepository) ChildIDs(
	ctx context.Context,
	kind domain.CatalogKind,
	parentIDs []uuid.UUID,
) ([]uuid.UUID, error) {
	t, ok := catalogTables[kind]
	if !ok || t.parentColumn == "" {
		return nil, convertErr(errUnknownKind, "child ids %s", kind)
	}
	if len(parentIDs) == 0 {
		return nil, nil
	}
	rows, err := r.conn.Query(ctx,
		`SELECT id FROM `+t.table+` WHERE `+t.parentColumn+` = ANY($1::uuid[]) FOR UPDATE`,
		idStrings(parentIDs),
	)
	if err != nil {
		return nil, convertErr(err, "child ids %s", kind)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if scanErr := rows.Scan(&id); scanErr != nil {
			return nil, convertErr(scanErr, "scan child id %s", kind)
		}
		ids = append(ids, id)
	}
	if err = rows.Err(); err != nil {
		return nil, convertErr(err, "child ids %s", kind)
	}
	return ids, nil
}

// DeleteByIDs удаляет записи kind. Возвращает кол-во удаленных строк.
func (r *CascadeRepository) DeleteByIDs(ctx context.Context, kind domain.CatalogKind, ids []uuid.UUID) (int64, error) {
	t, ok := catalogTables[kind]
	if !ok {
		return 0, convertErr(errUnknownKind, "delete %s", kind)
	}
	if len(ids) == 0 {
		return 0, nil
	}
	tag, err := r.conn.Exec(ctx, `DELETE FROM `+t.table+` WHERE id = ANY($1::uuid[])`, idStrings(ids))
	if err != nil {
		return 0, convertErr(err, "delete %s", kind)
	}
	return tag.RowsAffected(), nil
}

// DetachUsers убирает у пользователей ссылку на удаляемые локации.
func (r *CascadeRepository) DetachUsers(ctx context.Context, locationIDs []uuid.UUID) error {
	if len(locationIDs) == 0 {
		return nil
	}
	if _, err := r.conn.Exec(ctx,
		`UPDATE users SET location_id = NULL, updated_at = now() WHERE location_id = ANY($1::uuid[])`,
		idStrings(locationIDs),
	); err != nil {
		return convertErr(err, "detach users from locations")
	}
	return nil
}
