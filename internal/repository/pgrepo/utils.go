package pgrepo

import (
	"context"
	"fmt"
	"math"

	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// safeConvertUintToInt32 безопасно конвертирует uint в int32. В случае выхода значения за рамки диапазона
// выбрасывает ошибку.
func safeConvertUintToInt32(val uint) (int32, error) {
	if val > uint(math.MaxInt32) {
		return 0, fmt.Errorf("value is out of range: %d", val)
	}
	return int32(val), nil
}

// idStrings используется для параметров вида $1::uuid[].
func idStrings(ids []uuid.UUID) []string {
	res := make([]string, len(ids))
	for i, id := range ids {
		res[i] = id.String()
	}
	return res
}

// collect сканирует все строки и закрывает rows.
func collect[T any](rows pgx.Rows, scan func(pgx.Row) (*T, error)) ([]T, error) {
	defer rows.Close()
	res := make([]T, 0)
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		res = append(res, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return res, nil
}

// countRows table передается только константами из репозиториев.
func countRows(ctx context.Context, conn uow.DBTX, table string) (int, error) {
	var count int
	if err := conn.QueryRow(ctx, `SELECT count(*) FROM `+table).Scan(&count); err != nil {
		return 0, convertErr(err, "count %s", table)
	}
	return count, nil
}

// pageParams переводит страницу в параметры LIMIT/OFFSET для pgx.
func pageParams(page repoargs.Page) (int32, int32, error) {
	limit, err := safeConvertUintToInt32(page.Limit)
	if err != nil {
		return 0, 0, fmt.Errorf("limit: %w", err)
	}
	offset, err := safeConvertUintToInt32(page.Offset)
	if err != nil {
		return 0, 0, fmt.Errorf("offset: %w", err)
	}
	return limit, offset, nil
}
