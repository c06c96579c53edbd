package pgrepo

import (
	"errors"
	"fmt"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolationCode     = "23505"
	foreignKeyViolationCode = "23503"
)

// convertErr преобразует ошибку к стандартному виду для слоя репозитория.
// Особенности:
//   - Для ошибок отсутствия данных (pgx.ErrNoRows) Kind равен ErrRecordNotFound.
//   - Дубликаты ключей (uniqueViolationCode) получают Kind ErrDuplicateKey.
//   - Нарушения внешних ключей (foreignKeyViolationCode) получают Kind ErrForeignKey.
//   - Все остальные ошибки возвращаются как ErrUnknown с оригинальной ошибкой.
//
// Для ошибок Postgres в Detail сохраняется пояснение сервера, оно отдается клиенту как есть.
func convertErr(err error, format string, formatArgs ...any) error {
	if err == nil {
		return nil
	}

	op := fmt.Sprintf(format, formatArgs...)

	if errors.Is(err, pgx.ErrNoRows) {
		return &domain.DatabaseError{Op: op, Kind: domain.ErrRecordNotFound}
	}

	dbErr := &domain.DatabaseError{Op: op, Kind: domain.ErrUnknown, Err: err}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		dbErr.Detail = pgErr.Detail
		if dbErr.Detail == "" {
			dbErr.Detail = pgErr.Message
		}
		switch pgErr.Code {
		case uniqueViolationCode:
			dbErr.Kind = domain.ErrDuplicateKey
		case foreignKeyViolationCode:
			dbErr.Kind = domain.ErrForeignKey
		}
	}

	return dbErr
}

// notFound используется когда запрос выполнен без ошибки, но не затронул ни одной строки.
func notFound(format string, formatArgs ...any) error {
	return &domain.DatabaseError{Op: fmt.Sprintf(format, formatArgs...), Kind: domain.ErrRecordNotFound}
}
