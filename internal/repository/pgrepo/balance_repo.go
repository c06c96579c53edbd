package pgrepo

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const balanceColumns = `id, created_at, updated_at, user_id, amount`

type BalanceRepository struct {
	conn uow.DBTX
}

func NewBalanceRepository(conn uow.DBTX) *BalanceRepository {
	return &BalanceRepository{conn: conn}
}

func (b *BalanceRepository) Create(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
) (*domain.Balance, error) {
	row := b.conn.QueryRow(ctx,
		`INSERT INTO balances (user_id, amount) VALUES ($1, $2) RETURNING `+balanceColumns,
		userID, amount,
	)
	balance, err := scanBalance(row)
	if err != nil {
		return nil, convertErr(err, "create balance for user %s", userID)
	}
	return balance, nil
}

func (b *BalanceRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Balance, error) {
	row := b.conn.QueryRow(ctx, `SELECT `+balanceColumns+` FROM balances WHERE user_id = $1`, userID)
	balance, err := scanBalance(row)
	if err != nil {
		return nil, convertErr(err, "get balance for user %s", userID)
	}
	return balance, nil
}

// Debit списывает amount с баланса одним условным запросом. Если средств недостаточно,
// строка не обновляется и возвращается ошибка с Kind ErrRecordNotFound.
func (b *BalanceRepository) Debit(
	ctx context.Context,
	userID uuid.UUID,
	amount decimal.Decimal,
) (*domain.Balance, error) {
	row := b.conn.QueryRow(ctx,
		`UPDATE balances SET amount = amount - $2, updated_at = now()
		WHERE user_id = $1 AND amount >= $2
		RETURNING `+balanceColumns,
		userID, amount,
	)
	balance, err := scanBalance(row)
	if err != nil {
		return nil, convertErr(err, "debit balance for user %s", userID)
	}
	return balance, nil
}

func scanBalance(row pgx.Row) (*domain.Balance, error) {
	var balance domain.Balance
	if err := row.Scan(
		&balance.ID,
		&balance.CreatedAt,
		&balance.UpdatedAt,
		&balance.UserID,
		&balance.Amount,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &balance, nil
}
