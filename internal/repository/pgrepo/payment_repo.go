package pgrepo

import (
	"context"
	"errors"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const (
	paymentColumns = `id, created_at, updated_at, status::text, amount, total, user_id`
	lineColumns    = `id, created_at, updated_at, payment_id, food_name, food_price, count, menu,
		restaurant_name, restaurant_address, restaurant_country`
)

type PaymentRepository struct {
	conn uow.DBTX
}

func NewPaymentRepository(conn uow.DBTX) *PaymentRepository {
	return &PaymentRepository{conn: conn}
}

func (p *PaymentRepository) Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx,
		`INSERT INTO payments (status, amount, total, user_id)
		VALUES ($1::payment_status, $2, $3, $4)
		RETURNING `+paymentColumns,
		string(args.Status), args.Amount, args.Total, args.UserID,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "create payment for user %s", args.UserID)
	}
	return payment, nil
}

// CreateLines сохраняет позиции заказа одним батчем. Порядок результата совпадает с порядком lines.
func (p *PaymentRepository) CreateLines(
	ctx context.Context,
	paymentID uuid.UUID,
	lines []repoargs.CreateOrderLine,
) ([]domain.OrderLine, error) {
	batch := new(pgx.Batch)
	for _, l := range lines {
		batch.Queue(
			`INSERT INTO order_lines (payment_id, food_name, food_price, count, menu,
				restaurant_name, restaurant_address, restaurant_country)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING `+lineColumns,
			paymentID, l.FoodName, l.FoodPrice, l.Count, l.Menu,
			l.RestaurantName, l.RestaurantAddress, l.RestaurantCountry,
		)
	}

	br := p.conn.SendBatch(ctx, batch)
	res := make([]domain.OrderLine, 0, len(lines))
	var batchErr error
	for i := range lines {
		line, err := scanOrderLine(br.QueryRow())
		if err != nil {
			batchErr = convertErr(err, "create order line #%d for payment %s", i, paymentID)
			break
		}
		res = append(res, *line)
	}
	if closeErr := br.Close(); closeErr != nil && batchErr == nil {
		batchErr = convertErr(closeErr, "create order lines for payment %s", paymentID)
	}
	if batchErr != nil {
		return nil, batchErr
	}
	return res, nil
}

// FindByIDForUpdate блокирует строку платежа до конца транзакции. Должен вызываться внутри uow.Do.
func (p *PaymentRepository) FindByIDForUpdate(
	ctx context.Context,
	id uuid.UUID,
	userID uuid.UUID,
) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "lock payment %s", id)
	}
	return payment, nil
}

// FindByID возвращает платеж пользователя вместе с позициями.
func (p *PaymentRepository) FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Payment, error) {
	row := p.conn.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	payment, err := scanPayment(row)
	if err != nil {
		return nil, convertErr(err, "find payment %s", id)
	}

	payments := []domain.Payment{*payment}
	if err = p.attachLines(ctx, payments); err != nil {
		return nil, err
	}
	return &payments[0], nil
}

// MarkPaid переводит платеж в статус PAID. Возвращает кол-во обновленных строк,
// уже оплаченный платеж не обновляется.
func (p *PaymentRepository) MarkPaid(ctx context.Context, id uuid.UUID) (int64, error) {
	tag, err := p.conn.Exec(ctx,
		`UPDATE payments SET status = 'PAID', updated_at = now() WHERE id = $1 AND status <> 'PAID'`,
		id,
	)
	if err != nil {
		return 0, convertErr(err, "mark payment %s paid", id)
	}
	return tag.RowsAffected(), nil
}

// ListByUser Возвращает страницу платежей пользователя, отсортированных по дате создания по убыванию,
// и общее кол-во платежей пользователя.
func (p *PaymentRepository) ListByUser(
	ctx context.Context,
	userID uuid.UUID,
	page repoargs.Page,
) ([]domain.Payment, int, error) {
	limit, offset, pageErr := pageParams(page)
	if pageErr != nil {
		return nil, 0, convertErr(pageErr, "list payments for user %s", userID)
	}

	var count int
	if err := p.conn.QueryRow(ctx, `SELECT count(*) FROM payments WHERE user_id = $1`, userID).
		Scan(&count); err != nil {
		return nil, 0, convertErr(err, "count payments for user %s", userID)
	}

	rows, err := p.conn.Query(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE user_id = $1
		ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, convertErr(err, "list payments for user %s", userID)
	}
	payments, err := collect(rows, scanPayment)
	if err != nil {
		return nil, 0, convertErr(err, "list payments for user %s", userID)
	}

	if err = p.attachLines(ctx, payments); err != nil {
		return nil, 0, err
	}
	return payments, count, nil
}

// ExpirePending переводит в FAILED не более limit платежей в статусе PENDING, созданных раньше before.
// Строки, заблокированные оплатой, пропускаются.
func (p *PaymentRepository) ExpirePending(ctx context.Context, before time.Time, limit uint) ([]domain.Payment, error) {
	safeLimit, limitErr := safeConvertUintToInt32(limit)
	if limitErr != nil {
		return nil, convertErr(limitErr, "converting limit to int32")
	}
	rows, err := p.conn.Query(ctx,
		`UPDATE payments SET status = 'FAILED', updated_at = now()
		WHERE id IN (
			SELECT id FROM payments
			WHERE status = 'PENDING' AND created_at < $1
			ORDER BY created_at
			LIMIT $2
			FOR UPDATE SKIP LOCKED
		)
		RETURNING `+paymentColumns,
		before, safeLimit,
	)
	if err != nil {
		return nil, convertErr(err, "expire pending payments")
	}
	payments, err := collect(rows, scanPayment)
	if err != nil {
		return nil, convertErr(err, "expire pending payments")
	}
	return payments, nil
}

func (p *PaymentRepository) attachLines(ctx context.Context, payments []domain.Payment) error {
	if len(payments) == 0 {
		return nil
	}
	ids := make([]uuid.UUID, len(payments))
	index := make(map[uuid.UUID]int, len(payments))
	for i, payment := range payments {
		ids[i] = payment.ID
		index[payment.ID] = i
		payments[i].Lines = []domain.OrderLine{}
	}

	rows, err := p.conn.Query(ctx,
		`SELECT `+lineColumns+` FROM order_lines WHERE payment_id = ANY($1::uuid[]) ORDER BY created_at, id`,
		idStrings(ids),
	)
	if err != nil {
		return convertErr(err, "load order lines")
	}
	defer rows.Close()

	for rows.Next() {
		line, scanErr := scanOrderLine(rows)
		if scanErr != nil {
			return convertErr(scanErr, "scan order line")
		}
		i, ok := index[line.PaymentID]
		if !ok {
			return convertErr(errors.New("unexpected payment id"), "attach order line %s", line.ID)
		}
		payments[i].Lines = append(payments[i].Lines, *line)
	}
	return convertErr(rows.Err(), "load order lines")
}

func scanPayment(row pgx.Row) (*domain.Payment, error) {
	var payment domain.Payment
	var status string
	if err := row.Scan(
		&payment.ID,
		&payment.CreatedAt,
		&payment.UpdatedAt,
		&status,
		&payment.Amount,
		&payment.Total,
		&payment.UserID,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	payment.Status = domain.PaymentStatusType(status)
	return &payment, nil
}

func scanOrderLine(row pgx.Row) (*domain.OrderLine, error) {
	var line domain.OrderLine
	if err := row.Scan(
		&line.ID,
		&line.CreatedAt,
		&line.UpdatedAt,
		&line.PaymentID,
		&line.FoodName,
		&line.FoodPrice,
		&line.Count,
		&line.Menu,
		&line.RestaurantName,
		&line.RestaurantAddress,
		&line.RestaurantCountry,
	); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &line, nil
}
