package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

type OrderService struct {
	uow          uow.UOW
	paymentRepo  PaymentRepository
	foodRepo     FoodRepository
	balanceCache BalanceCache
	publisher    EventPublisher
	l            logrus.FieldLogger
}

func NewOrderService(
	u uow.UOW,
	balanceCache BalanceCache,
	publisher EventPublisher,
	l logrus.FieldLogger,
) (*OrderService, error) {
	paymentRepo, err := uow.GetRepositoryAs[PaymentRepository](u, uow.RepositoryName(repoargs.PaymentRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	foodRepo, err := uow.GetRepositoryAs[FoodRepository](u, uow.RepositoryName(repoargs.FoodRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &OrderService{
		uow:          u,
		paymentRepo:  paymentRepo,
		foodRepo:     foodRepo,
		balanceCache: balanceCache,
		publisher:    publisher,
		l:            l,
	}, nil
}

// Create разбирает корзину, находит блюда одним запросом и сохраняет платеж в статусе PENDING
// вместе со снимками позиций.
//
// Ошибки:
//   - domain.ErrInvalidCart если orders не является JSON массивом;
//   - domain.ErrNoValidItems если ни одна позиция не прошла проверку или не найдена в каталоге.
//
// В обоих случаях в базу ничего не пишется.
func (o *OrderService) Create(ctx context.Context, userID uuid.UUID, orders json.RawMessage) (*domain.Payment, error) {
	cart, err := domain.ParseCart(orders)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	if cart.Len() == 0 {
		return nil, domain.ErrNoValidItems
	}

	foods, err := o.foodRepo.FindChainByIDs(ctx, cart.FoodIDs())
	if err != nil {
		return nil, fmt.Errorf("creating order: %w", err)
	}

	draft := domain.PriceCart(cart, foods, userID)
	if draft.Total == 0 {
		return nil, domain.ErrNoValidItems
	}

	var payment *domain.Payment
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		var createErr error
		payment, createErr = repo.Create(c, repoargs.CreatePayment{
			UserID: userID,
			Status: domain.PaymentStatusPending,
			Amount: draft.Amount,
			Total:  draft.Total,
		})
		if createErr != nil {
			return createErr //nolint:wrapcheck
		}

		lines, linesErr := repo.CreateLines(c, payment.ID, repoargs.NewOrderLines(draft.Lines))
		if linesErr != nil {
			return linesErr //nolint:wrapcheck
		}
		payment.Lines = lines
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("creating order: %w", txErr)
	}

	o.notify(ctx, domain.OrderEventCreated, payment)
	return payment, nil
}

// Get возвращает заказ пользователя с позициями. domain.ErrRecordNotFound если заказа нет
// или он принадлежит другому пользователю.
func (o *OrderService) Get(ctx context.Context, userID, paymentID uuid.UUID) (*domain.Payment, error) {
	payment, err := o.paymentRepo.FindByID(ctx, paymentID, userID)
	if err != nil {
		return nil, fmt.Errorf("getting order %s: %w", paymentID, err)
	}
	return payment, nil
}

// StatusCount кол-во заказов по статусам в пределах страницы.
type StatusCount struct {
	Pending int `json:"pending"`
	Failed  int `json:"failed"`
	Paid    int `json:"paid"`
}

type OrderPage struct {
	Payments []domain.Payment
	// Count общее кол-во заказов пользователя, а не только на странице.
	Count  int
	Status StatusCount
	Page   repoargs.Page
}

// List Возвращает страницу заказов пользователя, новые первыми.
func (o *OrderService) List(ctx context.Context, userID uuid.UUID, page repoargs.Page) (*OrderPage, error) {
	payments, count, err := o.paymentRepo.ListByUser(ctx, userID, page)
	if err != nil {
		return nil, fmt.Errorf("listing orders: %w", err)
	}
	if payments == nil {
		payments = []domain.Payment{}
	}

	var status StatusCount
	for _, p := range payments {
		switch p.Status {
		case domain.PaymentStatusPending:
			status.Pending++
		case domain.PaymentStatusFailed:
			status.Failed++
		case domain.PaymentStatusPaid:
			status.Paid++
		}
	}
	return &OrderPage{Payments: payments, Count: count, Status: status, Page: page}, nil
}

// Settlement результат оплаты заказа.
type Settlement struct {
	Payment *domain.Payment
	Balance decimal.Decimal
}

// Pay оплачивает заказ с баланса пользователя. Вся операция выполняется в одной транзакции:
//  1. Строка платежа блокируется (SELECT FOR UPDATE), параллельные оплаты того же заказа ждут.
//  2. Уже оплаченный заказ возвращает *domain.AlreadyPaidError.
//  3. Баланс списывается условным UPDATE, который не срабатывает при нехватке средств. В этом случае
//     возвращается *domain.InsufficientFundsError с актуальным балансом, транзакция откатывается.
//  4. Платеж переводится в PAID. Если обновлено не ровно одна строка, возвращается
//     domain.ErrSettlementConflict и списание откатывается.
//
// Кэш баланса обновляется только после фиксации транзакции.
func (o *OrderService) Pay(ctx context.Context, userID, paymentID uuid.UUID) (*Settlement, error) {
	var settlement Settlement
	txErr := o.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		paymentRepo, repoErr := uow.GetAs[PaymentRepository](tx, uow.RepositoryName(repoargs.PaymentRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}
		balanceRepo, repoErr := uow.GetAs[BalanceRepository](tx, uow.RepositoryName(repoargs.BalanceRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		payment, err := paymentRepo.FindByIDForUpdate(c, paymentID, userID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if payment.Status == domain.PaymentStatusPaid {
			return &domain.AlreadyPaidError{Payment: payment}
		}

		balance, err := balanceRepo.Debit(c, userID, payment.Amount)
		if err != nil {
			if !errors.Is(err, domain.ErrRecordNotFound) {
				return err //nolint:wrapcheck
			}
			current, getErr := balanceRepo.GetByUserID(c, userID)
			switch {
			case errors.Is(getErr, domain.ErrRecordNotFound):
				// баланса нет, списывать нечего
				return &domain.InsufficientFundsError{Balance: decimal.Zero, Amount: payment.Amount}
			case getErr != nil:
				return getErr //nolint:wrapcheck
			}
			return &domain.InsufficientFundsError{Balance: current.Amount, Amount: payment.Amount}
		}

		affected, err := paymentRepo.MarkPaid(c, payment.ID)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if affected != 1 {
			return domain.ErrSettlementConflict
		}

		payment.Status = domain.PaymentStatusPaid
		settlement = Settlement{Payment: payment, Balance: balance.Amount}
		return nil
	})
	if txErr != nil {
		return nil, fmt.Errorf("paying order %s: %w", paymentID, txErr)
	}

	o.refreshBalance(ctx, userID, settlement.Balance)
	o.notify(ctx, domain.OrderEventPaid, settlement.Payment)
	return &settlement, nil
}

// ExpireStale переводит в FAILED не более limit неоплаченных заказов, созданных раньше before.
// Возвращает кол-во отмененных заказов.
func (o *OrderService) ExpireStale(ctx context.Context, before time.Time, limit uint) (int, error) {
	payments, err := o.paymentRepo.ExpirePending(ctx, before, limit)
	if err != nil {
		return 0, fmt.Errorf("expiring orders: %w", err)
	}
	for i := range payments {
		o.notify(ctx, domain.OrderEventFailed, &payments[i])
	}
	return len(payments), nil
}

// refreshBalance при ошибке записи кэш сбрасывается, чтобы не отдавать устаревшее значение.
func (o *OrderService) refreshBalance(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) {
	if err := o.balanceCache.Set(ctx, userID, amount); err != nil {
		o.l.WithError(err).WithField("user_id", userID).Warn("balance cache refresh failed")
		if invErr := o.balanceCache.Invalidate(ctx, userID); invErr != nil {
			o.l.WithError(invErr).WithField("user_id", userID).Error("balance cache invalidation failed")
		}
	}
}

// notify публикация событий не влияет на результат операции.
func (o *OrderService) notify(ctx context.Context, t domain.OrderEventType, payment *domain.Payment) {
	if err := o.publisher.Publish(ctx, domain.NewOrderEvent(t, payment)); err != nil {
		o.l.WithError(err).WithFields(logrus.Fields{
			"event":      t,
			"payment_id": payment.ID,
		}).Warn("order event publish failed")
	}
}
