package service

import (
	"context"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

type PasswordHasher interface {
	HashPassword(password string) (string, error)
	ComparePassword(password string, hashedPassword string) bool
}

type UserRepository interface {
	CreateUser(ctx context.Context, user repoargs.CreateUser) (*domain.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
}

type BalanceRepository interface {
	Create(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Balance, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.Balance, error)
	Debit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Balance, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, args repoargs.CreatePayment) (*domain.Payment, error)
	CreateLines(ctx context.Context, paymentID uuid.UUID, lines []repoargs.CreateOrderLine) ([]domain.OrderLine, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Payment, error)
	FindByID(ctx context.Context, id uuid.UUID, userID uuid.UUID) (*domain.Payment, error)
	MarkPaid(ctx context.Context, id uuid.UUID) (int64, error)
	ListByUser(ctx context.Context, userID uuid.UUID, page repoargs.Page) ([]domain.Payment, int, error)
	ExpirePending(ctx context.Context, before time.Time, limit uint) ([]domain.Payment, error)
}

type CountryRepository interface {
	Create(ctx context.Context, args repoargs.CreateCountry) (*domain.Country, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Country, error)
	Update(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateCountry) (*domain.Country, error)
	List(ctx context.Context, page repoargs.Page) ([]domain.Country, int, error)
}

type LocationRepository interface {
	Create(ctx context.Context, args repoargs.CreateLocation) (*domain.Location, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	Update(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateLocation) (*domain.Location, error)
	List(ctx context.Context, page repoargs.Page) ([]domain.Location, int, error)
}

type RestaurantRepository interface {
	Create(ctx context.Context, args repoargs.CreateRestaurant) (*domain.Restaurant, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	Update(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateRestaurant) (*domain.Restaurant, error)
	List(ctx context.Context, page repoargs.Page) ([]domain.Restaurant, int, error)
}

type MenuRepository interface {
	Create(ctx context.Context, args repoargs.CreateMenu) (*domain.Menu, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	Update(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateMenu) (*domain.Menu, error)
	List(ctx context.Context, page repoargs.Page) ([]domain.Menu, int, error)
}

type FoodRepository interface {
	Create(ctx context.Context, args repoargs.CreateFood) (*domain.Food, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Food, error)
	Update(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateFood) (*domain.Food, error)
	List(ctx context.Context, page repoargs.Page) ([]domain.FoodChain, int, error)
	FindChainByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.FoodChain, error)
}

type CascadeRepository interface {
	OwnedBy(ctx context.Context, kind domain.CatalogKind, id, owner uuid.UUID) (bool, error)
	ChildIDs(ctx context.Context, kind domain.CatalogKind, parentIDs []uuid.UUID) ([]uuid.UUID, error)
	DeleteByIDs(ctx context.Context, kind domain.CatalogKind, ids []uuid.UUID) (int64, error)
	DetachUsers(ctx context.Context, locationIDs []uuid.UUID) error
}

type SessionStore interface {
	Create(ctx context.Context, user domain.SessionUser) (uuid.UUID, time.Time, error)
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.SessionUser, error)
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// BalanceCache кэш баланса для отображения пользователю.
type BalanceCache interface {
	Get(ctx context.Context, userID uuid.UUID) (decimal.Decimal, bool, error)
	Set(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) error
	Invalidate(ctx context.Context, userID uuid.UUID) error
}

type EventPublisher interface {
	Publish(ctx context.Context, event domain.OrderEvent) error
}
