package api

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"encoding/json"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserServicer интерфейс исключительно для моков.
type UserServicer interface {
	Register(ctx context.Context, args repoargs.CreateUser) (*service.AuthResult, error)
	Login(ctx context.Context, identity, password string) (*service.AuthResult, error)
	Logout(ctx context.Context, sessionID uuid.UUID) error
	ResolveSession(ctx context.Context, token string) (*service.Session, error)
	Balance(ctx context.Context, userID uuid.UUID) (decimal.Decimal, error)
}

type OrderServicer interface {
	Create(ctx context.Context, userID uuid.UUID, orders json.RawMessage) (*domain.Payment, error)
	Get(ctx context.Context, userID, paymentID uuid.UUID) (*domain.Payment, error)
	List(ctx context.Context, userID uuid.UUID, page repoargs.Page) (*service.OrderPage, error)
	Pay(ctx context.Context, userID, paymentID uuid.UUID) (*service.Settlement, error)
}

type CatalogServicer interface {
	CreateCountry(ctx context.Context, args repoargs.CreateCountry) (*domain.Country, error)
	GetCountry(ctx context.Context, id uuid.UUID) (*domain.Country, error)
	UpdateCountry(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateCountry) (*domain.Country, error)
	ListCountries(ctx context.Context, page repoargs.Page) ([]domain.Country, int, error)

	CreateLocation(ctx context.Context, args repoargs.CreateLocation) (*domain.Location, error)
	GetLocation(ctx context.Context, id uuid.UUID) (*domain.Location, error)
	UpdateLocation(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateLocation) (*domain.Location, error)
	ListLocations(ctx context.Context, page repoargs.Page) ([]domain.Location, int, error)

	CreateRestaurant(ctx context.Context, args repoargs.CreateRestaurant) (*domain.Restaurant, error)
	GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error)
	UpdateRestaurant(
		ctx context.Context,
		id, owner uuid.UUID,
		args repoargs.UpdateRestaurant,
	) (*domain.Restaurant, error)
	ListRestaurants(ctx context.Context, page repoargs.Page) ([]domain.Restaurant, int, error)

	CreateMenu(ctx context.Context, args repoargs.CreateMenu) (*domain.Menu, error)
	GetMenu(ctx context.Context, id uuid.UUID) (*domain.Menu, error)
	UpdateMenu(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateMenu) (*domain.Menu, error)
	ListMenus(ctx context.Context, page repoargs.Page) ([]domain.Menu, int, error)

	CreateFood(ctx context.Context, args repoargs.CreateFood) (*domain.Food, error)
	GetFood(ctx context.Context, id uuid.UUID) (*domain.Food, error)
	UpdateFood(ctx context.Context, id, owner uuid.UUID, args repoargs.UpdateFood) (*domain.Food, error)
	ListFoods(ctx context.Context, page repoargs.Page) ([]domain.FoodChain, int, error)

	Delete(ctx context.Context, kind domain.CatalogKind, id, owner uuid.UUID) error
}
