package service

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	"github.com/google/uuid"
)

// catalogHierarchy уровни каталога от корня к листьям. Каждый уровень ссылается на предыдущий.
var catalogHierarchy = []domain.CatalogKind{
	domain.CatalogCountry,
	domain.CatalogLocation,
	domain.CatalogRestaurant,
	domain.CatalogMenu,
	domain.CatalogFood,
}

// CatalogService CRUD справочника стран, локаций, ресторанов, меню и блюд. Изменять и удалять
// записи может только их создатель.
type CatalogService struct {
	uow            uow.UOW
	countryRepo    CountryRepository
	locationRepo   LocationRepository
	restaurantRepo RestaurantRepository
	menuRepo       MenuRepository
	foodRepo       FoodRepository
}

func NewCatalogService(u uow.UOW) (*CatalogService, error) {
	s := &CatalogService{uow: u}
	var err error
	if s.countryRepo, err = uow.GetRepositoryAs[CountryRepository](
		u, uow.RepositoryName(repoargs.CountryRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if s.locationRepo, err = uow.GetRepositoryAs[LocationRepository](
		u, uow.RepositoryName(repoargs.LocationRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if s.restaurantRepo, err = uow.GetRepositoryAs[RestaurantRepository](
		u, uow.RepositoryName(repoargs.RestaurantRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if s.menuRepo, err = uow.GetRepositoryAs[MenuRepository](
		u, uow.RepositoryName(repoargs.MenuRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	if s.foodRepo, err = uow.GetRepositoryAs[FoodRepository](
		u, uow.RepositoryName(repoargs.FoodRepoName)); err != nil {
		return nil, err //nolint:wrapcheck
	}
	return s, nil
}

func (s *CatalogService) CreateCountry(ctx context.Context, args repoargs.CreateCountry) (*domain.Country, error) {
	args.Name = strings.TrimSpace(args.Name)
	args.Code = strings.TrimSpace(args.Code)
	args.Emoji = strings.TrimSpace(args.Emoji)
	if err := validate.Country(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	country, err := s.countryRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating country: %w", err)
	}
	return country, nil
}

func (s *CatalogService) GetCountry(ctx context.Context, id uuid.UUID) (*domain.Country, error) {
	country, err := s.countryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting country: %w", err)
	}
	return country, nil
}

func (s *CatalogService) UpdateCountry(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateCountry,
) (*domain.Country, error) {
	args.Name = trimPtr(args.Name)
	args.Code = trimPtr(args.Code)
	args.Emoji = trimPtr(args.Emoji)
	if err := validate.UpdateCountry(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	country, err := s.countryRepo.Update(ctx, id, owner, args)
	if err != nil {
		return nil, fmt.Errorf("updating country: %w", err)
	}
	return country, nil
}

func (s *CatalogService) ListCountries(ctx context.Context, page repoargs.Page) ([]domain.Country, int, error) {
	countries, count, err := s.countryRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("listing countries: %w", err)
	}
	return countries, count, nil
}

func (s *CatalogService) CreateLocation(ctx context.Context, args repoargs.CreateLocation) (*domain.Location, error) {
	if err := validate.Location(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	location, err := s.locationRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating location: %w", err)
	}
	return location, nil
}

func (s *CatalogService) GetLocation(ctx context.Context, id uuid.UUID) (*domain.Location, error) {
	location, err := s.locationRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting location: %w", err)
	}
	return location, nil
}

func (s *CatalogService) UpdateLocation(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateLocation,
) (*domain.Location, error) {
	if err := validate.UpdateLocation(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	location, err := s.locationRepo.Update(ctx, id, owner, args)
	if err != nil {
		return nil, fmt.Errorf("updating location: %w", err)
	}
	return location, nil
}

func (s *CatalogService) ListLocations(ctx context.Context, page repoargs.Page) ([]domain.Location, int, error) {
	locations, count, err := s.locationRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("listing locations: %w", err)
	}
	return locations, count, nil
}

func (s *CatalogService) CreateRestaurant(
	ctx context.Context,
	args repoargs.CreateRestaurant,
) (*domain.Restaurant, error) {
	if err := validate.Restaurant(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	restaurant, err := s.restaurantRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *CatalogService) GetRestaurant(ctx context.Context, id uuid.UUID) (*domain.Restaurant, error) {
	restaurant, err := s.restaurantRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *CatalogService) UpdateRestaurant(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateRestaurant,
) (*domain.Restaurant, error) {
	if err := validate.UpdateRestaurant(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	restaurant, err := s.restaurantRepo.Update(ctx, id, owner, args)
	if err != nil {
		return nil, fmt.Errorf("updating restaurant: %w", err)
	}
	return restaurant, nil
}

func (s *CatalogService) ListRestaurants(ctx context.Context, page repoargs.Page) ([]domain.Restaurant, int, error) {
	restaurants, count, err := s.restaurantRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("listing restaurants: %w", err)
	}
	return restaurants, count, nil
}

func (s *CatalogService) CreateMenu(ctx context.Context, args repoargs.CreateMenu) (*domain.Menu, error) {
	if err := validate.Menu(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	menu, err := s.menuRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating menu: %w", err)
	}
	return menu, nil
}

func (s *CatalogService) GetMenu(ctx context.Context, id uuid.UUID) (*domain.Menu, error) {
	menu, err := s.menuRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting menu: %w", err)
	}
	return menu, nil
}

func (s *CatalogService) UpdateMenu(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateMenu,
) (*domain.Menu, error) {
	if err := validate.UpdateMenu(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	menu, err := s.menuRepo.Update(ctx, id, owner, args)
	if err != nil {
		return nil, fmt.Errorf("updating menu: %w", err)
	}
	return menu, nil
}

func (s *CatalogService) ListMenus(ctx context.Context, page repoargs.Page) ([]domain.Menu, int, error) {
	menus, count, err := s.menuRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("listing menus: %w", err)
	}
	return menus, count, nil
}

func (s *CatalogService) CreateFood(ctx context.Context, args repoargs.CreateFood) (*domain.Food, error) {
	if err := validate.Food(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	food, err := s.foodRepo.Create(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("creating food: %w", err)
	}
	return food, nil
}

func (s *CatalogService) GetFood(ctx context.Context, id uuid.UUID) (*domain.Food, error) {
	food, err := s.foodRepo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting food: %w", err)
	}
	return food, nil
}

func (s *CatalogService) UpdateFood(
	ctx context.Context,
	id, owner uuid.UUID,
	args repoargs.UpdateFood,
) (*domain.Food, error) {
	if err := validate.UpdateFood(args); err != nil {
		return nil, err //nolint:wrapcheck
	}
	food, err := s.foodRepo.Update(ctx, id, owner, args)
	if err != nil {
		return nil, fmt.Errorf("updating food: %w", err)
	}
	return food, nil
}

// ListFoods блюда возвращаются вместе с цепочкой меню -> ресторан -> локация -> страна.
func (s *CatalogService) ListFoods(ctx context.Context, page repoargs.Page) ([]domain.FoodChain, int, error) {
	foods, count, err := s.foodRepo.List(ctx, page)
	if err != nil {
		return nil, 0, fmt.Errorf("listing foods: %w", err)
	}
	return foods, count, nil
}

// Delete удаляет запись каталога вместе со всеми потомками в одной транзакции. Потомки собираются
// сверху вниз, удаляются снизу вверх. У пользователей, ссылающихся на удаляемые локации,
// ссылка обнуляется. Если записи нет или owner не ее создатель, возвращается domain.ErrRecordNotFound.
func (s *CatalogService) Delete(ctx context.Context, kind domain.CatalogKind, id, owner uuid.UUID) error {
	start := slices.Index(catalogHierarchy, kind)
	if start < 0 {
		return fmt.Errorf("deleting %s: unknown catalog kind", kind)
	}

	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		repo, repoErr := uow.GetAs[CascadeRepository](tx, uow.RepositoryName(repoargs.CascadeRepoName))
		if repoErr != nil {
			return repoErr //nolint:wrapcheck
		}

		owned, err := repo.OwnedBy(c, kind, id, owner)
		if err != nil {
			return err //nolint:wrapcheck
		}
		if !owned {
			return domain.ErrRecordNotFound
		}

		levels := catalogHierarchy[start:]
		ids := make([][]uuid.UUID, len(levels))
		ids[0] = []uuid.UUID{id}
		for i := 1; i < len(levels) && len(ids[i-1]) > 0; i++ {
			if ids[i], err = repo.ChildIDs(c, levels[i], ids[i-1]); err != nil {
				return err //nolint:wrapcheck
			}
		}

		for i, level := range levels {
			if level == domain.CatalogLocation && len(ids[i]) > 0 {
				if err = repo.DetachUsers(c, ids[i]); err != nil {
					return err //nolint:wrapcheck
				}
			}
		}

		for i := len(levels) - 1; i >= 0; i-- {
			if len(ids[i]) == 0 {
				continue
			}
			if _, err = repo.DeleteByIDs(c, levels[i], ids[i]); err != nil {
				return err //nolint:wrapcheck
			}
		}
		return nil
	})
	if txErr != nil {
		return fmt.Errorf("deleting %s %s: %w", kind, id, txErr)
	}
	return nil
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}
