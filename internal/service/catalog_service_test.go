package service

import (
	"context"
	"testing"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/service/mocks"
	"github.com/fsdevblog/food-delivery/pkg/uow"
	uowmocks "github.com/fsdevblog/food-delivery/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CatalogServiceTestSuite struct {
	suite.Suite
	mockUOW         *uowmocks.MockUOW
	mockTX          *uowmocks.MockTX
	mockCountryRepo *mocks.MockCountryRepository
	mockFoodRepo    *mocks.MockFoodRepository
	mockCascadeRepo *mocks.MockCascadeRepository
	catalogService  *CatalogService
	owner           uuid.UUID
}

func TestCatalogServiceSuite(t *testing.T) {
	suite.Run(t, new(CatalogServiceTestSuite))
}

func (s *CatalogServiceTestSuite) SetupTest() {
	mockCtrl := gomock.NewController(s.T())
	s.mockUOW = uowmocks.NewMockUOW(mockCtrl)
	s.mockTX = uowmocks.NewMockTX(mockCtrl)
	s.mockCountryRepo = mocks.NewMockCountryRepository(mockCtrl)
	s.mockFoodRepo = mocks.NewMockFoodRepository(mockCtrl)
	s.mockCascadeRepo = mocks.NewMockCascadeRepository(mockCtrl)
	s.owner = uuid.New()

	repos := map[repoargs.RepositoryName]uow.Repository{
		repoargs.CountryRepoName:    s.mockCountryRepo,
		repoargs.LocationRepoName:   mocks.NewMockLocationRepository(mockCtrl),
		repoargs.RestaurantRepoName: mocks.NewMockRestaurantRepository(mockCtrl),
		repoargs.MenuRepoName:       mocks.NewMockMenuRepository(mockCtrl),
		repoargs.FoodRepoName:       s.mockFoodRepo,
	}
	for name, repo := range repos {
		s.mockUOW.EXPECT().GetRepository(uow.RepositoryName(name)).Return(repo, nil).AnyTimes()
	}
	s.mockTX.EXPECT().Get(uow.RepositoryName(repoargs.CascadeRepoName)).Return(s.mockCascadeRepo, nil).AnyTimes()
	s.mockUOW.EXPECT().
		Do(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, uow.TX) error) error {
			return fn(ctx, s.mockTX)
		}).AnyTimes()

	catalogService, err := NewCatalogService(s.mockUOW)
	s.Require().NoError(err)
	s.catalogService = catalogService
}

func (s *CatalogServiceTestSuite) TestCreateCountryTrims() {
	s.mockCountryRepo.EXPECT().
		Create(gomock.Any(), repoargs.CreateCountry{Name: "Italy", Code: "IT", Emoji: "🇮🇹", CreatedBy: s.owner}).
		Return(&domain.Country{ID: uuid.New(), Name: "Italy"}, nil)

	country, err := s.catalogService.CreateCountry(context.Background(), repoargs.CreateCountry{
		Name: "  Italy ", Code: " IT", Emoji: "🇮🇹 ", CreatedBy: s.owner,
	})
	s.Require().NoError(err)
	s.Equal("Italy", country.Name)
}

func (s *CatalogServiceTestSuite) TestCreateFoodValidation() {
	_, err := s.catalogService.CreateFood(context.Background(), repoargs.CreateFood{
		Name: "Soup", MenuID: uuid.New(), Price: decimal.RequireFromString("1.999"), CreatedBy: s.owner,
	})
	var vErr *domain.ValidationError
	s.Require().ErrorAs(err, &vErr)
	s.Equal("Price", vErr.First().Field)
}

func (s *CatalogServiceTestSuite) TestUpdateNotCreator() {
	id := uuid.New()
	name := "Spain"
	s.mockCountryRepo.EXPECT().Update(gomock.Any(), id, s.owner, repoargs.UpdateCountry{Name: &name}).
		Return(nil, &domain.DatabaseError{Op: "update country", Kind: domain.ErrRecordNotFound})

	_, err := s.catalogService.UpdateCountry(context.Background(), id, s.owner, repoargs.UpdateCountry{Name: &name})
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CatalogServiceTestSuite) TestDeleteCountryFanOut() {
	countryID := uuid.New()
	locationIDs := []uuid.UUID{uuid.New(), uuid.New()}
	restaurantIDs := []uuid.UUID{uuid.New()}
	menuIDs := []uuid.UUID{uuid.New()}
	foodIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}

	gomock.InOrder(
		s.mockCascadeRepo.EXPECT().OwnedBy(gomock.Any(), domain.CatalogCountry, countryID, s.owner).Return(true, nil),
		s.mockCascadeRepo.EXPECT().ChildIDs(gomock.Any(), domain.CatalogLocation, []uuid.UUID{countryID}).
			Return(locationIDs, nil),
		s.mockCascadeRepo.EXPECT().ChildIDs(gomock.Any(), domain.CatalogRestaurant, locationIDs).
			Return(restaurantIDs, nil),
		s.mockCascadeRepo.EXPECT().ChildIDs(gomock.Any(), domain.CatalogMenu, restaurantIDs).Return(menuIDs, nil),
		s.mockCascadeRepo.EXPECT().ChildIDs(gomock.Any(), domain.CatalogFood, menuIDs).Return(foodIDs, nil),
		s.mockCascadeRepo.EXPECT().DetachUsers(gomock.Any(), locationIDs).Return(nil),
		// снизу вверх
		s.mockCascadeRepo.EXPECT().DeleteByIDs(gomock.Any(), domain.CatalogFood, foodIDs).Return(int64(3), nil),
		s.mockCascadeRepo.EXPECT().DeleteByIDs(gomock.Any(), domain.CatalogMenu, menuIDs).Return(int64(1), nil),
		s.mockCascadeRepo.EXPECT().DeleteByIDs(gomock.Any(), domain.CatalogRestaurant, restaurantIDs).
			Return(int64(1), nil),
		s.mockCascadeRepo.EXPECT().DeleteByIDs(gomock.Any(), domain.CatalogLocation, locationIDs).Return(int64(2), nil),
		s.mockCascadeRepo.EXPECT().DeleteByIDs(gomock.Any(), domain.CatalogCountry, []uuid.UUID{countryID}).
			Return(int64(1), nil),
	)

	s.NoError(s.catalogService.Delete(context.Background(), domain.CatalogCountry, countryID, s.owner))
}

func (s *CatalogServiceTestSuite) TestDeleteMenuWithoutFoods() {
	menuID := uuid.New()
	gomock.InOrder(
		s.mockCascadeRepo.EXPECT().OwnedBy(gomock.Any(), domain.CatalogMenu, menuID, s.owner).Return(true, nil),
		s.mockCascadeRepo.EXPECT().ChildIDs(gomock.Any(), domain.CatalogFood, []uuid.UUID{menuID}).Return(nil, nil),
		s.mockCascadeRepo.EXPECT().DeleteByIDs(gomock.Any(), domain.CatalogMenu, []uuid.UUID{menuID}).
			Return(int64(1), nil),
	)

	s.NoError(s.catalogService.Delete(context.Background(), domain.CatalogMenu, menuID, s.owner))
}

func (s *CatalogServiceTestSuite) TestDeleteNotCreator() {
	foodID := uuid.New()
	s.mockCascadeRepo.EXPECT().OwnedBy(gomock.Any(), domain.CatalogFood, foodID, s.owner).Return(false, nil)

	err := s.catalogService.Delete(context.Background(), domain.CatalogFood, foodID, s.owner)
	s.ErrorIs(err, domain.ErrRecordNotFound)
}

func (s *CatalogServiceTestSuite) TestDeleteUnknownKind() {
	s.Error(s.catalogService.Delete(context.Background(), domain.CatalogKind("planet"), uuid.New(), s.owner))
}
