package api

import (
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/transport/api/testutils"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type CatalogHandlerTestSuite struct {
	handlerSuite
}

func TestCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(CatalogHandlerTestSuite))
}

func (s *CatalogHandlerTestSuite) country() *domain.Country {
	return &domain.Country{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
		Name:      "Italy",
		Code:      "IT",
		Emoji:     "🇮🇹",
		CreatedBy: s.userID(),
	}
}

func (s *CatalogHandlerTestSuite) TestCreateCountry() {
	country := s.country()
	s.mockCatalogService.EXPECT().
		CreateCountry(gomock.Any(), repoargs.CreateCountry{
			Name: " Italy ", Code: "IT", Emoji: "🇮🇹", CreatedBy: s.userID(),
		}).
		Return(country, nil)

	status, body := s.request(http.MethodPost, "/country/create",
		`{"name":" Italy ","code":"IT","emoji":"🇮🇹"}`, validToken)
	s.Equal(http.StatusCreated, status)
	s.assertEnvelope(body, "SUCCESS", "Country created successfully.")
	s.Equal(country.ID.String(), body["country"].(map[string]any)["id"])
}

func (s *CatalogHandlerTestSuite) TestCreateRequiresAuth() {
	status, body := s.request(http.MethodPost, "/menu/create", `{"name":"Lunch"}`, "")
	s.Equal(http.StatusUnauthorized, status)
	s.assertEnvelope(body, "UNAUTHENTICATED", "User not authenticated.")
}

func (s *CatalogHandlerTestSuite) TestCreateDatabaseError() {
	s.mockCatalogService.EXPECT().CreateCountry(gomock.Any(), gomock.Any()).
		Return(nil, &domain.DatabaseError{
			Op:     "create country",
			Kind:   domain.ErrDuplicateKey,
			Detail: "Key (code)=(IT) already exists.",
		})
	s.mockCatalogService.EXPECT().CreateMenu(gomock.Any(), gomock.Any()).
		Return(nil, &domain.DatabaseError{Op: "create menu", Kind: domain.ErrUnknown})

	status, body := s.request(http.MethodPost, "/country/create", `{"name":"Italy","code":"IT","emoji":"🇮🇹"}`,
		validToken)
	s.Equal(http.StatusInternalServerError, status)
	s.assertEnvelope(body, "DATABASE_ERROR", "Key (code)=(IT) already exists.")

	status, body = s.request(http.MethodPost, "/menu/create",
		`{"name":"Lunch","restaurant":"`+uuid.NewString()+`"}`, validToken)
	s.Equal(http.StatusInternalServerError, status)
	s.assertEnvelope(body, "DATABASE_ERROR", "Failed to create menu.")
}

func (s *CatalogHandlerTestSuite) TestCreateInvalidReference() {
	status, body := s.request(http.MethodPost, "/location/create",
		`{"address":"Via Roma 1","country":"italy"}`, validToken)
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", "Country - Identifier is invalid.")

	status, body = s.request(http.MethodPost, "/food/create",
		`{"name":"Soup","menu":"`+uuid.NewString()+`"}`, validToken)
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR",
		"Price - Price should be a valid decimal with 2 decimal place maximum")
}

func (s *CatalogHandlerTestSuite) TestCreateFood() {
	menuID := uuid.New()
	food := &domain.Food{
		ID:        uuid.New(),
		Name:      "Soup",
		Active:    true,
		MenuID:    menuID,
		Price:     decimal.RequireFromString("4.5"),
		CreatedBy: s.userID(),
	}
	s.mockCatalogService.EXPECT().
		CreateFood(gomock.Any(), repoargs.CreateFood{
			Name:      "Soup",
			MenuID:    menuID,
			Price:     decimal.RequireFromString("4.50"),
			CreatedBy: s.userID(),
		}).
		Return(food, nil)

	status, body := s.request(http.MethodPost, "/food/create",
		`{"name":"Soup","menu":"`+menuID.String()+`","price":"4.50"}`, validToken)
	s.Equal(http.StatusCreated, status)
	s.Equal("4.50", body["food"].(map[string]any)["price"])
}

func (s *CatalogHandlerTestSuite) TestGet() {
	country := s.country()
	missing := uuid.New()
	s.mockCatalogService.EXPECT().GetCountry(gomock.Any(), country.ID).Return(country, nil)
	s.mockCatalogService.EXPECT().GetRestaurant(gomock.Any(), missing).
		Return(nil, &domain.DatabaseError{Op: "find restaurant", Kind: domain.ErrRecordNotFound})

	status, body := s.request(http.MethodGet, "/country/"+country.ID.String(), "", "")
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", "Country found.")

	status, _ = s.request(http.MethodGet, "/restaurant/"+missing.String(), "", "")
	s.Equal(http.StatusNoContent, status)

	status, body = s.request(http.MethodGet, "/menu/abc", "", "")
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", "Menu - Identifier is invalid.")
}

func (s *CatalogHandlerTestSuite) TestListFoods() {
	foods := []domain.FoodChain{{
		Food: domain.Food{
			ID:    uuid.New(),
			Name:  "Pizza",
			Price: decimal.RequireFromString("9.99"),
		},
		MenuName:          "Dinner",
		RestaurantName:    "Da Mario",
		RestaurantAddress: "Via Roma 1",
		CountryName:       "",
	}}
	s.mockCatalogService.EXPECT().ListFoods(gomock.Any(), repoargs.Page{Limit: 3, Offset: 0}).Return(foods, 7, nil)

	status, body := s.request(http.MethodPost, "/food/", `{"limit":3}`, "")
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", "All Foods.")
	s.InDelta(7, body["count"], 0)
	items := body["foods"].([]any)
	s.Require().Len(items, 1)
	item := items[0].(map[string]any)
	s.Equal("Da Mario", item["restaurantName"])
	s.Equal("", item["countryName"])
	s.Equal("9.99", item["price"])
}

func (s *CatalogHandlerTestSuite) TestListCountriesLimitCapped() {
	s.mockCatalogService.EXPECT().
		ListCountries(gomock.Any(), repoargs.Page{Limit: repoargs.MaxLimit, Offset: 4}).
		Return([]domain.Country{*s.country()}, 1, nil)

	status, body := s.request(http.MethodPost, "/country/", `{"limit":"500","offset":"4"}`, "")
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", "All Countries.")
	s.Len(body["countries"], 1)
	s.InDelta(repoargs.MaxLimit, body["limit"], 0)
}

func (s *CatalogHandlerTestSuite) TestUpdate() {
	id := uuid.New()
	notMine := uuid.New()
	rating := int16(9)
	restaurant := &domain.Restaurant{ID: id, Name: "Da Mario", Active: true, Rating: rating, CreatedBy: s.userID()}

	s.mockCatalogService.EXPECT().
		UpdateRestaurant(gomock.Any(), id, s.userID(), repoargs.UpdateRestaurant{Rating: &rating}).
		Return(restaurant, nil)
	s.mockCatalogService.EXPECT().
		UpdateRestaurant(gomock.Any(), notMine, s.userID(), gomock.Any()).
		Return(nil, &domain.DatabaseError{Op: "update restaurant", Kind: domain.ErrRecordNotFound})
	s.mockCatalogService.EXPECT().
		UpdateRestaurant(gomock.Any(), id, s.userID(), repoargs.UpdateRestaurant{}).
		Return(nil, domain.NewValidationError(domain.FieldError{
			Field:   "Body",
			Message: "At least one field should be provided.",
		}))

	status, body := s.request(http.MethodPatch, "/restaurant/"+id.String(), `{"rating":9}`, validToken)
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", "Restaurant Updated.")

	status, body = s.request(http.MethodPatch, "/restaurant/"+notMine.String(), `{"rating":9}`, validToken)
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "FAILED", "Restaurant not found or User is not creator.")

	status, body = s.request(http.MethodPatch, "/restaurant/"+id.String(), `{}`, validToken)
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", "Body - At least one field should be provided.")

	status, body = s.request(http.MethodPatch, "/restaurant/"+id.String(), `{"location":"nowhere"}`, validToken)
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "INPUT_ERROR", "Location - Identifier is invalid.")
}

func (s *CatalogHandlerTestSuite) TestDelete() {
	id := uuid.New()
	notMine := uuid.New()
	s.mockCatalogService.EXPECT().Delete(gomock.Any(), domain.CatalogCountry, id, s.userID()).Return(nil)
	s.mockCatalogService.EXPECT().Delete(gomock.Any(), domain.CatalogLocation, notMine, s.userID()).
		Return(domain.ErrRecordNotFound)

	status, body := s.request(http.MethodDelete, "/country/"+id.String(), "", validToken)
	s.Equal(http.StatusOK, status)
	s.assertEnvelope(body, "SUCCESS", "Country Deleted.")

	status, body = s.request(http.MethodDelete, "/location/"+notMine.String(), "", validToken)
	s.Equal(http.StatusBadRequest, status)
	s.assertEnvelope(body, "FAILED", "Location not found or User is not creator.")

	status, _ = s.request(http.MethodDelete, "/food/"+id.String(), "", "")
	s.Equal(http.StatusUnauthorized, status)
}

func (s *CatalogHandlerTestSuite) TestMetricsRoute() {
	status, _ := s.request(http.MethodPost, "/country/create", `{}`, "")
	s.Equal(http.StatusUnauthorized, status)

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodGet,
		URL:    MetricsRoute,
	})
	s.Require().NoError(err)
	defer func() {
		s.Require().NoError(res.Body.Close())
	}()
	s.Equal(http.StatusOK, res.StatusCode)

	raw, err := io.ReadAll(res.Body)
	s.Require().NoError(err)
	s.Contains(string(raw), `delivery_http_requests_total{method="POST",route="/api/v1/country/create",status="401"} 1`)
}
