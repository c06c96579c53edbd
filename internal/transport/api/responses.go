package api

import (
	"time"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func money(d decimal.Decimal) string {
	return d.StringFixed(domain.AmountPlaces)
}

type UserResponse struct {
	ID        uuid.UUID  `json:"id"`
	Email     string     `json:"email"`
	Username  string     `json:"username"`
	Location  *uuid.UUID `json:"location"`
	Balance   string     `json:"balance,omitempty"`
	CreatedAt time.Time  `json:"createdDate"`
	UpdatedAt time.Time  `json:"updatedDate"`
}

func newUserResponse(u domain.SessionUser) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Location:  u.LocationID,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

type OrderLineResponse struct {
	ID                uuid.UUID `json:"id"`
	FoodName          string    `json:"food_name"`
	FoodPrice         string    `json:"food_price"`
	Count             int       `json:"count"`
	Menu              string    `json:"menu"`
	RestaurantName    string    `json:"restaurant_name"`
	RestaurantAddress string    `json:"restaurant_address"`
	RestaurantCountry string    `json:"restaurant_country"`
	CreatedAt         time.Time `json:"createdDate"`
	UpdatedAt         time.Time `json:"updatedDate"`
}

// OrderResponse платеж вместе со строками заказа в поле items.
type OrderResponse struct {
	ID        uuid.UUID                `json:"id"`
	Status    domain.PaymentStatusType `json:"status"`
	Amount    string                   `json:"amount"`
	Total     int                      `json:"total"`
	Items     []OrderLineResponse      `json:"items"`
	CreatedAt time.Time                `json:"createdDate"`
	UpdatedAt time.Time                `json:"updatedDate"`
}

func newOrderResponse(p *domain.Payment) OrderResponse {
	items := make([]OrderLineResponse, len(p.Lines))
	for i, l := range p.Lines {
		items[i] = OrderLineResponse{
			ID:                l.ID,
			FoodName:          l.FoodName,
			FoodPrice:         money(l.FoodPrice),
			Count:             l.Count,
			Menu:              l.Menu,
			RestaurantName:    l.RestaurantName,
			RestaurantAddress: l.RestaurantAddress,
			RestaurantCountry: l.RestaurantCountry,
			CreatedAt:         l.CreatedAt,
			UpdatedAt:         l.UpdatedAt,
		}
	}
	return OrderResponse{
		ID:        p.ID,
		Status:    p.Status,
		Amount:    money(p.Amount),
		Total:     p.Total,
		Items:     items,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type CountryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Code      string    `json:"code"`
	Emoji     string    `json:"emoji"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func newCountryResponse(c *domain.Country) CountryResponse {
	return CountryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Code:      c.Code,
		Emoji:     c.Emoji,
		CreatedBy: c.CreatedBy,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

type LocationResponse struct {
	ID        uuid.UUID `json:"id"`
	Address   string    `json:"address"`
	Country   uuid.UUID `json:"country"`
	Phone     *string   `json:"phone"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func newLocationResponse(l *domain.Location) LocationResponse {
	return LocationResponse{
		ID:        l.ID,
		Address:   l.Address,
		Country:   l.CountryID,
		Phone:     l.Phone,
		CreatedBy: l.CreatedBy,
		CreatedAt: l.CreatedAt,
		UpdatedAt: l.UpdatedAt,
	}
}

type RestaurantResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Rating    int16     `json:"rating"`
	Location  uuid.UUID `json:"location"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func newRestaurantResponse(r *domain.Restaurant) RestaurantResponse {
	return RestaurantResponse{
		ID:        r.ID,
		Name:      r.Name,
		Active:    r.Active,
		Rating:    r.Rating,
		Location:  r.LocationID,
		CreatedBy: r.CreatedBy,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

type MenuResponse struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Active     bool      `json:"active"`
	Restaurant uuid.UUID `json:"restaurant"`
	CreatedBy  uuid.UUID `json:"createdBy"`
	CreatedAt  time.Time `json:"createdDate"`
	UpdatedAt  time.Time `json:"updatedDate"`
}

func newMenuResponse(m *domain.Menu) MenuResponse {
	return MenuResponse{
		ID:         m.ID,
		Name:       m.Name,
		Active:     m.Active,
		Restaurant: m.RestaurantID,
		CreatedBy:  m.CreatedBy,
		CreatedAt:  m.CreatedAt,
		UpdatedAt:  m.UpdatedAt,
	}
}

type FoodResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	Menu      uuid.UUID `json:"menu"`
	Price     string    `json:"price"`
	CreatedBy uuid.UUID `json:"createdBy"`
	CreatedAt time.Time `json:"createdDate"`
	UpdatedAt time.Time `json:"updatedDate"`
}

func newFoodResponse(f *domain.Food) FoodResponse {
	return FoodResponse{
		ID:        f.ID,
		Name:      f.Name,
		Active:    f.Active,
		Menu:      f.MenuID,
		Price:     money(f.Price),
		CreatedBy: f.CreatedBy,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

// FoodChainResponse блюдо с названиями меню, ресторана, его адреса и страны.
type FoodChainResponse struct {
	FoodResponse
	MenuName          string `json:"menuName"`
	RestaurantName    string `json:"restaurantName"`
	RestaurantAddress string `json:"restaurantAddress"`
	CountryName       string `json:"countryName"`
}

func newFoodChainResponse(f *domain.FoodChain) FoodChainResponse {
	return FoodChainResponse{
		FoodResponse:      newFoodResponse(&f.Food),
		MenuName:          f.MenuName,
		RestaurantName:    f.RestaurantName,
		RestaurantAddress: f.RestaurantAddress,
		CountryName:       f.CountryName,
	}
}

func mapSlice[T, R any](items []T, fn func(*T) R) []R {
	res := make([]R, len(items))
	for i := range items {
		res[i] = fn(&items[i])
	}
	return res
}
