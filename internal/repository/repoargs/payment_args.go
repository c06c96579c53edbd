package repoargs

import (
	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreatePayment struct {
	UserID uuid.UUID
	Status domain.PaymentStatusType
	Amount decimal.Decimal
	Total  int
}

type CreateOrderLine struct {
	FoodName          string
	FoodPrice         decimal.Decimal
	Count             int
	Menu              string
	RestaurantName    string
	RestaurantAddress string
	RestaurantCountry string
}

// NewOrderLines конвертирует снимки позиций из черновика платежа.
func NewOrderLines(lines []domain.OrderLine) []CreateOrderLine {
	args := make([]CreateOrderLine, len(lines))
	for i, l := range lines {
		args[i] = CreateOrderLine{
			FoodName:          l.FoodName,
			FoodPrice:         l.FoodPrice,
			Count:             l.Count,
			Menu:              l.Menu,
			RestaurantName:    l.RestaurantName,
			RestaurantAddress: l.RestaurantAddress,
			RestaurantCountry: l.RestaurantCountry,
		}
	}
	return args
}
