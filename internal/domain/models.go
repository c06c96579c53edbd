package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type User struct {
	ID                uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Email             string
	Username          string
	EncryptedPassword string
	LocationID        *uuid.UUID
}

type Balance struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uuid.UUID
	Amount    decimal.Decimal
}

type Country struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Code      string
	Emoji     string
	CreatedBy uuid.UUID
}

type Location struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Address   string
	CountryID uuid.UUID
	Phone     *string
	CreatedBy uuid.UUID
}

type Restaurant struct {
	ID         uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Name       string
	Active     bool
	Rating     int16
	LocationID uuid.UUID
	CreatedBy  uuid.UUID
}

type Menu struct {
	ID           uuid.UUID
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Name         string
	Active       bool
	RestaurantID uuid.UUID
	CreatedBy    uuid.UUID
}

type Food struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string
	Active    bool
	MenuID    uuid.UUID
	Price     decimal.Decimal
	CreatedBy uuid.UUID
}

// FoodChain блюдо вместе с цепочкой меню -> ресторан -> локация -> страна. Отсутствующие звенья
// представлены пустыми строками.
type FoodChain struct {
	Food
	MenuName          string
	RestaurantName    string
	RestaurantAddress string
	CountryName       string
}

type Payment struct {
	ID        uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
	Status    PaymentStatusType
	Amount    decimal.Decimal
	Total     int
	UserID    uuid.UUID
	Lines     []OrderLine
}

// OrderLine неизменяемый снимок блюда на момент заказа.
type OrderLine struct {
	ID                uuid.UUID
	CreatedAt         time.Time
	UpdatedAt         time.Time
	PaymentID         uuid.UUID
	FoodName          string
	FoodPrice         decimal.Decimal
	Count             int
	Menu              string
	RestaurantName    string
	RestaurantAddress string
	RestaurantCountry string
}

// SessionUser снимок пользователя, который хранится в сессии.
type SessionUser struct {
	ID         uuid.UUID  `json:"id"`
	Email      string     `json:"email"`
	Username   string     `json:"username"`
	LocationID *uuid.UUID `json:"location,omitempty"`
	CreatedAt  time.Time  `json:"createdDate"`
	UpdatedAt  time.Time  `json:"updatedDate"`
}

func NewSessionUser(u *User) SessionUser {
	return SessionUser{
		ID:         u.ID,
		Email:      u.Email,
		Username:   u.Username,
		LocationID: u.LocationID,
		CreatedAt:  u.CreatedAt,
		UpdatedAt:  u.UpdatedAt,
	}
}

// OrderEvent сообщение об изменении состояния заказа для внешних потребителей.
type OrderEvent struct {
	Type       OrderEventType    `json:"type"`
	PaymentID  uuid.UUID         `json:"payment_id"`
	UserID     uuid.UUID         `json:"user_id"`
	Status     PaymentStatusType `json:"status"`
	Amount     decimal.Decimal   `json:"amount"`
	Total      int               `json:"total"`
	OccurredAt time.Time         `json:"occurred_at"`
}

func NewOrderEvent(t OrderEventType, p *Payment) OrderEvent {
	return OrderEvent{
		Type:       t,
		PaymentID:  p.ID,
		UserID:     p.UserID,
		Status:     p.Status,
		Amount:     p.Amount,
		Total:      p.Total,
		OccurredAt: time.Now().UTC(),
	}
}
