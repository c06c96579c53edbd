package repoargs

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateCountry struct {
	Name      string
	Code      string
	Emoji     string
	CreatedBy uuid.UUID
}

type UpdateCountry struct {
	Name  *string
	Code  *string
	Emoji *string
}

type CreateLocation struct {
	Address   string
	CountryID uuid.UUID
	Phone     *string
	CreatedBy uuid.UUID
}

type UpdateLocation struct {
	Address   *string
	CountryID *uuid.UUID
	Phone     *string
}

type CreateRestaurant struct {
	Name       string
	Active     *bool
	Rating     *int16
	LocationID uuid.UUID
	CreatedBy  uuid.UUID
}

type UpdateRestaurant struct {
	Name       *string
	Active     *bool
	Rating     *int16
	LocationID *uuid.UUID
}

type CreateMenu struct {
	Name         string
	Active       *bool
	RestaurantID uuid.UUID
	CreatedBy    uuid.UUID
}

type UpdateMenu struct {
	Name         *string
	Active       *bool
	RestaurantID *uuid.UUID
}

type CreateFood struct {
	Name      string
	Active    *bool
	MenuID    uuid.UUID
	Price     decimal.Decimal
	CreatedBy uuid.UUID
}

type UpdateFood struct {
	Name   *string
	Active *bool
	MenuID *uuid.UUID
	Price  *decimal.Decimal
}
