package api

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type FoodParams struct {
	Name   string           `json:"name"`
	Active *bool            `json:"active"`
	Menu   string           `json:"menu"`
	Price  *decimal.Decimal `json:"price"`
}

type UpdateFoodParams struct {
	Name   *string          `json:"name"`
	Active *bool            `json:"active"`
	Menu   *string          `json:"menu"`
	Price  *decimal.Decimal `json:"price"`
}

// ListFoods блюда отдаются вместе с цепочкой меню -> ресторан -> локация -> страна.
func (h *CatalogHandler) ListFoods(c *gin.Context) {
	page := bindPage(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	foods, count, err := h.svs.ListFoods(reqCtx, page)
	if err != nil {
		internalError(c, err)
		return
	}
	h.listed(c, foodResource, mapSlice(foods, newFoodChainResponse), pageFields(page, count))
}

func (h *CatalogHandler) GetFood(c *gin.Context) {
	id, ok := pathID(c, foodResource.param, foodResource.title)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	food, err := h.svs.GetFood(reqCtx, id)
	if err != nil {
		h.getFailed(c, err)
		return
	}
	h.found(c, foodResource, newFoodResponse(food))
}

func (h *CatalogHandler) CreateFood(c *gin.Context) {
	var params FoodParams
	if !bindBody(c, &params) {
		return
	}
	menuID, err := validate.Identifier(menuResource.title, params.Menu)
	if err != nil {
		respondInputError(c, err)
		return
	}
	if params.Price == nil {
		respondInputError(c, domain.NewValidationError(domain.FieldError{Field: "Price", Message: validate.MsgPrice}))
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	food, err := h.svs.CreateFood(reqCtx, repoargs.CreateFood{
		Name:      params.Name,
		Active:    params.Active,
		MenuID:    menuID,
		Price:     *params.Price,
		CreatedBy: currentUserID(c),
	})
	if err != nil {
		h.createFailed(c, foodResource, err)
		return
	}
	h.created(c, foodResource, newFoodResponse(food))
}

func (h *CatalogHandler) UpdateFood(c *gin.Context) {
	id, ok := pathID(c, foodResource.param, foodResource.title)
	if !ok {
		return
	}
	var params UpdateFoodParams
	if !bindBody(c, &params) {
		return
	}
	menuID, err := validate.OptionalIdentifier(menuResource.title, params.Menu)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	food, err := h.svs.UpdateFood(reqCtx, id, currentUserID(c), repoargs.UpdateFood{
		Name:   params.Name,
		Active: params.Active,
		MenuID: menuID,
		Price:  params.Price,
	})
	if err != nil {
		h.updateFailed(c, foodResource, err)
		return
	}
	h.updated(c, foodResource, newFoodResponse(food))
}
