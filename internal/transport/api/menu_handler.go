package api

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/gin-gonic/gin"
)

type MenuParams struct {
	Name       string `json:"name"`
	Active     *bool  `json:"active"`
	Restaurant string `json:"restaurant"`
}

type UpdateMenuParams struct {
	Name       *string `json:"name"`
	Active     *bool   `json:"active"`
	Restaurant *string `json:"restaurant"`
}

func (h *CatalogHandler) ListMenus(c *gin.Context) {
	page := bindPage(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	menus, count, err := h.svs.ListMenus(reqCtx, page)
	if err != nil {
		internalError(c, err)
		return
	}
	h.listed(c, menuResource, mapSlice(menus, newMenuResponse), pageFields(page, count))
}

func (h *CatalogHandler) GetMenu(c *gin.Context) {
	id, ok := pathID(c, menuResource.param, menuResource.title)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	menu, err := h.svs.GetMenu(reqCtx, id)
	if err != nil {
		h.getFailed(c, err)
		return
	}
	h.found(c, menuResource, newMenuResponse(menu))
}

func (h *CatalogHandler) CreateMenu(c *gin.Context) {
	var params MenuParams
	if !bindBody(c, &params) {
		return
	}
	restaurantID, err := validate.Identifier(restaurantResource.title, params.Restaurant)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	menu, err := h.svs.CreateMenu(reqCtx, repoargs.CreateMenu{
		Name:         params.Name,
		Active:       params.Active,
		RestaurantID: restaurantID,
		CreatedBy:    currentUserID(c),
	})
	if err != nil {
		h.createFailed(c, menuResource, err)
		return
	}
	h.created(c, menuResource, newMenuResponse(menu))
}

func (h *CatalogHandler) UpdateMenu(c *gin.Context) {
	id, ok := pathID(c, menuResource.param, menuResource.title)
	if !ok {
		return
	}
	var params UpdateMenuParams
	if !bindBody(c, &params) {
		return
	}
	restaurantID, err := validate.OptionalIdentifier(restaurantResource.title, params.Restaurant)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	menu, err := h.svs.UpdateMenu(reqCtx, id, currentUserID(c), repoargs.UpdateMenu{
		Name:         params.Name,
		Active:       params.Active,
		RestaurantID: restaurantID,
	})
	if err != nil {
		h.updateFailed(c, menuResource, err)
		return
	}
	h.updated(c, menuResource, newMenuResponse(menu))
}
