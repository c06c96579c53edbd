package api

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/gin-gonic/gin"
)

type RestaurantParams struct {
	Name     string `json:"name"`
	Active   *bool  `json:"active"`
	Rating   *int16 `json:"rating"`
	Location string `json:"location"`
}

type UpdateRestaurantParams struct {
	Name     *string `json:"name"`
	Active   *bool   `json:"active"`
	Rating   *int16  `json:"rating"`
	Location *string `json:"location"`
}

func (h *CatalogHandler) ListRestaurants(c *gin.Context) {
	page := bindPage(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	restaurants, count, err := h.svs.ListRestaurants(reqCtx, page)
	if err != nil {
		internalError(c, err)
		return
	}
	h.listed(c, restaurantResource, mapSlice(restaurants, newRestaurantResponse), pageFields(page, count))
}

func (h *CatalogHandler) GetRestaurant(c *gin.Context) {
	id, ok := pathID(c, restaurantResource.param, restaurantResource.title)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	restaurant, err := h.svs.GetRestaurant(reqCtx, id)
	if err != nil {
		h.getFailed(c, err)
		return
	}
	h.found(c, restaurantResource, newRestaurantResponse(restaurant))
}

func (h *CatalogHandler) CreateRestaurant(c *gin.Context) {
	var params RestaurantParams
	if !bindBody(c, &params) {
		return
	}
	locationID, err := validate.Identifier(locationResource.title, params.Location)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	restaurant, err := h.svs.CreateRestaurant(reqCtx, repoargs.CreateRestaurant{
		Name:       params.Name,
		Active:     params.Active,
		Rating:     params.Rating,
		LocationID: locationID,
		CreatedBy:  currentUserID(c),
	})
	if err != nil {
		h.createFailed(c, restaurantResource, err)
		return
	}
	h.created(c, restaurantResource, newRestaurantResponse(restaurant))
}

func (h *CatalogHandler) UpdateRestaurant(c *gin.Context) {
	id, ok := pathID(c, restaurantResource.param, restaurantResource.title)
	if !ok {
		return
	}
	var params UpdateRestaurantParams
	if !bindBody(c, &params) {
		return
	}
	locationID, err := validate.OptionalIdentifier(locationResource.title, params.Location)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	restaurant, err := h.svs.UpdateRestaurant(reqCtx, id, currentUserID(c), repoargs.UpdateRestaurant{
		Name:       params.Name,
		Active:     params.Active,
		Rating:     params.Rating,
		LocationID: locationID,
	})
	if err != nil {
		h.updateFailed(c, restaurantResource, err)
		return
	}
	h.updated(c, restaurantResource, newRestaurantResponse(restaurant))
}
