package api

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/fsdevblog/food-delivery/internal/validate"
	"github.com/gin-gonic/gin"
)

type LocationParams struct {
	Address string  `json:"address"`
	Country string  `json:"country"`
	Phone   *string `json:"phone"`
}

type UpdateLocationParams struct {
	Address *string `json:"address"`
	Country *string `json:"country"`
	Phone   *string `json:"phone"`
}

func (h *CatalogHandler) ListLocations(c *gin.Context) {
	page := bindPage(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	locations, count, err := h.svs.ListLocations(reqCtx, page)
	if err != nil {
		internalError(c, err)
		return
	}
	h.listed(c, locationResource, mapSlice(locations, newLocationResponse), pageFields(page, count))
}

func (h *CatalogHandler) GetLocation(c *gin.Context) {
	id, ok := pathID(c, locationResource.param, locationResource.title)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	location, err := h.svs.GetLocation(reqCtx, id)
	if err != nil {
		h.getFailed(c, err)
		return
	}
	h.found(c, locationResource, newLocationResponse(location))
}

func (h *CatalogHandler) CreateLocation(c *gin.Context) {
	var params LocationParams
	if !bindBody(c, &params) {
		return
	}
	countryID, err := validate.Identifier(countryResource.title, params.Country)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	location, err := h.svs.CreateLocation(reqCtx, repoargs.CreateLocation{
		Address:   params.Address,
		CountryID: countryID,
		Phone:     params.Phone,
		CreatedBy: currentUserID(c),
	})
	if err != nil {
		h.createFailed(c, locationResource, err)
		return
	}
	h.created(c, locationResource, newLocationResponse(location))
}

func (h *CatalogHandler) UpdateLocation(c *gin.Context) {
	id, ok := pathID(c, locationResource.param, locationResource.title)
	if !ok {
		return
	}
	var params UpdateLocationParams
	if !bindBody(c, &params) {
		return
	}
	countryID, err := validate.OptionalIdentifier(countryResource.title, params.Country)
	if err != nil {
		respondInputError(c, err)
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	location, err := h.svs.UpdateLocation(reqCtx, id, currentUserID(c), repoargs.UpdateLocation{
		Address:   params.Address,
		CountryID: countryID,
		Phone:     params.Phone,
	})
	if err != nil {
		h.updateFailed(c, locationResource, err)
		return
	}
	h.updated(c, locationResource, newLocationResponse(location))
}
