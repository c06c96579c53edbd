package api

import (
	"context"

	"github.com/fsdevblog/food-delivery/internal/repository/repoargs"
	"github.com/gin-gonic/gin"
)

type CountryParams struct {
	Name  string `json:"name"`
	Code  string `json:"code"`
	Emoji string `json:"emoji"`
}

type UpdateCountryParams struct {
	Name  *string `json:"name"`
	Code  *string `json:"code"`
	Emoji *string `json:"emoji"`
}

func (h *CatalogHandler) ListCountries(c *gin.Context) {
	page := bindPage(c)

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	countries, count, err := h.svs.ListCountries(reqCtx, page)
	if err != nil {
		internalError(c, err)
		return
	}
	h.listed(c, countryResource, mapSlice(countries, newCountryResponse), pageFields(page, count))
}

func (h *CatalogHandler) GetCountry(c *gin.Context) {
	id, ok := pathID(c, countryResource.param, countryResource.title)
	if !ok {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	country, err := h.svs.GetCountry(reqCtx, id)
	if err != nil {
		h.getFailed(c, err)
		return
	}
	h.found(c, countryResource, newCountryResponse(country))
}

func (h *CatalogHandler) CreateCountry(c *gin.Context) {
	var params CountryParams
	if !bindBody(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	country, err := h.svs.CreateCountry(reqCtx, repoargs.CreateCountry{
		Name:      params.Name,
		Code:      params.Code,
		Emoji:     params.Emoji,
		CreatedBy: currentUserID(c),
	})
	if err != nil {
		h.createFailed(c, countryResource, err)
		return
	}
	h.created(c, countryResource, newCountryResponse(country))
}

func (h *CatalogHandler) UpdateCountry(c *gin.Context) {
	id, ok := pathID(c, countryResource.param, countryResource.title)
	if !ok {
		return
	}
	var params UpdateCountryParams
	if !bindBody(c, &params) {
		return
	}

	reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
	defer cancel()

	country, err := h.svs.UpdateCountry(reqCtx, id, currentUserID(c), repoargs.UpdateCountry{
		Name:  params.Name,
		Code:  params.Code,
		Emoji: params.Emoji,
	})
	if err != nil {
		h.updateFailed(c, countryResource, err)
		return
	}
	h.updated(c, countryResource, newCountryResponse(country))
}
