package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/fsdevblog/food-delivery/internal/domain"
	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/gin-gonic/gin"
)

// resource описывает сущность каталога для маршрутов и сообщений ответов.
type resource struct {
	kind    domain.CatalogKind
	title   string
	plural  string
	param   string
	listKey string
}

var (
	countryResource = resource{
		kind: domain.CatalogCountry, title: "Country", plural: "Countries", param: "countryId", listKey: "countries",
	}
	locationResource = resource{
		kind: domain.CatalogLocation, title: "Location", plural: "Locations", param: "locationId", listKey: "locations",
	}
	restaurantResource = resource{
		kind: domain.CatalogRestaurant, title: "Restaurant", plural: "Restaurants", param: "restaurantId",
		listKey: "restaurants",
	}
	menuResource = resource{
		kind: domain.CatalogMenu, title: "Menu", plural: "Menus", param: "menuId", listKey: "menus",
	}
	foodResource = resource{
		kind: domain.CatalogFood, title: "Food", plural: "Foods", param: "foodId", listKey: "foods",
	}
)

func (r resource) key() string {
	return string(r.kind)
}

func (r resource) notFoundMsg() string {
	return r.title + " not found or User is not creator."
}

// CatalogHandler CRUD стран, локаций, ресторанов, меню и блюд. Чтение публичное, изменения доступны
// только создателю записи.
type CatalogHandler struct {
	svs CatalogServicer
}

func NewCatalogHandler(svs CatalogServicer) *CatalogHandler {
	return &CatalogHandler{svs: svs}
}

// bindBody при ошибке разбора JSON отвечает 400 INPUT_ERROR.
func bindBody(c *gin.Context, params any) bool {
	if err := c.ShouldBindJSON(params); err != nil {
		_ = c.Error(err).SetType(gin.ErrorTypeBind)
		envelope.Abort(c, http.StatusBadRequest, envelope.CodeInputError, MsgInvalidBody, nil)
		return false
	}
	return true
}

func (h *CatalogHandler) created(c *gin.Context, r resource, item any) {
	envelope.JSON(c, http.StatusCreated, envelope.CodeSuccess, r.title+" created successfully.", gin.H{r.key(): item})
}

func (h *CatalogHandler) createFailed(c *gin.Context, r resource, err error) {
	switch {
	case respondInputError(c, err):
	case isDatabaseError(err):
		respondDatabaseError(c, err, "Failed to create "+r.key()+".")
	default:
		internalError(c, err)
	}
}

func (h *CatalogHandler) found(c *gin.Context, r resource, item any) {
	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, r.title+" found.", gin.H{r.key(): item})
}

func (h *CatalogHandler) getFailed(c *gin.Context, err error) {
	if errors.Is(err, domain.ErrRecordNotFound) {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	internalError(c, err)
}

func (h *CatalogHandler) updated(c *gin.Context, r resource, item any) {
	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, r.title+" Updated.", gin.H{r.key(): item})
}

func (h *CatalogHandler) updateFailed(c *gin.Context, r resource, err error) {
	switch {
	case respondInputError(c, err):
	case errors.Is(err, domain.ErrRecordNotFound):
		envelope.Abort(c, http.StatusBadRequest, envelope.CodeFailed, r.notFoundMsg(), nil)
	case isDatabaseError(err):
		respondDatabaseError(c, err, "Failed to update "+r.key()+".")
	default:
		internalError(c, err)
	}
}

func (h *CatalogHandler) listed(c *gin.Context, r resource, items any, fields gin.H) {
	fields[r.listKey] = items
	envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, "All "+r.plural+".", fields)
}

// Delete DELETE /<resource>/:id. Удаляет запись вместе со всеми дочерними записями каталога.
func (h *CatalogHandler) Delete(r resource) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c, r.param, r.title)
		if !ok {
			return
		}

		reqCtx, cancel := context.WithTimeout(c, DefaultServiceTimeout)
		defer cancel()

		if err := h.svs.Delete(reqCtx, r.kind, id, currentUserID(c)); err != nil {
			if errors.Is(err, domain.ErrRecordNotFound) {
				envelope.Abort(c, http.StatusBadRequest, envelope.CodeFailed, r.notFoundMsg(), nil)
				return
			}
			if isDatabaseError(err) {
				respondDatabaseError(c, err, "Failed to delete "+r.key()+".")
				return
			}
			internalError(c, err)
			return
		}
		envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, r.title+" Deleted.", nil)
	}
}
