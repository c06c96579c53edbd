package api

import (
	"net/http"
	"time"

	"github.com/fsdevblog/food-delivery/internal/transport/api/envelope"
	"github.com/fsdevblog/food-delivery/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
	DefaultAPIPrefix      = "/api/v1"
)

const (
	UserGroup       = "/user"
	OrderGroup      = "/order"
	CountryGroup    = "/country"
	LocationGroup   = "/location"
	RestaurantGroup = "/restaurant"
	MenuGroup       = "/menu"
	FoodGroup       = "/food"

	MetricsRoute = "/metrics"
)

// Collector метрики HTTP запросов. Реализуется metrics.Metrics.
type Collector interface {
	Middleware() gin.HandlerFunc
	Handler() http.Handler
}

type RouterArgs struct {
	Logger         logrus.FieldLogger
	UserService    UserServicer
	OrderService   OrderServicer
	CatalogService CatalogServicer
	Metrics        Collector
	APIPrefix      string
}

func New(args RouterArgs) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if args.Metrics != nil {
		r.Use(args.Metrics.Middleware())
		r.GET(MetricsRoute, gin.WrapH(args.Metrics.Handler()))
	}
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.Errors())

	prefix := args.APIPrefix
	if prefix == "" {
		prefix = DefaultAPIPrefix
	}

	authRequired := middlewares.AuthRequired(args.UserService)
	authHandler := NewAuthHandler(args.UserService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	catalogHandler := NewCatalogHandler(args.CatalogService)

	api := r.Group(prefix)
	api.GET("/", func(c *gin.Context) {
		envelope.JSON(c, http.StatusOK, envelope.CodeSuccess, "Server is running.", nil)
	})

	user := api.Group(UserGroup)
	user.POST("/register", authHandler.Register)
	user.POST("/login", authHandler.Login)
	user.POST("/logout", authHandler.Logout)
	user.GET("/authenticate", authRequired, authHandler.Authenticate)

	// все маршруты заказов требуют авторизованного пользователя.
	order := api.Group(OrderGroup, authRequired)
	order.POST("/", ordersHandler.Index)
	order.GET("/:orderId", ordersHandler.Show)
	order.POST("/create", ordersHandler.Create)
	order.PATCH("/:orderId", ordersHandler.Pay)

	catalogRoutes(api.Group(CountryGroup), authRequired, countryResource, catalogRoute{
		list: catalogHandler.ListCountries, get: catalogHandler.GetCountry,
		create: catalogHandler.CreateCountry, update: catalogHandler.UpdateCountry,
	}, catalogHandler)
	catalogRoutes(api.Group(LocationGroup), authRequired, locationResource, catalogRoute{
		list: catalogHandler.ListLocations, get: catalogHandler.GetLocation,
		create: catalogHandler.CreateLocation, update: catalogHandler.UpdateLocation,
	}, catalogHandler)
	catalogRoutes(api.Group(RestaurantGroup), authRequired, restaurantResource, catalogRoute{
		list: catalogHandler.ListRestaurants, get: catalogHandler.GetRestaurant,
		create: catalogHandler.CreateRestaurant, update: catalogHandler.UpdateRestaurant,
	}, catalogHandler)
	catalogRoutes(api.Group(MenuGroup), authRequired, menuResource, catalogRoute{
		list: catalogHandler.ListMenus, get: catalogHandler.GetMenu,
		create: catalogHandler.CreateMenu, update: catalogHandler.UpdateMenu,
	}, catalogHandler)
	catalogRoutes(api.Group(FoodGroup), authRequired, foodResource, catalogRoute{
		list: catalogHandler.ListFoods, get: catalogHandler.GetFood,
		create: catalogHandler.CreateFood, update: catalogHandler.UpdateFood,
	}, catalogHandler)

	return r
}

type catalogRoute struct {
	list, get, create, update gin.HandlerFunc
}

// catalogRoutes чтение публичное, изменения только для авторизованных.
func catalogRoutes(
	g *gin.RouterGroup,
	authRequired gin.HandlerFunc,
	res resource,
	h catalogRoute,
	catalogHandler *CatalogHandler,
) {
	idPath := "/:" + res.param
	g.POST("/", h.list)
	g.GET(idPath, h.get)
	g.POST("/create", authRequired, h.create)
	g.PATCH(idPath, authRequired, h.update)
	g.DELETE(idPath, authRequired, catalogHandler.Delete(res))
}
