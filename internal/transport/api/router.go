package api

import (
	"net/http"
	"time"

	"github.com/fsdevblog/botshop/internal/transport/api/middlewares"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const (
	DefaultServiceTimeout = 3 * time.Second
)

const (
	RouteGroup      = "/api/v1"
	CategoriesRoute = "/categories"
	CategoryRoute   = "/categories/:id"
	ProductsRoute   = "/products"
	ProductRoute    = "/products/:id"
	UsersMeRoute    = "/users/me"
	OrdersRoute     = "/orders"
	MyOrdersRoute   = "/orders/my"
	OrderRoute      = "/orders/:id"
	HealthRoute     = "/health"
	RootRoute       = "/"
)

type RouterArgs struct {
	Logger         *logrus.Logger
	AuthService    AuthServicer
	OrderService   OrderServicer
	CatalogService CatalogServicer
}

func New(args RouterArgs) (*gin.Engine, error) {
	if err := registerValidators(); err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), middlewares.RequestID())
	if args.Logger != nil {
		r.Use(middlewares.Logger(args.Logger))
	}
	r.Use(middlewares.CORS(), middlewares.Errors())

	catalogHandler := NewCatalogHandler(args.CatalogService)
	ordersHandler := NewOrdersHandler(args.OrderService)
	usersHandler := NewUsersHandler()

	r.GET(RootRoute, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "BotShop API"})
	})
	r.GET(HealthRoute, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group(RouteGroup)

	api.GET(CategoriesRoute, catalogHandler.ListCategories)
	api.GET(CategoryRoute, catalogHandler.GetCategory)
	api.GET(ProductsRoute, catalogHandler.ListProducts)
	api.GET(ProductRoute, catalogHandler.GetProduct)

	api.Use(middlewares.AuthRequired(args.AuthService))
	// ниже все роуты группы требуют проверенных init data.
	api.GET(UsersMeRoute, usersHandler.Me)
	api.POST(OrdersRoute, ordersHandler.Create)
	api.GET(MyOrdersRoute, ordersHandler.My)
	api.GET(OrderRoute, ordersHandler.Show)
	return r, nil
}
