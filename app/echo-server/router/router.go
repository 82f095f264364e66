package router

import (
	"plantnet/internal/rest"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func SetupAuthRoutes(api *echo.Group, handler *rest.AuthHandler) {
	api.POST("/jwt", handler.IssueToken)
	api.GET("/logout", handler.Logout)
}

func SetupUserRoutes(api *echo.Group, handler *rest.UserHandler, authRequired echo.MiddlewareFunc) {
	users := api.Group("/users")

	users.POST("/:email", handler.UpsertUser)
	users.GET("/role/:email", handler.GetUserRole)

	users.GET("", handler.GetAllUsers, authRequired)
	users.PATCH("/:email", handler.RequestSellerStatus, authRequired)
	users.PATCH("/role/:email", handler.SetUserRole, authRequired)
}

func SetupPlantRoutes(api *echo.Group, handler *rest.PlantHandler, authRequired echo.MiddlewareFunc) {
	plants := api.Group("/plants")

	plants.GET("", handler.GetAllPlants)
	plants.GET("/seller", handler.GetPlantsBySeller, authRequired)
	plants.GET("/:id", handler.GetPlantByID)
	plants.POST("", handler.CreatePlant, authRequired)
	plants.PATCH("/quantity/:id", handler.AdjustQuantity, authRequired)
	plants.DELETE("/:id", handler.DeletePlant, authRequired)
}

func SetupOrderRoutes(api *echo.Group, handler *rest.OrderHandler, authRequired echo.MiddlewareFunc) {
	api.POST("/orders", handler.CreateOrder, authRequired)
	api.GET("/customer-orders", handler.CustomerOrders, authRequired)
	api.GET("/seller-orders", handler.SellerOrders, authRequired)
	api.PATCH("/orders/status/:id", handler.SetOrderStatus, authRequired)
	api.DELETE("/orders/:id", handler.CancelOrder, authRequired)
}

func SetupMetricsRoute(e *echo.Echo) {
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
}
