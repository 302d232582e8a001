package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runShopRouter(secure *echo.Group, shopService services.ShopServiceInterface, logger *zap.Logger) {
	shopController := controllers.NewShopController(shopService, logger)

	secure.GET("/shop/items", shopController.GetItems)
	secure.GET("/shop/items/:id", shopController.FindItem)

	manage := authz.RequirePolicy(authz.PolicyMagistratura, logger)
	secure.POST("/shop/items", shopController.CreateItem, manage)
	secure.PUT("/shop/items/:id", shopController.UpdateItem, manage)
	secure.DELETE("/shop/items/:id", shopController.DeleteItem, manage)

	participate := authz.RequirePolicy(authz.PolicyNotOnlyLeitao, logger)
	secure.POST("/shop/orders", shopController.PlaceOrder, participate)
	secure.GET("/shop/orders", shopController.GetOrders, manage)
	secure.GET("/shop/orders/:id", shopController.FindOrder)
	secure.PUT("/shop/orders/:id/status", shopController.UpdateOrderStatus, manage)
}
