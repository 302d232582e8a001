package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runInventoryRouter(secure *echo.Group, inventoryService services.InventoryServiceInterface, logger *zap.Logger) {
	inventoryController := controllers.NewInventoryController(inventoryService, logger)

	secure.GET("/inventory", inventoryController.GetItems)
	secure.GET("/inventory/:id", inventoryController.FindItem)

	manage := authz.RequirePolicy(authz.PolicyMagistratura, logger)
	secure.POST("/inventory", inventoryController.CreateItem, manage)
	secure.PUT("/inventory/:id", inventoryController.UpdateItem, manage)
	secure.DELETE("/inventory/:id", inventoryController.DeleteItem, manage)
}
