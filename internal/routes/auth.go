package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runAuthRouter(api *echo.Group, secure *echo.Group, authService services.AuthServiceInterface, logger *zap.Logger) {
	authController := controllers.NewAuthController(authService, logger)

	api.POST("/auth/login", authController.Login)
	api.POST("/auth/refresh", authController.Refresh)
	secure.GET("/auth/me", authController.Me)
}
