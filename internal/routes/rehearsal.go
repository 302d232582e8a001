package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runRehearsalRouter(secure *echo.Group, rehearsalService services.RehearsalServiceInterface, logger *zap.Logger) {
	rehearsalController := controllers.NewRehearsalController(rehearsalService, logger)

	secure.GET("/rehearsals", rehearsalController.GetRehearsals)
	secure.GET("/rehearsals/:id", rehearsalController.FindRehearsal)
	secure.GET("/rehearsals/:id/attendance", rehearsalController.GetAttendance)

	ensaiador := authz.RequirePolicy(authz.PolicyEnsaiador, logger)
	secure.POST("/rehearsals", rehearsalController.CreateRehearsal, ensaiador)
	secure.PUT("/rehearsals/:id", rehearsalController.UpdateRehearsal, ensaiador)
	secure.DELETE("/rehearsals/:id", rehearsalController.DeleteRehearsal, ensaiador)
	secure.POST("/rehearsals/:id/attendance", rehearsalController.MarkAttendance, ensaiador)
}
