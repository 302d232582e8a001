package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runAuditRouter(secure *echo.Group, auditService services.AuditServiceInterface, logger *zap.Logger) {
	auditController := controllers.NewAuditController(auditService, logger)

	oversight := authz.RequireAnyPolicy(logger, authz.PolicyAdmin, authz.PolicyConselhoFiscal)
	secure.GET("/audit", auditController.GetRecords, oversight)
	secure.GET("/audit/emails", auditController.GetEmails, authz.RequirePolicy(authz.PolicyAdmin, logger))
}
