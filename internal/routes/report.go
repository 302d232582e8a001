package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runReportRouter(secure *echo.Group, reportService services.ReportServiceInterface, logger *zap.Logger) {
	reportController := controllers.NewReportController(reportService, logger)

	// the assembly board and veteran council pull the roster for their own
	// proceedings; the fiscal council pulls the ledger it audits
	roster := authz.RequireAnyPolicy(logger,
		authz.PolicyMagistratura,
		authz.PolicyMesaAssembleia,
		authz.PolicyConselhoVeteranos,
	)
	secure.GET("/reports/members", reportController.ExportMembers, roster)
	secure.GET("/reports/finance", reportController.ExportFinance,
		authz.RequireAnyPolicy(logger, authz.PolicyFinance, authz.PolicyConselhoFiscal))
}
