package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/services"
	"rtub-system/pkg/utils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ReportController struct {
	reportService services.ReportServiceInterface
	logger        *zap.Logger
}

func NewReportController(reportService services.ReportServiceInterface, logger *zap.Logger) *ReportController {
	return &ReportController{reportService: reportService, logger: logger}
}

func (c *ReportController) ExportMembers(ctx echo.Context) error {
	buffer, err := c.reportService.MembersReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="members.xlsx"`)
	return ctx.Blob(http.StatusOK, xlsxContentType, buffer.Bytes())
}

func (c *ReportController) ExportFinance(ctx echo.Context) error {
	buffer, err := c.reportService.FinanceReport(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="finance.xlsx"`)
	return ctx.Blob(http.StatusOK, xlsxContentType, buffer.Bytes())
}
