package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/dto"
	"rtub-system/internal/services"
	"rtub-system/pkg/utils"
)

type RehearsalController struct {
	rehearsalService services.RehearsalServiceInterface
	logger           *zap.Logger
}

func NewRehearsalController(rehearsalService services.RehearsalServiceInterface, logger *zap.Logger) *RehearsalController {
	return &RehearsalController{rehearsalService: rehearsalService, logger: logger}
}

func (c *RehearsalController) GetRehearsals(ctx echo.Context) error {
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	rehearsals, total, err := c.rehearsalService.GetAll(ctx.Request().Context(), filter)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rehearsals, "rehearsals listed", http.StatusOK, total)
}

func (c *RehearsalController) FindRehearsal(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rehearsal, err := c.rehearsalService.GetByID(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rehearsal, "rehearsal found", http.StatusOK)
}

func (c *RehearsalController) CreateRehearsal(ctx echo.Context) error {
	var payload dto.CreateRehearsalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rehearsal, err := c.rehearsalService.Create(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rehearsal, "rehearsal created", http.StatusCreated)
}

func (c *RehearsalController) UpdateRehearsal(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.UpdateRehearsalDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	rehearsal, err := c.rehearsalService.Update(ctx.Request().Context(), id, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, rehearsal, "rehearsal updated", http.StatusOK)
}

func (c *RehearsalController) DeleteRehearsal(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.rehearsalService.Delete(ctx.Request().Context(), id); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "rehearsal deleted", http.StatusOK)
}

func (c *RehearsalController) MarkAttendance(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.UserIDFromContext(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.MarkAttendanceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	if err := c.rehearsalService.MarkAttendance(reqCtx, id, userID, payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "attendance marked", http.StatusOK)
}

func (c *RehearsalController) GetAttendance(ctx echo.Context) error {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	attendance, err := c.rehearsalService.GetAttendance(ctx.Request().Context(), id)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, attendance, "attendance listed", http.StatusOK)
}
