package controllers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/claims"
	"rtub-system/internal/dto"
	"rtub-system/internal/services"
	"rtub-system/pkg/contextkeys"
	"rtub-system/pkg/utils"
)

type ChatController struct {
	chatService services.ChatServiceInterface
	logger      *zap.Logger
}

func NewChatController(chatService services.ChatServiceInterface, logger *zap.Logger) *ChatController {
	return &ChatController{chatService: chatService, logger: logger}
}

func (c *ChatController) SendMessage(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	userID, err := utils.UserIDFromContext(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	var payload dto.SendChatMessageDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	message, err := c.chatService.SendMessage(reqCtx, eventID, userID, payload.Message)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, message, "message sent", http.StatusCreated)
}

func (c *ChatController) DeleteMessage(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()
	messageID := ctx.Param("messageId")

	userID, err := utils.UserIDFromContext(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	isAdmin := false
	if principal, ok := reqCtx.Value(contextkeys.PrincipalKey).(*claims.Principal); ok {
		isAdmin = principal.HasRole(claims.RoleAdmin) || principal.HasRole(claims.RoleOwner)
	}

	if err := c.chatService.DeleteMessage(reqCtx, messageID, userID, isAdmin); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "message deleted", http.StatusOK)
}

func (c *ChatController) GetHistory(ctx echo.Context) error {
	eventID, err := parseIDParam(ctx, "id")
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	limit := 0
	if raw := ctx.QueryParam("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	messages, err := c.chatService.GetHistory(ctx.Request().Context(), eventID, limit)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, messages, "chat history", http.StatusOK)
}
