package controllers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/pkg/service"
	appwebsocket "rtub-system/pkg/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type WebSocketController struct {
	hub        *appwebsocket.Hub
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewWebSocketController(hub *appwebsocket.Hub, jwtService service.JWTService, logger *zap.Logger) *WebSocketController {
	return &WebSocketController{hub: hub, jwtService: jwtService, logger: logger}
}

// ServeWs upgrades the connection. Browsers cannot set an Authorization
// header on a websocket handshake, so the access token rides a query param.
// An optional ?event=<id> joins that event's chat group right away.
func (c *WebSocketController) ServeWs(ctx echo.Context) error {
	tokenString := ctx.QueryParam("token")
	if tokenString == "" {
		return ctx.String(http.StatusUnauthorized, "missing token")
	}

	tokenClaims, err := c.jwtService.ValidateToken(tokenString)
	if err != nil || tokenClaims.IsRefreshToken {
		return ctx.String(http.StatusUnauthorized, "invalid token")
	}

	conn, err := upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		c.logger.Error("websocket upgrade failed", zap.Error(err))
		return err
	}

	client := appwebsocket.NewClient(c.hub, conn, tokenClaims.UserID, c.logger)
	client.Hub.Register <- client

	if raw := ctx.QueryParam("event"); raw != "" {
		if eventID, err := strconv.ParseUint(raw, 10, 64); err == nil {
			c.hub.JoinGroup(appwebsocket.EventGroupName(eventID), client)
		}
	}

	go client.WritePump()
	go client.ReadPump()

	c.logger.Info("websocket client connected", zap.Uint64("user_id", tokenClaims.UserID))
	return nil
}
