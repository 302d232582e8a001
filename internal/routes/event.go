package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runEventRouter(secure *echo.Group, eventService services.EventServiceInterface, chatService services.ChatServiceInterface, logger *zap.Logger) {
	eventController := controllers.NewEventController(eventService, logger)
	chatController := controllers.NewChatController(chatService, logger)

	secure.GET("/events", eventController.GetEvents)
	secure.GET("/events/:id", eventController.FindEvent)
	secure.GET("/events/:id/enrollments", eventController.GetEnrollments)

	manage := authz.RequirePolicy(authz.PolicyMagistratura, logger)
	secure.POST("/events", eventController.CreateEvent, manage)
	secure.PUT("/events/:id", eventController.UpdateEvent, manage)
	secure.DELETE("/events/:id", eventController.DeleteEvent, manage)

	// Leitoes browse but do not participate.
	participate := authz.RequirePolicy(authz.PolicyNotOnlyLeitao, logger)
	secure.POST("/events/:id/enroll", eventController.Enroll, participate)
	secure.DELETE("/events/:id/enroll", eventController.Unenroll, participate)

	secure.GET("/events/:id/messages", chatController.GetHistory)
	secure.POST("/events/:id/messages", chatController.SendMessage, participate)
	secure.DELETE("/messages/:messageId", chatController.DeleteMessage)
}
