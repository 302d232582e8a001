package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runMemberRouter(secure *echo.Group, memberService services.MemberServiceInterface, logger *zap.Logger) {
	memberController := controllers.NewMemberController(memberService, logger)

	secure.GET("/members", memberController.GetMembers)
	secure.GET("/members/:id", memberController.FindMember)

	// CaloiroAdmin principals pass the read policy but not the write one.
	manage := authz.RequirePolicy(authz.PolicyMemberManagementWrite, logger)
	secure.POST("/members", memberController.CreateMember, manage)
	secure.PUT("/members/:id", memberController.UpdateMember, manage)
	secure.DELETE("/members/:id", memberController.DeleteMember, manage)

	secure.POST("/members/:id/categories", memberController.GrantCategory, manage)
	secure.DELETE("/members/:id/categories/:category", memberController.RevokeCategory, manage)
	secure.POST("/members/:id/positions", memberController.AssignPosition, manage)
	secure.DELETE("/members/:id/positions/:position", memberController.RemovePosition, manage)

	secure.PUT("/members/:id/roles", memberController.SetRoles, authz.RequirePolicy(authz.PolicyOwner, logger))
}
