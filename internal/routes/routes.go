package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/controllers"
	"rtub-system/internal/listeners"
	"rtub-system/internal/repositories"
	"rtub-system/internal/services"
	"rtub-system/pkg/config"
	"rtub-system/pkg/eventbus"
	"rtub-system/pkg/middleware"
	"rtub-system/pkg/service"
	"rtub-system/pkg/websocket"
)

// InitRouter builds the whole dependency graph and mounts every route group.
func InitRouter(
	e *echo.Echo,
	dbConn *pgxpool.Pool,
	redisClient *redis.Client,
	jwtSvc service.JWTService,
	hub *websocket.Hub,
	logger *zap.Logger,
	cfg *config.Config,
) {
	api := e.Group("/api")
	bus := eventbus.New(logger)
	txManager := repositories.NewTxManager(dbConn)

	// repositories
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	memberRepo := repositories.NewMemberRepository(dbConn, logger)
	eventRepo := repositories.NewEventRepository(dbConn, logger)
	rehearsalRepo := repositories.NewRehearsalRepository(dbConn)
	transactionRepo := repositories.NewTransactionRepository(dbConn)
	inventoryRepo := repositories.NewInventoryRepository(dbConn)
	songRepo := repositories.NewSongRepository(dbConn)
	shopRepo := repositories.NewShopRepository(dbConn)
	chatRepo := repositories.NewChatRepository(dbConn)
	auditRepo := repositories.NewAuditRepository(dbConn)

	// services
	claimsService := services.NewClaimsService(memberRepo, cacheRepo, cfg.Claims.CacheTTL, logger)
	authService := services.NewAuthService(memberRepo, claimsService, jwtSvc, logger)
	memberService := services.NewMemberService(memberRepo, txManager, claimsService, bus, logger)
	eventService := services.NewEventService(eventRepo, bus, logger)
	rehearsalService := services.NewRehearsalService(rehearsalRepo, logger)
	transactionService := services.NewTransactionService(transactionRepo, bus, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, logger)
	songService := services.NewSongService(songRepo, logger)
	shopService := services.NewShopService(shopRepo, txManager, bus, logger)
	chatService := services.NewChatService(chatRepo, memberRepo, hub, logger)
	auditService := services.NewAuditService(auditRepo, logger)
	reportService := services.NewReportService(memberRepo, transactionRepo, rehearsalRepo, logger)

	// listeners
	listeners.NewNotificationListener(hub, logger).Register(bus)
	listeners.NewAuditListener(auditService, logger).Register(bus)
	listeners.NewEmailListener(auditService, memberRepo, logger).Register(bus)

	authMW := middleware.NewAuthMiddleware(jwtSvc, claimsService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authService, logger)
	runMemberRouter(secureGroup, memberService, logger)
	runEventRouter(secureGroup, eventService, chatService, logger)
	runRehearsalRouter(secureGroup, rehearsalService, logger)
	runFinanceRouter(secureGroup, transactionService, logger)
	runInventoryRouter(secureGroup, inventoryService, logger)
	runSongRouter(secureGroup, songService, logger)
	runShopRouter(secureGroup, shopService, logger)
	runAuditRouter(secureGroup, auditService, logger)
	runReportRouter(secureGroup, reportService, logger)

	wsController := controllers.NewWebSocketController(hub, jwtSvc, logger)
	e.GET("/ws", wsController.ServeWs)
}
