package routes

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"rtub-system/internal/authz"
	"rtub-system/internal/controllers"
	"rtub-system/internal/services"
)

func runSongRouter(secure *echo.Group, songService services.SongServiceInterface, logger *zap.Logger) {
	songController := controllers.NewSongController(songService, logger)

	secure.GET("/songs", songController.GetSongs)
	secure.GET("/songs/:id", songController.FindSong)

	ensaiador := authz.RequirePolicy(authz.PolicyEnsaiador, logger)
	secure.POST("/songs", songController.CreateSong, ensaiador)
	secure.PUT("/songs/:id", songController.UpdateSong, ensaiador)
	secure.DELETE("/songs/:id", songController.DeleteSong, ensaiador)
}
