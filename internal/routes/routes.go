package routes

import (
	"net/http"

	_ "portfolio_backend/docs"
	"portfolio_backend/internal/handlers"
	"portfolio_backend/internal/logger"
	"portfolio_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes регистрирует все HTTP маршруты.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
) {
	ginRouter.GET("/", appHandlers.SystemHandler.Info)

	api := ginRouter.Group("/api")
	{
		appHandlers.SystemHandler.RegisterRoutes(api)
		appHandlers.ImageHandler.RegisterRoutes(api)
		appHandlers.PortfolioHandler.RegisterRoutes(api)
	}

	ginRouter.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	ginRouter.NoRoute(func(c *gin.Context) {
		apperrors.HandleError(c, apperrors.New(apperrors.CodeNotFound, "http", "Route not found", http.StatusNotFound))
	})

	logger.Debug("Routes registered", "count", len(ginRouter.Routes()))
}
