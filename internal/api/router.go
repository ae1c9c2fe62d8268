package api

import (
	"github.com/gin-gonic/gin"

	"github.com/timmy/photorama/internal/api/handler"
	"github.com/timmy/photorama/internal/api/middleware"
	"github.com/timmy/photorama/internal/logger"
	"github.com/timmy/photorama/internal/service"
)

// RouterConfig holds router settings.
type RouterConfig struct {
	Mode string // debug, release, test
	CORS middleware.CORSConfig
}

// SetupRouter configures the Gin router with all routes.
func SetupRouter(gallerySvc *service.GalleryService, log *logger.Logger, cfg RouterConfig) *gin.Engine {
	switch cfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(cfg.CORS))

	healthHandler := handler.NewHealthHandler(gallerySvc)
	photoHandler := handler.NewPhotoHandler(gallerySvc)

	r.GET("/health", healthHandler.Health)

	v1 := r.Group("/api/v1")
	{
		v1.POST("/photos/refresh", photoHandler.Refresh)
		v1.GET("/photos", photoHandler.ListPhotos)
		v1.GET("/photos/:id", photoHandler.GetPhoto)
		v1.GET("/photos/:id/image", photoHandler.GetImage)
	}

	return r
}
