package http

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/orris-inc/resinfo/docs"
	"github.com/orris-inc/resinfo/internal/infrastructure/ratelimit"
	"github.com/orris-inc/resinfo/internal/interfaces/http/handlers"
	"github.com/orris-inc/resinfo/internal/interfaces/http/middleware"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// Router represents the HTTP router configuration
type Router struct {
	engine        *gin.Engine
	statusHandler *handlers.StatusHandler
	limiter       ratelimit.Limiter
	logger        logger.Interface
}

// NewRouter builds the engine. A nil limiter leaves the status routes
// unlimited.
func NewRouter(statusHandler *handlers.StatusHandler, limiter ratelimit.Limiter, log logger.Interface) *Router {
	engine := gin.New()
	engine.Use(
		middleware.RequestID(),
		middleware.CustomLogger(log),
		middleware.Recovery(log),
		middleware.CORS(),
	)

	return &Router{
		engine:        engine,
		statusHandler: statusHandler,
		limiter:       limiter,
		logger:        log,
	}
}

// SetupRoutes registers the status endpoint under its legacy and current
// paths, plus the health check and the API docs.
func (r *Router) SetupRoutes() {
	r.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.engine.GET("/health", r.statusHandler.Health)

	api := r.engine.Group("", middleware.NoCache())
	if r.limiter != nil {
		api.Use(middleware.RateLimit(r.limiter, r.logger))
	}
	for _, path := range []string{"/api.php", "/api/status"} {
		api.GET(path, r.statusHandler.GetStatus)
		api.OPTIONS(path, func(*gin.Context) {})
	}
}

func (r *Router) GetEngine() *gin.Engine {
	return r.engine
}
