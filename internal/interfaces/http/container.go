package http

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/orris-inc/resinfo/internal/application/status/usecases"
	"github.com/orris-inc/resinfo/internal/infrastructure/config"
	"github.com/orris-inc/resinfo/internal/interfaces/http/handlers"
	"github.com/orris-inc/resinfo/internal/shared/logger"
)

// Container wires the data sources, the aggregation use case and the HTTP
// router, and releases them on Shutdown.
type Container struct {
	cfg   *config.Config
	log   logger.Interface
	redis *redis.Client

	aggregate *usecases.AggregateStatusUseCase
	router    *Router
}

func NewContainer(cfg *config.Config, log logger.Interface) (*Container, error) {
	store, redisClient, err := newKVStore(cfg)
	if err != nil {
		return nil, err
	}

	aggregate := usecases.NewAggregateStatusUseCase(
		newSources(cfg, store, log),
		newOptions(cfg),
		log.Named("status"),
	)

	router := NewRouter(
		handlers.NewStatusHandler(aggregate, log),
		newLimiter(cfg, redisClient),
		log,
	)
	router.SetupRoutes()

	log.Infow("container initialized",
		"cache_driver", cfg.Cache.Driver,
		"rate_limit", cfg.Server.RateLimit,
		"ping_primary", cfg.Ping.Primary,
		"services_source", cfg.Services.Source,
		"parallel", cfg.Status.Parallel,
		"strict_envelopes", cfg.Status.StrictEnvelopes,
	)

	return &Container{
		cfg:       cfg,
		log:       log,
		redis:     redisClient,
		aggregate: aggregate,
		router:    router,
	}, nil
}

// Aggregator returns the status use case, for in-process callers.
func (c *Container) Aggregator() *usecases.AggregateStatusUseCase {
	return c.aggregate
}

func (c *Container) Engine() *gin.Engine {
	return c.router.GetEngine()
}

// Shutdown closes the Redis client when one was opened.
func (c *Container) Shutdown() {
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			c.log.Warnw("failed to close redis client", "error", err)
		}
	}
}
