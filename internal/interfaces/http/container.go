package http

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	notificationUsecases "github.com/qreserve/qreserve/internal/application/notification/usecases"
	"github.com/qreserve/qreserve/internal/domain/notification"
	"github.com/qreserve/qreserve/internal/infrastructure/auth"
	"github.com/qreserve/qreserve/internal/infrastructure/config"
	"github.com/qreserve/qreserve/internal/infrastructure/email"
	"github.com/qreserve/qreserve/internal/infrastructure/permission"
	"github.com/qreserve/qreserve/internal/infrastructure/pubsub"
	"github.com/qreserve/qreserve/internal/infrastructure/ratelimit"
	"github.com/qreserve/qreserve/internal/infrastructure/storage"
	"github.com/qreserve/qreserve/internal/interfaces/http/middleware"
	"github.com/qreserve/qreserve/internal/shared/authorization"
	"github.com/qreserve/qreserve/internal/shared/goroutine"
	"github.com/qreserve/qreserve/internal/shared/logger"
)

// Version is reported by the health endpoint. Overridden at build time.
var Version = "dev"

// Container holds all infrastructure components, repositories, use cases and
// handlers, and owns their shutdown.
type Container struct {
	// Core infrastructure
	engine *gin.Engine
	db     *gorm.DB
	cfg    *config.Config
	log    logger.Interface
	redis  *redis.Client

	repos *repositories
	ucs   *allUseCases
	hdlrs *allHandlers

	// Middlewares
	authMiddleware *middleware.AuthMiddleware
	rateLimiter    *middleware.RateLimiter

	// Auth & permission infrastructure
	jwtSvc   *auth.JWTService
	hasher   *auth.PasswordHasher
	enforcer *permission.Enforcer

	fileStore *storage.LocalFileStore
	publisher notification.Publisher

	// In-process notification worker, only for the memory driver.
	workerCancel context.CancelFunc
	workerDone   <-chan struct{}
	shutdownOnce sync.Once
}

// NewContainer creates a new Container with all dependencies wired together.
func NewContainer(db *gorm.DB, cfg *config.Config, log logger.Interface) (*Container, error) {
	c := &Container{
		engine: gin.New(),
		db:     db,
		cfg:    cfg,
		log:    log,
	}

	if err := c.initInfrastructure(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initRepositories()
	c.initUseCases()
	if err := c.initHandlers(); err != nil {
		c.Shutdown()
		return nil, err
	}
	c.initMiddlewares()

	return c, nil
}

func (c *Container) initInfrastructure() error {
	cfg := c.cfg

	jwtSvc, err := auth.NewJWTServiceWithAlgorithm(
		cfg.Auth.JWT.Secret,
		cfg.Auth.JWT.Algorithm,
		cfg.Auth.JWT.AccessExpMinutes,
		cfg.Auth.JWT.RefreshExpDays,
	)
	if err != nil {
		return err
	}
	c.jwtSvc = jwtSvc
	c.hasher = auth.NewPasswordHasher(cfg.Auth.Password.BcryptCost)

	enforcer, err := permission.NewEnforcer(c.db, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize permission enforcer: %w", err)
	}
	c.enforcer = enforcer
	authorization.InstallChecker(enforcer)

	fileStore, err := storage.NewLocalFileStore(cfg.Upload.Dir, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize upload storage: %w", err)
	}
	c.fileStore = fileStore

	if err := c.initRedis(); err != nil {
		return err
	}

	publisher, err := pubsub.NewPublisher(&cfg.Notification, c.redis, c.log)
	if err != nil {
		return fmt.Errorf("failed to initialize notification publisher: %w", err)
	}
	c.publisher = publisher

	return c.startInProcessWorker()
}

// initRedis connects when notifications or rate limiting need it. A redis
// outage only disables rate limiting; the redis notification driver cannot
// run without it.
func (c *Container) initRedis() error {
	needForQueue := strings.EqualFold(c.cfg.Notification.Driver, "redis")
	if !needForQueue && !c.cfg.RateLimit.Enabled {
		return nil
	}

	client := pubsub.NewRedisClient(&c.cfg.Redis)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		if needForQueue {
			return fmt.Errorf("failed to connect to redis at %s: %w", c.cfg.Redis.GetAddr(), err)
		}
		c.log.Warnw("redis unavailable, rate limiting disabled", "address", c.cfg.Redis.GetAddr(), "error", err)
		return nil
	}

	c.log.Infow("redis connection established", "address", c.cfg.Redis.GetAddr())
	c.redis = client
	return nil
}

// startInProcessWorker drains the memory queue inside the server process,
// since no other process can see it.
func (c *Container) startInProcessWorker() error {
	if !strings.EqualFold(c.cfg.Notification.Driver, "memory") {
		return nil
	}
	consumer, ok := c.publisher.(notification.Consumer)
	if !ok {
		return nil
	}

	send, err := notificationUsecases.NewSendNotificationUseCase(
		email.NewSender(&c.cfg.Email, c.log), c.cfg.Server.BaseURL, c.log,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize notification templates: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.workerCancel = cancel
	worker := notificationUsecases.NewWorker(consumer, send, c.log.Named("notification.worker"))

	c.workerDone = goroutine.Go(c.log, "notification-worker", func() {
		_ = worker.Run(ctx)
	})
	return nil
}

func (c *Container) initMiddlewares() {
	c.authMiddleware = middleware.NewAuthMiddleware(c.jwtSvc, c.repos.userRepo, c.log)

	var limiter ratelimit.Limiter = ratelimit.NoopLimiter{}
	if c.cfg.RateLimit.Enabled && c.redis != nil {
		limiter = ratelimit.NewRedisRateLimiter(c.redis)
	}
	c.rateLimiter = middleware.NewRateLimiter(limiter, c.cfg.RateLimit.PerMinute, time.Minute, c.log)
}

// Shutdown stops the in-process worker and releases queue and redis
// connections. The database is closed by the caller.
func (c *Container) Shutdown() {
	c.shutdownOnce.Do(func() {
		if c.workerCancel != nil {
			c.workerCancel()
			<-c.workerDone
		}
		if c.publisher != nil {
			if err := c.publisher.Close(); err != nil {
				c.log.Errorw("failed to close notification publisher", "error", err)
			}
		}
		if c.redis != nil {
			if err := c.redis.Close(); err != nil {
				c.log.Errorw("failed to close redis client", "error", err)
			}
		}
		authorization.InstallChecker(nil)
	})
}
