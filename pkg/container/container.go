package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"library-api/internal/config"
	infraCache "library-api/internal/infrastructure/cache"
	"library-api/internal/infrastructure/database"
	"library-api/pkg/cache"
	"library-api/pkg/jwt"
	"library-api/pkg/logger"
	"library-api/pkg/metrics"

	authHandler "library-api/internal/domains/auth/handler"
	authService "library-api/internal/domains/auth/service"

	bookHandler "library-api/internal/domains/book/handler"
	bookRepo "library-api/internal/domains/book/repository"
	bookService "library-api/internal/domains/book/service"

	memberHandler "library-api/internal/domains/member/handler"
	memberRepo "library-api/internal/domains/member/repository"
	memberService "library-api/internal/domains/member/service"
)

// Container is the root of the dependency graph.
// Construction order: config, infrastructure, repositories, services, handlers.
type Container struct {
	// Infrastructure
	Config     *config.Config
	Postgres   *database.PostgresDB // nil when DB_DRIVER=sqlite
	Store      *database.Store
	Cache      cache.Cache
	JWTManager *jwt.Manager
	Metrics    *metrics.Metrics

	redis *infraCache.RedisCache

	// Repositories
	BookRepo   bookRepo.RepositoryInterface
	MemberRepo memberRepo.RepositoryInterface

	// Services
	AuthService   authService.ServiceInterface
	BookService   bookService.ServiceInterface
	MemberService memberService.ServiceInterface

	// Handlers
	AuthHandler   *authHandler.AuthHandler
	BookHandler   *bookHandler.BookHandler
	MemberHandler *memberHandler.MemberHandler
}

// NewContainer loads the configuration from the environment and builds the container.
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	logger.Info("[CONTAINER] config loaded", map[string]interface{}{"env": cfg.App.Environment})

	return Build(context.Background(), cfg)
}

// Build wires every dependency for cfg. On failure the resources opened so far are released.
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}
	if err := c.build(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	logger.Info("[CONTAINER] initialized", map[string]interface{}{"driver": cfg.Database.Driver})
	return c, nil
}

func (c *Container) build(ctx context.Context) error {
	if err := c.initStore(ctx); err != nil {
		return fmt.Errorf("failed to init store: %w", err)
	}
	c.initCache(ctx)

	c.JWTManager = jwt.NewManager(c.Config.JWT.Secret, c.Config.JWT.AccessTTL())
	c.Metrics = metrics.New()

	c.initRepositories()
	if err := c.initServices(); err != nil {
		return fmt.Errorf("failed to init services: %w", err)
	}
	c.initHandlers()
	return nil
}

func (c *Container) initStore(ctx context.Context) error {
	switch c.Config.Database.Driver {
	case config.DriverSQLite:
		sqlDB, err := database.OpenSQLite(c.Config.Database.SQLitePath)
		if err != nil {
			return err
		}
		c.Store = database.NewStore(sqlDB, database.DialectSQLite)
		logger.Info("[CONTAINER] sqlite opened", map[string]interface{}{"path": c.Config.Database.SQLitePath})

	case config.DriverPostgres:
		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()

		c.Postgres = database.NewPostgresDB(dbConfig)
		if err := c.Postgres.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		if err := c.Postgres.HealthCheck(ctx); err != nil {
			return fmt.Errorf("database health check failed: %w", err)
		}

		sqlDB, err := c.Postgres.SQLDB()
		if err != nil {
			return err
		}
		c.Store = database.NewStore(sqlDB, database.DialectPostgres)
		logger.Info("[CONTAINER] postgres connected", map[string]interface{}{"host": dbConfig.Host})

	default:
		return fmt.Errorf("unsupported database driver %q", c.Config.Database.Driver)
	}

	return database.Migrate(ctx, c.Store)
}

// initCache falls back to a no-op cache when Redis is not configured or unreachable.
func (c *Container) initCache(ctx context.Context) {
	c.Cache = infraCache.NoopCache{}

	if c.Config.Redis.Host == "" {
		logger.Debug("[CONTAINER] REDIS_HOST not set, record cache disabled")
		return
	}

	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := rc.Connect(ctx); err != nil {
		logger.Warn("[CONTAINER] redis connection failed, record cache disabled", map[string]interface{}{"error": err.Error()})
		_ = rc.Close()
		return
	}

	c.redis = rc
	c.Cache = rc
	logger.Info("[CONTAINER] redis connected", map[string]interface{}{"host": c.Config.Redis.Host})
}

func (c *Container) initRepositories() {
	c.BookRepo = bookRepo.NewSQLRepository(c.Store)
	c.MemberRepo = memberRepo.NewSQLRepository(c.Store)
}

func (c *Container) initServices() error {
	auth, err := authService.NewAuthService(c.Config.Auth, c.JWTManager)
	if err != nil {
		return err
	}
	c.AuthService = auth

	ttl := c.Config.Redis.TTL
	c.BookService = bookService.NewBookService(c.BookRepo, c.Cache, ttl)
	c.MemberService = memberService.NewMemberService(c.MemberRepo, c.Cache, ttl)
	return nil
}

func (c *Container) initHandlers() {
	c.AuthHandler = authHandler.NewAuthHandler(c.AuthService)
	c.BookHandler = bookHandler.NewBookHandler(c.BookService)
	c.MemberHandler = memberHandler.NewMemberHandler(c.MemberService)
}

// Health pings the store and, when enabled, the cache.
func (c *Container) Health(ctx context.Context) error {
	var errs []error
	if err := c.Store.Ping(ctx); err != nil {
		errs = append(errs, err)
	}
	if err := c.Cache.Ping(ctx); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Cleanup releases every resource the container opened. Safe on a partially built container.
func (c *Container) Cleanup() {
	if c.Store != nil {
		if err := c.Store.Close(); err != nil {
			logger.Error("[CONTAINER] failed to close store", err)
		}
	}
	if c.Postgres != nil {
		c.Postgres.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			logger.Error("[CONTAINER] failed to close redis", err)
		}
	}
	logger.Debug("[CONTAINER] cleanup completed")
}
