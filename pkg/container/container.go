package container

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/rs/zerolog/log"

	authorhandler "library-catalog/internal/domains/author/handler"
	authorrepo "library-catalog/internal/domains/author/repository"
	authorservice "library-catalog/internal/domains/author/service"
	bookhandler "library-catalog/internal/domains/book/handler"
	bookrepo "library-catalog/internal/domains/book/repository"
	bookservice "library-catalog/internal/domains/book/service"
	rolehandler "library-catalog/internal/domains/role/handler"
	rolerepo "library-catalog/internal/domains/role/repository"
	roleservice "library-catalog/internal/domains/role/service"
	userhandler "library-catalog/internal/domains/user/handler"
	userrepo "library-catalog/internal/domains/user/repository"
	userservice "library-catalog/internal/domains/user/service"

	"library-catalog/internal/config"
	"library-catalog/internal/infrastructure/cache"
	"library-catalog/internal/infrastructure/database"
	"library-catalog/internal/infrastructure/storage"
	"library-catalog/migrations"
	"library-catalog/pkg/jwt"
)

// Container wires configuration, infrastructure, repositories, services
// and handlers in dependency order.
type Container struct {
	Config *config.Config

	DB      *database.PostgresDB
	Cache   *cache.RedisCache
	Storage *storage.MinIOStorage
	JWT     *jwt.Manager

	RoleService roleservice.ServiceInterface

	BookHandler   *bookhandler.Handler
	AuthorHandler *authorhandler.Handler
	UserHandler   *userhandler.Handler
	RoleHandler   *rolehandler.Handler
}

// New builds the full dependency graph: config -> infrastructure ->
// repositories -> services -> handlers.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{Config: cfg}

	if err := c.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := c.runMigrations(); err != nil {
		return nil, err
	}
	if err := c.initCache(ctx); err != nil {
		return nil, err
	}
	if err := c.initStorage(); err != nil {
		return nil, err
	}

	c.JWT = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	c.initDomains()

	log.Info().Msg("Dependency container initialized")
	return c, nil
}

func (c *Container) initDatabase(ctx context.Context) error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("load database config: %w", err)
	}

	c.DB = database.NewPostgresDB(dbConfig)
	if err := c.DB.Connect(ctx); err != nil {
		return fmt.Errorf("database connect: %w", err)
	}
	return nil
}

// runMigrations applies pending goose migrations. goose needs a *sql.DB,
// so a short-lived stdlib connection is opened next to the pgx pool.
func (c *Container) runMigrations() error {
	db := stdlib.OpenDBFromPool(c.DB.Pool)
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			log.Warn().Err(err).Msg("Migration connection close failed")
		}
	}(db)

	if err := migrations.Migrate(db); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	log.Info().Msg("Database migrations applied")
	return nil
}

func (c *Container) initCache(ctx context.Context) error {
	c.Cache = cache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	if err := c.Cache.Connect(ctx); err != nil {
		return fmt.Errorf("redis connect: %w", err)
	}
	return nil
}

func (c *Container) initStorage() error {
	s, err := storage.NewMinIOStorage(c.Config.MinIO)
	if err != nil {
		return fmt.Errorf("minio init: %w", err)
	}
	c.Storage = s
	return nil
}

func (c *Container) initDomains() {
	pool := c.DB.Pool

	roleRepository := rolerepo.NewPostgresRepository(pool)
	c.RoleService = roleservice.NewService(roleRepository, c.Cache)
	c.RoleHandler = rolehandler.NewHandler(c.RoleService)

	bookRepository := bookrepo.NewPostgresRepository(pool)
	bookService := bookservice.NewService(bookRepository, c.Cache)
	c.BookHandler = bookhandler.NewHandler(bookService)

	authorRepository := authorrepo.NewPostgresRepository(pool)
	authorService := authorservice.NewService(authorRepository, c.Cache)
	c.AuthorHandler = authorhandler.NewHandler(authorService)

	userRepository := userrepo.NewPostgresRepository(pool)
	userService := userservice.NewService(userRepository, c.JWT, c.Storage, c.RoleService)
	c.UserHandler = userhandler.NewHandler(userService)
}

// Cleanup releases infrastructure resources in reverse order
func (c *Container) Cleanup() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			log.Warn().Err(err).Msg("Redis close failed")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}
	log.Info().Msg("Dependency container cleaned up")
}
