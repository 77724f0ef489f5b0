package setup

import (
	"context"
	"fmt"
	"time"

	"github.com/varlopecar/react-form/backend/internal/handler"
	"github.com/varlopecar/react-form/backend/internal/service"
	"github.com/varlopecar/react-form/backend/internal/storage/memory"
	"github.com/varlopecar/react-form/backend/internal/storage/pg"
	"github.com/varlopecar/react-form/shared/config"
	"github.com/varlopecar/react-form/shared/domain"
	"github.com/varlopecar/react-form/shared/jwt"
	"github.com/varlopecar/react-form/shared/logger"
	"github.com/varlopecar/react-form/shared/middleware"
	"github.com/varlopecar/react-form/shared/middleware/ratelimiter"
	"github.com/varlopecar/react-form/shared/validation"
)

const limiterSweepInterval = 10 * time.Minute

// Storage is a service.UserStorage that owns a connection.
type Storage interface {
	service.UserStorage
	Cleanup() error
}

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Config         *config.Config
	Storage        Storage
	Handler        *handler.Handler
	Jwt            jwt.JwtService
	AuthMiddleware *middleware.Auth
	LoginLimiter   *ratelimiter.KeyedLimiter
}

// SetupDependencies initializes all dependencies required for the application
// and makes sure the configured admin account exists.
func SetupDependencies(ctx context.Context, cfg *config.Config) (*Dependencies, error) {
	storage, err := newStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return WithStorage(ctx, cfg, storage)
}

// WithStorage wires the application around an already opened storage.
func WithStorage(ctx context.Context, cfg *config.Config, storage Storage) (*Dependencies, error) {
	jwtService := jwt.New(cfg.JwtKey(), cfg.JwtTTL())

	auth := service.NewAuth(storage, jwtService, validation.NewRegistrationSchema())
	users := service.NewUsers(storage)

	if err := auth.EnsureAdmin(ctx, domain.Credentials{Email: cfg.AdminEmail(), Password: cfg.AdminPassword()}); err != nil {
		storage.Cleanup()
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	loginLimiter := ratelimiter.PerMinute(cfg.Public.LoginPerMinute)
	loginLimiter.StartSweeper(limiterSweepInterval)

	return &Dependencies{
		Config:         cfg,
		Storage:        storage,
		Handler:        handler.New(auth, users, cfg),
		Jwt:            jwtService,
		AuthMiddleware: middleware.NewAuth(jwtService),
		LoginLimiter:   loginLimiter,
	}, nil
}

func newStorage(ctx context.Context, cfg *config.Config) (Storage, error) {
	switch cfg.Public.Storage {
	case "memory":
		logger.Log.Warn("using in-memory storage, data is lost on restart")
		return memory.New(), nil
	case "pg":
		return pg.New(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown storage %q", cfg.Public.Storage)
}

// Cleanup releases what SetupDependencies opened.
func (d *Dependencies) Cleanup() {
	d.LoginLimiter.Stop()
	if err := d.Storage.Cleanup(); err != nil {
		logger.Log.Error("failed to close storage", "error", err)
	}
}
