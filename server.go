package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"tenantnotes/config"
	"tenantnotes/handler"
	"tenantnotes/middleware"
	"tenantnotes/model"
	"tenantnotes/repository"
	"tenantnotes/services"
	"tenantnotes/usecase"
	"tenantnotes/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// App holds everything the HTTP layer needs. It is built once at startup.
type App struct {
	Config  config.Config
	Store   *repository.Store
	Gate    *services.Gate
	Limiter *middleware.IPRateLimiter

	NotesService  *usecase.NotesService
	TenantService *usecase.TenantService
	AuthService   *usecase.AuthService

	closers []func()
}

// newApp seeds a fresh store and connects the optional Redis revocation
// list and NATS publisher.
func newApp(ctx context.Context, cfg config.Config) (*App, error) {
	app := &App{Config: cfg, Store: repository.NewStore()}

	hash, err := services.HashPassword(cfg.SeedPassword)
	if err != nil {
		return nil, fmt.Errorf("hash seed password: %w", err)
	}
	if err := repository.SeedDefaults(ctx, app.Store, hash); err != nil {
		return nil, err
	}

	tokens, err := services.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, err
	}

	var revoker services.TokenRevoker
	if cfg.RedisURL != "" {
		blacklist, err := services.NewTokenBlacklist(ctx, cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		app.closers = append(app.closers, func() { _ = blacklist.Close() })
		revoker = blacklist
		zap.L().Info("using redis token blacklist")
	} else {
		revoker = services.NewMemoryTokenBlacklist(time.Now)
	}

	var publisher services.EventPublisher = services.NoopPublisher{}
	if cfg.NATSURL != "" {
		nats, err := services.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			app.Close()
			return nil, err
		}
		app.closers = append(app.closers, nats.Close)
		publisher = nats
		zap.L().Info("publishing events to nats", zap.String("url", cfg.NATSURL))
	}

	app.Gate = services.NewGate(tokens, revoker)
	app.Limiter = middleware.NewIPRateLimiter(cfg.LoginRateLimitRPM, cfg.LoginRateBurst)
	app.NotesService = usecase.NewNotesService(repository.GetNotesRepo(app.Store), publisher)
	app.TenantService = usecase.NewTenantService(repository.GetTenantsRepo(app.Store), publisher)
	app.AuthService, err = usecase.NewAuthService(repository.GetUsersRepo(app.Store), tokens, revoker)
	if err != nil {
		app.Close()
		return nil, err
	}
	return app, nil
}

// Close releases external connections in reverse order of opening.
func (a *App) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
	a.closers = nil
}

func setupRouter(app *App) *gin.Engine {
	utils.InitValidator()
	router := gin.New()

	router.Use(middleware.RequestTracingMiddleware())
	router.Use(middleware.EnhancedRecoveryMiddleware())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORSMiddleware(app.Config.CORSAllowedOrigins))
	router.Use(middleware.RequestSizeLimiter(app.Config.MaxBodyBytes))

	router.GET("/health", handler.HealthHandler)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRequired := middleware.AuthMiddleware(app.Gate)

	auth := router.Group("/auth")
	{
		auth.POST("/login", middleware.RateLimitMiddleware(app.Limiter), func(c *gin.Context) {
			handler.LoginHandler(c, app.AuthService)
		})
		auth.POST("/logout", authRequired, func(c *gin.Context) {
			handler.LogoutHandler(c, app.AuthService)
		})
		auth.GET("/me", authRequired, middleware.NoStoreMiddleware(), func(c *gin.Context) {
			handler.ProfileHandler(c, app.AuthService)
		})
	}

	protected := router.Group("/")
	protected.Use(authRequired, middleware.NoStoreMiddleware())
	{
		notes := protected.Group("/notes")
		{
			notes.GET("", func(c *gin.Context) {
				handler.ListNotesHandler(c, app.NotesService)
			})
			notes.POST("", func(c *gin.Context) {
				handler.CreateNoteHandler(c, app.NotesService)
			})

			note := notes.Group("/:id", middleware.ValidateNoteID())
			note.GET("", func(c *gin.Context) {
				handler.GetNoteHandler(c, app.NotesService)
			})
			note.PUT("", func(c *gin.Context) {
				handler.UpdateNoteHandler(c, app.NotesService)
			})
			note.DELETE("", func(c *gin.Context) {
				handler.DeleteNoteHandler(c, app.NotesService)
			})
		}

		protected.POST("/tenants/:slug/upgrade", middleware.RequireRole(model.RoleAdmin), func(c *gin.Context) {
			handler.UpgradeTenantHandler(c, app.TenantService)
		})
	}

	return router
}

// runServer serves until ctx is cancelled, then drains in-flight requests
// for at most cfg.ShutdownTimeout.
func runServer(ctx context.Context, cfg config.Config, router http.Handler) error {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zap.L().Info("server starting", zap.String("addr", srv.Addr), zap.String("env", cfg.Environment))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	zap.L().Info("shutdown signal received, draining requests")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	zap.L().Info("server shutdown complete")
	return nil
}
