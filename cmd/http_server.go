package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/prasetya/wiki-management/internal"
	"github.com/prasetya/wiki-management/internal/auth"
	authpg "github.com/prasetya/wiki-management/internal/auth/postgres"
	"github.com/prasetya/wiki-management/internal/content"
	contentpg "github.com/prasetya/wiki-management/internal/content/postgres"
	"github.com/prasetya/wiki-management/internal/export"
	"github.com/prasetya/wiki-management/internal/permission"
	permissionpg "github.com/prasetya/wiki-management/internal/permission/postgres"
	roledomain "github.com/prasetya/wiki-management/internal/role"
	rolepg "github.com/prasetya/wiki-management/internal/role/postgres"
	"github.com/prasetya/wiki-management/internal/settings"
	settingspg "github.com/prasetya/wiki-management/internal/settings/postgres"
	"github.com/prasetya/wiki-management/internal/transport/rest"
	"github.com/prasetya/wiki-management/internal/user"
	userpg "github.com/prasetya/wiki-management/internal/user/postgres"
	"github.com/prasetya/wiki-management/pkg/logger"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

type Dependencies struct {
	Config   *internal.Config
	DB       *sqlx.DB
	Router   *chi.Mux
	Handlers rest.Handlers
	Logger   *slog.Logger
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(deps.Router, deps.DB.DB, deps.Handlers, deps.Logger)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:         addr,
		Handler:      deps.Router,
		ReadTimeout:  deps.Config.Server.ReadTimeout,
		WriteTimeout: deps.Config.Server.WriteTimeout,
		IdleTimeout:  deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
		if err := deps.DB.Close(); err != nil {
			slog.Error("Database close error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(os.Getenv("APP_ENV"))
	lg := logger.LoggerWrapper()

	db, err := initDB(config.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	gormDB, err := gorm.Open(gormpostgres.New(gormpostgres.Config{Conn: db.DB}), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open gorm over pgx connection: %w", err)
	}

	handlers, err := buildHandlers(config, gormDB, lg)
	if err != nil {
		return nil, err
	}

	return &Dependencies{
		Config:   config,
		Logger:   lg,
		DB:       db,
		Router:   chi.NewRouter(),
		Handlers: handlers,
	}, nil
}

// buildHandlers wires repositories, the resolver and every domain
// service into HTTP handlers.
func buildHandlers(config *internal.Config, gormDB *gorm.DB, lg *slog.Logger) (rest.Handlers, error) {
	permissionRepo := permissionpg.NewPermissionRepository(gormDB)
	contentRepo := contentpg.NewContentRepository(gormDB)
	authRepo := authpg.NewAuthRepository(gormDB)
	roleRepo := rolepg.NewRoleRepository(gormDB)
	settingsRepo := settingspg.NewSettingsRepository(gormDB)
	userRepo := userpg.NewUserRepository(gormDB)

	resolver := permission.NewResolver(permissionRepo, lg)

	tokenGen := auth.NewJWTTokenGenerator(
		config.Security.AccessTokenSecret,
		config.Security.RefreshTokenSecret,
		config.Security.AccessTokenDuration,
		config.Security.RefreshTokenDuration,
	)

	authService := auth.NewService(authRepo, tokenGen, lg)
	permissionService := permission.NewService(permissionRepo, resolver, lg)
	contentService := content.NewService(contentRepo, resolver, lg)
	settingsService := settings.NewService(settingsRepo, lg)
	roleService := roledomain.NewService(roleRepo, settingsService, lg)
	userService := user.NewService(userRepo, roleService, lg)
	exportService := export.NewService(contentRepo, lg)

	return rest.Handlers{
		Auth:       auth.NewHandler(authService),
		Content:    content.NewHandler(contentService),
		Permission: permission.NewHandler(permissionService),
		Role:       roledomain.NewHandler(roleService),
		Settings:   settings.NewHandler(settingsService),
		User:       user.NewHandler(userService),
		Export:     export.NewHandler(exportService),
	}, nil
}

// initDB initializes the database connection
func initDB(cfg internal.DatabaseConfig) (*sqlx.DB, error) {
	const driver = "pgx"

	dbConn, err := sqlx.Connect(driver, cfg.Source)
	if err != nil {
		return nil, fmt.Errorf("failed to open db connection: %w", err)
	}

	dbConn.SetMaxIdleConns(cfg.MaxIdleConns)
	dbConn.SetMaxOpenConns(cfg.MaxOpenConns)
	dbConn.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	dbConn.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if err := dbConn.Ping(); err != nil {
		_ = dbConn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return dbConn, nil
}
