package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	_ "github.com/rafabene/avantpro-blog/docs"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	httphandlers "github.com/rafabene/avantpro-blog/internal/handlers/http"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/config"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/i18n"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/logging"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/oauth"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/persistence/postgres"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/security"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/storage"
	"github.com/rafabene/avantpro-blog/internal/services"
)

//	@title						Avantpro Blog API
//	@version					1.0
//	@description				Blog backend with password and Google login, posts with soft delete and cover images.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
func main() {
	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	// Inicializar logger
	logger := logging.NewSlogLogger(cfg.Logging.Level)
	logger.Info("starting avantpro blog",
		"env", cfg.Env,
		"version", "dev",
	)

	ctx := context.Background()

	// Conectar ao banco de dados
	db, err := postgres.NewDatabaseConnection(&cfg.Database, cfg.Env, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		log.Fatal(err)
	}
	if err := postgres.Migrate(db); err != nil {
		logger.Error("failed to migrate database", "error", err)
		log.Fatal(err)
	}

	// Inicializar i18n
	i18nService, err := newI18n(cfg.I18n, logger)
	if err != nil {
		logger.Error("failed to initialize i18n", "error", err)
		log.Fatal(err)
	}
	logger.Info("i18n initialized",
		"default_language", i18nService.GetDefaultLanguage(),
		"supported_languages", i18nService.GetSupportedLanguages(),
	)

	denylist, err := newDenylist(ctx, cfg.Redis, logger)
	if err != nil {
		logger.Error("failed to connect to redis", "error", err)
		log.Fatal(err)
	}

	files, storageRoot, err := newFileStore(ctx, cfg.Storage)
	if err != nil {
		logger.Error("failed to initialize file store", "error", err)
		log.Fatal(err)
	}
	logger.Info("file store initialized", "driver", cfg.Storage.Driver)

	// Inicializar repositories
	userRepo := postgres.NewUserRepository(db)
	postRepo := postgres.NewPostRepository(db)
	uow := postgres.NewUnitOfWork(db)

	// Inicializar services
	authService := services.NewAuthService(
		userRepo,
		uow,
		security.NewBcryptHasher(0),
		security.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessExpiry, nil),
		denylist,
		oauth.NewGoogleProvider(cfg.OAuth.GoogleUserInfoURL, &http.Client{Timeout: 10 * time.Second}),
		logger.With("service", "auth"),
	)
	postService := services.NewPostService(postRepo, files, logger.With("service", "posts"), nil)

	// Setup Gin
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := httphandlers.NewRouter(httphandlers.RouterConfig{
		Env:            cfg.Env,
		BaseURL:        cfg.Server.BaseURL,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		StorageRoot:    storageRoot,
		I18n:           i18nService,
		Logger:         logger,
		AuthService:    authService,
		PostService:    postService,
	})

	// HTTP Server
	srv := &http.Server{
		Addr:              cfg.Server.Host + ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	go func() {
		logger.Info("server starting",
			"host", cfg.Server.Host,
			"port", cfg.Server.Port,
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			log.Fatal(err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}

// newI18n usa os locales em disco quando o diretório existe, senão os embutidos
func newI18n(cfg config.I18nConfig, logger ports.Logger) (*i18n.Service, error) {
	if info, err := os.Stat(cfg.LocalesDir); err == nil && info.IsDir() {
		return i18n.NewService(cfg.LocalesDir, cfg.DefaultLanguage)
	}
	logger.Info("locales dir not found, using embedded locales", "dir", cfg.LocalesDir)
	return i18n.NewEmbeddedService(cfg.DefaultLanguage)
}

// newDenylist usa Redis quando REDIS_URL está configurada
func newDenylist(ctx context.Context, cfg config.RedisConfig, logger ports.Logger) (ports.TokenDenylist, error) {
	if cfg.URL == "" {
		logger.Warn("REDIS_URL not set, using in-memory token denylist")
		return security.NewMemoryDenylist(nil), nil
	}

	rdb, err := security.NewRedisClient(ctx, cfg.URL)
	if err != nil {
		return nil, err
	}
	return security.NewRedisDenylist(rdb), nil
}

// newFileStore devolve o store configurado e, para o driver local, o diretório a servir em /storage
func newFileStore(ctx context.Context, cfg config.StorageConfig) (ports.FileStore, string, error) {
	switch cfg.Driver {
	case "minio":
		store, err := storage.NewMinioStore(ctx, storage.MinioConfig{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
			PublicURL: cfg.PublicURL,
		})
		return store, "", err
	default:
		store, err := storage.NewLocalStore(cfg.LocalRoot, cfg.PublicURL)
		if err != nil {
			return nil, "", err
		}
		return store, store.Root(), nil
	}
}
