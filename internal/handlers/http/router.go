package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/rafabene/avantpro-blog/internal/domain/errors"
	"github.com/rafabene/avantpro-blog/internal/domain/ports"
	"github.com/rafabene/avantpro-blog/internal/handlers/dto"
	"github.com/rafabene/avantpro-blog/internal/handlers/middleware"
	"github.com/rafabene/avantpro-blog/internal/infrastructure/i18n"
	"github.com/rafabene/avantpro-blog/internal/services"
)

// RouterConfig reúne as dependências da camada HTTP
type RouterConfig struct {
	Env            string
	BaseURL        string
	AllowedOrigins []string
	// StorageRoot é servido em /storage quando o file store é local
	StorageRoot string

	I18n        *i18n.Service
	Logger      ports.Logger
	AuthService *services.AuthService
	PostService *services.PostService
}

// NewRouter monta o engine gin com middlewares e rotas
func NewRouter(cfg RouterConfig) *gin.Engine {
	dto.RegisterFieldNames()

	router := gin.New()
	router.HandleMethodNotAllowed = true

	router.Use(middleware.RequestLogger(cfg.Logger))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		cfg.Logger.Error("panic recovered", "path", c.Request.URL.Path, "panic", recovered)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.Failure(c, "error.internal"))
	}))

	// Middleware global para adicionar base URL ao contexto
	router.Use(func(c *gin.Context) {
		c.Set("base_url", cfg.BaseURL)
		c.Next()
	})

	router.Use(middleware.NewI18nMiddleware(cfg.I18n).DetectLanguage())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.NoRoute(func(c *gin.Context) {
		respondProblem(c, http.StatusNotFound, errors.ProblemTypeNotFound, "error.not_found.title", "error.not_found.detail")
	})
	router.NoMethod(func(c *gin.Context) {
		respondProblem(c, http.StatusMethodNotAllowed, errors.ProblemTypeMethodNotAllowed, "error.method_not_allowed.title", "error.method_not_allowed.detail")
	})

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"env":    cfg.Env,
		})
	})

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if cfg.StorageRoot != "" {
		router.Group("/storage", middleware.StoredFiles()).Static("/", cfg.StorageRoot)
	}

	authHandler := NewAuthHandler(cfg.AuthService, cfg.Logger)
	postHandler := NewPostHandler(cfg.PostService, cfg.Logger)
	requireAuth := middleware.RequireAuth(cfg.AuthService)

	// API routes
	v1 := router.Group("/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.POST("/google", authHandler.Google)
			auth.POST("/logout", requireAuth, authHandler.Logout)
			auth.GET("/me", requireAuth, authHandler.Me)
		}

		posts := v1.Group("/posts", requireAuth)
		{
			posts.GET("", postHandler.ListPosts)
			posts.POST("", postHandler.CreatePost)
			posts.GET("/:id", postHandler.GetPost)
			posts.PUT("/:id", postHandler.UpdatePost)
			posts.DELETE("/:id", postHandler.DeletePost)
			posts.PATCH("/:id/restore", postHandler.RestorePost)
		}
	}

	return router
}
