package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/shelfmark/library-catalog/internal/api/handler"
	"github.com/shelfmark/library-catalog/internal/api/middleware"
	"github.com/shelfmark/library-catalog/internal/api/view"
	"github.com/shelfmark/library-catalog/internal/core/service"
	"github.com/shelfmark/library-catalog/internal/infrastructure/config"
	mongodb "github.com/shelfmark/library-catalog/internal/infrastructure/db/mongo"
	redisdb "github.com/shelfmark/library-catalog/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true

	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, err
	}
	e.Renderer = renderer
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("catalog"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	bookRepo := mongodb.NewBookRepository(db)
	authorRepo := mongodb.NewAuthorRepository(db)
	sessions := redisdb.NewSessionStore(rdb, cfg.SessionTTL)

	authService := service.NewAuthService(userRepo, sessions, cfg.SessionSecret, cfg.SessionTTL, log)
	bookService := service.NewBookService(bookRepo, log)
	authorService := service.NewAuthorService(authorRepo, log)

	authHandler := handler.NewAuthHandler(authService, cfg.SessionTTL)
	bookHandler := handler.NewBookHandler(bookService, authorService)
	authorHandler := handler.NewAuthorHandler(authorService)

	// --- Public routes ---
	e.GET("/login", authHandler.ShowLogin)
	e.POST("/login", authHandler.Login)
	e.GET("/register", authHandler.ShowRegister)
	e.POST("/register", authHandler.Register)

	// --- Health probes and metrics (no auth required) ---
	e.GET("/health", handler.NewHealthHandler().Liveness)
	e.GET("/health/ready", handler.NewHealthDependenciesHandler(db, rdb).Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Authenticated routes ---
	authed := e.Group("", middleware.Auth(authService))
	authed.GET("/", handler.Home)
	authed.GET("/logout", authHandler.Logout)

	// Listing requires only a resolved principal; mutations additionally
	// require an admin or editor role, soft-failing back to the list view.
	canEditBooks := middleware.RequireMutate("/books")
	books := authed.Group("/books")
	books.GET("", bookHandler.List)
	books.GET("/add", bookHandler.ShowAdd, canEditBooks)
	books.POST("/add", bookHandler.Add, canEditBooks)
	books.GET("/edit/:id", bookHandler.ShowEdit, canEditBooks)
	books.POST("/edit/:id", bookHandler.Edit, canEditBooks)
	books.POST("/delete/:id", bookHandler.Delete, canEditBooks)

	canEditAuthors := middleware.RequireMutate("/authors")
	authors := authed.Group("/authors")
	authors.GET("", authorHandler.List)
	authors.GET("/add", authorHandler.ShowAdd, canEditAuthors)
	authors.POST("/add", authorHandler.Add, canEditAuthors)
	authors.GET("/edit/:id", authorHandler.ShowEdit, canEditAuthors)
	authors.POST("/edit/:id", authorHandler.Edit, canEditAuthors)
	authors.POST("/delete/:id", authorHandler.Delete, canEditAuthors)

	return e, nil
}
