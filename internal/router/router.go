package router

import (
	"log"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pulsefeed/backend/internal/handlers"
	"github.com/pulsefeed/backend/internal/middleware"
	"github.com/pulsefeed/backend/internal/models"
	"github.com/pulsefeed/backend/internal/repositories"
	"github.com/pulsefeed/backend/pkg/push"
	"github.com/pulsefeed/backend/pkg/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// Deps carries the external dependencies the routes need. Notifier and
// Uploader may be nil when the deployment has no FCM or object storage
// configured; the handlers degrade gracefully.
type Deps struct {
	Postgres      *gorm.DB
	MongoDatabase *mongo.Database
	JWTSecret     string
	Notifier      push.Notifier
	Uploader      storage.Uploader
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, deps Deps) {
	// AutoMigrate PostgreSQL models
	err := deps.Postgres.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
		&models.RefreshToken{},
		&models.Author{},
		&models.Book{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(deps.Postgres)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.Postgres)
	tokenRepo := repositories.NewPostgresRefreshTokenRepository(deps.Postgres)
	bookRepo := repositories.NewPostgresBookRepository(deps.Postgres)
	postRepo := repositories.NewMongoPostRepository(deps.MongoDatabase)

	// --- Unprotected routes ---
	authGroup := e.Group("/api/v1/auth")
	authHandler := handlers.NewAuthHandler(userRepo, tokenRepo, deps.JWTSecret)
	authHandler.RegisterAuthRoutes(authGroup)
	log.Println("Auth routes configured.")

	public := e.Group("/api/v1")
	postHandler := handlers.NewPostHandler(postRepo, userRepo, likeRepo, commentRepo)
	postHandler.RegisterPublicPostRoutes(public)

	bookHandler := handlers.NewBookHandler(bookRepo)
	booksPublic := e.Group("/api")
	bookHandler.RegisterPublicBookRoutes(booksPublic)
	log.Println("Public routes configured.")

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))
	log.Println("JWT authentication middleware applied to /api/v1 group.")

	userHandler := handlers.NewUserHandler(userRepo, followRepo)
	userHandler.RegisterUserRoutes(api)
	log.Println("User lookup routes configured.")

	accounts := api.Group("/accounts")
	userHandler.RegisterAccountRoutes(accounts)
	log.Println("Account routes configured.")

	followHandler := handlers.NewFollowHandler(followRepo, userRepo, notificationRepo, deps.Notifier)
	followHandler.RegisterFollowRoutes(accounts)
	log.Println("Follow routes configured.")

	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	feedHandler := handlers.NewFeedHandler(postRepo, userRepo, followRepo)
	feedHandler.RegisterFeedRoutes(api)
	log.Println("Feed routes configured.")

	likeHandler := handlers.NewLikeHandler(likeRepo, postRepo, userRepo, notificationRepo, deps.Notifier)
	likeHandler.RegisterLikeRoutes(api)
	log.Println("Like routes configured.")

	commentHandler := handlers.NewCommentHandler(commentRepo, postRepo, userRepo, notificationRepo, deps.Notifier)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Println("Notification routes configured.")

	uploadHandler := handlers.NewUploadHandler(deps.Uploader)
	uploadHandler.RegisterUploadRoutes(api)
	log.Println("Upload routes configured.")

	booksAPI := e.Group("/api")
	booksAPI.Use(middleware.JWTAuthMiddleware(deps.JWTSecret))
	bookHandler.RegisterBookRoutes(booksAPI)
	log.Println("Library routes configured.")

	log.Println("All routes configured.")
}
