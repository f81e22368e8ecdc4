package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"

	"github.com/gamecollect/backend/internal/handlers"
	"github.com/gamecollect/backend/internal/jwt"
	"github.com/gamecollect/backend/internal/logger"
	"github.com/gamecollect/backend/internal/middlewares"
	"github.com/gamecollect/backend/internal/models"
	"github.com/gamecollect/backend/internal/repositories"
	"github.com/gamecollect/backend/internal/services"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title gamecollect API
// @version 1.0.0
// @description Backend for tracking video-game collections, reviews and user accounts
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	appHost, appPort, logLevel,
		databaseDSN, migrate,
		redisAddr, kafkaAddr, eventsTopic,
		jwtSecretKey, jwtExpSecond,
		err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(),
		appHost, appPort, logLevel,
		databaseDSN, migrate,
		redisAddr, kafkaAddr, eventsTopic,
		jwtSecretKey, jwtExpSecond,
	); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Starting service version %s, commit %s, build %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// parseConfig loads environment variables from a file and returns the
// application, storage, messaging, logging, and JWT configuration.
// DATABASE_DSN and JWT_SECRET_KEY are required. REDIS_ADDR and
// KAFKA_ADDR are optional; leaving either empty disables the game
// cache or event publishing.
func parseConfig(path string) (
	appHost, appPort, logLevel string,
	databaseDSN string, migrate bool,
	redisAddr, kafkaAddr, eventsTopic string,
	jwtSecretKey string, jwtExpSecond int,
	err error,
) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}

	// Application config
	appHost = getEnv("APP_HOST", "localhost")
	appPort = getEnv("APP_PORT", "8080")
	logLevel = getEnv("APP_LOG_LEVEL", "info")
	migrate = getEnv("APP_MIGRATE", "true") == "true"

	// Storage config
	databaseDSN = getEnv("DATABASE_DSN", "")
	if databaseDSN == "" {
		err = errors.New("DATABASE_DSN is required")
		return
	}
	redisAddr = getEnv("REDIS_ADDR", "")

	// Messaging config
	kafkaAddr = getEnv("KAFKA_ADDR", "")
	eventsTopic = getEnv("EVENTS_TOPIC", "gamecollect.events")

	// JWT config
	jwtSecretKey = getEnv("JWT_SECRET_KEY", "")
	if jwtSecretKey == "" {
		err = errors.New("JWT_SECRET_KEY is required")
		return
	}
	if jwtExpSecond, err = strconv.Atoi(getEnv("JWT_EXP_SECOND", "604800")); err != nil {
		return
	}

	return
}

// run initializes the logger, database, cache, event writer, and HTTP
// server. It sets up routes, applies middleware, and handles graceful
// shutdown.
func run(ctx context.Context,
	appHost, appPort, logLevel string,
	databaseDSN string, migrate bool,
	redisAddr, kafkaAddr, eventsTopic string,
	jwtSecretKey string, jwtExpSecond int,
) error {
	if err := logger.Initialize(logLevel); err != nil {
		fmt.Println("failed to initialize logger:", err)
		return err
	}
	defer logger.Log.Sync()
	logger.Log.Infof("Logger initialized with level %s", logLevel)

	// Connect to PostgreSQL
	db, err := sqlx.ConnectContext(ctx, "pgx", databaseDSN)
	if err != nil {
		logger.Log.Errorw("PostgreSQL connection error", "error", err)
		return err
	}
	defer db.Close()
	if err := db.PingContext(ctx); err != nil {
		logger.Log.Errorw("PostgreSQL ping failed", "error", err)
		return err
	}

	if migrate {
		if err := repositories.Migrate(ctx, db); err != nil {
			logger.Log.Errorw("migration failed", "error", err)
			return err
		}
		logger.Log.Info("Database schema ensured")
	}

	// Optional game projection cache
	var gameCache services.GameCache
	if redisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Log.Errorw("Redis connection error", "error", err)
			return err
		}
		defer rdb.Close()
		gameCache = repositories.NewGameCacheRepository(rdb, 5*time.Minute)
		logger.Log.Infof("Game cache enabled at %s", redisAddr)
	}

	// Optional activity event writer
	var eventWriter services.EventWriter
	if kafkaAddr != "" {
		kw := &kafka.Writer{
			Addr:     kafka.TCP(kafkaAddr),
			Topic:    eventsTopic,
			Balancer: &kafka.LeastBytes{},
		}
		defer kw.Close()
		eventWriter = kw
		logger.Log.Infof("Event publishing enabled to %s topic %s", kafkaAddr, eventsTopic)
	}

	// Identity tokens
	tokener := jwt.New(
		jwt.WithSecretKey(jwtSecretKey),
		jwt.WithExpiration(time.Duration(jwtExpSecond)*time.Second),
	)

	// Repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	gameReadRepo := repositories.NewGameReadRepository(db)
	gameWriteRepo := repositories.NewGameWriteRepository(db)
	reviewReadRepo := repositories.NewReviewReadRepository(db)
	reviewWriteRepo := repositories.NewReviewWriteRepository(db)
	userGameReadRepo := repositories.NewUserGameReadRepository(db)
	userGameWriteRepo := repositories.NewUserGameWriteRepository(db)

	// Services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokener, eventWriter)
	gamesService := services.NewGamesService(gameReadRepo, gameWriteRepo, reviewReadRepo, userGameReadRepo, gameCache, eventWriter)
	reviewsService := services.NewReviewsService(reviewReadRepo, reviewWriteRepo, gameReadRepo, gameCache, eventWriter)
	collectionsService := services.NewCollectionsService(userGameReadRepo, userGameWriteRepo, gameReadRepo, gameCache, eventWriter)
	usersService := services.NewUsersService(userReadRepo, userWriteRepo, eventWriter)

	// Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware(logger.Log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	// Public routes
	r.Post("/api/auth/register", handlers.NewRegisterHandler(authService))
	r.Post("/api/auth/login", handlers.NewLoginHandler(authService))

	// Protected routes
	authMiddleware := middlewares.AuthMiddleware(tokener)
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware)

		r.Get("/api/games", handlers.NewListGamesHandler(gamesService))
		r.Get("/api/games/{id}", handlers.NewGetGameHandler(gamesService))
		r.Group(func(r chi.Router) {
			r.Use(middlewares.RequireRole(models.RoleAdmin))
			r.Post("/api/games", handlers.NewCreateGameHandler(gamesService))
			r.Put("/api/games/{id}", handlers.NewUpdateGameHandler(gamesService))
			r.Delete("/api/games/{id}", handlers.NewDeleteGameHandler(gamesService))
		})

		r.Get("/api/reviews", handlers.NewListReviewsHandler(reviewsService))
		r.Post("/api/reviews", handlers.NewCreateReviewHandler(reviewsService))
		r.Get("/api/reviews/{id}", handlers.NewGetReviewHandler(reviewsService))
		r.Put("/api/reviews/{id}", handlers.NewUpdateReviewHandler(reviewsService))
		r.Delete("/api/reviews/{id}", handlers.NewDeleteReviewHandler(reviewsService))

		r.Get("/api/usergames", handlers.NewListUserGamesHandler(collectionsService))
		r.Post("/api/usergames", handlers.NewAddUserGameHandler(collectionsService))
		r.Delete("/api/usergames/{gameId}", handlers.NewRemoveUserGameHandler(collectionsService))

		r.Get("/api/users", handlers.NewListUsersHandler(usersService))
		r.Get("/api/users/{id}", handlers.NewGetUserHandler(usersService))
		r.Put("/api/users/{id}", handlers.NewUpdateUserHandler(usersService))
		r.Delete("/api/users/{id}", handlers.NewDeleteUserHandler(usersService))
	})

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", appHost, appPort)),
	))

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", appHost, appPort),
		Handler: r,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s:%s", appHost, appPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
