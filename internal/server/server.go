// Package server contains the HTTP and WebSocket handlers of the Filmorate API.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	_ "filmorate/docs" // swagger docs
	"filmorate/internal/bootstrap"
	"filmorate/internal/config"
	"filmorate/internal/middleware"
	"filmorate/internal/models"
	"filmorate/internal/notifications"
	"filmorate/internal/repository"
	"filmorate/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	filmRepo     repository.FilmRepository
	userRepo     repository.UserRepository
	friendRepo   repository.FriendRepository
	likeRepo     repository.LikeRepository
	genreRepo    repository.GenreRepository
	mpaRepo      repository.MpaRepository
	directorRepo repository.DirectorRepository
	reviewRepo   repository.ReviewRepository
	eventRepo    repository.EventRepository

	notifier *notifications.Notifier
	feedHub  *notifications.FeedHub

	filmService           *service.FilmService
	userService           *service.UserService
	reviewService         *service.ReviewService
	directorService       *service.DirectorService
	lookupService         *service.LookupService
	feedService           *service.FeedService
	recommendationService *service.RecommendationService
}

// NewServer connects to the database and Redis and builds a Server.
func NewServer(cfg *config.Config) (*Server, error) {
	db, redisClient, err := bootstrap.InitRuntime(cfg, bootstrap.Options{SeedPreset: cfg.SeedPreset})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// redisClient may be nil, in which case rate limiting is skipped and the
// live feed only serves connections without receiving events.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("filmorate-api"),
		filmRepo:       repository.NewFilmRepository(db),
		userRepo:       repository.NewUserRepository(db),
		friendRepo:     repository.NewFriendRepository(db),
		likeRepo:       repository.NewLikeRepository(db),
		genreRepo:      repository.NewGenreRepository(db),
		mpaRepo:        repository.NewMpaRepository(db),
		directorRepo:   repository.NewDirectorRepository(db),
		reviewRepo:     repository.NewReviewRepository(db),
		eventRepo:      repository.NewEventRepository(db),
		feedHub:        notifications.NewFeedHub(),
	}
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
	}

	return server, nil
}

func (s *Server) feedSvc() *service.FeedService {
	if s.feedService == nil {
		var publisher service.EventPublisher
		if s.notifier != nil {
			publisher = s.notifier
		}
		s.feedService = service.NewFeedService(s.eventRepo, s.userRepo, publisher)
	}
	return s.feedService
}

func (s *Server) filmSvc() *service.FilmService {
	if s.filmService == nil {
		popular := 0
		if s.config != nil {
			popular = s.config.PopularDefaultCount
		}
		s.filmService = service.NewFilmService(service.FilmRepositories{
			Films:     s.filmRepo,
			Likes:     s.likeRepo,
			Users:     s.userRepo,
			Mpa:       s.mpaRepo,
			Genres:    s.genreRepo,
			Directors: s.directorRepo,
		}, s.feedSvc(), popular)
	}
	return s.filmService
}

func (s *Server) userSvc() *service.UserService {
	if s.userService == nil {
		s.userService = service.NewUserService(s.userRepo, s.friendRepo, s.feedSvc())
	}
	return s.userService
}

func (s *Server) reviewSvc() *service.ReviewService {
	if s.reviewService == nil {
		s.reviewService = service.NewReviewService(s.reviewRepo, s.userRepo, s.filmRepo, s.feedSvc())
	}
	return s.reviewService
}

func (s *Server) directorSvc() *service.DirectorService {
	if s.directorService == nil {
		s.directorService = service.NewDirectorService(s.directorRepo)
	}
	return s.directorService
}

func (s *Server) lookupSvc() *service.LookupService {
	if s.lookupService == nil {
		s.lookupService = service.NewLookupService(s.genreRepo, s.mpaRepo)
	}
	return s.lookupService
}

func (s *Server) recommendationSvc() *service.RecommendationService {
	if s.recommendationService == nil {
		s.recommendationService = service.NewRecommendationService(s.userRepo, s.likeRepo, s.filmRepo)
	}
	return s.recommendationService
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())

	app.Use(requestid.New(requestid.Config{
		Generator: func() string { return uuid.NewString() },
	}))

	app.Use(middleware.TracingMiddleware(middleware.TracingConfig{
		Next: func(c *fiber.Ctx) bool { return isProbe(c.Path()) },
	}))

	// Propagates request and trace ids into the request context for logging.
	app.Use(middleware.ContextMiddleware())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	app.Use(helmet.New())

	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://localhost:5173"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		MaxAge:       86400,
	}))

	perMinute := s.config.RateLimitPerMinute
	if perMinute <= 0 {
		perMinute = 120
	}
	app.Use(limiter.New(limiter.Config{
		Max:        perMinute,
		Expiration: time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || isProbe(c.Path())
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Error: "Too many requests, please try again later.",
			})
		},
	}))
}

func isProbe(path string) bool {
	return path == "/health/live" || path == "/health/ready" || path == "/metrics"
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	app.Get("/swagger/*", swagger.HandlerDefault)

	// Specific /films/<word> routes are registered before /films/:id.
	films := app.Group("/films")
	films.Get("/popular", s.GetPopularFilms)
	films.Get("/search", middleware.RateLimit(s.redis, 30, time.Minute, "search"), s.SearchFilms)
	films.Get("/common", s.GetCommonFilms)
	films.Get("/director/:directorId", s.GetDirectorFilms)
	films.Post("/", s.CreateFilm)
	films.Put("/", s.UpdateFilm)
	films.Get("/", s.GetFilms)
	films.Put("/:id/like/:userId", s.LikeFilm)
	films.Delete("/:id/like/:userId", s.UnlikeFilm)
	films.Get("/:id", s.GetFilm)
	films.Delete("/:id", s.DeleteFilm)

	users := app.Group("/users")
	users.Post("/", s.CreateUser)
	users.Put("/", s.UpdateUser)
	users.Get("/", s.GetUsers)
	users.Get("/:id/friends/common/:otherId", s.GetCommonFriends)
	users.Get("/:id/friends", s.GetFriends)
	users.Put("/:id/friends/:friendId", s.AddFriend)
	users.Delete("/:id/friends/:friendId", s.RemoveFriend)
	users.Get("/:id/feed/live", s.FeedUpgrade, s.LiveFeedHandler())
	users.Get("/:id/feed", s.GetFeed)
	users.Get("/:id/recommendations", s.GetRecommendations)
	users.Get("/:id", s.GetUser)
	users.Delete("/:id", s.DeleteUser)

	app.Get("/genres", s.GetGenres)
	app.Get("/genres/:id", s.GetGenre)
	app.Get("/mpa", s.GetMpaRatings)
	app.Get("/mpa/:id", s.GetMpa)

	directors := app.Group("/directors")
	directors.Get("/", s.GetDirectors)
	directors.Post("/", s.CreateDirector)
	directors.Put("/", s.UpdateDirector)
	directors.Get("/:id", s.GetDirector)
	directors.Delete("/:id", s.DeleteDirector)

	reviews := app.Group("/reviews")
	reviews.Post("/", middleware.RateLimit(s.redis, 10, time.Minute, "create_review"), s.CreateReview)
	reviews.Put("/", s.UpdateReview)
	reviews.Get("/", s.GetReviews)
	reviews.Put("/:id/like/:userId", s.LikeReview)
	reviews.Delete("/:id/like/:userId", s.UnlikeReview)
	reviews.Put("/:id/dislike/:userId", s.DislikeReview)
	reviews.Delete("/:id/dislike/:userId", s.UndislikeReview)
	reviews.Get("/:id", s.GetReview)
	reviews.Delete("/:id", s.DeleteReview)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests. Redis is optional, so only
// an unreachable database makes the service unready.
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "unavailable"
	if s.redis != nil {
		redisStatus = "healthy"
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	} else if redisStatus != "healthy" {
		overallStatus = "degraded"
	}

	return c.Status(status).JSON(fiber.Map{
		"status": overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start builds the Fiber app, wires the live feed to Redis and listens.
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Filmorate API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			var fe *fiber.Error
			if errors.As(err, &fe) {
				return c.Status(fe.Code).JSON(models.ErrorResponse{Error: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError, models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	if s.notifier != nil {
		if err := s.feedHub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
			middleware.Logger.Error("failed to start live feed wiring", "error", err)
		}
	}

	middleware.Logger.Info("server starting", "port", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", "error", err)
		}
	}

	if err := s.feedHub.Shutdown(ctx); err != nil {
		middleware.Logger.Error("error shutting down live feed hub", "error", err)
	}

	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			middleware.Logger.Error("error closing sql DB", "error", cerr)
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", "error", rerr)
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
