package api

import (
	"errors"

	"subtrack/docs"
	"subtrack/internal/api/handlers"
	"subtrack/pkg/auth"
	"subtrack/pkg/config"
	"subtrack/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Auth           *handlers.AuthHandler
	Subscription   *handlers.SubscriptionHandler
	Insight        *handlers.InsightHandler
	Recommendation *handlers.RecommendationHandler
	Health         *handlers.HealthHandler
}

func SetupRouter(
	h Handlers,
	serverCfg *config.ServerConfig,
	jwtManager *auth.JWTManager,
	revocations middleware.RevocationChecker,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
				message = e.Message
			} else {
				appLogger.Error("Unhandled error", zap.String("path", c.Path()), zap.Error(err))
			}
			return c.Status(code).JSON(fiber.Map{
				"error": message,
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the swagger spec
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", h.Health.Health)

	// Auth routes (public)
	authRoutes := app.Group("/user/auth")
	authRoutes.Post("/register", h.Auth.Register)
	authRoutes.Post("/login", h.Auth.Login)
	authRoutes.Post("/refresh", h.Auth.RefreshToken)

	// Protected routes
	protected := app.Group("/api/v1", middleware.AuthMiddleware(jwtManager, revocations, appLogger))
	protected.Post("/auth/logout", h.Auth.Logout)
	protected.Get("/me", h.Auth.Me)

	subs := protected.Group("/subscriptions")
	subs.Get("/stats", h.Subscription.GetStats)
	subs.Get("/calendar", h.Subscription.GetCalendar)
	subs.Post("", h.Subscription.CreateSubscription)
	subs.Get("", h.Subscription.ListSubscriptions)
	subs.Get("/:id", h.Subscription.GetSubscription)
	subs.Put("/:id", h.Subscription.UpdateSubscription)
	subs.Delete("/:id", h.Subscription.DeleteSubscription)

	protected.Post("/insights/analyze", h.Insight.Analyze)

	recs := protected.Group("/recommendations")
	recs.Post("", h.Recommendation.Recommend)
	recs.Post("/interactions", h.Recommendation.RecordInteraction)
	recs.Get("/interactions", h.Recommendation.ListInteractions)

	return app
}
