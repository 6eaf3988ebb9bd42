package gateway

import (
	"context"
	"database/sql"
	"fmt"

	"lingualink/backend-api/internal/middleware"
	"lingualink/backend-api/internal/services/account"
	accHandlers "lingualink/backend-api/internal/services/account/handlers"
	"lingualink/backend-api/internal/services/auth"
	authHandlers "lingualink/backend-api/internal/services/auth/handlers"
	"lingualink/backend-api/internal/services/social"
	socialHandlers "lingualink/backend-api/internal/services/social/handlers"
	"lingualink/backend-api/pkg/config"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// APIGateway handles the central routing and global middleware for the modular monolith.
type APIGateway struct {
	router *fiber.App
	logger *zap.Logger
	cfg    config.Config
	db     *sql.DB
}

// NewAPIGateway creates a new instance of APIGateway with a configured Fiber router.
// The gateway takes the *sql.DB rather than the query interface because the social
// service opens transactions.
func NewAPIGateway(cfg config.Config, logger *zap.Logger, db *sql.DB) *APIGateway {
	app := fiber.New(fiber.Config{
		AppName: "LinguaLink API Gateway",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code >= fiber.StatusInternalServerError {
				logger.Error("gateway error", zap.Error(err))
			}
			c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	gw := &APIGateway{
		router: app,
		logger: logger,
		cfg:    cfg,
		db:     db,
	}

	gw.applyMiddleware()
	gw.setupHealthCheck()

	if db != nil {
		authSvc := auth.NewAuthService(cfg, logger, db)
		accSvc := account.NewAccountService(cfg, logger, db)
		socialSvc := social.NewSocialService(cfg, logger, db)

		gw.registerRoutes(authSvc, accSvc, socialSvc)
	}

	return gw
}

func (g *APIGateway) registerRoutes(
	authSvc auth.Service,
	accSvc account.Service,
	socialSvc social.Service,
) {
	authMiddleware := middleware.AuthMiddleware(authSvc, g.logger)

	// Auth routes
	authH := authHandlers.NewAuthHandlers(authSvc, g.cfg, g.logger)
	accountH := accHandlers.NewAccountHandlers(accSvc, g.cfg, g.logger)
	authGroup := g.MountGroup("/api/auth")
	authGroup.Post("/signup", authH.Signup)
	authGroup.Post("/login", authH.Login)
	authGroup.Post("/refresh", authH.Refresh)
	authGroup.Post("/logout", authH.Logout)
	authGroup.Get("/me", authMiddleware, accountH.Me)
	authGroup.Post("/onboarding", authMiddleware, accountH.Onboarding)
	authGroup.Put("/profile", authMiddleware, accountH.UpdateProfile)

	// User routes: recommendations, friends, requests, favorites
	socialH := socialHandlers.NewSocialHandlers(socialSvc, g.cfg, g.logger)
	usersGroup := g.MountGroup("/api/users", authMiddleware)
	usersGroup.Get("/", socialH.GetRecommendedUsers)
	usersGroup.Get("/friends", socialH.GetFriends)
	usersGroup.Post("/friend-request/:id", socialH.SendFriendRequest)
	usersGroup.Put("/friend-request/:id/accept", socialH.AcceptFriendRequest)
	usersGroup.Get("/friend-requests", socialH.GetFriendRequests)
	usersGroup.Get("/outgoing-friend-requests", socialH.GetOutgoingFriendRequests)
	usersGroup.Post("/friends/:id/favorite", socialH.AddFavorite)
	usersGroup.Delete("/friends/:id/favorite", socialH.RemoveFavorite)
}

// applyMiddleware sets up global middleware for the gateway.
func (g *APIGateway) applyMiddleware() {
	g.router.Use(cors.New(cors.Config{
		AllowOrigins: g.cfg.Server.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	g.router.Use(fiberLogger.New())
	g.router.Use(recover.New())
	g.router.Use(limiter.New(limiter.Config{
		Max:        g.cfg.Server.RateLimitMax,
		Expiration: g.cfg.Server.RateLimitDuration,
	}))
}

// setupHealthCheck adds a basic health check endpoint to the gateway.
func (g *APIGateway) setupHealthCheck() {
	g.router.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status": "ok",
		})
	})
}

// MountGroup allows services to mount their own route groups on the gateway.
func (g *APIGateway) MountGroup(prefix string, handlers ...fiber.Handler) fiber.Router {
	return g.router.Group(prefix, handlers...)
}

// Router returns the underlying Fiber app (useful for testing).
func (g *APIGateway) Router() *fiber.App {
	return g.router
}

// Start begins listening on the configured host and port.
func (g *APIGateway) Start() error {
	addr := fmt.Sprintf("%s:%d", g.cfg.Server.Host, g.cfg.Server.Port)
	g.logger.Info("Starting API Gateway", zap.String("address", addr))
	return g.router.Listen(addr)
}

// Shutdown gracefully stops the gateway.
func (g *APIGateway) Shutdown(ctx context.Context) error {
	g.logger.Info("Shutting down API Gateway...")
	return g.router.ShutdownWithContext(ctx)
}
