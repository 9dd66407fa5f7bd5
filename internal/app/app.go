package app

import (
	"net/http"

	"oemlink-backend/internal/auth"
	"oemlink-backend/internal/buyers"
	"oemlink-backend/internal/config"
	"oemlink-backend/internal/database"
	"oemlink-backend/internal/health"
	"oemlink-backend/internal/manufacturers"
	"oemlink-backend/internal/matching"
	"oemlink-backend/internal/middleware"
	"oemlink-backend/internal/requests"
	"oemlink-backend/internal/reviews"
	"oemlink-backend/internal/subscriptions"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// gormPinger adapts *gorm.DB to the health check interface.
type gormPinger struct{ db *gorm.DB }

func (g *gormPinger) Ping() error {
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all global middleware and route registration.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	// CORS (before session)
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))

	// Stripe webhook mounted early, before session and any body handling.
	// DB is set after database init below; handler reads raw body + stripe-signature header.
	stripeWebhook := &subscriptions.WebhookHandler{WebhookSecret: cfg.StripeWebhookSecret}
	app.Post("/api/v1/stripe/webhook", func(c *fiber.Ctx) error {
		return stripeWebhook.HandleWebhook(c)
	})

	// Session (Redis); need the Redis client for health marker too
	sessionCfg := middleware.SessionConfig{
		Secret:            cfg.SessionSecret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.Env == "production",
	}
	sessionHandler, rdb, err := middleware.Session(sessionCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	app.Use(sessionHandler)

	// Health request marker (after session)
	app.Use(middleware.HealthMarker(rdb))

	// Response formatter, tracing, route logger
	app.Use(middleware.ResponseFormatter())
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
	}

	// --- Public routes ---
	var pinger health.DBPinger
	if db != nil {
		pinger = &gormPinger{db: db}
	}
	healthHandlers := &health.Handlers{
		Rdb:            rdb,
		DB:             pinger,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/", healthHandlers.Dashboard)
	app.Get("/reset", healthHandlers.Reset)
	app.Get("/health/json", healthHandlers.JSON)
	app.Get("/health/errors", healthHandlers.Errors)

	// Auth: signup, login, me, logout (db may be nil in tests; signup/login return 500)
	var userFinder auth.UserFinder
	if db != nil {
		userFinder = &auth.GormUserFinder{DB: db}
	}
	authHandlers := &auth.Handlers{
		UserFinder: userFinder,
		DB:         db,
		Rdb:        rdb,
		Config:     sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/signup", authHandlers.Signup)
	authGroup.Post("/login", authHandlers.Login)
	authGroup.Get("/me", authHandlers.Me)
	authGroup.Delete("/logout", authHandlers.Logout)

	if db != nil {
		stripeWebhook.DB = db
	}

	// --- Protected modules ---
	if db != nil && rdb != nil {
		matcher := &matching.Service{DB: db}

		// Manufacturers: onboarding is public (new OEMs have no session org yet)
		mfgService := &manufacturers.Service{DB: db}
		mfgHandlers := &manufacturers.Handlers{Service: mfgService}
		app.Post("/api/v1/manufacturers/onboarding", mfgHandlers.Onboard)
		app.Get("/api/v1/manufacturers/directory", mfgHandlers.Directory)
		mfgGroup := app.Group("/api/v1/manufacturers", middleware.RequireAuth())
		mfgGroup.Put("/profile", mfgHandlers.UpdateProfile)

		// Buyers: onboarding saves preferences and runs matching synchronously
		buyerService := &buyers.Service{DB: db, Matcher: matcher}
		buyerHandlers := &buyers.Handlers{Service: buyerService}
		buyerGroup := app.Group("/api/v1/buyers", middleware.RequireAuth())
		buyerGroup.Post("/onboarding", buyerHandlers.Onboard)
		buyerGroup.Get("/preference", buyerHandlers.Preference)

		// Requests: quote/prototype requests trigger async matching
		reqService := &requests.Service{DB: db, Matcher: matcher}
		reqHandlers := &requests.Handlers{Service: reqService}
		reqGroup := app.Group("/api/v1/requests", middleware.RequireAuth())
		reqGroup.Post("/", reqHandlers.Create)
		reqGroup.Get("/", reqHandlers.ListOwn)

		// Matching: direct score-and-save plus buyer match listing
		matchHandlers := &matching.Handlers{Service: matcher}
		matchGroup := app.Group("/api/v1/matching", middleware.RequireAuth())
		matchGroup.Post("/score", matchHandlers.ScoreAndSave)
		matchGroup.Get("/buyer-matches", matchHandlers.BuyerMatches)

		// Reviews: create + list, aggregate feeds the matcher's rating rule
		reviewService := &reviews.Service{DB: db}
		reviewHandlers := &reviews.Handlers{Service: reviewService}
		reviewGroup := app.Group("/api/v1/reviews", middleware.RequireAuth())
		reviewGroup.Post("/", reviewHandlers.Create)
		reviewGroup.Get("/:oem_org_id", reviewHandlers.ListForOEM)

		// Subscriptions: Stripe PaymentIntent creation (webhook confirms)
		subHandlers := &subscriptions.Handlers{
			StripeCreator: &subscriptions.RealStripeCreator{SecretKey: cfg.StripeSecretKey},
		}
		subGroup := app.Group("/api/v1/subscriptions", middleware.RequireAuth())
		subGroup.Post("/subscribe", subHandlers.Subscribe)
	}

	return app, db, rdb, nil
}

// Handler returns an http.Handler for serverless deployment.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
