package api

import (
	"context"
	"crypto/subtle"
	"time"

	"placements-assistant/internal/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/keyauth"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Pinger is a backing service checked by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type RouterConfig struct {
	Version     string
	Environment string
	CORSOrigins string
	AdminAPIKey string
	Chatbot     *ChatbotHandler
	Dashboard   *DashboardHandler
	Checks      map[string]Pinger
}

func SetupRouter(app *fiber.App, cfg RouterConfig) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: cfg.CORSOrigins}))

	app.Get("/health", healthHandler(cfg))
	metrics.Register()
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	chatbot := app.Group("/chatbot")
	chatbot.Get("/get-chatbot-answer", cfg.Chatbot.GetAnswer)

	admin := keyauth.New(keyauth.Config{
		KeyLookup:  "header:" + fiber.HeaderAuthorization,
		AuthScheme: "Bearer",
		Validator:  adminKeyValidator(cfg.AdminAPIKey),
	})

	dashboard := app.Group("/dashboard")
	dashboard.Get("/get-company-insights-data", cfg.Dashboard.GetCompanyInsights)
	dashboard.Get("/get-company-stats-data", cfg.Dashboard.GetCompanyStats)
	dashboard.Post("/add-company-insights-data", admin, cfg.Dashboard.AddCompanyInsights)
	dashboard.Post("/add-all-company-insights-data", admin, cfg.Dashboard.AddAllCompanyInsights)
	dashboard.Delete("/delete-company-insights-record", admin, cfg.Dashboard.DeleteCompanyInsightsRecord)
	dashboard.Delete("/delete-all-company-insights-data", admin, cfg.Dashboard.DeleteAllCompanyInsights)
	dashboard.Post("/add-company-stats-data", admin, cfg.Dashboard.AddCompanyStats)
}

// adminKeyValidator rejects every key when no admin key is configured.
func adminKeyValidator(expected string) func(*fiber.Ctx, string) (bool, error) {
	return func(c *fiber.Ctx, key string) (bool, error) {
		if expected == "" || subtle.ConstantTimeCompare([]byte(key), []byte(expected)) != 1 {
			return false, keyauth.ErrMissingOrMalformedAPIKey
		}
		return true, nil
	}
}

func healthHandler(cfg RouterConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()

		status := fiber.StatusOK
		deps := fiber.Map{}
		for name, p := range cfg.Checks {
			if err := p.Ping(ctx); err != nil {
				status = fiber.StatusServiceUnavailable
				deps[name] = err.Error()
				continue
			}
			deps[name] = "ok"
		}

		state := "healthy"
		if status != fiber.StatusOK {
			state = "degraded"
		}
		return c.Status(status).JSON(fiber.Map{
			"status":       state,
			"version":      cfg.Version,
			"env":          cfg.Environment,
			"dependencies": deps,
		})
	}
}
