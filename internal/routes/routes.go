package routes

import (
	"time"

	"github.com/creatorflowhq/creatorflow-backend/internal/config"
	"github.com/creatorflowhq/creatorflow-backend/internal/handlers"
	"github.com/creatorflowhq/creatorflow-backend/internal/middleware"
	"github.com/creatorflowhq/creatorflow-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	users *services.UserService,
	healthHandler *handlers.HealthHandler,
	webhookHandler *handlers.WebhookHandler,
	userHandler *handlers.UserHandler,
	ideaHandler *handlers.IdeaHandler,
	generationHandler *handlers.GenerationHandler,
	analyticsHandler *handlers.AnalyticsHandler,
	templateHandler *handlers.TemplateHandler,
	teamHandler *handlers.TeamHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 120 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               120,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	// Health (public)
	api.Get("/health", healthHandler.Check)

	// Identity webhooks — svix signature is the auth, no session required.
	// Stricter rate limit so a flood of bad signatures stays cheap.
	webhooks := api.Group("/webhooks")
	webhooks.Use(limiter.New(limiter.Config{
		Max:               30,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	webhooks.Get("/clerk", webhookHandler.Liveness)
	webhooks.Post("/clerk", webhookHandler.HandleIdentityEvent)

	// Protected routes (session JWT required)
	protected := api.Group("", middleware.SessionProtected(cfg))

	me := protected.Group("/me")
	me.Get("", userHandler.Me)
	me.Get("/limits", userHandler.Limits)
	me.Get("/can-perform", userHandler.CanPerform)
	me.Put("/settings", userHandler.UpdateSettings)
	me.Put("/profile", userHandler.UpdateProfile)

	ideas := protected.Group("/ideas")
	ideas.Post("", ideaHandler.Create)
	ideas.Get("", ideaHandler.List)
	ideas.Get("/:id", ideaHandler.Get)
	ideas.Put("/:id", ideaHandler.Update)
	ideas.Post("/:id/archive", ideaHandler.Archive)
	ideas.Delete("/:id", ideaHandler.Delete)

	protected.Post("/generate", generationHandler.Generate)
	protected.Get("/ideas/:idea_id/content", generationHandler.ListForIdea)

	protected.Post("/performance", analyticsHandler.RecordPerformance)
	protected.Get("/analytics", analyticsHandler.GetAnalytics)
	protected.Get("/analytics/top", analyticsHandler.TopContent)

	templates := protected.Group("/templates")
	templates.Get("", templateHandler.List)
	templates.Get("/:id", templateHandler.Get)
	templates.Post("/:id/render", templateHandler.Render)

	teams := protected.Group("/teams")
	teams.Post("", teamHandler.Create)
	teams.Get("", teamHandler.List)
	teams.Get("/:id", teamHandler.Get)
	teams.Post("/:id/members", teamHandler.AddMember)

	// Admin panel (session + admin allowlist)
	admin := api.Group("/admin", middleware.SessionProtected(cfg), middleware.AdminRequired(users))
	admin.Post("/templates", templateHandler.Create)
	admin.Delete("/templates/:id", templateHandler.Delete)
	admin.Get("/metrics", healthHandler.Metrics)
}
