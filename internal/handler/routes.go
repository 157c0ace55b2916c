package handler

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tenantkit/backend/internal/domain"
	"github.com/tenantkit/backend/internal/handler/middleware"
	"github.com/tenantkit/backend/internal/service"
)

// Handlers bundles everything the route table needs.
type Handlers struct {
	Auth       *AuthHandler
	Tenant     *TenantHandler
	User       *UserHandler
	Document   *DocumentHandler
	SocialLink *SocialLinkHandler
	Chat       *ChatHandler
	Health     *HealthHandler
}

// SetupRoutes wires the full route table. Role gates live here, next to the
// paths they protect, so the whole authorization surface is readable in one
// place.
func SetupRoutes(
	app *fiber.App,
	h Handlers,
	authService *service.AuthService,
	metrics *middleware.Metrics,
	promRegistry *prometheus.Registry,
) {
	app.Get("/health", h.Health.Live)
	app.Get("/ready", h.Health.Ready)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})))

	requireAuth := middleware.RequireAuth(authService)
	optionalAuth := middleware.OptionalAuth(authService)
	superadminOnly := middleware.RequireRole(domain.RoleSuperadmin)
	adminOnly := middleware.RequireRole(domain.RoleTenantAdmin)

	api := app.Group("/api/v1", metrics.Handler())

	auth := api.Group("/auth")
	auth.Post("/login", h.Auth.Login)
	auth.Post("/refresh", h.Auth.Refresh)
	auth.Post("/logout", requireAuth, h.Auth.Logout)
	auth.Get("/me", requireAuth, h.Auth.Me)
	auth.Get("/session", optionalAuth, h.Auth.Session)

	tenants := api.Group("/tenants", requireAuth, superadminOnly)
	tenants.Post("/", h.Tenant.Create)
	tenants.Get("/", h.Tenant.List)
	tenants.Get("/:id", h.Tenant.Get)
	tenants.Put("/:id", h.Tenant.Update)
	tenants.Delete("/:id", h.Tenant.Delete)

	users := api.Group("/users", requireAuth, adminOnly)
	users.Post("/", h.User.Create)
	users.Get("/", h.User.List)
	users.Get("/:id", h.User.Get)
	users.Put("/:id", h.User.Update)
	users.Delete("/:id", h.User.Delete)

	documents := api.Group("/documents", requireAuth)
	documents.Post("/", h.Document.Register)
	documents.Get("/", h.Document.List)
	documents.Get("/:id", h.Document.Get)
	documents.Delete("/:id", h.Document.Delete)
	documents.Post("/:id/processing", h.Document.MarkProcessing)
	documents.Post("/:id/processed", h.Document.MarkProcessed)
	documents.Post("/:id/error", h.Document.MarkError)
	documents.Post("/:id/reprocess", h.Document.Reprocess)

	social := api.Group("/social-links", requireAuth, adminOnly)
	social.Post("/", h.SocialLink.Create)
	social.Get("/", h.SocialLink.List)
	social.Get("/:id", h.SocialLink.Get)
	social.Delete("/:id", h.SocialLink.Delete)

	chats := api.Group("/chats", requireAuth)
	chats.Post("/", h.Chat.CreateSession)
	chats.Get("/", h.Chat.ListSessions)
	chats.Get("/:id", h.Chat.GetSession)
	chats.Delete("/:id", h.Chat.DeleteSession)
	chats.Post("/:id/messages", h.Chat.AppendMessage)
	chats.Get("/:id/messages", h.Chat.ListMessages)
}
