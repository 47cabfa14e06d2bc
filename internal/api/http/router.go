package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/lifecycle-service/internal/api/http/handlers"
	"github.com/spec-kit/lifecycle-service/internal/auth"
	"github.com/spec-kit/lifecycle-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Users          *handlers.UsersHandler
	Campaigns      *handlers.CampaignsHandler
	Orders         *handlers.OrdersHandler
	Notifications  *handlers.NotificationsHandler
	Directory      *handlers.DirectoryHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Users.Register)
	authGroup.Post("/login", cfg.Users.Login)
	authGroup.Post("/password/change", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated(), cfg.Users.ChangePassword)

	api := app.Group("/api/v1", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())

	campaigns := api.Group("/campaigns")
	campaigns.Get("/states", cfg.Campaigns.States)
	campaigns.Post("", cfg.Campaigns.Create)
	campaigns.Get("", cfg.Campaigns.List)
	campaigns.Get("/:id", cfg.Campaigns.Get)
	campaigns.Patch("/:id", cfg.Campaigns.Update)
	campaigns.Post("/:id/state", cfg.Campaigns.ChangeState)
	campaigns.Get("/:id/history", cfg.Campaigns.History)

	orders := api.Group("/orders")
	orders.Get("/states", cfg.Orders.States)
	orders.Post("", cfg.Orders.Create)
	orders.Get("", cfg.Orders.List)
	orders.Get("/:id", cfg.Orders.Get)
	orders.Patch("/:id", cfg.Orders.Update)
	orders.Post("/:id/state", cfg.Orders.ChangeState)
	orders.Get("/:id/history", cfg.Orders.History)

	notifications := api.Group("/notifications")
	notifications.Get("", cfg.Notifications.List)
	notifications.Get("/unread/:target", cfg.Notifications.UnreadCount)
	notifications.Post("/unread/:target/read", cfg.Notifications.MarkRead)

	managers := auth.RequireRole(domain.UserRoleAdmin, domain.UserRoleManager)

	clients := api.Group("/clients")
	clients.Get("", cfg.Directory.ListClients)
	clients.Get("/:id", cfg.Directory.GetClient)
	clients.Post("", managers, cfg.Directory.CreateClient)
	clients.Patch("/:id", managers, cfg.Directory.UpdateClient)

	providers := api.Group("/providers")
	providers.Get("", cfg.Directory.ListProviders)
	providers.Get("/:id", cfg.Directory.GetProvider)
	providers.Post("", managers, cfg.Directory.CreateProvider)
	providers.Patch("/:id", managers, cfg.Directory.UpdateProvider)
}
