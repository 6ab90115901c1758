package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/voidrp/community-backend/internal/api/http/handlers"
	"github.com/voidrp/community-backend/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Discord        *handlers.DiscordHandler
	Home           *handlers.HomeHandler
	AuthMiddleware *auth.AuthMiddleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/login", cfg.Auth.Login)

	tickets := app.Group("/tickets", cfg.AuthMiddleware.Handle)
	// Static paths must register before the :id wildcard.
	tickets.Get("/categories", cfg.Tickets.Categories)
	tickets.Get("/search", cfg.Tickets.Search)
	tickets.Get("/", cfg.Tickets.List)
	tickets.Post("/", cfg.Tickets.Create)
	tickets.Get("/:id", cfg.Tickets.Get)
	tickets.Post("/:id/close", cfg.Tickets.Close)
	tickets.Post("/:id/message", cfg.Tickets.SendMessage)
	tickets.Put("/:id/message/:messageId", cfg.Tickets.EditMessage)
	tickets.Delete("/:id/message/:messageId", cfg.Tickets.RemoveMessage)

	discord := app.Group("/discord")
	discord.Post("/verify", cfg.Discord.Verify)
	discord.Post("/confirm", cfg.Discord.Confirm)
	discord.Post("/unlink", cfg.Discord.Unlink)

	// Public endpoints; identity is attached when a token is present but
	// never required.
	home := app.Group("/home", cfg.AuthMiddleware.Optional)
	home.Post("/contact", cfg.Home.Contact)
	home.Get("/team", cfg.Home.Team)
	home.Get("/statistics", cfg.Home.Statistics)
}
