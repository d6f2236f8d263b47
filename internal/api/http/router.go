package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/repairdesk/repairs-service/internal/api/http/handlers"
	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/observability"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Tickets        *handlers.TicketsHandler
	Employees      *handlers.EmployeesHandler
	Customers      *handlers.CustomersHandler
	AuthMiddleware *auth.AuthMiddleware
}

// ServerConfig describes the fiber application.
type ServerConfig struct {
	Name    string
	Timeout time.Duration
	Logger  *zap.Logger
	Metrics *observability.Metrics
	Routes  RouteConfig
}

// NewServer builds the fiber app with middlewares and routes attached.
func NewServer(cfg ServerConfig) *fiber.App {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, cfg.Metrics, cfg.Timeout)
	RegisterRoutes(app, cfg.Routes)
	return app
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/health/metrics", cfg.Health.Metrics)

	app.Post("/login", cfg.Auth.Login)
	app.Post("/register", cfg.Auth.Register)

	protected := app.Group("", cfg.AuthMiddleware.Handle, auth.RequireAuthenticated())
	protected.Post("/logout", cfg.Auth.Logout)

	protected.Get("/tickets", cfg.Tickets.ListTickets)
	protected.Get("/tickets/stats", cfg.Tickets.Stats)
	protected.Get("/tickets/:id", cfg.Tickets.GetTicket)
	protected.Post("/tickets", cfg.Tickets.CreateTicket)
	protected.Put("/tickets/:id", auth.RequireStaff(), cfg.Tickets.UpdateTicket)
	protected.Delete("/tickets/:id", auth.RequireStaff(), cfg.Tickets.DeleteTicket)

	protected.Get("/employees", cfg.Employees.ListEmployees)
	protected.Get("/employees/:id", cfg.Employees.GetEmployee)
	protected.Post("/employees", auth.RequireStaff(), cfg.Employees.CreateEmployee)
	protected.Put("/employees/:id", auth.RequireStaff(), cfg.Employees.UpdateEmployee)
	protected.Delete("/employees/:id", auth.RequireStaff(), cfg.Employees.DeleteEmployee)

	protected.Get("/customers", cfg.Customers.ListCustomers)
	protected.Get("/customers/:id", cfg.Customers.GetCustomer)
}
