package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	httptransport "github.com/repairdesk/repairs-service/internal/api/http"
	"github.com/repairdesk/repairs-service/internal/api/http/handlers"
	"github.com/repairdesk/repairs-service/internal/auth"
	"github.com/repairdesk/repairs-service/internal/config"
	"github.com/repairdesk/repairs-service/internal/events"
	"github.com/repairdesk/repairs-service/internal/observability"
	"github.com/repairdesk/repairs-service/internal/persistence"
	"github.com/repairdesk/repairs-service/internal/repository"
	"github.com/repairdesk/repairs-service/internal/service"
	"github.com/repairdesk/repairs-service/internal/worker"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		return fmt.Errorf("failed to connect postgres: %w", err)
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	rds := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer rds.Close()

	app := buildServer(*cfg, pg, rds, logger)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", cfg.App.Addr()))
		errCh <- app.Listen(cfg.App.Addr())
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("fiber listen: %w", err)
		}
		return nil
	case <-ctx.Done():
		logger.Info("shutting down", zap.Error(context.Cause(ctx)))
	}

	if err := app.ShutdownWithTimeout(shutdownTimeout); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

func buildServer(cfg config.Config, pg *persistence.Postgres, rds *persistence.Redis, logger *zap.Logger) *fiber.App {
	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	customerRepo := repository.NewCustomerRepository(pool)
	employeeRepo := repository.NewEmployeeRepository(pool)
	ticketRepo := repository.NewTicketRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, rds.Handle(), cfg.Events))

	revocations := auth.NewRevocationStore(rds.Handle())
	authService := service.NewAuthService(cfg, service.AuthDependencies{
		UserRepo:        userRepo,
		RevocationStore: revocations,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:   ticketRepo,
		CustomerRepo: customerRepo,
		EmployeeRepo: employeeRepo,
		Dispatcher:   dispatcher,
		Logger:       logger,
	})
	employeeService := service.NewEmployeeService(service.EmployeeDependencies{
		EmployeeRepo: employeeRepo,
		Accounts:     authService,
	})
	customerService := service.NewCustomerService(customerRepo)

	metrics := observability.NewMetrics()
	return httptransport.NewServer(httptransport.ServerConfig{
		Name:    cfg.App.Name,
		Timeout: cfg.App.RequestTimeout(),
		Logger:  logger,
		Metrics: metrics,
		Routes: httptransport.RouteConfig{
			Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, metrics,
				handlers.Dependency{Name: "postgres", Pinger: pg},
				handlers.Dependency{Name: "redis", Pinger: rds},
			),
			Auth:           handlers.NewAuthHandler(authService),
			Tickets:        handlers.NewTicketsHandler(ticketService),
			Employees:      handlers.NewEmployeesHandler(employeeService),
			Customers:      handlers.NewCustomersHandler(customerService),
			AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), userRepo, revocations, logger),
		},
	})
}
