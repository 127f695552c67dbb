// cmd/server/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	_ "ticket-service/docs"
	"ticket-service/internal/config"
	"ticket-service/internal/discovery"
	"ticket-service/internal/handler"
	"ticket-service/internal/protocol"
	"ticket-service/internal/routes"
	"ticket-service/internal/service"
	"ticket-service/internal/utils"
)

// Application represents the main application
type Application struct {
	config *config.Config
	logger *zap.Logger
	server *http.Server

	transport      *protocol.TCPSender
	eventBus       *handler.EventBus
	printService   *service.PrintService
	printerMonitor *service.PrinterMonitor
	scanner        *discovery.Scanner
	router         *routes.Router

	cancelBackground context.CancelFunc
}

// @title Ticket Service API
// @version 1.0.0
// @description Prints task and WiFi tickets on ESC/POS thermal receipt printers over raw TCP.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8085
// @BasePath /api/v1
func main() {
	configPath := pflag.StringP("config", "c", "", "path to a YAML config file")
	pflag.Parse()

	app, err := NewApplication(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize application: %v\n", err)
		os.Exit(1)
	}

	if err := app.Start(); err != nil {
		app.logger.Fatal("Failed to start application", zap.Error(err))
	}
}

// NewApplication creates a new application instance
func NewApplication(configPath string) (*Application, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := utils.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	serviceLogger := utils.NewServiceLogger(logger, "ticket-service")
	serviceLogger.LogServiceStart(cfg.App.Version, cfg)

	app := &Application{
		config: cfg,
		logger: logger,
	}

	app.initializeServices()
	app.initializeServer()

	return app, nil
}

// initializeServices wires the printer transport, event bus and print service
func (app *Application) initializeServices() {
	app.transport = protocol.NewTCPSender(&protocol.TCPConfig{
		SendTimeout:  app.config.Printer.SendTimeout,
		ProbeTimeout: app.config.Printer.ProbeTimeout,
	}, app.logger)

	app.eventBus = handler.NewEventBus(app.logger)
	app.printService = service.NewPrintService(app.transport, app.eventBus, app.logger)
	app.scanner = discovery.NewScanner(app.transport, &discovery.Config{
		NetworkRanges: app.config.Discovery.NetworkRanges,
		Concurrency:   app.config.Discovery.Concurrency,
		MaxHosts:      app.config.Discovery.MaxHosts,
	}, app.logger)

	if app.config.HasDefaultPrinter() && app.config.Printer.HealthCheckInterval > 0 {
		app.printerMonitor = service.NewPrinterMonitor(
			app.transport,
			app.eventBus,
			app.config.Printer.Host,
			app.config.Printer.Port,
			app.config.Printer.HealthCheckInterval,
			app.logger,
		)
	}

	app.logger.Info("Services initialized successfully",
		zap.Bool("default_printer", app.config.HasDefaultPrinter()),
		zap.Bool("printer_monitor", app.printerMonitor != nil),
	)
}

// initializeServer sets up HTTP server and routes
func (app *Application) initializeServer() {
	var monitor handler.PrinterStatusSource
	if app.printerMonitor != nil {
		monitor = app.printerMonitor
	}

	app.router = routes.NewRouter(app.config, app.logger, app.printService, monitor, app.scanner, app.eventBus)
	engine := app.router.SetupRouter()

	app.server = &http.Server{
		Addr:         app.config.GetServerAddr(),
		Handler:      engine,
		ReadTimeout:  app.config.Server.ReadTimeout,
		WriteTimeout: app.config.Server.WriteTimeout,
		IdleTimeout:  app.config.Server.IdleTimeout,
	}

	app.logger.Info("HTTP server initialized",
		zap.String("address", app.config.GetServerAddr()),
	)
}

// startBackgroundServices starts the event fan-out and printer monitor
func (app *Application) startBackgroundServices() {
	ctx, cancel := context.WithCancel(context.Background())
	app.cancelBackground = cancel

	app.goSafe(app.eventBus.Start)
	app.goSafe(app.router.WebSocketHandler().Run)

	if app.printerMonitor != nil {
		app.goSafe(func() { app.printerMonitor.Run(ctx) })
	}

	app.logger.Info("Background services started")
}

// goSafe runs fn in a goroutine that logs a panic before the process exits
func (app *Application) goSafe(fn func()) {
	go func() {
		defer utils.LogPanic(app.logger)
		fn()
	}()
}

// Start runs the HTTP server until a shutdown signal arrives
func (app *Application) Start() error {
	app.startBackgroundServices()

	serverErr := make(chan error, 1)
	go func() {
		app.logger.Info("Starting HTTP server",
			zap.String("address", app.server.Addr),
		)

		if err := app.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		app.logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		app.shutdown("shutdown signal received")
		return nil
	case err := <-serverErr:
		app.shutdown("http server failed")
		return err
	}
}

// shutdown performs graceful shutdown
func (app *Application) shutdown(reason string) {
	serviceLogger := utils.NewServiceLogger(app.logger, "ticket-service")
	serviceLogger.LogServiceStop(reason)

	app.router.HealthHandler().SetDraining()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		app.logger.Info("HTTP server stopped")
	}

	if app.cancelBackground != nil {
		app.cancelBackground()
	}
	app.eventBus.Stop()

	app.logger.Info("Application shutdown completed")

	// Sync returns EINVAL on stdout/stderr
	_ = utils.CloseLogger(app.logger)
}
