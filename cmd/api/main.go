package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cmlabs-hris/timeclock-backend-go/internal/config"
	appHTTP "github.com/cmlabs-hris/timeclock-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/cron"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/pkg/sse"
	"github.com/cmlabs-hris/timeclock-backend-go/internal/repository"
	serviceAuth "github.com/cmlabs-hris/timeclock-backend-go/internal/service/auth"
	clockService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/clock"
	employeeService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/employee"
	reportService "github.com/cmlabs-hris/timeclock-backend-go/internal/service/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	logger := appHTTP.NewLogger(os.Stdout, cfg.LogLevel(), cfg.App.Env)
	slog.SetDefault(logger)

	loc, err := cfg.Location()
	if err != nil {
		slog.Error("Invalid timezone", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, err := repository.Open(ctx, cfg, repository.Options{Migrate: true})
	if err != nil {
		slog.Error("Error opening store", "driver", cfg.App.StoreDriver, "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	hub := sse.NewHub()

	authService := serviceAuth.NewAuthService(JWTService, cfg.Admin.PasswordHash)
	employeeSvc := employeeService.NewEmployeeService(stores.Employees)
	clockSvc := clockService.NewClockService(stores.Employees, stores.Events, loc)
	reportSvc := reportService.NewReportService(stores.Employees, stores.Events, loc)

	feed := reportService.NewLiveFeed(stores.Snapshots, hub, stores.Employees, stores.Events, loc)
	go feed.Run(ctx)

	scheduler := cron.NewScheduler()
	cron.NewReportJobs(feed, cfg.Report.ResyncInterval).RegisterJobs(scheduler)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	authHandler := appHTTP.NewAuthHandler(authService)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	terminalHandler := appHTTP.NewTerminalHandler(employeeSvc, clockSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc, JWTService, feed)

	router := appHTTP.NewRouter(
		appHTTP.RouterOptions{
			Logger:         logger,
			AllowedOrigins: cfg.App.CORSAllowedOrigins,
		},
		JWTService,
		authHandler,
		employeeHandler,
		terminalHandler,
		reportHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", server.Addr, "store", cfg.App.StoreDriver, "timezone", loc.String())
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server shutdown error", "error", err)
	}
}
