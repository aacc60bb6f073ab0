package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/worklane-hq/worklane-backend-go/internal/config"
	appHTTP "github.com/worklane-hq/worklane-backend-go/internal/handler/http"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/clock"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/database"
	"github.com/worklane-hq/worklane-backend-go/internal/pkg/jwt"
	"github.com/worklane-hq/worklane-backend-go/internal/repository/postgresql"
	notificationService "github.com/worklane-hq/worklane-backend-go/internal/service/notification"
	sessionService "github.com/worklane-hq/worklane-backend-go/internal/service/session"
	worksheetService "github.com/worklane-hq/worklane-backend-go/internal/service/worksheet"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With(
		slog.String("app", "worklane"),
		slog.String("env", cfg.App.Env),
	)

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Pool.Close()

	sessionRepo := postgresql.NewSessionRepository(db)
	breakSettingsRepo := postgresql.NewBreakSettingsRepository(db)
	worksheetRepo := postgresql.NewWorksheetRepository(db)
	teamRepo := postgresql.NewTeamRepository(db)
	notificationRepo := postgresql.NewNotificationRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	orgClock := clock.New(cfg.App.Timezone)

	notifSvc := notificationService.NewNotificationService(notificationRepo, logger, notificationService.Config{})
	defer notifSvc.Stop()

	sessionSvc := sessionService.NewSessionService(db, sessionRepo, breakSettingsRepo, teamRepo, notifSvc, orgClock, logger)
	worksheetSvc := worksheetService.NewWorksheetService(db, worksheetRepo, teamRepo, sessionRepo, notifSvc, orgClock, logger)

	sessionHandler := appHTTP.NewSessionHandler(sessionSvc)
	worksheetHandler := appHTTP.NewWorksheetHandler(worksheetSvc)
	notificationHandler := appHTTP.NewNotificationHandler(notifSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Environment:    cfg.App.Env,
		},
		jwtService,
		sessionHandler,
		worksheetHandler,
		notificationHandler,
	)

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.App.Port, "timezone", cfg.App.Timezone)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("server stopped")
}
