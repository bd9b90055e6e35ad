package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"simtrack/internal/config"
	apphttp "simtrack/internal/http"
	"simtrack/internal/repository/sqlite"
	"simtrack/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	progressRepo := sqlite.NewProgressRepository(db)
	sessionRepo := sqlite.NewSessionRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := progressRepo.Init(ctx); err != nil {
		logger.Fatalf("init progress repository: %v", err)
	}
	if err := sessionRepo.Init(ctx); err != nil {
		logger.Fatalf("init session repository: %v", err)
	}

	sessionTTL := time.Duration(cfg.Session.TTLMinutes) * time.Minute

	userService := service.NewUserService(userRepo)
	progressService := service.NewProgressService(progressRepo)
	sessionService := service.NewSessionService(sessionRepo, userRepo, sessionTTL)

	jobService, err := service.NewJobService(cfg.Jobs.Path)
	if err != nil {
		logger.Fatalf("load jobs listing: %v", err)
	}

	go sweepSessions(ctx, sessionService, logger)

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		progressService,
		sessionService,
		jobService,
		logger,
		apphttp.HandlerConfig{
			CookieName:   cfg.Session.CookieName,
			CookieSecure: cfg.Session.CookieSecure,
			SessionTTL:   sessionTTL,
			CORSOrigin:   cfg.CORS.Origin,
		},
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// sweepSessions clears expired sessions on an interval so the sessions table
// does not grow without bound.
func sweepSessions(ctx context.Context, sessions service.SessionService, logger *logrus.Logger) {
	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := sessions.DeleteExpired(ctx)
			if err != nil {
				logger.Warnf("sweep sessions: %v", err)
				continue
			}
			if n > 0 {
				logger.Infof("removed %d expired sessions", n)
			}
		}
	}
}
