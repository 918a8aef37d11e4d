package main

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "safety_monitor/docs"
	"safety_monitor/internal/config"
	"safety_monitor/internal/geo"
	"safety_monitor/internal/handlers"
	"safety_monitor/internal/logger"
	"safety_monitor/internal/models"
	"safety_monitor/internal/relay"
	"safety_monitor/internal/repository"
	"safety_monitor/internal/repository/db"
	"safety_monitor/internal/server"
	"safety_monitor/internal/service"
	"safety_monitor/internal/stream"
)

const (
	defaultPort      = "8080"
	redisDialTimeout = 5 * time.Second
	shutdownTimeout  = 10 * time.Second
)

// @title        Safety Monitor API
// @version      1.0
// @description  Helmet, mining and fire alarm monitoring with edge-triggered SOS notifications.
// @host         localhost:8080
// @BasePath     /
func main() {
	cfg, err := config.Load("configs")
	if err != nil {
		logger.Get(logger.InfoLevel).Fatalw("error reading config", "err", err)
	}

	log := logger.Get(cfg.Log.Level)
	defer func() { _ = log.Sync() }()

	database, err := openDB(cfg, log)
	if err != nil {
		log.Fatalw("failed to init sqlite", "err", err)
	}
	defer func() {
		if cerr := database.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// context for background goroutines
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := stream.NewHub(log)
	publishers := service.Publishers{hub}

	rl := connectRelay(ctx, cfg, log)
	if rl != nil {
		defer func() { _ = rl.Close() }()
		publishers = append(publishers, rl)
	}

	// wire dependencies
	repos := repository.NewRepository(database)
	services := service.NewService(repos, service.Options{
		Thresholds:    cfg.Thresholds,
		Origin:        models.Location{Lat: cfg.Location.Lat, Lon: cfg.Location.Lon},
		Publisher:     publishers,
		Locator:       newLocator(cfg, log),
		LocateTimeout: cfg.Locator.Timeout,
		Seed:          cfg.Simulator.Seed,
		Log:           log,
	})
	apiHandler := handlers.NewHandler(services, hub, log)

	go hub.Run(ctx)
	go services.Loop.Run(ctx)

	if cfg.Simulator.Enabled {
		go services.Simulator.Run(ctx, cfg.Simulator.Interval)
	}

	if rl != nil {
		go rl.RunPublisher(ctx)
		go func() {
			if err := rl.Subscribe(ctx, services.Dashboard); err != nil {
				log.Errorw("hazard_subscription_failed", "err", err)
			}
		}()
	}

	srv := &server.Server{}
	runHTTPServer(srv, cfg, apiHandler, log)

	waitForShutdown(cancel, srv, log)
}

// openDB initializes the SQLite audit journal using configuration.
func openDB(cfg *config.Config, log *logger.Logger) (*sql.DB, error) {
	path := cfg.DB.Path
	if path == "" {
		path = config.DefaultDBPath
		log.Infow("db.path not set in config; using in-memory journal", "default", path)
	}
	return db.InitDB(path)
}

// connectRelay returns nil when Redis is not configured or unreachable;
// the dashboard runs without the hazard push channel in that case.
func connectRelay(ctx context.Context, cfg *config.Config, log *logger.Logger) *relay.Relay {
	if cfg.Redis.Addr == "" {
		log.Infow("redis.addr not set; hazard push channel disabled")
		return nil
	}
	dctx, cancel := context.WithTimeout(ctx, redisDialTimeout)
	defer cancel()

	rl, err := relay.New(dctx, relay.Options{
		Addr:          cfg.Redis.Addr,
		Password:      cfg.Redis.Password,
		DB:            cfg.Redis.DB,
		HazardChannel: cfg.Redis.HazardChannel,
		NotifyChannel: cfg.Redis.NotifyChannel,
	}, log)
	if err != nil {
		log.Errorw("redis_unavailable", "err", err, "addr", cfg.Redis.Addr)
		return nil
	}
	return rl
}

func newLocator(cfg *config.Config, log *logger.Logger) service.Locator {
	if cfg.Locator.URL == "" {
		log.Infow("locator.url not set; hazard recentering disabled")
		return nil
	}
	return geo.NewHTTPLocator(cfg.Locator.URL, cfg.Locator.Timeout)
}

// runHTTPServer runs the HTTP server in a separate goroutine.
func runHTTPServer(srv *server.Server, cfg *config.Config, handler *handlers.Handler, log *logger.Logger) {
	port := cfg.Port
	if port == "" {
		port = defaultPort
	}
	h := server.WithCORS(handler.InitRoutes(), cfg.CORS.AllowedOrigins)
	go func() {
		log.Infow("http_server_started", "port", port)
		if err := srv.Run(port, h); err != nil && err != http.ErrServerClosed {
			log.Fatalw("error starting server", "err", err)
		}
	}()
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(cancel context.CancelFunc, srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// stop background goroutines
	cancel()

	ctx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("server forced to shutdown", "err", err)
	}
}
