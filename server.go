package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"monastery360/config"
	"monastery360/cron"
	"monastery360/database"
	itineraryRepo "monastery360/database/repository/itinerary"
	"monastery360/handlers"
	"monastery360/middleware"
	"monastery360/routes"
	"monastery360/services/catalog"
	"monastery360/services/delivery"
	"monastery360/services/planner"
	"monastery360/services/search"
	"monastery360/services/tasks"
	"monastery360/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
)

func runServer() error {
	logger := utils.GetLogger()
	defer logger.Sync()
	cfg := config.AppConfig

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisClients := map[string]*redis.Client{}
	defer utils.CloseRedis()

	// session store
	var store planner.SessionStore
	switch cfg.SessionStore {
	case "memory":
		store = planner.NewMemorySessionStore(cfg.SessionTTL())
	case "redis", "":
		client, err := utils.InitSessionStore()
		if err != nil {
			return fmt.Errorf("main: session store: %w", err)
		}
		redisClients["sessions"] = client
		store = planner.NewRedisSessionStore(client, cfg.SessionTTL())
	default:
		return fmt.Errorf("main: unknown SESSION_STORE %q", cfg.SessionStore)
	}

	cat, err := catalog.NewDefaultCatalog()
	if err != nil {
		return fmt.Errorf("main: catalog: %w", err)
	}

	// search providers, cached when Redis is reachable
	var flights search.FlightSearchProvider = search.NewMockFlightProvider(cfg.FlightSearchLatency(), logger)
	var hotels search.HotelSearchProvider = search.NewMockHotelProvider(cfg.HotelSearchLatency(), logger)
	if cfg.SearchCacheTTL() > 0 {
		cacheClient, err := utils.InitCache()
		if err != nil {
			logger.Warn("main: search cache disabled", zap.Error(err))
		} else {
			redisClients["cache"] = cacheClient
			flights = &search.CachedFlightSearch{Next: flights, Client: cacheClient, TTL: cfg.SearchCacheTTL(), Logger: logger}
			hotels = &search.CachedHotelSearch{Next: hotels, Client: cacheClient, TTL: cfg.SearchCacheTTL(), Logger: logger}
		}
	}

	sender := delivery.NewMockEmailDelivery(cfg.DeliveryLatency(), logger)

	// optional itinerary archive
	var archive itineraryRepo.ItineraryRepository
	var mongoClient *mongo.Client
	if cfg.DatabaseURL != "" {
		mongoClient, err = database.InitDB(logger)
		if err != nil {
			return fmt.Errorf("main: %w", err)
		}
		defer database.CloseDB(context.Background())
		archive, err = itineraryRepo.NewMongoItineraryRepo(mongoClient.Database(cfg.DatabaseName))
		if err != nil {
			return fmt.Errorf("main: %w", err)
		}
	}

	svc := &planner.DefaultPlannerService{
		Store:    store,
		Catalog:  cat,
		Flights:  flights,
		Hotels:   hotels,
		Delivery: sender,
		Logger:   logger.Named("planner"),
		Now:      time.Now,
	}
	if archive != nil {
		svc.Archive = archive
	}
	if cfg.RemindersEnabled {
		queue := asynq.NewClient(cron.QueueRedisOpt())
		defer queue.Close()
		svc.Reminders = tasks.NewReminderScheduler(queue, logger.Named("reminders"))
	}

	utils.StartHealthMonitor(ctx, time.Minute, redisClients, mongoClient)

	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.Metrics())
	router.Use(middleware.RateLimitMiddleware(cfg.MaxRequestsPerMin, logger))

	routes.RegisterRoutes(router, &handlers.HandlerBundle{
		Planner:     &handlers.PlannerHandler{Service: svc},
		Catalog:     &handlers.CatalogHandler{Catalog: cat},
		Itineraries: &handlers.ItineraryHandler{Repo: archive},
	})

	port := cfg.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("main: server failed to start: %w", err)
	case <-ctx.Done():
	}
	logger.Sugar().Info("main: server is shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("main: server forced to shutdown: %w", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
	return nil
}
