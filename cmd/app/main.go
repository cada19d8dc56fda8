package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/chris/apartment-rentals/pkg/booking"
	"github.com/chris/apartment-rentals/pkg/config"
	"github.com/chris/apartment-rentals/pkg/handlers"
	wshandlers "github.com/chris/apartment-rentals/pkg/handlers/websockets"
	"github.com/chris/apartment-rentals/pkg/identity"
	"github.com/chris/apartment-rentals/pkg/middleware"
	"github.com/chris/apartment-rentals/pkg/queue"
	dydbstore "github.com/chris/apartment-rentals/pkg/storage/dynamodb"
	"github.com/chris/apartment-rentals/pkg/websockets"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}
	if err := cfg.RequireJWTSecret(); err != nil {
		log.Fatal(err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.SlogLevel()}))
	slog.SetDefault(logger)

	// AWS Session
	awsCfg, err := awsconfig.LoadDefaultConfig(context.TODO())
	if err != nil {
		log.Fatalf("unable to load SDK config, %v", err)
	}

	store := dydbstore.New(dynamodb.NewFromConfig(awsCfg), cfg.Tables)

	var events queue.Publisher
	if cfg.QueueURL != "" {
		events = queue.NewSQSPublisher(sqs.NewFromConfig(awsCfg), cfg.QueueURL)
	} else {
		slog.Warn("SQS_QUEUE_URL not set, payment events are disabled")
	}

	// Behind API Gateway updates go through the management API; otherwise the
	// server pushes to its own /ws clients.
	hub := websockets.NewLocalHub()
	var publisher websockets.Publisher = hub
	if cfg.WebSocketEndpoint != "" {
		publisher = websockets.NewPublisher(awsCfg, store, store, cfg.WebSocketEndpoint)
	}

	engine := booking.NewEngine(store, publisher)
	recorder := booking.NewRecorder(store, publisher, events)
	handler := handlers.NewApiHandler(store, engine, recorder)

	verifier := identity.NewVerifier(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTClockSkew)
	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)

	router := chi.NewRouter()
	router.Use(chimiddleware.RequestID)
	router.Use(chimiddleware.RealIP)
	router.Use(middleware.NewStructuredLogger(logger))
	router.Use(middleware.Authenticate(verifier))
	router.Use(chimiddleware.Recoverer)
	router.Use(limiter.Middleware)

	router.Handle("/metrics", promhttp.Handler())
	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	router.Handle("/ws", wshandlers.NewHandler(store, hub))
	handlers.Mount(router, handler)

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("starting server", "port", cfg.HTTPPort, "websocket_endpoint", cfg.WebSocketEndpoint)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	<-ctx.Done()
	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("graceful shutdown failed", "error", err)
	}
}
