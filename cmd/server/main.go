package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cropadvisor-be/internal/config"
	"cropadvisor-be/internal/crop"
	"cropadvisor-be/internal/db"
	"cropadvisor-be/internal/land"
	"cropadvisor-be/internal/logger"
	"cropadvisor-be/internal/middleware"
	"cropadvisor-be/internal/payment"
	"cropadvisor-be/internal/prediction"
	"cropadvisor-be/internal/signature"
	"cropadvisor-be/internal/subscription"
	"cropadvisor-be/internal/timeline"
	"cropadvisor-be/internal/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Swappable in tests.
var (
	initDBFunc      = db.InitDB
	startServerFunc = startServer
)

type handlers struct {
	signature    *signature.Handler
	subscription *subscription.Handler
	land         *land.Handler
	crop         *crop.Handler
	timeline     *timeline.Handler
	prediction   *prediction.Handler
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := initDBFunc(cfg)
	defer database.Close()

	router := newServer(cfg, database)

	addr := ":" + cfg.AppPort
	logger.L().Info("server starting", zap.String("addr", addr), zap.String("env", cfg.AppEnv))
	return startServerFunc(addr, router)
}

// newServer builds the repositories, services and handlers and mounts them.
func newServer(cfg *config.Config, database *sql.DB) http.Handler {
	if cfg.ESewaSecretKey == "" {
		logger.L().Warn("ESEWA_SECRET_KEY is not set; signature requests will fail")
	}

	gateways := []payment.Gateway{
		payment.NewESewaGateway(cfg.ESewaProductCode, cfg.ESewaStatusURL, cfg.GatewayTimeout),
		payment.NewKhaltiGateway(cfg.KhaltiSecretKey, cfg.KhaltiVerifyURL, cfg.GatewayTimeout),
	}

	subSvc := subscription.NewService(
		subscription.NewRepository(database),
		payment.NewRepository(database),
		gateways...,
	)
	landSvc := land.NewService(land.NewRepository(database))

	cropRepo := crop.NewRepository(database)
	cropSvc := crop.NewService(cropRepo)
	timelineSvc := timeline.NewService(timeline.NewRepository(database), cropRepo)
	predictionSvc := prediction.NewService(
		prediction.NewRepository(database),
		prediction.NewHTTPPredictor(cfg.PredictorURL, cfg.PredictorTimeout),
	)

	signer := signature.NewSigner(cfg.ESewaSecretKey)

	h := handlers{
		signature:    signature.NewHandler(signer),
		subscription: subscription.NewHandler(subSvc, cfg.KhaltiPublicKey, signer),
		land:         land.NewHandler(landSvc),
		crop:         crop.NewHandler(cropSvc),
		timeline:     timeline.NewHandler(timelineSvc),
		prediction:   prediction.NewHandler(predictionSvc),
	}

	return setupRouter(cfg, h)
}

// setupRouter mounts the routes. Rate limiting runs before authentication so
// a rejected token still counts against its address, and only the protected
// group looks at tokens at all.
func setupRouter(cfg *config.Config, h handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(logger.RequestIDMiddleware)
	r.Use(logger.LoggingMiddleware)
	r.Use(middleware.Recover)
	r.Use(middleware.CORS(cfg.CORSOrigins))
	r.Use(middleware.RateLimitMiddleware)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "Not found", http.StatusNotFound)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		utils.WriteJSONError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Post("/generate-signature", h.signature.GenerateSignature)
	r.Get("/api/khalti/public-key", h.subscription.KhaltiPublicKey)
	r.Get("/api/plans", h.subscription.Plans)

	r.Get("/api/crops", h.crop.List)
	r.Get("/api/crops/{id}", h.crop.Get)
	r.Post("/api/crops/predict", h.prediction.Predict)
	r.Get("/api/timelines", h.timeline.List)
	r.Get("/api/timelines/{id}", h.timeline.Get)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		r.Use(middleware.RequireAuth)

		r.Post("/api/esewa/verify", h.subscription.ESewaVerify)
		r.Post("/api/khalti/verify", h.subscription.KhaltiVerify)

		r.Get("/api/subscriptions", h.subscription.List)
		r.Get("/api/subscriptions/current", h.subscription.Current)

		r.Route("/api/lands", func(r chi.Router) {
			r.Post("/", h.land.Create)
			r.Get("/", h.land.List)
			r.Get("/{id}", h.land.Get)
			r.Delete("/{id}", h.land.Delete)
		})

		r.Post("/api/crops", h.crop.Create)
		r.Put("/api/crops/{id}", h.crop.Update)
		r.Delete("/api/crops/{id}", h.crop.Delete)

		r.Post("/api/timelines", h.timeline.Create)
		r.Put("/api/timelines/{id}", h.timeline.Update)
		r.Delete("/api/timelines/{id}", h.timeline.Delete)

		r.Route("/api/predictions", func(r chi.Router) {
			r.Post("/", h.prediction.Save)
			r.Get("/", h.prediction.List)
			r.Post("/select", h.prediction.Select)
			r.Get("/{id}", h.prediction.Get)
			r.Put("/{id}", h.prediction.Update)
			r.Delete("/{id}", h.prediction.Delete)
			r.Get("/{id}/selection", h.prediction.LatestSelection)
		})

		r.Route("/api/selected-crops", func(r chi.Router) {
			r.Get("/", h.prediction.ListSelections)
			r.Put("/{id}", h.prediction.UpdateSelection)
			r.Delete("/{id}", h.prediction.DeleteSelection)
		})
	})

	return r
}

// startServer serves until SIGINT/SIGTERM, then drains in-flight requests.
func startServer(addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.L().Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
