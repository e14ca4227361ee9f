package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"homebite/internal/config"
	"homebite/internal/database"
	"homebite/internal/handler"
	"homebite/internal/mw"
	"homebite/internal/service"
	"homebite/internal/worker"
)

func main() {
	cfg := config.New()

	db, err := database.NewDB(cfg.DatabaseURI)
	if err != nil {
		slog.Error("failed to connect to DB", "error", err)
		os.Exit(1)
	}
	defer database.CloseDB(context.Background(), db)

	if err := database.InitSchema(db); err != nil {
		slog.Error("failed to init DB schema", "error", err)
		os.Exit(1)
	}

	// Services
	authSvc := service.NewAuthService(db)
	mealSvc := service.NewMealService(db)
	orderSvc := service.NewOrderService(db)
	ratingSvc := service.NewRatingService(db)
	prefSvc := service.NewPreferencesService(db)
	aiClient := service.NewAIClient(cfg.AIGatewayURL, cfg.AIAPIKey, cfg.AIModel)

	// Worker
	tagWorker := worker.NewTagWorker(mealSvc, aiClient)

	// Router
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Public routes
	r.Post("/api/user/register", handler.RegisterHandler(authSvc, cfg.JWTSecret))
	r.Post("/api/user/login", handler.LoginHandler(authSvc, cfg.JWTSecret))

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(mw.AuthMiddleware(cfg.JWTSecret))

		r.Get("/api/meals", handler.FeedHandler(mealSvc))
		r.Post("/api/meals", handler.CreateMealHandler(mealSvc))
		r.Get("/api/meals/my", handler.MyMealsHandler(mealSvc))
		r.Post("/api/meals/analyze", handler.AnalyzeDishHandler(aiClient))

		r.Post("/api/orders", handler.PlaceOrderHandler(orderSvc))
		r.Get("/api/orders", handler.ListOrdersHandler(orderSvc))
		r.Post("/api/orders/{id}/status", handler.AdvanceOrderHandler(orderSvc))
		r.Post("/api/orders/{id}/rating", handler.SubmitRatingHandler(ratingSvc))

		r.Get("/api/cooks/{id}/rating", handler.CookRatingHandler(ratingSvc))

		r.Get("/api/user/preferences", handler.GetPreferencesHandler(prefSvc))
		r.Put("/api/user/preferences", handler.SavePreferencesHandler(prefSvc))

		r.Post("/api/recommendations", handler.RecommendHandler(prefSvc))
	})

	srv := &http.Server{
		Addr:         cfg.RunAddress,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go tagWorker.Start(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	slog.Info("starting server", "addr", cfg.RunAddress)

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
		}
	}()

	<-quit
	slog.Info("shutting down...")

	cancel() // stop worker
	ctxShut, cancelShut := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShut()

	if err := srv.Shutdown(ctxShut); err != nil {
		slog.Error("server shutdown failed", "error", err)
	}

	slog.Info("server stopped")
}
