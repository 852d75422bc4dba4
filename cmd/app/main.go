package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap/zapcore"

	"artauction/config"
	"artauction/handlers"
	"artauction/pkg/log"
	"artauction/repository"
	"artauction/safefetch"
	"artauction/service"
)

func main() {
	logger := log.NewZapLogger("artauction", zapcore.InfoLevel)
	defer logger.Sync()

	cfg := config.LoadConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := config.InitDB(ctx, cfg)
	if err != nil {
		logger.Fatalw("database init failed", "error", err)
	}
	defer db.Close()

	repo := repository.NewPostgresRepository(db)
	classifier := safefetch.NewClassifier(nil)
	gateway := safefetch.NewGateway(classifier, nil, logger)
	svc := service.NewService(repo, gateway, logger, cfg.SessionSecret)
	handler := handlers.NewHandler(svc, logger, cfg.SessionSecret)

	if err := svc.BootstrapAdmin(context.Background(), cfg.AdminPassword); err != nil {
		logger.Fatalw("admin bootstrap failed", "error", err)
	}

	router := mux.NewRouter()
	router.HandleFunc("/api/register", handler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth", handler.AuthHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/info", handler.JWTMiddleware(handler.InfoHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/artworks", handler.ListArtworksHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artworks", handler.JWTMiddleware(handler.CreateArtworkHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artworks/{id:[0-9]+}", handler.GetArtworkHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/artworks/{id:[0-9]+}", handler.JWTMiddleware(handler.UpdateArtworkHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/artworks/{id:[0-9]+}", handler.JWTMiddleware(handler.DeleteArtworkHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/artworks/{id:[0-9]+}/buy", handler.JWTMiddleware(handler.BuyHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/artworks/{id:[0-9]+}/settings", handler.JWTMiddleware(handler.GetSettingsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/artworks/{id:[0-9]+}/settings", handler.JWTMiddleware(handler.SaveSettingsHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/transactions", handler.JWTMiddleware(handler.TransactionsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/search", handler.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/import", handler.JWTMiddleware(handler.ImportHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/generate", handler.GenerateHandler).Methods(http.MethodGet)
	router.HandleFunc("/healthcheck", handler.HealthcheckHandler).Methods(http.MethodGet)
	router.HandleFunc("/cleanup", handler.CleanupHandler).Methods(http.MethodPost)

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	logger.Infow("server starting", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalw("server stopped", "error", err)
	}
}
