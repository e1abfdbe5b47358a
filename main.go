// Command tradejournal-go is the backend for a personal trading journal.
// It wires configuration, the database pool, the session store and its
// pruner, the feature services and handlers, the HTTP router, and graceful
// shutdown.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/user/tradejournal-go/apperror"
	"github.com/user/tradejournal-go/auth"
	"github.com/user/tradejournal-go/config"
	"github.com/user/tradejournal-go/db"
	"github.com/user/tradejournal-go/trades"
	"github.com/user/tradejournal-go/users"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading it: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	pool, err := db.NewDBPool(cfg.DB)
	if err != nil {
		log.Fatalf("Failed to create database pool: %v", err)
	}
	defer pool.Close()

	if err := db.RunMigrations(cfg.DB, "./migrations"); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// The session store is the only cross-request mutable state; the pruner
	// sweeps untouched entries in the background until the stop channel is
	// closed during shutdown.
	sessions := auth.NewSessionStore(cfg.Session.TTL)
	prunerStopChan := make(chan struct{})
	sessions.StartPruner(cfg.Session.PruneInterval, prunerStopChan)

	userRepo := auth.NewPostgresUserRepository(pool)
	authService := auth.NewAuthService(userRepo, sessions)
	authHandlers := auth.NewHandlers(authService, auth.CookieConfig{
		MaxAge:     cfg.Session.TTL,
		Production: cfg.Server.Production,
	})

	tradeRepo := trades.NewPostgresTradeRepository(pool)
	tradeService := trades.NewTradeService(tradeRepo)
	tradeHandlers := trades.NewHandlers(tradeService)

	userService := users.NewUserService(pool)
	userHandlers := users.NewHandlers(userService)

	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	// Cookie-based auth needs credentials, so the allowed origin must be the
	// concrete client URL rather than a wildcard.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Server.ClientURL},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			defer func() {
				if rvr := recover(); rvr != nil {
					log.Printf("Panic: %+v", rvr)
					writeError(ww, apperror.NewInternalError("internal server error", nil))
				}
			}()
			next.ServeHTTP(ww, r)
		})
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"message": "Hello, friend! This is a private API for a trading journal, so thanks for visiting!",
		})
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signup", authHandlers.HandleSignup())
		r.Post("/signin", authHandlers.HandleSignin())
		r.Get("/logout", authHandlers.HandleLogout())

		r.Group(func(r chi.Router) {
			r.Use(auth.SessionMiddleware(sessions))
			r.Get("/status", authHandlers.HandleStatus())
		})
	})

	r.Route("/user", func(r chi.Router) {
		r.Use(auth.SessionMiddleware(sessions))

		r.Get("/stats/{userID}", tradeHandlers.HandleStats())
		r.Get("/trades/{userID}", tradeHandlers.HandleListTrades())
		r.Get("/trades/details/{tradeID}", tradeHandlers.HandleTradeDetails())
		r.Post("/update/trades", tradeHandlers.HandleCreateTrade())
		r.Patch("/patch/trades/{tradeID}", tradeHandlers.HandleUpdateTrade())
		r.Delete("/trade/delete/{tradeID}", tradeHandlers.HandleDeleteTrade())

		r.Get("/profile/{userID}", userHandlers.HandleGetProfile())
		r.Post("/update/profile", userHandlers.HandleUpdateProfile())
	})

	addr := fmt.Sprintf(":%s", cfg.Server.Port)

	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	close(prunerStopChan)

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown failed: %v", err)
	}
	log.Println("Server stopped gracefully")
}

// writeError is a local helper for the panic recovery middleware.
func writeError(w http.ResponseWriter, appErr *apperror.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(appErr.StatusCode())
	if err := json.NewEncoder(w).Encode(appErr.ToResponse()); err != nil {
		http.Error(w, `{"error":"Failed to encode error response"}`, http.StatusInternalServerError)
	}
}
