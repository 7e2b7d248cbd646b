package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"guestbook/internal/di"
)

func main() {
	log.Println("Starting Guestbook Service...")

	app, cleanup, err := di.InitializeApplication()
	if err != nil {
		log.Fatalf("Failed to initialize guestbook service: %v", err)
	}
	defer cleanup()

	router := mux.NewRouter()
	router.Use(loggingMiddleware)

	app.MessageHandler.RegisterRoutes(router)
	app.AdminHandler.RegisterRoutes(router)
	router.HandleFunc("/health", healthHandler).Methods("GET")

	srv := &http.Server{
		Addr:         ":" + app.Config.Server.APIPort,
		Handler:      router,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 120 * time.Second, // exports can take a while
	}

	go func() {
		log.Printf("🚀 Guestbook API running on port %s", app.Config.Server.APIPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down Guestbook Service...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("Forced shutdown: %v", err)
	}
	log.Println("Guestbook Service stopped")
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("→ %s %s (%v)", r.Method, r.URL.Path, time.Since(start))
	})
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok","service":"guestbook-api"}`))
}
