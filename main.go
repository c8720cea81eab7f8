package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/gamehub4u/gamehub-server/internal/handlers"
	"github.com/gamehub4u/gamehub-server/internal/mafia"
	"github.com/gamehub4u/gamehub-server/internal/rooms"
	"github.com/gamehub4u/gamehub-server/internal/store"
	"github.com/gamehub4u/gamehub-server/internal/ws"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("No .env file found, using environment as-is")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	minPlayers := mafia.MinPlayers
	if os.Getenv("DEV_MODE") != "" {
		minPlayers = mafia.MinPlayersDev
		log.Printf("DEV_MODE: start minimum lowered to %d players", minPlayers)
	}

	registry := store.NewRegistry()
	hub := ws.NewHub()
	service := rooms.NewService(registry, hub, rooms.Config{MinPlayers: minPlayers})
	hub.SetHandler(service)

	baseURL := os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:" + port
	}
	api := &handlers.Context{Registry: registry, Hub: hub, BaseURL: baseURL}

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", hub.ServeWS)
	mux.HandleFunc("/api/health", api.HandleHealth)
	mux.HandleFunc("/api/rooms", api.HandleRooms)
	mux.HandleFunc("/api/room/", api.HandleRoom)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go service.StartSweeper(ctx, store.SweepInterval, store.RoomTTL)

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: mux,
	}

	go func() {
		log.Printf("Server starting on http://localhost:%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	log.Printf("Shutdown signal received, draining...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Shutdown: %v", err)
	}
	log.Printf("Server closed")
}
