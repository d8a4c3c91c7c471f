package main

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"

	"github.com/vivekx11/tankgame/internal/game"
	"github.com/vivekx11/tankgame/internal/server"
	"github.com/vivekx11/tankgame/internal/sim"
)

func main() {
	// .env is optional; the defaults below cover local runs.
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file loaded", "err", err)
	}

	cfg := game.DefaultConfig()
	world := game.NewWorld(cfg)
	hub := server.NewHub()

	loop := sim.NewLoop(world, hub)
	go loop.Run(context.Background())

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	r := server.SetupRouter(hub, loop, world)
	log.Info("server starting", "port", port, "arena", cfg.ArenaSize, "tickRate", cfg.TickRate)
	if err := r.Run(":" + port); err != nil {
		log.Fatal("server failed", "err", err)
	}
}
