package main

import (
	"log"

	"github.com/joho/godotenv"

	"vansdash/internal/config"
	"vansdash/ui"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	srv, err := ui.NewServer(cfg)
	if err != nil {
		log.Fatal("Failed to create dashboard server:", err)
	}

	log.Printf("Starting Vans dashboard on http://localhost:%s", cfg.Server.Port)
	log.Fatal(srv.Start())
}
