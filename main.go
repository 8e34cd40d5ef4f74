package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/kys/models"
	"github.com/kys/notify"
	"github.com/kys/server"
)

func main() {
	cfg := models.LoadConfig()

	if cfg.DataFile != "" {
		seed, err := models.LoadSeed(cfg.DataFile)
		if err != nil {
			log.Fatal("Failed to load data file:", err)
		}
		if err := models.Store.Populate(seed); err != nil {
			log.Fatal("Failed to populate data store:", err)
		}
	}

	if cfg.AdminUsername != "" {
		if _, ok := models.Store.User(cfg.AdminUsername); !ok {
			if _, err := models.Store.CreateUser(cfg.AdminUsername, "", cfg.AdminPassword, true); err != nil {
				log.Fatal("Failed to create admin user:", err)
			}
		}
	}

	ntfy := notify.NewNtfy(cfg.NtfyEndpoint, cfg.NtfyAuth)
	if !ntfy.Enabled() {
		log.Println("NTFY_ENDPOINT not set, notifications disabled")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, models.Store, ntfy)
	if err := srv.Serve(ctx); err != nil {
		log.Fatal("Server failed:", err)
	}
}
