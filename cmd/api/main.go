package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"usedauction-backend/internal/auth"
	"usedauction-backend/internal/config"
	"usedauction-backend/internal/db"
	"usedauction-backend/internal/model"
	"usedauction-backend/internal/server"
	"usedauction-backend/internal/storage"
)

func main() {
	_ = godotenv.Load()

	log.SetFormatter(&log.JSONFormatter{})
	log.SetOutput(os.Stdout)

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("config load failed")
	}

	// Fails fast on a short signing key.
	tokens, err := auth.NewTokenProvider(cfg.JWTSecret, cfg.JWTExpiry)
	if err != nil {
		log.WithError(err).Fatal("token provider init failed")
	}

	conn, err := db.Connect(cfg)
	if err != nil {
		log.WithError(err).Fatal("db connect failed")
	}
	if err := conn.AutoMigrate(
		&model.User{},
		&model.Item{},
		&model.ItemImage{},
		&model.Bid{},
		&model.ChatRoom{},
		&model.ChatMessage{},
	); err != nil {
		log.WithError(err).Fatal("auto migrate failed")
	}

	uploader, err := storage.NewUploader(context.Background(), cfg.ImageBucket)
	if err != nil {
		log.WithError(err).Fatal("storage client init failed")
	}
	if !uploader.Enabled() {
		log.Info("image bucket not configured, storing profile images inline")
	}

	srv := server.New(conn, cfg, tokens, uploader)
	addr := ":" + cfg.Port
	log.WithField("addr", addr).Info("starting server")
	if err := srv.Start(addr); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
