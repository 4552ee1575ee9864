package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"gigboard/internal/auth"
	bid "gigboard/internal/bidService"
	"gigboard/internal/config"
	gig "gigboard/internal/gigService"
	hire "gigboard/internal/hireService"
	"gigboard/internal/media"
	"gigboard/internal/notify"
	"gigboard/internal/repository"
	"gigboard/internal/server"
	user "gigboard/internal/userService"
	"gigboard/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %v\n", err)
		os.Exit(1)
	}

	store, cleanup, err := openStore(cfg)
	if err != nil {
		utils.Fatal("Failed to open store", map[string]any{"error": err.Error()})
	}
	defer cleanup()

	hub := notify.NewHub()
	defer hub.Close()

	uploader, err := openUploader(cfg)
	if err != nil {
		utils.Fatal("Failed to init media uploader", map[string]any{"error": err.Error()})
	}

	tokens := auth.NewTokenManager(cfg.AccessTokenSecret, cfg.RefreshTokenSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	router := server.SetupRouter(server.Deps{
		Store:       store,
		Tokens:      tokens,
		Hub:         hub,
		Users:       user.NewUserService(store, tokens, uploader),
		Gigs:        gig.NewGigService(store),
		Bids:        bid.NewBidService(store),
		Hire:        hire.NewHireService(store, hub),
		CORSOrigins: cfg.CORSOrigins,
	})

	addr := ":" + cfg.Port
	utils.Info("Starting gigboard server", map[string]any{"addr": addr})
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// openStore connects to MongoDB, or falls back to the in-memory store when
// MONGODB_URI is unset (local development without a database).
func openStore(cfg config.Config) (repository.Store, func(), error) {
	if cfg.MongoURI == "" {
		utils.Warn("MONGODB_URI not set, using in-memory store", nil)
		return repository.NewMemoryStore(), func() {}, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		return nil, nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, nil, fmt.Errorf("ping mongodb: %w", err)
	}

	store := repository.NewMongoStore(client, cfg.MongoDatabase)
	if err := store.EnsureIndexes(ctx); err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = client.Disconnect(shutdownCtx)
	}
	utils.Info("Connected to MongoDB", map[string]any{"database": cfg.MongoDatabase})
	return store, cleanup, nil
}

// openUploader builds the Cloudinary uploader, or a stub that rejects
// uploads when CLOUDINARY_URL is unset.
func openUploader(cfg config.Config) (media.Uploader, error) {
	if cfg.CloudinaryURL == "" {
		utils.Warn("CLOUDINARY_URL not set, image uploads disabled", nil)
		return media.Disabled{}, nil
	}
	return media.NewCloudinaryUploader(cfg.CloudinaryURL)
}
