// Command lemonchessd runs the lemon-chess HTTP service described in
// internal/httpapi: registration, rooms, session storage, move submission
// and board/history rendering.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strconv"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/Zitronenjoghurt/lemon-chess/internal/httpapi"
	"github.com/Zitronenjoghurt/lemon-chess/internal/store"
)

func main() {
	addr := flag.String("addr", envOr("LEMONCHESS_ADDR", ":8080"), "HTTP listen address")
	mongoURI := flag.String("mongo-uri", os.Getenv("LEMONCHESS_MONGO_URI"), "MongoDB connection string; empty uses an in-process store")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer logger.Sync()

	cfg := httpapi.Config{
		ListenAddr:      *addr,
		MongoURI:        *mongoURI,
		JWTSigningKey:   []byte(envOr("LEMONCHESS_JWT_KEY", "development-key-change-me")),
		TokenTTL:        envDuration("LEMONCHESS_TOKEN_TTL", 24*time.Hour),
		RatePerSecond:   envFloat("LEMONCHESS_RATE_PER_SECOND", 5),
		RateBurst:       envInt("LEMONCHESS_RATE_BURST", 10),
		AISearchTimeout: envDuration("LEMONCHESS_AI_TIMEOUT", 5*time.Second),
	}

	var backing store.Store
	if cfg.MongoURI != "" {
		backing, err = connectMongo(cfg.MongoURI)
		if err != nil {
			logger.Fatal("failed to connect to mongo", zap.Error(err))
		}
	}

	srv := httpapi.NewServer(cfg, backing, logger)
	if err := srv.Run(); err != nil {
		logger.Fatal("server exited", zap.Error(err))
	}
}

func connectMongo(uri string) (store.Store, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return nil, err
	}
	return store.NewMongo(client.Database("lemonchess")), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
