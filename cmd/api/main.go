package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"palabra-api/internal/config"
	"palabra-api/internal/db"
	apihttp "palabra-api/internal/http"
	"palabra-api/internal/repository"
	"palabra-api/internal/service"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if err := db.Ping(ctx, pool); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}

	loginWindow := time.Duration(cfg.LoginWindowMinutes) * time.Minute
	limiter := service.NewLoginRateLimiter(loginWindow, cfg.LoginMaxAttempts)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, using memory limiter", zap.Error(err))
		} else {
			limiter = service.NewRedisLoginRateLimiter(redisClient, loginWindow, cfg.LoginMaxAttempts)
		}
		cancel()
	}

	userRepo := repository.NewPgUserRepository(pool)
	palabraRepo := repository.NewPgPalabraRepository(pool)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, 0)
	authSvc := service.NewAuthService(logger, userRepo, jwtSvc, limiter)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	userHandler := apihttp.NewUserHandler(logger, userRepo)
	palabraHandler := apihttp.NewPalabraHandler(logger, palabraRepo)

	guard := apihttp.GuardConfig{
		Prefixes: cfg.ProtectedPrefixes,
		LoginURL: cfg.LoginURL,
	}
	router := apihttp.NewRouter(logger, jwtSvc, guard, authHandler, userHandler, palabraHandler)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}
