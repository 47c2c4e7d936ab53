package main

import (
	"fmt"
	"time"

	"smart-study-planner/configs"
	v1 "smart-study-planner/internal/api/v1"
	"smart-study-planner/internal/config"
	"smart-study-planner/internal/middleware"
	"smart-study-planner/internal/repository"
	myws "smart-study-planner/internal/websocket"
	"smart-study-planner/pkg/database"
	"smart-study-planner/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"go.uber.org/zap"
)

func main() {
	// Inisialisasi logger
	logger.InitLoggers()
	defer logger.SyncLoggers()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	// Load config
	cfg := configs.LoadConfig()
	config.SecretKey = []byte(cfg.JWTSecret)

	// Inisialisasi database
	// Koneksi dibuka sekali dan hanya ditutup saat proses berhenti;
	// handler tidak pernah menutupnya
	config.DB = database.ConnectDB(cfg)
	defer config.DB.Close()

	logger.SystemLogger.Info("Database Connected", zap.String("path", cfg.DBPath))

	// Buat tabel jika belum ada
	repository.CreateTableIfNotExists(config.DB)

	// Inisialisasi Redis (opsional, cache dimatikan jika tidak tersedia)
	config.RedisClient = database.ConnectRedis(cfg)
	if config.RedisClient != nil {
		defer config.RedisClient.Close()
	}

	app := fiber.New()

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
	}))

	// Hub websocket harus siap sebelum route /ws didaftarkan
	hub := myws.NewHub()
	go hub.Run()
	config.Hub = hub

	// Daftarkan route API v1
	v1.RegisterRoutes(app)

	logger.SystemLogger.Info("Application ready", zap.Int("port", cfg.Port))
	if err := app.Listen(fmt.Sprintf(":%d", cfg.Port)); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
	}
}
