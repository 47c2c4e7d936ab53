package database

import (
	"fmt"

	"smart-study-planner/configs"
	"smart-study-planner/internal/config"
	"smart-study-planner/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// ConnectRedis membuka koneksi Redis untuk cache.
// Redis bersifat opsional: jika tidak tersedia, handler membaca
// langsung dari database, jadi kegagalan di sini tidak fatal.
func ConnectRedis(cfg configs.Config) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password: "",
		DB:       0,
	})
	if err := client.Ping(config.Ctx).Err(); err != nil {
		logger.SystemLogger.Warn("Redis unavailable, cache disabled", zap.Error(err))
		return nil
	}
	return client
}
