package redis

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sunthewhat/certgen-api/common"
)

// InitRedis connects the optional verification cache. Accepts either a
// redis:// URL or a bare host:port.
func InitRedis() {
	if common.Config.Redis == nil || *common.Config.Redis == "" {
		slog.Info("Redis not configured, verification cache disabled")
		return
	}

	val := *common.Config.Redis

	var client *redis.Client
	if strings.HasPrefix(val, "redis://") || strings.HasPrefix(val, "rediss://") {
		opt, err := redis.ParseURL(val)
		if err != nil {
			slog.Warn("Invalid redis URL, verification cache disabled", "error", err)
			return
		}
		client = redis.NewClient(opt)
	} else {
		client = redis.NewClient(&redis.Options{Addr: val})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("Failed to ping redis, verification cache disabled", "error", err)
		_ = client.Close()
		return
	}

	slog.Info("Redis Connected!")

	common.Redis = client
}
