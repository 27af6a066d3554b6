package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, func(), error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, errs.Wrap(err, "failed to ping redis")
	}

	cleanup := func() {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close redis client", "error", err.Error())
		}
	}
	return client, cleanup, nil
}

// Key joins parts under the configured prefix, e.g. qrc:otp:+911234567890
func Key(prefix string, parts ...string) string {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "qrc"
	}
	return prefix + ":" + strings.Join(parts, ":")
}
