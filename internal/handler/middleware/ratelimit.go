package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"qr-coupon-server/internal/domain/consumer"
	"qr-coupon-server/internal/handler/httperr"
	"qr-coupon-server/internal/infra/cache"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/redis/go-redis/v9"
)

var ErrRateLimited = errs.New("rate limit exceeded")

// Fixed window counter; the window starts with the first hit
var windowScript = redis.NewScript(`
local n = redis.call("INCR", KEYS[1])
if n == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {n, redis.call("TTL", KEYS[1])}
`)

type RateLimiter struct {
	client      *redis.Client
	prefix      string
	window      time.Duration
	maxRequests int
	countryCode string
}

func NewRateLimiter(client *redis.Client, redisCfg config.RedisConfig, cfg config.RateLimitConfig, otpCfg config.OTPConfig) *RateLimiter {
	window := time.Duration(cfg.OTPWindowSeconds) * time.Second
	if window <= 0 {
		window = 10 * time.Minute
	}
	maxRequests := cfg.OTPMaxRequests
	if maxRequests <= 0 {
		maxRequests = 3
	}
	return &RateLimiter{
		client:      client,
		prefix:      redisCfg.Prefix,
		window:      window,
		maxRequests: maxRequests,
		countryCode: otpCfg.DefaultCountryCode,
	}
}

type otpPhoneBody struct {
	Phone string `json:"phone"`
}

// LimitOTPSend counts requests per phone and client IP. The body is cached so the handler can bind it again.
func (r *RateLimiter) LimitOTPSend() gin.HandlerFunc {
	return func(c *gin.Context) {
		var body otpPhoneBody
		if err := c.ShouldBindBodyWith(&body, binding.JSON); err != nil {
			// the handler reports malformed bodies
			c.Next()
			return
		}

		phone := strings.TrimSpace(body.Phone)
		if p, err := consumer.NewPhone(phone, r.countryCode); err == nil {
			phone = p.String()
		}
		key := cache.Key(r.prefix, "ratelimit", "otp", phone, c.ClientIP())

		count, ttl, err := r.hit(c.Request.Context(), key)
		if err != nil {
			slog.Warn("rate limiter unavailable, allowing request", "error", err.Error())
			c.Next()
			return
		}
		if count > int64(r.maxRequests) {
			c.Header("Retry-After", strconv.FormatInt(ttl, 10))
			httperr.AbortWithError(c, http.StatusTooManyRequests, ErrRateLimited,
				"Too many OTP requests, please try again later", "rate_limited", nil)
			return
		}
		c.Next()
	}
}

func (r *RateLimiter) hit(ctx context.Context, key string) (count, ttl int64, err error) {
	res, err := windowScript.Run(ctx, r.client, []string{key}, int64(r.window/time.Second)).Int64Slice()
	if err != nil {
		return 0, 0, errs.Wrap(err, "rate limit script failed")
	}
	if len(res) != 2 {
		return 0, 0, errs.Newf("unexpected rate limit reply: %v", res)
	}
	return res[0], res[1], nil
}
