package otp

import (
	"context"
	"crypto/rand"
	"log/slog"
	"math/big"
	"strconv"
	"strings"
	"time"

	"qr-coupon-server/internal/infra/cache"
	"qr-coupon-server/internal/pkg/codehash"
	"qr-coupon-server/internal/pkg/config"
	"qr-coupon-server/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

const (
	MsgExpired         = "OTP expired or not found"
	MsgInvalid         = "Invalid OTP"
	MsgTooManyAttempts = "Too many attempts, request a new OTP"

	fieldHash     = "hash"
	fieldAttempts = "attempts"
)

var ErrOTPStore = errs.New("otp store unavailable")

// Result is the outcome of a validation; Message is shown to the consumer as is
type Result struct {
	Valid   bool
	Message string
}

type SMSSender interface {
	SendOTP(ctx context.Context, phone, code string) error
}

// Deletes the key only when it still holds the hash that was just verified.
// Two concurrent validations of the same code cannot both succeed.
var consumeScript = redis.NewScript(`
if redis.call("HGET", KEYS[1], "hash") == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Counts a failed attempt without resurrecting a key that expired meanwhile
var attemptScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 1 then
	return redis.call("HINCRBY", KEYS[1], "attempts", 1)
end
return -1
`)

type Service struct {
	client      *redis.Client
	sender      SMSSender
	prefix      string
	length      int
	ttl         time.Duration
	maxAttempts int
	staticCode  string
}

func NewService(client *redis.Client, sender SMSSender, redisCfg config.RedisConfig, cfg config.OTPConfig) *Service {
	length := cfg.Length
	if length <= 0 {
		length = 6
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = 5
	}
	return &Service{
		client:      client,
		sender:      sender,
		prefix:      redisCfg.Prefix,
		length:      length,
		ttl:         cfg.TTL,
		maxAttempts: maxAttempts,
		staticCode:  strings.TrimSpace(cfg.StaticCode),
	}
}

// Send replaces any outstanding code for the phone and resets its attempt counter
func (s *Service) Send(ctx context.Context, phone string) error {
	code := s.staticCode
	if code == "" {
		var err error
		if code, err = s.generate(); err != nil {
			return err
		}
	}

	hashed, err := codehash.Hash(code)
	if err != nil {
		return errs.Wrap(err, "failed to hash otp")
	}

	key := s.key(phone)
	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, key)
		pipe.HSet(ctx, key, fieldHash, hashed, fieldAttempts, 0)
		pipe.Expire(ctx, key, s.ttl)
		return nil
	})
	if err != nil {
		return errs.Mark(errs.Wrap(err, "failed to store otp"), ErrOTPStore)
	}

	if err := s.sender.SendOTP(ctx, phone, code); err != nil {
		return errs.Wrap(err, "failed to deliver otp")
	}
	return nil
}

func (s *Service) Validate(ctx context.Context, phone, code string) (Result, error) {
	key := s.key(phone)
	stored, err := s.client.HGetAll(ctx, key).Result()
	if err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "failed to read otp"), ErrOTPStore)
	}

	hashed := stored[fieldHash]
	if hashed == "" {
		return Result{Message: MsgExpired}, nil
	}

	attempts, _ := strconv.Atoi(stored[fieldAttempts])
	if attempts >= s.maxAttempts {
		s.burn(ctx, key)
		return Result{Message: MsgTooManyAttempts}, nil
	}

	if err := codehash.Compare(hashed, strings.TrimSpace(code)); err != nil {
		n, incrErr := attemptScript.Run(ctx, s.client, []string{key}).Int64()
		if incrErr != nil {
			return Result{}, errs.Mark(errs.Wrap(incrErr, "failed to count otp attempt"), ErrOTPStore)
		}
		if n < 0 {
			return Result{Message: MsgExpired}, nil
		}
		if n >= int64(s.maxAttempts) {
			s.burn(ctx, key)
			return Result{Message: MsgTooManyAttempts}, nil
		}
		return Result{Message: MsgInvalid}, nil
	}

	consumed, err := consumeScript.Run(ctx, s.client, []string{key}, hashed).Int64()
	if err != nil {
		return Result{}, errs.Mark(errs.Wrap(err, "failed to consume otp"), ErrOTPStore)
	}
	if consumed == 0 {
		return Result{Message: MsgExpired}, nil
	}
	return Result{Valid: true}, nil
}

func (s *Service) burn(ctx context.Context, key string) {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		slog.Warn("failed to burn otp", "error", err.Error())
	}
}

func (s *Service) key(phone string) string {
	return cache.Key(s.prefix, "otp", phone)
}

func (s *Service) generate() (string, error) {
	var sb strings.Builder
	sb.Grow(s.length)
	ten := big.NewInt(10)
	for range s.length {
		n, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", errs.Wrap(err, "failed to generate otp")
		}
		sb.WriteByte(byte('0' + n.Int64()))
	}
	return sb.String(), nil
}
