package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server    ServerConfig
	DB        DBConfig
	CORS      CORSConfig
	Log       LogConfig
	JWT       JWTConfig
	Redis     RedisConfig
	OTP       OTPConfig
	Coupon    CouponConfig
	QRBatch   QRBatchConfig
	Storage   StorageConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port          string `envconfig:"PORT" required:"true"`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"Asia/Kolkata"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Kolkata"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"19800"` // 5.5*60*60
	// optional rotating file, stdout only when empty
	File       string `envconfig:"LOG_FILE"`
	MaxSizeMB  int    `envconfig:"LOG_MAX_SIZE_MB" default:"100"`
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" default:"7"`
	MaxAgeDays int    `envconfig:"LOG_MAX_AGE_DAYS" default:"30"`
}

// Tokens are minted by the identity provider; this service only verifies them
type JWTConfig struct {
	Secret     string `envconfig:"JWT_SECRET" required:"true"`
	CookieName string `envconfig:"JWT_COOKIE_NAME" default:"access_token"`
}

type RedisConfig struct {
	Addr     string `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
	Prefix   string `envconfig:"REDIS_PREFIX" default:"qrc"`
}

type OTPConfig struct {
	Length             int           `envconfig:"OTP_LENGTH" default:"6"`
	TTL                time.Duration `envconfig:"OTP_TTL" default:"5m"`
	MaxAttempts        int           `envconfig:"OTP_MAX_ATTEMPTS" default:"5"`
	DefaultCountryCode string        `envconfig:"OTP_DEFAULT_COUNTRY_CODE" default:"91"`
	// development only; never set in production
	StaticCode string `envconfig:"OTP_STATIC_CODE"`
}

type CouponConfig struct {
	CodePrefix      string `envconfig:"COUPON_CODE_PREFIX" default:"AQUA"`
	CodeMaxAttempts int    `envconfig:"COUPON_CODE_MAX_ATTEMPTS" default:"5"`
}

type QRBatchConfig struct {
	MaxQuantity int           `envconfig:"QR_BATCH_MAX_QUANTITY" default:"50000"`
	ChunkSize   int           `envconfig:"QR_BATCH_CHUNK_SIZE" default:"1000"`
	Concurrency int           `envconfig:"QR_BATCH_CONCURRENCY" default:"2"`
	StatusTTL   time.Duration `envconfig:"QR_BATCH_STATUS_TTL" default:"168h"`
}

type StorageConfig struct {
	Bucket    string        `envconfig:"STORAGE_BUCKET" default:"qr-batches"`
	Region    string        `envconfig:"STORAGE_REGION" default:"ap-south-1"`
	Endpoint  string        `envconfig:"STORAGE_ENDPOINT"`
	AccessKey string        `envconfig:"STORAGE_ACCESS_KEY"`
	SecretKey string        `envconfig:"STORAGE_SECRET_KEY"`
	URLTTL    time.Duration `envconfig:"STORAGE_URL_TTL" default:"24h"`
}

type RateLimitConfig struct {
	OTPWindowSeconds int `envconfig:"RATE_LIMIT_OTP_WINDOW_SECONDS" default:"600"`
	OTPMaxRequests   int `envconfig:"RATE_LIMIT_OTP_MAX_REQUESTS" default:"3"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:          "8889", // Test port
			PublicBaseURL: "http://localhost:3000",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "Asia/Kolkata",
			MaxConns: 10,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Kolkata",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 19800,
		},
		JWT: JWTConfig{
			Secret:     "test-secret",
			CookieName: "access_token",
		},
		Redis: RedisConfig{
			Addr:   "localhost:16379",
			Prefix: "qrc-test",
		},
		OTP: OTPConfig{
			Length:             6,
			TTL:                5 * time.Minute,
			MaxAttempts:        5,
			DefaultCountryCode: "91",
		},
		Coupon: CouponConfig{
			CodePrefix:      "AQUA",
			CodeMaxAttempts: 5,
		},
		QRBatch: QRBatchConfig{
			MaxQuantity: 1000,
			ChunkSize:   100,
			Concurrency: 1,
			StatusTTL:   time.Hour,
		},
		Storage: StorageConfig{
			Bucket: "qr-batches-test",
			Region: "ap-south-1",
			URLTTL: time.Hour,
		},
		RateLimit: RateLimitConfig{
			OTPWindowSeconds: 600,
			OTPMaxRequests:   3,
		},
	}
}
