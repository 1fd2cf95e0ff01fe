package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	JWTTTL    time.Duration `env:"JWT_TTL,    default=24h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	Mongo MongoConfig
	Redis RedisConfig
	Auth  AuthConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=medicinal_plants"`
}

// RedisConfig is optional: an empty Addr disables Redis, which drops the
// forgot-password throttle and forces the in-memory OTP backend.
type RedisConfig struct {
	Addr string `env:"REDIS_ADDR"`
	DB   int    `env:"REDIS_DB, default=0"`
}

type AuthConfig struct {
	// PasswordMinLength is the policy floor for new passwords. The legacy
	// system used 6.
	PasswordMinLength int `env:"PASSWORD_MIN_LENGTH, default=6"`
	// PBKDF2Iterations must stay constant for the lifetime of stored digests.
	PBKDF2Iterations int           `env:"PBKDF2_ITERATIONS,   default=210000"`
	OTPTTL           time.Duration `env:"OTP_TTL,             default=10m"`
	// OTPBackend selects the pending-recovery store: "memory" or "redis".
	OTPBackend        string        `env:"OTP_BACKEND,         default=memory"`
	OTPResendInterval time.Duration `env:"OTP_RESEND_INTERVAL, default=1m"`
	AuditWorkers      int           `env:"AUDIT_WORKERS,       default=4"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
