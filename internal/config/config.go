package config

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	HTTPPort    string `envconfig:"HTTP_PORT" default:"8080"`
	PostgresDSN string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret   string `envconfig:"JWT_SECRET" required:"true"`

	AccessTokenTTL time.Duration `envconfig:"ACCESS_TOKEN_TTL" default:"15m"`

	ResumeUploadDir string `envconfig:"RESUME_UPLOAD_DIR" default:"uploads/resumes"`

	LoginMaxAttempts int           `envconfig:"LOGIN_MAX_ATTEMPTS" default:"5"`
	LoginLockout     time.Duration `envconfig:"LOGIN_LOCKOUT" default:"15m"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:""`

	DBMaxOpenConns int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	DBMaxIdleConns int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	DBConnMaxIdle  time.Duration `envconfig:"DB_CONN_MAX_IDLE" default:"5m"`
	DBConnMaxLife  time.Duration `envconfig:"DB_CONN_MAX_LIFE" default:"30m"`

	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT" default:"10s"`
}

func Load() (*Config, error) {
	_ = godotenv.Load()
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
