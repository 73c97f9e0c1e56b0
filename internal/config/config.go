package config

import (
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Config holds the service configuration parsed from environment variables.
type Config struct {
	MongoURI      string        `env:"MONGO_URI,required"`
	MongoDatabase string        `env:"MONGO_DATABASE"    envDefault:"auth"`
	JWTSecret     string        `env:"JWT_SECRET,required"`
	TokenIssuer   string        `env:"TOKEN_ISSUER"      envDefault:"user-auth-api"`
	TokenTTL      time.Duration `env:"TOKEN_TTL"         envDefault:"168h"`
	Port          int           `env:"PORT"              envDefault:"5000"`
	AppEnv        string        `env:"APP_ENV"           envDefault:"development"`
}

// Production reports whether the service runs in production mode. It controls
// the Secure flag on auth cookies and whether panic responses carry stack detail.
func (c *Config) Production() bool {
	return c.AppEnv == "production"
}

// New parses the service configuration from environment variables.
func New(logger *zerolog.Logger) *Config {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to parse environment variables")
	}

	return &cfg
}
