package config

import (
	"fmt"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	Store    StoreConfig
	Password PasswordConfig
	JWT      JWTConfig
	Seed     SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"IDEABANK_APP_ENV" required:"true"`
	Port         string `envconfig:"IDEABANK_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"IDEABANK_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"IDEABANK_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type StoreConfig struct {
	DataDir string `envconfig:"IDEABANK_STORE_DATA_DIR" default:"data"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"IDEABANK_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"IDEABANK_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"IDEABANK_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"IDEABANK_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"IDEABANK_ARGON_KEY_LEN" default:"32"`

	// MinLength is enforced at password-change time only; account creation
	// stays permissive to match the historical data already in the store.
	MinLength int `envconfig:"IDEABANK_PASSWORD_MIN_LENGTH" default:"4"`
}

type JWTConfig struct {
	Secret            string `envconfig:"IDEABANK_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"IDEABANK_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"IDEABANK_JWT_EXPIRATION_MINUTES" required:"true"`
}

type SeedConfig struct {
	AdminUsername string `envconfig:"IDEABANK_SEED_ADMIN_USERNAME" default:"admin"`
	AdminPassword string `envconfig:"IDEABANK_SEED_ADMIN_PASSWORD" default:"12345"`
}
