package config

const (
	EnvPrefix = "ideabank"

	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names shared with tests and deploy tooling.
const (
	EnvAppEnv     = "IDEABANK_APP_ENV"
	EnvPort       = "IDEABANK_APP_PORT"
	EnvLogLevel   = "IDEABANK_LOG_LEVEL"
	EnvDataDir    = "IDEABANK_STORE_DATA_DIR"
	EnvJWTSecret  = "IDEABANK_JWT_SECRET"
	EnvJWTIssuer  = "IDEABANK_JWT_ISSUER"
	EnvJWTExpMins = "IDEABANK_JWT_EXPIRATION_MINUTES"
)
