package config

const EnvPrefix = "KITCHEN"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv                 = "KITCHEN_APP_ENV"
	EnvPort                   = "KITCHEN_APP_PORT"
	EnvDBDSN                  = "KITCHEN_DB_DSN"
	EnvDBHost                 = "KITCHEN_DB_HOST"
	EnvDBUser                 = "KITCHEN_DB_USER"
	EnvDBName                 = "KITCHEN_DB_NAME"
	EnvDBPassword             = "KITCHEN_DB_PASSWORD"
	EnvDBSQLitePath           = "KITCHEN_DB_SQLITE_PATH"
	EnvUseSQLite              = "KITCHEN_USE_SQLITE"
	EnvRedisURL               = "KITCHEN_REDIS_URL"
	EnvJWTSecret              = "KITCHEN_JWT_SECRET"
	EnvJWTIssuer              = "KITCHEN_JWT_ISSUER"
	EnvJWTExpMins             = "KITCHEN_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "KITCHEN_REFRESH_TOKEN_TTL_MINUTES"
	EnvShelfLifeDays          = "KITCHEN_INVENTORY_DEFAULT_SHELF_LIFE_DAYS"
)

// legacyDBEnvVars are the host-part variables needed to build a DSN when KITCHEN_DB_DSN is unset.
var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)
