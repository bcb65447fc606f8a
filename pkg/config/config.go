package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Inventory     InventoryConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if cfg.FeatureFlags.UseSQLite {
		if cfg.DB.SQLitePath == "" {
			return nil, fmt.Errorf("%s is required when %s is enabled", EnvDBSQLitePath, EnvUseSQLite)
		}
		cfg.DB.Driver = DriverSQLite
		return &cfg, nil
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KITCHEN_APP_ENV" required:"true"`
	Port         string `envconfig:"KITCHEN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KITCHEN_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"KITCHEN_LOG_FORMAT"`
	LogWarnStack bool   `envconfig:"KITCHEN_LOG_WARN_STACK" default:"false"`

	// CORSAllowedOrigins is a comma separated list of browser origins.
	CORSAllowedOrigins []string `envconfig:"KITCHEN_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN        string `envconfig:"KITCHEN_DB_DSN"`
	Driver     string `envconfig:"KITCHEN_DB_DRIVER" default:"postgres"`
	SQLitePath string `envconfig:"KITCHEN_DB_SQLITE_PATH" default:"kitchen.db"`

	LegacyHost     string `envconfig:"KITCHEN_DB_HOST"`
	LegacyPort     int    `envconfig:"KITCHEN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KITCHEN_DB_USER"`
	LegacyPassword string `envconfig:"KITCHEN_DB_PASSWORD"`
	LegacyName     string `envconfig:"KITCHEN_DB_NAME"`
	LegacySSLMode  string `envconfig:"KITCHEN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KITCHEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KITCHEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KITCHEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KITCHEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KITCHEN_REDIS_URL"`
	Address      string        `envconfig:"KITCHEN_REDIS_ADDR"`
	Password     string        `envconfig:"KITCHEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"KITCHEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"KITCHEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KITCHEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KITCHEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KITCHEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KITCHEN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"KITCHEN_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"KITCHEN_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"KITCHEN_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"KITCHEN_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"KITCHEN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"KITCHEN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"KITCHEN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"KITCHEN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"KITCHEN_ARGON_KEY_LEN" default:"32"`
	MinLength        int `envconfig:"KITCHEN_PASSWORD_MIN_LENGTH" default:"8"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"KITCHEN_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"KITCHEN_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"KITCHEN_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"KITCHEN_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"KITCHEN_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"KITCHEN_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"KITCHEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"KITCHEN_AUTO_MIGRATE" default:"false"`
	Metrics     bool `envconfig:"KITCHEN_METRICS_ENABLED" default:"true"`
}

// InventoryConfig holds defaults applied when items are created without explicit values.
type InventoryConfig struct {
	DefaultShelfLifeDays int    `envconfig:"KITCHEN_INVENTORY_DEFAULT_SHELF_LIFE_DAYS" default:"7"`
	DefaultUnit          string `envconfig:"KITCHEN_INVENTORY_DEFAULT_UNIT" default:"count"`
}

// ShelfLife returns the default expiration offset for new items.
func (i InventoryConfig) ShelfLife() time.Duration {
	days := i.DefaultShelfLifeDays
	if days <= 0 {
		days = 7
	}
	return time.Duration(days) * 24 * time.Hour
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
