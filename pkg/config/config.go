package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Spaces       SpacesConfig
	Media        MediaConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"KANDANG_APP_ENV" required:"true"`
	Port         string `envconfig:"KANDANG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"KANDANG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"KANDANG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"KANDANG_DB_DSN"`

	LegacyHost     string `envconfig:"KANDANG_DB_HOST"`
	LegacyPort     int    `envconfig:"KANDANG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"KANDANG_DB_USER"`
	LegacyPassword string `envconfig:"KANDANG_DB_PASSWORD"`
	LegacyName     string `envconfig:"KANDANG_DB_NAME"`
	LegacySSLMode  string `envconfig:"KANDANG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"KANDANG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"KANDANG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"KANDANG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"KANDANG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"KANDANG_REDIS_URL"`
	PoolSize     int           `envconfig:"KANDANG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"KANDANG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"KANDANG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"KANDANG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"KANDANG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"KANDANG_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"KANDANG_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"KANDANG_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type SpacesConfig struct {
	Endpoint       string `envconfig:"KANDANG_SPACES_ENDPOINT" required:"true"`
	Region         string `envconfig:"KANDANG_SPACES_REGION" default:"sgp1"`
	Bucket         string `envconfig:"KANDANG_SPACES_BUCKET" required:"true"`
	AccessKey      string `envconfig:"KANDANG_SPACES_ACCESS_KEY" required:"true"`
	SecretKey      string `envconfig:"KANDANG_SPACES_SECRET_KEY" required:"true"`
	ForcePathStyle bool   `envconfig:"KANDANG_SPACES_FORCE_PATH_STYLE" default:"false"`
	PublicBaseURL  string `envconfig:"KANDANG_SPACES_PUBLIC_BASE_URL"`
}

type MediaConfig struct {
	MaxUploadMB  int `envconfig:"KANDANG_MAX_UPLOAD_MB" default:"20"`
	MaxFileCount int `envconfig:"KANDANG_MAX_FILE_COUNT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"KANDANG_AUTO_MIGRATE" default:"false"`
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
