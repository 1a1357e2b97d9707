package config

import "time"

const (
	EnvDev   = "dev"
	EnvProd  = "prod"
	EnvLocal = "local"
)

var globalConfig *Config

func Global() *Config {
	return globalConfig
}

func SetGlobal(cfg *Config) {
	globalConfig = cfg
}

type Config struct {
	Env        string `env:"ENV" env-required:"true"`
	HTTP       HTTPConfig
	Postgres   PostgresConfig
	Identity   IdentityConfig
	Generation GenerationConfig
	Redis      RedisConfig
}

type HTTPConfig struct {
	Host               string        `env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port               string        `env:"HTTP_PORT" env-default:"5000"`
	ReadTimeout        time.Duration `env:"HTTP_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout       time.Duration `env:"HTTP_WRITE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout    time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" env-default:"5s"`
	MaxBodyBytes       int64         `env:"HTTP_MAX_BODY_BYTES" env-default:"1048576"`
	CORSAllowedOrigins []string      `env:"CORS_ALLOWED_ORIGINS" env-default:"*" env-separator:","`
}

type PostgresConfig struct {
	URL            string        `env:"POSTGRES_URL" env-required:"true"`
	MaxConns       int32         `env:"POSTGRES_MAX_CONNS" env-default:"10"`
	ConnectTimeout time.Duration `env:"POSTGRES_CONNECT_TIMEOUT" env-default:"10s"`
	PingTimeout    time.Duration `env:"POSTGRES_PING_TIMEOUT" env-default:"10s"`
	Migrate        bool          `env:"POSTGRES_MIGRATE" env-default:"false"`
}

type IdentityConfig struct {
	URL        string        `env:"IDENTITY_URL" env-required:"true"`
	ServiceKey string        `env:"IDENTITY_SERVICE_KEY" env-required:"true"`
	Timeout    time.Duration `env:"IDENTITY_TIMEOUT" env-default:"10s"`
	// When set, access tokens are verified locally instead of
	// being sent to the provider on every request.
	JWTSecret   string `env:"IDENTITY_JWT_SECRET"`
	JWTAudience string `env:"IDENTITY_JWT_AUDIENCE" env-default:"authenticated"`
}

type GenerationConfig struct {
	APIKey  string        `env:"GENERATION_API_KEY" env-required:"true"`
	URL     string        `env:"GENERATION_URL" env-default:"https://generativelanguage.googleapis.com"`
	Model   string        `env:"GENERATION_MODEL" env-default:"gemini-1.5-flash"`
	Timeout time.Duration `env:"GENERATION_TIMEOUT" env-default:"30s"`
}

// RedisConfig enables the shared identity cache. Redis stays optional:
// with an empty address every token goes to the provider.
type RedisConfig struct {
	Addr             string        `env:"REDIS_ADDR"`
	Password         string        `env:"REDIS_PASS"`
	DB               int           `env:"REDIS_DB" env-default:"0"`
	IdentityCacheTTL time.Duration `env:"REDIS_IDENTITY_CACHE_TTL" env-default:"60s"`
}
