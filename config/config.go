package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Drivers de persistência suportados.
const (
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
)

// Config armazena todas as configurações do catálogo.
type Config struct {
	// Geral
	Port         string `envconfig:"PORT" default:"3000"`
	Environment  string `envconfig:"ENV" default:"development"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	AllowOrigins string `envconfig:"ALLOW_ORIGINS" default:"http://localhost:4200"`
	SentryDSN    string `envconfig:"SENTRY_DSN"`

	// Persistência
	StoreDriver   string        `envconfig:"STORE_DRIVER" default:"mongo"`
	MongoURI      string        `envconfig:"MONGO_URI" default:"mongodb://localhost:27017"`
	MongoDatabase string        `envconfig:"MONGO_DATABASE" default:"cinecatalog"`
	DatabaseURL   string        `envconfig:"DATABASE_URL"`
	DBTimeout     time.Duration `envconfig:"DB_TIMEOUT" default:"10s"` // 0 desliga o limite

	// Cache (Redis). Vazio: sessões ficam no registro do usuário.
	RedisAddr string `envconfig:"REDIS_ADDR"`

	// Segurança
	TokenSecret string        `envconfig:"TOKEN_SECRET" required:"true"`
	SessionTTL  time.Duration `envconfig:"SESSION_TTL" default:"0"` // 0: sessões não expiram

	// Rate Limiting do /login
	RateLimitMaxRequests int           `envconfig:"RATE_LIMIT_MAX_REQUESTS" default:"20"`
	RateLimitPeriod      time.Duration `envconfig:"RATE_LIMIT_PERIOD" default:"1m"`
}

// LoadConfig carrega o .env (se existir) e depois as variáveis de ambiente.
func LoadConfig() (*Config, error) {
	// O .env é opcional: em container as variáveis vêm do ambiente.
	_ = godotenv.Load()

	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("load config error: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load config error: %w", err)
	}

	return cfg, nil
}

// Validate confere combinações que o envconfig não consegue expressar.
func (c *Config) Validate() error {
	switch c.StoreDriver {
	case DriverMongo:
		if c.MongoURI == "" {
			return fmt.Errorf("MONGO_URI must be set when STORE_DRIVER=%s", DriverMongo)
		}
	case DriverPostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL must be set when STORE_DRIVER=%s", DriverPostgres)
		}
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q", c.StoreDriver)
	}

	if c.TokenSecret == "" {
		return fmt.Errorf("TOKEN_SECRET must not be empty")
	}

	if c.SessionTTL < 0 || c.DBTimeout < 0 {
		return fmt.Errorf("SESSION_TTL and DB_TIMEOUT must not be negative")
	}
	return nil
}

// Origins devolve ALLOW_ORIGINS separado por vírgula.
func (c *Config) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}
