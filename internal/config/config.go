package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendFile  = "file"
	BackendMongo = "mongo"
)

// Config is built once in main and handed to every constructor.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"dev"`
	Port   string `envconfig:"PORT" default:"8080"`
	TZName string `envconfig:"TZ_NAME"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"*"`

	Store struct {
		Backend  string `envconfig:"STORE_BACKEND" default:"file"`
		DataFile string `envconfig:"DATA_FILE" default:"data.json"`
		MongoURI string `envconfig:"MONGODB_URI"`
		DBName   string `envconfig:"DB_NAME" default:"feedback"`
	} `envconfig:""`

	Gemini struct {
		APIKey  string        `envconfig:"GEMINI_API_KEY"`
		Model   string        `envconfig:"GEMINI_MODEL" default:"gemini-2.5-flash"`
		Timeout time.Duration `envconfig:"GEMINI_TIMEOUT" default:"30s"`
	} `envconfig:""`

	Alerts struct {
		ResendAPIKey string `envconfig:"RESEND_API_KEY"`
		From         string `envconfig:"ALERT_EMAIL_FROM"`
		To           string `envconfig:"ALERT_EMAIL_TO"`
	} `envconfig:""`

	// GoogleAPIKey is the older variable name, honoured when GEMINI_API_KEY is unset.
	GoogleAPIKey string `envconfig:"GOOGLE_API_KEY"`
}

// Load reads .env (if any) and the process environment.
func Load() (Config, error) {
	// .env is optional; in production the variables are set directly.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = cfg.GoogleAPIKey
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendFile:
		if c.Store.DataFile == "" {
			return fmt.Errorf("config: DATA_FILE is required for the file backend")
		}
	case BackendMongo:
		if c.Store.MongoURI == "" {
			return fmt.Errorf("config: MONGODB_URI is required for the mongo backend")
		}
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.Store.Backend)
	}
	if c.Gemini.Timeout <= 0 {
		return fmt.Errorf("config: GEMINI_TIMEOUT must be positive")
	}
	return nil
}

// Location resolves TZ_NAME, falling back to the process local zone.
func (c Config) Location() (*time.Location, error) {
	if c.TZName == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TZName)
	if err != nil {
		return nil, fmt.Errorf("config: TZ_NAME: %w", err)
	}
	return loc, nil
}

// AlertsEnabled reports whether email alerts can be sent.
func (c Config) AlertsEnabled() bool {
	return c.Alerts.ResendAPIKey != "" && c.Alerts.From != "" && c.Alerts.To != ""
}
