package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "KOZMO"

type Config struct {
	Env      string         `mapstructure:"env"` // "dev" or "prod"
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Leads    LeadsConfig    `mapstructure:"leads"`
	Booking  BookingConfig  `mapstructure:"booking"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

func (c *Config) IsDev() bool {
	return c.Env == "dev"
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"` // "sqlite" or "postgres"
	Path         string `mapstructure:"path"`   // sqlite file
	DSN          string `mapstructure:"dsn"`    // postgres connection string
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

func (d DatabaseConfig) IsPostgres() bool {
	return d.Driver == "postgres"
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "console" or "json"
}

type LeadsConfig struct {
	SubmitTimeout  time.Duration `mapstructure:"submit_timeout"`
	AutoCloseDelay time.Duration `mapstructure:"auto_close_delay"`
	SurfaceTTL     time.Duration `mapstructure:"surface_ttl"`
	MaxSurfaces    int           `mapstructure:"max_surfaces"`
	RateLimit      float64       `mapstructure:"rate_limit"` // requests per second per client
	RateBurst      int           `mapstructure:"rate_burst"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	AdminToken     string        `mapstructure:"admin_token"`
}

type BookingConfig struct {
	CalUsername  string `mapstructure:"cal_username"`
	CalEventName string `mapstructure:"cal_event_name"`
	CalBaseURL   string `mapstructure:"cal_base_url"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// Load reads configuration from defaults, an optional .env file, an optional
// config.yaml in the working directory and KOZMO_* environment variables, in
// increasing order of priority.
func Load() (*Config, error) {
	return LoadFile("config.yaml")
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("cannot read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("cannot decode config: %w", err)
	}

	if cfg.Env != "dev" && cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "dev")
	v.SetDefault("server.addr", ":8080")

	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.path", "_workspace/db/kozmo.db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "")

	v.SetDefault("leads.submit_timeout", 12*time.Second)
	v.SetDefault("leads.auto_close_delay", 2*time.Second)
	v.SetDefault("leads.surface_ttl", 30*time.Minute)
	v.SetDefault("leads.max_surfaces", 10000)
	v.SetDefault("leads.rate_limit", 0.2)
	v.SetDefault("leads.rate_burst", 5)
	v.SetDefault("leads.allowed_origins", []string{})
	v.SetDefault("leads.admin_token", "")

	v.SetDefault("booking.cal_username", "digitransinc")
	v.SetDefault("booking.cal_event_name", "demo-kozmoai")
	v.SetDefault("booking.cal_base_url", "https://cal.com")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
}
