package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Canvas    CanvasConfig
	Database  DatabaseConfig
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
}

type ServerConfig struct {
	Port     string
	Mode     string
	Timezone string
}

// CanvasConfig Canvas LMS 上游接口配置
type CanvasConfig struct {
	BaseURL           string  `mapstructure:"base_url"`
	AccessToken       string  `mapstructure:"access_token"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds"`
	MaxConcurrent     int     `mapstructure:"max_concurrent"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second"`
}

func (c CanvasConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("CANVAS_CAL")
	viper.AutomaticEnv()

	// Canvas
	viper.BindEnv("canvas.base_url", "CANVAS_BASE_URL")
	viper.BindEnv("canvas.access_token", "CANVAS_ACCESS_TOKEN")

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")
	viper.BindEnv("server.timezone", "SERVER_TIMEZONE")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.Canvas.BaseURL == "" {
		return nil, fmt.Errorf("canvas.base_url is required")
	}
	if cfg.Canvas.AccessToken == "" {
		return nil, fmt.Errorf("canvas.access_token is required")
	}
	if cfg.Canvas.MaxConcurrent <= 0 {
		cfg.Canvas.MaxConcurrent = 8
	}
	if cfg.Canvas.RequestsPerSecond <= 0 {
		cfg.Canvas.RequestsPerSecond = 10
	}

	return &cfg, nil
}
