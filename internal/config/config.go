package config

import (
	"sync/atomic"
	"time"

	"github.com/kimjbstar/korea-public-village-forecast/internal/grid"
)

var configValue atomic.Value

func GetConfig() *Config {
	cfg, ok := configValue.Load().(*Config)
	if !ok {
		return NewDefaultConfig()
	}
	return cfg
}

func SetConfig(cfg *Config) {
	configValue.Store(cfg)
}

type Config struct {
	Version     string          `mapstructure:"version"`
	Environment string          `mapstructure:"environment"`
	Server      ServerConfig    `mapstructure:"server"`
	Forecast    ForecastConfig  `mapstructure:"forecast"`
	Logging     LoggingConfig   `mapstructure:"logging"`
	Telemetry   TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port         int    `mapstructure:"port"`
	Host         string `mapstructure:"host"`
	ReadTimeout  int    `mapstructure:"read_timeout"`
	WriteTimeout int    `mapstructure:"write_timeout"`
	IdleTimeout  int    `mapstructure:"idle_timeout"`
}

// ForecastConfig is the immutable client configuration shared by the
// forecast client and the grid projection.
type ForecastConfig struct {
	APIKey     string          `mapstructure:"api_key"`
	BaseURL    string          `mapstructure:"base_url"`
	TimeoutMs  int             `mapstructure:"timeout_ms"`
	ShowOrigin bool            `mapstructure:"show_origin"`
	Projection grid.Projection `mapstructure:"projection"`
}

// Timeout converts TimeoutMs, falling back to the 2s default for
// non-positive values.
func (c ForecastConfig) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return DefaultForecastTimeout
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	OutputPath string `mapstructure:"output_path"`
}

type TelemetryConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

const (
	DefaultForecastBaseURL = "http://apis.data.go.kr/1360000/VilageFcstInfoService"
	DefaultForecastTimeout = 2000 * time.Millisecond
)

func NewDefaultConfig() *Config {
	return &Config{
		Version:     "1.0.0",
		Environment: "development",
		Server: ServerConfig{
			Port:         8080,
			Host:         "0.0.0.0",
			ReadTimeout:  30,
			WriteTimeout: 30,
			IdleTimeout:  60,
		},
		Forecast: ForecastConfig{
			APIKey:     "",
			BaseURL:    DefaultForecastBaseURL,
			TimeoutMs:  int(DefaultForecastTimeout / time.Millisecond),
			ShowOrigin: false,
			Projection: grid.KMA(),
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "",
		},
		Telemetry: TelemetryConfig{
			Enabled:     false,
			Endpoint:    "tempo:4317",
			ServiceName: "village-forecast",
		},
	}
}
