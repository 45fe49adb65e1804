package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the CV service.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	CORS      CORSConfig      `mapstructure:"cors"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
	Deps      DepsConfig      `mapstructure:"deps"`
}

type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// CORSConfig controls the cross-origin policy. The default — a single "*"
// entry — allows any origin and is meant for development; deployments are
// expected to override it with an explicit origin list.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AllowAll reports whether the origin list contains the wildcard entry.
func (c CORSConfig) AllowAll() bool {
	for _, o := range c.AllowedOrigins {
		if o == "*" {
			return true
		}
	}
	return false
}

type TelemetryConfig struct {
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool   `mapstructure:"otlp_insecure"`
	ServiceName  string `mapstructure:"service_name"`
	LogLevel     string `mapstructure:"log_level"`
	LogFile      string `mapstructure:"log_file"`
}

// DepsConfig holds connection settings for the platform dependencies probed
// by the deep health check. None of them is contacted by the liveness probe.
type DepsConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
	NATS     NATSConfig     `mapstructure:"nats"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"ssl_mode"`
	MaxConns int32  `mapstructure:"max_conns"`
}

type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type NATSConfig struct {
	URL string `mapstructure:"url"`
}

// Load reads config from the optional YAML file at path, then overlays
// environment variables with the FIGHTSIGHT_ prefix
// (e.g. FIGHTSIGHT_SERVER_PORT).
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetEnvPrefix("FIGHTSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)

	v.SetDefault("cors.allowed_origins", []string{"*"})

	v.SetDefault("telemetry.otlp_endpoint", "")
	v.SetDefault("telemetry.otlp_insecure", true)
	v.SetDefault("telemetry.service_name", "cv-service")
	v.SetDefault("telemetry.log_level", "info")
	v.SetDefault("telemetry.log_file", "")

	v.SetDefault("deps.postgres.host", "localhost")
	v.SetDefault("deps.postgres.port", 5432)
	v.SetDefault("deps.postgres.user", "fightsight")
	v.SetDefault("deps.postgres.db", "fightsight")
	v.SetDefault("deps.postgres.ssl_mode", "disable")
	v.SetDefault("deps.postgres.max_conns", 10)

	v.SetDefault("deps.redis.host", "localhost")
	v.SetDefault("deps.redis.port", 6379)
	v.SetDefault("deps.redis.db", 0)

	v.SetDefault("deps.nats.url", "nats://localhost:4222")
}
