// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Printer   PrinterConfig   `mapstructure:"printer"`
	Discovery DiscoveryConfig `mapstructure:"discovery"`
	Security  SecurityConfig  `mapstructure:"security"`
	App       AppConfig       `mapstructure:"app"`
}

// ServerConfig represents HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	Output     string `mapstructure:"output"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// PrinterConfig represents the default receipt printer endpoint
type PrinterConfig struct {
	Host                string        `mapstructure:"host"`
	Port                int           `mapstructure:"port"`
	SendTimeout         time.Duration `mapstructure:"send_timeout"`
	ProbeTimeout        time.Duration `mapstructure:"probe_timeout"`
	HealthCheckInterval time.Duration `mapstructure:"health_check_interval"`
}

// DiscoveryConfig controls network scans for raw-socket printers
type DiscoveryConfig struct {
	NetworkRanges []string `mapstructure:"network_ranges"`
	Concurrency   int      `mapstructure:"concurrency"`
	MaxHosts      int      `mapstructure:"max_hosts"`
}

// SecurityConfig represents security configuration
type SecurityConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AppConfig represents application metadata
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	Debug       bool   `mapstructure:"debug"`
}

// Load loads configuration from an optional YAML file and environment
// variables. An empty path searches the working directory and ./config.
func Load(path string) (*Config, error) {
	v := viper.New()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variable support
	v.SetEnvPrefix("TICKET_SERVICE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8085")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "120s")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "json")
	v.SetDefault("logging.output", "stdout")
	v.SetDefault("logging.max_size", 100)
	v.SetDefault("logging.max_backups", 3)
	v.SetDefault("logging.max_age", 28)
	v.SetDefault("logging.compress", true)

	// Printer defaults
	v.SetDefault("printer.host", "")
	v.SetDefault("printer.port", 9100)
	v.SetDefault("printer.send_timeout", "4s")
	v.SetDefault("printer.probe_timeout", "1500ms")
	v.SetDefault("printer.health_check_interval", "0s")

	// Discovery defaults
	v.SetDefault("discovery.network_ranges", []string{})
	v.SetDefault("discovery.concurrency", 64)
	v.SetDefault("discovery.max_hosts", 1024)

	// Security defaults
	v.SetDefault("security.allowed_origins", []string{})

	// App defaults
	v.SetDefault("app.name", "ticket-service")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.debug", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Server.Port == "" {
		return fmt.Errorf("server.port is required")
	}
	if config.Printer.Port <= 0 || config.Printer.Port > 65535 {
		return fmt.Errorf("printer.port must be between 1 and 65535")
	}
	if config.Printer.SendTimeout <= 0 {
		return fmt.Errorf("printer.send_timeout must be positive")
	}
	if config.Printer.ProbeTimeout <= 0 {
		return fmt.Errorf("printer.probe_timeout must be positive")
	}
	if config.Printer.HealthCheckInterval < 0 {
		return fmt.Errorf("printer.health_check_interval must not be negative")
	}

	if config.Discovery.Concurrency <= 0 {
		return fmt.Errorf("discovery.concurrency must be positive")
	}
	if config.Discovery.MaxHosts <= 0 {
		return fmt.Errorf("discovery.max_hosts must be positive")
	}

	validEnvs := []string{"development", "staging", "production", "test"}
	if !slices.Contains(validEnvs, config.App.Environment) {
		return fmt.Errorf("app.environment must be one of: %v", validEnvs)
	}

	validLevels := []string{"debug", "info", "warn", "error", "fatal"}
	if !slices.Contains(validLevels, config.Logging.Level) {
		return fmt.Errorf("logging.level must be one of: %v", validLevels)
	}

	return nil
}

// GetServerAddr returns the server address
func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsProduction checks if the environment is production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// HasDefaultPrinter reports whether a printer host is configured
func (c *Config) HasDefaultPrinter() bool {
	return strings.TrimSpace(c.Printer.Host) != ""
}
