package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Settlement   SettlementConfig   `mapstructure:"settlement"`
	Compensation CompensationConfig `mapstructure:"compensation"`
	Report       ReportConfig       `mapstructure:"report"`
	Logger       LoggerConfig       `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	MigrationsDir   string        `mapstructure:"migrations_dir"`
}

// SettlementConfig holds settlement policy configuration
type SettlementConfig struct {
	AidValidityDays int `mapstructure:"aid_validity_days"`
	FollowUpDays    int `mapstructure:"follow_up_days"`
}

// CompensationConfig holds lawyer compensation policy configuration
type CompensationConfig struct {
	PerCaseRate      int64 `mapstructure:"per_case_rate"`
	FallbackAllCases bool  `mapstructure:"fallback_all_cases"`
}

// ReportConfig holds dashboard/report configuration
type ReportConfig struct {
	RecentPageSize int `mapstructure:"recent_page_size"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)

	viper.SetDefault("database.path", "data/backoffice.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", time.Hour)
	viper.SetDefault("database.migrations_dir", "migrations")

	viper.SetDefault("settlement.aid_validity_days", 30)
	viper.SetDefault("settlement.follow_up_days", 7)

	viper.SetDefault("compensation.per_case_rate", 2500)
	viper.SetDefault("compensation.fallback_all_cases", true)

	viper.SetDefault("report.recent_page_size", 10)

	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// Validate checks configuration consistency
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Settlement.AidValidityDays <= 0 {
		return fmt.Errorf("settlement aid_validity_days must be positive, got %d", c.Settlement.AidValidityDays)
	}
	if c.Settlement.FollowUpDays <= 0 {
		return fmt.Errorf("settlement follow_up_days must be positive, got %d", c.Settlement.FollowUpDays)
	}
	if c.Compensation.PerCaseRate <= 0 {
		return fmt.Errorf("compensation per_case_rate must be positive, got %d", c.Compensation.PerCaseRate)
	}
	if c.Report.RecentPageSize <= 0 {
		return fmt.Errorf("report recent_page_size must be positive, got %d", c.Report.RecentPageSize)
	}
	return nil
}
