package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	AI       AIConfig       `mapstructure:"ai"`
	Email    EmailConfig    `mapstructure:"email"`
	Events   EventsConfig   `mapstructure:"events"`
	Log      LogConfig      `mapstructure:"log"`
}

// ServerConfig HTTP server configuration
type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"`
	LoginRateLimit  int           `mapstructure:"login_rate_limit"`
	LoginRateWindow time.Duration `mapstructure:"login_rate_window"`
}

// DatabaseConfig database configuration. DSN, when set, wins over the discrete fields.
type DatabaseConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	Host         string `mapstructure:"host"`
	Port         string `mapstructure:"port"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	DBName       string `mapstructure:"dbname"`
	Charset      string `mapstructure:"charset"`
	SSLMode      string `mapstructure:"sslmode"`
	MaxIdleConns int    `mapstructure:"max_idle_conns"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

// JWTConfig JWT configuration
type JWTConfig struct {
	Secret      string        `mapstructure:"secret"`
	ExpireHours int           `mapstructure:"expire_hours"`
	ExpireTime  time.Duration `mapstructure:"-"`
}

// AIConfig analyzer configuration. An empty APIKey disables AI analysis.
type AIConfig struct {
	Provider string        `mapstructure:"provider"` // gemini | openai
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether an analyzer credential is present.
func (c AIConfig) Enabled() bool {
	return strings.TrimSpace(c.APIKey) != ""
}

// EmailConfig SMTP configuration
type EmailConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

// EventsConfig AMQP publisher configuration
type EventsConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	URL      string `mapstructure:"url"`
	Exchange string `mapstructure:"exchange"`
}

// LogConfig logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

// ErrMissingJWTSecret is returned when no signing secret was configured.
var ErrMissingJWTSecret = errors.New("jwt.secret is required (set LEDGER_JWT_SECRET or JWT_SECRET)")

var (
	// GlobalConfig is the loaded configuration, read-only after startup.
	GlobalConfig *Config
)

// envAliases binds conventional variable names next to the LEDGER_ prefixed ones.
var envAliases = map[string][]string{
	"jwt.secret":   {"LEDGER_JWT_SECRET", "JWT_SECRET"},
	"database.dsn": {"LEDGER_DATABASE_DSN", "DATABASE_URL"},
	"server.port":  {"LEDGER_SERVER_PORT", "PORT"},
	"ai.api_key":   {"LEDGER_AI_API_KEY", "GEMINI_API_KEY", "AI_API_KEY"},
}

// LoadConfig loads configuration.
// Priority: environment > external config file > embedded defaults.
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("read embedded config: %w", err)
	}

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			slog.Warn("cannot read config file", "path", configPath, "error", err)
		} else {
			slog.Info("merged config file", "path", configPath)
		}
	} else {
		external := viper.New()
		external.SetConfigName("config")
		external.SetConfigType("yaml")
		external.AddConfigPath(".")
		external.AddConfigPath("./config")
		external.AddConfigPath("/etc/pocketledger")
		external.AddConfigPath("$HOME/.pocketledger")

		if err := external.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(external.AllSettings()); err != nil {
				slog.Warn("cannot merge config file", "path", external.ConfigFileUsed(), "error", err)
			} else {
				slog.Info("merged config file", "path", external.ConfigFileUsed())
			}
		}
	}

	v.SetEnvPrefix("LEDGER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		if err := v.BindEnv(append([]string{key}, names...)...); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if cfg.JWT.ExpireHours <= 0 {
		cfg.JWT.ExpireHours = 5
	}
	cfg.JWT.ExpireTime = time.Duration(cfg.JWT.ExpireHours) * time.Hour
	cfg.Server.Port = NormalizePort(cfg.Server.Port)
	if cfg.Server.LoginRateLimit <= 0 {
		cfg.Server.LoginRateLimit = 10
	}
	if cfg.Server.LoginRateWindow <= 0 {
		cfg.Server.LoginRateWindow = time.Minute
	}

	if strings.TrimSpace(cfg.JWT.Secret) == "" {
		return nil, ErrMissingJWTSecret
	}

	GlobalConfig = &cfg

	return &cfg, nil
}

// NormalizePort turns "8080" into ":8080"; values already carrying a colon are kept.
func NormalizePort(port string) string {
	port = strings.TrimSpace(port)
	if port == "" {
		return ":5000"
	}
	if !strings.Contains(port, ":") {
		port = ":" + port
	}
	return port
}

// SafeErrorMessage hides internal error details from clients in release mode.
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}

// PrintConfig logs the active configuration without secrets.
func PrintConfig(cfg *Config) {
	if cfg == nil {
		return
	}
	slog.Info("active config",
		"port", cfg.Server.Port,
		"mode", cfg.Server.Mode,
		"db_driver", cfg.Database.Driver,
		"db", fmt.Sprintf("%s@%s:%s/%s", cfg.Database.Username, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName),
		"ai_enabled", cfg.AI.Enabled(),
		"ai_provider", cfg.AI.Provider,
		"email_enabled", cfg.Email.Enabled,
		"events_enabled", cfg.Events.Enabled,
	)
}
