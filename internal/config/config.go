package config

import (
	"errors"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server   Server   `mapstructure:"server"`
	Database Database `mapstructure:"database"`
	Logger   Logger   `mapstructure:"logger"`
	Journal  Journal  `mapstructure:"journal"`
	Market   Market   `mapstructure:"market"`
	Alerts   Alerts   `mapstructure:"alerts"`
	News     News     `mapstructure:"news"`
}

// Server holds the configuration for the web server.
type Server struct {
	Port       int    `mapstructure:"port"`
	APIKey     string `mapstructure:"api_key"`
	CORSOrigin string `mapstructure:"cors_origin"`
}

// Database holds the configuration for the database.
type Database struct {
	DSN string `mapstructure:"dsn"`
}

// Logger holds the configuration for the logger.
type Logger struct {
	Level      string `mapstructure:"level"`
	Format     string `mapstructure:"format"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// Journal holds the rules applied to recorded trades.
type Journal struct {
	RiskPercents []float64 `mapstructure:"risk_percents"`
	// BreakEvenTolerance is the absolute P/L band classified as "Break Even".
	// Zero keeps classification exact.
	BreakEvenTolerance float64 `mapstructure:"break_even_tolerance"`
}

// Market holds the configuration for the public price API.
type Market struct {
	BaseURL        string  `mapstructure:"base_url"`
	RateLimit      float64 `mapstructure:"rate_limit"`
	RateLimitBurst int     `mapstructure:"rate_limit_burst"`
}

// Alerts holds the configuration for the price alert watcher.
type Alerts struct {
	PollInterval int    `mapstructure:"poll_interval"` // seconds
	WebhookURL   string `mapstructure:"webhook_url"`
	BotName      string `mapstructure:"bot_name"`
}

// News holds the headline sources shown on the news page.
type News struct {
	MaxItems int          `mapstructure:"max_items"`
	Sources  []NewsSource `mapstructure:"sources"`
}

// NewsSource describes one HTML page and the CSS selectors used to read it.
type NewsSource struct {
	Name          string `mapstructure:"name"`
	URL           string `mapstructure:"url"`
	ItemSelector  string `mapstructure:"item_selector"`
	TitleSelector string `mapstructure:"title_selector"`
	LinkSelector  string `mapstructure:"link_selector"`
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	// A missing .env is fine, the real environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config") // name of config file (without extension)
	v.SetConfigType("yml")    // or yaml, json

	// Allow environment variables to override config file
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	err = v.ReadInConfig()
	if err != nil {
		return
	}

	err = v.Unmarshal(&config)
	return
}

// Defaults returns the configuration used when no file is present.
func Defaults() Config {
	v := viper.New()
	setDefaults(v)

	var config Config
	_ = v.Unmarshal(&config)
	return config
}

// IsNotFound reports whether err from LoadConfig means no config file exists.
func IsNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("database.dsn", "journal.db")
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.max_size_mb", 50)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age_days", 28)
	v.SetDefault("journal.risk_percents", []float64{1, 1.5, 2})
	v.SetDefault("journal.break_even_tolerance", 0)
	v.SetDefault("market.base_url", "https://api.binance.com/api/v3")
	v.SetDefault("market.rate_limit", 10)     // requests per second
	v.SetDefault("market.rate_limit_burst", 5) // burst size
	v.SetDefault("alerts.poll_interval", 30)
	v.SetDefault("alerts.bot_name", "TradeJournal")
	v.SetDefault("news.max_items", 20)
}
