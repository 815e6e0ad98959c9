package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	SourceFile   = "file"
	SourceDB     = "db"
	SourceSample = "sample"

	DriverPostgres = "postgres"
	DriverLibSQL   = "libsql"
)

// Config - application settings
type Config struct {
	DB       DBConfig       `mapstructure:"db"`
	App      AppConfig      `mapstructure:"app"`
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// DBConfig - relational store holding the job postings tables
type DBConfig struct {
	Driver   string `mapstructure:"driver"`
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	URL      string `mapstructure:"url"` // full DSN, overrides the fields above (required for libsql)
}

// AppConfig - where data comes from and where charts go
type AppConfig struct {
	Source     string `mapstructure:"source"`      // file, db or sample
	DataDir    string `mapstructure:"data_dir"`    // directory with <chart>.csv / <chart>.xlsx
	FiguresDir string `mapstructure:"figures_dir"` // PNG output
	LogsDir    string `mapstructure:"logs_dir"`
	Prune      bool   `mapstructure:"prune"` // delete PNGs in figures_dir that no chart owns
}

// TelegramConfig - optional publishing of rendered charts
type TelegramConfig struct {
	BotToken string `mapstructure:"bot_token"`
	ChatID   string `mapstructure:"chat_id"`
}

// RegisterFlags adds the flags LoadConfig understands to a command flag set
func RegisterFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "Path to config.yaml (default ./config.yaml if present)")
	flags.String("source", SourceFile, "Data source: file, db or sample (env: CHARTS_SOURCE)")
	flags.String("data-dir", ".", "Directory with input CSV/XLSX files (env: CHARTS_DATA_DIR)")
	flags.String("figures-dir", "figures", "Directory for rendered PNG charts (env: CHARTS_FIGURES_DIR)")
	flags.String("logs-dir", "logs", "Directory for app.log (env: CHARTS_LOGS_DIR)")
	flags.Bool("prune", false, "Remove PNG files in figures dir that belong to no chart (env: CHARTS_PRUNE)")
	flags.String("db-driver", DriverPostgres, "Database driver: postgres or libsql (env: DB_DRIVER)")
	flags.String("db-url", "", "Full database URL, overrides PG* settings (env: DATABASE_URL)")
}

var flagKeys = map[string]string{
	"source":      "app.source",
	"data-dir":    "app.data_dir",
	"figures-dir": "app.figures_dir",
	"logs-dir":    "app.logs_dir",
	"prune":       "app.prune",
	"db-driver":   "db.driver",
	"db-url":      "db.url",
}

// LoadConfig reads settings, later sources win:
// 1. defaults
// 2. config.yaml
// 3. .env file and environment
// 4. flags that were set explicitly
func LoadConfig(flags *pflag.FlagSet) (*Config, error) {
	// .env only fills variables that are not already set
	_ = godotenv.Load(".env")

	v := viper.New()
	setDefaults(v)

	configPath := ""
	if flags != nil {
		if f := flags.Lookup("config"); f != nil {
			configPath = f.Value.String()
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional
	}

	v.AutomaticEnv()
	setupEnvAliases(v)

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.App.Source = strings.ToLower(strings.TrimSpace(cfg.App.Source))
	cfg.DB.Driver = strings.ToLower(strings.TrimSpace(cfg.DB.Driver))

	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setupEnvAliases(v *viper.Viper) {
	// libpq variable names, so an existing psql setup works unchanged
	v.BindEnv("db.host", "PGHOST")
	v.BindEnv("db.port", "PGPORT")
	v.BindEnv("db.user", "PGUSER")
	v.BindEnv("db.password", "PGPASSWORD")
	v.BindEnv("db.name", "PGDATABASE")
	v.BindEnv("db.sslmode", "PGSSLMODE")
	v.BindEnv("db.driver", "DB_DRIVER")
	v.BindEnv("db.url", "DATABASE_URL")

	v.BindEnv("app.source", "CHARTS_SOURCE")
	v.BindEnv("app.data_dir", "CHARTS_DATA_DIR")
	v.BindEnv("app.figures_dir", "CHARTS_FIGURES_DIR")
	v.BindEnv("app.logs_dir", "CHARTS_LOGS_DIR")
	v.BindEnv("app.prune", "CHARTS_PRUNE")

	v.BindEnv("telegram.bot_token", "TELEGRAM_BOT_TOKEN")
	v.BindEnv("telegram.chat_id", "TELEGRAM_CHAT_ID")
}

// setDefaults mirrors libpq defaults for a local server
func setDefaults(v *viper.Viper) {
	v.SetDefault("db.driver", DriverPostgres)
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "postgres")
	v.SetDefault("db.password", "")
	v.SetDefault("db.name", "postgres")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.url", "")

	v.SetDefault("app.source", SourceFile)
	v.SetDefault("app.data_dir", ".")
	v.SetDefault("app.figures_dir", "figures")
	v.SetDefault("app.logs_dir", "logs")
	v.SetDefault("app.prune", false)

	v.SetDefault("telegram.bot_token", "")
	v.SetDefault("telegram.chat_id", "")
}

func validateConfig(cfg *Config) error {
	switch cfg.App.Source {
	case SourceFile, SourceDB, SourceSample:
	default:
		return fmt.Errorf("invalid app.source %q: expected file, db or sample", cfg.App.Source)
	}

	switch cfg.DB.Driver {
	case DriverPostgres:
		if cfg.DB.URL == "" && (cfg.DB.Port <= 0 || cfg.DB.Port > 65535) {
			return fmt.Errorf("invalid db.port %d", cfg.DB.Port)
		}
	case DriverLibSQL:
		if cfg.App.Source == SourceDB && cfg.DB.URL == "" {
			return fmt.Errorf("db.url (DATABASE_URL) is required for the libsql driver")
		}
	default:
		return fmt.Errorf("invalid db.driver %q: expected postgres or libsql", cfg.DB.Driver)
	}

	if cfg.App.FiguresDir == "" {
		return fmt.Errorf("app.figures_dir must not be empty")
	}
	return nil
}

// DSN returns the connection string for database/sql
func (c DBConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	u := url.URL{
		Scheme: "postgres",
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   "/" + c.Name,
	}
	if c.Password != "" {
		u.User = url.UserPassword(c.User, c.Password)
	} else {
		u.User = url.User(c.User)
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// Redacted is DSN with the password masked, for logs
func (c DBConfig) Redacted() string {
	dsn := c.DSN()
	u, err := url.Parse(dsn)
	if err != nil {
		return c.Driver
	}
	return u.Redacted()
}

// Validate checks the settings needed to publish charts
func (c TelegramConfig) Validate() error {
	if c.BotToken == "" {
		return fmt.Errorf("telegram.bot_token (TELEGRAM_BOT_TOKEN) is required to publish")
	}
	if c.ChatID == "" {
		return fmt.Errorf("telegram.chat_id (TELEGRAM_CHAT_ID) is required to publish")
	}
	if _, err := strconv.ParseInt(c.ChatID, 10, 64); err != nil {
		return fmt.Errorf("telegram.chat_id must be numeric: %w", err)
	}
	return nil
}
