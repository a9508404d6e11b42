package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/spf13/viper"

	"onboarding/backend/internal/errdefs"
)

// Recognized environment profiles. A profile selects which env file and
// which database the workflow targets.
const (
	ProfileLocal = "local"
	ProfileDev   = "dev"
	ProfileProd  = "prod"
)

// DefaultProfile is used when no profile argument is given.
const DefaultProfile = ProfileLocal

// DefaultDir is the conventional directory of per-profile env files.
const DefaultDir = "env"

// Profiles returns the closed set of recognized profile names.
func Profiles() []string {
	return []string{ProfileLocal, ProfileDev, ProfileProd}
}

// Recognized reports whether name is a known profile.
func Recognized(name string) bool {
	switch name {
	case ProfileLocal, ProfileDev, ProfileProd:
		return true
	}
	return false
}

// Config holds the configuration for one invocation. It is constructed once
// by Load and passed explicitly to every stage; the loader never mutates the
// process environment.
type Config struct {
	Profile string `mapstructure:"-"`

	AppName    string `mapstructure:"app_name"`
	AppVersion string `mapstructure:"app_version"`
	Debug      bool   `mapstructure:"debug"`
	LogLevel   string `mapstructure:"log_level"`

	// DatabaseURL, when set, wins over the discrete DB_* fields.
	DatabaseURL string `mapstructure:"database_url"`
	DBHost      string `mapstructure:"db_host"`
	DBPort      int    `mapstructure:"db_port"`
	DBUser      string `mapstructure:"db_user"`
	DBPassword  string `mapstructure:"db_password"`
	DBName      string `mapstructure:"db_name"`
	DBSSLMode   string `mapstructure:"db_sslmode"`

	ServerHost string `mapstructure:"server_host"`
	ServerPort int    `mapstructure:"server_port"`
}

// Load resolves and parses the env file for profile from the conventional
// env/ directory.
func Load(profile string) (*Config, error) {
	return LoadDir(profile, DefaultDir)
}

// LoadDir resolves dir/<profile>.env, validates the profile and the file,
// and builds a Config. Optional overlays (dir/<profile>.override.env, then
// ./.env) are merged when present and skipped silently when absent. Real
// environment variables override file values.
func LoadDir(profile, dir string) (*Config, error) {
	if !Recognized(profile) {
		return nil, errdefs.Usagef(
			"unknown profile %q (expected one of: %s)",
			profile, strings.Join(Profiles(), ", "),
		)
	}

	path := filepath.Join(dir, profile+".env")
	if _, err := os.Stat(path); err != nil {
		return nil, &errdefs.ConfigurationError{Path: path}
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	if err := v.ReadInConfig(); err != nil {
		return nil, &errdefs.ConfigurationError{Path: path, Err: err}
	}

	// Best-effort overlays, probed in order. Missing files are fine.
	for _, overlay := range []string{
		filepath.Join(dir, profile+".override.env"),
		".env",
	} {
		if _, err := os.Stat(overlay); err != nil {
			continue
		}
		v.SetConfigFile(overlay)
		if err := v.MergeInConfig(); err != nil {
			return nil, &errdefs.ConfigurationError{Path: overlay, Err: err}
		}
	}

	v.SetDefault("app_name", "Onboarding Backend")
	v.SetDefault("app_version", "0.1.0")
	v.SetDefault("log_level", "INFO")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", 5432)
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_sslmode", "disable")
	v.SetDefault("server_host", "0.0.0.0")
	v.SetDefault("server_port", 8000)
	v.AutomaticEnv()
	// AutomaticEnv only covers keys viper already knows about; database_url
	// has no default, so bind it explicitly.
	v.MustBindEnv("database_url")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, &errdefs.ConfigurationError{Path: path, Err: err}
	}
	cfg.Profile = profile
	if cfg.DatabaseURL != "" {
		// DBName must name the same database the URL connects to, or the
		// provisioning and migration stages would disagree about the target.
		parsed, err := pgconn.ParseConfig(cfg.DatabaseURL)
		if err != nil {
			return nil, &errdefs.ConfigurationError{Path: path, Err: fmt.Errorf("invalid DATABASE_URL: %w", err)}
		}
		if parsed.Database != "" {
			cfg.DBName = parsed.Database
		}
	}
	if cfg.DBName == "" {
		cfg.DBName = "onboarding_" + profile
	}

	return &cfg, nil
}

// ConnString returns the connection string for the profile's database.
func (c *Config) ConnString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.connString(c.DBName)
}

func (c *Config) connString(dbname string) string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, dbname, c.DBSSLMode,
	)
}

// ServerAddr returns the host:port the HTTP server binds to.
func (c *Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// MaskedConnString returns the connection string with credentials hidden,
// safe for log output.
func (c *Config) MaskedConnString() string {
	return maskConnString(c.ConnString())
}

// maskConnString hides everything before an '@' in URL-style strings and the
// password value in keyword/value strings.
func maskConnString(s string) string {
	if i := strings.LastIndex(s, "@"); i >= 0 {
		if j := strings.Index(s, "://"); j >= 0 {
			return s[:j+3] + "****" + s[i:]
		}
		return "****" + s[i:]
	}
	parts := strings.Fields(s)
	for i, p := range parts {
		if strings.HasPrefix(p, "password=") {
			parts[i] = "password=****"
		}
	}
	return strings.Join(parts, " ")
}
