package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	DB      DBConfig      `mapstructure:"db"`
	Zone    ZoneConfig    `mapstructure:"zone"`
	Session SessionConfig `mapstructure:"session"`
	Cookie  CookieConfig  `mapstructure:"cookie"`
	CORS    CORSConfig    `mapstructure:"cors"`
	Auth    AuthConfig    `mapstructure:"auth"`
	Storage StorageConfig `mapstructure:"storage"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Log     LogConfig     `mapstructure:"log"`
	Env     string        `mapstructure:"env"` // "production" tightens defaults
}

// ServerConfig holds server-specific configuration.
type ServerConfig struct {
	Port string `mapstructure:"port"`
}

// DBConfig holds database-specific configuration. An empty DSN means the
// server runs without a database and persists only to the local file mirror.
type DBConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	Table  string `mapstructure:"table"`
}

// ZoneConfig holds the default zone key used when a request omits one.
type ZoneConfig struct {
	Key string `mapstructure:"key"`
}

// SessionConfig holds the token signing secret and lifetime.
type SessionConfig struct {
	Secret   string `mapstructure:"secret"`
	Lifetime int    `mapstructure:"lifetime"` // hours
}

// CookieConfig holds session cookie attributes.
type CookieConfig struct {
	SameSite string `mapstructure:"samesite"` // lax, strict, none
	Secure   bool   `mapstructure:"secure"`
}

// CORSConfig holds the list of allowed cross-origin hosts.
type CORSConfig struct {
	Origins []string `mapstructure:"origins"`
}

// AuthConfig holds up to three developer credential pairs. Pairs with an
// empty username or password are skipped during loading.
type AuthConfig struct {
	User1 string `mapstructure:"user1"`
	Pass1 string `mapstructure:"pass1"`
	User2 string `mapstructure:"user2"`
	Pass2 string `mapstructure:"pass2"`
	User3 string `mapstructure:"user3"`
	Pass3 string `mapstructure:"pass3"`
}

// StorageConfig holds the path of the local zone document mirror.
type StorageConfig struct {
	File string `mapstructure:"file"`
}

// CacheConfig holds cache-specific configuration.
type CacheConfig struct {
	FilePath string `mapstructure:"filepath"`
	TTL      int    `mapstructure:"ttl"` // seconds
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `mapstructure:"level"`  // e.g., "debug", "info", "warn", "error"
	Format string `mapstructure:"format"` // e.g., "json", "console"
}

// IsProduction reports whether the server runs with production defaults.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Env), "production")
}

// SessionLifetime returns the session lifetime as a duration.
func (c *Config) SessionLifetime() time.Duration {
	hours := c.Session.Lifetime
	if hours <= 0 {
		hours = 12
	}
	return time.Duration(hours) * time.Hour
}

// NormalizedSameSite maps the configured SameSite value onto one of the three
// recognized modes, defaulting to "lax" for anything unrecognized.
func (c *Config) NormalizedSameSite() string {
	switch strings.ToLower(strings.TrimSpace(c.Cookie.SameSite)) {
	case "strict":
		return "strict"
	case "none":
		return "none"
	default:
		return "lax"
	}
}

// CookieSecure resolves the Secure attribute of the session cookie.
// Browsers only honor SameSite=None on secure cookies, so that mode forces
// Secure regardless of configuration.
func (c *Config) CookieSecure() bool {
	if c.NormalizedSameSite() == "none" {
		return true
	}
	return c.Cookie.Secure || c.IsProduction()
}

// LoadConfig reads configuration from file and environment variables.
func LoadConfig() (*Config, error) {
	// Set default values
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("db.driver", "mysql")
	viper.SetDefault("db.table", "dashboard_data")
	viper.SetDefault("zone.key", "default")
	viper.SetDefault("session.lifetime", 12)
	viper.SetDefault("cookie.samesite", "lax")
	viper.SetDefault("storage.file", "folder-structure.json")
	viper.SetDefault("cache.filepath", "zone-cache.db")
	viper.SetDefault("cache.ttl", 30)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")

	// Set up viper to read from config file
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("/etc/edudash/")

	// Attempt to read the config file
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Config file was found but another error was produced
			return nil, err
		}
		// Config file not found; proceed with defaults and env vars
	}

	// Set up viper to read from environment variables
	viper.SetEnvPrefix("EDUDASH")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so every
	// recognized key without a default needs an explicit binding before
	// Unmarshal can see its environment variable.
	envOnlyKeys := []string{
		"db.dsn",
		"session.secret",
		"cookie.secure",
		"cors.origins",
		"auth.user1", "auth.pass1",
		"auth.user2", "auth.pass2",
		"auth.user3", "auth.pass3",
		"env",
	}
	for _, key := range envOnlyKeys {
		if err := viper.BindEnv(key); err != nil {
			return nil, err
		}
	}

	// Unmarshal the config into the Config struct
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
