// Package config reads the settings for the server and the exporter from
// conf/<env>.yaml, a .env file and CULINART_* environment variables.
package config

import (
	"errors"
	"os"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/poku-e/culinart/internal/api"
	"github.com/poku-e/culinart/internal/storage"
)

const (
	Development = "development"
	Staging     = "staging"
	Production  = "production"
)

// EnvPrefix is prepended to every environment override, e.g. CULINART_ADDR.
const EnvPrefix = "CULINART"

type Storage struct {
	Driver string `mapstructure:"driver"`
	Path   string `mapstructure:"path"`
	DSN    string `mapstructure:"dsn"`
}

type Conf struct {
	Env          string   `mapstructure:"env"`
	Addr         string   `mapstructure:"addr"`
	APIBaseURL   string   `mapstructure:"api-base-url"`
	SubmitPath   string   `mapstructure:"submit-path"`
	Locale       string   `mapstructure:"locale"`
	LogLevel     string   `mapstructure:"log-level"`
	AllowOrigins []string `mapstructure:"allow-origins"`
	Storage      Storage  `mapstructure:"storage"`
}

// StorageOptions converts the storage section for storage.Open.
func (c *Conf) StorageOptions() storage.Options {
	return storage.Options{
		Driver: c.Storage.Driver,
		Path:   c.Storage.Path,
		DSN:    c.Storage.DSN,
	}
}

// Env returns the ENV variable, defaulting to development.
func Env() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return Development
}

// Load reads the configuration for the current ENV. A missing conf file is
// not an error: defaults and environment variables still apply.
func Load(dir string) (*Conf, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("[config] No .env file, using the environment")
	}
	env := Env()

	v := viper.New()
	v.SetConfigName(env)
	v.SetConfigType("yaml")
	if dir == "" {
		dir = "conf/"
	}
	v.AddConfigPath(dir)

	v.SetDefault("env", env)
	v.SetDefault("addr", ":8080")
	v.SetDefault("api-base-url", api.DefaultBaseURL)
	v.SetDefault("submit-path", api.DefaultSubmitPath)
	v.SetDefault("locale", "id")
	v.SetDefault("log-level", "")
	v.SetDefault("allow-origins", []string{})
	v.SetDefault("storage.driver", storage.DriverFile)
	v.SetDefault("storage.path", "data/favorites.json")
	v.SetDefault("storage.dsn", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
		log.WithField("env", env).Debug("[config] No config file, using defaults")
	}

	var c Conf
	if err := v.Unmarshal(&c); err != nil {
		return nil, err
	}
	c.Env = env
	return &c, nil
}

// SetupLogging picks the logrus level and formatter for env. level, when set,
// overrides the level implied by env.
func SetupLogging(env, level string) {
	switch env {
	case Production:
		log.SetLevel(log.ErrorLevel)
		log.SetFormatter(&log.JSONFormatter{})
	case Staging:
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	default:
		log.SetLevel(log.DebugLevel)
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	if level == "" {
		return
	}
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("[config] Unknown log level, keeping default")
		return
	}
	log.SetLevel(lvl)
}
