package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env string

	API     APIConfig
	Auth    AuthConfig
	List    ListConfig
	Forms   FormsConfig
	Export  ExportConfig
	Session SessionConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// APIConfig points the client at the flock REST backend.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	UserAgent string
}

// AuthConfig carries credentials for non-interactive logins. Token, when
// set, is used as is instead of logging in.
type AuthConfig struct {
	Email    string
	Password string
	Token    string
}

// ListConfig tunes list screens.
type ListConfig struct {
	PageSize int
}

// FormsConfig tunes form behaviour after a successful submit.
type FormsConfig struct {
	ConfirmDelay time.Duration
}

// ExportConfig controls where exported artifacts are written.
type ExportConfig struct {
	Dir string
}

// SessionConfig governs access token refresh.
type SessionConfig struct {
	RefreshSkew time.Duration
}

type LogConfig struct {
	Level  string
	Format string
}

// MetricsConfig toggles client request instrumentation.
type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")

	cfg.API = APIConfig{
		BaseURL:   strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Timeout:   parseDuration(v.GetString("API_TIMEOUT"), 10*time.Second),
		UserAgent: v.GetString("USER_AGENT"),
	}

	cfg.Auth = AuthConfig{
		Email:    v.GetString("FLOCK_EMAIL"),
		Password: v.GetString("FLOCK_PASSWORD"),
		Token:    v.GetString("FLOCK_TOKEN"),
	}

	pageSize := v.GetInt("PAGE_SIZE")
	if pageSize <= 0 {
		pageSize = 10
	}
	cfg.List = ListConfig{PageSize: pageSize}

	cfg.Forms = FormsConfig{
		ConfirmDelay: parseDuration(v.GetString("CONFIRM_DELAY"), 1500*time.Millisecond),
	}

	cfg.Export = ExportConfig{Dir: v.GetString("EXPORT_DIR")}

	cfg.Session = SessionConfig{
		RefreshSkew: parseDuration(v.GetString("REFRESH_SKEW"), time.Minute),
	}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("METRICS_ENABLED")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)

	v.SetDefault("API_BASE_URL", "http://localhost:8000/api/v1")
	v.SetDefault("API_TIMEOUT", "10s")
	v.SetDefault("USER_AGENT", "flockctl/0.1")

	v.SetDefault("PAGE_SIZE", 10)
	v.SetDefault("CONFIRM_DELAY", "1500ms")
	v.SetDefault("EXPORT_DIR", "./exports")
	v.SetDefault("REFRESH_SKEW", "1m")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")

	v.SetDefault("METRICS_ENABLED", true)
}

// viper surfaces a missing explicit config file as a plain fs error rather
// than ConfigFileNotFoundError.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}
