package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config agrupa toda la configuración del servicio.
// Fuente: .env (opcional) -> config.yaml (opcional) -> variables de entorno.
type Config struct {
	AppPort   string `mapstructure:"APP_PORT"`
	Env       string `mapstructure:"ENV"`
	AppName   string `mapstructure:"APP_NAME"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`
	Timezone  string `mapstructure:"TIMEZONE"`

	// Backend REST
	BackendURL            string `mapstructure:"BACKEND_URL"`
	BackendTimeoutSeconds int    `mapstructure:"BACKEND_TIMEOUT_SECONDS"`
	JWTSecret             string `mapstructure:"JWT_SECRET"`

	// Almacenamiento local (ledger, journal, sesión)
	StorageDriver string `mapstructure:"STORAGE_DRIVER"`
	StoragePath   string `mapstructure:"STORAGE_PATH"`
	DBDSN         string `mapstructure:"DB_DSN"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	// Recordatorios
	ReminderPollSeconds      int    `mapstructure:"REMINDER_POLL_SECONDS"`
	AlarmRepeatSeconds       int    `mapstructure:"ALARM_REPEAT_SECONDS"`
	AlertKeyScope            string `mapstructure:"ALERT_KEY_SCOPE"`
	LateDoseThresholdMinutes int    `mapstructure:"LATE_DOSE_THRESHOLD_MINUTES"`
	MedicineRefreshMinutes   int    `mapstructure:"MEDICINE_REFRESH_MINUTES"`

	// Búsqueda
	SearchDebounceMS  int `mapstructure:"SEARCH_DEBOUNCE_MS"`
	CatalogTTLSeconds int `mapstructure:"CATALOG_TTL_SECONDS"`

	// OpenStreetMap
	NominatimURL         string  `mapstructure:"NOMINATIM_URL"`
	OverpassURL          string  `mapstructure:"OVERPASS_URL"`
	OSMUserAgent         string  `mapstructure:"OSM_USER_AGENT"`
	PharmacyRadiusMeters float64 `mapstructure:"PHARMACY_RADIUS_METERS"`

	// Canales de alerta
	DesktopAlerts      bool   `mapstructure:"DESKTOP_ALERTS"`
	TelegramToken      string `mapstructure:"TELEGRAM_TOKEN"`
	TelegramChatID     int64  `mapstructure:"TELEGRAM_CHAT_ID"`
	FCMCredentialsFile string `mapstructure:"FCM_CREDENTIALS_FILE"`
	FCMDeviceToken     string `mapstructure:"FCM_DEVICE_TOKEN"`

	MaxRequestsPerMin int `mapstructure:"MAX_REQUESTS_PER_MIN"`
}

var keys = []string{
	"APP_PORT", "ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT", "TIMEZONE",
	"BACKEND_URL", "BACKEND_TIMEOUT_SECONDS", "JWT_SECRET",
	"STORAGE_DRIVER", "STORAGE_PATH", "DB_DSN", "SQLITE_PATH", "REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"REMINDER_POLL_SECONDS", "ALARM_REPEAT_SECONDS", "ALERT_KEY_SCOPE", "LATE_DOSE_THRESHOLD_MINUTES", "MEDICINE_REFRESH_MINUTES",
	"SEARCH_DEBOUNCE_MS", "CATALOG_TTL_SECONDS",
	"NOMINATIM_URL", "OVERPASS_URL", "OSM_USER_AGENT", "PHARMACY_RADIUS_METERS",
	"DESKTOP_ALERTS", "TELEGRAM_TOKEN", "TELEGRAM_CHAT_ID", "FCM_CREDENTIALS_FILE", "FCM_DEVICE_TOKEN",
	"MAX_REQUESTS_PER_MIN",
}

// Load lee .env, config.yaml y entorno. dirs son rutas extra donde buscar config.yaml.
func Load(dirs ...string) (*Config, error) {
	// .env es opcional; en producción todo viene del entorno.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	for _, d := range dirs {
		v.AddConfigPath(d)
	}
	v.AutomaticEnv()
	setDefaults(v)

	// Unmarshal solo ve keys conocidas; con AutomaticEnv hay que registrarlas.
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: read file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "med-reminder")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("TIMEZONE", "")

	v.SetDefault("BACKEND_URL", "")
	v.SetDefault("BACKEND_TIMEOUT_SECONDS", 10)
	v.SetDefault("JWT_SECRET", "")

	v.SetDefault("STORAGE_DRIVER", "file")
	v.SetDefault("STORAGE_PATH", "")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("SQLITE_PATH", "med-reminder.db")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("REMINDER_POLL_SECONDS", 5)
	v.SetDefault("ALARM_REPEAT_SECONDS", 28)
	v.SetDefault("ALERT_KEY_SCOPE", "session")
	v.SetDefault("LATE_DOSE_THRESHOLD_MINUTES", 120)
	v.SetDefault("MEDICINE_REFRESH_MINUTES", 10)

	v.SetDefault("SEARCH_DEBOUNCE_MS", 250)
	v.SetDefault("CATALOG_TTL_SECONDS", 300)

	v.SetDefault("NOMINATIM_URL", "https://nominatim.openstreetmap.org")
	v.SetDefault("OVERPASS_URL", "https://overpass-api.de/api/interpreter")
	v.SetDefault("OSM_USER_AGENT", "med-reminder/1.0")
	v.SetDefault("PHARMACY_RADIUS_METERS", 2000)

	v.SetDefault("DESKTOP_ALERTS", true)
	v.SetDefault("TELEGRAM_TOKEN", "")
	v.SetDefault("TELEGRAM_CHAT_ID", 0)
	v.SetDefault("FCM_CREDENTIALS_FILE", "")
	v.SetDefault("FCM_DEVICE_TOKEN", "")

	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)
}

// Validate revisa combinaciones que no tienen sentido antes de levantar nada.
func (c *Config) Validate() error {
	switch c.StorageDriver {
	case "memory", "file", "sqlite", "redis":
	case "postgres":
		if strings.TrimSpace(c.DBDSN) == "" {
			return errors.New("config: STORAGE_DRIVER=postgres requires DB_DSN")
		}
	default:
		return fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	switch c.AlertKeyScope {
	case "session", "daily":
	default:
		return fmt.Errorf("config: unknown ALERT_KEY_SCOPE %q", c.AlertKeyScope)
	}
	if c.ReminderPollSeconds <= 0 || c.AlarmRepeatSeconds <= 0 {
		return errors.New("config: poll and alarm intervals must be positive")
	}
	if c.TelegramToken != "" && c.TelegramChatID == 0 {
		return errors.New("config: TELEGRAM_TOKEN requires TELEGRAM_CHAT_ID")
	}
	return nil
}

func (c *Config) IsProduction() bool { return c.Env == "production" }

func (c *Config) BackendTimeout() time.Duration {
	return time.Duration(c.BackendTimeoutSeconds) * time.Second
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.ReminderPollSeconds) * time.Second
}

func (c *Config) AlarmRepeat() time.Duration {
	return time.Duration(c.AlarmRepeatSeconds) * time.Second
}

func (c *Config) LateDoseThreshold() time.Duration {
	return time.Duration(c.LateDoseThresholdMinutes) * time.Minute
}

func (c *Config) SearchDebounce() time.Duration {
	return time.Duration(c.SearchDebounceMS) * time.Millisecond
}

func (c *Config) CatalogTTL() time.Duration {
	return time.Duration(c.CatalogTTLSeconds) * time.Second
}

// Location resuelve TIMEZONE; vacío => hora local del dispositivo.
func (c *Config) Location() (*time.Location, error) {
	if strings.TrimSpace(c.Timezone) == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("config: TIMEZONE: %w", err)
	}
	return loc, nil
}
