package config

import (
	"os"
	"strconv"
	"time"

	commoncfg "sluice-scada/common/config"
)

// Audit write modes for gate commands.
const (
	AuditModeBestEffort    = "best_effort"
	AuditModeTransactional = "transactional"
)

// Config sluice-scada (HTTP API) settings
type Config struct {
	HTTP struct {
		Addr string
	}
	Database    commoncfg.DatabaseConfig
	AutoMigrate bool
	Redis       commoncfg.RedisConfig
	Session     SessionConfig
	Audit       struct {
		Mode string
	}
	Weather WeatherConfig
	MQTT    MQTTConfig
	Log     struct {
		Level  string
		Format string
	}
}

// SessionConfig server-side session cookie settings
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// WeatherConfig Open-Meteo provider settings
type WeatherConfig struct {
	BaseURL   string
	Latitude  float64
	Longitude float64
	Timeout   time.Duration
}

// MQTTConfig command publication settings (disabled by default)
type MQTTConfig struct {
	Enabled     bool
	TopicPrefix string
	commoncfg.MQTTConfig
}

func Load() *Config {
	cfg := &Config{}
	cfg.HTTP.Addr = getEnv("HTTP_ADDR", ":8080")

	cfg.Database = commoncfg.DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "postgres",
		Database: "sluice",
		SSLMode:  "disable",
		MaxConns: 10,
		MaxIdle:  5,
	}
	cfg.Database.LoadFromEnv("DB")
	cfg.AutoMigrate = getEnv("DB_AUTO_MIGRATE", "true") == "true"

	cfg.Redis = commoncfg.RedisConfig{Addr: "localhost:6379"}
	cfg.Redis.LoadFromEnv("REDIS")

	cfg.Session.CookieName = getEnv("SESSION_COOKIE", "SCADA_SESSION")
	cfg.Session.TTL = parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour)
	cfg.Session.Secure = getEnv("SESSION_SECURE", "false") == "true"

	cfg.Audit.Mode = getEnv("AUDIT_MODE", AuditModeBestEffort)
	if cfg.Audit.Mode != AuditModeTransactional {
		cfg.Audit.Mode = AuditModeBestEffort
	}

	cfg.Weather.BaseURL = getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com")
	cfg.Weather.Latitude = parseFloat(getEnv("WEATHER_LATITUDE", "41.5308"), 41.5308)
	cfg.Weather.Longitude = parseFloat(getEnv("WEATHER_LONGITUDE", "60.3214"), 60.3214)
	cfg.Weather.Timeout = parseDuration(getEnv("WEATHER_TIMEOUT", "2s"), 2*time.Second)

	cfg.MQTT.Enabled = getEnv("MQTT_ENABLED", "false") == "true"
	cfg.MQTT.TopicPrefix = getEnv("MQTT_TOPIC_PREFIX", "scada/gates")
	cfg.MQTT.Broker = "tcp://localhost:1883"
	cfg.MQTT.ClientID = "sluice-scada"
	cfg.MQTT.QoS = 1
	cfg.MQTT.MQTTConfig.LoadFromEnv("MQTT")

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseFloat(s string, def float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return def
	}
	return f
}

func parseDuration(s string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
