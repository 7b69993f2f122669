package confs

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

type Config struct {
	// Store
	DBDriver string
	DBPath   string
	DBURL    string

	// Session
	SessionBackend string
	SessionPath    string
	RedisAddr      string

	// Checkout webhook; empty disables it
	CheckoutWebhookURL string

	HTTPAddr  string
	LogLevel  string
	LogFormat string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DB_PATH", "storefront.db")
	v.SetDefault("SESSION_BACKEND", "file")
	v.SetDefault("SESSION_PATH", ".storefront_session")
	v.SetDefault("REDIS_ADDR", "127.0.0.1:6379")
	v.SetDefault("HTTP_ADDR", "127.0.0.1:3536")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
}

// LoadConfig loads environment variables from a .env file if present
// and resolves the storefront settings through v.
func LoadConfig(v *viper.Viper) (*Config, error) {
	// Load .env if it exists; ignore error if file not found
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			logrus.WithError(err).Warn("could not load .env")
		}
	}

	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBPath:             v.GetString("DB_PATH"),
		DBURL:              v.GetString("DB_URL"),
		SessionBackend:     strings.ToLower(v.GetString("SESSION_BACKEND")),
		SessionPath:        v.GetString("SESSION_PATH"),
		RedisAddr:          v.GetString("REDIS_ADDR"),
		CheckoutWebhookURL: v.GetString("CHECKOUT_WEBHOOK_URL"),
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		LogFormat:          v.GetString("LOG_FORMAT"),
	}
	return cfg, nil
}
