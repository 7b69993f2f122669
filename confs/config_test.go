package confs

import (
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SESSION_BACKEND", "")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, "storefront.db", cfg.DBPath)
	assert.Equal(t, "file", cfg.SessionBackend)
	assert.Equal(t, "127.0.0.1:3536", cfg.HTTPAddr)
	assert.Empty(t, cfg.CheckoutWebhookURL)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_URL", "postgres://shop@localhost/shop")
	t.Setenv("CHECKOUT_WEBHOOK_URL", "http://127.0.0.1:9/hook")

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, "postgres://shop@localhost/shop", cfg.DBURL)
	assert.Equal(t, "http://127.0.0.1:9/hook", cfg.CheckoutWebhookURL)
}

func TestNewLoggerLevel(t *testing.T) {
	logger := NewLogger(&Config{LogLevel: "debug", LogFormat: "json"})
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, logger.Formatter)

	logger = NewLogger(&Config{LogLevel: "nonsense"})
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}

func TestLoadConfigWarnsOnUnreadableDotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.Mkdir(dir+"/.env", 0o755))
	chdir(t, dir)
	hook := logtest.NewGlobal()
	defer hook.Reset()

	cfg, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.NotNil(t, cfg)

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "could not load .env", hook.LastEntry().Message)
}

func TestLoadConfigIgnoresMissingDotEnv(t *testing.T) {
	chdir(t, t.TempDir())
	hook := logtest.NewGlobal()
	defer hook.Reset()

	_, err := LoadConfig(viper.New())
	require.NoError(t, err)
	assert.Empty(t, hook.AllEntries())
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}
