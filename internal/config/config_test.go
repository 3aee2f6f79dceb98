package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/noah-isme/backend-kasir/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"DATA_PATH": "/tmp/kasir.db",
		"SHOP_NAME": "Boutique Chez Awa",
	})
	require.NoError(t, err)

	require.Equal(t, "development", cfg.AppEnv)
	require.Equal(t, ":8080", cfg.HTTPAddr())
	require.Equal(t, "Boutique Chez Awa", cfg.ShopName)
	require.Equal(t, 5, cfg.LowStockThreshold)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "kasir", cfg.MetricsNamespace)
	require.True(t, cfg.MetricsEnabled)
	require.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, time.Local, cfg.ReportLocation)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := config.LoadForTests(map[string]string{
		"DATA_PATH":             "/data/kasir.db",
		"SHOP_NAME":             "Kiosque Moussa",
		"PORT":                  "9090",
		"CORS_ALLOWED_ORIGINS":  "https://a.example, https://b.example",
		"LOW_STOCK_THRESHOLD":   "3",
		"OBS_LOG_FORMAT":        "text",
		"OBS_ENABLE_PROMETHEUS": "false",
		"SHUTDOWN_TIMEOUT":      "30s",
		"REPORT_TIMEZONE":       "Africa/Abidjan",
	})
	require.NoError(t, err)

	require.Equal(t, ":9090", cfg.HTTPAddr())
	require.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.Equal(t, 3, cfg.LowStockThreshold)
	require.Equal(t, "text", cfg.LogFormat)
	require.False(t, cfg.MetricsEnabled)
	require.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, "Africa/Abidjan", cfg.ReportLocation.String())
}

func TestLoadRequiresDataPathAndShopName(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"DATA_PATH": "",
		"SHOP_NAME": "Boutique",
	})
	require.Error(t, err)

	_, err = config.LoadForTests(map[string]string{
		"DATA_PATH": "/tmp/kasir.db",
		"SHOP_NAME": "",
	})
	require.Error(t, err)
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	_, err := config.LoadForTests(map[string]string{
		"DATA_PATH":       "/tmp/kasir.db",
		"SHOP_NAME":       "Boutique",
		"REPORT_TIMEZONE": "Mars/Olympus",
	})
	require.Error(t, err)
}
