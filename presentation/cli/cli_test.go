package cli

import (
	"bytes"
	"testing"
	"time"

	"pos_snapshots/domain/entities"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfig(t *testing.T, args ...string) (*Config, error) {
	t.Helper()

	v := viper.New()
	cmd := &cobra.Command{Use: "test"}
	require.NoError(t, registerFlags(cmd, v))
	require.NoError(t, cmd.PersistentFlags().Parse(args))
	return LoadConfig(v)
}

func TestConfigDefaults(t *testing.T) {
	cfg, err := newTestConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "verification", cfg.ScreenshotDir)
	assert.Equal(t, 375, cfg.ViewportWidth)
	assert.Equal(t, 667, cfg.ViewportHeight)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.True(t, cfg.Headless)
	assert.Equal(t, "playwright", cfg.Driver)
	assert.Equal(t, "chromium", cfg.Engine)
	assert.False(t, cfg.AllowRemote)

	opts := cfg.SessionOptions()
	assert.Equal(t, entities.MobileViewport, opts.Viewport)
	assert.Equal(t, entities.SettleAnimations, opts.SettleMode)
}

func TestConfigEnvironmentOverrides(t *testing.T) {
	t.Setenv("POS_BASE_URL", "http://127.0.0.1:5173")
	t.Setenv("POS_SCREENSHOT_DIR", "/tmp/shots")
	t.Setenv("POS_TIMEOUT", "5s")
	t.Setenv("POS_HEADLESS", "false")
	t.Setenv("POS_SETTLE_MODE", "pause")

	cfg, err := newTestConfig(t)
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5173", cfg.BaseURL)
	assert.Equal(t, "/tmp/shots", cfg.ScreenshotDir)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.False(t, cfg.Headless)
	assert.Equal(t, entities.SettlePause, cfg.SessionOptions().SettleMode)
}

func TestConfigFlagsWinOverEnvironment(t *testing.T) {
	t.Setenv("POS_BASE_URL", "http://127.0.0.1:5173")

	cfg, err := newTestConfig(t, "--base-url", "http://localhost:4000", "--width", "414", "--height", "896")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:4000", cfg.BaseURL)
	assert.Equal(t, entities.Viewport{Width: 414, Height: 896}, cfg.SessionOptions().Viewport)
}

func TestConfigValidation(t *testing.T) {
	tests := map[string][]string{
		"no scheme":        {"--base-url", "localhost:3000"},
		"bad scheme":       {"--base-url", "ftp://localhost"},
		"empty dir":        {"--out", " "},
		"zero width":       {"--width", "0"},
		"zero timeout":     {"--timeout", "0s"},
		"unknown driver":   {"--driver", "puppeteer"},
		"unknown engine":   {"--engine", "edge"},
		"selenium firefox": {"--driver", "selenium", "--engine", "firefox"},
		"settle mode":      {"--settle", "sleep"},
		"log level":        {"--log-level", "loud"},
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := newTestConfig(t, args...)
			assert.Error(t, err)
		})
	}
}

func TestListCommand(t *testing.T) {
	root := NewRootCommand()
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetArgs([]string{"list"})

	require.NoError(t, root.Execute())

	assert.Contains(t, out.String(), "product-catalog:")
	assert.Contains(t, out.String(), "  slide_out_cart_mobile.png")
	assert.Contains(t, out.String(), "all-views: ")
	assert.Contains(t, out.String(), "[changes app state]")
}

func TestRunRejectsUnknownScenario(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"run", "checkout"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scenario")
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	root := NewRootCommand()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"run", "--width", "-1"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid viewport")
}
