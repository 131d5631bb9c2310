package cli

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"pos_snapshots/domain/entities"
	"pos_snapshots/infrastructure/browser"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Config holds every tunable of a run
type Config struct {
	BaseURL        string        `mapstructure:"base_url"`
	ScreenshotDir  string        `mapstructure:"screenshot_dir"`
	ViewportWidth  int           `mapstructure:"viewport_width"`
	ViewportHeight int           `mapstructure:"viewport_height"`
	Timeout        time.Duration `mapstructure:"timeout"`
	Headless       bool          `mapstructure:"headless"`
	Driver         string        `mapstructure:"driver"`
	Engine         string        `mapstructure:"engine"`
	SettleMode     string        `mapstructure:"settle_mode"`
	FullPage       bool          `mapstructure:"full_page"`
	AllowRemote    bool          `mapstructure:"allow_remote"`
	LogLevel       string        `mapstructure:"log_level"`
}

// configOption ties a config key to its flag and default
type configOption struct {
	key   string
	flag  string
	value interface{}
	usage string
}

var configOptions = []configOption{
	{"base_url", "base-url", "http://localhost:3000", "address of the running POS app"},
	{"screenshot_dir", "out", "verification", "directory screenshots are written to"},
	{"viewport_width", "width", entities.MobileViewport.Width, "viewport width in CSS pixels"},
	{"viewport_height", "height", entities.MobileViewport.Height, "viewport height in CSS pixels"},
	{"timeout", "timeout", 30 * time.Second, "how long a wait, click or navigation may block"},
	{"headless", "headless", true, "run the browser without a window"},
	{"driver", "driver", browser.DriverPlaywright, "automation driver: playwright or selenium"},
	{"engine", "engine", browser.EngineChromium, "browser engine: chromium, firefox or webkit"},
	{"settle_mode", "settle", string(entities.SettleAnimations), "how to wait after animated clicks: animations or pause"},
	{"full_page", "full-page", false, "capture the full scrollable page instead of the viewport"},
	{"allow_remote", "allow-remote", false, "allow state-changing scenarios against non-local targets"},
	{"log_level", "log-level", "info", "log level: debug, info, warn, error"},
}

// registerFlags - declares persistent flags and binds them, env vars and defaults to v
func registerFlags(cmd *cobra.Command, v *viper.Viper) error {
	flags := cmd.PersistentFlags()
	for _, opt := range configOptions {
		switch value := opt.value.(type) {
		case string:
			flags.String(opt.flag, value, opt.usage)
		case int:
			flags.Int(opt.flag, value, opt.usage)
		case bool:
			flags.Bool(opt.flag, value, opt.usage)
		case time.Duration:
			flags.Duration(opt.flag, value, opt.usage)
		default:
			return fmt.Errorf("unsupported default for %s: %T", opt.key, opt.value)
		}

		v.SetDefault(opt.key, opt.value)
		if err := v.BindPFlag(opt.key, flags.Lookup(opt.flag)); err != nil {
			return fmt.Errorf("failed to bind flag %s: %w", opt.flag, err)
		}
	}

	v.SetEnvPrefix("POS")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return nil
}

// LoadConfig - resolves flags over environment over defaults
func LoadConfig(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings no run could succeed with
func (c *Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base_url %q: %w", c.BaseURL, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid base_url %q: need an http(s) address", c.BaseURL)
	}

	if strings.TrimSpace(c.ScreenshotDir) == "" {
		return fmt.Errorf("screenshot_dir must not be empty")
	}
	if c.ViewportWidth <= 0 || c.ViewportHeight <= 0 {
		return fmt.Errorf("invalid viewport %dx%d", c.ViewportWidth, c.ViewportHeight)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}

	switch c.Driver {
	case browser.DriverPlaywright, browser.DriverSelenium:
	default:
		return fmt.Errorf("unknown driver %q", c.Driver)
	}

	switch c.Engine {
	case browser.EngineChromium, browser.EngineFirefox, browser.EngineWebKit:
	default:
		return fmt.Errorf("unknown engine %q", c.Engine)
	}
	if c.Driver == browser.DriverSelenium && c.Engine != browser.EngineChromium {
		return fmt.Errorf("driver selenium only supports engine %s", browser.EngineChromium)
	}

	switch entities.SettleMode(c.SettleMode) {
	case entities.SettleAnimations, entities.SettlePause:
	default:
		return fmt.Errorf("unknown settle mode %q", c.SettleMode)
	}

	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level: %w", err)
	}

	return nil
}

// SessionOptions - browser session settings derived from the config
func (c *Config) SessionOptions() entities.SessionOptions {
	return entities.SessionOptions{
		Viewport: entities.Viewport{
			Width:  c.ViewportWidth,
			Height: c.ViewportHeight,
		},
		Headless:   c.Headless,
		Timeout:    c.Timeout,
		Engine:     c.Engine,
		FullPage:   c.FullPage,
		SettleMode: entities.SettleMode(c.SettleMode),
	}
}
