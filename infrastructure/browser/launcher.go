package browser

import (
	"context"
	"fmt"

	"pos_snapshots/domain/entities"
	"pos_snapshots/domain/interfaces"

	"github.com/sirupsen/logrus"
)

// Automation drivers
const (
	DriverPlaywright = "playwright"
	DriverSelenium   = "selenium"
)

// Browser engines
const (
	EngineChromium = "chromium"
	EngineFirefox  = "firefox"
	EngineWebKit   = "webkit"
)

// Launcher opens browser sessions with the configured driver
type Launcher struct {
	driver string
	logger *logrus.Logger
}

// NewLauncher - creates a launcher for driver
func NewLauncher(driver string, logger *logrus.Logger) (*Launcher, error) {
	switch driver {
	case DriverPlaywright, DriverSelenium:
	default:
		return nil, fmt.Errorf("unknown browser driver: %s", driver)
	}
	return &Launcher{driver: driver, logger: logger}, nil
}

// Launch - opens a new session; every call starts its own browser process
func (l *Launcher) Launch(ctx context.Context, opts entities.SessionOptions) (interfaces.Browser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch l.driver {
	case DriverSelenium:
		controller, err := NewSeleniumController(opts, l.logger)
		if err != nil {
			return nil, err
		}
		return controller, nil
	default:
		return NewBrowserController(opts, l.logger)
	}
}

var (
	_ interfaces.BrowserLauncher = (*Launcher)(nil)
	_ interfaces.Browser         = (*SeleniumController)(nil)
	_ interfaces.Browser         = (*browserController)(nil)
)
