package browser

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"pos_snapshots/domain/entities"

	"github.com/sirupsen/logrus"
	"github.com/tebeka/selenium"
	"github.com/tebeka/selenium/chrome"
	"go.uber.org/multierr"
)

const (
	seleniumPollInterval = 100 * time.Millisecond
	seleniumFrameDelay   = 50 * time.Millisecond
	seleniumDefaultWait  = 30 * time.Second
)

type SeleniumController struct {
	wd      selenium.WebDriver
	service *selenium.Service
	opts    entities.SessionOptions
	logger  *logrus.Logger
}

// findChromeDriver - finds ChromeDriver executable path
func findChromeDriver() (string, error) {
	if path := os.Getenv("BROWSER_DRIVER_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	commonPaths := []string{
		"/usr/local/bin/chromedriver",
		"/usr/bin/chromedriver",
		"/opt/homebrew/bin/chromedriver",
		filepath.Join(os.Getenv("HOME"), "bin", "chromedriver"),
	}

	for _, path := range commonPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	if path, err := exec.LookPath("chromedriver"); err == nil {
		return path, nil
	}

	return "", fmt.Errorf("chromedriver not found. Please install it or set BROWSER_DRIVER_PATH environment variable")
}

// findChromeBinary - finds Chrome/Chromium browser executable path
func findChromeBinary() string {
	if path := os.Getenv("CHROME_BINARY_PATH"); path != "" {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	chromePaths := []string{
		"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
		"/Applications/Chromium.app/Contents/MacOS/Chromium",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium",
		"/usr/bin/chromium-browser",
		`C:\Program Files\Google\Chrome\Application\chrome.exe`,
		`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
	}

	for _, path := range chromePaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	for _, name := range []string{"google-chrome", "chromium", "chromium-browser"} {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	return ""
}

// freePort - asks the kernel for an unused local port for chromedriver
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}

// NewSeleniumController - starts chromedriver and a Chrome session emulating the viewport
func NewSeleniumController(opts entities.SessionOptions, logger *logrus.Logger) (*SeleniumController, error) {
	if opts.Engine != "" && opts.Engine != EngineChromium {
		return nil, fmt.Errorf("selenium driver only supports %s, got %s", EngineChromium, opts.Engine)
	}

	driverPath, err := findChromeDriver()
	if err != nil {
		return nil, fmt.Errorf("failed to find chromedriver: %w", err)
	}
	logger.Debugf("Using ChromeDriver at: %s", driverPath)

	chromeBinary := findChromeBinary()
	if chromeBinary != "" {
		logger.Debugf("Using Chrome binary at: %s", chromeBinary)
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to reserve chromedriver port: %w", err)
	}

	service, err := selenium.NewChromeDriverService(driverPath, port)
	if err != nil {
		return nil, fmt.Errorf("failed to start chromedriver: %w", err)
	}

	caps := selenium.Capabilities{
		"browserName": "chrome",
	}

	args := []string{
		"--disable-dev-shm-usage",
		"--no-sandbox",
	}
	if opts.Headless {
		args = append(args, "--headless=new")
	}

	chromeCaps := chrome.Capabilities{
		Args: args,
		MobileEmulation: &chrome.MobileEmulation{
			DeviceMetrics: &chrome.DeviceMetrics{
				Width:      uint(opts.Viewport.Width),
				Height:     uint(opts.Viewport.Height),
				PixelRatio: 1,
			},
		},
	}
	if chromeBinary != "" {
		chromeCaps.Path = chromeBinary
	}
	caps.AddChrome(chromeCaps)

	wd, err := selenium.NewRemote(caps, fmt.Sprintf("http://localhost:%d/wd/hub", port))
	if err != nil {
		service.Stop()
		if strings.Contains(err.Error(), "cannot find Chrome binary") {
			return nil, fmt.Errorf("failed to launch browser: Chrome not found. Please install Google Chrome or set CHROME_BINARY_PATH environment variable: %w", err)
		}
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	controller := &SeleniumController{
		wd:      wd,
		service: service,
		opts:    opts,
		logger:  logger,
	}

	if err := wd.SetPageLoadTimeout(controller.timeout()); err != nil {
		controller.Close()
		return nil, fmt.Errorf("failed to set page load timeout: %w", err)
	}

	return controller, nil
}

func (s *SeleniumController) timeout() time.Duration {
	if s.opts.Timeout > 0 {
		return s.opts.Timeout
	}
	return seleniumDefaultWait
}

// Navigate - navigates browser to specified URL
func (s *SeleniumController) Navigate(ctx context.Context, url string) error {
	s.logger.Debugf("Navigating to: %s", url)
	if err := s.wd.Get(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// findAll - finds every element matching target, optionally inside scope
func (s *SeleniumController) findAll(target entities.Selector, scope *entities.Selector) ([]selenium.WebElement, error) {
	by, value, err := SeleniumLocator(target)
	if err != nil {
		return nil, err
	}

	if scope == nil {
		return s.wd.FindElements(by, value)
	}

	scopeBy, scopeValue, err := SeleniumLocator(*scope)
	if err != nil {
		return nil, err
	}
	container, err := s.wd.FindElement(scopeBy, scopeValue)
	if err != nil {
		return nil, err
	}
	if by == byXPath {
		value = relativeXPath(value)
	}
	return container.FindElements(by, value)
}

// firstVisible - returns the first displayed element matching target, or nil
func (s *SeleniumController) firstVisible(target entities.Selector, scope *entities.Selector) (selenium.WebElement, error) {
	elements, err := s.findAll(target, scope)
	if err != nil {
		return nil, err
	}
	for _, elem := range elements {
		if displayed, err := elem.IsDisplayed(); err == nil && displayed {
			return elem, nil
		}
	}
	return nil, nil
}

// WaitVisible - polls until target is displayed
func (s *SeleniumController) WaitVisible(ctx context.Context, target entities.Selector) error {
	if _, _, err := SeleniumLocator(target); err != nil {
		return err
	}

	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		elem, _ := s.firstVisible(target, nil)
		return elem != nil, nil
	}, s.timeout(), seleniumPollInterval)
	if err != nil {
		return s.waitError(target, "visible", err)
	}
	return nil
}

// WaitHidden - polls until no element matching target is displayed
func (s *SeleniumController) WaitHidden(ctx context.Context, target entities.Selector) error {
	if _, _, err := SeleniumLocator(target); err != nil {
		return err
	}

	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		elem, err := s.firstVisible(target, nil)
		if err != nil {
			// Lookup errors mean the element is gone
			return true, nil
		}
		return elem == nil, nil
	}, s.timeout(), seleniumPollInterval)
	if err != nil {
		return s.waitError(target, "hidden", err)
	}
	return nil
}

func (s *SeleniumController) waitError(target entities.Selector, state string, err error) error {
	msg := fmt.Sprintf("timed out waiting for %s to be %s", target, state)
	if text, textErr := s.visibleText(); textErr == nil && text != "" {
		msg += fmt.Sprintf(". page shows: %q", truncateString(text, maxPageTextInError))
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Click - waits for target to be displayed and clicks it
func (s *SeleniumController) Click(ctx context.Context, target entities.Selector, scope *entities.Selector) error {
	s.logger.Debugf("Clicking on: %s", target)

	if _, _, err := SeleniumLocator(target); err != nil {
		return err
	}
	if scope != nil {
		if _, _, err := SeleniumLocator(*scope); err != nil {
			return err
		}
	}

	var element selenium.WebElement
	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		elem, _ := s.firstVisible(target, scope)
		element = elem
		return elem != nil, nil
	}, s.timeout(), seleniumPollInterval)
	if err != nil {
		return fmt.Errorf("failed to click %s: element not found: %w", target, err)
	}

	if err := element.Click(); err != nil {
		return fmt.Errorf("failed to click %s: %w", target, err)
	}
	return nil
}

// Settle - waits until running transitions finish
func (s *SeleniumController) Settle(ctx context.Context, pause time.Duration) error {
	if s.opts.SettleMode == entities.SettlePause {
		return sleep(ctx, pause)
	}

	if err := sleep(ctx, seleniumFrameDelay); err != nil {
		return err
	}

	script := "return (" + animationsIdleJS + ")();"
	err := s.wd.WaitWithTimeoutAndInterval(func(wd selenium.WebDriver) (bool, error) {
		result, err := wd.ExecuteScript(script, nil)
		if err != nil {
			return false, err
		}
		idle, _ := result.(bool)
		return idle, nil
	}, s.timeout(), seleniumPollInterval)
	if err != nil {
		return fmt.Errorf("animations did not settle: %w", err)
	}
	return nil
}

// Screenshot - takes screenshot of current viewport
func (s *SeleniumController) Screenshot(ctx context.Context) ([]byte, error) {
	return s.wd.Screenshot()
}

// visibleText - extracts visible text content from the page
func (s *SeleniumController) visibleText() (string, error) {
	result, err := s.wd.ExecuteScript("return ("+visibleTextJS+")();", nil)
	if err != nil {
		return "", err
	}
	text, _ := result.(string)
	return text, nil
}

// Close - closes browser and stops ChromeDriver service
func (s *SeleniumController) Close() error {
	var closeErr error
	if s.wd != nil {
		if err := s.wd.Quit(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to quit browser: %w", err))
		}
		s.wd = nil
	}
	if s.service != nil {
		if err := s.service.Stop(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to stop chromedriver: %w", err))
		}
		s.service = nil
	}
	return closeErr
}
