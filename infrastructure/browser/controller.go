package browser

import (
	"context"
	"fmt"
	"strings"
	"time"

	"pos_snapshots/domain/entities"
	"pos_snapshots/domain/interfaces"

	"github.com/playwright-community/playwright-go"
	"github.com/sirupsen/logrus"
	"go.uber.org/multierr"
)

type browserController struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page
	opts    entities.SessionOptions
	logger  *logrus.Logger
}

// NewBrowserController - starts playwright and opens one page at the session viewport
func NewBrowserController(opts entities.SessionOptions, logger *logrus.Logger) (interfaces.Browser, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	controller := &browserController{
		pw:     pw,
		opts:   opts,
		logger: logger,
	}

	if err := controller.open(); err != nil {
		controller.Close()
		return nil, err
	}

	return controller, nil
}

// open - launches the engine and creates the page, leaving partial state for Close
func (b *browserController) open() error {
	engine, err := browserType(b.pw, b.opts.Engine)
	if err != nil {
		return err
	}

	b.logger.WithFields(logrus.Fields{
		"engine":   b.opts.Engine,
		"headless": b.opts.Headless,
		"viewport": fmt.Sprintf("%dx%d", b.opts.Viewport.Width, b.opts.Viewport.Height),
	}).Debug("Launching browser")

	browser, err := engine.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(b.opts.Headless),
	})
	if err != nil {
		return fmt.Errorf("failed to launch browser: %w", err)
	}
	b.browser = browser

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  b.opts.Viewport.Width,
			Height: b.opts.Viewport.Height,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to create context: %w", err)
	}
	b.context = context

	page, err := context.NewPage()
	if err != nil {
		return fmt.Errorf("failed to create page: %w", err)
	}
	b.page = page

	if b.opts.Timeout > 0 {
		page.SetDefaultTimeout(float64(b.opts.Timeout.Milliseconds()))
		page.SetDefaultNavigationTimeout(float64(b.opts.Timeout.Milliseconds()))
	}

	page.OnDialog(func(dialog playwright.Dialog) {
		b.logger.Debugf("Accepting %s dialog: %s", dialog.Type(), dialog.Message())
		dialog.Accept()
	})

	return nil
}

// browserType - maps an engine name onto playwright's browser types
func browserType(pw *playwright.Playwright, engine string) (playwright.BrowserType, error) {
	switch engine {
	case "", EngineChromium:
		return pw.Chromium, nil
	case EngineFirefox:
		return pw.Firefox, nil
	case EngineWebKit:
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unknown browser engine: %s", engine)
	}
}

// Navigate - navigates to the specified URL
func (b *browserController) Navigate(ctx context.Context, url string) error {
	_, err := b.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	if err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// locate - builds a locator for target, optionally inside scope.
// First() keeps text matches non-strict, like page-level selector calls.
func (b *browserController) locate(target entities.Selector, scope *entities.Selector) (playwright.Locator, error) {
	selector, err := PlaywrightSelector(target)
	if err != nil {
		return nil, err
	}

	if scope == nil {
		return b.page.Locator(selector).First(), nil
	}

	scopeSelector, err := PlaywrightSelector(*scope)
	if err != nil {
		return nil, err
	}
	return b.page.Locator(scopeSelector).First().Locator(selector).First(), nil
}

// WaitVisible - waits for an element to appear on the page
func (b *browserController) WaitVisible(ctx context.Context, target entities.Selector) error {
	return b.waitFor(target, playwright.WaitForSelectorStateVisible)
}

// WaitHidden - waits for an element to disappear from the page
func (b *browserController) WaitHidden(ctx context.Context, target entities.Selector) error {
	return b.waitFor(target, playwright.WaitForSelectorStateHidden)
}

func (b *browserController) waitFor(target entities.Selector, state *playwright.WaitForSelectorState) error {
	locator, err := b.locate(target, nil)
	if err != nil {
		return err
	}

	if err := locator.WaitFor(playwright.LocatorWaitForOptions{State: state}); err != nil {
		var errorParts []string
		errorParts = append(errorParts, fmt.Sprintf("timed out waiting for %s to be %s", target, *state))

		if text, textErr := b.visibleText(); textErr == nil && text != "" {
			errorParts = append(errorParts, fmt.Sprintf("page shows: %q", truncateString(text, maxPageTextInError)))
		}

		return fmt.Errorf("%s: %w", strings.Join(errorParts, ". "), err)
	}

	return nil
}

// Click - clicks on the first element matching target
func (b *browserController) Click(ctx context.Context, target entities.Selector, scope *entities.Selector) error {
	locator, err := b.locate(target, scope)
	if err != nil {
		return err
	}

	if err := locator.Click(); err != nil {
		if scope != nil {
			return fmt.Errorf("failed to click %s within %s: %w", target, scope, err)
		}
		return fmt.Errorf("failed to click %s: %w", target, err)
	}
	return nil
}

// Settle - waits until transitions started by the previous interaction finish
func (b *browserController) Settle(ctx context.Context, pause time.Duration) error {
	if b.opts.SettleMode == entities.SettlePause {
		return sleep(ctx, pause)
	}

	if _, err := b.page.Evaluate(animationFramesJS); err != nil {
		return fmt.Errorf("failed to wait for animation frames: %w", err)
	}

	options := playwright.PageWaitForFunctionOptions{}
	if b.opts.Timeout > 0 {
		options.Timeout = playwright.Float(float64(b.opts.Timeout.Milliseconds()))
	}
	if _, err := b.page.WaitForFunction(animationsIdleJS, nil, options); err != nil {
		return fmt.Errorf("animations did not settle: %w", err)
	}
	return nil
}

// Screenshot - takes a PNG screenshot of the current page
func (b *browserController) Screenshot(ctx context.Context) ([]byte, error) {
	return b.page.Screenshot(playwright.PageScreenshotOptions{
		Type:     playwright.ScreenshotTypePng,
		FullPage: playwright.Bool(b.opts.FullPage),
	})
}

// visibleText - extracts visible text content from the page
func (b *browserController) visibleText() (string, error) {
	result, err := b.page.Evaluate(visibleTextJS)
	if err != nil {
		return "", err
	}
	if text, ok := result.(string); ok {
		return text, nil
	}
	return "", nil
}

// Close - closes context, browser and the playwright driver
func (b *browserController) Close() error {
	var closeErr error

	if b.context != nil {
		if err := b.context.Close(); err != nil && !isClosedErr(err) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to close context: %w", err))
		}
		b.context = nil
	}

	if b.browser != nil {
		if err := b.browser.Close(); err != nil && !isClosedErr(err) {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to close browser: %w", err))
		}
		b.browser = nil
	}

	if b.pw != nil {
		if err := b.pw.Stop(); err != nil {
			closeErr = multierr.Append(closeErr, fmt.Errorf("failed to stop playwright: %w", err))
		}
		b.pw = nil
	}

	return closeErr
}

// isClosedErr - reports errors raised because the target is already gone
func isClosedErr(err error) bool {
	errStr := err.Error()
	return strings.Contains(errStr, "closed") || strings.Contains(errStr, "target closed")
}

// sleep - waits d or until ctx is done
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Install - downloads the playwright driver and the given browser engines
func Install(engines ...string) error {
	if len(engines) == 0 {
		engines = []string{EngineChromium}
	}
	if err := playwright.Install(&playwright.RunOptions{Browsers: engines}); err != nil {
		return fmt.Errorf("could not install playwright browsers: %w", err)
	}
	return nil
}
