package interfaces

import (
	"context"
	"time"

	"pos_snapshots/domain/entities"
)

// Browser defines one live browser session
type Browser interface {
	// Navigate loads url and waits for the load event
	Navigate(ctx context.Context, url string) error

	// WaitVisible blocks until target is visible or the timeout expires
	WaitVisible(ctx context.Context, target entities.Selector) error

	// WaitHidden blocks until target is hidden, detached or never present
	WaitHidden(ctx context.Context, target entities.Selector) error

	// Click clicks target, optionally looked up inside scope
	Click(ctx context.Context, target entities.Selector, scope *entities.Selector) error

	// Settle waits until CSS transitions finish; pause is the fallback delay
	Settle(ctx context.Context, pause time.Duration) error

	// Screenshot captures the current page as PNG
	Screenshot(ctx context.Context) ([]byte, error)

	// Close releases the session and the browser process
	Close() error
}

// BrowserLauncher starts browser sessions
type BrowserLauncher interface {
	Launch(ctx context.Context, opts entities.SessionOptions) (Browser, error)
}
