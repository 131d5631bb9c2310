package entities

import "time"

// Viewport is the emulated browser window size
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MobileViewport matches a common phone screen
var MobileViewport = Viewport{Width: 375, Height: 667}

// SettleMode selects how a settle step waits for transitions
type SettleMode string

const (
	SettleAnimations SettleMode = "animations"
	SettlePause      SettleMode = "pause"
)

// SessionOptions configures one browser session
type SessionOptions struct {
	Viewport   Viewport      `json:"viewport"`
	Headless   bool          `json:"headless"`
	Timeout    time.Duration `json:"timeout"`
	Engine     string        `json:"engine"`
	FullPage   bool          `json:"full_page"`
	SettleMode SettleMode    `json:"settle_mode"`
}
