package interfaces

// ScreenshotStore persists captured screenshots
type ScreenshotStore interface {
	// Save writes data under name, replacing any previous file, and returns its path
	Save(name string, data []byte) (string, error)

	// Dir returns the directory screenshots are written to
	Dir() string
}
