package storage

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"pos_snapshots/domain/interfaces"
)

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

type screenshotStore struct {
	dir string
}

// NewScreenshotStore - creates screenshot storage rooted at dir
func NewScreenshotStore(dir string) interfaces.ScreenshotStore {
	return &screenshotStore{dir: dir}
}

// Dir - returns the output directory
func (s *screenshotStore) Dir() string {
	return s.dir
}

// Save - writes a PNG under name, replacing any previous file
func (s *screenshotStore) Save(name string, data []byte) (string, error) {
	if name == "" || name != filepath.Base(name) || strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("invalid screenshot name %q", name)
	}
	if !strings.EqualFold(filepath.Ext(name), ".png") {
		name += ".png"
	}
	if !bytes.HasPrefix(data, pngSignature) {
		return "", fmt.Errorf("screenshot %s is not a PNG image", name)
	}

	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create screenshot directory: %w", err)
	}

	path := filepath.Join(s.dir, name)

	// Write next to the target and rename so a failed write never leaves a partial file
	tmp, err := os.CreateTemp(s.dir, "."+name+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to write %s: %w", name, err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to set permissions on %s: %w", name, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("failed to save %s: %w", name, err)
	}

	return path, nil
}
