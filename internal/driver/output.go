package driver

import (
	"os"
	"path/filepath"
)

// WriteOutput writes the rendered text next to its destination path,
// creating parent directories as needed.
func WriteOutput(path, text string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	// #nosec G306 -- generated sources use standard file permissions
	return os.WriteFile(path, []byte(text), 0o644)
}
