package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile saves the rendered report as UTF-8 text, creating parent
// directories as needed.
func WriteFile(path, content string) error {
	dir := filepath.Dir(path)
	if dir != "." {
		if err := os.MkdirAll(dir, 0750); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
