package templates

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"syscall"
)

// ErrOutputExists is returned when a page or asset would replace a file
// already written during the same site build.
var ErrOutputExists = errors.New("output file already exists")

// WriteFile creates name inside dir with content. The name must stay inside
// dir, and an existing file is never overwritten.
func WriteFile(dir, name string, content []byte) (string, error) {
	if dir == "" {
		return "", errors.New("output directory is required")
	}
	if name == "" {
		return "", errors.New("output name is required")
	}

	cleanRel := filepath.Clean(name)
	if filepath.IsAbs(cleanRel) || strings.HasPrefix(cleanRel, "..") {
		return "", fmt.Errorf("output name %q must be relative to the deploy directory", name)
	}
	fullPath := filepath.Join(dir, cleanRel)
	rel, err := filepath.Rel(dir, fullPath)
	if err != nil || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("output name %q escapes the deploy directory", name)
	}

	// #nosec G304 -- fullPath is validated to stay under dir.
	file, err := os.OpenFile(fullPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) || errors.Is(err, syscall.EEXIST) {
			return "", fmt.Errorf("%w: %s", ErrOutputExists, fullPath)
		}
		return "", fmt.Errorf("write output file: %w", err)
	}

	if _, err := file.Write(content); err != nil {
		_ = file.Close()
		return "", fmt.Errorf("write output file: %w", err)
	}
	if err := file.Close(); err != nil {
		return "", fmt.Errorf("close output file: %w", err)
	}
	return fullPath, nil
}
