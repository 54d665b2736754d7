// Package fs writes generated artifacts to disk.
package fs

import (
	"crypto/sha1" //nolint:gosec // Not used for security purposes, just content comparison
	"fmt"
	"os"
	"path/filepath"

	"github.com/trly/dockr/internal/log"
)

// Service writes artifacts, skipping files whose content is unchanged.
type Service struct {
	logger log.Logger
}

// NewService creates a new filesystem service.
func NewService(logger log.Logger) *Service {
	return &Service{logger: logger}
}

// HasChanged reports whether path is missing or holds different content.
func (s *Service) HasChanged(path, content string) bool {
	existing, err := os.ReadFile(path) //nolint:gosec // Path is chosen by the user running the CLI
	if err != nil {
		return true
	}

	s.logger.Debug("Content hash comparison",
		"path", path,
		"existing", fmt.Sprintf("%x", GetContentHash(string(existing))),
		"new", fmt.Sprintf("%x", GetContentHash(content)))

	return string(existing) != content
}

// WriteArtifact writes content to path, creating parent directories. It
// returns false without touching the file when the content is unchanged.
func (s *Service) WriteArtifact(path, content string) (bool, error) {
	if !s.HasChanged(path, content) {
		s.logger.Debug("Artifact unchanged, skipping", "path", path)
		return false, nil
	}

	s.logger.Debug("Writing artifact", "path", path)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return false, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // Artifacts are meant to be readable
		return false, fmt.Errorf("failed to write %s: %w", path, err)
	}
	return true, nil
}

// GetContentHash calculates a SHA1 hash for change detection.
func GetContentHash(content string) []byte {
	hash := sha1.New() //nolint:gosec // Not used for security purposes
	hash.Write([]byte(content))
	return hash.Sum(nil)
}
