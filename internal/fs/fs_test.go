package fs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trly/dockr/internal/testutil"
)

func TestHasChanged(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "docker-compose.yml")
	require.NoError(t, os.WriteFile(existing, []byte("services:\n"), 0o600))

	tests := []struct {
		name     string
		path     string
		content  string
		expected bool
	}{
		{name: "missing file", path: filepath.Join(dir, "missing"), content: "x", expected: true},
		{name: "same content", path: existing, content: "services:\n", expected: false},
		{name: "different content", path: existing, content: "services: {}\n", expected: true},
	}

	s := NewService(testutil.NewTestLogger(t))
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, s.HasChanged(tt.path, tt.content))
		})
	}
}

func TestWriteArtifact(t *testing.T) {
	s := NewService(testutil.NewTestLogger(t))
	path := filepath.Join(t.TempDir(), "nested", "out", "Dockerfile")

	written, err := s.WriteArtifact(path, "FROM alpine\n")
	require.NoError(t, err)
	assert.True(t, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "FROM alpine\n", string(data))

	written, err = s.WriteArtifact(path, "FROM alpine\n")
	require.NoError(t, err)
	assert.False(t, written)

	written, err = s.WriteArtifact(path, "FROM busybox\n")
	require.NoError(t, err)
	assert.True(t, written)
}

func TestWriteArtifact_Error(t *testing.T) {
	s := NewService(testutil.NewTestLogger(t))
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o600))

	_, err := s.WriteArtifact(filepath.Join(blocker, "child"), "content")
	assert.Error(t, err)
}

func TestGetContentHash(t *testing.T) {
	assert.Equal(t, GetContentHash("a"), GetContentHash("a"))
	assert.NotEqual(t, GetContentHash("a"), GetContentHash("b"))
	assert.Len(t, GetContentHash("a"), 20)
}
