package history

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecord_OrderAndDedup(t *testing.T) {
	tr := NewTracker()

	assert.True(t, tr.Record("docker ps"))
	assert.True(t, tr.Record("docker images"))
	assert.True(t, tr.Record("docker ps"))
	assert.False(t, tr.Record("   "))
	assert.False(t, tr.Record(""))

	assert.Equal(t, []string{"docker ps", "docker images"}, tr.Entries())
}

func TestRecord_Limit(t *testing.T) {
	tr := NewTracker()
	for i := range MaxEntries + 5 {
		tr.Record(fmt.Sprintf("docker logs c%d", i))
	}

	entries := tr.Entries()
	require.Len(t, entries, MaxEntries)
	assert.Equal(t, "docker logs c54", entries[0])
	assert.Equal(t, "docker logs c5", entries[MaxEntries-1])
}

func TestEntries_ReturnsCopy(t *testing.T) {
	tr := NewTracker()
	tr.Record("docker ps")

	entries := tr.Entries()
	entries[0] = "changed"
	assert.Equal(t, []string{"docker ps"}, tr.Entries())
}

func TestSearch(t *testing.T) {
	tr := NewTracker()
	tr.Record("ls -la")
	tr.Record("docker ps")
	tr.Record("docker compose up -d")
	tr.Record(ComposeDownloadMarker("docker-compose.yml"))

	tests := []struct {
		name   string
		term   string
		filter Filter
		want   []string
	}{
		{"all", "", FilterAll, []string{ComposeDownloadMarker("docker-compose.yml"), "docker compose up -d", "docker ps", "ls -la"}},
		{"docker", "", FilterDocker, []string{ComposeDownloadMarker("docker-compose.yml"), "docker compose up -d", "docker ps"}},
		{"compose", "", FilterCompose, []string{ComposeDownloadMarker("docker-compose.yml"), "docker compose up -d"}},
		{"comments", "", FilterComments, []string{ComposeDownloadMarker("docker-compose.yml")}},
		{"term case-insensitive", "PS", FilterAll, []string{"docker ps"}},
		{"term and filter", "up", FilterComments, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Search(tt.term, tt.filter))
		})
	}
}

func TestMarkers(t *testing.T) {
	assert.Equal(t, "# Docker Compose downloaded as docker-compose.yml", ComposeDownloadMarker("docker-compose.yml"))
	assert.Equal(t, "# Dockerfile downloaded", FileDownloadMarker("Dockerfile"))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, KindComment, Classify(FileDownloadMarker("Dockerfile")))
	assert.Equal(t, KindCompose, Classify("docker-compose up"))
	assert.Equal(t, KindCompose, Classify("docker compose logs"))
	assert.Equal(t, KindDocker, Classify("docker ps"))
	assert.Equal(t, KindOther, Classify("ls -la"))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	f, err = ParseFilter("Compose")
	require.NoError(t, err)
	assert.Equal(t, FilterCompose, f)

	_, err = ParseFilter("images")
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	tr := NewTracker()
	assert.Empty(t, tr.Export())

	tr.Record("docker ps")
	tr.Record("docker images")
	assert.Equal(t, "docker images\ndocker ps", tr.Export())

	now := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "docker-commands-history-2024-03-09.txt", ExportFilename(now))
}

func TestClear(t *testing.T) {
	tr := NewTracker()
	tr.Record("docker ps")
	tr.Clear()
	assert.Zero(t, tr.Len())
	assert.Empty(t, tr.Entries())
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tr.Record(fmt.Sprintf("docker stop c%d", i))
			_ = tr.Search("stop", FilterDocker)
		}()
	}
	wg.Wait()
	assert.Equal(t, 20, tr.Len())
}
