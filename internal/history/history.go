// Package history keeps the most recent commands copied or generated by the
// user, newest first.
package history

import (
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"
)

// MaxEntries is the number of commands kept.
const MaxEntries = 50

// Filter narrows a history search.
type Filter string

// Search filters.
const (
	FilterAll      Filter = "all"
	FilterDocker   Filter = "docker"
	FilterCompose  Filter = "compose"
	FilterComments Filter = "comments"
)

// ParseFilter converts s into a Filter. An empty string is FilterAll.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(s)); f {
	case "":
		return FilterAll, nil
	case FilterAll, FilterDocker, FilterCompose, FilterComments:
		return f, nil
	default:
		return "", fmt.Errorf("invalid history filter %q: must be all, docker, compose or comments", s)
	}
}

// Kind classifies a history entry.
type Kind string

// Entry kinds.
const (
	KindComment Kind = "comment"
	KindCompose Kind = "compose"
	KindDocker  Kind = "docker"
	KindOther   Kind = "other"
)

// Classify reports what kind of command an entry is.
func Classify(command string) Kind {
	switch {
	case strings.HasPrefix(command, "#"):
		return KindComment
	case strings.Contains(command, "docker-compose"), strings.Contains(command, "docker compose"):
		return KindCompose
	case strings.Contains(command, "docker"):
		return KindDocker
	default:
		return KindOther
	}
}

// ComposeDownloadMarker is recorded when a compose generator artifact is
// downloaded under filename.
func ComposeDownloadMarker(filename string) string {
	return "# Docker Compose downloaded as " + filename
}

// FileDownloadMarker is recorded when a Dockerfile generator artifact is
// downloaded under filename.
func FileDownloadMarker(filename string) string {
	return "# " + filename + " downloaded"
}

// Tracker is a bounded, de-duplicated command history. It is safe for
// concurrent use.
type Tracker struct {
	mu      sync.RWMutex
	entries []string
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{entries: make([]string, 0, MaxEntries)}
}

// Record moves command to the front, removing an earlier equal entry and
// dropping the oldest beyond MaxEntries. Blank commands are ignored.
func (t *Tracker) Record(command string) bool {
	if strings.TrimSpace(command) == "" {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.entries = slices.DeleteFunc(t.entries, func(e string) bool { return e == command })
	t.entries = slices.Insert(t.entries, 0, command)
	if len(t.entries) > MaxEntries {
		t.entries = t.entries[:MaxEntries]
	}
	return true
}

// Entries returns a copy of the history, newest first.
func (t *Tracker) Entries() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return slices.Clone(t.entries)
}

// Len returns the number of entries.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.entries)
}

// Clear removes every entry.
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.entries = t.entries[:0]
}

// Search returns entries containing term (case-insensitive) that pass filter.
func (t *Tracker) Search(term string, filter Filter) []string {
	term = strings.ToLower(term)
	out := []string{}
	for _, e := range t.Entries() {
		if !strings.Contains(strings.ToLower(e), term) || !matches(e, filter) {
			continue
		}
		out = append(out, e)
	}
	return out
}

func matches(command string, filter Filter) bool {
	switch filter {
	case FilterDocker:
		return strings.Contains(command, "docker")
	case FilterCompose:
		return strings.Contains(command, "compose")
	case FilterComments:
		return strings.HasPrefix(command, "#")
	default:
		return true
	}
}

// Export renders the history as newline-separated text, newest first.
func (t *Tracker) Export() string {
	return strings.Join(t.Entries(), "\n")
}

// ExportFilename returns the download name for an export taken at now.
func ExportFilename(now time.Time) string {
	return fmt.Sprintf("docker-commands-history-%s.txt", now.UTC().Format(time.DateOnly))
}
