package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultHistorySize is the number of entries kept.
const DefaultHistorySize = 1000

// History is the REPL's line history, optionally persisted to a file.
type History struct {
	path  string
	limit int
	lines []string
}

// NewHistory returns a history persisted at path. An empty path keeps it
// in memory.
func NewHistory(path string) *History {
	return &History{path: path, limit: DefaultHistorySize}
}

// Add records line unless it repeats the previous entry. The oldest
// entries fall off past the size limit.
func (h *History) Add(line string) {
	if n := len(h.lines); n > 0 && h.lines[n-1] == line {
		return
	}
	h.lines = append(h.lines, line)
	if over := len(h.lines) - h.limit; over > 0 {
		h.lines = append(h.lines[:0:0], h.lines[over:]...)
	}
}

// Get returns the entry index steps back, 0 being the latest, or "" when
// out of range.
func (h *History) Get(index int) string {
	pos := len(h.lines) - 1 - index
	if index < 0 || pos < 0 {
		return ""
	}
	return h.lines[pos]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.lines)
}

// Load appends the entries stored in the history file.
func (h *History) Load() error {
	if h.path == "" {
		return nil
	}
	f, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if sc.Text() != "" {
			h.Add(sc.Text())
		}
	}
	return sc.Err()
}

// Save rewrites the history file, owner-readable only.
func (h *History) Save() error {
	if h.path == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}
	var b strings.Builder
	for _, l := range h.lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
