// Package recent keeps most-recently-used file lists and persists them as
// plain text files with one path per line.
package recent

import (
	"bufio"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/pseudomuto/sqldesk/pkg/consts"
)

// List is a capped, deduplicated list of paths, most recent first.
type List struct {
	file  string
	max   int
	items []string
}

// New creates an empty list persisted to file. A non-positive max uses
// consts.DefaultRecentMax. An empty file makes the list memory-only.
func New(file string, max int) *List {
	if max <= 0 {
		max = consts.DefaultRecentMax
	}

	return &List{file: file, max: max}
}

// Load reads a list from file. A missing file yields an empty list. Blank
// lines are skipped, duplicates dropped and the result capped at max.
func Load(file string, max int) (*List, error) {
	l := New(file, max)

	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return l, nil
		}
		return nil, errors.Wrapf(err, "failed to open recent file list: %s", file)
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		path := strings.TrimSpace(scanner.Text())
		if path == "" || slices.Contains(l.items, path) {
			continue
		}

		if len(l.items) < l.max {
			l.items = append(l.items, path)
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to read recent file list: %s", file)
	}

	return l, nil
}

// File returns the path the list is saved to.
func (l *List) File() string {
	return l.file
}

// Max returns the capacity of the list.
func (l *List) Max() int {
	return l.max
}

// Len returns the number of entries.
func (l *List) Len() int {
	return len(l.items)
}

// Items returns a copy of the entries, most recent first.
func (l *List) Items() []string {
	return slices.Clone(l.items)
}

// Add puts path at the front of the list, removing any earlier occurrence and
// dropping the oldest entries beyond the cap.
func (l *List) Add(path string) {
	items := make([]string, 0, len(l.items)+1)
	items = append(items, path)
	for _, item := range l.items {
		if item != path {
			items = append(items, item)
		}
	}

	if len(items) > l.max {
		items = items[:l.max]
	}
	l.items = items
}

// Remove deletes path from the list and reports whether it was present.
func (l *List) Remove(path string) bool {
	i := slices.Index(l.items, path)
	if i < 0 {
		return false
	}

	l.items = slices.Delete(l.items, i, i+1)
	return true
}

// Prune removes every entry for which exists returns false and returns the
// removed entries.
func (l *List) Prune(exists func(string) bool) []string {
	var removed []string
	l.items = slices.DeleteFunc(l.items, func(path string) bool {
		if exists(path) {
			return false
		}
		removed = append(removed, path)
		return true
	})

	return removed
}

// Save writes the list to its file, creating the parent directory as needed.
func (l *List) Save() error {
	if l.file == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(l.file), consts.ModeDir); err != nil {
		return errors.Wrapf(err, "failed to create directory for recent file list: %s", l.file)
	}

	var b strings.Builder
	for _, item := range l.items {
		b.WriteString(item)
		b.WriteByte('\n')
	}

	return errors.Wrapf(os.WriteFile(l.file, []byte(b.String()), consts.ModeFile), "failed to save recent file list: %s", l.file)
}

// Exists reports whether a regular file or directory exists at path. It is the
// usual argument to Prune.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
