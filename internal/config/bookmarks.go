package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	fsutil "github.com/kk-code-lab/dpane/internal/fs"
	"gopkg.in/yaml.v3"
)

const maxBookmarks = 1000

// BookmarkStore persists the last visited item per directory.
type BookmarkStore struct {
	path  string
	limit int
}

// NewBookmarkStore stores bookmarks in path.
func NewBookmarkStore(path string) *BookmarkStore {
	return &BookmarkStore{path: path, limit: maxBookmarks}
}

// DefaultBookmarkPath returns bookmarks.yaml next to the settings file.
func DefaultBookmarkPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "bookmarks.yaml"), nil
}

// Load reads the stored bookmarks. A missing file yields an empty map.
// Entries that do not parse are skipped.
func (s *BookmarkStore) Load() (map[string]fsutil.IdentityHash, error) {
	out := make(map[string]fsutil.IdentityHash)
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return out, nil
	}
	if err != nil {
		return out, fmt.Errorf("read bookmarks: %w", err)
	}

	var raw map[string]string
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return out, fmt.Errorf("parse bookmarks %s: %w", s.path, err)
	}
	for dir, hex := range raw {
		v, err := strconv.ParseUint(hex, 16, 64)
		if err != nil || v == 0 {
			continue
		}
		out[filepath.Clean(dir)] = fsutil.IdentityHash(v)
	}
	return out, nil
}

// Save writes bookmarks atomically. Directories that are gone are skipped.
// When more than the limit remain, the directories in keep are stored
// first, then the rest in path order.
func (s *BookmarkStore) Save(bookmarks map[string]fsutil.IdentityHash, keep ...string) error {
	dirs := make([]string, 0, len(bookmarks))
	for dir := range bookmarks {
		dirs = append(dirs, dir)
	}
	slices.Sort(dirs)
	priority := make([]string, 0, len(keep))
	for _, dir := range keep {
		if _, ok := bookmarks[dir]; ok && !slices.Contains(priority, dir) {
			priority = append(priority, dir)
		}
	}

	raw := make(map[string]string, min(len(bookmarks), s.limit))
	for _, dir := range append(priority, dirs...) {
		if len(raw) >= s.limit {
			break
		}
		h := bookmarks[dir]
		if _, dup := raw[dir]; dup || !h.Valid() {
			continue
		}
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			continue
		}
		raw[dir] = h.String()
	}

	data, err := yaml.Marshal(raw)
	if err != nil {
		return fmt.Errorf("encode bookmarks: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create bookmark directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".bookmarks-*.yaml")
	if err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("save bookmarks: %w", err)
	}
	return nil
}
