// Package tokencache persists the Veil session between CLI invocations.
//
// The session is stored as a single JSON file. Writes use atomic file
// replacement (write to .tmp, then rename) so a crash mid-save never leaves
// a corrupt cache. A stale cached token is harmless: the client's retry
// policy re-authenticates when the server rejects it.
package tokencache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"veil-client/pkg/types"
)

const cacheFile = "session.json"

// Cache stores one session in a directory. Operations are mutex-protected
// to prevent concurrent file corruption.
type Cache struct {
	path string
	mu   sync.Mutex
}

// Open creates a cache backed by the given directory.
func Open(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{path: filepath.Join(dir, cacheFile)}, nil
}

// Load returns the cached session, or nil when none has been saved.
func (c *Cache) Load() (*types.Session, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := os.ReadFile(c.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session cache: %w", err)
	}

	var sess types.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("decode session cache: %w", err)
	}
	return &sess, nil
}

// Save atomically persists the session. The token is a bearer credential,
// so the file is written 0600.
func (c *Cache) Save(sess *types.Session) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	tmp := c.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write session cache: %w", err)
	}
	return os.Rename(tmp, c.path)
}

// Clear removes the cached session, if any.
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove session cache: %w", err)
	}
	return nil
}
