package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
)

// Cache stores fetched pages on disk as <sha256(url)>.html. There is no
// expiry; delete the directory to refetch.
type Cache struct {
	Dir string
}

func (c *Cache) path(rawURL string) string {
	h := sha256.Sum256([]byte(rawURL))
	return filepath.Join(c.Dir, hex.EncodeToString(h[:])+".html")
}

// Load returns the cached page, if any.
func (c *Cache) Load(rawURL string) ([]byte, bool) {
	b, err := os.ReadFile(c.path(rawURL))
	if err != nil {
		return nil, false
	}
	return b, true
}

// Save writes the page atomically.
func (c *Cache) Save(rawURL string, body []byte) error {
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return err
	}
	p := c.path(rawURL)
	tmp := p + ".tmp"
	if err := os.WriteFile(tmp, body, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, p)
}
