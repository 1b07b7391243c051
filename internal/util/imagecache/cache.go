// Package imagecache keeps downloaded images on disk so repeated extraction
// from the same URL does not refetch it.
package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"

	httputil "github.com/jmylchreest/pigment/internal/util/http"
)

// Cache stores fetched images under a directory, one file per URL.
type Cache struct {
	dir   string
	fetch httputil.FetchOptions
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		// Fallback to home directory if cache dir not available.
		home, err := homedir.Dir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "pigment", "images"), nil
	}
	return filepath.Join(cacheDir, "pigment", "images"), nil
}

// New creates a cache rooted at dir, or at DefaultDir when dir is empty.
func New(dir string, fetch httputil.FetchOptions) (*Cache, error) {
	if dir == "" {
		var err error
		if dir, err = DefaultDir(); err != nil {
			return nil, err
		}
	}
	return &Cache{dir: dir, fetch: fetch}, nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns where url is cached: a SHA-256 prefix of the URL plus the
// URL's extension.
func (c *Cache) Path(url string) string {
	sum := sha256.Sum256([]byte(url))
	name := hex.EncodeToString(sum[:16])

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.Contains(ext, "/") {
		ext = ".img"
	}
	return filepath.Join(c.dir, name+ext)
}

// Get returns the image bytes for url, from disk when cached and from the
// network otherwise. Only bodies that sniff as images are stored, and
// writes are atomic.
func (c *Cache) Get(ctx context.Context, url string) ([]byte, bool, error) {
	if err := httputil.ValidateURL(url); err != nil {
		return nil, false, err
	}

	path := c.Path(url)
	if data, err := os.ReadFile(path); err == nil { // #nosec G304 - Path derived from URL hash inside cache dir
		return data, true, nil
	}

	img, err := httputil.FetchImage(ctx, url, c.fetch)
	if err != nil {
		return nil, false, fmt.Errorf("failed to download image: %w", err)
	}
	data := img.Data

	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return nil, false, fmt.Errorf("failed to create cache directory: %w", err)
	}
	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return nil, false, fmt.Errorf("failed to write cached image: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return nil, false, fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, false, fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, false, fmt.Errorf("failed to write cached image: %w", err)
	}
	return data, false, nil
}
