// Package image provides utilities for loading and preparing images for
// palette extraction.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"os"
	"path/filepath"
	"slices"
	"strings"

	_ "github.com/gen2brain/avif" // Register AVIF format
	"github.com/mitchellh/go-homedir"
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/pigment/internal/util/http"
	"github.com/jmylchreest/pigment/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP, AVIF.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}
	path = expandHome(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// SmartLoader loads images from both local files and HTTP(S) URLs.
type SmartLoader struct {
	fileLoader *FileLoader
	fetch      httputil.FetchOptions
	cache      *imagecache.Cache
}

// NewSmartLoader creates a new SmartLoader instance.
func NewSmartLoader(fetch httputil.FetchOptions) *SmartLoader {
	return &SmartLoader{
		fileLoader: NewFileLoader(),
		fetch:      fetch,
	}
}

// WithCache makes URL loads go through an on-disk cache.
func (l *SmartLoader) WithCache(c *imagecache.Cache) *SmartLoader {
	l.cache = c
	return l
}

// Load loads an image from either a local file path or an HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		data, err := l.fetchURL(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
		}
		img, format, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
		}
		return img, nil
	}
	return l.fileLoader.Load(ctx, path)
}

func (l *SmartLoader) fetchURL(ctx context.Context, url string) ([]byte, error) {
	if l.cache == nil {
		img, err := httputil.FetchImage(ctx, url, l.fetch)
		if err != nil {
			return nil, err
		}
		return img.Data, nil
	}
	data, _, err := l.cache.Get(ctx, url)
	return data, err
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that a local path names a decodable image of a
// supported format. URLs are only checked for shape; the body is checked
// when fetched.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		return httputil.ValidateURL(path)
	}
	path = expandHome(path)

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !IsImageFile(path) {
		return fmt.Errorf("unsupported image extension %q (supported: %s)",
			filepath.Ext(path), strings.Join(SupportedImageExtensions(), ", "))
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp", ".avif"}
}

// IsImageFile checks if a file has a supported image extension.
func IsImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

func expandHome(path string) string {
	if expanded, err := homedir.Expand(path); err == nil {
		return expanded
	}
	return path
}
