// Package http downloads remote images for extraction.
package http

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/h2non/filetype"

	"github.com/jmylchreest/pigment/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "pigment"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes bounds a downloaded image.
	DefaultMaxBytes = 32 << 20

	acceptImages = "image/avif,image/webp,image/png,image/jpeg,image/gif,image/*;q=0.8"
)

// ErrNotImage is returned when a response body is not a recognised image.
var ErrNotImage = errors.New("not an image")

// FetchOptions configures image downloads.
type FetchOptions struct {
	// Timeout is the whole-request timeout. If zero, DefaultTimeout is used.
	Timeout time.Duration

	// Headers are sent in addition to User-Agent and Accept.
	Headers map[string]string

	// MaxBytes caps the body size. If zero, DefaultMaxBytes is used.
	MaxBytes int64
}

// Image is a downloaded image body.
type Image struct {
	URL  string
	Data []byte
	// MIME is detected from the body's magic bytes.
	MIME string
	// Declared is the server's Content-Type, which may be missing or wrong.
	Declared string
}

// ValidateURL checks that raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL: must start with http:// or https://")
	}
	if u.Host == "" {
		return fmt.Errorf("invalid URL: missing host")
	}
	return nil
}

// FetchImage downloads raw and checks that the body is an image. The type is
// taken from the body, not the Content-Type header.
func FetchImage(ctx context.Context, raw string, opts FetchOptions) (*Image, error) {
	if err := ValidateURL(raw); err != nil {
		return nil, err
	}

	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	limit := opts.MaxBytes
	if limit <= 0 {
		limit = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, raw, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", fmt.Sprintf("%s/%s", UserAgentName, version.Version))
	req.Header.Set("Accept", acceptImages)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := (&http.Client{Timeout: timeout}).Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("image is %d bytes, limit is %d", resp.ContentLength, limit)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}

	declared := resp.Header.Get("Content-Type")
	if !filetype.IsImage(data) {
		if declared == "" {
			declared = "no content type"
		}
		return nil, fmt.Errorf("%w: %s served %s", ErrNotImage, raw, declared)
	}
	kind, _ := filetype.Match(data)

	return &Image{URL: raw, Data: data, MIME: kind.MIME.Value, Declared: declared}, nil
}
