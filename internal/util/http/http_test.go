package http

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{R: 255, A: 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode png: %v", err)
	}
	return buf.Bytes()
}

func TestFetchImage(t *testing.T) {
	body := pngBytes(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/red.png":
			if !strings.HasPrefix(r.UserAgent(), UserAgentName+"/") {
				http.Error(w, "bad agent", http.StatusBadRequest)
				return
			}
			if !strings.Contains(r.Header.Get("Accept"), "image/") || r.Header.Get("X-Test") != "yes" {
				http.Error(w, "missing header", http.StatusBadRequest)
				return
			}
			_, _ = w.Write(body)
		case "/mislabelled":
			w.Header().Set("Content-Type", "application/octet-stream")
			_, _ = w.Write(body)
		case "/page":
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>hello</body></html>"))
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write(body)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	t.Run("png", func(t *testing.T) {
		img, err := FetchImage(ctx, srv.URL+"/red.png", FetchOptions{Headers: map[string]string{"X-Test": "yes"}})
		if err != nil {
			t.Fatalf("FetchImage() error = %v", err)
		}
		if !bytes.Equal(img.Data, body) {
			t.Errorf("FetchImage() returned %d bytes, want %d", len(img.Data), len(body))
		}
		if img.MIME != "image/png" {
			t.Errorf("MIME = %q, want image/png", img.MIME)
		}
	})

	t.Run("sniffs past the content type", func(t *testing.T) {
		img, err := FetchImage(ctx, srv.URL+"/mislabelled", FetchOptions{})
		if err != nil {
			t.Fatalf("FetchImage() error = %v", err)
		}
		if img.MIME != "image/png" || img.Declared != "application/octet-stream" {
			t.Errorf("MIME = %q, Declared = %q", img.MIME, img.Declared)
		}
	})

	t.Run("html page", func(t *testing.T) {
		_, err := FetchImage(ctx, srv.URL+"/page", FetchOptions{})
		if !errors.Is(err, ErrNotImage) {
			t.Fatalf("FetchImage() error = %v, want ErrNotImage", err)
		}
		if !strings.Contains(err.Error(), "text/html") {
			t.Errorf("error %q should name the served type", err)
		}
	})

	t.Run("status error", func(t *testing.T) {
		_, err := FetchImage(ctx, srv.URL+"/missing.png", FetchOptions{})
		if err == nil || !strings.Contains(err.Error(), "404") {
			t.Errorf("FetchImage() error = %v, want 404", err)
		}
	})

	t.Run("size limit", func(t *testing.T) {
		n := int64(len(body))
		if _, err := FetchImage(ctx, srv.URL+"/mislabelled", FetchOptions{MaxBytes: n - 1}); err == nil {
			t.Error("expected error when the image exceeds MaxBytes")
		}
		if _, err := FetchImage(ctx, srv.URL+"/mislabelled", FetchOptions{MaxBytes: n}); err != nil {
			t.Errorf("image at the limit rejected: %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		if _, err := FetchImage(ctx, srv.URL+"/slow", FetchOptions{Timeout: 20 * time.Millisecond}); err == nil {
			t.Error("expected timeout error")
		}
	})
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url     string
		wantErr bool
	}{
		{url: "https://example.com/a.png"},
		{url: "http://127.0.0.1:8080/a.webp"},
		{url: "ftp://example.com/a.png", wantErr: true},
		{url: "file:///tmp/a.png", wantErr: true},
		{url: "https://", wantErr: true},
		{url: "://nope", wantErr: true},
		{url: "photo.png", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if err := ValidateURL(tt.url); (err != nil) != tt.wantErr {
				t.Errorf("ValidateURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
