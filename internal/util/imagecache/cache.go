// Package imagecache keeps downloaded source images on disk so repeated
// runs against the same URL skip the network.
package imagecache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	httputil "github.com/jmylchreest/ctbs/internal/util/http"
)

// Cache stores remote images under Dir.
type Cache struct {
	// Dir is the cache directory. Empty means DefaultDir.
	Dir string

	// Timeout is passed to the HTTP fetch.
	Timeout time.Duration

	// Refresh re-downloads even when a cached copy exists.
	Refresh bool
}

// DefaultDir returns the default cache directory path.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "ctbs", "images"), nil
	}
	return filepath.Join(cacheDir, "ctbs", "images"), nil
}

// Filename derives a stable file name from url: the first 16 bytes of its
// SHA-256 in hex plus the URL's extension, or ".img" when it has none.
func Filename(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.Contains(ext, "/") {
		ext = ".img"
	}
	return fmt.Sprintf("%x%s", hash[:16], strings.ToLower(ext))
}

// Get returns a local path holding the content of url, downloading it
// when it is not cached yet.
func (c Cache) Get(ctx context.Context, url string) (string, error) {
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return "", fmt.Errorf("invalid URL: must start with http:// or https://")
	}

	dir := c.Dir
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return "", err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return "", fmt.Errorf("failed to create cache directory: %w", err)
	}

	path := filepath.Join(dir, Filename(url))
	if !c.Refresh {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	img, err := httputil.FetchImage(ctx, url, httputil.FetchOptions{Timeout: c.Timeout})
	if err != nil {
		return "", fmt.Errorf("failed to download image: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".download-*")
	if err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(img.Data); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to write cached image: %w", err)
	}
	return path, nil
}
