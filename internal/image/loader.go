// Package image provides utilities for loading and preparing source images.
package image

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"math/rand/v2"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/ctbs/internal/util/http"
	"github.com/jmylchreest/ctbs/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path or URL.
	Load(ctx context.Context, path string) (image.Image, error)
}

// SmartLoader loads images from local files, directories and HTTP(S) URLs.
// A directory resolves to one of its images picked at random.
type SmartLoader struct {
	timeout time.Duration
	rng     *rand.Rand
	cache   *imagecache.Cache
	logger  hclog.Logger
}

// NewSmartLoader creates a new SmartLoader instance. A zero timeout uses
// the HTTP default; a nil logger discards output.
func NewSmartLoader(timeout time.Duration, logger hclog.Logger) *SmartLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SmartLoader{
		timeout: timeout,
		rng:     rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		logger:  logger,
	}
}

// WithSeed makes directory picks reproducible.
func (l *SmartLoader) WithSeed(seed uint64) *SmartLoader {
	l.rng = rand.New(rand.NewPCG(seed, seed))
	return l
}

// WithCache stores URL downloads in dir and reuses them on later loads.
func (l *SmartLoader) WithCache(dir string) *SmartLoader {
	l.cache = &imagecache.Cache{Dir: dir, Timeout: l.timeout}
	return l
}

// Load loads an image from a file, a directory or an HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	if IsURL(path) {
		return l.loadFromURL(ctx, path)
	}

	resolved, err := l.resolve(path)
	if err != nil {
		return nil, err
	}
	if resolved != path {
		l.logger.Debug("picked image from directory", "dir", path, "image", resolved)
	}
	return LoadFile(resolved)
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// LoadFile decodes a local image file.
// Supported formats: JPEG, PNG, GIF, WebP.
func LoadFile(path string) (image.Image, error) {
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

// loadFromURL fetches and decodes an image from an HTTP(S) URL.
func (l *SmartLoader) loadFromURL(ctx context.Context, url string) (image.Image, error) {
	if l.cache != nil {
		path, err := l.cache.Get(ctx, url)
		if err != nil {
			return nil, err
		}
		l.logger.Debug("loaded cached image", "url", url, "path", path)
		return LoadFile(path)
	}

	l.logger.Debug("fetching image", "url", url)
	fetched, err := httputil.FetchImage(ctx, url, httputil.FetchOptions{Timeout: l.timeout})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	l.logger.Debug("fetched image", "url", url, "type", fetched.ContentType, "bytes", len(fetched.Data))

	img, format, err := image.Decode(bytes.NewReader(fetched.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// resolve returns path unchanged for files and a random image for
// directories.
func (l *SmartLoader) resolve(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("image file or directory not found: %s", path)
		}
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	imageFiles, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}
	return imageFiles[l.rng.IntN(len(imageFiles))], nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// isImageFile checks if a file has a supported image extension.
func isImageFile(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return slices.Contains(SupportedImageExtensions(), ext)
}

// ScanDirectoryForImages returns the image files in a directory, sorted.
// It does not recurse into subdirectories, but follows symlinks.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var imageFiles []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())

		// For symlinks, stat the target to determine if it's a file.
		info, err := os.Stat(fullPath)
		if err != nil {
			continue
		}
		if info.IsDir() {
			continue
		}
		if isImageFile(entry.Name()) {
			imageFiles = append(imageFiles, fullPath)
		}
	}

	if len(imageFiles) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	slices.Sort(imageFiles)
	return imageFiles, nil
}
