// Package http downloads remote images for palette extraction.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/jmylchreest/ctbs/internal/version"
)

const (
	// UserAgentName is the application name used in the User-Agent header.
	UserAgentName = "ctbs"

	// DefaultTimeout is the default download timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBytes caps the size of a downloaded image.
	DefaultMaxBytes int64 = 50 << 20

	acceptImages = "image/png, image/jpeg, image/gif, image/webp;q=0.9, image/*;q=0.5"
)

// FetchOptions configures an image download.
type FetchOptions struct {
	// Timeout bounds the whole request. Zero means DefaultTimeout.
	Timeout time.Duration

	// MaxBytes limits the body. Zero means DefaultMaxBytes.
	MaxBytes int64

	// Headers are sent in addition to User-Agent and Accept.
	Headers map[string]string
}

// Image is a downloaded image body and its media type.
type Image struct {
	Data        []byte
	ContentType string
}

// UserAgent returns the User-Agent header value sent with every download.
func UserAgent() string {
	return fmt.Sprintf("%s/%s", UserAgentName, version.Short())
}

// IsImageType reports whether a Content-Type value can hold an image.
// Generic binary types pass; the decoder has the final word on them.
func IsImageType(contentType string) bool {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(media, "image/") || media == "application/octet-stream"
}

// FetchImage downloads url and checks that the server sent an image.
// A missing Content-Type is sniffed from the body.
func FetchImage(ctx context.Context, url string, opts FetchOptions) (*Image, error) {
	timeout := opts.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	limit := opts.MaxBytes
	if limit == 0 {
		limit = DefaultMaxBytes
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent())
	req.Header.Set("Accept", acceptImages)
	for key, value := range opts.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{Timeout: timeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}
	if resp.ContentLength > limit {
		return nil, fmt.Errorf("image of %d bytes exceeds %d bytes", resp.ContentLength, limit)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(data)) > limit {
		return nil, fmt.Errorf("image exceeds %d bytes", limit)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	if !IsImageType(contentType) {
		return nil, fmt.Errorf("%s is not an image (Content-Type %q)", url, contentType)
	}

	return &Image{Data: data, ContentType: contentType}, nil
}
