// Package imagecache stores image bytes fetched from the photo API server so
// repeat page views are served locally.
package imagecache

import (
	"context"
	"errors"
	"io"
	"strings"
)

// ErrNotFound is returned by Get and Delete for keys that are not cached.
var ErrNotFound = errors.New("image not cached")

// Cache keys are slash-separated relative paths such as
// "thumbnails/thumb_1.png".
type Cache interface {
	Put(ctx context.Context, key, mimeType string, r io.Reader) error
	Get(ctx context.Context, key string) (io.ReadCloser, string, error)
	Delete(ctx context.Context, key string) error
}

// URLPrefix is the path under which the API server and the front-end serve
// uploaded images.
const URLPrefix = "/uploads/"

// Folders that may be cached and proxied.
var Folders = map[string]bool{"originals": true, "thumbnails": true}

// KeyForURL maps an image URL such as "/uploads/thumbnails/x.png" to its
// cache key. It reports false for URLs outside the known folders.
func KeyForURL(u string) (string, bool) {
	rest, ok := strings.CutPrefix(u, URLPrefix)
	if !ok {
		return "", false
	}
	folder, file, ok := strings.Cut(rest, "/")
	if !ok || !Folders[folder] || file == "" || file == "." || file == ".." || strings.Contains(file, "/") {
		return "", false
	}
	return folder + "/" + file, true
}
