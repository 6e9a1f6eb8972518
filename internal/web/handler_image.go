package web

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/vbonduro/photowall/internal/imagecache"
	"github.com/vbonduro/photowall/internal/photoapi"
)

const maxImageSize = 50 * 1024 * 1024 // 50 MB

// allowedImageTypes is the set of MIME types served from the image proxy.
// net/http.DetectContentType handles JPEG, PNG, and GIF via magic-byte
// sniffing. WebP is detected separately because the WHATWG sniffing algorithm (and
// therefore the stdlib) does not include a WebP signature.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// isWebP reports whether data is a WebP image (RIFF container with "WEBP" at
// offset 8).
func isWebP(data []byte) bool {
	return len(data) >= 12 &&
		string(data[0:4]) == "RIFF" &&
		string(data[8:12]) == "WEBP"
}

// allowedImageMIME returns the detected MIME type and true if the data is an
// accepted image format, or ("", false) otherwise.
func allowedImageMIME(data []byte) (string, bool) {
	if isWebP(data) {
		return "image/webp", true
	}
	mime := http.DetectContentType(data)
	if allowedImageTypes[mime] {
		return mime, true
	}
	return "", false
}

// handleImage serves an uploaded image from the cache, fetching and caching
// it from the API server on a miss.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	key, ok := imagecache.KeyForURL(imagecache.URLPrefix + r.PathValue("folder") + "/" + r.PathValue("file"))
	if !ok {
		http.NotFound(w, r)
		return
	}

	rc, mimeType, err := s.cache.Get(r.Context(), key)
	switch {
	case err == nil:
		defer closeWithLog(rc, "cached image", s.logger)
		writeImage(w, mimeType)
		if _, err := io.Copy(w, rc); err != nil {
			s.logger.Error("stream cached image failed", "key", key, "error", err)
		}
		return
	case !errors.Is(err, imagecache.ErrNotFound):
		s.logger.Error("read image cache failed", "key", key, "error", err)
	}

	data, mimeType, err := s.fetchImage(r, key)
	if err != nil {
		var netErr *photoapi.NetworkError
		if errors.As(err, &netErr) && netErr.Status == http.StatusNotFound {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "failed to fetch image", http.StatusBadGateway)
		s.logger.Error("fetch image failed", "key", key, "error", err)
		return
	}

	if err := s.cache.Put(r.Context(), key, mimeType, bytes.NewReader(data)); err != nil {
		s.logger.Error("cache image failed", "key", key, "error", err)
	}
	writeImage(w, mimeType)
	_, _ = w.Write(data)
}

// fetchImage downloads key from the API server and checks that it is an
// image of an accepted type.
func (s *Server) fetchImage(r *http.Request, key string) ([]byte, string, error) {
	body, _, err := s.api.FetchImage(r.Context(), key)
	if err != nil {
		return nil, "", err
	}
	defer closeWithLog(body, "upstream image", s.logger)

	data, err := io.ReadAll(io.LimitReader(body, maxImageSize+1))
	if err != nil {
		return nil, "", fmt.Errorf("read upstream image: %w", err)
	}
	if len(data) > maxImageSize {
		return nil, "", fmt.Errorf("upstream image exceeds %d bytes", maxImageSize)
	}
	mimeType, ok := allowedImageMIME(data)
	if !ok {
		return nil, "", errors.New("upstream returned an unsupported image format")
	}
	return data, mimeType, nil
}

func writeImage(w http.ResponseWriter, mimeType string) {
	w.Header().Set("Content-Type", mimeType)
	w.Header().Set("Cache-Control", "public, max-age=86400")
}
