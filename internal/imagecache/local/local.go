package local

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vbonduro/photowall/internal/imagecache"
)

type LocalCache struct {
	basePath string
}

func NewLocalCache(basePath string) (*LocalCache, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &LocalCache{basePath: basePath}, nil
}

// Put writes r to a temporary file and renames it into place so concurrent
// readers never observe a partial image.
func (c *LocalCache) Put(ctx context.Context, key, mimeType string, r io.Reader) error {
	filePath, err := c.safeJoin(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(filePath), ".put-*")
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	tmp := f.Name()
	if _, err := io.Copy(f, r); err != nil {
		if cerr := f.Close(); cerr != nil {
			slog.Error("failed to close file after write error", "error", cerr)
		}
		if rerr := os.Remove(tmp); rerr != nil {
			slog.Error("failed to remove file after write error", "error", rerr)
		}
		return fmt.Errorf("failed to write file: %w", err)
	}
	if err := f.Close(); err != nil {
		if rerr := os.Remove(tmp); rerr != nil {
			slog.Error("failed to remove file after close error", "error", rerr)
		}
		return fmt.Errorf("failed to close file: %w", err)
	}
	if err := os.Rename(tmp, filePath); err != nil {
		if rerr := os.Remove(tmp); rerr != nil {
			slog.Error("failed to remove file after rename error", "error", rerr)
		}
		return fmt.Errorf("failed to move file into place: %w", err)
	}
	slog.Debug("image cached", "key", key, "mime_type", mimeType)
	return nil
}

func (c *LocalCache) Get(ctx context.Context, key string) (io.ReadCloser, string, error) {
	filePath, err := c.safeJoin(key)
	if err != nil {
		return nil, "", err
	}

	f, err := os.Open(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, "", imagecache.ErrNotFound
		}
		return nil, "", fmt.Errorf("failed to open file: %w", err)
	}
	return f, extToMimeType(filePath), nil
}

func (c *LocalCache) Delete(ctx context.Context, key string) error {
	filePath, err := c.safeJoin(key)
	if err != nil {
		return err
	}

	if err := os.Remove(filePath); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return imagecache.ErrNotFound
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// safeJoin resolves key relative to basePath and rejects directory traversal.
func (c *LocalCache) safeJoin(key string) (string, error) {
	absBase, err := filepath.Abs(c.basePath)
	if err != nil {
		return "", fmt.Errorf("invalid base path: %w", err)
	}

	absPath, err := filepath.Abs(filepath.Join(c.basePath, filepath.FromSlash(key)))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}

	if !strings.HasPrefix(absPath, absBase+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return absPath, nil
}

func extToMimeType(filePath string) string {
	switch strings.ToLower(filepath.Ext(filePath)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}
