package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/imagecache"
)

// photoRepository is the subset of photoapi.Client that PhotoService requires.
type photoRepository interface {
	ListPublic(ctx context.Context, category string) ([]domain.Photo, error)
	ListAdmin(ctx context.Context) ([]domain.Photo, error)
	ToggleVisibility(ctx context.Context, id int64) (bool, error)
	DeleteImage(ctx context.Context, id int64) error
}

type PhotoService struct {
	repo   photoRepository
	cache  imagecache.Cache
	logger *slog.Logger
}

// NewPhotoService wires the repository and an optional image cache, which
// may be nil.
func NewPhotoService(repo photoRepository, cache imagecache.Cache, logger *slog.Logger) *PhotoService {
	return &PhotoService{repo: repo, cache: cache, logger: logger}
}

func (s *PhotoService) ListPublic(ctx context.Context, category string) ([]domain.Photo, error) {
	photos, err := s.repo.ListPublic(ctx, category)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("listed public photos", "category", category, "count", len(photos))
	return photos, nil
}

func (s *PhotoService) ListAdmin(ctx context.Context) ([]domain.Photo, error) {
	photos, err := s.repo.ListAdmin(ctx)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("listed admin photos", "count", len(photos))
	return photos, nil
}

func (s *PhotoService) ToggleVisibility(ctx context.Context, id int64) (bool, error) {
	visible, err := s.repo.ToggleVisibility(ctx, id)
	if err != nil {
		return false, err
	}
	s.logger.Info("photo visibility toggled", "photo_id", id, "is_visible", visible)
	return visible, nil
}

// DeleteImage deletes the photo on the API server and then drops any cached
// copies of its images. Cache failures are logged, not returned.
func (s *PhotoService) DeleteImage(ctx context.Context, photo domain.Photo) error {
	if err := s.repo.DeleteImage(ctx, photo.ID); err != nil {
		return err
	}
	s.logger.Info("photo deleted", "photo_id", photo.ID, "filename", photo.OriginalFilename)

	if s.cache == nil {
		return nil
	}
	for _, key := range cacheKeys(photo) {
		if err := s.cache.Delete(ctx, key); err != nil && !errors.Is(err, imagecache.ErrNotFound) {
			s.logger.Error("failed to evict cached image", "photo_id", photo.ID, "key", key, "error", err)
		}
	}
	return nil
}

// cacheKeys returns the cache keys of a photo's images. The admin listing
// carries no original URL, so the original is derived from the thumbnail
// name, which the API server stores as "thumb_" + original name.
func cacheKeys(photo domain.Photo) []string {
	var keys []string
	thumb, ok := imagecache.KeyForURL(photo.ThumbnailURL)
	if ok {
		keys = append(keys, thumb)
	}
	if orig, ok := imagecache.KeyForURL(photo.OriginalURL); ok {
		return append(keys, orig)
	}
	if name, found := strings.CutPrefix(thumb, "thumbnails/thumb_"); found {
		keys = append(keys, "originals/"+name)
	}
	return keys
}
