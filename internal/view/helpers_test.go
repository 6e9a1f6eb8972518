package view

import (
	"context"
	"sync"

	"github.com/vbonduro/photowall/internal/domain"
)

// syncRunner completes work immediately on the caller's goroutine.
type syncRunner struct{}

func (syncRunner) Go(work func(ctx context.Context) func()) {
	work(context.Background())()
}

// queueRunner performs work immediately but holds completions until the
// test releases them, so tests control arrival order.
type queueRunner struct {
	done []func()
}

func (q *queueRunner) Go(work func(ctx context.Context) func()) {
	q.done = append(q.done, work(context.Background()))
}

// complete runs the i-th held completion.
func (q *queueRunner) complete(i int) {
	q.done[i]()
}

// stubPhotos is an in-memory Photos for view tests.
type stubPhotos struct {
	mu         sync.Mutex
	byCategory map[string][]domain.Photo
	all        []domain.Photo
	listErr    error
	toggleErr  error
	deleteErr  error
	visible    map[int64]bool

	publicCalls []string
	adminCalls  int
	toggleCalls []int64
	deleted     []domain.Photo
}

func (s *stubPhotos) ListPublic(_ context.Context, category string) ([]domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.publicCalls = append(s.publicCalls, category)
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.byCategory[category], nil
}

func (s *stubPhotos) ListAdmin(_ context.Context) ([]domain.Photo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.adminCalls++
	if s.listErr != nil {
		return nil, s.listErr
	}
	return s.all, nil
}

func (s *stubPhotos) ToggleVisibility(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.toggleCalls = append(s.toggleCalls, id)
	if s.toggleErr != nil {
		return false, s.toggleErr
	}
	s.visible[id] = !s.visible[id]
	return s.visible[id], nil
}

func (s *stubPhotos) DeleteImage(_ context.Context, photo domain.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, photo)
	return nil
}

var testCategories = []string{domain.CategoryGame, domain.CategoryEvent}

// adminFixture is three visible and two hidden photos across both categories.
func adminFixture() []domain.Photo {
	return []domain.Photo{
		{ID: 1, OriginalFilename: "a.png", ThumbnailURL: "/uploads/thumbnails/thumb_a.png", Category: domain.CategoryGame, IsVisible: true},
		{ID: 2, OriginalFilename: "b.png", ThumbnailURL: "/uploads/thumbnails/thumb_b.png", Category: domain.CategoryGame, IsVisible: false},
		{ID: 3, OriginalFilename: "Sky1.png", ThumbnailURL: "/uploads/thumbnails/thumb_c.png", Category: domain.CategoryEvent, IsVisible: true},
		{ID: 4, OriginalFilename: "Sky2.png", ThumbnailURL: "/uploads/thumbnails/thumb_d.png", Category: domain.CategoryEvent, IsVisible: false},
		{ID: 5, OriginalFilename: "e.png", ThumbnailURL: "/uploads/thumbnails/thumb_e.png", Category: domain.CategoryGame, IsVisible: true},
	}
}
