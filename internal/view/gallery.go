package view

import (
	"context"
	"log/slog"
	"slices"

	"github.com/vbonduro/photowall/internal/dom"
	"github.com/vbonduro/photowall/internal/domain"
)

// GalleryState is everything the public photo grid renders from.
type GalleryState struct {
	Category string
	Photos   []domain.Photo
	Status   LoadStatus
	// Seq identifies the latest list request; older responses are dropped.
	Seq uint64
}

type GalleryView struct {
	state      GalleryState
	categories []string
	photos     Photos
	surface    dom.Surface
	run        Runner
	lightbox   *Lightbox
	logger     *slog.Logger
}

func NewGalleryView(photos Photos, surface dom.Surface, run Runner, lightbox *Lightbox, categories []string, logger *slog.Logger) *GalleryView {
	return &GalleryView{
		categories: categories,
		photos:     photos,
		surface:    surface,
		run:        run,
		lightbox:   lightbox,
		logger:     logger,
	}
}

func (v *GalleryView) State() GalleryState { return v.state }

// DefaultCategory is the category the gallery opens on: 游戏 when it is
// configured, otherwise the first configured category.
func DefaultCategory(categories []string) string {
	if slices.Contains(categories, domain.CategoryGame) || len(categories) == 0 {
		return domain.CategoryGame
	}
	return categories[0]
}

// Init loads the default category.
func (v *GalleryView) Init() {
	v.SelectCategory(DefaultCategory(v.categories))
}

// SelectCategory marks the category's button active and reloads the grid
// with photos of that category. Unknown categories are ignored.
func (v *GalleryView) SelectCategory(category string) {
	if !slices.Contains(v.categories, category) {
		v.logger.Warn("ignoring unknown gallery category", "category", category)
		return
	}
	ops := make([]dom.Op, 0, len(v.categories))
	for i, c := range v.categories {
		if c == category {
			ops = append(ops, dom.AddClass(CategoryButtonID(i), activeClass))
		} else {
			ops = append(ops, dom.RemoveClass(CategoryButtonID(i), activeClass))
		}
	}
	v.surface.Apply(ops...)

	v.state.Category = category
	v.load()
}

func (v *GalleryView) load() {
	v.state.Seq++
	v.state.Status = Loading
	v.state.Photos = nil
	v.render()

	seq, category := v.state.Seq, v.state.Category
	v.run.Go(func(ctx context.Context) func() {
		photos, err := v.photos.ListPublic(ctx, category)
		return func() { v.loaded(seq, photos, err) }
	})
}

func (v *GalleryView) loaded(seq uint64, photos []domain.Photo, err error) {
	if seq != v.state.Seq {
		v.logger.Debug("dropping stale gallery response", "seq", seq, "current", v.state.Seq)
		return
	}
	if err != nil {
		v.logger.Error("failed to load public photos", "category", v.state.Category, "error", err)
		v.state.Status = Failed
	} else {
		v.state.Status = Loaded
		v.state.Photos = photos
	}
	v.render()
}

func (v *GalleryView) render() {
	v.surface.Apply(dom.SetHTML(PhotoGridID, RenderGallery(v.state)))
}

// OpenPhoto shows the photo's original image in the lightbox.
func (v *GalleryView) OpenPhoto(id int64) {
	p, ok := findPhoto(v.state.Photos, id)
	if !ok {
		return
	}
	v.lightbox.Show(p.OriginalURL, p.Timestamp)
}

// ImageLoaded marks the entry's image as loaded.
func (v *GalleryView) ImageLoaded(id int64) {
	if _, ok := findPhoto(v.state.Photos, id); !ok {
		return
	}
	v.surface.Apply(dom.AddClass(photoImageID(id), "loaded"))
}

// ImageFailed replaces only the entry's image with a failure notice.
func (v *GalleryView) ImageFailed(id int64) {
	if _, ok := findPhoto(v.state.Photos, id); !ok {
		return
	}
	v.surface.Apply(dom.SetHTML(photoItemID(id), renderImageFailed()))
}
