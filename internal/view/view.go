// Package view holds the gallery, admin and lightbox views. Each view keeps
// its state in an explicit struct, renders markup as a pure function of that
// state and writes the result to a dom.Surface.
//
// Views are not safe for concurrent use: all methods, and every completion
// returned through a Runner, must run on the same event loop.
package view

import (
	"context"
	"strconv"

	"github.com/vbonduro/photowall/internal/domain"
)

// Photos is the subset of service.PhotoService the views require.
type Photos interface {
	ListPublic(ctx context.Context, category string) ([]domain.Photo, error)
	ListAdmin(ctx context.Context) ([]domain.Photo, error)
	ToggleVisibility(ctx context.Context, id int64) (bool, error)
	DeleteImage(ctx context.Context, photo domain.Photo) error
}

// Runner executes blocking work off the event loop. The function returned by
// work is then executed back on the loop.
type Runner interface {
	Go(work func(ctx context.Context) func())
}

// LoadStatus is the state of a view's most recent list request.
type LoadStatus int

const (
	Loading LoadStatus = iota
	Loaded
	Failed
)

// Element IDs of the page contract.
const (
	AdminListID         = "admin-image-list"
	PhotoGridID         = "photo-grid"
	UploadFormID        = "upload-form"
	UploadStatusID      = "upload-status"
	LightboxID          = "lightbox"
	LightboxImgID       = "lightbox-img"
	LightboxTimestampID = "lightbox-timestamp"
	DownloadLinkID      = "download-link"
)

const activeClass = "active"

func CategoryButtonID(i int) string    { return "category-btn-" + strconv.Itoa(i) }
func AdminFilterButtonID(i int) string { return "admin-filter-btn-" + strconv.Itoa(i) }

func rowID(id int64) string        { return "admin-row-" + strconv.FormatInt(id, 10) }
func statusID(id int64) string     { return "admin-status-" + strconv.FormatInt(id, 10) }
func toggleID(id int64) string     { return "admin-toggle-" + strconv.FormatInt(id, 10) }
func entryID(id int64) string      { return "gallery-entry-" + strconv.FormatInt(id, 10) }
func photoItemID(id int64) string  { return "photo-item-" + strconv.FormatInt(id, 10) }
func photoImageID(id int64) string { return "photo-img-" + strconv.FormatInt(id, 10) }

func findPhoto(photos []domain.Photo, id int64) (domain.Photo, bool) {
	for _, p := range photos {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Photo{}, false
}
