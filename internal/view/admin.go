package view

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vbonduro/photowall/internal/dom"
	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/photoapi"
)

// AdminState is everything the admin list renders from. Photos is the full
// snapshot from the last completed load; filtering happens at render time.
type AdminState struct {
	Filter string
	Photos []domain.Photo
	Status LoadStatus
	// Seq identifies the latest list request; older responses are dropped.
	Seq uint64
	// InFlight holds the ids with an outstanding toggle or delete.
	InFlight map[int64]bool
}

type AdminView struct {
	state      AdminState
	categories []string
	photos     Photos
	surface    dom.Surface
	dialogs    dom.Dialogs
	run        Runner
	logger     *slog.Logger
}

func NewAdminView(photos Photos, surface dom.Surface, dialogs dom.Dialogs, run Runner, categories []string, logger *slog.Logger) *AdminView {
	return &AdminView{
		state:      AdminState{Filter: domain.FilterAll, InFlight: make(map[int64]bool)},
		categories: categories,
		photos:     photos,
		surface:    surface,
		dialogs:    dialogs,
		run:        run,
		logger:     logger,
	}
}

func (v *AdminView) State() AdminState { return v.state }

// Init loads every photo.
func (v *AdminView) Init() {
	v.SetFilter(domain.FilterAll)
}

// SetFilter marks the filter's button active and reloads the list. A value
// with no button activates the All button and is filtered as All.
func (v *AdminView) SetFilter(filter string) {
	filters := AdminFilters(v.categories)
	active := 0
	for i, f := range filters {
		if f == filter {
			active = i
			break
		}
	}
	ops := make([]dom.Op, 0, len(filters))
	for i := range filters {
		if i == active {
			ops = append(ops, dom.AddClass(AdminFilterButtonID(i), activeClass))
		} else {
			ops = append(ops, dom.RemoveClass(AdminFilterButtonID(i), activeClass))
		}
	}
	v.surface.Apply(ops...)

	v.state.Filter = filter
	v.load()
}

func (v *AdminView) load() {
	v.state.Seq++
	v.state.Status = Loading
	v.state.Photos = nil
	v.render()

	seq := v.state.Seq
	v.run.Go(func(ctx context.Context) func() {
		photos, err := v.photos.ListAdmin(ctx)
		return func() { v.loaded(seq, photos, err) }
	})
}

func (v *AdminView) loaded(seq uint64, photos []domain.Photo, err error) {
	if seq != v.state.Seq {
		v.logger.Debug("dropping stale admin response", "seq", seq, "current", v.state.Seq)
		return
	}
	if err != nil {
		v.logger.Error("failed to load admin photos", "filter", v.state.Filter, "error", err)
		v.state.Status = Failed
	} else {
		v.state.Status = Loaded
		v.state.Photos = photos
	}
	v.render()
}

func (v *AdminView) render() {
	v.surface.Apply(dom.SetHTML(AdminListID, RenderAdmin(v.state, v.categories)))
}

// Toggle flips the photo's visibility. On success only the row's status
// label and toggle button change; on failure nothing changes.
func (v *AdminView) Toggle(id int64) {
	if !v.begin(id) {
		return
	}
	v.run.Go(func(ctx context.Context) func() {
		visible, err := v.photos.ToggleVisibility(ctx, id)
		return func() {
			delete(v.state.InFlight, id)
			if err != nil {
				v.logger.Error("failed to toggle visibility", "photo_id", id, "error", err)
				v.dialogs.Alert(mutationMessage(err, msgToggleFailed, msgToggleError))
				return
			}
			v.surface.Apply(
				dom.SetText(statusID(id), visibilityLabel(visible)),
				dom.SetText(toggleID(id), toggleLabel(visible)),
			)
		}
	})
}

// Delete asks for confirmation and then deletes the photo, reloading the
// list on success. No request is made unless the user confirms.
func (v *AdminView) Delete(id int64) {
	if !v.begin(id) {
		return
	}
	photo, ok := findPhoto(v.state.Photos, id)
	if !ok {
		photo = domain.Photo{ID: id}
	}
	v.dialogs.Confirm(msgConfirmDelete, func(confirmed bool) {
		if !confirmed {
			delete(v.state.InFlight, id)
			return
		}
		v.run.Go(func(ctx context.Context) func() {
			err := v.photos.DeleteImage(ctx, photo)
			return func() {
				delete(v.state.InFlight, id)
				if err != nil {
					v.logger.Error("failed to delete photo", "photo_id", id, "error", err)
					v.dialogs.Alert(mutationMessage(err, msgDeleteFailed, msgDeleteError))
					return
				}
				v.load()
			}
		})
	})
}

// begin records id as in flight. It reports false if a mutation for id is
// already outstanding.
func (v *AdminView) begin(id int64) bool {
	if v.state.InFlight[id] {
		v.logger.Debug("ignoring repeat action while in flight", "photo_id", id)
		return false
	}
	v.state.InFlight[id] = true
	return true
}

// UploadSubmitted shows upload progress while the browser submits the form.
func (v *AdminView) UploadSubmitted() {
	if !v.surface.Has(UploadFormID) || !v.surface.Has(UploadStatusID) {
		return
	}
	v.surface.Apply(dom.SetText(UploadStatusID, msgUploading))
}

// mutationMessage returns the alert text for a failed mutation: the
// server's message for application errors, a generic one otherwise.
func mutationMessage(err error, failedPrefix, generic string) string {
	var appErr *photoapi.ApplicationError
	if errors.As(err, &appErr) {
		return failedPrefix + appErr.Message
	}
	return generic
}
