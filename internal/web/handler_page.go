package web

import (
	"net/http"
	"time"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/elapsed"
	"github.com/vbonduro/photowall/internal/view"
)

// filterButton is one category or filter button. ID, Value and Active must
// match what the views address.
type filterButton struct {
	ID     string
	Value  string
	Active bool
}

type galleryPage struct {
	Title      string
	HeaderText string
	Buttons    []filterButton
	AdminPath  string
}

type adminPage struct {
	Title     string
	Buttons   []filterButton
	Flash     string
	AdminPath string
}

func (s *Server) handleGallery(w http.ResponseWriter, r *http.Request) {
	active := view.DefaultCategory(s.opts.Categories)
	buttons := make([]filterButton, 0, len(s.opts.Categories))
	for i, c := range s.opts.Categories {
		buttons = append(buttons, filterButton{
			ID:     view.CategoryButtonID(i),
			Value:  c,
			Active: c == active,
		})
	}

	data := galleryPage{
		Title:      "照片墙",
		HeaderText: elapsed.Format(time.Since(s.opts.TimerStart)),
		Buttons:    buttons,
		AdminPath:  s.opts.AdminPath,
	}
	if err := s.renderPage(w, data, "base.html", "pages/index.html"); err != nil {
		s.logger.Error("render gallery page failed", "error", err)
	}
}

func (s *Server) handleAdmin(w http.ResponseWriter, r *http.Request) {
	filters := view.AdminFilters(s.opts.Categories)
	buttons := make([]filterButton, 0, len(filters))
	for i, f := range filters {
		buttons = append(buttons, filterButton{
			ID:     view.AdminFilterButtonID(i),
			Value:  f,
			Active: f == domain.FilterAll,
		})
	}

	data := adminPage{
		Title:     "照片墙后台",
		Buttons:   buttons,
		Flash:     s.popFlash(w, r),
		AdminPath: s.opts.AdminPath,
	}
	if err := s.renderPage(w, data, "base.html", "pages/admin.html"); err != nil {
		s.logger.Error("render admin page failed", "error", err)
	}
}
