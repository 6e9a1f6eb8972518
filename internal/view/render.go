package view

import (
	"fmt"
	"slices"
	"strings"

	"github.com/vbonduro/photowall/internal/domain"
	"github.com/vbonduro/photowall/internal/sanitize"
)

// AdminFilters returns the admin filter values in button order: All, each
// configured category, then hidden.
func AdminFilters(categories []string) []string {
	filters := make([]string, 0, len(categories)+2)
	filters = append(filters, domain.FilterAll)
	filters = append(filters, categories...)
	return append(filters, domain.FilterHidden)
}

// FilterAdmin applies an admin filter. Hidden selects invisible records of
// any category, a known category selects that category regardless of
// visibility, and anything else selects everything.
func FilterAdmin(photos []domain.Photo, filter string, categories []string) []domain.Photo {
	switch {
	case filter == domain.FilterHidden:
		return keep(photos, func(p domain.Photo) bool { return !p.IsVisible })
	case slices.Contains(categories, filter):
		return keep(photos, func(p domain.Photo) bool { return p.Category == filter })
	default:
		return photos
	}
}

func keep(photos []domain.Photo, pred func(domain.Photo) bool) []domain.Photo {
	out := make([]domain.Photo, 0, len(photos))
	for _, p := range photos {
		if pred(p) {
			out = append(out, p)
		}
	}
	return out
}

func paragraph(text string) string {
	return "<p>" + sanitize.Escape(text) + "</p>"
}

func visibilityLabel(visible bool) string {
	if visible {
		return labelVisible
	}
	return labelHidden
}

func toggleLabel(visible bool) string {
	if visible {
		return buttonHide
	}
	return buttonShow
}

// RenderGallery returns the markup of the photo grid for state.
func RenderGallery(state GalleryState) string {
	switch state.Status {
	case Loading:
		return paragraph(msgGalleryLoading)
	case Failed:
		return paragraph(msgGalleryFailed)
	}
	if len(state.Photos) == 0 {
		return paragraph(msgGalleryEmpty)
	}

	var b strings.Builder
	for _, p := range state.Photos {
		renderGalleryEntry(&b, p)
	}
	return b.String()
}

func renderGalleryEntry(b *strings.Builder, p domain.Photo) {
	fmt.Fprintf(b, `<div class="gallery-entry" id="%s">`, entryID(p.ID))
	fmt.Fprintf(b, `<div class="photo-item" id="%s">`, photoItemID(p.ID))
	fmt.Fprintf(b, `<img id="%s" src="%s" alt="Photo (Category: %s, Time: %s)" loading="lazy" data-action="open" data-id="%d">`,
		photoImageID(p.ID),
		sanitize.Escape(p.ThumbnailURL),
		sanitize.Escape(p.Category),
		sanitize.Escape(p.Timestamp),
		p.ID,
	)
	b.WriteString(`</div>`)
	fmt.Fprintf(b, `<div class="photo-timestamp">%s</div>`, sanitize.Escape(p.Timestamp))
	b.WriteString(`</div>`)
}

func renderImageFailed() string {
	return `<p class="photo-error">` + msgImageFailed + `</p>`
}

// RenderAdmin returns the markup of the admin list for state.
func RenderAdmin(state AdminState, categories []string) string {
	switch state.Status {
	case Loading:
		return paragraph(msgAdminLoading)
	case Failed:
		return paragraph(msgAdminFailed)
	}

	photos := FilterAdmin(state.Photos, state.Filter, categories)
	if len(photos) == 0 {
		return paragraph(fmt.Sprintf(msgAdminEmpty, state.Filter))
	}

	var b strings.Builder
	b.WriteString(`<table class="admin-table"><thead><tr>`)
	for _, h := range []string{"缩略图", "文件名", "时间戳", "上传时间", "分类", "状态", "操作"} {
		b.WriteString("<th>" + h + "</th>")
	}
	b.WriteString(`</tr></thead><tbody>`)
	for _, p := range photos {
		renderAdminRow(&b, p)
	}
	b.WriteString(`</tbody></table>`)
	return b.String()
}

func renderAdminRow(b *strings.Builder, p domain.Photo) {
	class := ""
	if !p.IsVisible {
		class = ` class="image-hidden"`
	}
	fmt.Fprintf(b, `<tr id="%s" data-id="%d"%s>`, rowID(p.ID), p.ID, class)
	fmt.Fprintf(b, `<td><img src="%s" alt="Thumbnail" class="admin-thumbnail"></td>`, sanitize.Escape(p.ThumbnailURL))
	fmt.Fprintf(b, `<td>%s</td>`, sanitize.Escape(p.OriginalFilename))
	fmt.Fprintf(b, `<td>%s</td>`, sanitize.Escape(p.Timestamp))
	fmt.Fprintf(b, `<td>%s</td>`, sanitize.Escape(p.UploadedAt))
	fmt.Fprintf(b, `<td>%s</td>`, sanitize.Escape(p.Category))
	fmt.Fprintf(b, `<td class="visibility-status" id="%s">%s</td>`, statusID(p.ID), visibilityLabel(p.IsVisible))
	b.WriteString(`<td><div class="action-buttons">`)
	fmt.Fprintf(b, `<button class="btn-toggle" id="%s" data-action="toggle" data-id="%d">%s</button>`,
		toggleID(p.ID), p.ID, toggleLabel(p.IsVisible))
	fmt.Fprintf(b, `<button class="btn-delete" data-action="delete" data-id="%d">%s</button>`, p.ID, buttonDelete)
	b.WriteString(`</div></td></tr>`)
}
