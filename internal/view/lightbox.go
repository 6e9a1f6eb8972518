package view

import "github.com/vbonduro/photowall/internal/dom"

// Lightbox is the full-image overlay of the gallery page.
type Lightbox struct {
	surface dom.Surface
	root    string
	visible bool
	src     string
	caption string
}

func NewLightbox(surface dom.Surface) *Lightbox {
	return &Lightbox{surface: surface, root: LightboxID}
}

// Root is the ID of the overlay element. Only clicks whose target is this
// element itself close the lightbox.
func (l *Lightbox) Root() string { return l.root }

func (l *Lightbox) Visible() bool { return l.visible }

// Show opens the overlay on originalURL. An empty timestamp is captioned
// UnknownTime.
func (l *Lightbox) Show(originalURL, timestamp string) {
	caption := timestamp
	if caption == "" {
		caption = UnknownTime
	}
	l.src = originalURL
	l.caption = caption
	l.visible = true
	l.surface.Apply(
		dom.SetAttr(LightboxImgID, "src", originalURL),
		dom.SetText(LightboxTimestampID, caption),
		dom.SetAttr(DownloadLinkID, "href", originalURL),
		dom.SetStyle(l.root, "display", "flex"),
	)
}

func (l *Lightbox) Close() {
	l.visible = false
	l.surface.Apply(dom.SetStyle(l.root, "display", "none"))
}

// HandleClick closes the overlay when target is the overlay background.
// Clicks on descendants are ignored.
func (l *Lightbox) HandleClick(target string) {
	if target == l.root && l.visible {
		l.Close()
	}
}
