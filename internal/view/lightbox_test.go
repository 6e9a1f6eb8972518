package view

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vbonduro/photowall/internal/dom/domtest"
)

func TestLightboxShow(t *testing.T) {
	rec := domtest.NewRecorder()
	lb := NewLightbox(rec)

	lb.Show("/uploads/originals/a.png", "2025-02-14 20:00:00")

	assert.True(t, lb.Visible())
	assert.Equal(t, "/uploads/originals/a.png", rec.Attr(LightboxImgID, "src"))
	assert.Equal(t, "/uploads/originals/a.png", rec.Attr(DownloadLinkID, "href"))
	assert.Equal(t, "2025-02-14 20:00:00", rec.Text(LightboxTimestampID))
	assert.Equal(t, "flex", rec.Style(LightboxID, "display"))
}

func TestLightboxShowWithoutTimestamp(t *testing.T) {
	rec := domtest.NewRecorder()
	lb := NewLightbox(rec)

	lb.Show("/uploads/originals/a.png", "")

	assert.Equal(t, UnknownTime, rec.Text(LightboxTimestampID))
}

func TestLightboxCloseAndReopen(t *testing.T) {
	rec := domtest.NewRecorder()
	lb := NewLightbox(rec)

	lb.Show("/uploads/originals/a.png", "t1")
	lb.Close()
	assert.False(t, lb.Visible())
	assert.Equal(t, "none", rec.Style(LightboxID, "display"))

	lb.Show("/uploads/originals/b.png", "t2")
	assert.True(t, lb.Visible())
	assert.Equal(t, "flex", rec.Style(LightboxID, "display"))
	assert.Equal(t, "/uploads/originals/b.png", rec.Attr(LightboxImgID, "src"))
	assert.Equal(t, "t2", rec.Text(LightboxTimestampID))
}

func TestLightboxHandleClick(t *testing.T) {
	rec := domtest.NewRecorder()
	lb := NewLightbox(rec)
	lb.Show("/uploads/originals/a.png", "t1")

	for _, descendant := range []string{LightboxImgID, LightboxTimestampID, DownloadLinkID, ""} {
		lb.HandleClick(descendant)
		assert.True(t, lb.Visible(), "click on %q must not close", descendant)
	}

	lb.HandleClick(lb.Root())
	assert.False(t, lb.Visible())
	assert.Equal(t, "none", rec.Style(LightboxID, "display"))
}
