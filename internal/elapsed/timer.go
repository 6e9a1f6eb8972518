package elapsed

import (
	"context"
	"time"

	"github.com/vbonduro/photowall/internal/dom"
)

// HeaderTarget is the element the gallery page displays the counter in.
const HeaderTarget = "header-title"

// Timer periodically renders the time elapsed since Start into Target.
type Timer struct {
	Start    time.Time
	Interval time.Duration
	Target   string
	Now      func() time.Time
}

// NewTimer returns a one-second Timer writing to the gallery header.
func NewTimer(start time.Time) *Timer {
	return &Timer{
		Start:    start,
		Interval: time.Second,
		Target:   HeaderTarget,
		Now:      time.Now,
	}
}

// Text returns the counter value at the current time.
func (t *Timer) Text() string {
	return Format(t.Now().Sub(t.Start))
}

// Run renders immediately and then once per Interval until ctx is done.
// It returns at once if the surface has no Target element.
func (t *Timer) Run(ctx context.Context, s dom.Surface) {
	if !s.Has(t.Target) {
		return
	}
	s.Apply(dom.SetText(t.Target, t.Text()))

	ticker := time.NewTicker(t.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Apply(dom.SetText(t.Target, t.Text()))
		}
	}
}
