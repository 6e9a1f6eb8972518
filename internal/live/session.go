// Package live drives the gallery and admin pages over a WebSocket. Each
// connection gets a Session with its own event loop; the browser forwards UI
// events and the session answers with DOM operations.
package live

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vbonduro/photowall/internal/dom"
	"github.com/vbonduro/photowall/internal/elapsed"
	"github.com/vbonduro/photowall/internal/view"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 4096
	sendBuffer     = 64
)

// Config is what every session needs to build its views.
type Config struct {
	Photos     view.Photos
	Categories []string
	TimerStart time.Time
	Logger     *slog.Logger
}

// Session is one live page. It implements dom.Surface, dom.Dialogs and
// view.Runner for the views it mounts.
type Session struct {
	ID string

	conn   *websocket.Conn
	cfg    Config
	logger *slog.Logger
	send   chan []byte
	tasks  chan func()
	ctx    context.Context
	cancel context.CancelFunc

	mu  sync.RWMutex
	ids map[string]bool

	// Owned by the event loop.
	mounted  bool
	confirms map[string]func(bool)
	gallery  *view.GalleryView
	admin    *view.AdminView
	lightbox *view.Lightbox
}

func newSession(parent context.Context, conn *websocket.Conn, cfg Config) *Session {
	ctx, cancel := context.WithCancel(parent)
	id := uuid.NewString()
	return &Session{
		ID:       id,
		conn:     conn,
		cfg:      cfg,
		logger:   cfg.Logger.With("session_id", id),
		send:     make(chan []byte, sendBuffer),
		tasks:    make(chan func()),
		ctx:      ctx,
		cancel:   cancel,
		ids:      make(map[string]bool),
		confirms: make(map[string]func(bool)),
	}
}

// Close stops the session. The write pump then closes the connection.
func (s *Session) Close() {
	s.cancel()
}

func (s *Session) Has(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.ids[id]
}

// Apply queues ops as one message. It drops them once the session is closed.
func (s *Session) Apply(ops ...dom.Op) {
	if len(ops) == 0 {
		return
	}
	b, err := json.Marshal(ops)
	if err != nil {
		s.logger.Error("failed to encode dom ops", "error", err)
		return
	}
	select {
	case s.send <- b:
	case <-s.ctx.Done():
	}
}

func (s *Session) Alert(message string) {
	s.Apply(dom.Op{Kind: dom.OpAlert, Value: message})
}

// Confirm sends a confirmation prompt and runs answer on the event loop when
// the matching confirm event arrives.
func (s *Session) Confirm(prompt string, answer func(ok bool)) {
	token := uuid.NewString()
	s.confirms[token] = answer
	s.Apply(dom.Op{Kind: dom.OpConfirm, Value: prompt, Token: token})
}

// Go runs work on its own goroutine and its completion on the event loop.
func (s *Session) Go(work func(ctx context.Context) func()) {
	go func() {
		done := work(s.ctx)
		if done != nil {
			s.post(done)
		}
	}()
}

// post hands task to the event loop. It reports false if the session closed
// first.
func (s *Session) post(task func()) bool {
	select {
	case s.tasks <- task:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Session) loop() {
	for {
		select {
		case <-s.ctx.Done():
			return
		case task := <-s.tasks:
			task()
		}
	}
}

// mount starts the view matching the page's markers. A page with neither
// marker gets no view.
func (s *Session) mount(markers []string) {
	if s.mounted {
		s.logger.Warn("ignoring repeated mount")
		return
	}
	s.mounted = true

	s.mu.Lock()
	for _, id := range markers {
		s.ids[id] = true
	}
	s.mu.Unlock()

	switch {
	case s.Has(view.AdminListID):
		s.logger.Info("mounting admin view")
		s.admin = view.NewAdminView(s.cfg.Photos, s, s, s, s.cfg.Categories, s.logger)
		s.admin.Init()
	case s.Has(view.PhotoGridID):
		s.logger.Info("mounting gallery view")
		s.lightbox = view.NewLightbox(s)
		s.gallery = view.NewGalleryView(s.cfg.Photos, s, s, s.lightbox, s.cfg.Categories, s.logger)
		s.gallery.Init()
		go elapsed.NewTimer(s.cfg.TimerStart).Run(s.ctx, s)
	default:
		s.logger.Debug("page has no view markers")
	}
}

func (s *Session) handle(ev Event) {
	if ev.Type == EventMount {
		s.mount(ev.Markers)
		return
	}
	if !s.mounted {
		s.logger.Warn("ignoring event before mount", "type", ev.Type)
		return
	}

	switch ev.Type {
	case EventFilter:
		switch {
		case s.admin != nil:
			s.admin.SetFilter(ev.Value)
		case s.gallery != nil:
			s.gallery.SelectCategory(ev.Value)
		}
	case EventOpen:
		if s.gallery != nil {
			s.gallery.OpenPhoto(ev.ID)
		}
	case EventClick:
		if s.lightbox != nil {
			s.lightbox.HandleClick(ev.Target)
		}
	case EventClose:
		if s.lightbox != nil {
			s.lightbox.Close()
		}
	case EventImageLoad:
		if s.gallery != nil {
			s.gallery.ImageLoaded(ev.ID)
		}
	case EventImageError:
		if s.gallery != nil {
			s.gallery.ImageFailed(ev.ID)
		}
	case EventToggle:
		if s.admin != nil {
			s.admin.Toggle(ev.ID)
		}
	case EventDelete:
		if s.admin != nil {
			s.admin.Delete(ev.ID)
		}
	case EventConfirm:
		answer, ok := s.confirms[ev.Token]
		if !ok {
			s.logger.Warn("ignoring unknown confirm token")
			return
		}
		delete(s.confirms, ev.Token)
		answer(ev.OK)
	case EventUploadSubmit:
		if s.admin != nil {
			s.admin.UploadSubmitted()
		}
	default:
		s.logger.Warn("ignoring unknown event", "type", ev.Type)
	}
}

// readPump decodes events from the connection and posts them to the loop.
func (s *Session) readPump() {
	defer s.Close()

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Warn("live connection error", "error", err)
			}
			return
		}

		var ev Event
		if err := json.Unmarshal(message, &ev); err != nil {
			s.logger.Warn("ignoring malformed event", "error", err)
			continue
		}
		if !s.post(func() { s.handle(ev) }) {
			return
		}
	}
}

// writePump writes queued ops and keepalive pings until the session closes.
// Messages queued together are joined with newlines into one frame.
func (s *Session) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = s.conn.Close()
	}()

	for {
		select {
		case <-s.ctx.Done():
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			_ = s.conn.WriteMessage(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseGoingAway, ""))
			return

		case message := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			w, err := s.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				s.Close()
				return
			}
			_, _ = w.Write(message)

			n := len(s.send)
			for i := 0; i < n; i++ {
				_, _ = w.Write([]byte{'\n'})
				_, _ = w.Write(<-s.send)
			}

			if err := w.Close(); err != nil {
				s.Close()
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				s.Close()
				return
			}
		}
	}
}
