package web

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
)

const maxUploadSize = 200 * 1024 * 1024 // 200 MB

const sessionName = "photowall"

const (
	flashUploaded     = "上传完成。"
	flashUploadFailed = "上传失败，请稍后重试。"
)

// NewSessionStore returns the cookie store for flash messages. An empty
// secret gets a random key, so flashes do not survive a restart.
func NewSessionStore(secret string) *sessions.CookieStore {
	key := []byte(secret)
	if secret == "" {
		key = securecookie.GenerateRandomKey(32)
	}
	store := sessions.NewCookieStore(key)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

// handleUpload forwards the admin upload form to the API server and sends
// the browser back to the admin page with a flash message describing the
// outcome.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || mediaType != "multipart/form-data" {
		http.Error(w, "multipart form required", http.StatusBadRequest)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)

	msg := flashUploaded
	if err := s.api.Upload(r.Context(), contentType, r.Body); err != nil {
		s.logger.Error("upload failed", "error", err)
		msg = flashUploadFailed
	} else {
		s.logger.Info("upload forwarded")
	}

	s.addFlash(w, r, msg)
	http.Redirect(w, r, s.opts.AdminPath, http.StatusSeeOther)
}

func (s *Server) addFlash(w http.ResponseWriter, r *http.Request, msg string) {
	// Get returns a fresh session alongside a decode error.
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil {
		s.logger.Warn("discarding invalid session cookie", "error", err)
	}
	sess.AddFlash(msg)
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("save session failed", "error", err)
	}
}

// popFlash returns and clears pending flash messages. It must run before the
// response body is written.
func (s *Server) popFlash(w http.ResponseWriter, r *http.Request) string {
	sess, err := s.sessions.Get(r, sessionName)
	if err != nil {
		s.logger.Warn("discarding invalid session cookie", "error", err)
	}
	flashes := sess.Flashes()
	if len(flashes) == 0 {
		return ""
	}
	if err := sess.Save(r, w); err != nil {
		s.logger.Error("save session failed", "error", err)
	}

	msgs := make([]string, 0, len(flashes))
	for _, f := range flashes {
		if m, ok := f.(string); ok {
			msgs = append(msgs, m)
		}
	}
	return strings.Join(msgs, " ")
}
