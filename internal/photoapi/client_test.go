package photoapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL+"/", 5*time.Second)
}

func TestListPublicCategoryQuery(t *testing.T) {
	tests := []struct {
		name      string
		category  string
		wantQuery string
	}{
		{name: "empty requests everything", category: "", wantQuery: ""},
		{name: "All requests everything", category: "All", wantQuery: ""},
		{name: "category is encoded", category: "游戏", wantQuery: "category=%E6%B8%B8%E6%88%8F"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath, gotQuery string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				gotPath = r.URL.Path
				gotQuery = r.URL.RawQuery
				_, _ = w.Write([]byte(`[{"id":1,"thumbnail_url":"/t.png","original_url":"/o.png","timestamp":"2025-02-14 20:00:00","category":"游戏"}]`))
			})

			photos, err := c.ListPublic(context.Background(), tt.category)
			require.NoError(t, err)
			assert.Equal(t, "/api/photos", gotPath)
			assert.Equal(t, tt.wantQuery, gotQuery)
			require.Len(t, photos, 1)
			assert.Equal(t, int64(1), photos[0].ID)
			assert.Equal(t, "/o.png", photos[0].OriginalURL)
		})
	}
}

func TestListAdmin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/admin/api/images", r.URL.Path)
		_, _ = w.Write([]byte(`[
			{"id":2,"original_filename":"a.png","is_visible":false,"category":"活动","uploaded_at":"2025-03-01 10:00:00"},
			{"id":1,"original_filename":"b.png","is_visible":true,"category":"游戏"}
		]`))
	})

	photos, err := c.ListAdmin(context.Background())
	require.NoError(t, err)
	require.Len(t, photos, 2)
	assert.False(t, photos[0].IsVisible)
	assert.Equal(t, "2025-03-01 10:00:00", photos[0].UploadedAt)
	assert.True(t, photos[1].IsVisible)
}

func TestListEmptyAndNull(t *testing.T) {
	for _, body := range []string{"[]", "null"} {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})
		photos, err := c.ListAdmin(context.Background())
		require.NoError(t, err)
		assert.NotNil(t, photos)
		assert.Empty(t, photos)
	}
}

func TestListErrors(t *testing.T) {
	t.Run("non-2xx is a network error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "boom", http.StatusBadGateway)
		})
		_, err := c.ListPublic(context.Background(), "游戏")
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusBadGateway, netErr.Status)
	})

	t.Run("malformed body is a parse error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>not json</html>"))
		})
		_, err := c.ListAdmin(context.Background())
		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
	})

	t.Run("transport failure is a network error", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		c := NewClient(srv.URL, time.Second)
		_, err := c.ListAdmin(context.Background())
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Zero(t, netErr.Status)
	})
}

func TestToggleVisibility(t *testing.T) {
	t.Run("success returns the new state", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/admin/api/images/7/toggle_visibility", r.URL.Path)
			_, _ = w.Write([]byte(`{"success":true,"is_visible":false}`))
		})
		visible, err := c.ToggleVisibility(context.Background(), 7)
		require.NoError(t, err)
		assert.False(t, visible)
	})

	t.Run("success=false with 500 is an application error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"success":false,"message":"database is locked"}`))
		})
		_, err := c.ToggleVisibility(context.Background(), 7)
		var appErr *ApplicationError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "database is locked", appErr.Message)
	})

	t.Run("404 html is a network error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		})
		_, err := c.ToggleVisibility(context.Background(), 7)
		var netErr *NetworkError
		require.True(t, errors.As(err, &netErr))
		assert.Equal(t, http.StatusNotFound, netErr.Status)
	})

	t.Run("missing is_visible is a parse error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":true}`))
		})
		_, err := c.ToggleVisibility(context.Background(), 7)
		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

func TestDeleteImage(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		var calls atomic.Int32
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/admin/api/images/3/delete", r.URL.Path)
			_, _ = w.Write([]byte(`{"success":true}`))
		})
		require.NoError(t, c.DeleteImage(context.Background(), 3))
		assert.Equal(t, int32(1), calls.Load())
	})

	t.Run("application error keeps the message", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"success":false,"message":"file in use"}`))
		})
		err := c.DeleteImage(context.Background(), 3)
		var appErr *ApplicationError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "file in use", appErr.Message)
	})

	t.Run("2xx with non-json body is a parse error", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("ok"))
		})
		err := c.DeleteImage(context.Background(), 3)
		var parseErr *ParseError
		assert.True(t, errors.As(err, &parseErr))
	})
}

func TestFetchImage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/uploads/thumbnails/thumb_a.png" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte("png-bytes"))
	})

	body, mimeType, err := c.FetchImage(context.Background(), "thumbnails/thumb_a.png")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "image/png", mimeType)

	_, _, err = c.FetchImage(context.Background(), "thumbnails/missing.png")
	var netErr *NetworkError
	require.True(t, errors.As(err, &netErr))
	assert.Equal(t, http.StatusNotFound, netErr.Status)
}

func TestUpload(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		wantErr bool
	}{
		{name: "redirect after processing", status: http.StatusFound},
		{name: "plain ok", status: http.StatusOK},
		{name: "server error", status: http.StatusInternalServerError, wantErr: true},
		{name: "payload too large", status: http.StatusRequestEntityTooLarge, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotBody, gotType string
			c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				assert.Equal(t, "/admin/upload", r.URL.Path)
				b, _ := io.ReadAll(r.Body)
				gotBody = string(b)
				gotType = r.Header.Get("Content-Type")
				if tt.status == http.StatusFound {
					w.Header().Set("Location", "/super-admin-panel")
				}
				w.WriteHeader(tt.status)
			})

			err := c.Upload(context.Background(), "multipart/form-data; boundary=x", strings.NewReader("form"))
			if tt.wantErr {
				var netErr *NetworkError
				require.True(t, errors.As(err, &netErr))
				assert.Equal(t, tt.status, netErr.Status)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, "form", gotBody)
			assert.Equal(t, "multipart/form-data; boundary=x", gotType)
		})
	}
}
