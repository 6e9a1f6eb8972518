// Package photoapi is the client for the photo API server: the list, toggle
// and delete endpoints, image files and the upload form.
package photoapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/vbonduro/photowall/internal/domain"
)

const maxBodySize = 10 * 1024 * 1024

type Client struct {
	baseURL string
	client  *http.Client
	// uploads has no overall timeout and never follows redirects.
	uploads *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		uploads: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

// ListPublic returns the visible photos, restricted to category unless it is
// empty or domain.FilterAll.
func (c *Client) ListPublic(ctx context.Context, category string) ([]domain.Photo, error) {
	endpoint := c.baseURL + "/api/photos"
	if category != "" && category != domain.FilterAll {
		endpoint += "?" + url.Values{"category": {category}}.Encode()
	}
	return c.list(ctx, "list public photos", endpoint)
}

// ListAdmin returns every photo regardless of visibility.
func (c *Client) ListAdmin(ctx context.Context) ([]domain.Photo, error) {
	return c.list(ctx, "list admin photos", c.baseURL+"/admin/api/images")
}

// ToggleVisibility flips a photo's visibility and returns the new value.
func (c *Client) ToggleVisibility(ctx context.Context, id int64) (bool, error) {
	const op = "toggle visibility"
	var result domain.ToggleResult
	if err := c.mutate(ctx, op, fmt.Sprintf("%s/admin/api/images/%d/toggle_visibility", c.baseURL, id), &result); err != nil {
		return false, err
	}
	if !result.Success {
		return false, &ApplicationError{Op: op, Message: result.Message}
	}
	if result.IsVisible == nil {
		return false, &ParseError{Op: op, Err: errors.New("missing is_visible")}
	}
	return *result.IsVisible, nil
}

// DeleteImage permanently deletes a photo. Callers are responsible for
// obtaining the user's confirmation first.
func (c *Client) DeleteImage(ctx context.Context, id int64) error {
	const op = "delete image"
	var result domain.MutationResult
	if err := c.mutate(ctx, op, fmt.Sprintf("%s/admin/api/images/%d/delete", c.baseURL, id), &result); err != nil {
		return err
	}
	if !result.Success {
		return &ApplicationError{Op: op, Message: result.Message}
	}
	return nil
}

// FetchImage streams an uploaded image. key is "<folder>/<file>" as served
// under /uploads/. The caller must close the returned body.
func (c *Client) FetchImage(ctx context.Context, key string) (io.ReadCloser, string, error) {
	const op = "fetch image"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/uploads/"+key, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%s: failed to create request: %w", op, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", &NetworkError{Op: op, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, "", &NetworkError{Op: op, Status: resp.StatusCode}
	}
	return resp.Body, resp.Header.Get("Content-Type"), nil
}

// Upload forwards a multipart upload form to the API server. The server
// answers a processed upload with a redirect, which counts as success.
func (c *Client) Upload(ctx context.Context, contentType string, body io.Reader) error {
	const op = "upload photos"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/admin/upload", body)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.uploads.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return &NetworkError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

func (c *Client) list(ctx context.Context, op, endpoint string) ([]domain.Photo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Op: op, Status: resp.StatusCode}
	}

	var photos []domain.Photo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(&photos); err != nil {
		return nil, &ParseError{Op: op, Err: err}
	}
	if photos == nil {
		photos = []domain.Photo{}
	}
	return photos, nil
}

// mutate POSTs to endpoint and decodes the JSON envelope into out. A non-2xx
// response that still carries a JSON envelope is left for the caller to
// classify through its success flag.
func (c *Client) mutate(ctx context.Context, op, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return fmt.Errorf("%s: failed to create request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return &NetworkError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	ok := resp.StatusCode >= 200 && resp.StatusCode <= 299
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBodySize)).Decode(out); err != nil {
		if !ok {
			return &NetworkError{Op: op, Status: resp.StatusCode}
		}
		return &ParseError{Op: op, Err: err}
	}
	if !ok && !failed(out) {
		return &NetworkError{Op: op, Status: resp.StatusCode}
	}
	return nil
}

// failed reports whether a decoded envelope carries success=false.
func failed(out any) bool {
	switch v := out.(type) {
	case *domain.ToggleResult:
		return !v.Success
	case *domain.MutationResult:
		return !v.Success
	}
	return false
}
