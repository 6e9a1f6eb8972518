package domain

// Filter and category values shared by both pages.
const (
	FilterAll     = "All"
	FilterHidden  = "已隐藏"
	CategoryGame  = "游戏"
	CategoryEvent = "活动"
)

// Photo is one record as returned by the public and admin list endpoints.
// Fields a given endpoint omits decode to their zero values.
type Photo struct {
	ID               int64  `json:"id"`
	OriginalFilename string `json:"original_filename"`
	ThumbnailURL     string `json:"thumbnail_url"`
	OriginalURL      string `json:"original_url"`
	Timestamp        string `json:"timestamp"`
	UploadedAt       string `json:"uploaded_at"`
	Category         string `json:"category"`
	IsVisible        bool   `json:"is_visible"`
}

// ToggleResult is the body of a toggle_visibility response.
type ToggleResult struct {
	Success   bool   `json:"success"`
	IsVisible *bool  `json:"is_visible,omitempty"`
	Message   string `json:"message,omitempty"`
}

// MutationResult is the body of a delete response.
type MutationResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
