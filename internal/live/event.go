package live

// Event types sent by the browser shim.
const (
	EventMount        = "mount"
	EventFilter       = "filter"
	EventOpen         = "open"
	EventClick        = "click"
	EventClose        = "close"
	EventImageLoad    = "image_load"
	EventImageError   = "image_error"
	EventToggle       = "toggle"
	EventDelete       = "delete"
	EventConfirm      = "confirm"
	EventUploadSubmit = "upload_submit"
)

// Event is one message from the browser shim. Fields a given type does not
// use are left empty.
type Event struct {
	Type    string   `json:"type"`
	Markers []string `json:"markers,omitempty"`
	Value   string   `json:"value,omitempty"`
	ID      int64    `json:"id,omitempty"`
	Target  string   `json:"target,omitempty"`
	Token   string   `json:"token,omitempty"`
	OK      bool     `json:"ok,omitempty"`
}
