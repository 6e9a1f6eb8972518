// Package dom describes the operations the server pushes to a live page and
// the Surface views write them to.
package dom

// Op kinds understood by the browser shim.
const (
	OpHTML        = "html"
	OpText        = "text"
	OpAttr        = "attr"
	OpClassAdd    = "class_add"
	OpClassRemove = "class_remove"
	OpStyle       = "style"
	OpAlert       = "alert"
	OpConfirm     = "confirm"
)

// Op is a single DOM operation addressed to an element ID.
type Op struct {
	Kind   string `json:"op"`
	Target string `json:"target,omitempty"`
	Name   string `json:"name,omitempty"`
	Value  string `json:"value,omitempty"`
	Token  string `json:"token,omitempty"`
}

// Surface is the side-effecting boundary of a page. Implementations must be
// safe for concurrent use.
type Surface interface {
	// Apply sends ops to the page in order.
	Apply(ops ...Op)
	// Has reports whether the page contains an element with the given ID.
	Has(id string) bool
}

// Dialogs shows blocking notifications on the page.
type Dialogs interface {
	Alert(message string)
	// Confirm asks the user and calls answer with the result on the caller's
	// event loop. answer is never called if the page goes away first.
	Confirm(prompt string, answer func(ok bool))
}

func SetHTML(target, html string) Op {
	return Op{Kind: OpHTML, Target: target, Value: html}
}

func SetText(target, text string) Op {
	return Op{Kind: OpText, Target: target, Value: text}
}

func SetAttr(target, name, value string) Op {
	return Op{Kind: OpAttr, Target: target, Name: name, Value: value}
}

func AddClass(target, class string) Op {
	return Op{Kind: OpClassAdd, Target: target, Value: class}
}

func RemoveClass(target, class string) Op {
	return Op{Kind: OpClassRemove, Target: target, Value: class}
}

func SetStyle(target, property, value string) Op {
	return Op{Kind: OpStyle, Target: target, Name: property, Value: value}
}
