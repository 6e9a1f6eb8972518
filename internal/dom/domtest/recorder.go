// Package domtest provides an in-memory dom.Surface for tests.
package domtest

import (
	"sync"

	"github.com/vbonduro/photowall/internal/dom"
)

// Recorder records applied ops and keeps a flat model of element state so
// tests can assert on the resulting page rather than on op sequences.
type Recorder struct {
	mu      sync.Mutex
	ids     map[string]bool
	ops     []dom.Op
	html    map[string]string
	text    map[string]string
	attrs   map[string]map[string]string
	styles  map[string]map[string]string
	classes map[string]map[string]bool
	alerts  []string
	prompts []string
	decide  func(prompt string) bool
	pending []func(bool)
}

// NewRecorder returns a Recorder whose page contains the given element IDs.
func NewRecorder(ids ...string) *Recorder {
	r := &Recorder{
		ids:     make(map[string]bool),
		html:    make(map[string]string),
		text:    make(map[string]string),
		attrs:   make(map[string]map[string]string),
		styles:  make(map[string]map[string]string),
		classes: make(map[string]map[string]bool),
	}
	for _, id := range ids {
		r.ids[id] = true
	}
	return r
}

// AnswerConfirms makes every Confirm call answer immediately with decide's
// result. Without it, answers are queued until ResolveConfirm is called.
func (r *Recorder) AnswerConfirms(decide func(prompt string) bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decide = decide
}

func (r *Recorder) Has(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ids[id]
}

func (r *Recorder) Apply(ops ...dom.Op) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, op := range ops {
		r.ops = append(r.ops, op)
		switch op.Kind {
		case dom.OpHTML:
			r.html[op.Target] = op.Value
		case dom.OpText:
			r.text[op.Target] = op.Value
		case dom.OpAttr:
			sub(r.attrs, op.Target)[op.Name] = op.Value
		case dom.OpStyle:
			sub(r.styles, op.Target)[op.Name] = op.Value
		case dom.OpClassAdd:
			if r.classes[op.Target] == nil {
				r.classes[op.Target] = make(map[string]bool)
			}
			r.classes[op.Target][op.Value] = true
		case dom.OpClassRemove:
			delete(r.classes[op.Target], op.Value)
		case dom.OpAlert:
			r.alerts = append(r.alerts, op.Value)
		}
	}
}

func (r *Recorder) Alert(message string) {
	r.Apply(dom.Op{Kind: dom.OpAlert, Value: message})
}

func (r *Recorder) Confirm(prompt string, answer func(ok bool)) {
	r.mu.Lock()
	r.prompts = append(r.prompts, prompt)
	decide := r.decide
	if decide == nil {
		r.pending = append(r.pending, answer)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	answer(decide(prompt))
}

// ResolveConfirm answers the oldest queued confirmation. It reports false if
// none is queued.
func (r *Recorder) ResolveConfirm(ok bool) bool {
	r.mu.Lock()
	if len(r.pending) == 0 {
		r.mu.Unlock()
		return false
	}
	answer := r.pending[0]
	r.pending = r.pending[1:]
	r.mu.Unlock()
	answer(ok)
	return true
}

func (r *Recorder) Ops() []dom.Op {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]dom.Op(nil), r.ops...)
}

// Reset forgets recorded ops but keeps element state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = nil
}

func (r *Recorder) HTML(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.html[id]
}

func (r *Recorder) Text(id string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text[id]
}

func (r *Recorder) Attr(id, name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attrs[id][name]
}

func (r *Recorder) Style(id, property string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.styles[id][property]
}

func (r *Recorder) HasClass(id, class string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.classes[id][class]
}

func (r *Recorder) Alerts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.alerts...)
}

func (r *Recorder) Prompts() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.prompts...)
}

func sub(m map[string]map[string]string, id string) map[string]string {
	if m[id] == nil {
		m[id] = make(map[string]string)
	}
	return m[id]
}
