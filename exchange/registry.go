package exchange

import (
	unicoap "github.com/lobaro/unicoap-go"
	"github.com/lobaro/unicoap-go/internal/path"
	"github.com/lobaro/unicoap-go/messaging"
)

// Registry is the listener list spec §3 "Global state" and §5
// "Shared-resource policy" describe. It shares its mutex with the
// owning messaging.State rather than holding one of its own, so the
// whole core keeps to a single lock (spec §5: "A single mutex guards
// the listener list, the carbon-copy pool, and the transmission
// table").
type Registry struct {
	state *messaging.State
	cfg   unicoap.Config

	listeners []*Listener
}

// NewRegistry constructs an empty Registry backed by state's mutex.
func NewRegistry(state *messaging.State, cfg unicoap.Config) *Registry {
	return &Registry{state: state, cfg: cfg}
}

// Register adds l to the listener list, in registration order (spec
// §4.5 "Walk the listener list in registration order").
func (r *Registry) Register(l *Listener) {
	r.state.Lock()
	defer r.state.Unlock()
	r.listeners = append(r.listeners, l)
}

// Deregister removes the listener with the given ID, by identity (spec
// §4.3 "Deregistration is by identity").
func (r *Registry) Deregister(id string) bool {
	r.state.Lock()
	defer r.state.Unlock()
	for i, l := range r.listeners {
		if l.ID == id {
			r.listeners = append(r.listeners[:i], r.listeners[i+1:]...)
			return true
		}
	}
	return false
}

// snapshot returns a shallow copy of the listener slice under the
// shared mutex, so lookup and /.well-known/core can walk it without
// holding the lock across handler invocation or link-format encoding
// (spec §5: "never across a handler invocation").
func (r *Registry) snapshot() []*Listener {
	r.state.Lock()
	defer r.state.Unlock()
	out := make([]*Listener, len(r.listeners))
	copy(out, r.listeners)
	return out
}

// copyPath copies the aggregate Uri-Path uriPath into a stack-sized buffer
// bounded by cfg.MaxPathBufferSize, per spec §4.5 step 1 ("Copy the
// aggregate Uri-Path into a stack buffer; if copying fails, reply
// 4.04"). Go has no stack-allocation guarantee for a []byte, so this
// returns a plain bounded-capacity slice instead; the bound is what
// the spec's "stack buffer" step is actually protecting against
// (unbounded path length from a hostile peer).
func (r *Registry) copyPath(uriPath string) (path.Path, bool) {
	if len(uriPath) > r.cfg.MaxPathBufferSize {
		return path.Path{}, false
	}
	return path.Parse(uriPath), true
}
