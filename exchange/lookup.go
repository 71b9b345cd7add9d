package exchange

import (
	"github.com/lobaro/unicoap-go/endpoint"
	"github.com/lobaro/unicoap-go/internal/path"
	"github.com/lobaro/unicoap-go/pdu"
)

// lookupResult is the outcome of walking the listener list.
type lookupResult struct {
	Resource *Resource
	Listener *Listener
	Found    bool
	Status   pdu.Code // pdu.MethodNotAllowed or pdu.NotFound when !Found
}

// lookup implements spec §4.5's resource-lookup steps 2-4: walk
// listeners in registration order, skip resources whose transport mask
// excludes proto, match path respecting match-subtree, and track the
// best-so-far 4.05 if a path matches but the method doesn't, falling
// back to 4.04 if nothing ever matched on path.
func (r *Registry) lookup(proto endpoint.Protocol, method pdu.Code, requestPath path.Path) lookupResult {
	bestSoFar := pdu.NotFound
	for _, l := range r.snapshot() {
		if !l.Protocols.Allows(proto) {
			continue
		}
		for i := range l.Resources {
			res := &l.Resources[i]
			if !res.Protocols.Allows(proto) {
				continue
			}
			resPath := path.Parse(res.Path)
			if !resPath.Matches(requestPath, res.MatchSubtree) {
				continue
			}
			if !res.Methods.Allows(method) {
				bestSoFar = pdu.MethodNotAllowed
				continue
			}
			return lookupResult{Resource: res, Listener: l, Found: true}
		}
	}
	return lookupResult{Found: false, Status: bestSoFar}
}
