package endpoint

// SessionEvictor is the hook a session-oriented transport driver (DTLS)
// calls into when it observes fewer than a configured number of free
// session slots: it asks the core to pick and destroy a
// least-recently-used session so the slot can be reused. An implementer
// of this interface supplies the eviction policy; the driver implements
// the actual handshake/session teardown. This module implements neither
// a DTLS driver nor this interface; it only defines it, per the DTLS
// triage behavior named in
// spec §5 without a compiled-in DTLS transport.
type SessionEvictor interface {
	// Evict is called when the driver needs at least one free slot. It
	// returns the endpoint whose session was evicted, or ok=false if
	// there was nothing to evict.
	Evict() (victim Endpoint, ok bool)

	// Touch records that session activity was observed for ep, moving
	// it to the most-recently-used end of the eviction order.
	Touch(ep Endpoint)

	// Forget drops ep from the eviction order, e.g. after the driver
	// tears the session down for an unrelated reason.
	Forget(ep Endpoint)
}
