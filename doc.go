// Package unicoap is the top level of a bottom-up CoAP (RFC 7252) core:
// options < pdu < message < endpoint < messaging < exchange, with
// scheduler, transport, and internal utility packages supporting them.
// This file and its siblings at the module root hold the cross-cutting
// pieces every layer needs: the tunable Config, the shared error
// taxonomy, and the package-level logger.
package unicoap
