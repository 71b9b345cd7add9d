package unicoap

import (
	"errors"

	pkgerrors "github.com/pkg/errors"

	"github.com/lobaro/unicoap-go/pdu"
)

// coreError is the shared error shape for the messaging and exchange
// layers, grounded on the teacher's coapError (coap/errors.go): a
// short message plus Timeout()/Temporary() predicates so callers can
// type-assert against net.Error-style interfaces.
type coreError struct {
	msg       string
	timeout   bool
	temporary bool
}

func (e *coreError) Error() string   { return e.msg }
func (e *coreError) Timeout() bool   { return e.timeout }
func (e *coreError) Temporary() bool { return e.temporary }

// Error categories from spec §7, beyond the ones already owned by
// options (ErrBadOption, ErrPayloadMarker, ErrNoBuffer, ErrNotFound)
// and pdu (ErrBadMessage, ErrNoBuffer). These are the categories that
// only make sense once messages are moving across endpoints.
var (
	ErrProtocol      = errors.New("unicoap: protocol violation")
	ErrTimedOut      = &coreError{msg: "unicoap: timed out", timeout: true, temporary: true}
	ErrNotConnected  = errors.New("unicoap: not connected")
	ErrNotSupported  = errors.New("unicoap: not supported")
	ErrAlreadyExists = errors.New("unicoap: already exists")
)

// Wrap attaches msg as context to err using github.com/pkg/errors, the
// way the teacher's import set favors for errors that cross the state
// mutex boundary and need a stack trace at the point of origin.
func Wrap(err error, msg string) error {
	return pkgerrors.Wrap(err, msg)
}

// StatusForError maps a handler-scope error to a CoAP response status,
// per spec §7's errno translation table (-ENOENT -> 4.04, -EACCES ->
// 4.03, -EINVAL -> 4.00, default -> 5.00). It takes a Go error rather
// than a negative errno int, so the mapping works by sentinel identity
// instead of integer value. The exchange dispatcher does not call it:
// handlers there return an int, and every negative value other than
// Ignore becomes 5.00.
func StatusForError(err error) pdu.Code {
	switch {
	case errors.Is(err, ErrNotFound):
		return pdu.NotFound
	case errors.Is(err, ErrForbidden):
		return pdu.Forbidden
	case errors.Is(err, ErrBadRequest):
		return pdu.BadRequest
	default:
		return pdu.InternalServerError
	}
}

// Sentinel handler-facing errors used by StatusForError. ErrNotFound is
// distinct from options.ErrNotFound: this one names a missing resource,
// not a missing option.
var (
	ErrNotFound   = errors.New("unicoap: resource not found")
	ErrForbidden  = errors.New("unicoap: forbidden")
	ErrBadRequest = errors.New("unicoap: bad request")
)
