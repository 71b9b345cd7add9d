package exchange

import "errors"

// errAlreadySent is returned by Context.SendResponse when called a
// second time, detected via the Context's sent flag, which the first
// call sets.
var errAlreadySent = errors.New("response already sent for this request")
