package unicoap

import "github.com/sirupsen/logrus"

// log is the package-level structured logger, in the style of the
// teacher's coap/slipMuxReader.go, which references a package-level
// log var rather than threading a logger through every call. Hosting
// code can redirect output via SetLogger.
var log = logrus.WithField("component", "unicoap")

// SetLogger replaces the package-level logger's output, e.g. to route
// unicoap's structured fields into an application's own logrus
// instance.
func SetLogger(l *logrus.Logger) {
	log = l.WithField("component", "unicoap")
}

// Logger returns the current package-level entry, for packages under
// this module (messaging, exchange) that want to add their own
// component field via WithField without importing logrus directly in
// every file.
func Logger() *logrus.Entry {
	return log
}
