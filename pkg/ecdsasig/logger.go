package ecdsasig

// Logger is the logger used by signers, verifiers and the batch verifier.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}
