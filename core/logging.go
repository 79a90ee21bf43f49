package core

// Logger is the debug logging interface injected into components that need
// it. Stack traces and fallback details go here, never into the status
// strings shown to the user.
type Logger interface {
	Printf(format string, v ...any)
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...any) {}

// NopLogger discards everything. It is the default wherever a Logger is
// optional.
var NopLogger Logger = nopLogger{}
