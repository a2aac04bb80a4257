package log

import "sync"

var (
	sharedMu sync.RWMutex
	shared   *Logger
)

// SetDefaultLogger installs the logger returned by DefaultLogger. The
// root command calls this once, after flags and config are resolved.
func SetDefaultLogger(logger *Logger) {
	sharedMu.Lock()
	shared = logger
	sharedMu.Unlock()
}

// DefaultLogger returns the shared logger. Before SetDefaultLogger
// runs it lazily creates one with the client defaults, so packages
// constructed early still log at warn level to stderr.
func DefaultLogger() *Logger {
	sharedMu.RLock()
	logger := shared
	sharedMu.RUnlock()
	if logger != nil {
		return logger
	}

	sharedMu.Lock()
	defer sharedMu.Unlock()
	if shared == nil {
		shared = New(DefaultConfig())
	}
	return shared
}
