package log

import (
	"os"
	"path/filepath"
	"sync"
)

var (
	providerMu     sync.RWMutex
	globalProvider LoggerProvider
)

// SetProvider installs the process-wide logger provider. The pipeline
// calls this once at startup after opening its log file; tests install
// a TestLoggerProvider to capture output.
func SetProvider(p LoggerProvider) {
	providerMu.Lock()
	defer providerMu.Unlock()
	globalProvider = p
}

// Provider returns the current process-wide provider. Before SetProvider
// is called it lazily installs a stderr provider at Info level so that
// library code can always obtain a working logger.
func Provider() LoggerProvider {
	providerMu.RLock()
	p := globalProvider
	providerMu.RUnlock()
	if p != nil {
		return p
	}

	providerMu.Lock()
	defer providerMu.Unlock()
	if globalProvider == nil {
		globalProvider = NewZerologProvider(LevelInfo)
	}
	return globalProvider
}

// GetLogger returns the default logger from the current provider.
func GetLogger() Logger {
	return Provider().GetLogger()
}

// GetLoggerWithName returns a named logger from the current provider.
// The name is attached to every record under ComponentKey.
func GetLoggerWithName(name string) Logger {
	return Provider().GetLoggerWithName(name)
}

// NewFileProvider creates a ZerologProvider that appends JSON lines to
// the given file, creating the parent directory if needed. The returned
// close function flushes nothing (writes are unbuffered) but releases
// the file handle and should be deferred by the caller.
func NewFileProvider(path string, level Level) (*ZerologProvider, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, nil, err
		}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, err
	}
	return NewZerologProviderWithWriter(f, level), f.Close, nil
}
