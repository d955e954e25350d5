package quality

// Logger receives diagnostic messages from the engine. It is intentionally
// narrow, printf-style, and nil-safe: callers wire in whatever structured
// logger they already use.
type Logger interface {
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
